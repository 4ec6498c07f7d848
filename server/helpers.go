package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Daskott/rolodex/server/models"
	"github.com/Daskott/rolodex/utils"
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const (
	msgUnauthorized   = "unauthorized"
	msgNotFound       = "not found"
	msgInternalError  = "internal server error"
	msgInvalidBody    = "invalid request body"
	msgMethodNotAllow = "method not allowed"
)

var errInvalidID = errors.New("invalid id")

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad interface{}, statusCode int) {
	rw.WriteHeader(statusCode)
	err := json.NewEncoder(rw).Encode(payLoad)
	if err != nil {
		logg.Errorf("writeResponse: %v", err)
	}
}

func writeData(rw http.ResponseWriter, data interface{}, statusCode int) {
	writeResponse(rw, ResponsePayload{Data: data}, statusCode)
}

func writeErrors(rw http.ResponseWriter, errs ErrorMessages, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(errs)
	} else {
		logg.Info(errs)
	}

	writeResponse(rw, ErrorPayload{Errors: errs}, statusCode)
}

func writeErrMessage(rw http.ResponseWriter, msg string, statusCode int) {
	writeErrors(rw, ErrorMessages{"message": {msg}}, statusCode)
}

// writeInternalError logs err & responds without exposing any of its detail.
func writeInternalError(rw http.ResponseWriter, err error) {
	logg.Error(err)
	writeErrMessage(rw, msgInternalError, http.StatusInternalServerError)
}

// writeLookupError treats a missing record as 404 & anything else as a 500.
func writeLookupError(rw http.ResponseWriter, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, errInvalidID) {
		writeErrMessage(rw, msgNotFound, http.StatusNotFound)
		return
	}

	writeInternalError(rw, err)
}

// decodeAndValidate reads the JSON body into dest & validates it.
// It writes the error response & returns false when the request can't proceed.
func decodeAndValidate(rw http.ResponseWriter, r *http.Request, dest interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dest)
	if err != nil {
		writeErrMessage(rw, msgInvalidBody, http.StatusBadRequest)
		return false
	}

	errs := validationErrors(validate.Struct(dest))
	if len(errs) > 0 {
		writeErrors(rw, errs, http.StatusBadRequest)
		return false
	}

	return true
}

// validationErrors groups every failed rule by field, so callers
// get all violations at once.
func validationErrors(err error) ErrorMessages {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ErrorMessages{"message": {err.Error()}}
	}

	errs := ErrorMessages{}
	for _, fieldErr := range fieldErrs {
		errs[fieldErr.Field()] = append(errs[fieldErr.Field()], validationMessage(fieldErr))
	}

	return errs
}

func validationMessage(fieldErr validator.FieldError) string {
	label := strings.ReplaceAll(fieldErr.Field(), "_", " ")

	switch fieldErr.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %v field is required.", label)
	case "email":
		return fmt.Sprintf("The %v field must be a valid email address.", label)
	case "max":
		return fmt.Sprintf("The %v field must not be greater than %v characters.", label, fieldErr.Param())
	case "maxbytes":
		return fmt.Sprintf("The %v field must not be greater than %v bytes.", label, fieldErr.Param())
	}

	return fmt.Sprintf("The %v field is invalid.", label)
}

func RegisterValidators(validate *validator.Validate) error {
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	err := validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		return err
	}

	// bcrypt only accepts passwords up to 72 bytes, whatever their rune count
	return validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
}

// pathID extracts a numeric route variable, e.g. {id} in /contacts/{id}.
func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}

	return uint(id), nil
}

// queryInt returns the query param as an int, or 0 when absent or malformed.
func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}

	return value
}

func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(currentUserKey).(*models.User)
	return user
}

func withCurrentUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Rolodex server is listening on port:%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(server *http.Server) {
	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Rolodex server shutdown failed:%+s", err)
	}

	if err := models.CloseDB(); err != nil {
		logg.Errorf("unable to close db: %v", err)
	}

	logg.Infof("Rolodex server stopped properly")
}

// configDirectory retrieves the directory to store rolodex data
// Or logs an error message and then calls os.Exit if it's unable to.
func configDirectory(devMode bool) string {
	// Use 'rolodex' folder in home directory for prod
	configFolderName := "rolodex"
	rootDir, err := os.UserHomeDir()
	fatalOnError(err)

	// Use 'dev' folder in current directory for dev mode
	if devMode {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		fatalOnError(err)
	}

	configDir := filepath.Join(rootDir, configFolderName)

	err = utils.CreateDirIfNotExist(configDir)
	fatalOnError(err)

	return configDir
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
