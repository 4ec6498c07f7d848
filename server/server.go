package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Daskott/rolodex/server/logger"
	"github.com/Daskott/rolodex/server/models"
	"github.com/Daskott/rolodex/shared"
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	logg     *zap.SugaredLogger = logger.NewLogger(true)
	validate *validator.Validate
)

func init() {
	validate = validator.New()

	err := RegisterValidators(validate)
	if err != nil {
		logg.Panic(err)
	}
}

func Start(configArg *viper.Viper, devMode bool) {
	logg = logger.NewLogger(devMode)
	models.UseLogger(logg)

	config := shared.ServerConfig{}
	err := configArg.Unmarshal(&config)
	fatalOnError(err)

	err = validate.Struct(config)
	if err != nil {
		logg.Fatalf("invalid server config: %v", err)
	}

	err = models.AutoMigrate(config.Database, configDirectory(devMode))
	fatalOnError(err)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%v", config.Rolodex.Listener.Port),
		Handler: NewRouter(),
	}

	go serve(server)

	// Wait for an interrupt signal to shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	cleanup(server)
}

// NewRouter wires every API route. Routes below /api other than
// registration & login require a valid session token.
func NewRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware, contentTypeMiddleware)
	router.NotFoundHandler = contentTypeMiddleware(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		writeErrMessage(rw, msgNotFound, http.StatusNotFound)
	}))
	router.MethodNotAllowedHandler = contentTypeMiddleware(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		writeErrMessage(rw, msgMethodNotAllow, http.StatusMethodNotAllowed)
	}))

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", createUser).Methods("POST")
	api.HandleFunc("/users/login", logIn).Methods("POST")

	protected := api.NewRoute().Subrouter()
	protected.Use(protectedRouteMiddleware)

	protected.HandleFunc("/users/current", findCurrentUser).Methods("GET")
	protected.HandleFunc("/users/current", updateCurrentUser).Methods("PATCH")
	protected.HandleFunc("/users/logout", logOut).Methods("DELETE")

	protected.HandleFunc("/contacts", createContact).Methods("POST")
	protected.HandleFunc("/contacts", searchContacts).Methods("GET")
	protected.HandleFunc("/contacts/{id}", findContact).Methods("GET")
	protected.HandleFunc("/contacts/{id}", updateContact).Methods("PUT")
	protected.HandleFunc("/contacts/{id}", deleteContact).Methods("DELETE")

	protected.HandleFunc("/contacts/{contactId}/addresses", createAddress).Methods("POST")
	protected.HandleFunc("/contacts/{contactId}/addresses", listAddresses).Methods("GET")
	protected.HandleFunc("/contacts/{contactId}/addresses/{id}", findAddress).Methods("GET")
	protected.HandleFunc("/contacts/{contactId}/addresses/{id}", updateAddress).Methods("PUT")
	protected.HandleFunc("/contacts/{contactId}/addresses/{id}", deleteAddress).Methods("DELETE")

	return router
}
