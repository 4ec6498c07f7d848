package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Daskott/rolodex/colors"
	"github.com/Daskott/rolodex/server/auth"
	"github.com/Daskott/rolodex/server/models"
	"gorm.io/gorm"
)

type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         200,
		}

		defer func() {
			responseStatus := colors.Green(responseWriter.Status)
			if responseWriter.Status >= 400 {
				responseStatus = colors.Red(responseWriter.Status)
			}

			logg.Info(
				r.Method, " ",
				r.RequestURI, " ",
				responseStatus, " ",
				colors.Yellow(fmt.Sprintf("[%v]", time.Since(start))))
		}()

		next.ServeHTTP(responseWriter, r)
	})
}

func contentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// protectedRouteMiddleware resolves the Authorization header to a user & stores it
// in the request context. Nothing else about the request is looked at on failure.
func protectedRouteMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := models.FindUserByToken(auth.TokenFromAuthHeader(r.Header.Get("Authorization")))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeErrMessage(w, msgUnauthorized, http.StatusUnauthorized)
			return
		}

		if err != nil {
			writeInternalError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withCurrentUser(r.Context(), user)))
	})
}
