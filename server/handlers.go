package server

import (
	"errors"
	"net/http"

	"github.com/Daskott/rolodex/server/models"
)

func createUser(rw http.ResponseWriter, r *http.Request) {
	data := registerUserRequest{}
	if !decodeAndValidate(rw, r, &data) {
		return
	}

	user := models.User{Username: data.Username, Password: data.Password, Name: data.Name}
	err := models.CreateUser(&user)
	if errors.Is(err, models.ErrUsernameTaken) {
		writeErrors(rw, ErrorMessages{"username": {err.Error()}}, http.StatusBadRequest)
		return
	}

	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeData(rw, user, http.StatusCreated)
}

func logIn(rw http.ResponseWriter, r *http.Request) {
	data := loginRequest{}
	if !decodeAndValidate(rw, r, &data) {
		return
	}

	user, err := models.Login(data.Username, data.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		writeErrMessage(rw, err.Error(), http.StatusUnauthorized)
		return
	}

	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeData(rw, user, http.StatusOK)
}

func findCurrentUser(rw http.ResponseWriter, r *http.Request) {
	writeData(rw, currentUser(r), http.StatusOK)
}

func updateCurrentUser(rw http.ResponseWriter, r *http.Request) {
	data := updateUserRequest{}
	if !decodeAndValidate(rw, r, &data) {
		return
	}

	changes := make(map[string]interface{})
	if data.Name != nil {
		changes["name"] = *data.Name
	}

	if data.Password != nil {
		changes["password"] = *data.Password
	}

	user := currentUser(r)
	if len(changes) > 0 {
		err := user.Update(changes)
		if err != nil {
			writeInternalError(rw, err)
			return
		}
	}

	writeData(rw, user, http.StatusOK)
}

func logOut(rw http.ResponseWriter, r *http.Request) {
	err := currentUser(r).Logout()
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeData(rw, true, http.StatusOK)
}
