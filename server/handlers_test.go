package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/Daskott/rolodex/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userData struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Token    *string `json:"token"`
	Password *string `json:"password"`
}

func TestRegisterUser(t *testing.T) {
	models.InitializeTestDb()

	t.Run("Should register user", func(t *testing.T) {
		recorder, response := performRequest(t, "POST", "/api/users", "", map[string]string{
			"username": "raka",
			"password": "12345",
			"name":     "Raka Febrian Syahputra",
		})
		require.Equal(t, http.StatusCreated, recorder.Code)

		user := userData{}
		decodeData(t, response, &user)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "raka", user.Username)
		assert.Equal(t, "Raka Febrian Syahputra", user.Name)
		assert.Nil(t, user.Token)
		assert.Nil(t, user.Password, "Password should never be returned")
	})

	t.Run("Should report every invalid field", func(t *testing.T) {
		recorder, response := performRequest(t, "POST", "/api/users", "", map[string]string{
			"username": "",
			"password": "",
			"name":     "",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, map[string][]string{
			"username": {"The username field is required."},
			"password": {"The password field is required."},
			"name":     {"The name field is required."},
		}, response.Errors)
	})

	t.Run("Should reject a username that is taken", func(t *testing.T) {
		recorder, response := performRequest(t, "POST", "/api/users", "", map[string]string{
			"username": "raka",
			"password": "other",
			"name":     "Someone Else",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, map[string][]string{"username": {"username already registered"}}, response.Errors)

		user, err := models.Login("raka", "12345")
		require.Nil(t, err, "First user's credentials should be unaffected")
		assert.Equal(t, "Raka Febrian Syahputra", user.Name)
	})

	t.Run("Should reject a password longer than 72 bytes", func(t *testing.T) {
		for _, password := range []string{strings.Repeat("a", 80), strings.Repeat("é", 40)} {
			recorder, response := performRequest(t, "POST", "/api/users", "", map[string]string{
				"username": "long",
				"password": password,
				"name":     "Long Password",
			})
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, map[string][]string{
				"password": {"The password field must not be greater than 72 bytes."},
			}, response.Errors)
		}

		recorder, _ := performRequest(t, "POST", "/api/users", "", map[string]string{
			"username": "long",
			"password": strings.Repeat("a", 72),
			"name":     "Long Password",
		})
		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("Should reject a malformed body", func(t *testing.T) {
		recorder, response := performRequest(t, "POST", "/api/users", "", "not an object")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, []string{"invalid request body"}, response.Errors["message"])
	})
}

func TestLoginUser(t *testing.T) {
	models.InitializeTestDb()
	require.Nil(t, models.CreateUser(&models.User{Username: "test", Password: "test", Name: "test"}))

	t.Run("Should issue a new token per login", func(t *testing.T) {
		tokens := map[string]bool{}
		for i := 0; i < 2; i++ {
			recorder, response := performRequest(t, "POST", "/api/users/login", "", map[string]string{
				"username": "test",
				"password": "test",
			})
			require.Equal(t, http.StatusOK, recorder.Code)

			user := userData{}
			decodeData(t, response, &user)
			assert.Equal(t, "test", user.Username)
			assert.Equal(t, "test", user.Name)
			require.NotNil(t, user.Token)
			assert.False(t, tokens[*user.Token], "Consecutive logins should not share a token")
			tokens[*user.Token] = true
		}
	})

	testCases := []struct {
		description string
		username    string
		password    string
	}{
		{"Should reject unknown username", "unknown", "test"},
		{"Should reject wrong password", "test", "12"},
	}

	for _, tcase := range testCases {
		t.Run(tcase.description, func(t *testing.T) {
			recorder, response := performRequest(t, "POST", "/api/users/login", "", map[string]string{
				"username": tcase.username,
				"password": tcase.password,
			})
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, map[string][]string{"message": {"username or password wrong"}}, response.Errors)
		})
	}
}

func TestCurrentUser(t *testing.T) {
	models.InitializeTestDb()
	token := seedUser(t, "test")

	for _, header := range []string{token, "Bearer " + token} {
		recorder, response := performRequest(t, "GET", "/api/users/current", header, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		user := userData{}
		decodeData(t, response, &user)
		assert.Equal(t, "test", user.Username)
		assert.Equal(t, "test", user.Name)
	}
}

func TestUpdateCurrentUser(t *testing.T) {
	models.InitializeTestDb()
	token := seedUser(t, "test")

	t.Run("Should update name only", func(t *testing.T) {
		recorder, response := performRequest(t, "PATCH", "/api/users/current", token, map[string]string{"name": "Raka"})
		require.Equal(t, http.StatusOK, recorder.Code)

		user := userData{}
		decodeData(t, response, &user)
		assert.Equal(t, "test", user.Username)
		assert.Equal(t, "Raka", user.Name)

		_, err := models.Login("test", "test")
		assert.Nil(t, err, "Password should be unchanged")
	})

	t.Run("Should update password only", func(t *testing.T) {
		recorder, response := performRequest(t, "PATCH", "/api/users/current", token, map[string]string{"password": "baru"})
		require.Equal(t, http.StatusOK, recorder.Code)

		user := userData{}
		decodeData(t, response, &user)
		assert.Equal(t, "Raka", user.Name)

		_, err := models.Login("test", "test")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)

		loggedIn, err := models.Login("test", "baru")
		require.Nil(t, err)
		token = *loggedIn.Token
	})

	t.Run("Should reject a name longer than 100 characters", func(t *testing.T) {
		recorder, response := performRequest(t, "PATCH", "/api/users/current", token, map[string]string{
			"name": strings.Repeat("Raka", 26),
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, map[string][]string{
			"name": {"The name field must not be greater than 100 characters."},
		}, response.Errors)

		user, err := models.FindUserByToken(token)
		require.Nil(t, err)
		assert.Equal(t, "Raka", user.Name, "Name should be unchanged")
	})

	t.Run("Should reject a blank name", func(t *testing.T) {
		recorder, response := performRequest(t, "PATCH", "/api/users/current", token, map[string]string{"name": " "})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, []string{"The name field is required."}, response.Errors["name"])
	})

	t.Run("Should reject a password longer than 72 bytes", func(t *testing.T) {
		recorder, response := performRequest(t, "PATCH", "/api/users/current", token, map[string]string{
			"password": strings.Repeat("a", 80),
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, map[string][]string{
			"password": {"The password field must not be greater than 72 bytes."},
		}, response.Errors)

		loggedIn, err := models.Login("test", "baru")
		require.Nil(t, err, "Password should be unchanged")
		token = *loggedIn.Token
	})

	t.Run("Should accept an empty patch", func(t *testing.T) {
		recorder, response := performRequest(t, "PATCH", "/api/users/current", token, map[string]string{})
		require.Equal(t, http.StatusOK, recorder.Code)

		user := userData{}
		decodeData(t, response, &user)
		assert.Equal(t, "Raka", user.Name)
	})
}

func TestLogoutUser(t *testing.T) {
	models.InitializeTestDb()
	token := seedUser(t, "test")

	recorder, response := performRequest(t, "DELETE", "/api/users/logout", "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	_, err := models.FindUserByToken(token)
	assert.Nil(t, err, "Failed logout should keep the session")

	recorder, response = performRequest(t, "DELETE", "/api/users/logout", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "true", string(response.Data))

	recorder, _ = performRequest(t, "GET", "/api/users/current", token, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code, "Old token should no longer authenticate")

	user, err := models.FindUserBy("username", "test")
	require.Nil(t, err)
	assert.Nil(t, user.Token)
}
