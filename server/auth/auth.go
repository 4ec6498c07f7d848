package auth

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bearerPrefix = "Bearer "

// PasswordHashCost is the bcrypt cost used by HashPassword.
var PasswordHashCost = 14

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// NewSessionToken returns a random opaque token for a login session.
func NewSessionToken() string {
	return uuid.NewString()
}

// TokenFromAuthHeader accepts either the raw token or "Bearer <token>".
func TokenFromAuthHeader(authHeaderValue string) string {
	token := strings.TrimLeft(authHeaderValue, " ")
	token = strings.TrimPrefix(token, bearerPrefix)

	return strings.TrimSpace(token)
}
