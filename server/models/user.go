package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Daskott/rolodex/server/auth"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("username or password wrong")

	allFieldsExceptPassword = []string{"id",
		"username",
		"name",
		"token",
		"created_at",
		"updated_at",
	}

	updatableFields = []string{"name",
		"password",
		"updated_at",
	}
)

type User struct {
	BaseModel
	Username string    `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Password string    `json:"-" gorm:"size:100;not null"`
	Name     string    `json:"name" gorm:"size:100;not null"`
	Token    *string   `json:"token,omitempty" gorm:"size:100;uniqueIndex"`
	Contacts []Contact `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Update applies a partial change to the user's name and/or password.
// Keys outside of updatableFields are ignored.
func (user *User) Update(data map[string]interface{}) error {
	if password, ok := data["password"].(string); ok {
		passwordHash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		data["password"] = passwordHash
	}
	data["updated_at"] = time.Now()

	err := db.Model(&User{}).Where("id = ?", user.ID).Select(updatableFields).Updates(data).Error
	if err != nil {
		return err
	}

	if name, ok := data["name"].(string); ok {
		user.Name = name
	}

	return nil
}

// Logout invalidates the user's current session token.
func (user *User) Logout() error {
	err := db.Model(&User{}).Where("id = ?", user.ID).Update("token", nil).Error
	if err != nil {
		return err
	}

	user.Token = nil
	return nil
}

func FindUserBy(field string, value interface{}) (*User, error) {
	user := User{}
	err := db.Select(allFieldsExceptPassword).First(&user, fmt.Sprintf("%v = ?", field), value).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUserByToken resolves a session token to its user.
// An empty token never matches, not even users without a session.
func FindUserByToken(token string) (*User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, gorm.ErrRecordNotFound
	}

	return FindUserBy("token", token)
}

func CreateUser(user *User) error {
	passwordHash, err := auth.HashPassword(user.Password)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&User{}).Where("username = ?", user.Username).Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return ErrUsernameTaken
		}

		user.Password = passwordHash
		user.Token = nil

		err = tx.Create(user).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}

		return err
	})
}

// Login verifies the credentials & starts a new session for the user,
// replacing any previous token.
func Login(username, password string) (*User, error) {
	user := User{}
	err := db.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	if !auth.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token := auth.NewSessionToken()
	err = db.Model(&User{}).Where("id = ?", user.ID).Update("token", token).Error
	if err != nil {
		return nil, err
	}

	user.Token = &token
	return &user, nil
}
