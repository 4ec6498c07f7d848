package server

import "github.com/Daskott/rolodex/server/models"

type RequestContextKey string

const currentUserKey = RequestContextKey("currentUser")

// ErrorMessages maps a field name, or "message" for non-field errors,
// to human readable messages.
type ErrorMessages map[string][]string

type ResponsePayload struct {
	Data interface{}    `json:"data"`
	Meta *models.Paging `json:"meta,omitempty"`
}

type ErrorPayload struct {
	Errors ErrorMessages `json:"errors"`
}

// ---------------------------------------------------------------------------------//
// Request bodies
// --------------------------------------------------------------------------------//

type registerUserRequest struct {
	Username string `json:"username" validate:"notblank,max=100"`
	Password string `json:"password" validate:"notblank,maxbytes=72"`
	Name     string `json:"name" validate:"notblank,max=100"`
}

type loginRequest struct {
	Username string `json:"username" validate:"notblank,max=100"`
	Password string `json:"password" validate:"notblank,max=100"`
}

// updateUserRequest only touches the fields that are present in the body.
type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,notblank,max=100"`
	Password *string `json:"password" validate:"omitempty,notblank,maxbytes=72"`
}

type contactRequest struct {
	FirstName string `json:"first_name" validate:"notblank,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=200"`
	Phone     string `json:"phone" validate:"max=20"`
}

type addressRequest struct {
	Street     string `json:"street" validate:"max=200"`
	City       string `json:"city" validate:"max=100"`
	Province   string `json:"province" validate:"max=100"`
	Country    string `json:"country" validate:"notblank,max=100"`
	PostalCode string `json:"postal_code" validate:"max=10"`
}

func (req contactRequest) toContact() models.Contact {
	return models.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
}

func (req addressRequest) toAddress() models.Address {
	return models.Address{
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
}
