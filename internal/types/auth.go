package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to create a new user with password authentication.
type CreateUserRequest struct {
	FirstName    string   `json:"first_name" validate:"required,min=1"`
	LastName     string   `json:"last_name,omitempty"`
	Emails       []string `json:"emails" validate:"required,min=1,dive,email"`
	DefaultEmail string   `json:"default_email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents a user profile for API responses (avoids import cycle with db package).
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name,omitempty"`
	Emails       []string  `json:"emails"`
	DefaultEmail string    `json:"default_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// DefaultEmailError indicates the default email is not in the email list.
type DefaultEmailError struct {
	Email string
}

func (e *DefaultEmailError) Error() string {
	return "default email is not in the email list: " + e.Email
}

// Validate validates the CreateUserRequest using the validator.
// Beyond tag validation, the default email must be one of the listed emails.
func (r *CreateUserRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	for _, e := range r.Emails {
		if e == r.DefaultEmail {
			return nil
		}
	}
	return &DefaultEmailError{Email: r.DefaultEmail}
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
