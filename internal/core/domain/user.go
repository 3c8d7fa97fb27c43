package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleUser     = "user"
)

// Authentication failures carry a machine-readable tag on the wire; the
// mapping lives in the API error handler.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrInvalidToken      = errors.New("invalid token")
	ErrCorruptCredential = errors.New("corrupt stored credential")
	ErrForbidden         = errors.New("access forbidden")
	ErrUserExists        = errors.New("user already exists")
	ErrInvalidEnrollment = errors.New("invalid enrollment request")
	ErrTooManyAttempts   = errors.New("too many login attempts")
	ErrStoreTimeout      = errors.New("credential store timeout")
)

// ValidRole reports whether role is one of the recognized role values.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEmployee, RoleUser:
		return true
	}
	return false
}

// User models an authenticated actor in the system. ID is a short unique
// identifier handed out at enrollment, independent of the store's primary key.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
