// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrDuplicateUsername  = errors.New("username already exist")
	ErrDuplicateEmail     = errors.New("email already exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
)

// IsError reports whether err matches the target error in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
