// internal/repository/user_repo.go
package repository

import (
	"context"

	"userbase/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user, assigning its ID. Unique-constraint
	// violations are reported as util.ErrDuplicateUsername / ErrDuplicateEmail.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetUserByUsername retrieves a user by their username.
	GetUserByUsername(ctx context.Context, q DBExecutor, username string) (*domain.User, error)
	// GetUserByEmail retrieves a user by their email.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
	// ListUsers retrieves all users.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.User, error)
	// CountUsers returns the total number of stored users.
	CountUsers(ctx context.Context, q DBExecutor) (int64, error)
	// UpdateUsername sets a new username on the user with the given ID.
	UpdateUsername(ctx context.Context, q DBExecutor, id int64, username string) error
	// DeleteUser removes the user with the given ID.
	DeleteUser(ctx context.Context, q DBExecutor, id int64) error
}
