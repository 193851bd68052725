// internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"userbase/internal/auth"
	"userbase/internal/domain"
	"userbase/internal/repository"
	"userbase/internal/util"
)

// UserService defines the interface for user-account business logic.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
	RenameUser(ctx context.Context, id int64, username string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// userService implements the UserService interface.
type userService struct {
	dbExecutor repository.DBExecutor // e.g. *sqlx.DB
	userRepo   repository.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	jwtSecret []byte,
	tokenTTL time.Duration,
	bcryptCost int,
) UserService {
	return &userService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account. The username is normalized to lowercase
// before the uniqueness checks, so usernames differing only in case collide.
// The pre-checks give precise conflict errors; the unique indexes on the
// users table catch the remaining race at insert time.
func (s *userService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, util.ErrInvalidInput
	}
	username = strings.ToLower(username)

	_, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err == nil {
		return nil, util.ErrDuplicateUsername
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("register: failed to check existing username: %w", err)
	}

	_, err = s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err == nil {
		return nil, util.ErrDuplicateEmail
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("register: failed to check existing email: %w", err)
	}

	hashed, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := domain.NewUser(username, email, hashed)
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		if util.IsError(err, util.ErrDuplicateUsername) || util.IsError(err, util.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("register: failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and, on success, issues a signed token bound
// to the user's ID. An unknown email and a wrong password both yield
// util.ErrInvalidCredentials, leaking nothing about which check failed.
func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: failed to get user by email: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("login: failed to generate token: %w", err)
	}

	return user, token, nil
}

// GetUserByID resolves a user by ID. Used by the authentication middleware to
// confirm the token's subject still exists.
func (s *userService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// ListUsers returns all stored users.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CountUsers returns the total number of stored users.
func (s *userService) CountUsers(ctx context.Context) (int64, error) {
	count, err := s.userRepo.CountUsers(ctx, s.dbExecutor)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// RenameUser changes a user's username. The uniqueness check runs before the
// existence check, so renaming a user to the name it already holds reports a
// conflict; that matches the original behavior and stays harmless.
func (s *userService) RenameUser(ctx context.Context, id int64, username string) (*domain.User, error) {
	if username == "" {
		return nil, util.ErrInvalidInput
	}
	username = strings.ToLower(username)

	_, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err == nil {
		return nil, util.ErrDuplicateUsername
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("rename: failed to check existing username: %w", err)
	}

	if _, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("rename: failed to get user %d: %w", id, err)
	}

	if err := s.userRepo.UpdateUsername(ctx, s.dbExecutor, id, username); err != nil {
		if util.IsError(err, util.ErrDuplicateUsername) {
			return nil, err
		}
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("rename: failed to update username: %w", err)
	}

	updated, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("rename: failed to re-fetch user %d: %w", id, err)
	}
	return updated, nil
}

// DeleteUser removes a user by ID.
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrUserNotFound
		}
		return fmt.Errorf("delete: failed to get user %d: %w", id, err)
	}

	if err := s.userRepo.DeleteUser(ctx, s.dbExecutor, id); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrUserNotFound
		}
		return fmt.Errorf("delete: failed to delete user %d: %w", id, err)
	}
	return nil
}
