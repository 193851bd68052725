// internal/api/middleware_test.go
package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"userbase/internal/auth"
	"userbase/internal/domain"
)

// stubUserService satisfies service.UserService for middleware tests; only
// GetUserByID is exercised here.
type stubUserService struct {
	mock.Mock
}

func (s *stubUserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return nil, "", nil
}

func (s *stubUserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := s.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]domain.User, error) { return nil, nil }
func (s *stubUserService) CountUsers(ctx context.Context) (int64, error)        { return 0, nil }
func (s *stubUserService) RenameUser(ctx context.Context, id int64, username string) (*domain.User, error) {
	return nil, nil
}
func (s *stubUserService) DeleteUser(ctx context.Context, id int64) error { return nil }

func TestAuthenticatorStoresUserInContext(t *testing.T) {
	secret := []byte("mw-secret")
	alice := &domain.User{ID: 7, Username: "alice", Email: "a@x.com"}

	svc := new(stubUserService)
	svc.On("GetUserByID", mock.Anything, alice.ID).Return(alice, nil).Once()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		seen = user
		w.WriteHeader(http.StatusOK)
	})

	token, err := auth.GenerateToken(alice.ID, secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Authenticator(svc, secret, logger)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, alice, seen)
	svc.AssertExpectations(t)
}

func TestUserFromContext_Absent(t *testing.T) {
	user, ok := UserFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, user)
}
