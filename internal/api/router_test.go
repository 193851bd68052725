// internal/api/router_test.go
package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"userbase/internal/api"
	"userbase/internal/api/handler"
	"userbase/internal/auth"
	"userbase/internal/domain"
	"userbase/internal/util"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserService) RenameUser(ctx context.Context, id int64, username string) (*domain.User, error) {
	args := m.Called(ctx, id, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var testSecret = []byte("router-test-secret")

func newTestServer(t *testing.T, svc *MockUserService) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userHandler := handler.NewUserHandler(svc, logger)
	server := httptest.NewServer(api.NewRouter(userHandler, svc, testSecret, logger))
	t.Cleanup(server.Close)
	return server
}

// makeRequest sends an HTTP request to the test server with an optional
// Authorization header value.
func makeRequest(t *testing.T, server *httptest.Server, method, path, body, authHeader string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(respBody)
}

// TestAccessGate exercises the bearer-token middleware in front of GET /users.
func TestAccessGate(t *testing.T) {
	alice := &domain.User{ID: 1, Username: "alice", Email: "a@x.com"}

	t.Run("MissingHeader", func(t *testing.T) {
		svc := new(MockUserService)
		server := newTestServer(t, svc)

		resp, body := makeRequest(t, server, "GET", "/users", "", "")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Unauthorized")
		svc.AssertNotCalled(t, "ListUsers", mock.Anything)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		svc := new(MockUserService)
		server := newTestServer(t, svc)

		resp, _ := makeRequest(t, server, "GET", "/users", "", "Token abc")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		svc.AssertNotCalled(t, "ListUsers", mock.Anything)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		svc := new(MockUserService)
		server := newTestServer(t, svc)

		resp, _ := makeRequest(t, server, "GET", "/users", "", "Bearer not.a.jwt")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		svc := new(MockUserService)
		server := newTestServer(t, svc)

		token, err := auth.GenerateToken(alice.ID, testSecret, -1*time.Minute)
		require.NoError(t, err)

		resp, _ := makeRequest(t, server, "GET", "/users", "", "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		svc.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})

	t.Run("TokenSignedWithWrongSecret", func(t *testing.T) {
		svc := new(MockUserService)
		server := newTestServer(t, svc)

		token, err := auth.GenerateToken(alice.ID, []byte("other-secret"), time.Hour)
		require.NoError(t, err)

		resp, _ := makeRequest(t, server, "GET", "/users", "", "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("TokenOfDeletedUser", func(t *testing.T) {
		svc := new(MockUserService)
		server := newTestServer(t, svc)

		// The token is still valid, but the account behind it is gone.
		token, err := auth.GenerateToken(alice.ID, testSecret, time.Hour)
		require.NoError(t, err)
		svc.On("GetUserByID", mock.Anything, alice.ID).Return(nil, util.ErrUserNotFound).Once()

		resp, body := makeRequest(t, server, "GET", "/users", "", "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Unauthorized")
		svc.AssertNotCalled(t, "ListUsers", mock.Anything)
	})

	t.Run("ValidToken", func(t *testing.T) {
		svc := new(MockUserService)
		server := newTestServer(t, svc)

		token, err := auth.GenerateToken(alice.ID, testSecret, time.Hour)
		require.NoError(t, err)
		svc.On("GetUserByID", mock.Anything, alice.ID).Return(alice, nil).Once()
		svc.On("ListUsers", mock.Anything).Return([]domain.User{*alice}, nil).Once()

		resp, body := makeRequest(t, server, "GET", "/users", "", "Bearer "+token)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var users []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &users))
		require.Len(t, users, 1)
		assert.Equal(t, "alice", users[0]["username"])

		svc.AssertExpectations(t)
	})
}

// TestRegisterLoginFlow walks the register/login scenario end to end through
// the router: duplicate registration conflicts, failed and successful logins,
// and the issued token unlocking the protected listing.
func TestRegisterLoginFlow(t *testing.T) {
	svc := new(MockUserService)
	server := newTestServer(t, svc)

	alice := &domain.User{ID: 1, Username: "alice", Email: "a@x.com"}

	svc.On("Register", mock.Anything, "Alice", "a@x.com", "secret").Return(alice, nil).Once()
	svc.On("Register", mock.Anything, "alice", "b@x.com", "x").Return(nil, util.ErrDuplicateUsername).Once()
	svc.On("Login", mock.Anything, "a@x.com", "wrong").Return(nil, "", util.ErrInvalidCredentials).Once()

	issuedToken, err := auth.GenerateToken(alice.ID, testSecret, time.Hour)
	require.NoError(t, err)
	svc.On("Login", mock.Anything, "a@x.com", "secret").Return(alice, issuedToken, nil).Once()
	svc.On("GetUserByID", mock.Anything, alice.ID).Return(alice, nil).Once()
	svc.On("ListUsers", mock.Anything).Return([]domain.User{*alice}, nil).Once()

	// Register Alice.
	resp, body := makeRequest(t, server, "POST", "/register",
		`{"username":"Alice","email":"a@x.com","password":"secret"}`, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, body, "Registration is successful")

	// A second registration with the same username (different case handled by
	// the service) conflicts.
	resp, body = makeRequest(t, server, "POST", "/register",
		`{"username":"alice","email":"b@x.com","password":"x"}`, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "username already exist")

	// Wrong password is rejected.
	resp, _ = makeRequest(t, server, "POST", "/login",
		`{"email":"a@x.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Correct credentials yield a token.
	resp, body = makeRequest(t, server, "POST", "/login",
		`{"email":"a@x.com","password":"secret"}`, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &loginResp))
	token, ok := loginResp["token"].(string)
	require.True(t, ok)

	// Without a header the listing is rejected; with the token it succeeds.
	resp, _ = makeRequest(t, server, "GET", "/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = makeRequest(t, server, "GET", "/users", "", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "alice")

	svc.AssertExpectations(t)
}

// TestPublicRoutes verifies the endpoints that bypass the access gate.
func TestPublicRoutes(t *testing.T) {
	svc := new(MockUserService)
	server := newTestServer(t, svc)

	svc.On("CountUsers", mock.Anything).Return(int64(2), nil).Once()

	resp, body := makeRequest(t, server, "GET", "/", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Welcome to our backend server")

	resp, body = makeRequest(t, server, "GET", "/count/users", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Number of stored users: 2")

	resp, body = makeRequest(t, server, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
}
