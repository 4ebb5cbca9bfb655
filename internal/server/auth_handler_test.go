package server

import (
	"net/http"
	"testing"

	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)

	token, userID := env.register(t, "ada@example.com")
	assert.NotEmpty(t, token)

	w := env.do(t, http.MethodPost, "/auth/login", types.LoginRequest{Email: "ada@example.com", Password: "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decodeJSON[types.LoginResponse](t, w)
	assert.Equal(t, userID, login.User.ID)
	assert.NotEmpty(t, login.Token)

	w = env.do(t, http.MethodGet, "/auth/me", nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeJSON[types.User](t, w)
	assert.Equal(t, "ada@example.com", me.Email)
	assert.False(t, me.IsAdmin)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuth_RegisterErrors(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "taken@example.com")

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantError  string
	}{
		{name: "invalid JSON", body: "{not json", wantStatus: http.StatusBadRequest, wantError: "invalid JSON"},
		{
			name:       "missing name",
			body:       types.CreateUserRequest{Email: "a@example.com", Password: "password123"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Name - required",
		},
		{
			name:       "bad email",
			body:       types.CreateUserRequest{Name: "A", Email: "nope", Password: "password123"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Email - email",
		},
		{
			name:       "short password",
			body:       types.CreateUserRequest{Name: "A", Email: "a@example.com", Password: "short"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Password - min",
		},
		{
			name:       "duplicate email",
			body:       types.CreateUserRequest{Name: "A", Email: "taken@example.com", Password: "password123"},
			wantStatus: http.StatusConflict,
			wantError:  "email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/auth/register", tt.body, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeJSON[errorBody](t, w)
			assert.Contains(t, body.Error, tt.wantError)
		})
	}
}

func TestAuth_LoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ada@example.com")

	wrongPassword := env.do(t, http.MethodPost, "/auth/login", types.LoginRequest{Email: "ada@example.com", Password: "wrong-password"}, "")
	unknownUser := env.do(t, http.MethodPost, "/auth/login", types.LoginRequest{Email: "nobody@example.com", Password: "password123"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestAuth_UpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ada@example.com")

	w := env.do(t, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{CurrentPassword: "wrong", NewPassword: "new-password"}, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{CurrentPassword: "password123", NewPassword: "short"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/auth/login", types.LoginRequest{Email: "ada@example.com", Password: "new-password"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/auth/login", types.LoginRequest{Email: "ada@example.com", Password: "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/auth/me"},
		{http.MethodPut, "/auth/password"},
		{http.MethodGet, "/portfolios"},
		{http.MethodPost, "/portfolios/import"},
		{http.MethodPost, "/marketplace/components"},
		{http.MethodGet, "/marketplace/pending"},
	} {
		w := env.do(t, route.method, route.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)

		w = env.do(t, route.method, route.path, nil, "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestAuth_TokenOfDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "ada@example.com")

	env.db.mu.Lock()
	delete(env.db.users, userID)
	env.db.mu.Unlock()

	w := env.do(t, http.MethodGet, "/auth/me", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
