package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-tracker/internal/dto"
	apierrors "github.com/yukikurage/team-task-tracker/internal/errors"
	"github.com/yukikurage/team-task-tracker/internal/models"
)

func TestAuthHandler_Signup(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "newuser",
		"password": testPassword,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	decode(t, w, &response)
	assert.Equal(t, "newuser", response.Username)
	assert.Equal(t, models.RoleMember, response.Role)
}

func TestAuthHandler_SignupDuplicate(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")

	w := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice",
		"password": "other",
	}, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	var response apierrors.APIError
	decode(t, w, &response)
	assert.Equal(t, apierrors.ErrCodeDuplicateUsername, response.Code)
}

func TestAuthHandler_SignupPasswordMismatch(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username":         "alice",
		"password":         "one",
		"confirm_password": "two",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_SignupRejectsOverlongInput(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"password beyond 72 bytes", "alice", strings.Repeat("p", 80)},
		{"username beyond 255 characters", strings.Repeat("a", 256), testPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
				"username": tt.username,
				"password": tt.password,
			}, nil)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var response apierrors.APIError
			decode(t, w, &response)
			assert.Equal(t, apierrors.ErrCodeInvalidInput, response.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": testBoss,
		"password": testPassword,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	decode(t, w, &response)
	assert.Equal(t, testBoss, response.Username)
	assert.Equal(t, models.RoleBoss, response.Role)
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response apierrors.APIError
	decode(t, w, &response)
	assert.Equal(t, apierrors.ErrCodeInvalidCredentials, response.Code)
}

func TestAuthHandler_LoginUsernameIsCaseSensitive(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "ALICE",
		"password": testPassword,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginUnknownUser(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "nobody",
		"password": testPassword,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")
	cookies := env.login(t, "alice")

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	decode(t, w, &response)
	assert.Equal(t, "alice", response.Username)
}

func TestAuthHandler_GetCurrentUserRequiresSession(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_ListMembers(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "carol")
	env.register(t, "alice")
	cookies := env.login(t, testBoss)

	w := env.do(t, http.MethodGet, "/api/users/members", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Members []dto.UserDTO `json:"members"`
	}
	decode(t, w, &response)
	require.Len(t, response.Members, 2)
	assert.Equal(t, "alice", response.Members[0].Username)
	assert.Equal(t, "carol", response.Members[1].Username)
}
