package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/medtrack-dev/medtrack/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"password": "password123",
		"role":     "patient",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"password": "password123",
		"email":    "alice@example.com",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, "alice", "patient")

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"password": "password123",
		"email":    "other@example.com",
		"role":     "patient",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Same contact address under a different handle is also a conflict.
	w = doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice2",
		"password": "password123",
		"email":    "alice@example.com",
		"role":     "patient",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterThenLogin(t *testing.T) {
	r := setupRouter(t)

	registered := registerUser(t, r, "alice", "patient")

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp authResponse
	decodeBody(t, w, &resp)

	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.Equal(t, "patient", resp.User.Role)

	// The credential embeds the registered identity.
	token, err := auth.VerifyJWT(resp.Token)
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(registered.User.ID), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, "alice", "patient")

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "nobody",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	r := setupRouter(t)

	registered := registerUser(t, r, "carla", "caretaker")

	w := doRequest(t, r, http.MethodGet, "/api/auth/me", registered.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, w, &resp)

	assert.Equal(t, "carla", resp.User.Username)
	assert.Equal(t, "caretaker", resp.User.Role)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/medications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/medications", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
