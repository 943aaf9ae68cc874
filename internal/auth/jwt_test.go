package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJWTSecretRejectsEmpty(t *testing.T) {
	assert.Error(t, InitJWTSecret(""))
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	tokenString, err := GenerateJWT(42, "alice", "patient")
	require.NoError(t, err)

	token, err := VerifyJWT(tokenString)
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)

	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "patient", claims["role"])
}

func TestVerifyJWTRejectsTampering(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	tokenString, err := GenerateJWT(1, "bob", "caretaker")
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString + "x")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	claims := jwt.MapClaims{
		"user_id":  uint(1),
		"username": "bob",
		"role":     "patient",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	}

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	_, err = VerifyJWT(expired)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2hunter2", hash)
	assert.True(t, CheckPassword("hunter2hunter2", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
}
