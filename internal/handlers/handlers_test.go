package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/medtrack-dev/medtrack/db"
	"github.com/medtrack-dev/medtrack/internal/auth"
	"github.com/medtrack-dev/medtrack/internal/models"
	"github.com/medtrack-dev/medtrack/internal/router"
	"github.com/medtrack-dev/medtrack/internal/timeutil"
	"github.com/medtrack-dev/medtrack/internal/types"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupRouter wires the full route tree against a fresh in-memory database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// A pooled second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Medication{},
		&models.MedicationLog{},
		&models.CareRelationship{},
		&models.NotificationRule{},
	))

	db.DB = gdb

	require.NoError(t, auth.InitJWTSecret("test-secret"))
	require.NoError(t, timeutil.Init(""))

	return router.NewRouter()
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type authResponse struct {
	Token string             `json:"token"`
	User  types.UserResponse `json:"user"`
}

func registerUser(t *testing.T, r *gin.Engine, username, role string) authResponse {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": "password123",
		"email":    username + "@example.com",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp authResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp
}

type medicationEnvelope struct {
	Medication struct {
		ID        uint   `json:"id"`
		Name      string `json:"name"`
		Dosage    string `json:"dosage"`
		Frequency string `json:"frequency"`
		Time      string `json:"time"`
	} `json:"medication"`
}

func createMedication(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/medications", token, gin.H{
		"name":      name,
		"dosage":    "10mg",
		"frequency": "daily",
		"time":      "08:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp medicationEnvelope
	decodeBody(t, w, &resp)
	require.NotZero(t, resp.Medication.ID)
	return resp.Medication.ID
}
