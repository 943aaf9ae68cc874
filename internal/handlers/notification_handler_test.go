package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationSettingsUpsert(t *testing.T) {
	r := setupRouter(t)

	alice := registerUser(t, r, "alice", "patient")

	w := doRequest(t, r, http.MethodPut, "/api/notification-settings", alice.Token, gin.H{
		"channel":   "email",
		"is_active": true,
		"config":    gin.H{"address": "alice@example.com"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPut, "/api/notification-settings", alice.Token, gin.H{
		"channel": "carrier-pigeon",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/notification-settings", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rules []struct {
		Channel  string                 `json:"channel"`
		IsActive bool                   `json:"is_active"`
		Config   map[string]interface{} `json:"config"`
	}
	decodeBody(t, w, &rules)
	require.Len(t, rules, 1)
	assert.Equal(t, "email", rules[0].Channel)
	assert.True(t, rules[0].IsActive)
	assert.Equal(t, "alice@example.com", rules[0].Config["address"])

	// Updating the same channel replaces the rule instead of adding one.
	w = doRequest(t, r, http.MethodPut, "/api/notification-settings", alice.Token, gin.H{
		"channel":   "email",
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/notification-settings", alice.Token, nil)
	decodeBody(t, w, &rules)
	require.Len(t, rules, 1)
	assert.False(t, rules[0].IsActive)
}

func TestTestNotification(t *testing.T) {
	r := setupRouter(t)

	alice := registerUser(t, r, "alice", "patient")

	// No active channels yet.
	w := doRequest(t, r, http.MethodPost, "/api/notification-settings/test", alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPut, "/api/notification-settings", alice.Token, gin.H{
		"channel":   "push",
		"is_active": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/notification-settings/test", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Channels int `json:"channels"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, 1, resp.Channels)
}
