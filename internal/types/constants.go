package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

const (
	RolePatient   = "patient"
	RoleCaretaker = "caretaker"
)

// Frequencies is the closed set of accepted medication frequencies.
var Frequencies = []string{"daily", "twice_daily", "weekly", "monthly", "as_needed"}

// Channels is the closed set of accepted notification channels.
var Channels = []string{"email", "push", "webhook"}

func ValidRole(role string) bool {
	return role == RolePatient || role == RoleCaretaker
}

func ValidFrequency(frequency string) bool {
	for _, f := range Frequencies {
		if f == frequency {
			return true
		}
	}
	return false
}

func ValidChannel(channel string) bool {
	for _, c := range Channels {
		if c == channel {
			return true
		}
	}
	return false
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
