package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitDefaultsToUTC(t *testing.T) {
	assert.NoError(t, Init(""))
	assert.Equal(t, time.UTC, Location())
}

func TestInitRejectsUnknownZone(t *testing.T) {
	assert.Error(t, Init("Not/AZone"))
	assert.NoError(t, Init(""))
}

func TestDateOfUsesConfiguredZone(t *testing.T) {
	assert.NoError(t, Init(""))

	// 01:30+04:00 is still the previous calendar day in UTC.
	zone := time.FixedZone("UTC+4", 4*3600)
	instant := time.Date(2025, 3, 16, 1, 30, 0, 0, zone)

	assert.Equal(t, "2025-03-15", DateOf(instant))
}
