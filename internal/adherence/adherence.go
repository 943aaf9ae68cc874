// Package adherence derives adherence metrics from intake timestamps. All
// functions are pure: the reference time and zone are explicit arguments, so
// results are deterministic and testable in isolation.
package adherence

import (
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// roundFloat rounds a float64 to a specified number of decimal places.
func roundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// CalculateAdherence returns the percentage of taken doses over total
// expected doses, rounded to two decimal places. Returns 0 when total is 0.
func CalculateAdherence(taken, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundFloat(float64(taken)/float64(total)*100, 2)
}

// AdherenceRate returns the whole-percent adherence over the trailing
// windowDays-day window ending on the day of now, expecting one intake per
// medication per day. Returns 0 when there are no events or no medications.
func AdherenceRate(takenAt []time.Time, medicationCount int, windowDays int, now time.Time, loc *time.Location) int {
	if len(takenAt) == 0 || medicationCount == 0 || windowDays <= 0 {
		return 0
	}

	today := now.In(loc).Format(dateLayout)
	windowStart := now.In(loc).AddDate(0, 0, -(windowDays - 1)).Format(dateLayout)

	taken := 0

	for _, t := range takenAt {
		day := t.In(loc).Format(dateLayout)
		if day >= windowStart && day <= today {
			taken++
		}
	}

	expected := medicationCount * windowDays
	return int(math.Round(float64(taken) / float64(expected) * 100))
}

// CurrentStreak counts consecutive days, ending on the day of now, on which
// every medication was logged. It walks backward one day at a time and stops
// on the first day with fewer events than medications.
func CurrentStreak(takenAt []time.Time, medicationCount int, now time.Time, loc *time.Location) int {
	if medicationCount == 0 {
		return 0
	}

	perDay := make(map[string]int, len(takenAt))

	for _, t := range takenAt {
		perDay[t.In(loc).Format(dateLayout)]++
	}

	streak := 0

	for day := now.In(loc); perDay[day.Format(dateLayout)] >= medicationCount; day = day.AddDate(0, 0, -1) {
		streak++
	}

	return streak
}
