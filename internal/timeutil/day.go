package timeutil

import "time"

// DateLayout is the calendar-day format used for intake bookkeeping.
const DateLayout = "2006-01-02"

// location is the single authoritative zone for computing "today". The
// original behavior leaned on the ambient runtime zone; here it is explicit
// and defaults to UTC.
var location = time.UTC

// Init sets the zone used for calendar-day computations. An empty name keeps
// the UTC default.
func Init(name string) error {
	if name == "" {
		location = time.UTC
		return nil
	}

	loc, err := time.LoadLocation(name)

	if err != nil {
		return err
	}

	location = loc
	return nil
}

func Location() *time.Location {
	return location
}

// DateOf returns the calendar date of t in the configured zone.
func DateOf(t time.Time) string {
	return t.In(location).Format(DateLayout)
}

// Today returns the current calendar date in the configured zone.
func Today() string {
	return DateOf(time.Now())
}
