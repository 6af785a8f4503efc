package timezone

import (
	"errors"
	"time"
)

const DefaultTimezone = "America/New_York"

var errInvalidDate = errors.New("invalid date")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDate accepts an RFC 3339 timestamp, or a calendar day interpreted as
// midnight in tz.
func ParseDate(raw string, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, Location(tz)); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidDate
}
