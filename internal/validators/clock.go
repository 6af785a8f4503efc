package validators

import "time"

// ParseHM parses a "HH:MM" wall-clock time.
func ParseHM(hm string) (time.Time, bool) {
	if len(hm) != 5 {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", hm)
	return t, err == nil
}

// StartsBefore reports whether start is strictly earlier than end (both "HH:MM").
func StartsBefore(start, end string) bool {
	s, ok1 := ParseHM(start)
	e, ok2 := ParseHM(end)
	return ok1 && ok2 && s.Before(e)
}
