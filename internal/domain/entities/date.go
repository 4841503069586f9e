package entities

import "time"

// DateLayout is the ISO-8601 calendar date format accepted at the edges.
const DateLayout = "2006-01-02"

// Date truncates t to its calendar date, expressed as midnight UTC. The
// year/month/day are taken in t's own location, so a local 23:30 stays on the
// same day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 calendar date such as "2024-01-04".
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DaysBetween returns the whole number of calendar days from a to b. Both are
// normalized with Date first, so DST shifts never produce fractional days.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}
