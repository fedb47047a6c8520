package booking

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.Time, the
// canonical date representation used throughout the engine.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// Day truncates t to UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats a date the way responses and maps key it.
func DateKey(d time.Time) string { return d.Format(dateLayout) }

// eachDate calls fn for every date in the inclusive range [from, to].
func eachDate(from, to time.Time, fn func(d time.Time)) {
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// eachNight calls fn for every occupied night of the half-open stay
// [checkIn, checkOut).
func eachNight(checkIn, checkOut time.Time, fn func(d time.Time)) {
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
