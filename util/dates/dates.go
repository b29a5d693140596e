package dates

import "time"

// FirstDayOfMonth returns midnight of the first day of t's month in t's
// location.
func FirstDayOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()

	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EqualMonth reports whether a and b fall into the same month of the same
// year.
func EqualMonth(a, b time.Time) bool {
	ya, ma, _ := a.Date()
	yb, mb, _ := b.Date()

	return ya == yb && ma == mb
}
