// Package month provides calendar-month arithmetic for the generators.
// All months are normalized to midnight UTC on the first day of the month.
package month

import "time"

// Norm truncates t to the first day of its calendar month in UTC.
func Norm(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Add returns the month n calendar months after m.
func Add(m time.Time, n int) time.Time {
	m = Norm(m)
	return m.AddDate(0, n, 0)
}

// Diff returns the number of whole calendar months from a to b
// (negative when b precedes a). Floor semantics: day-of-month is ignored
// because both operands are normalized first.
func Diff(a, b time.Time) int {
	a, b = Norm(a), Norm(b)
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// Sequence returns the inclusive run of months from first to last in
// chronological order. An empty slice is returned when last precedes first.
func Sequence(first, last time.Time) []time.Time {
	first, last = Norm(first), Norm(last)
	n := Diff(first, last)
	if n < 0 {
		return nil
	}
	out := make([]time.Time, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, Add(first, i))
	}
	return out
}

// Before reports whether a is strictly earlier than b at month granularity.
func Before(a, b time.Time) bool {
	return Norm(a).Before(Norm(b))
}
