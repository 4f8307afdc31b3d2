// Package dateutil works with calendar dates held in time.Time values.
// A date is always midnight UTC so that dates compare and hash consistently
// regardless of the zone they were read in.
package dateutil

import "time"

const Layout = "2006-01-02"

// Truncate drops the clock part of t, keeping the calendar date t shows in its own zone.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Truncate(now.In(loc))
}

func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

func Key(t time.Time) string {
	return t.Format(Layout)
}

// Range returns every date from from to to inclusive, or nil when to is before from.
func Range(from, to time.Time) []time.Time {
	from, to = Truncate(from), Truncate(to)
	if to.Before(from) {
		return nil
	}
	days := make([]time.Time, 0, DaysBetween(from, to)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DaysBetween counts whole days from from to to.
func DaysBetween(from, to time.Time) int {
	return int(Truncate(to).Sub(Truncate(from)).Hours() / 24)
}

// Within reports whether d falls in [from, to] by calendar date.
func Within(d, from, to time.Time) bool {
	d = Truncate(d)
	return !d.Before(Truncate(from)) && !d.After(Truncate(to))
}
