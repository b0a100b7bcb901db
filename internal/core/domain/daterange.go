package domain

import "time"

// DateRange bounds a clock-in filter. A zero From or To leaves that side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the inclusive range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// StartOfDay returns midnight of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay returns the last millisecond (23:59:59.999) of t's calendar date
// in loc, whatever time of day t carries.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}

// InclusiveDays widens r so that it covers the whole of its end date. Used by
// every report and admin listing.
func (r DateRange) InclusiveDays(loc *time.Location) DateRange {
	out := r
	if !r.To.IsZero() {
		out.To = EndOfDay(r.To, loc)
	}
	return out
}
