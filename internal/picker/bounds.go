package picker

import "time"

// Bounds restricts the navigable and selectable range.
// A zero Min or Max means that side is unbounded.
// Callers are expected to keep Min <= Max; it is not checked here.
type Bounds struct {
	Min time.Time
	Max time.Time
}

// HasMin reports whether a lower bound is set
func (b Bounds) HasMin() bool {
	return !b.Min.IsZero()
}

// HasMax reports whether an upper bound is set
func (b Bounds) HasMax() bool {
	return !b.Max.IsZero()
}

// IsDisabled reports whether d falls outside [Min, Max]
func (b Bounds) IsDisabled(d time.Time) bool {
	return (b.HasMin() && d.Before(b.Min)) || (b.HasMax() && d.After(b.Max))
}

// IsDayDisabled reports whether the calendar day of d falls outside the
// days of Min and Max. Times of day are ignored on all three.
func (b Bounds) IsDayDisabled(d time.Time) bool {
	day := dayNumber(d)
	return (b.HasMin() && day < dayNumber(b.Min)) || (b.HasMax() && day > dayNumber(b.Max))
}

func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// IsMonthBeforeAllowed reports whether navigating to the month before view
// stays within the lower bound.
func (b Bounds) IsMonthBeforeAllowed(view time.Time) bool {
	return !b.HasMin() || MonthDistance(view, b.Min) < 0
}

// IsMonthAfterAllowed reports whether navigating to the month after view
// stays within the upper bound.
func (b Bounds) IsMonthAfterAllowed(view time.Time) bool {
	return !b.HasMax() || MonthDistance(view, b.Max) > 0
}

// MonthDistance returns the number of calendar months from "from" to "to".
// Days and times are ignored: Jan 31 to Feb 1 is one month.
func MonthDistance(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
