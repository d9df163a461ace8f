package picker

import "time"

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	// Day 0 of next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IncrementMonth moves d by delta months, keeping the day-of-month and time.
// When the target month is shorter, the day is clamped to its last day, so
// Jan 31 + 1 month is Feb 28 (or Feb 29 in a leap year).
func IncrementMonth(d time.Time, delta int) time.Time {
	total := d.Year()*12 + int(d.Month()) - 1 + delta
	year := floorDiv(total, 12)
	month := time.Month(total-year*12) + 1
	return withDate(d, year, month, d.Day())
}

// IncrementYear moves d by delta years with the same clamping as IncrementMonth
func IncrementYear(d time.Time, delta int) time.Time {
	return withDate(d, d.Year()+delta, d.Month(), d.Day())
}

// IncrementDay moves d by delta days with normal calendar carry
func IncrementDay(d time.Time, delta int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day()+delta, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// IncrementHour moves d by delta wall-clock hours, carrying into the date
func IncrementHour(d time.Time, delta int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour()+delta, d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// IncrementMinute moves d by delta wall-clock minutes, carrying into hours and the date
func IncrementMinute(d time.Time, delta int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute()+delta, d.Second(), d.Nanosecond(), d.Location())
}

// SetYear replaces the year of d, clamping Feb 29 to Feb 28 where needed
func SetYear(d time.Time, year int) time.Time {
	return withDate(d, year, d.Month(), d.Day())
}

// SetDay replaces the day-of-month of d, clamped to the month length
func SetDay(d time.Time, day int) time.Time {
	return withDate(d, d.Year(), d.Month(), day)
}

// SetHour replaces the hour of d. The value is not wrapped.
func SetHour(d time.Time, hour int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// SetMinute replaces the minute of d. The value is not wrapped.
func SetMinute(d time.Time, minute int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), minute, d.Second(), d.Nanosecond(), d.Location())
}

func withDate(d time.Time, year int, month time.Month, day int) time.Time {
	if last := DaysIn(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
