package picker

import "time"

const (
	// DefaultFirstYear is the first selectable year without a lower bound
	DefaultFirstYear = 1900
	// DefaultYearsAhead is how far past today the list runs without an upper bound
	DefaultYearsAhead = 100
)

// Years returns the selectable years in ascending order, inclusive of both ends
func Years(bounds Bounds, today time.Time) []int {
	first := DefaultFirstYear
	if bounds.HasMin() {
		first = bounds.Min.Year()
	}
	last := today.Year() + DefaultYearsAhead
	if bounds.HasMax() {
		last = bounds.Max.Year()
	}
	if last < first {
		return nil
	}

	years := make([]int, 0, last-first+1)
	for y := first; y <= last; y++ {
		years = append(years, y)
	}
	return years
}
