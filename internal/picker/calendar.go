package picker

import "time"

// MonthRelation places a grid cell relative to the visible month
type MonthRelation int

const (
	Current MonthRelation = iota
	Previous
	Next
)

func (r MonthRelation) String() string {
	switch r {
	case Previous:
		return "previous"
	case Next:
		return "next"
	default:
		return "current"
	}
}

// DayCell is one entry of the month grid
type DayCell struct {
	Date       time.Time
	Relation   MonthRelation
	IsToday    bool
	IsDisabled bool
}

// GridOptions controls optional grid behavior
type GridOptions struct {
	// PadTrailing fills the last week with cells from the next month so the
	// grid always holds whole weeks.
	PadTrailing bool
}

// BuildCalendar returns the day cells for the month containing view.
//
// The grid starts on Sunday. Leading cells from the previous month fill the
// first week up to day 1, then one cell per day of the month follows. Every
// cell carries view's time of day, which is what selecting it commits.
// Cells are disabled by calendar day, so a date-only bound never disables
// its own day.
func BuildCalendar(view time.Time, bounds Bounds, today time.Time, opts GridOptions) []DayCell {
	year, month := view.Year(), view.Month()
	first := time.Date(year, month, 1, view.Hour(), view.Minute(), 0, 0, view.Location())
	leading := int(first.Weekday())
	days := DaysIn(year, month)

	size := leading + days
	if opts.PadTrailing {
		size = (size + 6) / 7 * 7
	}
	cells := make([]DayCell, 0, size)

	for i := leading; i > 0; i-- {
		d := first.AddDate(0, 0, -i)
		cells = append(cells, newCell(d, Previous, bounds, today))
	}
	for day := 1; day <= days; day++ {
		d := first.AddDate(0, 0, day-1)
		cells = append(cells, newCell(d, Current, bounds, today))
	}
	for i := 1; len(cells) < size; i++ {
		d := first.AddDate(0, 0, days-1+i)
		cells = append(cells, newCell(d, Next, bounds, today))
	}

	return cells
}

func newCell(d time.Time, rel MonthRelation, bounds Bounds, today time.Time) DayCell {
	return DayCell{
		Date:       d,
		Relation:   rel,
		IsToday:    rel == Current && sameDay(d, today),
		IsDisabled: bounds.IsDayDisabled(d),
	}
}

// Weeks splits cells into rows of seven. The last row is short when the
// grid was built without trailing padding.
func Weeks(cells []DayCell) [][]DayCell {
	var rows [][]DayCell
	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[start:end])
	}
	return rows
}

// FindDay returns the Current cell for the given day-of-month
func FindDay(cells []DayCell, day int) (DayCell, bool) {
	for _, c := range cells {
		if c.Relation == Current && c.Date.Day() == day {
			return c, true
		}
	}
	return DayCell{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
