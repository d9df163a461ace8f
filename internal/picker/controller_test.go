package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedTime returns a function that always returns the given time
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type fakeHost struct {
	width    int
	focused  int
	laidOut  bool
	scrolled []int
}

func (h *fakeHost) TriggerWidth() int {
	return h.width
}

func (h *fakeHost) Focus() {
	h.focused++
}

func (h *fakeHost) ScrollToYear(year int) bool {
	if !h.laidOut {
		return false
	}
	h.scrolled = append(h.scrolled, year)
	return true
}

// recorder counts emitted events in order
type recorder struct {
	events  []string
	changes []time.Time
}

func (r *recorder) attach(c *Controller) {
	c.OnOpen(func() { r.events = append(r.events, "open") })
	c.OnClose(func() { r.events = append(r.events, "close") })
	c.OnChange(func(ch Change) {
		r.events = append(r.events, "change")
		r.changes = append(r.changes, ch.Value)
	})
	c.RegisterOnChange(func(time.Time) { r.events = append(r.events, "onChange") })
}

var now = time.Date(2024, time.June, 12, 8, 15, 0, 0, time.UTC)

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeHost, *TaskQueue, *recorder) {
	t.Helper()
	host := &fakeHost{width: 30, laidOut: true}
	queue := &TaskQueue{}
	base := []Option{WithNow(fixedTime(now)), WithHost(host), WithScheduler(queue)}
	c := New(append(base, opts...)...)
	rec := &recorder{}
	rec.attach(c)
	return c, host, queue, rec
}

// TestScenario_DateOnlyOpenWithValue tests that opening a date picker with a
// committed value starts on the calendar at that value
func TestScenario_DateOnlyOpenWithValue(t *testing.T) {
	// Given: a date-only picker holding 2024-03-15
	c, _, _, rec := newTestController(t, WithGranularity(Date))
	c.WriteValue(date(2024, time.March, 15))

	// When: it opens
	c.Open()

	// Then: the calendar shows the committed value
	assert.True(t, c.IsOpen())
	assert.Equal(t, Calendar, c.Mode())
	assert.Equal(t, date(2024, time.March, 15), c.ViewDate())
	assert.Equal(t, []string{"open"}, rec.events)
}

// TestScenario_TimeOnlyFlow tests the time-only open, hour, minute sequence
func TestScenario_TimeOnlyFlow(t *testing.T) {
	// Given: a time-only picker with no bounds
	c, host, _, rec := newTestController(t, WithGranularity(Time))

	// When: it opens
	c.Open()
	assert.Equal(t, HourClock, c.Mode())

	// And: 9 is picked on the hour dial
	c.SelectHour(9)
	assert.Equal(t, MinuteClock, c.Mode())
	assert.Equal(t, 9, c.ViewDate().Hour())

	// And: 30 is picked on the minute dial
	c.SelectMinute(30)

	// Then: the value is committed on today's date and the panel closes
	want := time.Date(2024, time.June, 12, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, want, c.Value())
	assert.False(t, c.IsOpen())
	assert.Equal(t, 1, host.focused)

	// And: change fires exactly once, after the registered callback and before close
	assert.Equal(t, []string{"open", "onChange", "change", "close"}, rec.events)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, want, rec.changes[0])
}

func TestScenario_DateTimeFlow(t *testing.T) {
	c, _, _, rec := newTestController(t)

	c.Open()
	assert.Equal(t, Calendar, c.Mode())

	cell, ok := FindDay(c.Days(), 20)
	require.True(t, ok)
	require.True(t, c.SelectDay(cell))
	assert.Equal(t, HourClock, c.Mode())
	assert.Equal(t, 20, c.ViewDate().Day())

	c.Confirm()
	assert.Equal(t, MinuteClock, c.Mode())

	c.Confirm()
	assert.False(t, c.IsOpen())
	assert.Equal(t, time.Date(2024, time.June, 20, 8, 15, 0, 0, time.UTC), c.Value())
	assert.Equal(t, []string{"open", "onChange", "change", "close"}, rec.events)
}

func TestSelectDay_DateOnlyCommits(t *testing.T) {
	c, _, _, rec := newTestController(t, WithGranularity(Date))
	c.Open()

	cell, ok := FindDay(c.Days(), 3)
	require.True(t, ok)
	c.SelectDay(cell)

	assert.False(t, c.IsOpen())
	assert.Equal(t, 3, c.Value().Day())
	assert.Len(t, rec.changes, 1)
}

// TestSelectDay_MaxDayLateInDay tests that the last allowed day can be
// picked when the clock is past midnight
func TestSelectDay_MaxDayLateInDay(t *testing.T) {
	// Given: it is 14:30 and max is today's date
	late := time.Date(2025, time.December, 10, 14, 30, 0, 0, time.UTC)
	c, _, _, rec := newTestController(t,
		WithNow(fixedTime(late)),
		WithGranularity(Date),
		WithBounds(Bounds{Min: date(2020, time.January, 1), Max: date(2025, time.December, 31)}),
	)
	c.Open()

	// When: Dec 31 is clicked
	cell, ok := FindDay(c.Days(), 31)
	require.True(t, ok)
	require.False(t, cell.IsDisabled)
	selected := c.SelectDay(cell)

	// Then: it commits
	assert.True(t, selected)
	assert.Equal(t, time.Date(2025, time.December, 31, 14, 30, 0, 0, time.UTC), c.Value())
	assert.Equal(t, []string{"open", "onChange", "change", "close"}, rec.events)
}

func TestSelectDay_TodayAsMax(t *testing.T) {
	late := time.Date(2025, time.December, 10, 14, 30, 0, 0, time.UTC)
	c, _, _, _ := newTestController(t,
		WithNow(fixedTime(late)),
		WithGranularity(Date),
		WithBounds(Bounds{Max: date(2025, time.December, 10)}),
	)
	c.Open()

	today, ok := FindDay(c.Days(), 10)
	require.True(t, ok)
	assert.True(t, today.IsToday)
	assert.False(t, today.IsDisabled)

	tomorrow, ok := FindDay(c.Days(), 11)
	require.True(t, ok)
	assert.True(t, tomorrow.IsDisabled)
}

func TestSelectDay_DisabledIsNoOp(t *testing.T) {
	// Given: an open picker whose min is June 10
	c, _, _, rec := newTestController(t, WithGranularity(Date), WithBounds(Bounds{Min: date(2024, time.June, 10)}))
	c.Open()
	before := c.ViewDate()

	// When: June 5 is clicked
	cell, ok := FindDay(c.Days(), 5)
	require.True(t, ok)
	require.True(t, cell.IsDisabled)
	selected := c.SelectDay(cell)

	// Then: nothing happens
	assert.False(t, selected)
	assert.True(t, c.IsOpen())
	assert.Equal(t, before, c.ViewDate())
	assert.Equal(t, Calendar, c.Mode())
	assert.Equal(t, []string{"open"}, rec.events)
}

func TestSelectDay_NeighbourMonthsNavigate(t *testing.T) {
	c, _, _, rec := newTestController(t, WithGridOptions(GridOptions{PadTrailing: true}))
	c.Open()

	days := c.Days()
	require.Equal(t, Previous, days[0].Relation)
	c.SelectDay(days[0])
	assert.Equal(t, time.May, c.ViewDate().Month())
	assert.Equal(t, 12, c.ViewDate().Day())
	assert.Equal(t, Calendar, c.Mode())

	days = c.Days()
	last := days[len(days)-1]
	require.Equal(t, Next, last.Relation)
	c.SelectDay(last)
	assert.Equal(t, time.June, c.ViewDate().Month())

	assert.Empty(t, rec.changes)
}

func TestConfirm_CalendarDisabledViewDate(t *testing.T) {
	c, _, _, rec := newTestController(t, WithGranularity(Date), WithBounds(Bounds{Max: date(2024, time.June, 1)}))
	c.Open()

	c.Confirm()

	assert.True(t, c.IsOpen())
	assert.Empty(t, rec.changes)
}

func TestYearList(t *testing.T) {
	// Given: a picker on 2024-02-29 with a laid-out year list
	c, host, queue, _ := newTestController(t, WithBounds(Bounds{Min: date(2020, time.January, 1), Max: date(2030, time.December, 31)}))
	c.WriteValue(date(2024, time.February, 29))
	c.Open()

	// When: the year list is shown
	c.ShowYears()
	assert.Equal(t, YearList, c.Mode())
	assert.Equal(t, 2020, c.Years()[0])

	// Then: the scroll waits until the deferred queue runs
	assert.Empty(t, host.scrolled)
	assert.Equal(t, 1, queue.Pending())
	queue.Flush()
	assert.Equal(t, []int{2024}, host.scrolled)

	// When: 2023 is selected
	c.SelectYear(2023)

	// Then: the leap day is clamped and the calendar returns
	assert.Equal(t, Calendar, c.Mode())
	assert.Equal(t, date(2023, time.February, 28), c.ViewDate())
	assert.Equal(t, 2023, c.Days()[len(c.Days())-1].Date.Year())
}

func TestYearList_ScrollWithoutLayoutIsNoOp(t *testing.T) {
	c, host, queue, _ := newTestController(t)
	host.laidOut = false
	c.Open()
	c.ShowYears()

	assert.NotPanics(t, queue.Flush)
	assert.Empty(t, host.scrolled)
}

func TestYearList_ScrollSkippedAfterLeaving(t *testing.T) {
	c, host, queue, _ := newTestController(t)
	c.Open()
	c.ShowYears()
	c.Confirm()
	assert.Equal(t, Calendar, c.Mode())

	queue.Flush()
	assert.Empty(t, host.scrolled)
}

func TestYearList_StepYearClampsToList(t *testing.T) {
	c, _, queue, _ := newTestController(t, WithBounds(Bounds{Min: date(2023, time.January, 1), Max: date(2025, time.December, 31)}))
	c.Open()
	c.ShowYears()

	c.HandleKey(KeyPageDown)
	assert.Equal(t, 2025, c.ViewDate().Year())
	c.HandleKey(KeyPageUp)
	assert.Equal(t, 2023, c.ViewDate().Year())
	c.HandleKey(KeyDown)
	assert.Equal(t, 2024, c.ViewDate().Year())

	assert.Equal(t, 4, queue.Pending())
}

func TestOpenClose_Idempotent(t *testing.T) {
	c, host, _, rec := newTestController(t)

	c.Close()
	c.Open()
	c.Open()
	c.Close()
	c.Close()

	assert.Equal(t, []string{"open", "close"}, rec.events)
	assert.Equal(t, 1, host.focused)
}

func TestClose_ResetsModeForNextOpen(t *testing.T) {
	c, _, _, rec := newTestController(t)
	c.Open()
	cell, _ := FindDay(c.Days(), 1)
	c.SelectDay(cell)
	c.SelectHour(10)
	require.Equal(t, MinuteClock, c.Mode())

	c.Cancel()

	assert.Equal(t, Calendar, c.Mode())
	assert.False(t, c.HasValue())
	assert.Empty(t, rec.changes)
}

func TestDisabledControlDoesNotOpen(t *testing.T) {
	c, _, _, rec := newTestController(t)
	c.SetDisabled(true)

	c.Open()
	c.HandleKey(KeyEnter)

	assert.False(t, c.IsOpen())
	assert.Empty(t, rec.events)

	c.SetDisabled(false)
	c.HandleKey(KeySpace)
	assert.True(t, c.IsOpen())
}

func TestValueAccessor(t *testing.T) {
	c, _, _, rec := newTestController(t)
	touched := 0
	c.RegisterOnTouched(func() { touched++ })

	// WriteValue sets the value silently
	c.WriteValue(date(2022, time.January, 2))
	assert.Equal(t, date(2022, time.January, 2), c.Value())
	assert.Empty(t, rec.events)

	// Blur while open is the trigger losing focus to the panel
	c.Open()
	c.Blur()
	assert.Equal(t, 0, touched)

	c.Close()
	c.Blur()
	assert.Equal(t, 1, touched)
}

func TestHandleKey_CalendarNavigation(t *testing.T) {
	c, _, _, _ := newTestController(t, WithGranularity(Date))

	c.HandleKey(KeyEnter)
	require.True(t, c.IsOpen())

	c.HandleKey(KeyRight)
	assert.Equal(t, 13, c.ViewDate().Day())
	c.HandleKey(KeyDown)
	assert.Equal(t, 20, c.ViewDate().Day())
	c.HandleKey(KeyUp)
	c.HandleKey(KeyLeft)
	assert.Equal(t, 12, c.ViewDate().Day())

	c.HandleKey(KeyPageDown)
	assert.Equal(t, time.July, c.ViewDate().Month())
	assert.Equal(t, time.July, c.Days()[len(c.Days())-1].Date.Month())

	c.HandleKey(KeyEscape)
	assert.False(t, c.IsOpen())
	assert.False(t, c.HasValue())
}

func TestHandleKey_StepDayRebuildsOnMonthChange(t *testing.T) {
	c, _, _, _ := newTestController(t)
	c.WriteValue(date(2024, time.June, 30))
	c.Open()

	c.HandleKey(KeyRight)

	assert.Equal(t, date(2024, time.July, 1), c.ViewDate())
	cell, ok := FindDay(c.Days(), 31)
	require.True(t, ok)
	assert.Equal(t, time.July, cell.Date.Month())
}

func TestHandleKey_Clocks(t *testing.T) {
	c, _, _, rec := newTestController(t, WithGranularity(Time))
	c.Open()

	c.HandleKey(KeyUp)
	assert.Equal(t, 9, c.ViewDate().Hour())
	c.HandleKey(KeyEnter)
	assert.Equal(t, MinuteClock, c.Mode())

	c.HandleKey(KeyPageUp)
	assert.Equal(t, 20, c.ViewDate().Minute())
	c.HandleKey(KeyBackspace)
	assert.Equal(t, HourClock, c.Mode())

	// Back does not leave the clocks on a time-only picker
	c.HandleKey(KeyBackspace)
	assert.Equal(t, HourClock, c.Mode())

	c.HandleKey(KeyEnter)
	c.HandleKey(KeySpace)
	assert.False(t, c.IsOpen())
	assert.Equal(t, time.Date(2024, time.June, 12, 9, 20, 0, 0, time.UTC), c.Value())
	assert.Len(t, rec.changes, 1)
}

func TestMonthNavigationRespectsBounds(t *testing.T) {
	c, _, _, _ := newTestController(t, WithBounds(Bounds{Min: date(2024, time.June, 1), Max: date(2024, time.July, 31)}))
	c.Open()

	assert.False(t, c.PrevMonthAllowed())
	assert.False(t, c.PrevMonth())
	assert.Equal(t, time.June, c.ViewDate().Month())

	assert.True(t, c.NextMonth())
	assert.Equal(t, time.July, c.ViewDate().Month())
	assert.False(t, c.NextMonthAllowed())
	assert.False(t, c.NextMonth())
}

func TestSelectPoint(t *testing.T) {
	c, _, _, _ := newTestController(t, WithGranularity(Time))
	c.Open()
	face := c.ClockFace()

	// Outer ring at 3 o'clock is 15
	assert.True(t, c.SelectPoint(face.OuterRadius, 0))
	assert.Equal(t, 15, c.ViewDate().Hour())
	assert.Equal(t, MinuteClock, c.Mode())

	// Off the dial is ignored
	assert.False(t, c.SelectPoint(face.DialRadius+10, 0))
	assert.True(t, c.IsOpen())

	// 45 minutes is 9 o'clock
	assert.True(t, c.SelectPoint(-face.OuterRadius, 0))
	assert.False(t, c.IsOpen())
	assert.Equal(t, 15, c.Value().Hour())
	assert.Equal(t, 45, c.Value().Minute())
}

func TestSelectPoint_Hour12KeepsPeriod(t *testing.T) {
	face := DefaultClockFace()
	face.Hour12 = true
	c, _, _, _ := newTestController(t, WithGranularity(Time), WithClockFace(face))
	c.WriteValue(time.Date(2024, time.June, 12, 14, 0, 0, 0, time.UTC))
	c.Open()

	// 4 o'clock in the afternoon
	x, y := face.TimeToPoint(4, HourMode)
	c.SelectPoint(x, y)
	assert.Equal(t, 16, c.ViewDate().Hour())

	c.Back()
	c.TogglePeriod()
	assert.Equal(t, 4, c.ViewDate().Hour())

	hand, ok := c.Hand()
	require.True(t, ok)
	want := face.Hand(4, HourMode)
	assert.InDelta(t, want.X, hand.X, 1e-9)
	assert.InDelta(t, want.Y, hand.Y, 1e-9)
}

func TestHand(t *testing.T) {
	c, _, _, _ := newTestController(t)
	c.Open()

	_, ok := c.Hand()
	assert.False(t, ok, "calendar has no hand")

	cell, _ := FindDay(c.Days(), 12)
	c.SelectDay(cell)
	hand, ok := c.Hand()
	require.True(t, ok)
	assert.Equal(t, InnerRing, hand.Ring)
	assert.InDelta(t, 8*hourUnit, hand.Angle, 1e-9)

	c.Confirm()
	hand, ok = c.Hand()
	require.True(t, ok)
	assert.InDelta(t, 15*minuteUnit, hand.Angle, 1e-9)
	assert.Equal(t, OuterRing, hand.Ring)
}

func TestSetBoundsRebuilds(t *testing.T) {
	c, _, _, _ := newTestController(t)
	c.Open()

	c.SetBounds(Bounds{Min: date(2024, time.June, 20), Max: date(2026, time.January, 1)})

	cell, ok := FindDay(c.Days(), 19)
	require.True(t, ok)
	assert.True(t, cell.IsDisabled)
	assert.Equal(t, []int{2024, 2025, 2026}, c.Years())
}

func TestPanelWidthFromHost(t *testing.T) {
	c, _, _, _ := newTestController(t)
	assert.Equal(t, 30, c.PanelWidth())
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("Date")
	require.NoError(t, err)
	assert.Equal(t, Date, g)

	g, err = ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, DateTime, g)

	_, err = ParseGranularity("week")
	assert.Error(t, err)
}
