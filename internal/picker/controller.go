package picker

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Granularity selects which parts of a value the picker edits
type Granularity int

const (
	DateTime Granularity = iota
	Date
	Time
)

// ParseGranularity parses "date", "time" or "datetime"
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date":
		return Date, nil
	case "time":
		return Time, nil
	case "datetime", "":
		return DateTime, nil
	}
	return DateTime, fmt.Errorf("unknown picker type %q (want date, time or datetime)", s)
}

func (g Granularity) String() string {
	switch g {
	case Date:
		return "date"
	case Time:
		return "time"
	default:
		return "datetime"
	}
}

// HasDate reports whether the calendar views are enabled
func (g Granularity) HasDate() bool { return g != Time }

// HasTime reports whether the clock views are enabled
func (g Granularity) HasTime() bool { return g != Date }

// ViewMode is the sub-view currently shown in the panel
type ViewMode int

const (
	Calendar ViewMode = iota
	YearList
	HourClock
	MinuteClock
)

func (m ViewMode) String() string {
	switch m {
	case YearList:
		return "years"
	case HourClock:
		return "hours"
	case MinuteClock:
		return "minutes"
	default:
		return "calendar"
	}
}

// Key is a keyboard action routed to the controller
type Key int

const (
	KeyEnter Key = iota
	KeySpace
	KeyEscape
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
)

// Host is the surface the picker is attached to
type Host interface {
	// TriggerWidth is the width of the trigger the panel is sized to
	TriggerWidth() int
	// Focus returns focus to the trigger
	Focus()
	// ScrollToYear brings year into view in the year list. It reports false
	// and does nothing when the list has not been laid out.
	ScrollToYear(year int) bool
}

// ValueAccessor is the form-control capability: the owner of the value
// writes it in and listens for changes and touches.
type ValueAccessor interface {
	WriteValue(v time.Time)
	RegisterOnChange(fn func(time.Time))
	RegisterOnTouched(fn func())
	SetDisabled(disabled bool)
}

// Change is emitted once per user commit
type Change struct {
	Value time.Time
}

type nopHost struct{}

func (nopHost) TriggerWidth() int {
	return 0
}

func (nopHost) Focus() {}

func (nopHost) ScrollToYear(int) bool {
	return false
}

var _ ValueAccessor = (*Controller)(nil)

// Controller owns the picker state and routes user actions
type Controller struct {
	granularity Granularity
	bounds      Bounds
	face        ClockFace
	grid        GridOptions
	host        Host
	scheduler   Scheduler
	logger      *slog.Logger
	now         func() time.Time

	open     bool
	disabled bool
	mode     ViewMode
	viewDate time.Time
	value    time.Time

	days  []DayCell
	years []int

	onChange        func(time.Time)
	onTouched       func()
	openListeners   []func()
	closeListeners  []func()
	changeListeners []func(Change)
}

// Option is a functional option for configuring the Controller
type Option func(*Controller)

// WithNow sets the function used to get the current time
func WithNow(fn func() time.Time) Option {
	return func(c *Controller) {
		c.now = fn
	}
}

// WithGranularity sets which views are enabled
func WithGranularity(g Granularity) Option {
	return func(c *Controller) {
		c.granularity = g
	}
}

// WithBounds restricts the selectable range
func WithBounds(b Bounds) Option {
	return func(c *Controller) {
		c.bounds = b
	}
}

// WithHost attaches the picker to a host surface
func WithHost(h Host) Option {
	return func(c *Controller) {
		c.host = h
	}
}

// WithScheduler sets where after-layout work is queued
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.scheduler = s
	}
}

// WithLogger sets the logger used for transition tracing
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithClockFace overrides the dial geometry
func WithClockFace(f ClockFace) Option {
	return func(c *Controller) {
		c.face = f
	}
}

// WithGridOptions sets calendar grid options
func WithGridOptions(o GridOptions) Option {
	return func(c *Controller) {
		c.grid = o
	}
}

// New creates a closed Controller
func New(opts ...Option) *Controller {
	c := &Controller{
		face:      DefaultClockFace(),
		host:      nopHost{},
		scheduler: &TaskQueue{},
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.mode = c.defaultMode()
	c.viewDate = c.now()
	c.rebuildCalendar()
	c.years = Years(c.bounds, c.now())

	return c
}

// Open shows the panel, starting from the committed value or today
func (c *Controller) Open() {
	if c.open || c.disabled {
		return
	}
	if c.value.IsZero() {
		c.viewDate = c.now()
	} else {
		c.viewDate = c.value
	}
	c.mode = c.defaultMode()
	c.open = true
	c.rebuildCalendar()
	c.years = Years(c.bounds, c.now())

	c.logger.Debug("picker opened", "mode", c.mode, "view", c.viewDate)
	for _, fn := range c.openListeners {
		fn()
	}
}

// Close hides the panel and returns focus to the host
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.open = false
	c.mode = c.defaultMode()
	c.host.Focus()

	c.logger.Debug("picker closed")
	for _, fn := range c.closeListeners {
		fn()
	}
}

// Cancel closes the panel without committing
func (c *Controller) Cancel() {
	if c.open {
		c.logger.Debug("picker cancelled", "view", c.viewDate)
	}
	c.Close()
}

// Toggle opens a closed panel or closes an open one
func (c *Controller) Toggle() {
	if c.open {
		c.Close()
		return
	}
	c.Open()
}

// ShowYears switches to the year list and scrolls the view year into place
// once the host has laid the list out.
func (c *Controller) ShowYears() {
	if !c.open || !c.granularity.HasDate() {
		return
	}
	c.setMode(YearList)
	c.scheduleYearScroll()
}

// SelectYear moves the view to year and returns to the calendar
func (c *Controller) SelectYear(year int) {
	if !c.open || !c.granularity.HasDate() {
		return
	}
	c.viewDate = SetYear(c.viewDate, year)
	c.rebuildCalendar()
	c.setMode(Calendar)
}

// SelectDay handles a click on a grid cell. Cells from the neighbouring
// months only navigate. It reports false when the cell is disabled.
func (c *Controller) SelectDay(cell DayCell) bool {
	if !c.open || !c.granularity.HasDate() || cell.IsDisabled {
		return false
	}

	switch cell.Relation {
	case Previous:
		c.viewDate = IncrementMonth(c.viewDate, -1)
		c.rebuildCalendar()
		return true
	case Next:
		c.viewDate = IncrementMonth(c.viewDate, 1)
		c.rebuildCalendar()
		return true
	}

	y, m, d := cell.Date.Date()
	c.viewDate = time.Date(y, m, d, c.viewDate.Hour(), c.viewDate.Minute(), c.viewDate.Second(), c.viewDate.Nanosecond(), c.viewDate.Location())
	if c.granularity == Date {
		c.commit()
		return true
	}
	c.setMode(HourClock)
	return true
}

// Confirm is the explicit "OK" action for the active view
func (c *Controller) Confirm() {
	if !c.open {
		return
	}
	switch c.mode {
	case YearList:
		c.rebuildCalendar()
		c.setMode(Calendar)
	case Calendar:
		if cell, ok := FindDay(c.days, c.viewDate.Day()); ok {
			c.SelectDay(cell)
		}
	case HourClock:
		c.setMode(MinuteClock)
	case MinuteClock:
		c.commit()
	}
}

// SelectHour sets the hour (0..23) and moves on to the minutes
func (c *Controller) SelectHour(hour int) {
	if !c.open || !c.granularity.HasTime() {
		return
	}
	c.viewDate = SetHour(c.viewDate, wrap(hour, 24))
	c.setMode(MinuteClock)
}

// SelectMinute sets the minute (0..59) and commits
func (c *Controller) SelectMinute(minute int) {
	if !c.open || !c.granularity.HasTime() {
		return
	}
	c.viewDate = SetMinute(c.viewDate, wrap(minute, 60))
	c.commit()
}

// SelectPoint handles a click on the dial at offset (x, y) from its center.
// It reports whether the click selected a value.
func (c *Controller) SelectPoint(x, y float64) bool {
	if !c.open || !c.face.OnDial(x, y) {
		return false
	}
	switch c.mode {
	case HourClock:
		h, _ := c.face.PointToTime(x, y, HourMode)
		if c.face.Hour12 {
			h = to24(h, c.viewDate.Hour() >= 12)
		}
		c.SelectHour(h)
		return true
	case MinuteClock:
		m, _ := c.face.PointToTime(x, y, MinuteMode)
		c.SelectMinute(m)
		return true
	}
	return false
}

// TogglePeriod flips between AM and PM on the 12-hour face
func (c *Controller) TogglePeriod() {
	if !c.open || !c.face.Hour12 || !c.isClock() {
		return
	}
	c.viewDate = SetHour(c.viewDate, (c.viewDate.Hour()+12)%24)
}

// Back steps to the previous view in the YearList, Calendar, HourClock,
// MinuteClock sequence.
func (c *Controller) Back() {
	if !c.open {
		return
	}
	switch c.mode {
	case YearList:
		c.setMode(Calendar)
	case HourClock:
		if c.granularity.HasDate() {
			c.setMode(Calendar)
		}
	case MinuteClock:
		c.setMode(HourClock)
	}
}

// PrevMonth shows the previous month if the lower bound allows it
func (c *Controller) PrevMonth() bool {
	if !c.open || c.mode != Calendar || !c.PrevMonthAllowed() {
		return false
	}
	c.viewDate = IncrementMonth(c.viewDate, -1)
	c.rebuildCalendar()
	return true
}

// NextMonth shows the next month if the upper bound allows it
func (c *Controller) NextMonth() bool {
	if !c.open || c.mode != Calendar || !c.NextMonthAllowed() {
		return false
	}
	c.viewDate = IncrementMonth(c.viewDate, 1)
	c.rebuildCalendar()
	return true
}

// StepDay moves the view date by delta days
func (c *Controller) StepDay(delta int) {
	if !c.open || c.mode != Calendar {
		return
	}
	c.moveTo(IncrementDay(c.viewDate, delta))
}

// StepYear moves the view date by delta years, staying inside the year list
func (c *Controller) StepYear(delta int) {
	if !c.open || c.mode != YearList || len(c.years) == 0 {
		return
	}
	target := c.viewDate.Year() + delta
	if first := c.years[0]; target < first {
		target = first
	}
	if last := c.years[len(c.years)-1]; target > last {
		target = last
	}
	c.moveTo(SetYear(c.viewDate, target))
	c.scheduleYearScroll()
}

// StepHour moves the view date by delta hours
func (c *Controller) StepHour(delta int) {
	if !c.open || c.mode != HourClock {
		return
	}
	c.moveTo(IncrementHour(c.viewDate, delta))
}

// StepMinute moves the view date by delta minutes
func (c *Controller) StepMinute(delta int) {
	if !c.open || c.mode != MinuteClock {
		return
	}
	c.moveTo(IncrementMinute(c.viewDate, delta))
}

// HandleKey routes a key press. Enter and Space open a closed panel;
// otherwise keys act on the active view.
func (c *Controller) HandleKey(k Key) {
	if !c.open {
		if k == KeyEnter || k == KeySpace {
			c.Open()
		}
		return
	}

	switch k {
	case KeyEnter, KeySpace:
		c.Confirm()
		return
	case KeyEscape:
		c.Cancel()
		return
	case KeyBackspace:
		c.Back()
		return
	}

	switch c.mode {
	case Calendar:
		switch k {
		case KeyLeft:
			c.StepDay(-1)
		case KeyRight:
			c.StepDay(1)
		case KeyUp:
			c.StepDay(-7)
		case KeyDown:
			c.StepDay(7)
		case KeyPageUp:
			c.PrevMonth()
		case KeyPageDown:
			c.NextMonth()
		}
	case YearList:
		switch k {
		case KeyUp, KeyLeft:
			c.StepYear(-1)
		case KeyDown, KeyRight:
			c.StepYear(1)
		case KeyPageUp:
			c.StepYear(-10)
		case KeyPageDown:
			c.StepYear(10)
		}
	case HourClock:
		switch k {
		case KeyUp, KeyRight:
			c.StepHour(1)
		case KeyDown, KeyLeft:
			c.StepHour(-1)
		}
	case MinuteClock:
		switch k {
		case KeyUp, KeyRight:
			c.StepMinute(1)
		case KeyDown, KeyLeft:
			c.StepMinute(-1)
		case KeyPageUp:
			c.StepMinute(5)
		case KeyPageDown:
			c.StepMinute(-5)
		}
	}
}

// WriteValue sets the committed value without emitting a change
func (c *Controller) WriteValue(v time.Time) {
	c.value = v
}

// RegisterOnChange sets the callback invoked on every user commit
func (c *Controller) RegisterOnChange(fn func(time.Time)) {
	c.onChange = fn
}

// RegisterOnTouched sets the callback invoked when the picker is blurred
func (c *Controller) RegisterOnTouched(fn func()) {
	c.onTouched = fn
}

// SetDisabled enables or disables opening the panel
func (c *Controller) SetDisabled(disabled bool) {
	c.disabled = disabled
}

// Blur marks the control touched. While the panel is open the trigger loses
// focus to the panel itself, so that case is ignored.
func (c *Controller) Blur() {
	if !c.open && c.onTouched != nil {
		c.onTouched()
	}
}

// OnOpen registers a listener for the open event
func (c *Controller) OnOpen(fn func()) {
	c.openListeners = append(c.openListeners, fn)
}

// OnClose registers a listener for the close event
func (c *Controller) OnClose(fn func()) {
	c.closeListeners = append(c.closeListeners, fn)
}

// OnChange registers a listener for the change event
func (c *Controller) OnChange(fn func(Change)) {
	c.changeListeners = append(c.changeListeners, fn)
}

// SetBounds replaces the bounds and rebuilds the grid and year list
func (c *Controller) SetBounds(b Bounds) {
	c.bounds = b
	c.rebuildCalendar()
	c.years = Years(c.bounds, c.now())
}

// Mode returns the active view
func (c *Controller) Mode() ViewMode {
	return c.mode
}

// IsOpen reports whether the panel is shown
func (c *Controller) IsOpen() bool {
	return c.open
}

// IsDisabled reports whether the control was disabled through SetDisabled
func (c *Controller) IsDisabled() bool {
	return c.disabled
}

// ViewDate returns the date and time being edited
func (c *Controller) ViewDate() time.Time {
	return c.viewDate
}

// Value returns the committed value, zero when nothing was committed
func (c *Controller) Value() time.Time {
	return c.value
}

// HasValue reports whether a value has been committed or written
func (c *Controller) HasValue() bool {
	return !c.value.IsZero()
}

// Granularity returns whether the picker edits a date, a time or both
func (c *Controller) Granularity() Granularity {
	return c.granularity
}

// Bounds returns the current range restriction
func (c *Controller) Bounds() Bounds {
	return c.bounds
}

// ClockFace returns the dial geometry
func (c *Controller) ClockFace() ClockFace {
	return c.face
}

// Today returns the current time from the injected clock
func (c *Controller) Today() time.Time {
	return c.now()
}

// Days returns the current month grid
func (c *Controller) Days() []DayCell {
	return append([]DayCell(nil), c.days...)
}

// Years returns the selectable years
func (c *Controller) Years() []int {
	return append([]int(nil), c.years...)
}

// PrevMonthAllowed reports whether the previous-month affordance is enabled
func (c *Controller) PrevMonthAllowed() bool {
	return c.bounds.IsMonthBeforeAllowed(c.viewDate)
}

// NextMonthAllowed reports whether the next-month affordance is enabled
func (c *Controller) NextMonthAllowed() bool {
	return c.bounds.IsMonthAfterAllowed(c.viewDate)
}

// PanelWidth is the width the panel should take to match the trigger
func (c *Controller) PanelWidth() int {
	return c.host.TriggerWidth()
}

// Hand returns the pointer position for the active clock view
func (c *Controller) Hand() (HandPosition, bool) {
	switch c.mode {
	case HourClock:
		h := c.viewDate.Hour()
		if c.face.Hour12 {
			h = to12(h)
		}
		return c.face.Hand(h, HourMode), true
	case MinuteClock:
		return c.face.Hand(c.viewDate.Minute(), MinuteMode), true
	}
	return HandPosition{}, false
}

func (c *Controller) commit() {
	c.value = c.viewDate
	c.logger.Debug("picker committed", "value", c.value)

	if c.onChange != nil {
		c.onChange(c.value)
	}
	for _, fn := range c.changeListeners {
		fn(Change{Value: c.value})
	}
	c.Close()
}

func (c *Controller) setMode(m ViewMode) {
	if c.mode == m {
		return
	}
	c.logger.Debug("picker view", "from", c.mode, "to", m)
	c.mode = m
}

// moveTo replaces the view date, rebuilding the grid when the month changes
func (c *Controller) moveTo(d time.Time) {
	changedMonth := MonthDistance(c.viewDate, d) != 0
	c.viewDate = d
	if changedMonth {
		c.rebuildCalendar()
	}
}

func (c *Controller) rebuildCalendar() {
	c.days = BuildCalendar(c.viewDate, c.bounds, c.now(), c.grid)
}

func (c *Controller) scheduleYearScroll() {
	year := c.viewDate.Year()
	c.scheduler.Defer(func() {
		if !c.open || c.mode != YearList {
			return
		}
		if !c.host.ScrollToYear(year) {
			c.logger.Debug("year list not laid out, skipping scroll", "year", year)
		}
	})
}

func (c *Controller) defaultMode() ViewMode {
	if c.granularity.HasDate() {
		return Calendar
	}
	return HourClock
}

func (c *Controller) isClock() bool {
	return c.mode == HourClock || c.mode == MinuteClock
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func to12(h int) int {
	h %= 12
	if h == 0 {
		return 12
	}
	return h
}

func to24(h12 int, pm bool) int {
	h := h12 % 12
	if pm {
		h += 12
	}
	return h
}
