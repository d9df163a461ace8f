package tui

import (
	"log/slog"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chris/datepick/internal/format"
	"github.com/chris/datepick/internal/picker"
)

// flushDeferredMsg runs the picker's deferred work after the view that
// triggered it has been drawn.
type flushDeferredMsg struct{}

func flushDeferred() tea.Msg { return flushDeferredMsg{} }

// Model hosts a picker.Controller in a bubbletea program. It is the
// controller's Host: it owns the trigger line, lays out the year list and
// reports focus.
type Model struct {
	ctrl  *picker.Controller
	tasks *picker.TaskQueue

	// Keys and help line
	keys keyMap
	help help.Model

	renderer *lipgloss.Renderer
	styles   styles

	// Result
	layout  string
	result  time.Time
	picked  bool
	touched bool
	done    bool
	status  string

	// Year list scroll position
	yearOffset int

	// UI dimensions
	width  int
	height int

	// Focus
	focused bool

	value      time.Time
	pickerOpts []picker.Option
	logger     *slog.Logger

	// For testing - allows injecting "today"
	now func() time.Time
}

var _ picker.Host = (*Model)(nil)

// Option is a functional option for configuring the Model
type Option func(*Model)

// WithNow sets the function used to get the current time (for testing)
func WithNow(fn func() time.Time) Option {
	return func(m *Model) {
		m.now = fn
	}
}

// WithValue sets the value the picker starts from
func WithValue(v time.Time) Option {
	return func(m *Model) {
		m.value = v
	}
}

// WithLayout sets the strftime layout used to display the value
func WithLayout(layout string) Option {
	return func(m *Model) {
		m.layout = layout
	}
}

// WithRenderer sets the renderer styles are built from. It should write to
// the same output as the program.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithLogger sets the logger shared with the controller
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithPickerOptions passes options through to the controller
func WithPickerOptions(opts ...picker.Option) Option {
	return func(m *Model) {
		m.pickerOpts = append(m.pickerOpts, opts...)
	}
}

// New creates a Model with a closed picker. Init opens it.
func New(opts ...Option) *Model {
	m := &Model{
		tasks:   &picker.TaskQueue{},
		keys:     defaultKeyMap(),
		help:     help.New(),
		renderer: lipgloss.DefaultRenderer(),
		focused:  true,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}
	m.styles = newStyles(m.renderer)
	m.help.Styles = helpStyles(m.renderer)

	base := []picker.Option{
		picker.WithNow(m.now),
		picker.WithHost(m),
		picker.WithScheduler(m.tasks),
		picker.WithLogger(m.logger),
	}
	m.ctrl = picker.New(append(base, m.pickerOpts...)...)
	m.ctrl.WriteValue(m.value)

	m.ctrl.RegisterOnChange(func(v time.Time) {
		m.result = v
		m.picked = true
	})
	m.ctrl.RegisterOnTouched(func() {
		m.touched = true
	})
	m.ctrl.OnClose(func() {
		m.done = true
	})

	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.ctrl.Open()
	return m.afterAction(nil)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		cmd := m.handleKey(msg)
		return m, m.afterAction(cmd)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.afterAction(nil)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.ctrl.Mode() == picker.YearList {
			m.ScrollToYear(m.ctrl.ViewDate().Year())
		}
		return m, nil

	case tea.FocusMsg:
		m.focused = true
		return m, nil

	case tea.BlurMsg:
		m.focused = false
		m.ctrl.Blur()
		return m, nil

	case flushDeferredMsg:
		m.tasks.Flush()
		return m, m.afterAction(nil)

	case yankedMsg:
		if msg.err != nil {
			m.status = "Yank failed: " + msg.err.Error()
		} else {
			m.status = "Yanked " + msg.text
		}
		return m, nil
	}

	return m, nil
}

// afterAction quits once the panel has closed, otherwise schedules a flush
// of any work the controller deferred.
func (m *Model) afterAction(cmd tea.Cmd) tea.Cmd {
	if m.done {
		return tea.Quit
	}
	if m.tasks.Pending() > 0 {
		if cmd == nil {
			return flushDeferred
		}
		return tea.Batch(cmd, flushDeferred)
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.keys.forView(m.ctrl.Mode(), m.ctrl.ClockFace().Hour12)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Cancel()
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case key.Matches(msg, m.keys.Yank):
		return yank(m.displayValue())

	case key.Matches(msg, m.keys.Years):
		m.ctrl.ShowYears()
		return nil

	case key.Matches(msg, m.keys.Period):
		m.ctrl.TogglePeriod()
		return nil
	}

	for _, r := range m.keys.routes() {
		if key.Matches(msg, r.binding) {
			m.ctrl.HandleKey(r.key)
			return nil
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return
	}
	m.logger.Debug("click", "x", msg.X, "y", msg.Y, "mode", m.ctrl.Mode())

	if msg.Y == triggerRow {
		m.ctrl.Toggle()
		return
	}
	if !m.ctrl.IsOpen() {
		return
	}

	col := msg.X - marginX
	row := msg.Y - panelTop
	switch m.ctrl.Mode() {
	case picker.Calendar:
		m.clickCalendar(col, row)
	case picker.YearList:
		m.clickYear(row)
	default:
		m.clickClock(col, row)
	}
}

// clickCalendar handles the month header and the day grid
func (m *Model) clickCalendar(col, row int) {
	if col < 0 || col >= gridWidth {
		return
	}

	if row == 0 {
		switch {
		case col < navWidth:
			m.ctrl.PrevMonth()
		case col >= gridWidth-navWidth:
			m.ctrl.NextMonth()
		default:
			m.ctrl.ShowYears()
		}
		return
	}

	week := row - (gridTop - panelTop)
	weeks := picker.Weeks(m.ctrl.Days())
	if week < 0 || week >= len(weeks) {
		return
	}
	day := col / cellWidth
	if day >= len(weeks[week]) {
		return
	}
	m.ctrl.SelectDay(weeks[week][day])
}

func (m *Model) clickYear(row int) {
	i := m.yearOffset + row - (yearTop - panelTop)
	years := m.ctrl.Years()
	if row < yearTop-panelTop || i < 0 || i >= len(years) || i >= m.yearOffset+m.yearRows() {
		return
	}
	m.ctrl.SelectYear(years[i])
}

// clickClock handles the readout and the dial. The dial is drawn on a
// character grid, so cell offsets are scaled back to dial units.
func (m *Model) clickClock(col, row int) {
	if row == 0 {
		if col >= periodCol && col < periodCol+2 {
			m.ctrl.TogglePeriod()
		}
		return
	}

	face := m.ctrl.ClockFace()
	dx := col - dialColRadius
	dy := row - (dialTop - panelTop) - dialRowRadius
	x := float64(dx) * face.DialRadius / dialColRadius
	y := float64(dy) * face.DialRadius / dialRowRadius
	m.ctrl.SelectPoint(x, y)
}

// TriggerWidth implements picker.Host
func (m *Model) TriggerWidth() int {
	return triggerWidth(m.triggerText())
}

// Focus implements picker.Host
func (m *Model) Focus() {
	m.focused = true
}

// ScrollToYear implements picker.Host. The list is laid out once the
// terminal size is known.
func (m *Model) ScrollToYear(year int) bool {
	if m.height == 0 {
		return false
	}
	years := m.ctrl.Years()
	rows := m.yearRows()
	i := sort.SearchInts(years, year)

	offset := i - rows/2
	if last := len(years) - rows; offset > last {
		offset = last
	}
	if offset < 0 {
		offset = 0
	}
	m.yearOffset = offset
	return true
}

// yearRows is how many years fit on screen
func (m *Model) yearRows() int {
	if m.height == 0 {
		return defaultYearRows
	}
	rows := m.height - yearTop - footerHeight
	if rows < minYearRows {
		rows = minYearRows
	}
	return rows
}

// displayValue is the committed value, or the view date while nothing has
// been committed yet.
func (m *Model) displayValue() string {
	v := m.ctrl.Value()
	if v.IsZero() {
		v = m.ctrl.ViewDate()
	}
	return format.Value(v, m.layout, m.ctrl.Granularity())
}

// View implements tea.Model
func (m *Model) View() string {
	return m.renderView()
}

// Result returns the committed value and whether the user picked one
func (m *Model) Result() (time.Time, bool) {
	return m.result, m.picked
}

// Getters for testing

// Controller returns the hosted picker
func (m *Model) Controller() *picker.Controller {
	return m.ctrl
}

// Focused reports whether the terminal has focus
func (m *Model) Focused() bool {
	return m.focused
}

// Touched reports whether the control was blurred while closed
func (m *Model) Touched() bool {
	return m.touched
}

// Done reports whether the panel has closed and the program should quit
func (m *Model) Done() bool {
	return m.done
}

// YearOffset returns the index of the first year on screen
func (m *Model) YearOffset() int {
	return m.yearOffset
}

// Status returns the transient message shown above the help line
func (m *Model) Status() string {
	return m.status
}
