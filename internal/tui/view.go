package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chris/datepick/internal/format"
	"github.com/chris/datepick/internal/picker"
)

// styles are built from the renderer of the output the program draws on
type styles struct {
	header      lipgloss.Style
	focusDot    lipgloss.Style
	blurDot     lipgloss.Style
	value       lipgloss.Style
	placeholder lipgloss.Style
	separator   lipgloss.Style
	dim         lipgloss.Style
	disabled    lipgloss.Style
	today       lipgloss.Style
	cursor      lipgloss.Style
	selected    lipgloss.Style
	hand        lipgloss.Style
	status      lipgloss.Style
	plain       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:      r.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		focusDot:    r.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		blurDot:     r.NewStyle().Foreground(lipgloss.Color("8")),
		value:       r.NewStyle().Foreground(lipgloss.Color("15")),
		placeholder: r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		separator:   r.NewStyle().Foreground(lipgloss.Color("8")),
		dim:         r.NewStyle().Foreground(lipgloss.Color("8")),
		disabled:    r.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true),
		today:       r.NewStyle().Underline(true),
		cursor:      r.NewStyle().Reverse(true),
		selected:    r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		hand:        r.NewStyle().Foreground(lipgloss.Color("13")),
		status:      r.NewStyle().Foreground(lipgloss.Color("8")),
		plain:       r.NewStyle(),
	}
}

// helpStyles matches the help line to the renderer
func helpStyles(r *lipgloss.Renderer) help.Styles {
	key := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	desc := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"})
	sep := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DDDADA", Dark: "#3C3C3C"})
	return help.Styles{
		ShortKey:       key,
		ShortDesc:      desc,
		ShortSeparator: sep,
		Ellipsis:       sep,
		FullKey:        key,
		FullDesc:       desc,
		FullSeparator:  sep,
	}
}

// Screen layout. Mouse handling relies on these rows and columns matching
// what renderView draws.
const (
	marginX = 2

	triggerRow = 0
	panelTop   = 2
	gridTop    = panelTop + 2
	yearTop    = panelTop + 1
	dialTop    = panelTop + 1

	cellWidth = 3
	gridWidth = 7 * cellWidth
	navWidth  = 3

	// AM/PM column in the clock readout, after "HH:MM "
	periodCol = 6

	dialRowRadius = 6
	dialColRadius = 12
	dialRows      = 2*dialRowRadius + 1
	dialCols      = 2*dialColRadius + 1

	defaultYearRows = 7
	minYearRows     = 3
	footerHeight    = 4
)

func (m *Model) renderView() string {
	var b strings.Builder

	margin := strings.Repeat(" ", marginX)
	width := m.panelWidth()

	b.WriteString(margin + m.renderTrigger())
	b.WriteString("\n")
	b.WriteString(margin + m.styles.separator.Render(strings.Repeat("─", width)))
	b.WriteString("\n")

	var panel []string
	if m.ctrl.IsOpen() {
		switch m.ctrl.Mode() {
		case picker.Calendar:
			panel = m.renderCalendar()
		case picker.YearList:
			panel = m.renderYears()
		default:
			panel = m.renderClock()
		}
	}
	for _, line := range panel {
		b.WriteString(margin + line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(margin + m.styles.status.Render(m.status))
		b.WriteString("\n")
	}
	m.keys.forView(m.ctrl.Mode(), m.ctrl.ClockFace().Hour12)
	b.WriteString(margin + m.help.View(m.keys))

	return b.String()
}

// panelWidth matches the panel to the trigger, but never narrower than
// what the active view draws.
func (m *Model) panelWidth() int {
	w := m.ctrl.PanelWidth()
	if w < gridWidth {
		w = gridWidth
	}
	if m.ctrl.IsOpen() && m.ctrl.Mode() >= picker.HourClock && w < dialCols {
		w = dialCols
	}
	return w
}

// triggerText is the committed value, or a prompt while there is none
func (m *Model) triggerText() string {
	if !m.ctrl.HasValue() {
		switch m.ctrl.Granularity() {
		case picker.Date:
			return "Pick a date"
		case picker.Time:
			return "Pick a time"
		default:
			return "Pick a date and time"
		}
	}
	return format.Value(m.ctrl.Value(), m.layout, m.ctrl.Granularity())
}

// triggerWidth is the width of the focus dot, a space and the text
func triggerWidth(text string) int {
	return 2 + ansi.StringWidth(text)
}

func (m *Model) renderTrigger() string {
	dot := m.styles.focusDot.Render("●")
	if !m.focused {
		dot = m.styles.blurDot.Render("○")
	}
	text := m.triggerText()
	if !m.ctrl.HasValue() {
		return dot + " " + m.styles.placeholder.Render(text)
	}
	return dot + " " + m.styles.value.Render(text)
}

func (m *Model) renderCalendar() []string {
	view := m.ctrl.ViewDate()

	prev, next := "‹", "›"
	if m.ctrl.PrevMonthAllowed() {
		prev = m.styles.header.Render(prev)
	} else {
		prev = m.styles.dim.Render(prev)
	}
	if m.ctrl.NextMonthAllowed() {
		next = m.styles.header.Render(next)
	} else {
		next = m.styles.dim.Render(next)
	}
	title := lipgloss.PlaceHorizontal(gridWidth-2*navWidth, lipgloss.Center, view.Format("January 2006"))
	header := prev + strings.Repeat(" ", navWidth-1) + m.styles.header.Render(title) + strings.Repeat(" ", navWidth-1) + next

	lines := []string{header, m.styles.dim.Render("Su Mo Tu We Th Fr Sa")}

	value := m.ctrl.Value()
	for _, week := range picker.Weeks(m.ctrl.Days()) {
		var row strings.Builder
		for _, cell := range week {
			row.WriteString(m.styles.day(cell, view, value).Render(fmt.Sprintf("%2d", cell.Date.Day())))
			row.WriteString(" ")
		}
		lines = append(lines, strings.TrimRight(row.String(), " "))
	}
	return lines
}

// day picks the style for a grid cell. The cursor wins over the
// committed value, which wins over disabled and today.
func (s styles) day(cell picker.DayCell, view, value time.Time) lipgloss.Style {
	switch {
	case cell.Relation != picker.Current:
		return s.dim
	case sameDay(cell.Date, view):
		return s.cursor
	case !value.IsZero() && sameDay(cell.Date, value):
		return s.selected
	case cell.IsDisabled:
		return s.disabled
	case cell.IsToday:
		return s.today
	}
	return s.value
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *Model) renderYears() []string {
	years := m.ctrl.Years()
	view := m.ctrl.ViewDate().Year()
	today := m.now().Year()

	lines := []string{m.styles.header.Render("Select year")}
	start := min(m.yearOffset, len(years))
	end := min(start+m.yearRows(), len(years))
	for _, year := range years[start:end] {
		text := fmt.Sprintf("%d", year)
		switch {
		case year == view:
			lines = append(lines, m.styles.selected.Render("▶ "+text))
		case year == today:
			lines = append(lines, "  "+m.styles.today.Render(text))
		default:
			lines = append(lines, "  "+m.styles.value.Render(text))
		}
	}
	return lines
}

func (m *Model) renderClock() []string {
	return append([]string{m.renderReadout()}, m.renderDial()...)
}

// renderReadout shows the time being edited with the active part
// highlighted, then the date for date-time pickers.
func (m *Model) renderReadout() string {
	view := m.ctrl.ViewDate()
	face := m.ctrl.ClockFace()

	hour := view.Hour()
	if face.Hour12 {
		hour %= 12
		if hour == 0 {
			hour = 12
		}
	}
	hh, mm := fmt.Sprintf("%02d", hour), fmt.Sprintf("%02d", view.Minute())
	if m.ctrl.Mode() == picker.HourClock {
		hh = m.styles.cursor.Render(hh)
	} else {
		mm = m.styles.cursor.Render(mm)
	}

	line := hh + ":" + mm
	if face.Hour12 {
		period := "AM"
		if view.Hour() >= 12 {
			period = "PM"
		}
		line += " " + m.styles.header.Render(period)
	}
	if m.ctrl.Granularity().HasDate() {
		line += "  " + m.styles.dim.Render(view.Format("Mon, Jan 2 2006"))
	}
	return line
}

type dialKind int

const (
	blankCell dialKind = iota
	rimCell
	handCell
	labelCell
	activeCell
)

type dialCell struct {
	r    rune
	kind dialKind
}

// renderDial draws the clock face on a character grid. Dial units are
// scaled separately per axis since cells are about twice as tall as wide.
func (m *Model) renderDial() []string {
	face := m.ctrl.ClockFace()
	mode := picker.HourMode
	if m.ctrl.Mode() == picker.MinuteClock {
		mode = picker.MinuteMode
	}
	colUnit := face.DialRadius / dialColRadius
	rowUnit := face.DialRadius / dialRowRadius

	grid := make([][]dialCell, dialRows)
	for r := range grid {
		grid[r] = make([]dialCell, dialCols)
		for c := range grid[r] {
			grid[r][c] = dialCell{r: ' '}
		}
	}
	put := func(x, y float64, r rune, kind dialKind) {
		col := dialColRadius + int(math.Round(x/colUnit))
		row := dialRowRadius + int(math.Round(y/rowUnit))
		if row >= 0 && row < dialRows && col >= 0 && col < dialCols {
			grid[row][col] = dialCell{r: r, kind: kind}
		}
	}

	for deg := 0; deg < 360; deg += 15 {
		a := float64(deg) * math.Pi / 180
		put(math.Sin(a)*face.DialRadius, -math.Cos(a)*face.DialRadius, '·', rimCell)
	}

	selected := -1
	if hand, ok := m.ctrl.Hand(); ok {
		length := math.Hypot(hand.X, hand.Y) - face.TickRadius
		const steps = 8
		for i := 1; i <= steps; i++ {
			d := length * float64(i) / steps
			put(math.Sin(hand.Angle)*d, -math.Cos(hand.Angle)*d, '•', handCell)
		}
		put(0, 0, '+', handCell)
		selected = m.selectedDialValue(mode)
	}

	for _, l := range face.Labels(mode) {
		kind := labelCell
		if l.Value == selected {
			kind = activeCell
		}
		col := dialColRadius + int(math.Round(l.X/colUnit)) - ansi.StringWidth(l.Text)/2
		row := dialRowRadius + int(math.Round(l.Y/rowUnit))
		for i, r := range l.Text {
			if row >= 0 && row < dialRows && col+i >= 0 && col+i < dialCols {
				grid[row][col+i] = dialCell{r: r, kind: kind}
			}
		}
	}

	lines := make([]string, 0, dialRows)
	for _, cells := range grid {
		lines = append(lines, strings.TrimRight(m.styles.cells(cells), " "))
	}
	return lines
}

// selectedDialValue is the label value under the hand
func (m *Model) selectedDialValue(mode picker.ClockMode) int {
	view := m.ctrl.ViewDate()
	if mode == picker.MinuteMode {
		return view.Minute()
	}
	h := view.Hour()
	if m.ctrl.ClockFace().Hour12 {
		h %= 12
		if h == 0 {
			h = 12
		}
	}
	return h
}

// cells styles runs of cells that share a kind
func (s styles) cells(cells []dialCell) string {
	var b strings.Builder
	var run strings.Builder
	kind := blankCell

	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(s.dial(kind).Render(run.String()))
		run.Reset()
	}
	for _, c := range cells {
		if c.kind != kind {
			flush()
			kind = c.kind
		}
		run.WriteRune(c.r)
	}
	flush()
	return b.String()
}

func (s styles) dial(kind dialKind) lipgloss.Style {
	switch kind {
	case rimCell:
		return s.dim
	case handCell:
		return s.hand
	case activeCell:
		return s.cursor
	case labelCell:
		return s.value
	}
	return s.plain
}
