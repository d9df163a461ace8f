package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/chris/datepick/internal/picker"
)

// keyMap holds the bindings for every view. Bindings that do not apply to
// the active view are disabled so they drop out of the help line.
type keyMap struct {
	Confirm  key.Binding
	Cancel   key.Binding
	Back     key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Years    key.Binding
	Period   key.Binding
	Yank     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Confirm:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Back:     key.NewBinding(key.WithKeys("backspace", "-"), key.WithHelp("-", "back")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l", "right")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		PrevPage: key.NewBinding(key.WithKeys("pgup", "["), key.WithHelp("[", "prev month")),
		NextPage: key.NewBinding(key.WithKeys("pgdown", "]"), key.WithHelp("]", "next month")),
		Years:    key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "years")),
		Period:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "am/pm")),
		Yank:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// forView enables and relabels bindings for the active view
func (k *keyMap) forView(mode picker.ViewMode, hour12 bool) {
	k.Years.SetEnabled(mode == picker.Calendar)
	k.Period.SetEnabled(hour12 && (mode == picker.HourClock || mode == picker.MinuteClock))

	switch mode {
	case picker.Calendar:
		k.Left.SetHelp("h", "prev day")
		k.Right.SetHelp("l", "next day")
		k.Up.SetHelp("k", "prev week")
		k.Down.SetHelp("j", "next week")
		k.PrevPage.SetHelp("[", "prev month")
		k.NextPage.SetHelp("]", "next month")
		k.PrevPage.SetEnabled(true)
		k.NextPage.SetEnabled(true)
	case picker.YearList:
		k.Left.SetHelp("h", "prev year")
		k.Right.SetHelp("l", "next year")
		k.Up.SetHelp("k", "prev year")
		k.Down.SetHelp("j", "next year")
		k.PrevPage.SetHelp("[", "-10 years")
		k.NextPage.SetHelp("]", "+10 years")
		k.PrevPage.SetEnabled(true)
		k.NextPage.SetEnabled(true)
	case picker.HourClock:
		k.Left.SetHelp("h", "-1 hour")
		k.Right.SetHelp("l", "+1 hour")
		k.Up.SetHelp("k", "+1 hour")
		k.Down.SetHelp("j", "-1 hour")
		k.PrevPage.SetEnabled(false)
		k.NextPage.SetEnabled(false)
	case picker.MinuteClock:
		k.Left.SetHelp("h", "-1 min")
		k.Right.SetHelp("l", "+1 min")
		k.Up.SetHelp("k", "+1 min")
		k.Down.SetHelp("j", "-1 min")
		k.PrevPage.SetHelp("[", "+5 min")
		k.NextPage.SetHelp("]", "-5 min")
		k.PrevPage.SetEnabled(true)
		k.NextPage.SetEnabled(true)
	}
}

// keyRoute pairs a binding with the controller key it sends
type keyRoute struct {
	binding key.Binding
	key     picker.Key
}

func (k keyMap) routes() []keyRoute {
	return []keyRoute{
		{k.Confirm, picker.KeyEnter},
		{k.Cancel, picker.KeyEscape},
		{k.Back, picker.KeyBackspace},
		{k.Left, picker.KeyLeft},
		{k.Right, picker.KeyRight},
		{k.Up, picker.KeyUp},
		{k.Down, picker.KeyDown},
		{k.PrevPage, picker.KeyPageUp},
		{k.NextPage, picker.KeyPageDown},
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel, k.Back, k.Years, k.Period, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevPage, k.NextPage, k.Years, k.Period},
		{k.Confirm, k.Back, k.Cancel},
		{k.Yank, k.Help, k.Quit},
	}
}
