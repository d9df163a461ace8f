package tui

import (
	"encoding/base64"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// yankedMsg reports the outcome of copying the picked value
type yankedMsg struct {
	text string
	err  error
}

// osc52 sets the terminal clipboard. It runs through tea.Exec so the escape
// sequence reaches the real terminal rather than the renderer.
type osc52 struct {
	text   string
	inTmux bool
	out    io.Writer
}

// sequence returns the OSC 52 payload, wrapped in a DCS passthrough with
// doubled escapes under tmux.
func (o *osc52) sequence() string {
	payload := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(o.text)) + "\x07"
	if !o.inTmux {
		return payload
	}
	return "\x1bPtmux;\x1b" + payload + "\x1b\\"
}

func (o *osc52) Run() error {
	_, err := io.WriteString(o.out, o.sequence())
	return err
}

func (o *osc52) SetStdin(io.Reader)    {}
func (o *osc52) SetStdout(w io.Writer) { o.out = w }
func (o *osc52) SetStderr(io.Writer)   {}

func yank(text string) tea.Cmd {
	c := &osc52{text: text, inTmux: os.Getenv("TMUX") != ""}
	return tea.Exec(c, func(err error) tea.Msg {
		return yankedMsg{text: text, err: err}
	})
}
