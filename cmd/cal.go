package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/chris/datepick/internal/format"
	"github.com/chris/datepick/internal/picker"
)

// calWidth is the width of "Su Mo Tu We Th Fr Sa"
const calWidth = 20

var calCmd = &cobra.Command{
	Use:   "cal [YYYY-MM]",
	Short: "Print the picker's grid for a month",
	Long:  "Print the month grid the picker shows, starting on Sunday. Today is underlined, days outside --min/--max are dimmed.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCal,
}

func init() {
	rootCmd.AddCommand(calCmd)
}

func runCal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	now := time.Now()
	var month string
	if len(args) > 0 {
		month = args[0]
	}
	view, err := format.ParseMonth(month, now)
	if err != nil {
		return err
	}
	bounds, err := cfg.Bounds(now)
	if err != nil {
		return fmt.Errorf("invalid bounds: %w", err)
	}

	cells := picker.BuildCalendar(view, bounds, now, cfg.GridOptions())
	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderMonth(view, cells, newRenderer(out, cfg.UI.NoColor)))
	return nil
}

// renderMonth prints a title, the weekday header and one line per week
func renderMonth(view time.Time, cells []picker.DayCell, r *lipgloss.Renderer) string {
	title := r.NewStyle().Bold(true)
	dim := r.NewStyle().Faint(true)
	disabled := r.NewStyle().Faint(true).Strikethrough(true)
	today := r.NewStyle().Underline(true)

	var b strings.Builder
	b.WriteString(strings.TrimRight(title.Render(lipgloss.PlaceHorizontal(calWidth, lipgloss.Center, view.Format("January 2006"))), " "))
	b.WriteString("\n")
	b.WriteString("Su Mo Tu We Th Fr Sa\n")

	for _, week := range picker.Weeks(cells) {
		days := make([]string, 0, len(week))
		for _, cell := range week {
			text := fmt.Sprintf("%2d", cell.Date.Day())
			switch {
			case cell.Relation != picker.Current:
				text = dim.Render(text)
			case cell.IsDisabled:
				text = disabled.Render(text)
			case cell.IsToday:
				text = today.Render(text)
			}
			days = append(days, text)
		}
		b.WriteString(strings.Join(days, " "))
		b.WriteString("\n")
	}
	return b.String()
}
