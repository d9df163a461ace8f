package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chris/datepick/internal/format"
	"github.com/chris/datepick/internal/logging"
	"github.com/chris/datepick/internal/picker"
	"github.com/chris/datepick/internal/tui"
)

// ErrNoSelection is returned when the picker closes without a commit
var ErrNoSelection = errors.New("no date selected")

var pickValue string

// pickOutput is where the picker draws. Styles are rendered for it rather
// than for stdout, which is usually captured.
var pickOutput io.Writer = os.Stderr

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a date or time interactively",
	Long: `Open the picker and print the chosen value to stdout.

The picker draws on stderr so the value can be captured:

  when=$(datepick pick --type date --min today)`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().StringVar(&pickValue, "value", "", "Initial value (YYYY-MM-DD, YYYY-MM-DD HH:MM, HH:MM, today)")
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	g, err := cfg.Granularity()
	if err != nil {
		return err
	}
	now := time.Now()
	bounds, err := cfg.Bounds(now)
	if err != nil {
		return fmt.Errorf("invalid bounds: %w", err)
	}
	value, err := format.Parse(pickValue, now)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	if !isTerminal(cmd.InOrStdin()) {
		return fmt.Errorf("pick needs an interactive terminal")
	}

	logger, closeLog, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	model := tui.New(
		tui.WithValue(value),
		tui.WithLayout(cfg.Output.Format),
		tui.WithRenderer(newRenderer(pickOutput, cfg.UI.NoColor)),
		tui.WithLogger(logger),
		tui.WithPickerOptions(
			picker.WithGranularity(g),
			picker.WithBounds(bounds),
			picker.WithClockFace(cfg.ClockFace()),
			picker.WithGridOptions(cfg.GridOptions()),
		),
	)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(pickOutput),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	v, ok := model.Result()
	if !ok {
		logger.Info("picker closed without a selection")
		return ErrNoSelection
	}
	logger.Info("picked", "value", v)
	fmt.Fprintln(cmd.OutOrStdout(), format.Value(v, cfg.Output.Format, g))
	return nil
}
