package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chris/datepick/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "datepick",
	Short:         "Date and time picker for the terminal",
	Long:          "Pick dates and times from a calendar, a year list and a clock dial, and print them for scripts",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cancelling the picker is not worth a message
		if !errors.Is(err, ErrNoSelection) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	config.AddFlags(rootCmd.PersistentFlags())
}

// loadConfig merges the config file, environment and cmd's flags
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// isTerminal returns true if v is a terminal
func isTerminal(v any) bool {
	if f, ok := v.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// newRenderer returns a lipgloss renderer for w that drops styling when w
// is not a terminal or color is turned off.
func newRenderer(w io.Writer, noColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if noColor || !isTerminal(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}
