package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/datepick/internal/picker"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "Print the years the picker offers",
	Long:  fmt.Sprintf("Print one selectable year per line. Without bounds the list runs from %d to %d years past today.", picker.DefaultFirstYear, picker.DefaultYearsAhead),
	Args:  cobra.NoArgs,
	RunE:  runYears,
}

func init() {
	rootCmd.AddCommand(yearsCmd)
}

func runYears(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	now := time.Now()
	bounds, err := cfg.Bounds(now)
	if err != nil {
		return fmt.Errorf("invalid bounds: %w", err)
	}

	years := picker.Years(bounds, now)
	if len(years) == 0 {
		return fmt.Errorf("no selectable years: --min is after --max")
	}
	for _, y := range years {
		fmt.Fprintln(cmd.OutOrStdout(), y)
	}
	return nil
}
