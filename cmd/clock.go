package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chris/datepick/internal/picker"
)

var clockMode string

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Convert between dial positions and clock values",
	Long: `Convert between positions on the picker's clock dial and hours or minutes.

Positions are offsets from the dial center in dial units, with y growing
downward, so 12 o'clock on the outer ring is "0 -99". Put -- before
negative coordinates.`,
}

var clockPointCmd = &cobra.Command{
	Use:   "point X Y",
	Short: "Print the value and ring under a dial position",
	Args:  cobra.ExactArgs(2),
	RunE:  runClockPoint,
}

var clockTimeCmd = &cobra.Command{
	Use:   "time VALUE",
	Short: "Print the dial position of an hour or minute",
	Args:  cobra.ExactArgs(1),
	RunE:  runClockTime,
}

func init() {
	rootCmd.AddCommand(clockCmd)
	clockCmd.AddCommand(clockPointCmd)
	clockCmd.AddCommand(clockTimeCmd)
	clockCmd.PersistentFlags().StringVar(&clockMode, "mode", "hour", "Dial mode: hour or minute")
}

func parseClockMode(s string) (picker.ClockMode, error) {
	switch strings.ToLower(s) {
	case "hour", "hours", "h":
		return picker.HourMode, nil
	case "minute", "minutes", "m":
		return picker.MinuteMode, nil
	}
	return picker.HourMode, fmt.Errorf("unknown clock mode %q (want hour or minute)", s)
}

func runClockPoint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mode, err := parseClockMode(clockMode)
	if err != nil {
		return err
	}

	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	face := cfg.ClockFace()
	if !face.OnDial(x, y) {
		return fmt.Errorf("point (%g, %g) is outside the dial (radius %g)", x, y, face.DialRadius)
	}
	value, ring := face.PointToTime(x, y, mode)
	fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", value, ring)
	return nil
}

func runClockTime(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mode, err := parseClockMode(clockMode)
	if err != nil {
		return err
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}
	face := cfg.ClockFace()
	lo, hi := clockRange(face, mode)
	if value < lo || value > hi {
		return fmt.Errorf("%s %d out of range %d..%d", mode, value, lo, hi)
	}

	x, y := face.TimeToPoint(value, mode)
	fmt.Fprintf(cmd.OutOrStdout(), "%.2f %.2f\n", tidy(x), tidy(y))
	return nil
}

// clockRange is the span of values the face can show in mode
func clockRange(face picker.ClockFace, mode picker.ClockMode) (int, int) {
	switch {
	case mode == picker.MinuteMode:
		return 0, 59
	case face.Hour12:
		return 1, 12
	}
	return 0, 23
}

// tidy rounds away float noise so a coordinate never prints as -0.00
func tidy(v float64) float64 {
	if math.Abs(v) < 0.005 {
		return 0
	}
	return v
}
