// Package format parses date input from the command line and renders
// committed picker values for output.
package format

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/chris/datepick/internal/picker"
)

// ErrInvalidDate is returned when input matches none of the accepted layouts
var ErrInvalidDate = errors.New("invalid date")

// Accepted date layouts, most specific first
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse reads a date value relative to now. Besides the layouts above it
// accepts "today", "now", "yesterday", "tomorrow" and a bare "15:04", which
// is taken as a time on now's date.
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	loc := now.Location()

	switch strings.ToLower(s) {
	case "":
		return time.Time{}, nil
	case "now":
		return now, nil
	case "today":
		return startOfDay(now), nil
	case "yesterday":
		return startOfDay(now).AddDate(0, 0, -1), nil
	case "tomorrow":
		return startOfDay(now).AddDate(0, 0, 1), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	if t, err := time.ParseInLocation("15:04", s, loc); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q (use YYYY-MM-DD, YYYY-MM-DD HH:MM, HH:MM or today)", ErrInvalidDate, s)
}

// ParseMonth reads a "2006-01" month, defaulting to now's month when empty
func ParseMonth(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (use YYYY-MM)", ErrInvalidDate, s)
	}
	return t, nil
}

// DefaultLayout returns the strftime layout used for g when none is configured
func DefaultLayout(g picker.Granularity) string {
	switch g {
	case picker.Date:
		return "%Y-%m-%d"
	case picker.Time:
		return "%H:%M"
	default:
		return "%Y-%m-%d %H:%M"
	}
}

// Value renders t with the strftime layout, falling back to the default
// layout for g.
func Value(t time.Time, layout string, g picker.Granularity) string {
	if strings.TrimSpace(layout) == "" {
		layout = DefaultLayout(g)
	}
	return strftime.Format(layout, t)
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
