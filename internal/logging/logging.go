// Package logging builds the debug logger. A terminal UI owns stdout and
// stderr while it runs, so log records only ever go to a file.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// New returns a text logger writing to path at the given level, and a
// function that closes the file. With an empty path the logger discards
// everything.
func New(path, level string) (*slog.Logger, func() error, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), f.Close, nil
}

// ParseLevel reads debug, info, warn or error. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}
