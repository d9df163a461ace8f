package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/chris/datepick/internal/format"
	"github.com/chris/datepick/internal/picker"
)

// Config holds application configuration.
type Config struct {
	Picker   PickerConfig
	Calendar CalendarConfig
	Output   OutputConfig
	UI       UIConfig
	Log      LogConfig
}

// PickerConfig holds the engine settings.
type PickerConfig struct {
	Type   string
	Min    string
	Max    string
	Hour12 bool
}

// CalendarConfig holds month grid settings.
type CalendarConfig struct {
	PadTrailing bool `mapstructure:"pad_trailing"`
}

// OutputConfig controls how a committed value is printed.
type OutputConfig struct {
	Format string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	NoColor bool `mapstructure:"no_color"`
}

// LogConfig holds debug logging settings.
type LogConfig struct {
	File  string
	Level string
}

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"type":      "picker.type",
	"min":       "picker.min",
	"max":       "picker.max",
	"hour12":    "picker.hour12",
	"pad":       "calendar.pad_trailing",
	"format":    "output.format",
	"no-color":  "ui.no_color",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// AddFlags registers the flags that can override configuration
func AddFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Config file path (default: ~/.config/datepick/config.toml)")
	fs.String("type", "datetime", "Picker type: date, time or datetime")
	fs.String("min", "", "Earliest selectable date (YYYY-MM-DD, YYYY-MM-DD HH:MM, today)")
	fs.String("max", "", "Latest selectable date (YYYY-MM-DD, YYYY-MM-DD HH:MM, today)")
	fs.Bool("hour12", false, "Use a 12-hour clock face")
	fs.Bool("pad", false, "Fill the last calendar week with days from the next month")
	fs.String("format", "", "Output format (strftime)")
	fs.Bool("no-color", false, "Disable colors")
	fs.String("log-file", "", "Write debug logs to this file")
	fs.String("log-level", "info", "Log level: debug, info, warn or error")
}

// Load reads configuration from defaults, the config file, the environment
// and flags, in increasing order of precedence. Env var overrides use the
// prefix DATEPICK_. A missing default config file is not an error.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("picker.type", "datetime")
	v.SetDefault("picker.min", "")
	v.SetDefault("picker.max", "")
	v.SetDefault("picker.hour12", false)
	v.SetDefault("calendar.pad_trailing", false)
	v.SetDefault("output.format", "")
	v.SetDefault("ui.no_color", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DATEPICK_CONFIG")
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			cfgPath = f.Value.String()
		}
	}
	explicit := cfgPath != ""
	if explicit {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(defaultConfigDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DATEPICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Granularity parses the configured picker type
func (c Config) Granularity() (picker.Granularity, error) {
	return picker.ParseGranularity(c.Picker.Type)
}

// Bounds parses the configured min and max relative to now
func (c Config) Bounds(now time.Time) (picker.Bounds, error) {
	min, err := format.Parse(c.Picker.Min, now)
	if err != nil {
		return picker.Bounds{}, fmt.Errorf("min: %w", err)
	}
	max, err := format.Parse(c.Picker.Max, now)
	if err != nil {
		return picker.Bounds{}, fmt.Errorf("max: %w", err)
	}
	return picker.Bounds{Min: min, Max: max}, nil
}

// ClockFace returns the dial geometry for the configured hour format
func (c Config) ClockFace() picker.ClockFace {
	face := picker.DefaultClockFace()
	face.Hour12 = c.Picker.Hour12
	return face
}

// GridOptions returns the configured calendar options
func (c Config) GridOptions() picker.GridOptions {
	return picker.GridOptions{PadTrailing: c.Calendar.PadTrailing}
}

func defaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "datepick")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "datepick")
}
