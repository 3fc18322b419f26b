package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

// Config is the root configuration for tdp, stored in ~/.tdp/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Calendar    CalendarConfig    `json:"calendar"`
	Suggestions SuggestionsConfig `json:"suggestions"`
	Auth        AuthConfig        `json:"auth"`
	Fixtures    FixturesConfig    `json:"fixtures"`
	Log         LogConfig         `json:"log"`
	Metrics     MetricsConfig     `json:"metrics"`
}

// CalendarConfig controls the week grid.
type CalendarConfig struct {
	// WeekStart is "sunday" or "monday".
	WeekStart string `json:"week_start"`
	// MaxEventsPerDay caps the chips shown in a day cell.
	MaxEventsPerDay int `json:"max_events_per_day"`
	// Timezone is the IANA zone imported ICS events are shown in. Empty = local.
	Timezone string `json:"timezone"`
}

type SuggestionsConfig struct {
	// GenerateDelay is a Go duration string, e.g. "2s".
	GenerateDelay string `json:"generate_delay"`
}

type AuthConfig struct {
	ConnectDelay string `json:"connect_delay"`
}

type FixturesConfig struct {
	// Path to a YAML fixture file. Empty = built-in sample data.
	Path string `json:"path"`
}

type LogConfig struct {
	Level string `json:"level"`
	// File receives log output. Empty = stderr (the UI always logs to a file).
	File string `json:"file"`
}

type MetricsConfig struct {
	// Textfile is written with Prometheus text exposition on exit. Empty = off.
	Textfile string `json:"textfile"`
}

const (
	DefaultWeekStart       = "sunday"
	DefaultMaxEventsPerDay = 3
	DefaultGenerateDelay   = "2s"
	DefaultConnectDelay    = "1.5s"
	DefaultLogLevel        = "info"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	cfg := Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills zero-value fields with built-in defaults so callers always
// get a usable Config even if the user only partially fills in the file.
func (c *Config) Normalize() {
	if c.Calendar.WeekStart == "" {
		c.Calendar.WeekStart = DefaultWeekStart
	}
	if c.Calendar.MaxEventsPerDay <= 0 {
		c.Calendar.MaxEventsPerDay = DefaultMaxEventsPerDay
	}
	if c.Suggestions.GenerateDelay == "" {
		c.Suggestions.GenerateDelay = DefaultGenerateDelay
	}
	if c.Auth.ConnectDelay == "" {
		c.Auth.ConnectDelay = DefaultConnectDelay
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks the values that are parsed later on, so a typo surfaces
// at startup rather than the first time a view needs it.
func (c Config) Validate() error {
	if _, err := timecalc.ParseWeekday(c.Calendar.WeekStart); err != nil {
		return fmt.Errorf("calendar.week_start: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("calendar.timezone: %w", err)
	}
	for key, v := range map[string]string{
		"suggestions.generate_delay": c.Suggestions.GenerateDelay,
		"auth.connect_delay":         c.Auth.ConnectDelay,
	} {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if d < 0 {
			return fmt.Errorf("%s: negative duration %q", key, v)
		}
	}
	return nil
}

// WeekStart returns the configured first weekday.
func (c Config) WeekStart() time.Weekday {
	d, err := timecalc.ParseWeekday(c.Calendar.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return d
}

// Location returns the configured timezone, or time.Local when unset.
func (c Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Calendar.Timezone)
}

func (c Config) GenerateDelay() time.Duration {
	return parseDuration(c.Suggestions.GenerateDelay, DefaultGenerateDelay)
}

func (c Config) ConnectDelay() time.Duration {
	return parseDuration(c.Auth.ConnectDelay, DefaultConnectDelay)
}

func parseDuration(v, fallback string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// tdp configuration – ~/.tdp/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box. Edit this file to customise tdp behaviour.
{
  // ── Calendar week grid ───────────────────────────────────────────────────
  "calendar": {
    // First day of the week: "sunday" or "monday".
    "week_start": "sunday",

    // Events shown per day cell before collapsing into "+N more".
    "max_events_per_day": 3,

    // IANA timezone for imported ICS events, e.g. "Europe/Berlin".
    // Leave empty to use the local timezone.
    "timezone": ""
  },

  // ── AI suggestions ───────────────────────────────────────────────────────
  "suggestions": {
    // How long "Generating..." is shown before the suggestions appear.
    "generate_delay": "2s"
  },

  // ── Calendar connection ──────────────────────────────────────────────────
  "auth": {
    "connect_delay": "1.5s"
  },

  // ── Sample data ──────────────────────────────────────────────────────────
  "fixtures": {
    // YAML file with activities, events, suggestions and posts.
    // Leave empty to use the built-in data.
    "path": ""
  },

  "log": {
    // debug, info, warn or error.
    "level": "info",
    // Log file. Leave empty for stderr; tdp ui logs to ~/.tdp/tdp.log instead.
    "file": ""
  },

  "metrics": {
    // Prometheus textfile written on exit, e.g. for node_exporter.
    // Leave empty to disable.
    "textfile": ""
  }
}
`

// DefaultPath returns the path to ~/.tdp/config.json.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Dir returns ~/.tdp.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tdp"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config at path (~/.tdp/config.json when empty), creating it
// with annotated defaults on first run. Lines starting with // are treated as
// comments and stripped before JSON parsing.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	return cfg, nil
}

// Parse decodes a commented config document, fills defaults and validates it.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
