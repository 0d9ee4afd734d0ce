// Package config loads calcscout settings. Sources are layered: built-in
// defaults, then a TOML file, then .env, then CALCSCOUT_* variables. Command
// line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const envPrefix = "CALCSCOUT_"

// Duration is a time.Duration that reads and writes as "15s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Graph holds the values pre-filled into the graph panel.
type Graph struct {
	XMin    float64 `toml:"x_min"`
	XMax    float64 `toml:"x_max"`
	Samples int     `toml:"samples"`
}

// Hints controls the tip line.
type Hints struct {
	Visible bool `toml:"visible"`
}

// Config holds all settings for a calcscout run.
type Config struct {
	Endpoint  string   `toml:"endpoint"`
	Timeout   Duration `toml:"timeout"`
	LogFile   string   `toml:"log_file"`
	LogLevel  string   `toml:"log_level"`
	AltScreen bool     `toml:"alt_screen"`
	ExportDir string   `toml:"export_dir"`
	Graph     Graph    `toml:"graph"`
	Hints     Hints    `toml:"hints"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Endpoint:  "http://localhost:8000",
		Timeout:   Duration{15 * time.Second},
		LogFile:   defaultLogFile(),
		LogLevel:  "info",
		AltScreen: true,
		ExportDir: ".",
		Graph:     Graph{XMin: -10, XMax: 10, Samples: 400},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/calcscout/config.toml, or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "calcscout", "config.toml")
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "calcscout.log"
	}
	return filepath.Join(dir, "calcscout", "calcscout.log")
}

// Load is Read followed by Validate.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Read layers defaults, the TOML file at path, .env and the environment
// without validating, so callers can overlay more settings first. A missing
// file at the default path is not an error; a missing file that was asked
// for explicitly is.
func Read(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from CALCSCOUT_* variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	get := func(key string) (string, bool) {
		val, ok := lookup(envPrefix + key)
		val = strings.TrimSpace(val)
		return val, ok && val != ""
	}

	if val, ok := get("ENDPOINT"); ok {
		c.Endpoint = val
	}
	if val, ok := get("TIMEOUT"); ok {
		if err := c.Timeout.UnmarshalText([]byte(val)); err != nil {
			errs = append(errs, fmt.Errorf("%sTIMEOUT: %w", envPrefix, err))
		}
	}
	if val, ok := get("LOG_FILE"); ok {
		c.LogFile = val
	}
	if val, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = val
	}
	if val, ok := get("ALT_SCREEN"); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sALT_SCREEN: %w", envPrefix, err))
		} else {
			c.AltScreen = b
		}
	}
	if val, ok := get("EXPORT_DIR"); ok {
		c.ExportDir = val
	}
	if val, ok := get("GRAPH_X_MIN"); ok {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sGRAPH_X_MIN: %w", envPrefix, err))
		} else {
			c.Graph.XMin = f
		}
	}
	if val, ok := get("GRAPH_X_MAX"); ok {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sGRAPH_X_MAX: %w", envPrefix, err))
		} else {
			c.Graph.XMax = f
		}
	}
	if val, ok := get("GRAPH_SAMPLES"); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sGRAPH_SAMPLES: %w", envPrefix, err))
		} else {
			c.Graph.Samples = n
		}
	}
	if val, ok := get("HINTS_VISIBLE"); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sHINTS_VISIBLE: %w", envPrefix, err))
		} else {
			c.Hints.Visible = b
		}
	}
	return errors.Join(errs...)
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("endpoint %q is not an absolute URL", c.Endpoint))
	}
	if c.Timeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Graph.Samples <= 0 {
		errs = append(errs, fmt.Errorf("graph.samples must be positive, got %d", c.Graph.Samples))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", level)
	}
}

// GraphField formats a graph default the way it is typed into the form.
func GraphField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
