// Package toml loads and saves the client configuration file.
//
// Values are resolved in order: built-in defaults, the TOML file, then
// RAGCHAT_* environment variables. Command-line flags are applied last by
// the caller.
package toml

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/CoderFake/ragchat"
)

// DefaultAPIURL is the backend address used when none is configured.
const DefaultAPIURL = "http://localhost:6868/api"

// Environment variables that override file values.
const (
	EnvAPIURL      = "RAGCHAT_API_URL"
	EnvLanguage    = "RAGCHAT_LANGUAGE"
	EnvLogLevel    = "RAGCHAT_LOG_LEVEL"
	EnvRevealSpeed = "RAGCHAT_REVEAL_SPEED"
)

// Config is the client configuration.
type Config struct {
	APIURL   string `toml:"api_url"`
	Language string `toml:"language"`
	Theme    string `toml:"theme"`

	// RevealSpeed is the time per revealed character; zero disables the
	// typing animation.
	RevealSpeed Duration `toml:"reveal_speed"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	StatePath   string `toml:"state_path"`
	HistoryPath string `toml:"history_path"`

	// RequestsPerSecond limits calls to the backend; zero means unlimited.
	RequestsPerSecond float64  `toml:"requests_per_second"`
	Timeout           Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string such as "12ms".
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Dir returns the directory holding the configuration, state and history
// files.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ragchat")
	}
	return ".ragchat"
}

// Path returns the default configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Default returns the built-in configuration with files under dir.
func Default(dir string) Config {
	return Config{
		APIURL:      DefaultAPIURL,
		Language:    string(ragchat.DefaultLanguage),
		Theme:       string(ragchat.ThemeLight),
		RevealSpeed: Duration{ragchat.DefaultRevealSpeed},
		LogLevel:    "info",
		LogFile:     filepath.Join(dir, "ragchat.log"),
		StatePath:   filepath.Join(dir, "state.json"),
		HistoryPath: filepath.Join(dir, "history.db"),
		Timeout:     Duration{60 * time.Second},
	}
}

// Load reads path over the defaults for its directory. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path atomically with owner-only permissions.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString("# ragchat configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables read with getenv.
// Unparseable durations are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvRevealSpeed); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RevealSpeed = Duration{d}
		}
	}
}

// Validate reports every invalid field. The returned error matches
// ragchat.ErrValidation.
func (c Config) Validate() error {
	var errs []error
	invalid := func(field, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %s: %w", field, fmt.Sprintf(format, args...), ragchat.ErrValidation))
	}

	if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		invalid("api_url", "must be an absolute http(s) URL, got %q", c.APIURL)
	}
	if _, err := ragchat.ParseLanguage(c.Language); err != nil {
		invalid("language", "must be en or vi, got %q", c.Language)
	}
	if _, err := ragchat.ParseThemeMode(c.Theme); err != nil {
		invalid("theme", "must be light or dark, got %q", c.Theme)
	}
	if c.RevealSpeed.Duration < 0 {
		invalid("reveal_speed", "must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		invalid("log_level", "%v", err)
	}
	if c.RequestsPerSecond < 0 {
		invalid("requests_per_second", "must not be negative")
	}
	if c.Timeout.Duration < 0 {
		invalid("timeout", "must not be negative")
	}
	return errors.Join(errs...)
}

// SlogLevel returns the configured log level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown level %s", strconv.Quote(s))
	}
	return level, nil
}
