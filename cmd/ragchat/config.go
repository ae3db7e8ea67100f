package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/i18n"
	"github.com/CoderFake/ragchat/rest"
	"github.com/CoderFake/ragchat/toml"
	"golang.org/x/time/rate"
)

// loadConfig resolves the configuration: defaults, the file at path,
// environment variables, then the -api-url and -lang flags.
func loadConfig(path, apiURL, lang string, getenv func(string) string) (toml.Config, error) {
	cfg, err := toml.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv(getenv)
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if lang != "" {
		// Accept locale forms such as en_US.UTF-8 as well as plain codes.
		if _, err := ragchat.ParseLanguage(lang); err != nil {
			lang = string(i18n.Match(lang))
		}
		cfg.Language = lang
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// seedLanguage picks the language of a newly created state: an explicitly
// configured language, otherwise the best match for the system locale.
func seedLanguage(cfg toml.Config, getenv func(string) string) ragchat.Language {
	if cfg.Language != string(ragchat.DefaultLanguage) || getenv(toml.EnvLanguage) != "" {
		return ragchat.Language(cfg.Language)
	}
	return i18n.Match(getenv("LC_ALL"), getenv("LC_MESSAGES"), getenv("LANG"))
}

// newLogger opens the log file named by cfg. The TUI owns the terminal, so
// nothing is logged to stderr.
func newLogger(cfg toml.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newTextLogger(f, cfg.SlogLevel()), func() { f.Close() }, nil
}

func newTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newClient builds the REST client for cfg.
func newClient(cfg toml.Config, store ragchat.StateStore, logger *slog.Logger) *rest.Client {
	opts := []rest.Option{
		rest.WithStateStore(store),
		rest.WithLogger(logger),
	}
	if l := limiter(cfg.RequestsPerSecond); l != nil {
		opts = append(opts, rest.WithLimiter(l))
	}
	return rest.New(cfg.APIURL, opts...)
}

// limiter returns a limiter for rps requests per second, or nil when rps
// is zero.
func limiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	burst := max(int(math.Ceil(rps)), 1)
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// requestTimeout bounds one-shot commands that have no configured timeout.
const requestTimeout = 2 * time.Minute
