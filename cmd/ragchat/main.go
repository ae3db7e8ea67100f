// Command ragchat is a terminal client for a retrieval-augmented chat
// server.
//
// Usage:
//
//	ragchat [flags]                      open the chat TUI
//	ragchat [flags] ask <question>       ask one question and print the answer
//	ragchat [flags] upload [-category c] <glob>...
//	                                     upload documents (admin)
//	ragchat [flags] reindex              rebuild the server index (admin)
//	ragchat [flags] login <username>     sign in; the password is read from
//	                                     RAGCHAT_PASSWORD or stdin
//	ragchat [flags] logout               forget the stored credentials
//
// Flags:
//
//	-config string   Path to the configuration file (default: user config dir)
//	-api-url string  Server address (overrides config and RAGCHAT_API_URL)
//	-lang string     Interface and answer language: en, vi
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/CoderFake/ragchat"
	bt "github.com/CoderFake/ragchat/bubbletea"
	"github.com/CoderFake/ragchat/fsnotify"
	jsonstore "github.com/CoderFake/ragchat/json"
	"github.com/CoderFake/ragchat/rest"
	"github.com/CoderFake/ragchat/sqlite"
	"github.com/CoderFake/ragchat/toml"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ragchat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", toml.Path(), "Path to the configuration file")
		apiURL     = flag.String("api-url", "", "Server address (overrides config)")
		lang       = flag.String("lang", "", "Language: en, vi")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(*configPath, *apiURL, *lang, os.Getenv)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openState(cfg, *lang, os.Getenv)
	if err != nil {
		return err
	}

	client := newClient(cfg, store, logger)
	a := &app{
		client:  client,
		store:   store,
		logger:  logger,
		stdout:  os.Stdout,
		stdin:   os.Stdin,
		getenv:  os.Getenv,
		timeout: cfg.Timeout.Duration,
	}

	args := flag.Args()
	if len(args) > 0 {
		return a.command(ctx, args[0], args[1:])
	}

	history, err := sqlite.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer history.Close()

	return runTUI(ctx, *configPath, *apiURL, *lang, cfg, bt.Services{
		Chat:      client,
		Auth:      client,
		Documents: client,
		Settings:  client,
		State:     store,
		History:   history,
	}, logger)
}

// runTUI runs the chat TUI and reloads the configuration while it is open.
func runTUI(ctx context.Context, configPath, apiURL, lang string, cfg toml.Config, svc bt.Services, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	external := make(chan tea.Msg)
	watcher, err := fsnotify.New(configPath, fsnotify.DefaultDebounce, logger)
	if err != nil {
		// The TUI works without live reload.
		logger.Warn("config watch disabled", "path", configPath, "error", err)
	} else {
		defer watcher.Close()
		go func() {
			err := watcher.Run(ctx, func() {
				reloaded, err := loadConfig(configPath, apiURL, lang, os.Getenv)
				if err != nil {
					logger.Warn("config reload rejected", "error", err)
					return
				}
				logger.Info("config reloaded", "path", configPath)
				select {
				case external <- configMsg(reloaded):
				case <-ctx.Done():
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("config watch", "error", err)
			}
		}()
	}

	m := bt.New(svc, bt.Options{
		RevealSpeed: cfg.RevealSpeed.Duration,
		NoAnimation: cfg.RevealSpeed.Duration == 0,
		Timeout:     cfg.Timeout.Duration,
		Logger:      logger,
	})
	if err := bt.Run(ctx, m, external); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// configMsg carries the live-reloadable part of cfg to the TUI.
func configMsg(cfg toml.Config) bt.ConfigMsg {
	return bt.ConfigMsg{
		RevealSpeed: cfg.RevealSpeed.Duration,
		Theme:       ragchat.ThemeMode(cfg.Theme),
	}
}

// app runs the one-shot commands.
type app struct {
	client *rest.Client
	store  ragchat.StateStore
	logger *slog.Logger
	stdout io.Writer
	stdin  io.Reader
	getenv func(string) string
	// timeout bounds each command; zero uses requestTimeout.
	timeout time.Duration
}

// openState loads the persisted client state. A state file created on this
// run takes its preferences from the configuration.
func openState(cfg toml.Config, lang string, getenv func(string) string) (*jsonstore.FileStore, error) {
	_, statErr := os.Stat(cfg.StatePath)
	fresh := errors.Is(statErr, os.ErrNotExist)

	store := jsonstore.NewFileStore(cfg.StatePath)
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	st := store.Get()
	changed := false
	if fresh {
		st.Language = seedLanguage(cfg, getenv)
		st.Theme = ragchat.ThemeMode(cfg.Theme)
		changed = true
	}
	if lang != "" {
		st.Language = ragchat.Language(cfg.Language)
		changed = true
	}
	if !changed {
		return store, nil
	}
	if err := store.Set(st); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	return store, nil
}
