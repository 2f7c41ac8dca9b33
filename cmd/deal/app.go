package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-deal/internal/config"
	"github.com/vovakirdan/tui-deal/internal/core"
	"github.com/vovakirdan/tui-deal/internal/engine"
	"github.com/vovakirdan/tui-deal/internal/games/deal"
	"github.com/vovakirdan/tui-deal/internal/status"
	"github.com/vovakirdan/tui-deal/internal/storage"
)

// loadSettings reads the config file and applies global flag overrides.
func loadSettings() (config.Config, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	deal.SetConfigPath(flagConfig)

	if flagFPS > 0 {
		settings.TickRate = flagFPS
	}
	if flagDBPath != "" {
		settings.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		settings.Log.Level = strings.ToLower(flagLogLevel)
	}
	if err := settings.Validate(); err != nil {
		return config.Config{}, err
	}
	return settings, nil
}

// newLogger builds a charmbracelet logger at the configured level.
func newLogger(w io.Writer, level, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level == "" {
		level = "info"
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// interactiveLogger returns a logger that never writes over the TUI: it goes
// to --log-file when set and is discarded otherwise.
func interactiveLogger(settings config.Config) (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f, settings.Log.Level, "deal"), func() { f.Close() }, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig(settings config.Config) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = settings.TickRate
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the results database. Failures are reported and play
// continues without saving.
func openStore(path string) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	return store
}

// variantFor maps a --banker value onto a registered variant ID.
func variantFor(gameID string, settings config.Config, banker string) (string, error) {
	if banker == "" {
		return gameID, nil
	}
	if gameID != "deal" {
		return "", fmt.Errorf("--banker only applies to the %q variant, got %q", "deal", gameID)
	}
	if err := config.ApplyPersonality(&settings, banker); err != nil {
		return "", err
	}
	p, err := engine.ParsePersonality(settings.Banker.Personality)
	if errors.Is(err, engine.ErrUnknownPersonality) {
		// random
		return "deal", nil
	}
	return "deal_" + string(p), nil
}

// startStatus serves the status endpoint in the background until ctx ends.
func startStatus(ctx context.Context, addr string, hub *status.Hub, store *storage.Store, logger *log.Logger) {
	opts := []status.ServerOption{status.WithLogger(logger.WithPrefix("status"))}
	if store != nil {
		opts = append(opts, status.WithResults(store))
	}
	srv := status.NewServer(addr, hub, opts...)
	go func() {
		if err := srv.ListenAndServe(ctx); err != nil {
			logger.Error("status endpoint stopped", "error", err)
		}
	}()
}
