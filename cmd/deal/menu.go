package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-deal/internal/platform/tui"
	"github.com/vovakirdan/tui-deal/internal/registry"
	"github.com/vovakirdan/tui-deal/internal/status"
)

var flagMenuHTTP string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a banker from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to choose a banker, Enter to play.
Press B or Esc after a game (or while paused) to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Results
  Q            - Quit

Examples:
  deal menu
  deal menu --db ./results.db
  deal menu --http 127.0.0.1:8089`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuHTTP, "http", "", "Serve live game state on this address")
}

func runMenu(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closeLog, err := interactiveLogger(settings)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(settings.Storage.Path)
	if store != nil {
		defer store.Close()
	}

	session := uuid.NewString()
	opts := []tui.ModelOption{tui.WithLogger(logger)}

	addr := flagMenuHTTP
	if addr == "" && settings.Status.Enabled {
		addr = settings.Status.Address
	}
	if addr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := status.NewHub(nil)
		startStatus(ctx, addr, hub, store, logger)
		opts = append(opts, tui.WithPublisher(hub, session))
	}

	cfg := runtimeConfig(settings)

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh board every time unless a seed was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, store, cfg, opts...)
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}
