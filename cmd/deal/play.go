package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-deal/internal/platform/tui"
	"github.com/vovakirdan/tui-deal/internal/registry"
	"github.com/vovakirdan/tui-deal/internal/status"
)

var (
	flagBanker   string
	flagPlayHTTP string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start playing the given variant (default: deal).

Controls:
  Arrows/HJKL  - Move between cases
  Enter/Space  - Pick your case, then open others
  D / N        - Deal or no deal when the banker calls
  Tab          - Change banker before the first pick (deal variant)
  P            - Pause
  R            - New game (after game over)
  Q/Ctrl+C     - Quit

Banker options (--banker):
  balanced    - Steady, default offer pattern
  generous    - Higher offers, occasional sweeteners
  aggressive  - Lowball offers, tight margins
  volatile    - Wild swings in either direction
  random      - A different banker every game

Examples:
  deal play
  deal play deal_aggressive
  deal play --banker generous
  deal play --http 127.0.0.1:8089
  deal play --config ./my-deal.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBanker, "banker", "", "Banker personality for the deal variant")
	playCmd.Flags().StringVar(&flagPlayHTTP, "http", "", "Serve live game state on this address")
}

func runPlay(_ *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	gameID := "deal"
	if len(args) == 1 {
		gameID = args[0]
	}
	gameID, err = variantFor(gameID, settings, flagBanker)
	if err != nil {
		return err
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'deal list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID)
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

	addr := flagPlayHTTP
	if addr == "" && settings.Status.Enabled {
		addr = settings.Status.Address
	}
	if addr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := status.NewHub(nil)
		startStatus(ctx, addr, hub, store, logger)
		opts = append(opts, tui.WithPublisher(hub, session))
		fmt.Fprintf(os.Stderr, "Status endpoint on http://%s\n", addr)
	}

	_, err = tui.Run(game, store, runtimeConfig(settings), opts...)
	return err
}
