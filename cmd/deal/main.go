// deal is a terminal edition of the Deal or No Deal game show.
//
// Usage:
//
//	deal list                - List game variants
//	deal play [variant]      - Play a variant (default: deal)
//	deal menu                - Pick variants interactively
//	deal scores [variant]    - Show stored results
//	deal result <id>         - Show one stored game with its offers
//	deal serve               - Start the SSH server and status endpoint
//
// Global flags:
//
//	--fps <rate>        - Input polling rate (default from config: 30)
//	--seed <value>      - RNG seed for a reproducible board
//	--db <path>         - Results database (default from config: ~/.deal/results.db)
//	--config <path>     - Custom config YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log file for interactive commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-deal/internal/games/deal"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deal",
	Short: "Deal or No Deal in your terminal",
	Long: `Deal or No Deal in your terminal.

Pick a briefcase, open the others and decide whether to take the banker's
offer or keep going until only your case is left.

Available commands:
  list     - Show all game variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View stored results
  result   - Show one stored game
  serve    - Start SSH server for remote play

Examples:
  deal play
  deal play deal_generous
  deal play --banker volatile --http 127.0.0.1:8089
  deal menu
  deal serve --ssh :2222 --http :8089
  deal scores deal_aggressive`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Input polling rate (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (empty = config value)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs of interactive commands to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(serveCmd)
}
