package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-deal/internal/engine"
	"github.com/vovakirdan/tui-deal/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game variants",
	Long:  `Shows every registered variant with its banker.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	games := registry.List()

	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return
	}

	fmt.Fprintln(out, "Available variants:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Banker")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "------")

	for _, g := range games {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, g.ID, bankerSummary(g.ID))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'deal play <id>' to play a variant.")
}

// bankerSummary describes the banker a variant plays against.
func bankerSummary(gameID string) string {
	p, err := engine.ParsePersonality(strings.TrimPrefix(gameID, "deal_"))
	if err != nil {
		return "Random banker, Tab changes it before your first pick"
	}
	return fmt.Sprintf("%s: %s", p.Label(), p.Description())
}
