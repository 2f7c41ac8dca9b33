package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-deal/internal/games/deal"
	"github.com/vovakirdan/tui-deal/internal/registry"
	"github.com/vovakirdan/tui-deal/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show stored results",
	Long: `Without a variant, show a summary of every variant played.
With a variant, show its best results.

Examples:
  deal scores
  deal scores deal_generous
  deal scores deal --limit 25
  deal scores deal_volatile --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all stored results of the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if flagScoresClear {
			return fmt.Errorf("--clear needs a variant")
		}
		return printSummary(out, store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'deal list' to see available variants", gameID)
	}

	if flagScoresClear {
		if err := store.ClearResults(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared results for %s.\n", gameID)
		return nil
	}
	return printTopResults(out, store, gameID, flagScoresLimit)
}

func printSummary(out io.Writer, store *storage.Store) error {
	stats, err := store.AllGamesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No results recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'deal play' to face the banker!")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(out, "  %-16s  %5s  %5s  %15s  %15s  %s\n", "Variant", "Games", "Deals", "Best", "Average", "Last played")
	fmt.Fprintf(out, "  %-16s  %5s  %5s  %15s  %15s  %s\n", "-------", "-----", "-----", "----", "-------", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Fprintf(out, "  %-16s  %5d  %5d  %15s  %15s  %s\n",
			id, s.GamesCount, s.Deals, deal.Money(s.BestWinnings), deal.Money(s.AvgWinnings),
			s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printTopResults(out io.Writer, store *storage.Store, gameID string, limit int) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	results, err := store.TopResults(gameID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Results - %s\n", game.Title())
	fmt.Fprintln(out)

	if len(results) == 0 {
		fmt.Fprintln(out, "No results recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'deal play %s' to set the first one!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %15s  %-7s  %4s  %15s  %-10s  %-16s  %s\n",
		"Rank", "Winnings", "Outcome", "Case", "Case held", "Risk", "Date", "ID")
	fmt.Fprintf(out, "  %-4s  %15s  %-7s  %4s  %15s  %-10s  %-16s  %s\n",
		"----", "--------", "-------", "----", "---------", "----", "----", "--")
	for i, r := range results {
		outcome := "deal"
		if r.Outcome == string(deal.OutcomeNoDeal) {
			outcome = "no deal"
		}
		fmt.Fprintf(out, "  %-4d  %15s  %-7s  %4d  %15s  %-10s  %-16s  %s\n",
			i+1, deal.Money(r.Winnings), outcome, r.PlayerCase+1, deal.Money(r.CaseValue),
			r.Risk, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.ID)
	}

	stats, err := store.GameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Games: %d  Deals: %d  Best: %s  Total: %s\n",
			stats.GamesCount, stats.Deals, deal.Money(stats.BestWinnings), deal.Money(stats.TotalWinnings))
	}
	return nil
}
