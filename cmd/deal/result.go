package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-deal/internal/games/deal"
	"github.com/vovakirdan/tui-deal/internal/storage"
)

var resultCmd = &cobra.Command{
	Use:   "result <id>",
	Short: "Show one stored game with its offer history",
	Long: `Show a stored game by the ID printed by 'deal scores'.

Examples:
  deal result 3f1c2a9e-...`,
	Args: cobra.ExactArgs(1),
	RunE: runResult,
}

func runResult(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.ResultByID(args[0])
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), r)
	return nil
}

func printResult(out io.Writer, r storage.Result) {
	fmt.Fprintf(out, "Game %s (%s)\n", r.ID, r.GameID)
	fmt.Fprintf(out, "Played:     %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Banker:     %s\n", r.Personality)
	fmt.Fprintf(out, "Your case:  #%d holding %s\n", r.PlayerCase+1, deal.Money(r.CaseValue))
	if r.Outcome == string(deal.OutcomeDeal) {
		fmt.Fprintf(out, "Outcome:    deal for %s\n", deal.Money(r.Winnings))
	} else {
		fmt.Fprintf(out, "Outcome:    no deal, won %s\n", deal.Money(r.Winnings))
	}
	fmt.Fprintf(out, "Risk:       %s\n", r.Risk)
	fmt.Fprintf(out, "Rounds:     %d\n", r.Rounds)

	if len(r.Offers) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Offers:")
	for i, o := range r.Offers {
		fmt.Fprintf(out, "  %2d. round %-2d %15s\n", i+1, o.Round, deal.Money(o.Amount))
	}
	fmt.Fprintf(out, "Best offer: %s\n", deal.Money(r.BestOffer))
}
