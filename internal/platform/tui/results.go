package tui

import (
	"github.com/vovakirdan/tui-deal/internal/games/deal"
	"github.com/vovakirdan/tui-deal/internal/storage"
)

// storageResult converts a finished game summary into a storage row.
func storageResult(r deal.Result) storage.Result {
	offers := make([]storage.Offer, len(r.Offers))
	for i, o := range r.Offers {
		offers[i] = storage.Offer{Round: o.Round, Amount: o.Amount}
	}
	return storage.Result{
		GameID:      r.GameID,
		Personality: string(r.Personality),
		PlayerCase:  r.PlayerCase,
		CaseValue:   r.CaseValue,
		Winnings:    r.Winnings,
		Outcome:     string(r.Outcome),
		Rounds:      r.Rounds,
		OfferCount:  len(offers),
		BestOffer:   r.BestOffer,
		Risk:        string(r.Risk),
		Offers:      offers,
	}
}
