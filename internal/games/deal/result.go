package deal

import (
	"github.com/vovakirdan/tui-deal/internal/engine"
)

// Outcome is how a finished game ended.
type Outcome string

const (
	OutcomeDeal   Outcome = "deal"
	OutcomeNoDeal Outcome = "no_deal"
)

// Result summarises a finished game.
type Result struct {
	GameID      string
	Personality engine.Personality
	PlayerCase  int     // 0-based case index
	CaseValue   float64 // What was inside the player's case
	Winnings    float64
	Outcome     Outcome
	Rounds      int
	Offers      []engine.Offer
	BestOffer   float64
	Risk        Risk
}

// Reporter is implemented by games that can summarise a finished game.
type Reporter interface {
	Result() (Result, bool)
}

// Result returns the summary of the finished game. ok is false while the
// game is still in progress.
func (g *Game) Result() (Result, bool) {
	if !g.finished {
		return Result{}, false
	}
	snap := g.eng.State()
	res := Result{
		GameID:      g.ID(),
		Personality: snap.Personality,
		PlayerCase:  snap.PlayerCase,
		CaseValue:   g.caseValue,
		Winnings:    g.winnings,
		Outcome:     g.outcome,
		Rounds:      snap.Round,
		Offers:      snap.Offers,
		Risk:        g.risk,
	}
	if best, ok := snap.BestOffer(); ok {
		res.BestOffer = best.Amount
	}
	return res, true
}
