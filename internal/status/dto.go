package status

import (
	"time"

	"github.com/vovakirdan/tui-deal/internal/engine"
	"github.com/vovakirdan/tui-deal/internal/storage"
)

type openedCaseJSON struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

type offerJSON struct {
	Amount float64 `json:"amount"`
	Round  int     `json:"round"`
}

// snapshotJSON is the wire form of a snapshot. Absent values are null.
type snapshotJSON struct {
	Session         string           `json:"session,omitempty"`
	GameID          string           `json:"game_id,omitempty"`
	Phase           engine.Phase     `json:"phase"`
	Round           int              `json:"round"`
	Personality     string           `json:"banker_personality"`
	PlayerCase      *int             `json:"player_case"`
	OpenedCases     []openedCaseJSON `json:"opened_cases"`
	RemainingValues []float64        `json:"remaining_values"`
	Offers          []offerJSON      `json:"offers"`
	BankerOffer     *float64         `json:"banker_offer"`
	DealAccepted    bool             `json:"deal_accepted"`
	UpdatedAt       *time.Time       `json:"updated_at,omitempty"`
}

func toSnapshotJSON(snap engine.Snapshot) snapshotJSON {
	out := snapshotJSON{
		Phase:           snap.Phase(),
		Round:           snap.Round,
		Personality:     string(snap.Personality),
		OpenedCases:     make([]openedCaseJSON, 0, len(snap.Opened)),
		RemainingValues: make([]float64, 0, len(snap.Remaining)),
		Offers:          make([]offerJSON, 0, len(snap.Offers)),
		DealAccepted:    snap.DealAccepted,
	}
	if snap.HasPlayerCase() {
		pc := snap.PlayerCase
		out.PlayerCase = &pc
	}
	if snap.HasOffer {
		offer := snap.Offer
		out.BankerOffer = &offer
	}
	for _, c := range snap.Opened {
		out.OpenedCases = append(out.OpenedCases, openedCaseJSON{Index: c.Index, Value: c.Value})
	}
	out.RemainingValues = append(out.RemainingValues, snap.Remaining...)
	for _, o := range snap.Offers {
		out.Offers = append(out.Offers, offerJSON{Amount: o.Amount, Round: o.Round})
	}
	return out
}

func entryJSON(e Entry) snapshotJSON {
	out := toSnapshotJSON(e.Snapshot)
	out.Session = e.Session
	out.GameID = e.GameID
	updated := e.UpdatedAt.UTC()
	out.UpdatedAt = &updated
	return out
}

type sessionJSON struct {
	Session   string       `json:"session"`
	GameID    string       `json:"game_id"`
	Phase     engine.Phase `json:"phase"`
	Round     int          `json:"round"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type resultJSON struct {
	ID          string    `json:"id"`
	GameID      string    `json:"game_id"`
	Personality string    `json:"banker_personality"`
	PlayerCase  int       `json:"player_case"`
	CaseValue   float64   `json:"case_value"`
	Winnings    float64   `json:"winnings"`
	Outcome     string    `json:"outcome"`
	Rounds      int       `json:"rounds"`
	Offers      int       `json:"offers"`
	BestOffer   float64   `json:"best_offer"`
	Risk        string    `json:"risk"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResultJSON(r storage.Result) resultJSON {
	return resultJSON{
		ID:          r.ID,
		GameID:      r.GameID,
		Personality: r.Personality,
		PlayerCase:  r.PlayerCase,
		CaseValue:   r.CaseValue,
		Winnings:    r.Winnings,
		Outcome:     r.Outcome,
		Rounds:      r.Rounds,
		Offers:      r.OfferCount,
		BestOffer:   r.BestOffer,
		Risk:        r.Risk,
		CreatedAt:   r.CreatedAt,
	}
}

type errorJSON struct {
	Error string `json:"error"`
}
