package engine

// NoCase marks an absent player case in a Snapshot.
const NoCase = -1

// OpenedCase records one revealed case.
type OpenedCase struct {
	Index int
	Value float64
}

// Offer is one banker offer. Offers are stored in the order they were made.
type Offer struct {
	Amount float64
	Round  int
}

// Phase is the conceptual game state derived from a snapshot.
type Phase string

const (
	PhaseAwaitingSelection Phase = "awaiting_selection"
	PhaseOpeningCases      Phase = "opening_cases"
	PhaseOfferPending      Phase = "offer_pending"
	PhaseFinalReveal       Phase = "final_reveal"
	PhaseFinished          Phase = "finished"
)

// Snapshot is a point-in-time copy of the engine state.
// It shares no memory with the engine that produced it.
type Snapshot struct {
	Round        int
	PlayerCase   int // NoCase until selected
	Opened       []OpenedCase
	Remaining    []float64
	Offers       []Offer
	Offer        float64 // Live offer, valid when HasOffer
	HasOffer     bool
	DealAccepted bool
	Personality  Personality
}

// HasPlayerCase reports whether the player has picked a case.
func (s Snapshot) HasPlayerCase() bool {
	return s.PlayerCase != NoCase
}

// RemainingCount returns the number of unopened cases, the player's included.
func (s Snapshot) RemainingCount() int {
	return len(s.Remaining)
}

// IsOpened reports whether the case at index has been revealed.
func (s Snapshot) IsOpened(index int) bool {
	for _, c := range s.Opened {
		if c.Index == index {
			return true
		}
	}
	return false
}

// OpenedValue returns the value of a revealed case.
func (s Snapshot) OpenedValue(index int) (float64, bool) {
	for _, c := range s.Opened {
		if c.Index == index {
			return c.Value, true
		}
	}
	return 0, false
}

// LastOffer returns the most recent offer, live or not.
func (s Snapshot) LastOffer() (Offer, bool) {
	if len(s.Offers) == 0 {
		return Offer{}, false
	}
	return s.Offers[len(s.Offers)-1], true
}

// BestOffer returns the highest offer made so far.
func (s Snapshot) BestOffer() (Offer, bool) {
	if len(s.Offers) == 0 {
		return Offer{}, false
	}
	best := s.Offers[0]
	for _, o := range s.Offers[1:] {
		if o.Amount > best.Amount {
			best = o
		}
	}
	return best, true
}

// Phase derives the state machine position from the snapshot fields.
func (s Snapshot) Phase() Phase {
	switch {
	case s.DealAccepted:
		return PhaseFinished
	case !s.HasPlayerCase():
		return PhaseAwaitingSelection
	case s.HasOffer:
		return PhaseOfferPending
	case len(s.Remaining) <= 2:
		return PhaseFinalReveal
	default:
		return PhaseOpeningCases
	}
}
