package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Decision is the player's answer to a banker offer.
type Decision int

const (
	NoDeal Decision = iota
	Deal
)

// ErrUnknownDecision is returned by ParseDecision for unrecognised input.
var ErrUnknownDecision = errors.New("engine: unknown decision")

// ParseDecision accepts "deal" and "no deal" (also "no_deal", "nodeal").
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deal":
		return Deal, nil
	case "no deal", "no_deal", "nodeal", "no-deal":
		return NoDeal, nil
	}
	return NoDeal, fmt.Errorf("%w: %q", ErrUnknownDecision, s)
}

// String returns the canonical spelling of the decision.
func (d Decision) String() string {
	if d == Deal {
		return "deal"
	}
	return "no deal"
}

// ShuffleFunc produces the case permutation for a new game.
type ShuffleFunc func(values []float64) []float64

// Option configures an Engine.
type Option func(*Engine)

// WithPersonality sets the initial banker personality.
func WithPersonality(p Personality) Option {
	return func(e *Engine) {
		e.personality = p
	}
}

// WithRand sets the random source used for shuffling and offer jitter.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithShuffle replaces the shuffle step, e.g. to install a fixed permutation.
func WithShuffle(fn ShuffleFunc) Option {
	return func(e *Engine) {
		e.shuffle = fn
	}
}

// Engine owns one game: its case pool, banker and round state.
// It is not safe for concurrent use; run one Engine per game.
type Engine struct {
	rng     *rand.Rand
	shuffle ShuffleFunc
	pool    *CasePool
	banker  *Banker

	personality  Personality
	round        int
	playerCase   int
	opened       []OpenedCase
	offers       []Offer
	offer        float64
	hasOffer     bool
	dealAccepted bool
}

// New creates an engine and deals the first game.
func New(opts ...Option) *Engine {
	e := &Engine{
		personality: Balanced,
		pool:        NewCasePool(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.shuffle == nil {
		e.shuffle = func(values []float64) []float64 {
			return Shuffle(e.rng, values)
		}
	}
	e.banker = NewBanker(e.personality, e.rng)
	e.Initialize()
	return e
}

// Initialize deals a fresh shuffled board and clears all round state.
// The configured personality is kept.
func (e *Engine) Initialize() {
	e.pool.Initialize(e.shuffle(PrizeValues()))
	e.banker.SetPersonality(e.personality)

	e.round = 1
	e.playerCase = NoCase
	e.opened = nil
	e.offers = nil
	e.offer = 0
	e.hasOffer = false
	e.dealAccepted = false
}

// Reset starts a new game and returns its first snapshot.
func (e *Engine) Reset() Snapshot {
	e.Initialize()
	return e.State()
}

// SelectPlayerCase claims index as the player's case.
// Fails if a case is already selected, the index is invalid or the game is over.
func (e *Engine) SelectPlayerCase(index int) bool {
	if e.playerCase != NoCase || e.dealAccepted || !validIndex(index) {
		return false
	}
	e.playerCase = index
	return true
}

// RevealCase opens a case other than the player's and returns its value.
func (e *Engine) RevealCase(index int) (float64, bool) {
	if e.dealAccepted || e.playerCase == NoCase {
		return 0, false
	}
	if !validIndex(index) || index == e.playerCase {
		return 0, false
	}
	value, ok := e.pool.Reveal(index)
	if !ok {
		return 0, false
	}
	e.opened = append(e.opened, OpenedCase{Index: index, Value: value})
	return value, true
}

// RequestOffer asks the banker for an offer on the remaining cases.
// No offer is made once two or fewer cases remain or after a deal.
func (e *Engine) RequestOffer() (float64, bool) {
	if e.dealAccepted {
		return 0, false
	}
	remaining := e.pool.RemainingValues()
	if len(remaining) <= 2 {
		return 0, false
	}

	e.banker.AdjustStrategy(remaining)
	amount := e.banker.GenerateOffer(remaining, sum(remaining))

	e.offer = amount
	e.hasOffer = true
	e.offers = append(e.offers, Offer{Amount: amount, Round: e.round})
	return amount, true
}

// SetBankerPersonality changes the banker. Locking it once play has started is
// the caller's job.
func (e *Engine) SetBankerPersonality(p Personality) {
	e.personality = p
	e.banker.SetPersonality(p)
}

// RevealPlayerCase opens the player's own case and ends the game.
func (e *Engine) RevealPlayerCase() (OpenedCase, bool) {
	if e.playerCase == NoCase {
		return OpenedCase{}, false
	}
	value, ok := e.pool.Reveal(e.playerCase)
	if !ok {
		return OpenedCase{}, false
	}
	opened := OpenedCase{Index: e.playerCase, Value: value}
	e.opened = append(e.opened, opened)
	e.dealAccepted = true
	return opened, true
}

// PlayerDecision applies the player's answer. Deal ends the game with the live
// offer standing; NoDeal withdraws the offer and starts the next round.
func (e *Engine) PlayerDecision(d Decision) {
	if d == Deal {
		e.dealAccepted = true
		return
	}
	e.offer = 0
	e.hasOffer = false
	e.round++
}

// RemainingCount returns the number of unopened cases, the player's included.
func (e *Engine) RemainingCount() int {
	return len(e.pool.RemainingValues())
}

// State returns a snapshot that shares no memory with the engine.
func (e *Engine) State() Snapshot {
	opened := make([]OpenedCase, len(e.opened))
	copy(opened, e.opened)
	offers := make([]Offer, len(e.offers))
	copy(offers, e.offers)

	return Snapshot{
		Round:        e.round,
		PlayerCase:   e.playerCase,
		Opened:       opened,
		Remaining:    e.pool.RemainingValues(),
		Offers:       offers,
		Offer:        e.offer,
		HasOffer:     e.hasOffer,
		DealAccepted: e.dealAccepted,
		Personality:  e.personality,
	}
}

// PlayerCaseValue rebuilds the board from opened cases plus the hidden values
// in positional order and returns what is inside the player's case.
// It has no side effects.
func (e *Engine) PlayerCaseValue() (float64, bool) {
	if e.playerCase == NoCase {
		return 0, false
	}

	board := make([]float64, e.pool.Len())
	known := make([]bool, e.pool.Len())
	for _, c := range e.opened {
		board[c.Index] = c.Value
		known[c.Index] = true
	}

	hidden := e.pool.RemainingValues()
	next := 0
	for i := range board {
		if known[i] {
			continue
		}
		if next >= len(hidden) {
			return 0, false
		}
		board[i] = hidden[next]
		next++
	}
	return board[e.playerCase], true
}

func validIndex(index int) bool {
	return index >= 0 && index < CaseCount
}
