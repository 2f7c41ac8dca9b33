// Package deal implements the playable Deal or No Deal session on top of the
// engine: offer cadence, cursor handling, banker choice, the result summary
// and rendering.
package deal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-deal/internal/config"
	"github.com/vovakirdan/tui-deal/internal/core"
	"github.com/vovakirdan/tui-deal/internal/engine"
	"github.com/vovakirdan/tui-deal/internal/registry"
)

// GridCols is the number of cases per row in the case grid.
const GridCols = 7

// Status line messages.
const (
	msgPickCase      = "Pick your case to start."
	msgInvalidCase   = "Case already opened or invalid."
	msgNoDeal        = "No deal. Keep opening cases."
	msgAwaitDecision = "The banker is waiting. D for deal, N for no deal."
	msgBankerLocked  = "The banker is locked in once play starts."
)

// Game is one Deal or No Deal session.
type Game struct {
	id    string
	title string
	fixed engine.Personality // empty for the random-banker variant

	eng        *engine.Engine
	rng        *rand.Rand
	shuffle    engine.ShuffleFunc // nil uses the engine's shuffle
	thresholds []int
	cursor     int
	status     string
	locked     bool // banker can no longer change

	finished  bool
	outcome   Outcome
	winnings  float64
	caseValue float64
	risk      Risk

	screenW  int
	screenH  int
	tooSmall bool
	paused   bool
}

var configPath string

// SetConfigPath sets a custom config file path, used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// New creates the random-banker variant. The banker can be changed with Tab
// until the first case is picked.
func New() *Game {
	return &Game{
		id:    "deal",
		title: "Deal or No Deal",
	}
}

// NewWithBanker creates a variant with a fixed banker personality.
func NewWithBanker(p engine.Personality) *Game {
	return &Game{
		id:    "deal_" + string(p),
		title: fmt.Sprintf("Deal or No Deal (%s banker)", p.Label()),
		fixed: p,
	}
}

func init() {
	registry.Register("deal", func() registry.Game {
		return New()
	})
	for _, p := range engine.Personalities() {
		registry.Register("deal_"+string(p), func() registry.Game {
			return NewWithBanker(p)
		})
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset deals a new board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	settings, err := config.Load(configPath)
	if err != nil {
		settings = config.Default()
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.thresholds = settings.Offers.Thresholds
	personality := g.pickPersonality(settings.Banker.Personality)

	opts := []engine.Option{engine.WithRand(g.rng), engine.WithPersonality(personality)}
	if g.shuffle != nil {
		opts = append(opts, engine.WithShuffle(g.shuffle))
	}
	g.eng = engine.New(opts...)

	g.cursor = 0
	g.status = msgPickCase
	g.locked = g.fixed != ""
	g.finished = false
	g.outcome = ""
	g.winnings = 0
	g.caseValue = 0
	g.risk = ""
	g.paused = false

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// pickPersonality resolves the banker for a new game.
func (g *Game) pickPersonality(configured string) engine.Personality {
	if g.fixed != "" {
		return g.fixed
	}
	if p, err := engine.ParsePersonality(configured); err == nil {
		return p
	}
	all := engine.Personalities()
	return all[g.rng.Intn(len(all))]
}

// Resize updates the screen dimensions without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minWidth || h < minHeight
}

// Step applies one tick of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.finished {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(-GridCols)
	case in.Has(core.ActionDown):
		g.moveCursor(GridCols)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1)
	case in.Has(core.ActionRight):
		g.moveCursor(1)
	}

	snap := g.eng.State()
	switch {
	case in.Has(core.ActionCycle):
		events = g.cycleBanker(events)
	case snap.HasOffer && in.Has(core.ActionDeal):
		events = g.acceptDeal(snap, events)
	case snap.HasOffer && in.Has(core.ActionNoDeal):
		events = g.rejectDeal(snap, events)
	case snap.HasOffer && in.Has(core.ActionConfirm):
		g.status = msgAwaitDecision
	case in.Has(core.ActionConfirm):
		events = g.confirm(snap, events)
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) moveCursor(delta int) {
	next := g.cursor + delta
	if next < 0 || next >= engine.CaseCount {
		return
	}
	g.cursor = next
}

// cycleBanker switches to the next personality while the banker is unlocked.
func (g *Game) cycleBanker(events []core.Event) []core.Event {
	if g.locked {
		g.status = msgBankerLocked
		return events
	}
	all := engine.Personalities()
	current := g.eng.State().Personality
	next := all[0]
	for i, p := range all {
		if p == current {
			next = all[(i+1)%len(all)]
			break
		}
	}
	g.eng.SetBankerPersonality(next)
	g.status = fmt.Sprintf("%s banker: %s", next.Label(), next.Description())
	return append(events, core.Event{Kind: core.EventBankerChange, Case: engine.NoCase, Note: string(next)})
}

// confirm picks the player's case or opens the case under the cursor.
func (g *Game) confirm(snap engine.Snapshot, events []core.Event) []core.Event {
	if !snap.HasPlayerCase() {
		if !g.eng.SelectPlayerCase(g.cursor) {
			g.status = msgInvalidCase
			return events
		}
		g.locked = true
		g.status = fmt.Sprintf("You picked case %d. Now open other cases.", g.cursor+1)
		return append(events, core.Event{Kind: core.EventCaseSelected, Case: g.cursor})
	}

	value, ok := g.eng.RevealCase(g.cursor)
	if !ok {
		g.status = msgInvalidCase
		return events
	}
	g.status = fmt.Sprintf("Case %d had %s.", g.cursor+1, Money(value))
	events = append(events, core.Event{Kind: core.EventCaseOpened, Case: g.cursor, Amount: value})

	after := g.eng.State()
	if after.RemainingCount() <= 2 {
		return g.finalReveal(events)
	}

	if ShouldOffer(len(after.Opened), len(after.Offers), g.thresholds, after.HasPlayerCase()) {
		if amount, ok := g.eng.RequestOffer(); ok {
			g.status = fmt.Sprintf("%s Banker's %s offer: %s. Deal or no deal?",
				g.status, ordinal(len(after.Offers)+1), Money(amount))
			events = append(events, core.Event{Kind: core.EventOffer, Case: engine.NoCase, Amount: amount})
		}
	}
	return events
}

// finalReveal opens the player's case once only two cases remain.
func (g *Game) finalReveal(events []core.Event) []core.Event {
	opened, ok := g.eng.RevealPlayerCase()
	if !ok {
		return events
	}
	g.finished = true
	g.outcome = OutcomeNoDeal
	g.winnings = opened.Value
	g.caseValue = opened.Value
	g.risk = RiskBold
	g.status = fmt.Sprintf("Your case had %s. Game over.", Money(opened.Value))
	return append(events, core.Event{Kind: core.EventFinalReveal, Case: opened.Index, Amount: opened.Value})
}

func (g *Game) acceptDeal(snap engine.Snapshot, events []core.Event) []core.Event {
	g.eng.PlayerDecision(engine.Deal)
	g.finished = true
	g.outcome = OutcomeDeal
	g.winnings = snap.Offer
	g.risk = ClassifyRisk(snap.RemainingCount())

	g.status = fmt.Sprintf("You accepted %s.", Money(snap.Offer))
	if value, ok := g.eng.PlayerCaseValue(); ok {
		g.caseValue = value
		g.status += fmt.Sprintf(" Your case had %s.", Money(value))
	}
	g.status += " Game over!"
	return append(events, core.Event{Kind: core.EventDeal, Case: snap.PlayerCase, Amount: snap.Offer})
}

func (g *Game) rejectDeal(snap engine.Snapshot, events []core.Event) []core.Event {
	g.eng.PlayerDecision(engine.NoDeal)
	g.status = msgNoDeal
	return append(events, core.Event{Kind: core.EventNoDeal, Case: engine.NoCase, Amount: snap.Offer})
}

// State returns the platform-level state. Score is the winnings in whole dollars.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(math.Round(g.winnings)),
		GameOver: g.finished,
		Paused:   g.paused || g.tooSmall,
	}
}

// Snapshot returns the engine snapshot of the current game.
func (g *Game) Snapshot() engine.Snapshot {
	return g.eng.State()
}

// Status returns the current status line.
func (g *Game) Status() string {
	return g.status
}

// Cursor returns the case index under the cursor.
func (g *Game) Cursor() int {
	return g.cursor
}

// Thresholds returns the offer thresholds in use.
func (g *Game) Thresholds() []int {
	out := make([]int, len(g.thresholds))
	copy(out, g.thresholds)
	return out
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Enter: Pick/Open | D: Deal | N: No Deal | Tab: Banker | R: Restart | Q: Quit"
}
