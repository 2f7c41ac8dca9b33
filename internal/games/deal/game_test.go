package deal

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-deal/internal/core"
	"github.com/vovakirdan/tui-deal/internal/engine"
	"github.com/vovakirdan/tui-deal/internal/registry"
)

// identity keeps the prize values in ascending order, so case i holds PrizeValues()[i].
func identity(values []float64) []float64 {
	return append([]float64(nil), values...)
}

func newTestGame(t *testing.T, g *Game) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetConfigPath("")

	g.shuffle = identity
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})
	return g
}

func press(g *Game, a core.Action) core.StepResult {
	in := core.NewInputFrame()
	in.Set(a)
	return g.Step(in)
}

// confirmAt moves the cursor to index and presses confirm.
func confirmAt(g *Game, index int) core.StepResult {
	g.cursor = index
	return press(g, core.ActionConfirm)
}

func hasEvent(res core.StepResult, kind core.EventKind) bool {
	for _, e := range res.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestVariantsRegistered(t *testing.T) {
	ids := []string{"deal", "deal_balanced", "deal_generous", "deal_aggressive", "deal_volatile"}
	for _, id := range ids {
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}

	if got := NewWithBanker(engine.Generous).Title(); got != "Deal or No Deal (Generous banker)" {
		t.Errorf("Title() = %q", got)
	}
}

func TestResetInitialState(t *testing.T) {
	g := newTestGame(t, NewWithBanker(engine.Aggressive))
	snap := g.Snapshot()

	if snap.Phase() != engine.PhaseAwaitingSelection {
		t.Errorf("phase = %s, want awaiting_selection", snap.Phase())
	}
	if snap.Personality != engine.Aggressive {
		t.Errorf("personality = %s, want aggressive", snap.Personality)
	}
	if g.Status() != msgPickCase {
		t.Errorf("status = %q, want %q", g.Status(), msgPickCase)
	}
	if st := g.State(); st.GameOver || st.Score != 0 {
		t.Errorf("State() = %+v, want fresh game", st)
	}
	if _, ok := g.Result(); ok {
		t.Error("Result() available before the game ended")
	}
}

func TestCursorMovement(t *testing.T) {
	g := newTestGame(t, New())

	tests := []struct {
		action core.Action
		want   int
	}{
		{core.ActionLeft, 0}, // clamped at the first case
		{core.ActionRight, 1},
		{core.ActionDown, 1 + GridCols},
		{core.ActionUp, 1},
		{core.ActionUp, 1},
	}
	for i, tt := range tests {
		press(g, tt.action)
		if g.Cursor() != tt.want {
			t.Errorf("step %d (%s): cursor = %d, want %d", i, tt.action, g.Cursor(), tt.want)
		}
	}

	g.cursor = engine.CaseCount - 1
	press(g, core.ActionRight)
	if g.Cursor() != engine.CaseCount-1 {
		t.Errorf("cursor moved past the last case: %d", g.Cursor())
	}
}

func TestBankerCycleUntilFirstPick(t *testing.T) {
	g := newTestGame(t, New())
	start := g.Snapshot().Personality

	res := press(g, core.ActionCycle)
	if !hasEvent(res, core.EventBankerChange) {
		t.Fatal("cycling the banker produced no event")
	}
	if g.Snapshot().Personality == start {
		t.Error("banker did not change")
	}

	seen := map[engine.Personality]bool{g.Snapshot().Personality: true}
	for range engine.Personalities() {
		press(g, core.ActionCycle)
		seen[g.Snapshot().Personality] = true
	}
	if len(seen) != len(engine.Personalities()) {
		t.Errorf("cycling visited %d personalities, want %d", len(seen), len(engine.Personalities()))
	}

	confirmAt(g, 3)
	locked := g.Snapshot().Personality
	res = press(g, core.ActionCycle)
	if hasEvent(res, core.EventBankerChange) || g.Snapshot().Personality != locked {
		t.Error("banker changed after the player picked a case")
	}
	if g.Status() != msgBankerLocked {
		t.Errorf("status = %q, want %q", g.Status(), msgBankerLocked)
	}
}

func TestFixedBankerIsLocked(t *testing.T) {
	g := newTestGame(t, NewWithBanker(engine.Volatile))
	press(g, core.ActionCycle)
	if g.Snapshot().Personality != engine.Volatile {
		t.Errorf("fixed banker changed to %s", g.Snapshot().Personality)
	}
}

func TestPickAndOpenCases(t *testing.T) {
	g := newTestGame(t, New())

	res := confirmAt(g, 25)
	if !hasEvent(res, core.EventCaseSelected) {
		t.Error("no case_selected event")
	}
	if g.Status() != "You picked case 26. Now open other cases." {
		t.Errorf("status = %q", g.Status())
	}

	res = confirmAt(g, 0)
	if !hasEvent(res, core.EventCaseOpened) || res.Events[0].Amount != 0.01 {
		t.Errorf("events = %+v, want case_opened with 0.01", res.Events)
	}
	if g.Status() != "Case 1 had $0.01." {
		t.Errorf("status = %q", g.Status())
	}

	for _, index := range []int{0, 25} {
		res = confirmAt(g, index)
		if len(res.Events) != 0 || g.Status() != msgInvalidCase {
			t.Errorf("confirm on case %d: events %+v, status %q", index+1, res.Events, g.Status())
		}
	}
}

func openUntilOffer(t *testing.T, g *Game, next *int) float64 {
	t.Helper()
	for *next < engine.CaseCount-1 {
		res := confirmAt(g, *next)
		*next++
		for _, e := range res.Events {
			if e.Kind == core.EventOffer {
				return e.Amount
			}
		}
		if g.State().GameOver {
			break
		}
	}
	return 0
}

func TestFirstOfferAfterSixCases(t *testing.T) {
	g := newTestGame(t, NewWithBanker(engine.Balanced))
	confirmAt(g, 25)

	for i := 0; i < 5; i++ {
		if res := confirmAt(g, i); hasEvent(res, core.EventOffer) {
			t.Fatalf("offer after %d cases", i+1)
		}
	}
	res := confirmAt(g, 5)
	if !hasEvent(res, core.EventOffer) {
		t.Fatal("no offer after six cases")
	}

	snap := g.Snapshot()
	if snap.Phase() != engine.PhaseOfferPending {
		t.Errorf("phase = %s, want offer_pending", snap.Phase())
	}
	if !strings.Contains(g.Status(), "Banker's First offer") {
		t.Errorf("status = %q", g.Status())
	}

	// Cases stay shut while the offer stands
	res = confirmAt(g, 6)
	if len(res.Events) != 0 || g.Snapshot().IsOpened(6) {
		t.Error("a case opened while an offer was pending")
	}
	if g.Status() != msgAwaitDecision {
		t.Errorf("status = %q, want %q", g.Status(), msgAwaitDecision)
	}
}

func TestNoDealStartsNextRound(t *testing.T) {
	g := newTestGame(t, New())
	confirmAt(g, 25)
	next := 0
	openUntilOffer(t, g, &next)

	res := press(g, core.ActionNoDeal)
	if !hasEvent(res, core.EventNoDeal) {
		t.Error("no no_deal event")
	}
	snap := g.Snapshot()
	if snap.HasOffer || snap.Round != 2 {
		t.Errorf("after no deal: HasOffer=%v Round=%d, want false 2", snap.HasOffer, snap.Round)
	}
	if g.Status() != msgNoDeal {
		t.Errorf("status = %q", g.Status())
	}

	// Deal and no deal are ignored without an offer
	if res := press(g, core.ActionDeal); len(res.Events) != 0 || g.State().GameOver {
		t.Error("deal accepted without an offer")
	}
}

func TestAcceptDeal(t *testing.T) {
	g := newTestGame(t, NewWithBanker(engine.Balanced))
	confirmAt(g, 25)
	next := 0
	offer := openUntilOffer(t, g, &next)
	if offer == 0 {
		t.Fatal("no offer made")
	}

	res := press(g, core.ActionDeal)
	if !hasEvent(res, core.EventDeal) {
		t.Error("no deal event")
	}
	if !res.State.GameOver || res.State.Score != int(math.Round(offer)) {
		t.Errorf("state = %+v, want game over with score %v", res.State, offer)
	}

	got, ok := g.Result()
	if !ok {
		t.Fatal("Result() not available after deal")
	}
	want := Result{
		GameID:      "deal_balanced",
		Personality: engine.Balanced,
		PlayerCase:  25,
		CaseValue:   1000000,
		Winnings:    offer,
		Outcome:     OutcomeDeal,
		Rounds:      1,
		BestOffer:   offer,
		Risk:        RiskCautious,
	}
	if got.GameID != want.GameID || got.Personality != want.Personality || got.PlayerCase != want.PlayerCase ||
		got.CaseValue != want.CaseValue || got.Winnings != want.Winnings || got.Outcome != want.Outcome ||
		got.Rounds != want.Rounds || got.BestOffer != want.BestOffer || got.Risk != want.Risk {
		t.Errorf("Result() = %+v, want %+v", got, want)
	}
	if len(got.Offers) != 1 {
		t.Errorf("offers = %v, want one", got.Offers)
	}
	if !strings.HasSuffix(g.Status(), "Your case had $1,000,000. Game over!") {
		t.Errorf("status = %q", g.Status())
	}

	// Finished games ignore input
	if res := confirmAt(g, 10); len(res.Events) != 0 {
		t.Errorf("input after game over produced %+v", res.Events)
	}
}

func TestPlayToTheEnd(t *testing.T) {
	g := newTestGame(t, NewWithBanker(engine.Aggressive))
	confirmAt(g, 13) // holds $1,000

	var final core.StepResult
	for i := 0; i < engine.CaseCount && !g.State().GameOver; i++ {
		if i == 13 {
			continue
		}
		final = confirmAt(g, i)
		if g.Snapshot().HasOffer {
			press(g, core.ActionNoDeal)
		}
	}

	if !hasEvent(final, core.EventFinalReveal) {
		t.Fatalf("last step events = %+v, want final_reveal", final.Events)
	}
	res, ok := g.Result()
	if !ok {
		t.Fatal("game did not finish")
	}
	if res.Outcome != OutcomeNoDeal || res.Risk != RiskBold {
		t.Errorf("outcome/risk = %s/%s, want no_deal/Bold", res.Outcome, res.Risk)
	}
	if res.Winnings != 1000 || res.CaseValue != 1000 {
		t.Errorf("winnings = %v, case = %v, want 1000", res.Winnings, res.CaseValue)
	}
	// Offers at 6, 11, 15, 18, 20, 21, 22 and 23 opened cases
	if len(res.Offers) != 8 || res.Rounds != 9 {
		t.Errorf("offers = %d rounds = %d, want 8 and 9", len(res.Offers), res.Rounds)
	}
	if g.State().Score != 1000 {
		t.Errorf("score = %d, want 1000", g.State().Score)
	}
	if g.Snapshot().RemainingCount() != 1 {
		t.Errorf("remaining = %d, want 1 after the final reveal", g.Snapshot().RemainingCount())
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t, New())
	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("game not paused")
	}
	if res := confirmAt(g, 4); len(res.Events) != 0 {
		t.Error("input processed while paused")
	}
	press(g, core.ActionPause)
	if res := confirmAt(g, 4); !hasEvent(res, core.EventCaseSelected) {
		t.Error("input ignored after unpausing")
	}
}

func TestResizeKeepsGame(t *testing.T) {
	g := newTestGame(t, New())
	confirmAt(g, 7)

	g.Resize(40, 10)
	if !g.State().Paused {
		t.Error("small window should pause the game")
	}
	g.Resize(100, 30)
	if g.Snapshot().PlayerCase != 7 {
		t.Error("resize lost the player's case")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, NewWithBanker(engine.Generous))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"DEAL OR NO DEAL", "Generous", "$1,000,000", "$0.01", "[26]", msgPickCase} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	confirmAt(g, 25)
	confirmAt(g, 24)
	g.Render(screen)
	out = screen.String()
	if !strings.Contains(out, "*26*") || !strings.Contains(out, "$750K") {
		t.Errorf("render does not mark the player case and opened case:\n%s", out)
	}
	if screen.GetCell(boardX+2+13, boardY+1+11).Color != core.ColorGray {
		t.Error("eliminated $750,000 is not dimmed on the money board")
	}

	g.Resize(40, 10)
	small := core.NewScreen(40, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("small window message missing")
	}
}
