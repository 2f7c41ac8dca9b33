package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
)

var start = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) (*Store, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(start).MustWait(context.Background())

	store, err := Open(filepath.Join(t.TempDir(), "test.db"), WithClock(clock))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, clock
}

func result(gameID string, winnings float64, outcome string) Result {
	return Result{
		GameID:      gameID,
		Personality: "balanced",
		PlayerCase:  4,
		CaseValue:   500,
		Winnings:    winnings,
		Outcome:     outcome,
		Rounds:      2,
		BestOffer:   winnings,
		Risk:        "Cautious",
		Offers: []Offer{
			{Round: 1, Amount: winnings / 2},
			{Round: 2, Amount: winnings},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	// Reopening runs the migration again
	store.Close()
	again, err := Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	again.Close()
}

func TestStoreSaveAndLoadResult(t *testing.T) {
	store, _ := openTestStore(t)

	in := result("deal", 42000, "deal")
	id, err := store.SaveResult(in)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("id = %q, want a uuid", id)
	}

	got, err := store.ResultByID(id)
	if err != nil {
		t.Fatalf("ResultByID() failed: %v", err)
	}
	if got.ID != id || got.GameID != "deal" || got.Winnings != 42000 || got.Outcome != "deal" ||
		got.PlayerCase != 4 || got.CaseValue != 500 || got.Risk != "Cautious" || got.Rounds != 2 {
		t.Errorf("ResultByID() = %+v", got)
	}
	if got.OfferCount != 2 || len(got.Offers) != 2 {
		t.Fatalf("offers = %d/%v, want 2", got.OfferCount, got.Offers)
	}
	if got.Offers[0] != (Offer{Round: 1, Amount: 21000}) || got.Offers[1] != (Offer{Round: 2, Amount: 42000}) {
		t.Errorf("offers = %v, want in the order made", got.Offers)
	}
	if !got.CreatedAt.Equal(start) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, start)
	}
}

func TestStoreResultNotFound(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.ResultByID("missing")
	if !errors.Is(err, ErrResultNotFound) {
		t.Errorf("err = %v, want ErrResultNotFound", err)
	}

	offers, err := store.ResultOffers("missing")
	if err != nil || len(offers) != 0 {
		t.Errorf("ResultOffers(missing) = %v, %v", offers, err)
	}
}

func TestStoreTopResults(t *testing.T) {
	store, clock := openTestStore(t)
	ctx := context.Background()

	for _, w := range []float64{100, 50, 200} {
		if _, err := store.SaveResult(result("deal", w, "deal")); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
		clock.Advance(time.Second).MustWait(ctx)
	}
	if _, err := store.SaveResult(result("deal_generous", 500, "no_deal")); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	top, err := store.TopResults("deal", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(top))
	}
	for i, want := range []float64{200, 100, 50} {
		if top[i].Winnings != want {
			t.Errorf("top[%d].Winnings = %v, want %v", i, top[i].Winnings, want)
		}
		if top[i].Offers != nil {
			t.Errorf("top[%d] should not load offers", i)
		}
	}

	limited, err := store.TopResults("deal", 2)
	if err != nil || len(limited) != 2 {
		t.Errorf("TopResults(limit 2) = %d results, %v", len(limited), err)
	}

	generous, err := store.TopResults("deal_generous", 0)
	if err != nil || len(generous) != 1 || generous[0].Outcome != "no_deal" {
		t.Errorf("TopResults(deal_generous) = %+v, %v", generous, err)
	}
}

func TestStoreRecentResults(t *testing.T) {
	store, clock := openTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, game := range []string{"deal", "deal_volatile", "deal"} {
		id, err := store.SaveResult(result(game, 10, "deal"))
		if err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
		ids = append(ids, id)
		clock.Advance(time.Minute).MustWait(ctx)
	}

	recent, err := store.RecentResults(2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != ids[2] || recent[1].ID != ids[1] {
		t.Errorf("RecentResults(2) = %v, want newest first", recent)
	}
}

func TestStoreBestWinnings(t *testing.T) {
	store, _ := openTestStore(t)

	best, err := store.BestWinnings("deal")
	if err != nil || best != 0 {
		t.Errorf("BestWinnings() on empty store = %v, %v; want 0", best, err)
	}

	store.SaveResult(result("deal", 0.01, "no_deal"))
	store.SaveResult(result("deal", 75000, "deal"))
	store.SaveResult(result("deal_aggressive", 1000000, "no_deal"))

	best, err = store.BestWinnings("deal")
	if err != nil || best != 75000 {
		t.Errorf("BestWinnings() = %v, %v; want 75000", best, err)
	}
}

func TestStoreClearResults(t *testing.T) {
	store, _ := openTestStore(t)

	id, _ := store.SaveResult(result("deal", 100, "deal"))
	store.SaveResult(result("deal_balanced", 100, "deal"))

	if err := store.ClearResults("deal"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	if top, _ := store.TopResults("deal", 10); len(top) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(top))
	}
	if offers, _ := store.ResultOffers(id); len(offers) != 0 {
		t.Errorf("offers of cleared result survived: %v", offers)
	}
	if top, _ := store.TopResults("deal_balanced", 10); len(top) != 1 {
		t.Error("ClearResults removed another game's results")
	}
}

func TestStoreGameStats(t *testing.T) {
	store, clock := openTestStore(t)

	empty, err := store.GameStats("deal")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveResult(result("deal", 100, "deal"))
	clock.Advance(time.Hour).MustWait(context.Background())
	store.SaveResult(result("deal", 300, "no_deal"))
	store.SaveResult(result("deal_generous", 50, "deal"))

	stats, err := store.GameStats("deal")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Deals != 1 || stats.BestWinnings != 300 ||
		stats.AvgWinnings != 200 || stats.TotalWinnings != 400 {
		t.Errorf("stats = %+v", stats)
	}
	if !stats.LastPlayed.Equal(start.Add(time.Hour)) {
		t.Errorf("LastPlayed = %v, want %v", stats.LastPlayed, start.Add(time.Hour))
	}

	all, err := store.AllGamesStats()
	if err != nil {
		t.Fatalf("AllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["deal"].GamesCount != 2 || all["deal_generous"].Deals != 1 {
		t.Errorf("AllGamesStats() = %v", all)
	}
	if !all["deal"].LastPlayed.Equal(start.Add(time.Hour)) {
		t.Errorf("AllGamesStats LastPlayed = %v", all["deal"].LastPlayed)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.deal/results.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".deal", "results.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
