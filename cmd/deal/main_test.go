package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-deal/internal/config"
	"github.com/vovakirdan/tui-deal/internal/storage"
)

// isolate points config lookups and global flags at a clean state.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	flagFPS, flagSeed, flagDBPath, flagConfig, flagLogLevel, flagLogFile = 0, 0, "", "", "", ""
	flagScoresLimit, flagScoresClear = 10, false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVariantFor(t *testing.T) {
	settings := config.Default()

	tests := []struct {
		name    string
		gameID  string
		banker  string
		want    string
		wantErr bool
	}{
		{"no flag", "deal_volatile", "", "deal_volatile", false},
		{"fixed banker", "deal", "generous", "deal_generous", false},
		{"mixed case", "deal", " Aggressive ", "deal_aggressive", false},
		{"random", "deal", "random", "deal", false},
		{"unknown banker", "deal", "stingy", "", true},
		{"fixed variant plus flag", "deal_balanced", "generous", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := variantFor(tt.gameID, settings, tt.banker)
			if tt.wantErr {
				if err == nil {
					t.Errorf("variantFor(%q, %q) = %q, want error", tt.gameID, tt.banker, got)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("variantFor(%q, %q) = (%q, %v), want %q", tt.gameID, tt.banker, got, err, tt.want)
			}
		})
	}
}

func TestLoadSettingsFlagOverrides(t *testing.T) {
	isolate(t)
	flagFPS = 60
	flagDBPath = "/tmp/other.db"
	flagLogLevel = "DEBUG"

	settings, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if settings.TickRate != 60 || settings.Storage.Path != "/tmp/other.db" || settings.Log.Level != "debug" {
		t.Errorf("settings = %+v, want flag overrides applied", settings)
	}

	flagLogLevel = "loud"
	if _, err := loadSettings(); err == nil {
		t.Error("loadSettings accepted an unknown log level")
	}
}

func TestListCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"deal_generous", "deal_volatile", "Random banker"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestScoresCommand(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "results.db")

	out, err := execute(t, "scores", "--db", dbPath)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if !strings.Contains(out, "No results recorded yet.") {
		t.Errorf("empty summary = %q", out)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	_, err = store.SaveResult(storage.Result{
		GameID:      "deal_generous",
		Personality: "generous",
		PlayerCase:  3,
		CaseValue:   500000,
		Winnings:    123456,
		Outcome:     "deal",
		Rounds:      4,
		BestOffer:   123456,
		Risk:        "Calculated",
		Offers:      []storage.Offer{{Round: 1, Amount: 40000}, {Round: 4, Amount: 123456}},
	})
	store.Close()
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	out, err = execute(t, "scores", "--db", dbPath)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if !strings.Contains(out, "deal_generous") || !strings.Contains(out, "$123,456") {
		t.Errorf("summary missing saved result:\n%s", out)
	}

	out, err = execute(t, "scores", "deal_generous", "--db", dbPath)
	if err != nil {
		t.Fatalf("scores deal_generous: %v", err)
	}
	if !strings.Contains(out, "Calculated") || !strings.Contains(out, "$500,000") {
		t.Errorf("top results missing saved result:\n%s", out)
	}

	if _, err := execute(t, "scores", "nope", "--db", dbPath); err == nil {
		t.Error("scores accepted an unknown variant")
	}
}

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer
	printResult(&out, storage.Result{
		ID:          "abc",
		GameID:      "deal",
		Personality: "volatile",
		PlayerCase:  0,
		CaseValue:   0.01,
		Winnings:    0.01,
		Outcome:     "no_deal",
		Rounds:      10,
		BestOffer:   250000,
		Offers:      []storage.Offer{{Round: 1, Amount: 250000}},
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	got := out.String()
	for _, want := range []string{"Game abc (deal)", "#1 holding $0.01", "no deal, won $0.01", "Best offer: $250,000"} {
		if !strings.Contains(got, want) {
			t.Errorf("printResult missing %q:\n%s", want, got)
		}
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"127.0.0.1:2222": "2222",
		"[::1]:22":       "22",
		"bogus":          "bogus",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, want %q", addr, got, want)
		}
	}
}
