package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Personality selects one of the banker's offer presets.
type Personality string

const (
	Balanced   Personality = "balanced"
	Generous   Personality = "generous"
	Aggressive Personality = "aggressive"
	Volatile   Personality = "volatile"
)

// ErrUnknownPersonality is returned when parsing a name that is not a known banker.
var ErrUnknownPersonality = errors.New("engine: unknown banker personality")

// Personalities returns every banker personality in display order.
func Personalities() []Personality {
	return []Personality{Balanced, Generous, Aggressive, Volatile}
}

// ParsePersonality converts user input into a Personality.
// Matching ignores case and surrounding whitespace.
func ParsePersonality(s string) (Personality, error) {
	p := Personality(strings.ToLower(strings.TrimSpace(s)))
	if p.Valid() {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPersonality, s)
}

// Valid reports whether p is one of the known personalities.
func (p Personality) Valid() bool {
	_, ok := presets[p]
	return ok
}

// Label returns the display name.
func (p Personality) Label() string {
	switch p {
	case Balanced:
		return "Balanced"
	case Generous:
		return "Generous"
	case Aggressive:
		return "Aggressive"
	case Volatile:
		return "Volatile"
	default:
		return "Unknown"
	}
}

// Description returns a one-line summary of how the banker behaves.
func (p Personality) Description() string {
	switch p {
	case Balanced:
		return "Steady, default offer pattern."
	case Generous:
		return "Higher, softer offers earlier."
	case Aggressive:
		return "Lowball early, reluctant to pay."
	case Volatile:
		return "Swingy offers with some randomness."
	default:
		return ""
	}
}

// Preset holds the offer knobs of one personality.
type Preset struct {
	BaseOffer float64 // Floor for every offer
	Early     float64 // Multiplier while more than 6 cases remain
	Mid       float64 // Multiplier at 4-6 remaining
	Late      float64 // Multiplier at 3 or fewer remaining
	Variance  float64 // Max relative jitter, 0 disables it
}

var presets = map[Personality]Preset{
	Balanced:   {BaseOffer: 100, Early: 0.50, Mid: 0.60, Late: 0.70, Variance: 0},
	Generous:   {BaseOffer: 250, Early: 0.65, Mid: 0.75, Late: 0.85, Variance: 0.03},
	Aggressive: {BaseOffer: 80, Early: 0.42, Mid: 0.50, Late: 0.60, Variance: 0},
	Volatile:   {BaseOffer: 120, Early: 0.55, Mid: 0.65, Late: 0.80, Variance: 0.08},
}

// PresetFor returns the preset of p. Unknown personalities get the balanced preset.
func PresetFor(p Personality) Preset {
	if preset, ok := presets[p]; ok {
		return preset
	}
	return presets[Balanced]
}

// Banker computes cash offers from the values still in play.
// It keeps no game state beyond its preset and active multiplier.
type Banker struct {
	preset     Preset
	multiplier float64
	rng        *rand.Rand
}

// NewBanker creates a banker with the given personality.
// rng supplies the jitter for personalities with non-zero variance.
func NewBanker(p Personality, rng *rand.Rand) *Banker {
	b := &Banker{rng: rng}
	b.SetPersonality(p)
	return b
}

// SetPersonality swaps the preset and resets the multiplier to its early value.
func (b *Banker) SetPersonality(p Personality) {
	b.preset = PresetFor(p)
	b.multiplier = b.preset.Early
}

// Preset returns the active preset.
func (b *Banker) Preset() Preset {
	return b.preset
}

// Multiplier returns the multiplier that the next offer will use.
func (b *Banker) Multiplier() float64 {
	return b.multiplier
}

// AdjustStrategy picks the multiplier tier for the number of remaining cases.
func (b *Banker) AdjustStrategy(remaining []float64) {
	switch n := len(remaining); {
	case n <= 3:
		b.multiplier = b.preset.Late
	case n <= 6:
		b.multiplier = b.preset.Mid
	default:
		b.multiplier = b.preset.Early
	}
}

// GenerateOffer returns round(average * multiplier * jitter), never below the
// preset's base offer.
func (b *Banker) GenerateOffer(remaining []float64, totalValue float64) float64 {
	if len(remaining) == 0 {
		return b.preset.BaseOffer
	}
	average := totalValue / float64(len(remaining))

	jitter := 1.0
	if b.preset.Variance > 0 && b.rng != nil {
		jitter += (b.rng.Float64()*2 - 1) * b.preset.Variance
	}

	offer := math.Round(average * b.multiplier * jitter)
	return math.Max(offer, b.preset.BaseOffer)
}
