package engine

import (
	"math/rand"
	"sort"
)

// CasePool holds one game's permutation of prize values and tracks which
// positions have been opened. It knows nothing about players or offers.
type CasePool struct {
	values   []float64
	revealed map[int]bool
}

// NewCasePool creates an empty pool. Initialize must be called before Reveal.
func NewCasePool() *CasePool {
	return &CasePool{revealed: make(map[int]bool)}
}

// Initialize installs a copy of values and forgets every revealed position.
func (p *CasePool) Initialize(values []float64) {
	p.values = make([]float64, len(values))
	copy(p.values, values)
	p.revealed = make(map[int]bool, len(values))
}

// Len returns the number of cases in the pool.
func (p *CasePool) Len() int {
	return len(p.values)
}

// Reveal opens the case at position and returns its value.
// Returns false if position is out of range or was already opened.
func (p *CasePool) Reveal(position int) (float64, bool) {
	if position < 0 || position >= len(p.values) || p.revealed[position] {
		return 0, false
	}
	p.revealed[position] = true
	return p.values[position], true
}

// IsRevealed reports whether position has been opened.
func (p *CasePool) IsRevealed(position int) bool {
	return p.revealed[position]
}

// RemainingValues returns the unopened values in positional order.
func (p *CasePool) RemainingValues() []float64 {
	out := make([]float64, 0, len(p.values)-len(p.revealed))
	for i, v := range p.values {
		if !p.revealed[i] {
			out = append(out, v)
		}
	}
	return out
}

// RevealedPositions returns the opened positions in ascending order.
func (p *CasePool) RevealedPositions() []int {
	out := make([]int, 0, len(p.revealed))
	for pos := range p.revealed {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}

// Shuffle returns a uniformly random permutation of values.
// The input slice is left untouched.
func Shuffle(rng *rand.Rand, values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	// rand.Shuffle is an unbiased Fisher-Yates.
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
