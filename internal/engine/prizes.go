// Package engine implements the Deal or No Deal game rules: the shuffled case
// pool, the banker's offer strategy and the round state machine.
//
// The engine is synchronous and has no notion of time, rendering or I/O.
// Front ends drive it through the Engine methods and read it back through
// immutable Snapshot values.
package engine

// CaseCount is the number of sealed cases in every game.
const CaseCount = 26

// prizeValues is the canonical board, lowest to highest.
var prizeValues = [CaseCount]float64{
	0.01, 1, 5, 10, 25, 50, 75, 100, 200, 300, 400, 500, 750, 1000,
	5000, 10000, 25000, 50000, 75000, 100000, 200000, 300000,
	400000, 500000, 750000, 1000000,
}

// PrizeValues returns a copy of the fixed prize value set in ascending order.
func PrizeValues() []float64 {
	out := make([]float64, CaseCount)
	copy(out, prizeValues[:])
	return out
}

// TotalPrizeValue returns the sum of every prize on the board.
func TotalPrizeValue() float64 {
	return sum(prizeValues[:])
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
