package deal

import "strconv"

// ShouldOffer reports whether the banker calls after a reveal.
// The next offer is due once opened reaches thresholds[offersMade]; when
// the thresholds run out the banker stops calling.
func ShouldOffer(opened, offersMade int, thresholds []int, hasPlayerCase bool) bool {
	if !hasPlayerCase || offersMade < 0 || offersMade >= len(thresholds) {
		return false
	}
	return opened >= thresholds[offersMade]
}

// Risk describes how the player finished.
type Risk string

const (
	RiskCautious   Risk = "Cautious"
	RiskBalanced   Risk = "Balanced"
	RiskCalculated Risk = "Calculated"
	RiskBold       Risk = "Bold"
)

// ClassifyRisk grades a deal by the number of cases still unopened when it
// was taken. Players who never deal are RiskBold.
func ClassifyRisk(remaining int) Risk {
	switch {
	case remaining > 10:
		return RiskCautious
	case remaining > 4:
		return RiskBalanced
	default:
		return RiskCalculated
	}
}

var ordinalWords = []string{
	"First", "Second", "Third", "Fourth", "Fifth",
	"Sixth", "Seventh", "Eighth", "Ninth", "Tenth",
}

// ordinal returns "First", "Second", ... for n starting at 1.
func ordinal(n int) string {
	if n >= 1 && n <= len(ordinalWords) {
		return ordinalWords[n-1]
	}
	return strconv.Itoa(n) + "th"
}
