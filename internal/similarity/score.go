// Package similarity scores how interchangeable two classified parts are. Every
// calculator runs the same steps: the category gate, the exact-series check,
// equivalence families, a category-specific structural check and a Low fallback.
package similarity

// Score bands.
const (
	Exact  = 1.0
	High   = 0.9
	Medium = 0.7
	Low    = 0.3
	None   = 0.0
)

// Band names a score range.
type Band string

const (
	BandExact  Band = "exact"
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
	BandNone   Band = "none"
)

// BandOf maps a score back to its band. Scores between bands round down.
func BandOf(score float64) Band {
	switch {
	case score >= Exact:
		return BandExact
	case score >= High:
		return BandHigh
	case score >= Medium:
		return BandMedium
	case score > None:
		return BandLow
	default:
		return BandNone
	}
}

// Result is a score with the rule that produced it.
type Result struct {
	Score      float64 `json:"score"`
	Band       Band    `json:"band"`
	Calculator string  `json:"calculator,omitempty"`
	Reason     string  `json:"reason"`
}

func result(calc string, score float64, reason string) Result {
	return Result{Score: score, Band: BandOf(score), Calculator: calc, Reason: reason}
}
