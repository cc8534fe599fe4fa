// Package advisor decides whether one part can replace another. The decision is
// asymmetric: a 135 °C capacitor may replace a 105 °C one, not the reverse.
package advisor

import (
	"fmt"

	"github.com/standardbeagle/mpnkit/internal/similarity"
	"github.com/standardbeagle/mpnkit/internal/types"
)

// Rule kinds reported in violations.
const (
	RuleSimilarity = "similarity"
	RuleHard       = "hard"
	RuleOrdered    = "ordered"
)

// Violation is one reason a candidate was rejected.
type Violation struct {
	Rule      string `json:"rule"`
	Attribute string `json:"attribute,omitempty"`
	Candidate string `json:"candidate,omitempty"`
	Original  string `json:"original,omitempty"`
	Message   string `json:"message"`
}

func (v Violation) String() string { return v.Message }

// Verdict is the advisor's answer for one (candidate, original) pair.
type Verdict struct {
	Replaceable bool                `json:"replaceable"`
	Score       float64             `json:"score"`
	Band        similarity.Band     `json:"band"`
	Violations  []Violation         `json:"violations,omitempty"`
	Candidate   types.ComponentType `json:"candidate_type,omitempty"`
	Original    types.ComponentType `json:"original_type,omitempty"`
}

// Advisor applies the per-category rule tables on top of a similarity set.
type Advisor struct {
	sim       *similarity.Set
	threshold float64
}

// New creates an advisor. A nil set uses the built-in calculators.
func New(sim *similarity.Set) *Advisor {
	if sim == nil {
		sim = similarity.NewSet(nil)
	}
	return &Advisor{sim: sim, threshold: similarity.Medium}
}

// CanReplace reports whether candidate can stand in for original.
func (a *Advisor) CanReplace(candidate, original types.Classification) bool {
	return a.Advise(candidate, original).Replaceable
}

// Advise checks similarity, then every hard constraint, then every ordered
// attribute, collecting all violations rather than stopping at the first.
func (a *Advisor) Advise(candidate, original types.Classification) Verdict {
	r := a.sim.Score(candidate, original)
	v := Verdict{
		Score:     r.Score,
		Band:      r.Band,
		Candidate: candidate.Primary,
		Original:  original.Primary,
	}

	if r.Score < a.threshold {
		v.Violations = append(v.Violations, Violation{
			Rule:    RuleSimilarity,
			Message: fmt.Sprintf("similarity %.2f below %.2f: %s", r.Score, a.threshold, r.Reason),
		})
		// Constraint checks on parts from different categories say nothing useful
		if r.Score == similarity.None {
			return v
		}
	}

	for _, c := range ruleTables[original.Base()] {
		if msg, ok := check(c, candidate.Attributes, original.Attributes); !ok {
			rule := RuleOrdered
			if c.hard {
				rule = RuleHard
			}
			v.Violations = append(v.Violations, Violation{
				Rule:      rule,
				Attribute: c.attribute,
				Candidate: c.get(candidate.Attributes).String(),
				Original:  c.get(original.Attributes).String(),
				Message:   msg,
			})
		}
	}

	v.Replaceable = len(v.Violations) == 0
	return v
}

// check applies one constraint. Hard constraints known on only one side fail;
// ordered ones fail when the original states a value the candidate does not.
// Attributes unknown on both sides are skipped.
func check(c constraint, candidate, original types.Attributes) (string, bool) {
	cv, ov := c.get(candidate), c.get(original)

	if c.hard {
		switch {
		case !cv.known() && !ov.known():
			return "", true
		case !cv.known() || !ov.known():
			return fmt.Sprintf("%s known on one side only (%s vs %s)", c.attribute, cv, ov), false
		case !cv.equal(ov):
			return fmt.Sprintf("%s differs: %s vs %s", c.attribute, cv, ov), false
		}
		return "", true
	}

	if !ov.known() {
		return "", true
	}
	if !cv.known() {
		return fmt.Sprintf("%s unknown on candidate, original is %s", c.attribute, ov), false
	}
	if cv.equal(ov) {
		return "", true
	}
	worse := cv.num.Value < ov.num.Value
	if c.better == lowerIsBetter {
		worse = cv.num.Value > ov.num.Value
	}
	if worse {
		return fmt.Sprintf("%s %s is worse than %s", c.attribute, cv, ov), false
	}
	return "", true
}
