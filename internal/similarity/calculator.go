package similarity

import (
	"github.com/standardbeagle/mpnkit/internal/types"
)

// hook inspects two classifications that already passed the category gate. A false
// second result means the hook has no opinion and scoring continues.
type hook func(a, b types.Attributes) (float64, string, bool)

// Calculator scores one group of base types.
type Calculator struct {
	name     string
	bases    []types.ComponentType
	families Families

	// sameSeries may lower the Exact score of two parts with the same series, e.g.
	// memory speed grades the series does not carry.
	sameSeries hook
	// veto runs before the family check; kind mismatches end scoring there.
	veto hook
	// ceiling caps a family match, e.g. op-amps with different channel counts.
	ceiling    hook
	structural hook
}

func (c *Calculator) Name() string { return c.name }

// Bases returns the base types the calculator scores.
func (c *Calculator) Bases() []types.ComponentType {
	return append([]types.ComponentType(nil), c.bases...)
}

// Families returns the calculator's equivalence families, configured ones included.
func (c *Calculator) Families() Families {
	return append(Families(nil), c.families...)
}

// Applies reports whether base is one of the calculator's bases. A calculator with
// no bases accepts everything.
func (c *Calculator) Applies(base types.ComponentType) bool {
	if len(c.bases) == 0 {
		return base.IsValid()
	}
	for _, b := range c.bases {
		if b == base {
			return true
		}
	}
	return false
}

// Score runs the common scoring steps. The category gate is always first: parts of
// different base types score None however similar their text is.
func (c *Calculator) Score(a, b types.Classification) Result {
	if !a.Recognized() || !b.Recognized() {
		return result(c.name, None, "unrecognized part")
	}
	if a.Base() != b.Base() || !c.Applies(a.Base()) {
		return result(c.name, None, "category mismatch")
	}

	sa, sb := a.Series(), b.Series()
	if sa == sb {
		if c.sameSeries != nil {
			if s, why, ok := c.sameSeries(a.Attributes, b.Attributes); ok {
				return result(c.name, s, why)
			}
		}
		return result(c.name, Exact, "same series "+sa)
	}

	if c.veto != nil {
		if s, why, ok := c.veto(a.Attributes, b.Attributes); ok {
			return result(c.name, s, why)
		}
	}

	if f, ok := c.families.Shared(sa, sb); ok {
		if c.ceiling != nil {
			if s, why, ok := c.ceiling(a.Attributes, b.Attributes); ok && s < High {
				return result(c.name, s, why)
			}
		}
		return result(c.name, High, "equivalence family "+f.Name)
	}

	if c.structural != nil {
		if s, why, ok := c.structural(a.Attributes, b.Attributes); ok {
			return result(c.name, s, why)
		}
	}
	return result(c.name, Low, "no shared family")
}

// withFamilies returns a copy of c with extra families appended after the built-in
// table.
func (c *Calculator) withFamilies(extra Families) *Calculator {
	if len(extra) == 0 {
		return c
	}
	cp := *c
	cp.families = append(c.Families(), extra...)
	return &cp
}
