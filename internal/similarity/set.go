package similarity

import (
	"sort"

	"github.com/standardbeagle/mpnkit/internal/types"
)

// Set routes a pair of classifications to the calculator for their base type.
type Set struct {
	calculators []*Calculator
	byBase      map[types.ComponentType]*Calculator
	generic     *Calculator
}

// Builtin returns the built-in calculators.
func Builtin() []*Calculator {
	return []*Calculator{
		OpAmp(), Sensor(), Memory(), Passive(), Connector(),
		Discrete(), Regulator(), Logic(), RFModule(),
	}
}

// NewSet builds a set from the built-in calculators. extra appends configured
// families to the calculator serving each base type; base types without a family
// table of their own get one.
func NewSet(extra map[types.ComponentType]Families) *Set {
	byBase := make(map[types.ComponentType]Families)
	for t, fs := range extra {
		if t.IsValid() {
			byBase[t.Base()] = append(byBase[t.Base()], fs...)
		}
	}

	s := &Set{
		byBase:  make(map[types.ComponentType]*Calculator),
		generic: Generic(),
	}
	for _, c := range Builtin() {
		for _, base := range c.bases {
			c = c.withFamilies(byBase[base])
		}
		s.add(c)
	}

	var orphans []types.ComponentType
	for base := range byBase {
		if _, ok := s.byBase[base]; !ok {
			orphans = append(orphans, base)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i] < orphans[j] })
	for _, base := range orphans {
		c := Generic()
		c.bases = []types.ComponentType{base}
		s.add(c.withFamilies(byBase[base]))
	}
	return s
}

func (s *Set) add(c *Calculator) {
	s.calculators = append(s.calculators, c)
	for _, b := range c.bases {
		s.byBase[b] = c
	}
}

// For returns the calculator for a base type, falling back to the generic one.
func (s *Set) For(base types.ComponentType) *Calculator {
	if c, ok := s.byBase[base.Base()]; ok {
		return c
	}
	return s.generic
}

// Calculators returns every calculator in the set, generic last.
func (s *Set) Calculators() []*Calculator {
	return append(append([]*Calculator(nil), s.calculators...), s.generic)
}

// Score compares two classifications with the calculator for a's base type. The
// category gate inside the calculator handles mismatched bases.
func (s *Set) Score(a, b types.Classification) Result {
	return s.For(a.Base()).Score(a, b)
}

// Members lists every family member prefix across all calculators.
func (s *Set) Members() []string {
	var out []string
	for _, c := range s.calculators {
		out = append(out, c.families.Members()...)
	}
	return out
}
