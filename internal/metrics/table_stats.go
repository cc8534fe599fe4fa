package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/standardbeagle/mpnkit/internal/patterns"
	"github.com/standardbeagle/mpnkit/internal/types"
)

// TableStats summarises the static lookup tables an engine was built from.
type TableStats struct {
	TotalRules int
	TotalTypes int
	// RulesByBase counts rules per base type, vendor refinements included
	RulesByBase map[types.ComponentType]int

	Handlers    []string
	Calculators int
	Families    int
	// FamilyMembers is the number of member prefixes across all families
	FamilyMembers int
}

// NewTableStats counts the rules in reg. Handler and family figures are supplied
// by the caller, which owns those tables.
func NewTableStats(reg *patterns.Registry, handlers []string, calculators, families, members int) *TableStats {
	ts := &TableStats{
		RulesByBase:   make(map[types.ComponentType]int),
		Handlers:      append([]string(nil), handlers...),
		Calculators:   calculators,
		Families:      families,
		FamilyMembers: members,
	}
	if reg == nil {
		return ts
	}
	ts.TotalRules = reg.Len()
	for _, t := range reg.Types() {
		ts.TotalTypes++
		ts.RulesByBase[t.Base()] += len(reg.Rules(t))
	}
	return ts
}

type baseCount struct {
	base  types.ComponentType
	rules int
}

// sortedBases orders base types by rule count, most first.
func (ts *TableStats) sortedBases() []baseCount {
	out := make([]baseCount, 0, len(ts.RulesByBase))
	for b, n := range ts.RulesByBase {
		out = append(out, baseCount{b, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].rules != out[j].rules {
			return out[i].rules > out[j].rules
		}
		return out[i].base < out[j].base
	})
	return out
}

// FormatAsJSON returns stats formatted as a JSON-serializable map
func (ts *TableStats) FormatAsJSON() map[string]interface{} {
	bases := make([]map[string]interface{}, 0, len(ts.RulesByBase))
	for _, bc := range ts.sortedBases() {
		bases = append(bases, map[string]interface{}{
			"base_type": string(bc.base),
			"rules":     bc.rules,
		})
	}

	return map[string]interface{}{
		"patterns": map[string]interface{}{
			"total_rules": ts.TotalRules,
			"total_types": ts.TotalTypes,
		},
		"base_types": bases,
		"handlers":   ts.Handlers,
		"similarity": map[string]interface{}{
			"calculators":    ts.Calculators,
			"families":       ts.Families,
			"family_members": ts.FamilyMembers,
		},
	}
}

// FormatAsText returns stats formatted as human-readable text
func (ts *TableStats) FormatAsText() string {
	var sb strings.Builder

	sb.WriteString("PATTERNS\n")
	sb.WriteString("────────────────────────────────────────\n")
	sb.WriteString(fmt.Sprintf("  Rules:              %d\n", ts.TotalRules))
	sb.WriteString(fmt.Sprintf("  Component types:    %d\n", ts.TotalTypes))

	sb.WriteString("\nRULES BY BASE TYPE\n")
	sb.WriteString("────────────────────────────────────────\n")
	for _, bc := range ts.sortedBases() {
		sb.WriteString(fmt.Sprintf("  %-20s %4d\n", string(bc.base)+":", bc.rules))
	}

	sb.WriteString("\nHANDLERS\n")
	sb.WriteString("────────────────────────────────────────\n")
	sb.WriteString(fmt.Sprintf("  %d: %s\n", len(ts.Handlers), strings.Join(ts.Handlers, ", ")))

	sb.WriteString("\nSIMILARITY\n")
	sb.WriteString("────────────────────────────────────────\n")
	sb.WriteString(fmt.Sprintf("  Calculators:        %d\n", ts.Calculators))
	sb.WriteString(fmt.Sprintf("  Families:           %d\n", ts.Families))
	sb.WriteString(fmt.Sprintf("  Family members:     %d\n", ts.FamilyMembers))

	return sb.String()
}
