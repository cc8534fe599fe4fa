// Package patterns is the central index from component type to the ordered list of
// regular expressions that recognize it.
//
// The registry performs no tie-breaking: when several types match an MPN every one
// of them is reported in rule insertion order, and handlers decide precedence.
package patterns

import (
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/mpn"
	"github.com/standardbeagle/mpnkit/internal/types"
)

// Rule is an immutable (type, matcher) pair.
type Rule struct {
	Type    types.ComponentType
	Pattern string
	// Prefix is the literal text every match must start with, "" if the pattern is
	// unanchored or starts with a class.
	Prefix string

	re *regexp.Regexp
}

// MatchString reports whether the rule accepts an already-normalized MPN.
func (r Rule) MatchString(s string) bool {
	return r.re != nil && r.re.MatchString(s)
}

// Registry holds rules in insertion order. Registration is single-writer; once Freeze
// is called the registry is read-only and safe for concurrent readers without locks.
type Registry struct {
	mu       sync.Mutex
	frozen   atomic.Bool
	rules    []Rule
	byType   map[types.ComponentType][]int
	order    []types.ComponentType
	compiled map[string]*regexp.Regexp // shared across types registering the same pattern
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byType:   make(map[types.ComponentType][]int),
		compiled: make(map[string]*regexp.Regexp),
	}
}

// Register compiles pattern and appends it to t's rules. Duplicate and overlapping
// patterns are permitted.
func (r *Registry) Register(t types.ComponentType, pattern string) error {
	if r.frozen.Load() {
		return errors.NewPatternError(string(t), pattern, errors.ErrFrozen)
	}
	if !t.IsValid() {
		return errors.NewPatternError(string(t), pattern, errors.ErrUnknownType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	re, ok := r.compiled[pattern]
	if !ok {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return errors.NewPatternError(string(t), pattern, err)
		}
		r.compiled[pattern] = re
	}

	if _, seen := r.byType[t]; !seen {
		r.order = append(r.order, t)
	}
	r.byType[t] = append(r.byType[t], len(r.rules))
	r.rules = append(r.rules, Rule{
		Type:    t,
		Pattern: pattern,
		Prefix:  LiteralPrefix(pattern),
		re:      re,
	})
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry) MustRegister(t types.ComponentType, patterns ...string) {
	for _, p := range patterns {
		if err := r.Register(t, p); err != nil {
			panic(err)
		}
	}
}

// Freeze makes the registry read-only. It is idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// Match returns every type with a rule accepting the MPN, in rule insertion order,
// without duplicates. An empty result means the MPN is unrecognized.
func (r *Registry) Match(s string) []types.ComponentType {
	s = mpn.Normalize(s)
	if s == "" {
		return nil
	}

	var out []types.ComponentType
	seen := make(map[types.ComponentType]bool)
	for _, rule := range r.rules {
		if seen[rule.Type] {
			continue
		}
		if rule.MatchString(s) {
			seen[rule.Type] = true
			out = append(out, rule.Type)
		}
	}
	return out
}

// MatchRules returns every rule accepting the MPN, in insertion order.
func (r *Registry) MatchRules(s string) []Rule {
	s = mpn.Normalize(s)
	if s == "" {
		return nil
	}

	var out []Rule
	for _, rule := range r.rules {
		if rule.MatchString(s) {
			out = append(out, rule)
		}
	}
	return out
}

// Matches reports whether any rule registered for t accepts the MPN.
func (r *Registry) Matches(s string, t types.ComponentType) bool {
	s = mpn.Normalize(s)
	if s == "" {
		return false
	}
	for _, i := range r.byType[t] {
		if r.rules[i].MatchString(s) {
			return true
		}
	}
	return false
}

// Rules returns a copy of the rules registered for t.
func (r *Registry) Rules(t types.ComponentType) []Rule {
	idx := r.byType[t]
	out := make([]Rule, len(idx))
	for i, j := range idx {
		out[i] = r.rules[j]
	}
	return out
}

// Types returns the registered types in order of their first rule.
func (r *Registry) Types() []types.ComponentType {
	return append([]types.ComponentType(nil), r.order...)
}

// Len returns the number of rules.
func (r *Registry) Len() int {
	return len(r.rules)
}
