package handlers

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/mpn"
	"github.com/standardbeagle/mpnkit/internal/patterns"
	"github.com/standardbeagle/mpnkit/internal/types"
)

// Policy decides which handler wins when several claim an MPN.
type Policy int

const (
	// PolicyRegistration picks the first claiming handler in registration order.
	PolicyRegistration Policy = iota
	// PolicySpecificity prefers the handler whose matching rule has the longest
	// literal prefix; ties fall back to registration order.
	PolicySpecificity
)

func (p Policy) String() string {
	if p == PolicySpecificity {
		return "specificity"
	}
	return "registration"
}

// ParsePolicy reads a policy name from configuration.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "registration", "order":
		return PolicyRegistration, nil
	case "specificity":
		return PolicySpecificity, nil
	}
	return PolicyRegistration, errors.NewConfigError("engine.ambiguity", s, errors.New("expected registration or specificity"))
}

// Builtin returns the manufacturer handlers in dispatch order.
func Builtin() []Handler {
	return []Handler{
		NewAOS(),
		NewInfineon(),
		NewOnsemi(),
		NewTI(),
		NewWinbond(),
		NewMicrochip(),
		NewBosch(),
		NewSensirion(),
		NewADI(),
		NewNichicon(),
		NewMurata(),
		NewYageo(),
		NewMolex(),
		NewJST(),
		NewEspressif(),
		NewJEDEC(),
	}
}

// Set is an ordered, immutable handler table.
type Set struct {
	handlers []Handler
	policy   Policy
	logger   *zap.Logger
}

// SetOption configures a Set.
type SetOption func(*Set)

// WithPolicy selects the ambiguity policy.
func WithPolicy(p Policy) SetOption {
	return func(s *Set) { s.policy = p }
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *zap.Logger) SetOption {
	return func(s *Set) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSet builds a dispatcher over handlers, which are tried in the order given.
func NewSet(handlers []Handler, opts ...SetOption) *Set {
	s := &Set{
		handlers: append([]Handler(nil), handlers...),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handlers returns the handlers in dispatch order.
func (s *Set) Handlers() []Handler {
	return append([]Handler(nil), s.handlers...)
}

// Policy returns the ambiguity policy.
func (s *Set) Policy() Policy { return s.policy }

// Register adds every handler's patterns to reg, in dispatch order.
func (s *Set) Register(reg *patterns.Registry) error {
	var errs []error
	for _, h := range s.handlers {
		if err := h.Register(reg); err != nil {
			errs = append(errs, errors.Wrapf(err, "register %s", h.Name()))
		}
	}
	return errors.NewMultiError(errs).ErrorOrNil()
}

// Resolution is the outcome of dispatch: the winning handler and the type it claimed.
type Resolution struct {
	Handler Handler
	Type    types.ComponentType
}

// Resolve finds the handler that claims m among reg's candidate types.
func (s *Set) Resolve(m string, reg *patterns.Registry) (Resolution, bool) {
	m = mpn.Normalize(m)
	if m == "" {
		return Resolution{}, false
	}
	return s.resolve(m, reg.Match(m), reg)
}

func (s *Set) resolve(m string, candidates []types.ComponentType, reg *patterns.Registry) (Resolution, bool) {
	if len(candidates) == 0 {
		return Resolution{}, false
	}

	var claims []Resolution
	for _, h := range s.ordered(m, reg) {
		if t, ok := claim(h, m, candidates); ok {
			claims = append(claims, Resolution{Handler: h, Type: t})
			if len(claims) > 1 || !s.logger.Core().Enabled(zap.DebugLevel) {
				break
			}
		}
	}
	if len(claims) == 0 {
		return Resolution{}, false
	}
	if len(claims) > 1 {
		s.logger.Debug("ambiguous mpn",
			zap.String("mpn", m),
			zap.String("winner", claims[0].Handler.Name()),
			zap.String("runner_up", claims[1].Handler.Name()),
			zap.Stringer("policy", s.policy))
	}
	return claims[0], true
}

// claim returns the first candidate type h supports and confirms.
func claim(h Handler, m string, candidates []types.ComponentType) (types.ComponentType, bool) {
	for _, c := range candidates {
		if supportsType(h, c) && h.Matches(m, c) {
			return c, true
		}
	}
	return "", false
}

func supportsType(h Handler, t types.ComponentType) bool {
	for _, st := range h.SupportedTypes() {
		if st == t {
			return true
		}
	}
	return false
}

// specificHandler is implemented by handlers that can rank their own rules against
// an MPN. Every built-in handler does through base.
type specificHandler interface {
	specificity(m string) int
}

// ordered returns handlers in the order the policy tries them. Under the specificity
// policy each handler is ranked by its own matching rules; handlers from outside the
// package fall back to the registry rules of the types they support.
func (s *Set) ordered(m string, reg *patterns.Registry) []Handler {
	if s.policy != PolicySpecificity {
		return s.handlers
	}

	var rules []patterns.Rule
	score := make(map[Handler]int, len(s.handlers))
	for _, h := range s.handlers {
		if sh, ok := h.(specificHandler); ok {
			score[h] = sh.specificity(m)
			continue
		}
		if rules == nil {
			rules = reg.MatchRules(m)
		}
		best := -1
		for _, r := range rules {
			if supportsType(h, r.Type) && len(r.Prefix) > best {
				best = len(r.Prefix)
			}
		}
		score[h] = best
	}

	out := append([]Handler(nil), s.handlers...)
	sort.SliceStable(out, func(i, j int) bool {
		return score[out[i]] > score[out[j]]
	})
	return out
}

// Classify runs the full pipeline for one input: normalization, candidate types from
// the registry, handler dispatch and attribute extraction. Unrecognized input yields a
// Classification with no types.
func (s *Set) Classify(input string, reg *patterns.Registry) types.Classification {
	m := mpn.Normalize(input)
	c := types.Classification{Input: input, MPN: m}
	if m == "" {
		return c
	}

	candidates := reg.Match(m)
	if len(candidates) == 0 {
		return c
	}
	c.Types = expandTypes(candidates)

	res, ok := s.resolve(m, candidates, reg)
	if !ok {
		c.Primary = candidates[0]
		c.Attributes.Series = mpn.StripPackaging(m)
		return c
	}

	c.Primary = res.Type
	c.Handler = res.Handler.Name()
	c.Attributes = Extract(res.Handler, m)
	return c
}

// Extract collects package, series and derived attributes from h for a normalized MPN.
func Extract(h Handler, m string) types.Attributes {
	var a types.Attributes
	if pkg, ok := h.ExtractPackageCode(m); ok {
		a.PackageCode = pkg
	}
	if series, ok := h.ExtractSeries(m); ok {
		a.Series = series
	} else {
		a.Series = mpn.StripPackaging(m)
	}
	if ax, ok := h.(AttributeExtractor); ok {
		a = a.Merge(ax.Attributes(m))
	}
	a.Vendor = h.Name()
	if a.Mounting == types.MountingUnknown {
		a.Mounting = MountingOf(a.PackageCode)
	}
	return a
}

// expandTypes puts each qualified type's base in front of it so callers can test
// membership by base.
func expandTypes(candidates []types.ComponentType) []types.ComponentType {
	out := make([]types.ComponentType, 0, len(candidates)+1)
	seen := make(map[types.ComponentType]bool, len(candidates)+1)
	for _, t := range candidates {
		if b := t.Base(); b != t && !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
