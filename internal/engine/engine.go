// Package engine wires the pattern registry, manufacturer handlers, similarity
// calculators and replacement advisor into one immutable object. Every method is
// safe for concurrent use.
package engine

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/mpnkit/internal/advisor"
	"github.com/standardbeagle/mpnkit/internal/config"
	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/handlers"
	"github.com/standardbeagle/mpnkit/internal/metrics"
	"github.com/standardbeagle/mpnkit/internal/mpn"
	"github.com/standardbeagle/mpnkit/internal/patterns"
	"github.com/standardbeagle/mpnkit/internal/semantic"
	"github.com/standardbeagle/mpnkit/internal/similarity"
	"github.com/standardbeagle/mpnkit/internal/types"
)

// customHandlerName names the handler built from configured patterns.
const customHandlerName = "custom"

// minVocabularyPrefix keeps very short rule prefixes ("AO", "L") out of the
// suggestion vocabulary.
const minVocabularyPrefix = 4

// Engine classifies part numbers and compares them. Build one with New, or use
// Default for the built-in tables.
type Engine struct {
	cfg      *config.Config
	registry *patterns.Registry
	handlers *handlers.Set
	sim      *similarity.Set
	advisor  *advisor.Advisor
	scanner  *mpn.Scanner
	fuzzy    *semantic.FuzzyMatcher

	// vocabulary is what Suggest searches: family members and literal rule prefixes.
	vocabulary []string

	// cache is nil unless engine.cache_size > 0.
	cache *semantic.LRUCache[types.Classification]

	metrics *metrics.Metrics
	logger  *zap.Logger
}

// Comparison is the similarity of two part numbers with the classifications it was
// computed from.
type Comparison struct {
	A          types.Classification `json:"a"`
	B          types.Classification `json:"b"`
	Score      float64              `json:"score"`
	Band       similarity.Band      `json:"band"`
	Calculator string               `json:"calculator,omitempty"`
	Reason     string               `json:"reason"`
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns a shared engine over the built-in tables, built on first use.
func Default() *Engine {
	defaultOnce.Do(func() {
		e, err := New()
		if err != nil {
			// The built-in tables are static; failing here is a programming error.
			panic(errors.Wrap(err, "build default engine"))
		}
		defaultEngine = e
	})
	return defaultEngine
}

// New builds an engine. Configured patterns become a custom handler tried after the
// built-in ones; configured families and family files extend the calculators.
func New(opts ...Option) (*Engine, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := prepareConfig(o.cfg)
	if err != nil {
		return nil, err
	}

	policy, err := handlers.ParsePolicy(cfg.Engine.Ambiguity)
	if err != nil {
		return nil, err
	}

	hs := handlers.Builtin()
	if len(cfg.Patterns) > 0 {
		entries := make([]handlers.CustomPattern, len(cfg.Patterns))
		for i, p := range cfg.Patterns {
			entries[i] = handlers.CustomPattern{Type: types.ComponentType(p.Type), Pattern: p.Regex}
		}
		custom, err := handlers.NewCustom(customHandlerName, entries)
		if err != nil {
			return nil, errors.Wrap(err, "configured patterns")
		}
		hs = append(hs, custom)
	}

	set := handlers.NewSet(hs, handlers.WithPolicy(policy), handlers.WithLogger(o.logger))
	reg := patterns.New()
	if err := set.Register(reg); err != nil {
		return nil, errors.Wrap(err, "build pattern registry")
	}
	reg.Freeze()

	sim := similarity.NewSet(familyTables(cfg.Families))

	e := &Engine{
		cfg:      cfg,
		registry: reg,
		handlers: set,
		sim:      sim,
		advisor:  advisor.New(sim),
		scanner:  mpn.NewScanner(nil),
		fuzzy:    semantic.NewFuzzyMatcher(cfg.Engine.FuzzyThreshold, semantic.AlgorithmJaroWinkler),
		metrics:  o.metrics,
		logger:   o.logger,
	}
	e.vocabulary = buildVocabulary(reg, sim)
	if cfg.Engine.CacheSize > 0 {
		e.cache = semantic.NewLRUCache[types.Classification](cfg.Engine.CacheSize)
	}

	e.logger.Info("engine ready",
		zap.Int("rules", reg.Len()),
		zap.Int("handlers", len(hs)),
		zap.Int("families", len(cfg.Families)),
		zap.Stringer("ambiguity", policy),
		zap.Int("cache_size", cfg.Engine.CacheSize))
	return e, nil
}

// prepareConfig copies cfg, folds in its family files and validates the result.
func prepareConfig(in *config.Config) (*config.Config, error) {
	if in == nil {
		in = config.Default()
	}
	cfg := *in
	cfg.Families = make([]config.Family, 0, len(in.Families))
	for _, f := range in.Families {
		f.Members = append([]string(nil), f.Members...)
		cfg.Families = append(cfg.Families, f)
	}
	cfg.Patterns = append([]config.Pattern(nil), in.Patterns...)

	fromFiles, err := cfg.LoadFamilyFiles()
	if err != nil {
		return nil, err
	}
	cfg.Families = append(cfg.Families, fromFiles...)
	cfg.FamilyFiles = nil

	if err := config.ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// familyTables groups validated configured families by base type.
func familyTables(fams []config.Family) map[types.ComponentType]similarity.Families {
	out := make(map[types.ComponentType]similarity.Families)
	for _, f := range fams {
		t := types.ComponentType(f.Category)
		out[t] = append(out[t], similarity.Family{Name: f.Name, Members: f.Members})
	}
	return out
}

func buildVocabulary(reg *patterns.Registry, sim *similarity.Set) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if len(s) >= minVocabularyPrefix && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, m := range sim.Members() {
		add(m)
	}
	for _, t := range reg.Types() {
		for _, r := range reg.Rules(t) {
			add(r.Prefix)
		}
	}
	sort.Strings(out)
	return out
}

// Classify runs the full pipeline for one input. Unrecognized input yields a
// classification with no types and, when something known is close, suggestions.
func (e *Engine) Classify(input string) types.Classification {
	key := mpn.Normalize(input)
	if e.cache != nil && key != "" {
		if c, ok := e.cache.Get(key); ok {
			e.metrics.ObserveCacheLookup(true)
			c = clone(c)
			c.Input = input
			e.metrics.ObserveClassification(string(c.Base()))
			return c
		}
		e.metrics.ObserveCacheLookup(false)
	}

	c := e.handlers.Classify(input, e.registry)
	if !c.Recognized() && c.MPN != "" && e.cfg.Engine.SuggestLimit > 0 {
		for _, s := range e.Suggest(c.MPN, e.cfg.Engine.SuggestLimit) {
			c.Suggestions = append(c.Suggestions, s.Term)
		}
	}

	if e.cache != nil && key != "" {
		e.cache.Set(key, clone(c))
	}
	e.metrics.ObserveClassification(string(c.Base()))
	return c
}

// clone detaches the slices of a cached classification from the caller's copy.
func clone(c types.Classification) types.Classification {
	c.Types = append([]types.ComponentType(nil), c.Types...)
	c.Suggestions = append([]string(nil), c.Suggestions...)
	return c
}

// ClassifyBatch classifies mpns concurrently, bounded by engine.workers. Results are
// in input order. Cancelling ctx stops the batch and returns its error.
func (e *Engine) ClassifyBatch(ctx context.Context, mpns []string) ([]types.Classification, error) {
	out := make([]types.Classification, len(mpns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.cfg.Engine.Workers))

	for i, m := range mpns {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.Classify(m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.logger.Debug("batch classified", zap.Int("count", len(mpns)))
	return out, nil
}

// Similarity scores a against b in [0, 1].
func (e *Engine) Similarity(a, b string) float64 {
	return e.Compare(a, b).Score
}

// Compare classifies both inputs and scores them with the calculator for a's base
// type.
func (e *Engine) Compare(a, b string) Comparison {
	return e.CompareClassified(e.Classify(a), e.Classify(b))
}

// CompareClassified scores two existing classifications.
func (e *Engine) CompareClassified(a, b types.Classification) Comparison {
	r := e.sim.Score(a, b)
	e.metrics.ObserveComparison(r.Calculator, string(r.Band), r.Score)
	return Comparison{
		A:          a,
		B:          b,
		Score:      r.Score,
		Band:       r.Band,
		Calculator: r.Calculator,
		Reason:     r.Reason,
	}
}

// CanReplace reports whether candidate can stand in for original.
func (e *Engine) CanReplace(candidate, original string) bool {
	return e.Advise(candidate, original).Replaceable
}

// Advise explains the replacement decision for candidate standing in for original.
func (e *Engine) Advise(candidate, original string) advisor.Verdict {
	o := e.Classify(original)
	v := e.advisor.Advise(e.Classify(candidate), o)
	e.metrics.ObserveVerdict(string(o.Base()), v.Replaceable)
	if !v.Replaceable {
		e.logger.Debug("replacement rejected",
			zap.String("candidate", candidate),
			zap.String("original", original),
			zap.Int("violations", len(v.Violations)))
	}
	return v
}

// Extract finds part numbers in free text. A token is kept when it classifies or
// when a nearby word names its category.
func (e *Engine) Extract(text string) []mpn.Candidate {
	var out []mpn.Candidate
	for _, c := range e.scanner.Scan(text) {
		if c.Hint != "" || e.handlers.Classify(c.Text, e.registry).Recognized() {
			out = append(out, c)
		}
	}
	return out
}

// Suggest returns up to n known part prefixes closest to m, best first. Scores below
// engine.fuzzy_threshold are dropped.
func (e *Engine) Suggest(m string, n int) []semantic.FuzzyMatch {
	m = mpn.Normalize(m)
	if m == "" {
		return nil
	}
	return e.fuzzy.FindMatches(m, e.vocabulary, n)
}

// Types lists every type the registry can report, in registration order.
func (e *Engine) Types() []types.ComponentType {
	return e.registry.Types()
}

// Handlers returns the handler names in dispatch order.
func (e *Engine) Handlers() []string {
	hs := e.handlers.Handlers()
	names := make([]string, len(hs))
	for i, h := range hs {
		names[i] = h.Name()
	}
	return names
}

// Config returns the validated configuration the engine was built from.
func (e *Engine) Config() config.Config {
	return *e.cfg
}

// Stats summarises the engine's tables.
func (e *Engine) Stats() *metrics.TableStats {
	calcs := e.sim.Calculators()
	families := 0
	for _, c := range calcs {
		families += len(c.Families())
	}
	return metrics.NewTableStats(e.registry, e.Handlers(), len(calcs), families, len(e.sim.Members()))
}

// CacheStats reports result-cache usage; ok is false when caching is disabled.
func (e *Engine) CacheStats() (semantic.CacheStats, bool) {
	if e.cache == nil {
		return semantic.CacheStats{}, false
	}
	return e.cache.Stats(), true
}
