// Package metrics records classification, comparison and replacement outcomes as
// Prometheus series, and summarises the engine's static tables.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	// Classifications by outcome (recognized, unrecognized) and base type
	Classifications *prometheus.CounterVec

	// Comparisons by calculator and band
	Comparisons *prometheus.CounterVec

	// Replacement verdicts by base type of the original
	Verdicts *prometheus.CounterVec

	SimilarityScores prometheus.Histogram

	CacheLookups *prometheus.CounterVec
}

// New registers every series on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mpnkit_classifications_total",
			Help: "Total classifications by outcome and base type",
		}, []string{"outcome", "base_type"}),

		Comparisons: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mpnkit_comparisons_total",
			Help: "Total similarity comparisons by calculator and band",
		}, []string{"calculator", "band"}),

		Verdicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mpnkit_replacement_verdicts_total",
			Help: "Total replacement verdicts by base type and result",
		}, []string{"base_type", "replaceable"}),

		SimilarityScores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mpnkit_similarity_score",
			Help:    "Distribution of similarity scores",
			Buckets: []float64{0.1, 0.3, 0.5, 0.7, 0.8, 0.9, 0.95, 1},
		}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mpnkit_cache_lookups_total",
			Help: "Classification cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss"
	}
}

// ObserveClassification records one classification. An empty base type counts as
// unrecognized.
func (m *Metrics) ObserveClassification(baseType string) {
	if m == nil {
		return
	}
	outcome := "recognized"
	if baseType == "" {
		outcome = "unrecognized"
		baseType = "none"
	}
	m.Classifications.WithLabelValues(outcome, baseType).Inc()
}

// ObserveComparison records a similarity comparison and its score.
func (m *Metrics) ObserveComparison(calculator, band string, score float64) {
	if m != nil {
		m.Comparisons.WithLabelValues(calculator, band).Inc()
		m.SimilarityScores.Observe(score)
	}
}

// ObserveVerdict records a replacement decision.
func (m *Metrics) ObserveVerdict(baseType string, replaceable bool) {
	if m == nil {
		return
	}
	if baseType == "" {
		baseType = "none"
	}
	m.Verdicts.WithLabelValues(baseType, strconv.FormatBool(replaceable)).Inc()
}

// ObserveCacheLookup records a cache hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
