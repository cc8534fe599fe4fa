package semantic

import (
	"fmt"
	"sort"

	"github.com/hbollon/go-edlib"
)

// Supported fuzzy algorithms
const (
	AlgorithmJaroWinkler = "jaro-winkler"
	AlgorithmLevenshtein = "levenshtein"
)

// DefaultFuzzyThreshold is the minimum similarity for a suggestion.
const DefaultFuzzyThreshold = 0.80

// FuzzyMatcher scores string similarity with go-edlib. It is used to suggest known
// part numbers for input no handler recognizes.
type FuzzyMatcher struct {
	threshold float64
	algorithm string
}

// NewFuzzyMatcher creates a matcher. Out-of-range thresholds fall back to the default.
func NewFuzzyMatcher(threshold float64, algorithm string) *FuzzyMatcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultFuzzyThreshold
	}
	if algorithm == "" {
		algorithm = AlgorithmJaroWinkler
	}
	return &FuzzyMatcher{
		threshold: threshold,
		algorithm: algorithm,
	}
}

// Threshold returns the configured similarity threshold
func (fm *FuzzyMatcher) Threshold() float64 {
	return fm.threshold
}

// Algorithm returns the configured algorithm name
func (fm *FuzzyMatcher) Algorithm() string {
	return fm.algorithm
}

// Match checks if two strings are similar within the configured threshold
func (fm *FuzzyMatcher) Match(a, b string) bool {
	return fm.Similarity(a, b) >= fm.threshold
}

// Similarity returns the similarity score between two strings (0.0-1.0)
func (fm *FuzzyMatcher) Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	algo := edlib.JaroWinkler
	if fm.algorithm == AlgorithmLevenshtein {
		algo = edlib.Levenshtein
	}

	// StringsSimilarity normalizes both algorithms to 0-1, higher is closer
	score, err := edlib.StringsSimilarity(a, b, algo)
	if err != nil {
		return 0.0
	}
	return float64(score)
}

// FuzzyMatch represents a fuzzy match result
type FuzzyMatch struct {
	Term       string  `json:"term"`
	Similarity float64 `json:"similarity"`
}

// FindMatches returns candidates at or above the threshold, best first. Ties keep
// candidate order. limit <= 0 returns every match.
func (fm *FuzzyMatcher) FindMatches(target string, candidates []string, limit int) []FuzzyMatch {
	var matches []FuzzyMatch
	seen := make(map[string]bool, len(candidates))

	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true

		similarity := fm.Similarity(target, candidate)
		if similarity >= fm.threshold {
			matches = append(matches, FuzzyMatch{
				Term:       candidate,
				Similarity: similarity,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// ValidateConfig validates fuzzy matcher configuration
func (fm *FuzzyMatcher) ValidateConfig() error {
	if fm.threshold <= 0 || fm.threshold > 1 {
		return fmt.Errorf("invalid threshold: %.2f (must be in (0,1])", fm.threshold)
	}

	switch fm.algorithm {
	case AlgorithmJaroWinkler, AlgorithmLevenshtein:
		return nil
	default:
		return fmt.Errorf("invalid algorithm: %s (must be jaro-winkler or levenshtein)", fm.algorithm)
	}
}
