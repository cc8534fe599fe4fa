// Package semantic holds the approximate-matching helpers used around the
// classification engine.
//
// # Components
//
// FuzzyMatcher: Jaro-Winkler (default) or Levenshtein similarity via go-edlib. The
// engine uses it to suggest known family members for part numbers that no handler
// recognizes, e.g. "LM358X" suggesting "LM358".
//
// Stemmer: Porter2 stemming. The free-text scanner stems surrounding words so
// "capacitors" and "capacitor" both hint at CAPACITOR.
//
// LRUCache: bounded, mutex-guarded cache keyed by xxhash of the normalized MPN. The
// engine only creates one when a positive cache size is configured.
//
// # Usage Example
//
//	fm := semantic.NewFuzzyMatcher(0.85, semantic.AlgorithmJaroWinkler)
//	for _, m := range fm.FindMatches("LM385", []string{"LM358", "LM324", "TL072"}, 3) {
//		fmt.Println(m.Term, m.Similarity)
//	}
package semantic
