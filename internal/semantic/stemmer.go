package semantic

import (
	"strings"

	"github.com/surgebase/porter2"
)

// Stemmer reduces words to their Porter2 stem so "capacitors", "capacitor" and
// "capacitance" land on comparable keys.
type Stemmer struct {
	minLength  int
	exclusions map[string]bool // Words to never stem
}

// NewStemmer creates a stemmer. Words shorter than minLength are returned lower-cased
// but otherwise untouched.
func NewStemmer(minLength int, exclusions ...string) *Stemmer {
	if minLength < 0 {
		minLength = 3
	}

	ex := make(map[string]bool, len(exclusions))
	for _, w := range exclusions {
		ex[strings.ToLower(w)] = true
	}

	return &Stemmer{
		minLength:  minLength,
		exclusions: ex,
	}
}

// Stem returns the lower-case stem of a word
func (s *Stemmer) Stem(word string) string {
	word = strings.ToLower(word)

	if s.exclusions[word] || len(word) < s.minLength {
		return word
	}

	return porter2.Stem(word)
}

// StemAll applies stemming to multiple words
func (s *Stemmer) StemAll(words []string) []string {
	result := make([]string, 0, len(words))
	for _, word := range words {
		result = append(result, s.Stem(word))
	}
	return result
}

// IsExcluded checks if a word is in the exclusion list
func (s *Stemmer) IsExcluded(word string) bool {
	return s.exclusions[strings.ToLower(word)]
}
