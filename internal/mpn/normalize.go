// Package mpn normalizes manufacturer part numbers and finds them in free text.
//
// Normalization is recomputed on every call; no parsed form is retained.
package mpn

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// dashes folds typographic hyphens that NFKC leaves alone.
var dashes = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

// Normalize returns the canonical form of an MPN: NFKC folded (so full-width
// characters copied from datasheets compare equal), upper-cased, with all whitespace
// and any trailing dash or underscore removed. Blank input yields "".
func Normalize(s string) string {
	s = dashes.Replace(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return strings.TrimRight(b.String(), "-_")
}

// IsBlank reports whether s normalizes to the empty string.
func IsBlank(s string) bool {
	return Normalize(s) == ""
}
