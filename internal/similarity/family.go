package similarity

import "strings"

// Family is a named set of series prefixes that are drop-in equivalents.
type Family struct {
	Name    string   `json:"name" yaml:"name"`
	Members []string `json:"members" yaml:"members"`
}

// Contains reports whether series starts with a member prefix. The character after
// the prefix, if any, must not be a digit, so LM358 does not claim LM3580.
func (f Family) Contains(series string) bool {
	for _, m := range f.Members {
		if !strings.HasPrefix(series, m) {
			continue
		}
		if len(series) == len(m) || !isDigit(series[len(m)]) {
			return true
		}
	}
	return false
}

// Families is an ordered family table.
type Families []Family

// Of returns the first family containing series.
func (fs Families) Of(series string) (Family, bool) {
	for _, f := range fs {
		if f.Contains(series) {
			return f, true
		}
	}
	return Family{}, false
}

// Shared returns a family containing both series.
func (fs Families) Shared(a, b string) (Family, bool) {
	for _, f := range fs {
		if f.Contains(a) && f.Contains(b) {
			return f, true
		}
	}
	return Family{}, false
}

// Members lists every member prefix, in table order.
func (fs Families) Members() []string {
	var out []string
	for _, f := range fs {
		out = append(out, f.Members...)
	}
	return out
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
