package handlers

import (
	"regexp"

	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/mpn"
	"github.com/standardbeagle/mpnkit/internal/types"
)

// CustomPattern is one user-supplied recognition rule.
type CustomPattern struct {
	Type    types.ComponentType
	Pattern string
}

// Custom recognizes parts from configuration-supplied patterns. It extracts no
// package; the series is the MPN without packaging suffixes.
type Custom struct {
	base
}

// NewCustom validates and compiles the patterns. Every bad entry is reported.
func NewCustom(name string, entries []CustomPattern) (*Custom, error) {
	if name == "" {
		name = "custom"
	}
	h := &Custom{base: base{name: name}}
	seen := make(map[types.ComponentType]bool)
	var errs []error
	for _, e := range entries {
		if !e.Type.IsValid() {
			errs = append(errs, errors.NewPatternError(string(e.Type), e.Pattern, errors.ErrUnknownType))
			continue
		}
		re, err := regexp.Compile(e.Pattern)
		if err != nil {
			errs = append(errs, errors.NewPatternError(string(e.Type), e.Pattern, err))
			continue
		}
		if !seen[e.Type] {
			seen[e.Type] = true
			h.supported = append(h.supported, e.Type)
		}
		h.rules = append(h.rules, rule{t: e.Type, expr: e.Pattern, re: re})
	}
	if err := errors.NewMultiError(errs).ErrorOrNil(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Custom) ExtractPackageCode(string) (string, bool) { return "", false }

func (h *Custom) ExtractSeries(m string) (string, bool) {
	if m == "" {
		return "", false
	}
	return mpn.StripPackaging(m), true
}
