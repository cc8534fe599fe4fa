// Package handlers holds one stateless handler per manufacturer. A handler confirms
// that an MPN belongs to one of its component types and extracts the package code,
// series and derived attributes from it.
//
// Handlers register their patterns into a patterns.Registry, which supplies candidate
// types; the Set dispatcher then asks handlers, in order, to claim the MPN.
package handlers

import (
	"regexp"
	"sort"
	"strings"

	"github.com/standardbeagle/mpnkit/internal/errors"
	"github.com/standardbeagle/mpnkit/internal/logging"
	"github.com/standardbeagle/mpnkit/internal/mpn"
	"github.com/standardbeagle/mpnkit/internal/patterns"
	"github.com/standardbeagle/mpnkit/internal/types"
)

// Handler is the contract every manufacturer handler implements. All methods accept a
// normalized MPN; none of them may panic, and blank input never matches.
type Handler interface {
	Name() string
	SupportedTypes() []types.ComponentType
	// Register adds the handler's recognition patterns to reg.
	Register(reg *patterns.Registry) error
	// Matches confirms that m is a t made by this manufacturer.
	Matches(m string, t types.ComponentType) bool
	ExtractPackageCode(m string) (string, bool)
	ExtractSeries(m string) (string, bool)
}

// AttributeExtractor is implemented by handlers that derive typed attributes beyond
// package and series. Fields the MPN does not encode stay Unknown.
type AttributeExtractor interface {
	Attributes(m string) types.Attributes
}

type rule struct {
	t    types.ComponentType
	expr string
	re   *regexp.Regexp
}

// base carries the name, type list and compiled rules shared by every handler.
// Matches checks the handler's own rules so that two handlers sharing a base type
// never claim each other's parts.
type base struct {
	name      string
	supported []types.ComponentType
	rules     []rule
}

type patternDef struct {
	t     types.ComponentType
	exprs []string
}

func def(t types.ComponentType, exprs ...string) patternDef {
	return patternDef{t: t, exprs: exprs}
}

func newBase(name string, defs ...patternDef) base {
	b := base{name: name}
	seen := make(map[types.ComponentType]bool)
	for _, d := range defs {
		if !seen[d.t] {
			seen[d.t] = true
			b.supported = append(b.supported, d.t)
		}
		for _, expr := range d.exprs {
			b.rules = append(b.rules, rule{t: d.t, expr: expr, re: regexp.MustCompile(expr)})
		}
	}
	return b
}

func (b base) Name() string { return b.name }

func (b base) SupportedTypes() []types.ComponentType {
	return append([]types.ComponentType(nil), b.supported...)
}

func (b base) Register(reg *patterns.Registry) error {
	var errs []error
	for _, r := range b.rules {
		if err := reg.Register(r.t, r.expr); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.NewMultiError(errs).ErrorOrNil()
}

func (b base) Matches(m string, t types.ComponentType) bool {
	m = mpn.Normalize(m)
	if m == "" {
		return false
	}
	for _, r := range b.rules {
		if r.t == t && r.re.MatchString(m) {
			return true
		}
	}
	return false
}

// matchedType returns the first supported type whose rule accepts m.
func (b base) matchedType(m string) (types.ComponentType, bool) {
	for _, r := range b.rules {
		if r.re.MatchString(m) {
			return r.t, true
		}
	}
	return "", false
}

// specificity returns the length of the longest literal prefix among b's own rules
// that accept m, or -1 when none does.
func (b base) specificity(m string) int {
	best := -1
	for _, r := range b.rules {
		if r.re.MatchString(m) {
			if n := len(patterns.LiteralPrefix(r.expr)); n > best {
				best = n
			}
		}
	}
	return best
}

// codeTable maps literal codes to values and looks them up longest-first.
type codeTable struct {
	entries []codeEntry
}

type codeEntry struct {
	code  string
	value string
}

func newCodeTable(pairs map[string]string) codeTable {
	t := codeTable{entries: make([]codeEntry, 0, len(pairs))}
	for k, v := range pairs {
		t.entries = append(t.entries, codeEntry{k, v})
	}
	sort.Slice(t.entries, func(i, j int) bool {
		a, b := t.entries[i].code, t.entries[j].code
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return t
}

func (t codeTable) exact(s string) (string, bool) {
	for _, e := range t.entries {
		if e.code == s {
			return e.value, true
		}
	}
	return "", false
}

// prefix returns the entry for the longest code that starts s.
func (t codeTable) prefix(s string) (codeEntry, bool) {
	for _, e := range t.entries {
		if strings.HasPrefix(s, e.code) {
			return e, true
		}
	}
	return codeEntry{}, false
}

// suffix returns the entry for the longest code that ends s.
func (t codeTable) suffix(s string) (codeEntry, bool) {
	for _, e := range t.entries {
		if len(s) > len(e.code) && strings.HasSuffix(s, e.code) {
			return e, true
		}
	}
	return codeEntry{}, false
}

// quantity turns a parser result into a Quantity. Handlers only parse substrings their
// own regexes validated, so a failure means a table is wrong: it is logged and the
// attribute is left Unknown.
func quantity(handler, field, m string, v float64, err error) types.Quantity {
	if err != nil {
		logging.Logger.Errorw("attribute parse failed",
			"handler", handler,
			"field", field,
			"mpn", m,
			"error", err)
		return types.Unknown
	}
	return types.Known(v)
}

var throughHolePackages = []string{
	"TO-92", "TO-18", "TO-46", "TO-220", "TO-247", "TO-251", "TO-262", "I-PAK", "I2PAK",
	"DO-41", "DO-35", "DO-201", "PDIP", "CDIP", "RADIAL",
}

var surfaceMountPackages = []string{
	"SOIC", "SO-", "SOT", "SC70", "SC-70", "SOP", "SSOP", "TSSOP", "VSSOP", "MSOP", "MICRO8",
	"DFN", "QFN", "WSON", "LGA", "LFCSP", "TFBGA", "VFBGA", "TQFP", "TSOP", "D-PAK",
	"D2PAK", "TO-252", "TO-263", "TOLL", "SUPERSO8", "CFP", "SMD",
}

// MountingOf infers the mounting style from a package name. Chip sizes (0603) are
// surface mount; names it does not know give Unknown.
func MountingOf(pkg string) types.Mounting {
	upper := strings.ToUpper(pkg)
	for _, p := range throughHolePackages {
		if strings.HasPrefix(upper, p) {
			return types.MountingThroughHole
		}
	}
	for _, p := range surfaceMountPackages {
		if strings.HasPrefix(upper, p) {
			return types.MountingSMD
		}
	}
	if len(upper) == 4 && allDigits(upper) {
		return types.MountingSMD
	}
	return types.MountingUnknown
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

// lineFamily drops the last digit of an alphanumeric series, grouping siblings such as
// SHT30/SHT31 or BMP280/BMP285 into SHT3 and BMP28.
func lineFamily(series string) string {
	end := len(series)
	for end > 0 && !isDigit(series[end-1]) {
		end--
	}
	if end == 0 {
		return series
	}
	return series[:end-1]
}

// alphaPrefix returns the leading letters of s.
func alphaPrefix(s string) string {
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	return s[:i]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return c >= 'A' && c <= 'Z' }

// stripRevision removes a single trailing letter when it follows a digit.
func stripRevision(s string) string {
	n := len(s)
	if n >= 2 && isLetter(s[n-1]) && isDigit(s[n-2]) {
		return s[:n-1]
	}
	return s
}

// temperatureGrades maps grade letters printed between series and package to the
// upper operating temperature in °C.
var temperatureGrades = map[string]float64{
	"C":  70,
	"AC": 70,
	"I":  85,
	"AI": 85,
	"M":  125,
	"AM": 125,
	"Q":  125,
	"A":  0,
}

// splitGrade cuts a leading temperature-grade code from rest, longest code first.
// A grade of 0 means the letter carries no temperature information.
func splitGrade(rest string) (grade float64, remainder string, ok bool) {
	for _, n := range []int{2, 1} {
		if len(rest) < n {
			continue
		}
		if g, found := temperatureGrades[rest[:n]]; found {
			return g, rest[n:], true
		}
	}
	return 0, rest, false
}
