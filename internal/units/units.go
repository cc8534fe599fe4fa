// Package units parses the numeric notations found inside part numbers: SI-prefixed
// values ("4.7k", "100nF"), RKM notation ("4K7", "2R2"), three-digit EIA multiplier
// codes ("104") and capacitor voltage/tolerance letter codes.
//
// Every parser fails loudly with an *errors.InvalidAttributeError; callers that only
// feed regex-validated substrings treat such a failure as a table bug.
package units

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/standardbeagle/mpnkit/internal/errors"
)

// Unit is the base unit of a parsed value.
type Unit string

const (
	Ohm    Unit = "Ω"
	Farad  Unit = "F"
	Volt   Unit = "V"
	Ampere Unit = "A"
	Hertz  Unit = "Hz"
)

// Attribute names the quantity the unit measures, used in error messages.
func (u Unit) Attribute() string {
	switch u {
	case Ohm:
		return "resistance"
	case Farad:
		return "capacitance"
	case Volt:
		return "voltage"
	case Ampere:
		return "current"
	case Hertz:
		return "frequency"
	default:
		return "value"
	}
}

// suffixes lists spellings of the unit that may trail a value.
func (u Unit) suffixes() []string {
	switch u {
	case Ohm:
		return []string{"OHMS", "OHM", "Ω"}
	case Hertz:
		return []string{"HZ"}
	case "":
		return nil
	default:
		return []string{string(u)}
	}
}

// prefixes maps SI prefix letters (and the RKM "R" decimal marker) to multipliers.
// Case matters: m is milli and M is mega.
var prefixes = map[byte]float64{
	'p': 1e-12,
	'n': 1e-9,
	'u': 1e-6,
	'm': 1e-3,
	'R': 1,
	'r': 1,
	'k': 1e3,
	'K': 1e3,
	'M': 1e6,
	'G': 1e9,
}

var microReplacer = strings.NewReplacer("µ", "u", "μ", "u")

// Parse reads a value such as "4.7k", "4K7", "100nF", "2R2", "10V" or "3.3".
func Parse(s string, u Unit) (float64, error) {
	raw := s
	s = microReplacer.Replace(strings.TrimSpace(s))
	s = strings.TrimSpace(trimUnit(s, u))
	if s == "" {
		return 0, errors.NewInvalidAttributeError(u.Attribute(), raw, nil)
	}

	idx := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	if idx < 0 {
		return parseFloat(u, raw, s, 1)
	}

	mult, ok := prefixes[s[idx]]
	if !ok {
		return 0, errors.NewInvalidAttributeError(u.Attribute(), raw, nil)
	}

	whole, frac := s[:idx], s[idx+1:]
	if whole == "" && frac == "" {
		return 0, errors.NewInvalidAttributeError(u.Attribute(), raw, nil)
	}
	if frac != "" {
		// RKM: the prefix letter stands in for the decimal point
		if strings.Contains(whole, ".") || !allDigits(frac) {
			return 0, errors.NewInvalidAttributeError(u.Attribute(), raw, nil)
		}
		whole += "." + frac
	}
	if whole == "" {
		whole = "0"
	}
	if strings.HasPrefix(whole, ".") {
		whole = "0" + whole
	}
	return parseFloat(u, raw, whole, mult)
}

// MustParse is Parse for static tables; it panics on malformed input.
func MustParse(s string, u Unit) float64 {
	v, err := Parse(s, u)
	if err != nil {
		panic(err)
	}
	return v
}

func trimUnit(s string, u Unit) string {
	upper := strings.ToUpper(s)
	for _, suffix := range u.suffixes() {
		if len(upper) > len(suffix) && strings.HasSuffix(upper, suffix) {
			return s[:len(s)-len(suffix)]
		}
	}
	return s
}

func parseFloat(u Unit, raw, s string, mult float64) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.NewInvalidAttributeError(u.Attribute(), raw, err)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) || v < 0 {
		return 0, errors.NewInvalidAttributeError(u.Attribute(), raw, nil)
	}
	return v * mult, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseEIA decodes a three-character EIA multiplier code in units of base: two
// significant digits followed by a power of ten ("104" = 10e4), or a value with an R
// decimal marker ("4R7" = 4.7, "R47" = 0.47).
func ParseEIA(code string, base float64, u Unit) (float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 || len(code) > 4 {
		return 0, errors.NewInvalidAttributeError(u.Attribute(), code, nil)
	}

	if i := strings.IndexByte(code, 'R'); i >= 0 {
		whole, frac := code[:i], code[i+1:]
		if (whole != "" && !allDigits(whole)) || (frac != "" && !allDigits(frac)) || whole+frac == "" {
			return 0, errors.NewInvalidAttributeError(u.Attribute(), code, nil)
		}
		if whole == "" {
			whole = "0"
		}
		return parseFloat(u, code, whole+"."+frac, base)
	}

	if !allDigits(code) {
		return 0, errors.NewInvalidAttributeError(u.Attribute(), code, nil)
	}
	sig, exp := code[:len(code)-1], code[len(code)-1]-'0'
	v, err := strconv.ParseFloat(sig, 64)
	if err != nil {
		return 0, errors.NewInvalidAttributeError(u.Attribute(), code, err)
	}
	return v * math.Pow10(int(exp)) * base, nil
}

// voltageCodes are the two-character rated-voltage codes printed in capacitor MPNs.
var voltageCodes = map[string]float64{
	"0G": 4,
	"0J": 6.3,
	"1A": 10,
	"1C": 16,
	"1D": 20,
	"1E": 25,
	"YA": 35,
	"1V": 35,
	"1H": 50,
	"1J": 63,
	"1K": 80,
	"2A": 100,
	"2C": 160,
	"2D": 200,
	"2E": 250,
	"2F": 315,
	"2V": 350,
	"2G": 400,
	"2W": 450,
	"2J": 630,
}

// ParseVoltageCode decodes a capacitor voltage code such as "1E" (25 V).
func ParseVoltageCode(code string) (float64, error) {
	v, ok := voltageCodes[strings.ToUpper(code)]
	if !ok {
		return 0, errors.NewInvalidAttributeError("voltage code", code, nil)
	}
	return v, nil
}

// toleranceCodes maps letter codes to ± percent.
var toleranceCodes = map[byte]float64{
	'B': 0.1,
	'C': 0.25,
	'D': 0.5,
	'F': 1,
	'G': 2,
	'J': 5,
	'K': 10,
	'M': 20,
	'Z': 80,
}

// ParseToleranceCode decodes a single tolerance letter into ± percent.
func ParseToleranceCode(code string) (float64, error) {
	if len(code) != 1 {
		return 0, errors.NewInvalidAttributeError("tolerance code", code, nil)
	}
	v, ok := toleranceCodes[strings.ToUpper(code)[0]]
	if !ok {
		return 0, errors.NewInvalidAttributeError("tolerance code", code, nil)
	}
	return v, nil
}

var formatPrefixes = []struct {
	mult   float64
	symbol string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "µ"},
	{1e-9, "n"},
	{1e-12, "p"},
}

// Format renders a value with the largest SI prefix that keeps the mantissa >= 1,
// e.g. Format(1e-7, Farad) = "100nF".
func Format(v float64, u Unit) string {
	if v == 0 {
		return "0" + string(u)
	}
	for _, p := range formatPrefixes {
		if math.Abs(v) >= p.mult*(1-1e-9) {
			return strconv.FormatFloat(round3(v/p.mult), 'f', -1, 64) + p.symbol + string(u)
		}
	}
	last := formatPrefixes[len(formatPrefixes)-1]
	return strconv.FormatFloat(round3(v/last.mult), 'f', -1, 64) + last.symbol + string(u)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
