package mpn

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/mpnkit/internal/semantic"
	"github.com/standardbeagle/mpnkit/internal/types"
)

// Candidate is a token from free text that looks like a part number.
type Candidate struct {
	Text   string `json:"text"`
	MPN    string `json:"mpn"`
	Offset int    `json:"offset"`
	// Hint is the category named by a nearby word ("two 100nF capacitors"), if any.
	Hint types.ComponentType `json:"hint,omitempty"`
}

var (
	tokenPattern = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}\-/#.+_]*[\p{L}\p{N}]|[\p{L}\p{N}]`)

	// Values and dimensions ("100nF", "3.3V", "2.54mm") are not part numbers.
	valuePattern = regexp.MustCompile(`^\d+(\.\d+)?[PNUMKGΜ]?(F|V|A|W|HZ|Ω|OHMS?|R|MM|MIL|C|%)?$`)
)

// hintWindow is how many tokens away a category word may be from the part number.
const hintWindow = 4

// categoryWords are stemmed at scanner construction.
var categoryWords = map[string]types.ComponentType{
	"resistor":        types.Resistor,
	"capacitor":       types.Capacitor,
	"cap":             types.Capacitor,
	"electrolytic":    types.Capacitor,
	"ceramic":         types.Capacitor,
	"diode":           types.Diode,
	"rectifier":       types.Diode,
	"transistor":      types.Transistor,
	"bjt":             types.Transistor,
	"mosfet":          types.MOSFET,
	"fet":             types.MOSFET,
	"opamp":           types.OpAmp,
	"op-amp":          types.OpAmp,
	"amplifier":       types.OpAmp,
	"regulator":       types.VoltageRegulator,
	"ldo":             types.VoltageRegulator,
	"logic":           types.LogicIC,
	"gate":            types.LogicIC,
	"memory":          types.Memory,
	"flash":           types.Memory,
	"eeprom":          types.Memory,
	"sdram":           types.Memory,
	"sensor":          types.Sensor,
	"accelerometer":   types.Sensor,
	"connector":       types.Connector,
	"header":          types.Connector,
	"housing":         types.Connector,
	"receptacle":      types.Connector,
	"module":          types.RFModule,
	"wifi":            types.RFModule,
	"microcontroller": types.Microcontroller,
	"mcu":             types.Microcontroller,
}

// Scanner extracts candidate part numbers from prose such as BOM notes or emails.
type Scanner struct {
	stemmer *semantic.Stemmer
	hints   map[string]types.ComponentType
}

// NewScanner builds a scanner whose category words are matched by stem, so plurals
// and inflections ("capacitors", "regulators") are recognized.
func NewScanner(stemmer *semantic.Stemmer) *Scanner {
	if stemmer == nil {
		stemmer = semantic.NewStemmer(3, "mosfet", "ldo", "mcu", "bjt")
	}
	hints := make(map[string]types.ComponentType, len(categoryWords))
	for word, t := range categoryWords {
		hints[stemmer.Stem(word)] = t
	}
	return &Scanner{stemmer: stemmer, hints: hints}
}

type token struct {
	text   string
	offset int
}

// Scan returns candidates in order of first appearance, de-duplicated by normalized
// MPN.
func (s *Scanner) Scan(text string) []Candidate {
	locs := tokenPattern.FindAllStringIndex(text, -1)
	tokens := make([]token, len(locs))
	for i, loc := range locs {
		tokens[i] = token{text: strings.TrimRight(text[loc[0]:loc[1]], "."), offset: loc[0]}
	}

	var out []Candidate
	seen := make(map[string]bool)
	for i, tok := range tokens {
		norm := StripPackaging(Normalize(tok.text))
		if !looksLikePart(norm) || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, Candidate{
			Text:   tok.text,
			MPN:    norm,
			Offset: tok.offset,
			Hint:   s.nearestHint(tokens, i),
		})
	}
	return out
}

// nearestHint looks outward from token i for a category word, preferring the closer
// one and, at equal distance, the following word ("LM358 op-amp").
func (s *Scanner) nearestHint(tokens []token, i int) types.ComponentType {
	for d := 1; d <= hintWindow; d++ {
		for _, j := range []int{i + d, i - d} {
			if j < 0 || j >= len(tokens) {
				continue
			}
			if t, ok := s.hints[s.stemmer.Stem(tokens[j].text)]; ok {
				return t
			}
		}
	}
	return ""
}

func looksLikePart(norm string) bool {
	if len(norm) < 4 || valuePattern.MatchString(norm) {
		return false
	}
	var letters, digits int
	for _, r := range norm {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r >= 'A' && r <= 'Z':
			letters++
		}
	}
	if digits == 0 {
		return false
	}
	// Catalogue numbers like 22-23-2021 are all digits and dashes
	return letters > 0 || strings.Contains(norm, "-")
}
