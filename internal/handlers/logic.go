package handlers

import (
	"regexp"
	"strings"
)

// logicPattern decodes 74/54-series part numbers: maker prefix, temperature range,
// technology family, function and package suffix. Longer family codes are listed
// before their prefixes so HCT is not read as HC.
var logicPattern = regexp.MustCompile(`^([A-Z]{0,3}?)(74|54)(AHCT|AHC|ALVC|ALS|ACT|AC|ABT|AUP|AS|BCT|FCT|GTLP|GTL|HCT|HC|LVC|LVT|LVX|LV|LS|C|F|H|L|S)?(\d[GT]\d{2,3}|\d{2,4})([A-Z0-9-]*)$`)

// LogicPart is a decoded 74/54-series MPN.
type LogicPart struct {
	Maker    string
	Range    string // "74" commercial, "54" military
	Family   string
	Function string
	Suffix   string
}

// Series is the part without packaging: SN74HC00N gives SN74HC00.
func (p LogicPart) Series() string {
	return p.Maker + p.Range + p.Family + p.Function
}

// TempRating is 125 °C for military 54-series parts and 70 °C otherwise.
func (p LogicPart) TempRating() float64 {
	if p.Range == "54" {
		return 125
	}
	return 70
}

// ParseLogic decodes a normalized 74/54-series MPN.
func ParseLogic(m string) (LogicPart, bool) {
	sm := logicPattern.FindStringSubmatch(m)
	if sm == nil {
		return LogicPart{}, false
	}
	return LogicPart{
		Maker:    sm[1],
		Range:    sm[2],
		Family:   sm[3],
		Function: sm[4],
		Suffix:   cleanSuffix(sm[5]),
	}, true
}

var logicPins = map[string]int{
	"138": 16, "139": 16, "151": 16, "153": 16, "157": 16, "161": 16, "163": 16,
	"164": 14, "165": 16, "166": 16, "193": 16, "283": 16, "595": 16, "4051": 16,
	"4052": 16, "4053": 16, "4060": 16,
	"240": 20, "244": 20, "245": 20, "273": 20, "373": 20, "374": 20, "540": 20,
	"541": 20, "573": 20, "574": 20,
}

func (p LogicPart) pins() int {
	if strings.ContainsAny(p.Function[1:2], "GT") {
		return 5
	}
	if n, ok := logicPins[p.Function]; ok {
		return n
	}
	return 14
}

// cleanSuffix drops separators and the lead-finish codes (E4, G4, E3) that TI and
// others append after the package.
func cleanSuffix(s string) string {
	s = strings.Trim(s, "-")
	for _, fin := range []string{"E4", "G4", "E3"} {
		if len(s) > len(fin) && strings.HasSuffix(s, fin) {
			s = s[:len(s)-len(fin)]
			break
		}
	}
	return strings.TrimRight(s, "-")
}
