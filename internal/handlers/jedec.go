package handlers

import (
	"regexp"
	"strconv"

	"github.com/standardbeagle/mpnkit/internal/types"
)

var jedecDiodes = map[string]struct {
	pkg     string
	reverse float64
}{
	"1N4001": {"DO-41", 50},
	"1N4002": {"DO-41", 100},
	"1N4003": {"DO-41", 200},
	"1N4004": {"DO-41", 400},
	"1N4005": {"DO-41", 600},
	"1N4006": {"DO-41", 800},
	"1N4007": {"DO-41", 1000},
	"1N4148": {"DO-35", 100},
	"1N5817": {"DO-41", 20},
	"1N5818": {"DO-41", 30},
	"1N5819": {"DO-41", 40},
}

var jedecTransistorPackages = map[string]string{
	"2N2222": "TO-18",
	"2N2907": "TO-18",
	"2N3904": "TO-92",
	"2N3906": "TO-92",
	"2N4401": "TO-92",
	"2N4403": "TO-92",
	"2N7000": "TO-92",
	"2N7002": "SOT-23",
	"BS170":  "TO-92",
}

// regulatorPackages are the suffixes after the grade letter of 78xx regulators.
var regulatorPackages = map[string]string{
	"T":   "TO-220",
	"V":   "TO-220",
	"KC":  "TO-220",
	"KCS": "TO-220",
	"DT":  "D-PAK",
	"D2T": "D2PAK",
	"Z":   "TO-92",
	"LP":  "TO-92",
	"D":   "SOIC-8",
}

var (
	jedecDiodeSeries     = regexp.MustCompile(`^1N\d{4}`)
	jedecDiscreteSeries  = regexp.MustCompile(`^(2N\d{4}|BS170)([A-Z]?)`)
	jedecRegulatorSeries = regexp.MustCompile(`^((?:LM|UA|MC|L|KA)?78(M|L)?(\d{2}))(.*)$`)
	jedecLogicMakers     = map[string]bool{"": true, "SN": true, "DM": true, "MC": true, "HD": true, "CD": true, "MM": true, "M": true, "N": true}
)

// JEDEC handles industry-standard numbers second-sourced by many makers: 1N diodes,
// 2N transistors, bare 74/54 logic and 78xx regulators. It claims base types only.
type JEDEC struct {
	base
}

func NewJEDEC() *JEDEC {
	return &JEDEC{base: newBase("JEDEC",
		def(types.Diode, `^1N400[1-7]`, `^1N4148`, `^1N581[7-9]`, `^1N47[2-6]\d`),
		def(types.Transistor, `^2N(2222|3904|3906|4401|4403|2907)`),
		def(types.MOSFET, `^2N700[02]`, `^BS170`),
		def(types.LogicIC, `^(SN|DM|MC|HD|CD|MM|M|N)?(74|54)[A-Z]{0,4}(\d[GT]\d|\d{2})`),
		def(types.VoltageRegulator, `^(LM|UA|MC|L|KA)?78(M|L)?\d{2}`),
	)}
}

// Matches additionally requires logic parts to decode with a known maker prefix.
func (h *JEDEC) Matches(m string, t types.ComponentType) bool {
	if !h.base.Matches(m, t) {
		return false
	}
	if t == types.LogicIC {
		lp, ok := ParseLogic(m)
		return ok && jedecLogicMakers[lp.Maker]
	}
	return true
}

func (h *JEDEC) ExtractPackageCode(m string) (string, bool) {
	t, ok := h.matchedType(m)
	if !ok {
		return "", false
	}
	switch t {
	case types.Diode:
		if d, ok := jedecDiodes[jedecDiodeSeries.FindString(m)]; ok {
			return d.pkg, true
		}
		if len(m) >= 6 && m[:4] == "1N47" {
			return "DO-41", true
		}
	case types.Transistor, types.MOSFET:
		if sm := jedecDiscreteSeries.FindStringSubmatch(m); sm != nil {
			pkg, ok := jedecTransistorPackages[sm[1]]
			return pkg, ok
		}
	case types.LogicIC:
		if lp, ok := ParseLogic(m); ok {
			pkg, _, ok := lookupTIPackage(lp.Suffix, lp.pins())
			return pkg, ok
		}
	case types.VoltageRegulator:
		if sm := jedecRegulatorSeries.FindStringSubmatch(m); sm != nil {
			rest := sm[4]
			if pkg, ok := regulatorPackages[rest]; ok {
				return pkg, true
			}
			if _, r, ok := splitGrade(rest); ok {
				pkg, ok := regulatorPackages[r]
				return pkg, ok
			}
		}
	}
	return "", false
}

func (h *JEDEC) ExtractSeries(m string) (string, bool) {
	t, ok := h.matchedType(m)
	if !ok {
		return "", false
	}
	switch t {
	case types.Diode:
		return jedecDiodeSeries.FindString(m), true
	case types.Transistor, types.MOSFET:
		if sm := jedecDiscreteSeries.FindStringSubmatch(m); sm != nil {
			return sm[1], true
		}
	case types.LogicIC:
		if lp, ok := ParseLogic(m); ok {
			return lp.Series(), true
		}
	case types.VoltageRegulator:
		if sm := jedecRegulatorSeries.FindStringSubmatch(m); sm != nil {
			return sm[1], true
		}
	}
	return "", false
}

func (h *JEDEC) Attributes(m string) types.Attributes {
	var a types.Attributes
	t, ok := h.matchedType(m)
	if !ok {
		return a
	}
	switch t {
	case types.Diode:
		if d, ok := jedecDiodes[jedecDiodeSeries.FindString(m)]; ok {
			a.ReverseVoltage = types.Known(d.reverse)
		}
		a.Family = "1N"
	case types.Transistor, types.MOSFET:
		a.Family = alphaPrefix(m)
		if a.Family == "" {
			a.Family = "2N"
		}
		if sm := jedecDiscreteSeries.FindStringSubmatch(m); sm != nil {
			if sm[1] == "BS170" {
				discreteRating{nch, 60}.apply(&a)
			} else if r, ok := smallSignal[sm[1][2:]]; ok {
				r.apply(&a)
			}
		}
	case types.LogicIC:
		if lp, ok := ParseLogic(m); ok {
			a.Family = lp.Range
			a.Function = lp.Function
			a.LogicFamily = lp.Family
			a.PinCount = lp.pins()
			a.TempRating = types.Known(lp.TempRating())
		}
	case types.VoltageRegulator:
		if sm := jedecRegulatorSeries.FindStringSubmatch(m); sm != nil {
			a.Family = "78" + sm[2]
			v, err := strconv.ParseFloat(sm[3], 64)
			a.OutputVoltage = quantity(h.name, "output voltage", m, v, err)
			if g, _, ok := splitGrade(sm[4]); ok && g > 0 {
				a.TempRating = types.Known(g)
			}
		}
	}
	return a
}
