package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/standardbeagle/mpnkit/internal/types"
)

type tiPackage struct {
	name string
	// pinned packages come in several pin counts; the count is appended.
	pinned bool
}

// tiPackages maps TI package designators, with and without the R reel letter.
var tiPackages = map[string]tiPackage{
	"D":    {"SOIC", true},
	"DR":   {"SOIC", true},
	"N":    {"PDIP", true},
	"P":    {"PDIP-8", false},
	"PA":   {"PDIP-8", false},
	"PW":   {"TSSOP", true},
	"PWR":  {"TSSOP", true},
	"DGK":  {"VSSOP-8", false},
	"DGKR": {"VSSOP-8", false},
	"DBV":  {"SOT-23-5", false},
	"DBVR": {"SOT-23-5", false},
	"DCK":  {"SC70-5", false},
	"DCKR": {"SC70-5", false},
	"NS":   {"SOP", true},
	"NSR":  {"SOP", true},
	"DB":   {"SSOP", true},
	"DBR":  {"SSOP", true},
	"J":    {"CDIP", true},
	"W":    {"CFP", true},
	"LP":   {"TO-92", false},
	"LPR":  {"TO-92", false},
	"KC":   {"TO-220", false},
	"KCS":  {"TO-220", false},
	"KCT":  {"TO-220", false},
	"T":    {"TO-220", false},
	"KTT":  {"TO-263", false},
	"KTTR": {"TO-263", false},
	"DCY":  {"SOT-223", false},
	"DCYR": {"SOT-223", false},
	"MP":   {"SOT-223", false},
	"MPX":  {"SOT-223", false},
	"DRV":  {"WSON-6", false},
	"DRVR": {"WSON-6", false},
	"DRL":  {"SOT-563", false},
	"DRLR": {"SOT-563", false},
	"DMB":  {"WSON-6", false},
	"DMBR": {"WSON-6", false},
}

func packageWithPins(name string, pins int) string {
	if pins > 0 {
		return fmt.Sprintf("%s-%d", name, pins)
	}
	return name
}

// lookupTIPackage resolves the text after a TI series. The whole remainder is tried as
// a package first; otherwise a leading temperature grade is split off.
func lookupTIPackage(rest string, pins int) (pkg string, grade float64, ok bool) {
	rest = cleanSuffix(rest)
	if p, found := tiPackages[rest]; found {
		return tiPackageName(p, pins), 0, true
	}
	g, remainder, found := splitGrade(rest)
	if !found {
		return "", 0, false
	}
	if p, ok := tiPackages[remainder]; ok {
		return tiPackageName(p, pins), g, true
	}
	return "", g, false
}

func tiPackageName(p tiPackage, pins int) string {
	if p.pinned {
		return packageWithPins(p.name, pins)
	}
	return p.name
}

var (
	tiRegulatorPattern = regexp.MustCompile(`^((?:LM|UA)78(M|L)?(\d{2})|LM317|LM1117|TLV1117)(.*)$`)
	tiSensorPattern    = regexp.MustCompile(`^(TMP\d{2,3}|LM35|LM75|HDC\d{4})(.*)$`)
	voltageToken       = regexp.MustCompile(`^(\d+\.\d+|\d{2}|ADJ)`)
)

// lm35Packages covers the National-style single-letter package codes used by LM35
// and LM75 after their accuracy grade.
var lm35Packages = map[string]string{
	"Z":   "TO-92",
	"M":   "SOIC-8",
	"IM":  "SOIC-8",
	"T":   "TO-220",
	"H":   "TO-46",
	"IMM": "VSSOP-8",
}

// TI handles Texas Instruments op-amps, SN74/SN54 logic, linear regulators and
// temperature/humidity sensors.
type TI struct {
	base
}

func NewTI() *TI {
	return &TI{base: newBase("TI",
		def(types.OpAmpTI,
			`^LM(358|258|158|324|224|124|2904|2902|741)(?:[A-Z]|$)`,
			`^TL0[78][124]`,
			`^NE553[24]`,
			`^OPA[24]?\d{3,4}`,
			`^TLV(9\d{2,3}|2\d{3})`),
		def(types.LogicICTI, `^SN(74|54)[A-Z]{0,4}(\d[GT]\d|\d{2})`),
		def(types.VoltageRegulatorTI, `^(LM|UA)78(M|L)?\d{2}`, `^LM317`, `^(LM|TLV)1117`),
		def(types.SensorTI, `^TMP(1\d{2}|2\d{2}|75)`, `^LM35(?:[A-Z]|/|$)`, `^LM75(?:[A-Z]|$)`, `^HDC(1080|20\d{2})`),
	)}
}

// tiPart is the decoded series, remainder and pin count of any TI MPN.
type tiPart struct {
	kind     types.ComponentType
	series   string
	rest     string
	pins     int
	opamp    opampPart
	logic    LogicPart
	regFam   string
	regVolts string
}

func (h *TI) split(m string) (tiPart, bool) {
	kind, ok := h.matchedType(m)
	if !ok {
		return tiPart{}, false
	}
	p := tiPart{kind: kind}
	switch kind {
	case types.OpAmpTI:
		op, ok := splitOpAmp(m)
		if !ok {
			return tiPart{}, false
		}
		p.opamp, p.series, p.rest, p.pins = op, op.series, op.rest, pinsForChannels(op.channels)
	case types.LogicICTI:
		lp, ok := ParseLogic(m)
		if !ok || lp.Maker != "SN" {
			return tiPart{}, false
		}
		p.logic, p.series, p.rest, p.pins = lp, lp.Series(), lp.Suffix, lp.pins()
	case types.VoltageRegulatorTI:
		sm := tiRegulatorPattern.FindStringSubmatch(m)
		if sm == nil {
			return tiPart{}, false
		}
		p.series, p.rest = sm[1], sm[4]
		if sm[3] != "" {
			p.regFam, p.regVolts = "78"+sm[2], sm[3]
		} else {
			p.regFam = strings.TrimPrefix(strings.TrimPrefix(sm[1], "TLV"), "LM")
			if p.regFam == "317" {
				p.regFam = "LM317"
			}
			p.rest, p.regVolts = splitVoltageOption(sm[4])
		}
	case types.SensorTI:
		sm := tiSensorPattern.FindStringSubmatch(m)
		if sm == nil {
			return tiPart{}, false
		}
		p.series, p.rest, p.pins = sm[1], sm[2], 8
		if i := strings.IndexAny(p.rest, "-/"); i >= 0 {
			p.rest = p.rest[:i]
		}
	}
	return p, true
}

// splitVoltageOption separates a fixed-output option ("-3.3", "-33") from the grade and
// package letters around it.
func splitVoltageOption(rest string) (remainder, volts string) {
	i := strings.IndexByte(rest, '-')
	if i < 0 {
		return rest, ""
	}
	before, after := rest[:i], rest[i+1:]
	tok := voltageToken.FindString(after)
	remainder = before + after[len(tok):]
	if len(tok) == 2 && isDigit(tok[0]) && isDigit(tok[1]) {
		// tenths: TLV1117-33 is 3.3 V
		return remainder, tok[:1] + "." + tok[1:]
	}
	return remainder, tok
}

func (h *TI) ExtractPackageCode(m string) (string, bool) {
	p, ok := h.split(m)
	if !ok {
		return "", false
	}
	if p.kind == types.SensorTI && (p.series == "LM35" || p.series == "LM75") {
		rest := strings.TrimLeft(p.rest, "ABCD")
		if rest == "" {
			rest = p.rest
		}
		pkg, ok := lm35Packages[rest]
		return pkg, ok
	}
	pkg, _, ok := lookupTIPackage(p.rest, p.pins)
	return pkg, ok
}

func (h *TI) ExtractSeries(m string) (string, bool) {
	p, ok := h.split(m)
	if !ok {
		return "", false
	}
	return p.series, true
}

func (h *TI) Attributes(m string) types.Attributes {
	var a types.Attributes
	p, ok := h.split(m)
	if !ok {
		return a
	}

	if _, grade, _ := lookupTIPackage(p.rest, p.pins); grade > 0 {
		a.TempRating = types.Known(grade)
	}
	a.PinCount = p.pins

	switch p.kind {
	case types.OpAmpTI:
		a.Family = p.opamp.line
		a.Channels = p.opamp.channels
	case types.LogicICTI:
		a.Family = p.logic.Range
		a.Function = p.logic.Function
		a.LogicFamily = p.logic.Family
		a.TempRating = types.Known(p.logic.TempRating())
	case types.VoltageRegulatorTI:
		a.Family = p.regFam
		a.PinCount = 0
		if v, ok := regulatorVolts(p.regVolts); ok {
			a.OutputVoltage = types.Known(v)
		}
	case types.SensorTI:
		a.SensorKind = types.SensorKindTemperature
		if strings.HasPrefix(p.series, "HDC") {
			a.SensorKind = types.SensorKindHumidity
		}
		a.Family = lineFamily(p.series)
	}
	return a
}

// regulatorVolts decodes the output voltage of a fixed regulator: whole volts for 78xx
// codes, decimal for dash options.
func regulatorVolts(code string) (float64, bool) {
	switch {
	case code == "" || code == "ADJ":
		return 0, false
	case strings.Contains(code, "."):
		v, err := strconv.ParseFloat(code, 64)
		return v, err == nil
	}
	v, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}
	return float64(v), true
}
