package handlers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/standardbeagle/mpnkit/internal/types"
)

var onsemiDiscretePackages = newCodeTable(map[string]string{
	"MMBT": "SOT-23",
	"PN":   "TO-92",
	"BC54": "TO-92",
	"BC55": "TO-92",
	"BC8":  "SOT-23",
	"NTD":  "D-PAK",
	"NTR":  "SOT-23",
	"NTB":  "D2PAK",
	"FDN":  "SOT-23",
	"FDS":  "SOIC-8",
	"FQP":  "TO-220",
	"FQD":  "D-PAK",
	"FQU":  "I-PAK",
	"FQB":  "D2PAK",
})

// onsemiOpAmpPackages are the complete suffixes after the op-amp series.
var onsemiOpAmpPackages = newCodeTable(map[string]string{
	"DMR2G":  "Micro8",
	"DR2G":   "SOIC",
	"DR2":    "SOIC",
	"DG":     "SOIC",
	"D":      "SOIC",
	"PG":     "PDIP",
	"P":      "PDIP",
	"NG":     "PDIP",
	"N":      "PDIP",
	"DTBG":   "TSSOP",
	"DTBR2G": "TSSOP",
})

var onsemiDiscreteSeries = regexp.MustCompile(`^(MMBT\d{4}|PN\d{4}|BC\d{3}|NT[DRB]\d{3,5}[NP]?|FD[NS]\d{3,4}[NP]?|FQ[PDUB]\d{1,2}N\d{2})`)

// Onsemi handles onsemi (and legacy Fairchild/Motorola) small-signal transistors,
// MOSFETs and op-amps.
type Onsemi struct {
	base
}

func NewOnsemi() *Onsemi {
	return &Onsemi{base: newBase("onsemi",
		def(types.TransistorOnsemi, `^MMBT\d{4}`, `^PN\d{4}`, `^BC(54[6-9]|55[6-9]|8[0-5]\d)`),
		def(types.MOSFETOnsemi, `^NT[DRB]\d{3,5}`, `^FD[NS]\d{3,4}`, `^FQ[PDUB]\d{1,2}N\d{2}`),
		// onsemi LM358-class parts carry a G (Pb-free) suffix that TI parts do not.
		def(types.OpAmpOnsemi, `^MC(1458|33078|33079|3403|3407[124])`, `^LM(358|324|2904|2902)A?(D|DR2|DMR2|N|DT|DTB|DTBR2)G$`),
	)}
}

func (h *Onsemi) ExtractPackageCode(m string) (string, bool) {
	if op, ok := splitOpAmp(m); ok {
		rest := op.rest
		if len(rest) > 0 && rest[0] == 'A' {
			rest = rest[1:]
		}
		name, ok := onsemiOpAmpPackages.exact(rest)
		if !ok {
			return "", false
		}
		if name == "Micro8" {
			return name, true
		}
		return packageWithPins(name, pinsForChannels(op.channels)), true
	}
	if e, ok := onsemiDiscretePackages.prefix(m); ok {
		return e.value, true
	}
	return "", false
}

func (h *Onsemi) ExtractSeries(m string) (string, bool) {
	if op, ok := splitOpAmp(m); ok {
		return op.series, true
	}
	if sm := onsemiDiscreteSeries.FindStringSubmatch(m); sm != nil {
		return sm[1], true
	}
	return "", false
}

func (h *Onsemi) Attributes(m string) types.Attributes {
	var a types.Attributes
	if op, ok := splitOpAmp(m); ok {
		a.Family = op.line
		a.Channels = op.channels
		a.PinCount = pinsForChannels(op.channels)
		return a
	}
	if e, ok := onsemiDiscretePackages.prefix(m); ok {
		a.Family = e.code
	}
	if sm := onsemiDiscreteSeries.FindStringSubmatch(m); sm != nil {
		onsemiRating(sm[1]).apply(&a)
	}
	return a
}

// onsemiRating decodes polarity and voltage from a discrete series. MMBT and PN
// parts reuse the JEDEC numbers; NT and FD parts end in their channel letter; FQ
// parts print the voltage in tens after the N.
func onsemiRating(series string) discreteRating {
	switch {
	case strings.HasPrefix(series, "MMBT"):
		return smallSignal[series[4:]]
	case strings.HasPrefix(series, "PN"):
		return smallSignal[series[2:]]
	case strings.HasPrefix(series, "BC"):
		return europeanSmallSignal[series[2:]]
	case strings.HasPrefix(series, "FQ"):
		i := strings.LastIndexByte(series, 'N')
		v, err := strconv.ParseFloat(series[i+1:], 64)
		if err != nil {
			return discreteRating{polarity: nch}
		}
		return discreteRating{nch, v * 10}
	}
	return discreteRating{polarity: channelPolarity(series[len(series)-1])}
}
