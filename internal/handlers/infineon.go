package handlers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/standardbeagle/mpnkit/internal/mpn"
	"github.com/standardbeagle/mpnkit/internal/types"
)

var infineonPackages = newCodeTable(map[string]string{
	"IRLML": "SOT-23",
	"IRFP":  "TO-247",
	"IRFB":  "TO-220",
	"IRFR":  "D-PAK",
	"IRLR":  "D-PAK",
	"IRFU":  "I-PAK",
	"IRLU":  "I-PAK",
	"IRFS":  "D2PAK",
	"IRFZ":  "TO-220",
	"IRLZ":  "TO-220",
	"IPP":   "TO-220",
	"IPB":   "D2PAK",
	"IPD":   "D-PAK",
	"IPI":   "I2PAK",
	"IPW":   "TO-247",
	"IPA":   "TO-220FP",
	"BSC":   "SuperSO8",
})

var (
	// IRF7xxx four-digit parts are SO-8; IRF5xx and friends are TO-220 unless an S
	// (D2PAK) or L (TO-262) follows the revision.
	infineonSO8     = regexp.MustCompile(`^IR[FL]7\d{3}`)
	infineonClassic = regexp.MustCompile(`^IR[FL]\d{3,4}N?([SL])?$`)
	// IPP060N06N: the two digits after the channel letter are the voltage in tens.
	infineonOptiMOS = regexp.MustCompile(`^((?:IP[PBDIWA]|BSC)\d{2,3}([NP])(\d{2}))`)
)

// Infineon handles International Rectifier (IRF/IRL) and OptiMOS (IPx, BSC) MOSFETs.
type Infineon struct {
	base
}

func NewInfineon() *Infineon {
	return &Infineon{base: newBase("Infineon",
		def(types.MOSFETInfineon, `^IR[FL][A-Z]{0,2}\d`, `^IP[PBDIWA]\d{2,3}[NP]\d{2}`, `^BSC\d{3}[NP]\d{2}`),
	)}
}

// trimInfineonPackaging removes lead-free and reel suffixes, including the bare TR
// and TRL/TRR reel codes IR prints without a dash.
func trimInfineonPackaging(m string) string {
	m = mpn.StripPackaging(m)
	for _, s := range []string{"TRL", "TRR", "TR"} {
		if len(m) > len(s)+3 && strings.HasSuffix(m, s) {
			m = m[:len(m)-len(s)]
			break
		}
	}
	return m
}

func (h *Infineon) ExtractPackageCode(m string) (string, bool) {
	core := trimInfineonPackaging(m)
	if infineonSO8.MatchString(core) {
		return "SO-8", true
	}
	if e, ok := infineonPackages.prefix(core); ok {
		return e.value, true
	}
	if sm := infineonClassic.FindStringSubmatch(core); sm != nil {
		switch sm[1] {
		case "S":
			return "D2PAK", true
		case "L":
			return "TO-262", true
		}
		return "TO-220", true
	}
	return "", false
}

// ExtractSeries strips packaging and the N/S/L revision letters: IRF530NSTRLPBF
// gives IRF530.
func (h *Infineon) ExtractSeries(m string) (string, bool) {
	if m == "" {
		return "", false
	}
	if sm := infineonOptiMOS.FindStringSubmatch(m); sm != nil {
		return sm[1], true
	}
	core := trimInfineonPackaging(m)
	for _, rev := range []byte{'S', 'L', 'N'} {
		n := len(core)
		if n > 4 && core[n-1] == rev && (isDigit(core[n-2]) || core[n-2] == 'N') {
			core = core[:n-1]
		}
	}
	return core, true
}

func (h *Infineon) Attributes(m string) types.Attributes {
	var a types.Attributes
	if sm := infineonOptiMOS.FindStringSubmatch(m); sm != nil {
		a.Polarity = channelPolarity(sm[2][0])
		v, err := strconv.ParseFloat(sm[3], 64)
		a.VoltageRating = quantity(h.name, "voltage", m, v*10, err)
	} else if r, ok := mosfetRatings.lookup(trimInfineonPackaging(m)); ok {
		r.apply(&a)
	}
	if e, ok := infineonPackages.prefix(m); ok {
		a.Family = e.code
	} else {
		a.Family = alphaPrefix(m)
	}
	return a
}
