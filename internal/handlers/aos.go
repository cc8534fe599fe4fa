package handlers

import (
	"strings"

	"github.com/standardbeagle/mpnkit/internal/mpn"
	"github.com/standardbeagle/mpnkit/internal/types"
)

var aosPackages = newCodeTable(map[string]string{
	"AOTL": "TOLL",
	"AOTF": "TO-220F",
	"AONS": "DFN5x6",
	"AONR": "DFN3x3",
	"AON6": "DFN5x6",
	"AON7": "DFN3.3x3.3",
	"AON2": "DFN2x2",
	"AOD":  "TO-252",
	"AOT":  "TO-220",
	"AOB":  "TO-263",
	"AOI":  "TO-251A",
	"AOW":  "TO-262",
	"AOK":  "TO-247",
	"AO3":  "SOT-23",
	"AO4":  "SOIC-8",
	"AO6":  "TSOP-6",
	"AO7":  "SC-70",
})

// AOS handles Alpha & Omega Semiconductor power MOSFETs.
type AOS struct {
	base
}

func NewAOS() *AOS {
	return &AOS{base: newBase("AOS",
		def(types.MOSFETAOS, `^AO(TL|TF|NS|NR|N[267]|[DTBIWK])\d{3,5}`, `^AO[3467]\d{3}`),
	)}
}

func (h *AOS) ExtractPackageCode(m string) (string, bool) {
	e, ok := aosPackages.prefix(m)
	if !ok {
		return "", false
	}
	return e.value, true
}

// ExtractSeries drops "_xxx" packaging and one trailing revision letter.
func (h *AOS) ExtractSeries(m string) (string, bool) {
	if m == "" {
		return "", false
	}
	if i := strings.IndexByte(m, '_'); i > 0 {
		m = m[:i]
	}
	return stripRevision(mpn.StripPackaging(m)), true
}

func (h *AOS) Attributes(m string) types.Attributes {
	var a types.Attributes
	if e, ok := aosPackages.prefix(m); ok {
		a.Family = e.code
	}
	if r, ok := mosfetRatings.lookup(m); ok {
		r.apply(&a)
	}
	return a
}
