package handlers

import (
	"fmt"
	"regexp"

	"github.com/standardbeagle/mpnkit/internal/types"
	"github.com/standardbeagle/mpnkit/internal/units"
)

var nichiconPattern = regexp.MustCompile(`^U([A-Z]{2})(\d[A-Z]|YA)(\d{3}|\dR\d|R\d{2})([A-Z])([A-Z0-9]*)$`)

type nichiconSeries struct {
	temp     float64
	lifetime types.Lifetime
}

// nichiconSeriesTable gives the rated temperature and endurance class of each
// aluminium electrolytic series.
var nichiconSeriesTable = map[string]nichiconSeries{
	"VR": {85, types.LifetimeStandard},
	"VK": {85, types.LifetimeStandard},
	"VZ": {105, types.LifetimeStandard},
	"HE": {105, types.LifetimeLong},
	"HW": {105, types.LifetimeLong},
	"PW": {105, types.LifetimeLong},
	"PM": {105, types.LifetimeLong},
	"HV": {105, types.LifetimeLong},
	"BT": {125, types.LifetimeLong},
	"HS": {135, types.LifetimeLong},
	"WT": {105, types.LifetimeStandard},
	"WX": {85, types.LifetimeStandard},
	"CD": {105, types.LifetimeStandard},
	"UD": {105, types.LifetimeStandard},
}

// Nichicon handles aluminium electrolytic capacitors: U + series + voltage code +
// capacitance code in µF + tolerance + configuration.
type Nichicon struct {
	base
}

func NewNichicon() *Nichicon {
	return &Nichicon{base: newBase("Nichicon",
		def(types.CapacitorNichicon, `^U(VR|VZ|VK|HE|HW|PW|PM|HV|BT|HS|WT|WX|CD|UD)(\d[A-Z]|YA)(\d{3}|\dR\d)[A-Z]`),
	)}
}

// ExtractPackageCode reports the construction: P and T configurations are radial
// leads, C configurations are surface-mount chips.
func (h *Nichicon) ExtractPackageCode(m string) (string, bool) {
	sm := nichiconPattern.FindStringSubmatch(m)
	if sm == nil || sm[5] == "" {
		return "", false
	}
	switch sm[5][0] {
	case 'P', 'T':
		return "Radial", true
	case 'C':
		return "SMD", true
	}
	return "", false
}

func (h *Nichicon) ExtractSeries(m string) (string, bool) {
	sm := nichiconPattern.FindStringSubmatch(m)
	if sm == nil {
		return "", false
	}
	return "U" + sm[1] + sm[2] + sm[3], true
}

func (h *Nichicon) Attributes(m string) types.Attributes {
	var a types.Attributes
	sm := nichiconPattern.FindStringSubmatch(m)
	if sm == nil {
		return a
	}
	a.Family = "U" + sm[1]
	if s, ok := nichiconSeriesTable[sm[1]]; ok {
		a.TempRating = types.Known(s.temp)
		a.Lifetime = s.lifetime
	}
	v, err := units.ParseVoltageCode(sm[2])
	a.VoltageRating = quantity(h.name, "voltage", m, v, err)
	c, err := units.ParseEIA(sm[3], 1e-6, units.Farad)
	a.Capacitance = quantity(h.name, "capacitance", m, c, err)
	t, err := units.ParseToleranceCode(sm[4])
	a.Tolerance = quantity(h.name, "tolerance", m, t, err)
	return a
}

var murataPattern = regexp.MustCompile(`^GRM(\d{2})([0-9A-Z])([0-9A-Z]{2})(\d[A-Z]|YA)(\d{3}|\dR\d|R\d{2})([A-Z])([A-Z0-9]{2,3})?([A-Z])?$`)

var murataSizes = map[string]string{
	"03": "0201",
	"15": "0402",
	"18": "0603",
	"21": "0805",
	"31": "1206",
	"32": "1210",
	"43": "1812",
	"55": "2220",
}

type murataDielectric struct {
	dielectric types.Dielectric
	temp       float64
}

var murataDielectrics = map[string]murataDielectric{
	"5C": {types.DielectricC0G, 125},
	"R7": {types.DielectricX7R, 125},
	"R6": {types.DielectricX5R, 85},
	"F5": {types.DielectricY5V, 85},
}

// Murata handles GRM multilayer ceramic capacitors.
type Murata struct {
	base
}

func NewMurata() *Murata {
	return &Murata{base: newBase("Murata",
		def(types.CapacitorMurata, `^GRM\d{2}[0-9A-Z]{3}(\d[A-Z]|YA)`),
	)}
}

func (h *Murata) ExtractPackageCode(m string) (string, bool) {
	sm := murataPattern.FindStringSubmatch(m)
	if sm == nil {
		return "", false
	}
	size, ok := murataSizes[sm[1]]
	return size, ok
}

// ExtractSeries keeps everything that defines the capacitor electrically: size,
// thickness, dielectric, voltage and capacitance.
func (h *Murata) ExtractSeries(m string) (string, bool) {
	sm := murataPattern.FindStringSubmatch(m)
	if sm == nil {
		return "", false
	}
	return "GRM" + sm[1] + sm[2] + sm[3] + sm[4] + sm[5], true
}

func (h *Murata) Attributes(m string) types.Attributes {
	var a types.Attributes
	sm := murataPattern.FindStringSubmatch(m)
	if sm == nil {
		return a
	}
	a.Family = "GRM" + sm[1]
	if d, ok := murataDielectrics[sm[3]]; ok {
		a.Dielectric = d.dielectric
		a.TempRating = types.Known(d.temp)
	}
	v, err := units.ParseVoltageCode(sm[4])
	a.VoltageRating = quantity(h.name, "voltage", m, v, err)
	c, err := units.ParseEIA(sm[5], 1e-12, units.Farad)
	a.Capacitance = quantity(h.name, "capacitance", m, c, err)
	t, err := units.ParseToleranceCode(sm[6])
	a.Tolerance = quantity(h.name, "tolerance", m, t, err)
	return a
}

var yageoPattern = regexp.MustCompile(`^RC(\d{4})([BCDFGJ])([RKPS])-(\d{2})([0-9RKM]+)L$`)

// Yageo handles RC-series thick-film chip resistors: RC0603FR-0710KL is an 0603, 1 %,
// paper-tape, 7" reel, 10 kΩ part.
type Yageo struct {
	base
}

func NewYageo() *Yageo {
	return &Yageo{base: newBase("Yageo",
		def(types.ResistorYageo, `^RC\d{4}[BCDFGJ][RKPS]-\d{2}`),
	)}
}

func (h *Yageo) ExtractPackageCode(m string) (string, bool) {
	sm := yageoPattern.FindStringSubmatch(m)
	if sm == nil {
		return "", false
	}
	return sm[1], true
}

// ExtractSeries drops the packaging letter and reel code.
func (h *Yageo) ExtractSeries(m string) (string, bool) {
	sm := yageoPattern.FindStringSubmatch(m)
	if sm == nil {
		return "", false
	}
	return fmt.Sprintf("RC%s%s-%s", sm[1], sm[2], sm[5]), true
}

func (h *Yageo) Attributes(m string) types.Attributes {
	var a types.Attributes
	sm := yageoPattern.FindStringSubmatch(m)
	if sm == nil {
		return a
	}
	a.Family = "RC"
	t, err := units.ParseToleranceCode(sm[2])
	a.Tolerance = quantity(h.name, "tolerance", m, t, err)
	r, err := units.Parse(sm[5], units.Ohm)
	a.Resistance = quantity(h.name, "resistance", m, r, err)
	return a
}
