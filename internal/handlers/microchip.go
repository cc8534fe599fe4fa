package handlers

import (
	"regexp"
	"strconv"

	"github.com/standardbeagle/mpnkit/internal/types"
)

var (
	eepromPattern = regexp.MustCompile(`^(24|25|93)(AA|LC|FC|C)(\d{2,4})([A-Z0-9]*?)(?:-([IE]))?(?:/([A-Z]{1,2}))?$`)
	picPattern    = regexp.MustCompile(`^(PIC\d{2}[FL]\d{2,5}[A-Z]?)T?(?:-([IE])(?:/([A-Z]{1,2}))?)?`)
	avrPattern    = regexp.MustCompile(`^(AT(?:MEGA|TINY)\d{1,4}[A-Z]{0,2})(?:-(\d{2})?(PU|AU|MU|SU|XU|PN|AN|MN))?`)
)

var microchipSlashPackages = map[string]string{
	"P":  "PDIP-8",
	"SN": "SOIC-8",
	"SM": "SOIC-8 208mil",
	"ST": "TSSOP-8",
	"MS": "MSOP-8",
	"OT": "SOT-23-5",
	"MC": "DFN-8",
}

var picPackages = map[string]string{
	"P":  "PDIP",
	"SN": "SOIC",
	"SO": "SOIC",
	"SS": "SSOP",
	"ML": "QFN",
	"PT": "TQFP",
}

var avrPackages = map[string]string{
	"P": "PDIP",
	"A": "TQFP",
	"M": "QFN",
	"S": "SOIC",
	"X": "TSSOP",
}

// eepromSpeed is the maximum clock in MHz by technology code. FC parts run at 1 MHz,
// AA and LC at 400 kHz.
var eepromSpeed = map[string]float64{
	"FC": 1.0,
	"LC": 0.4,
	"AA": 0.4,
	"C":  0.1,
}

// microwireDensity maps 93xx codes to Kbit.
var microwireDensity = map[string]int64{
	"46": 1,
	"56": 2,
	"66": 4,
	"76": 8,
	"86": 16,
}

var microchipGrades = map[string]float64{
	"I": 85,
	"E": 125,
}

var eepromFamilies = map[string]string{
	"24": "24XX",
	"25": "25XX",
	"93": "93XX",
}

// Microchip handles serial EEPROMs, PIC microcontrollers and the former Atmel AVR line.
type Microchip struct {
	base
}

func NewMicrochip() *Microchip {
	return &Microchip{base: newBase("Microchip",
		def(types.MemoryMicrochip, `^(24|25|93)(AA|LC|FC|C)\d{2,4}`),
		def(types.MicrocontrollerMicrochip, `^PIC(1[0268]|24|32)[FL]\d{2,5}`, `^AT(MEGA|TINY)\d{1,4}`),
	)}
}

func (h *Microchip) ExtractPackageCode(m string) (string, bool) {
	if sm := eepromPattern.FindStringSubmatch(m); sm != nil {
		pkg, ok := microchipSlashPackages[sm[6]]
		return pkg, ok
	}
	if sm := picPattern.FindStringSubmatch(m); sm != nil {
		pkg, ok := picPackages[sm[3]]
		return pkg, ok
	}
	if sm := avrPattern.FindStringSubmatch(m); sm != nil && sm[3] != "" {
		pkg, ok := avrPackages[sm[3][:1]]
		return pkg, ok
	}
	return "", false
}

func (h *Microchip) ExtractSeries(m string) (string, bool) {
	if sm := eepromPattern.FindStringSubmatch(m); sm != nil {
		return sm[1] + sm[2] + sm[3], true
	}
	if sm := picPattern.FindStringSubmatch(m); sm != nil {
		return sm[1], true
	}
	if sm := avrPattern.FindStringSubmatch(m); sm != nil {
		return sm[1], true
	}
	return "", false
}

func (h *Microchip) Attributes(m string) types.Attributes {
	var a types.Attributes
	switch {
	case eepromPattern.MatchString(m):
		sm := eepromPattern.FindStringSubmatch(m)
		a.Family = eepromFamilies[sm[1]]
		a.SpeedMHz = types.Known(eepromSpeed[sm[2]])
		if g, ok := microchipGrades[sm[5]]; ok {
			a.TempRating = types.Known(g)
		}
		if kbit, ok := eepromKbit(sm[1], sm[3]); ok {
			a.DensityBits = kbit << 10
		}
	case picPattern.MatchString(m):
		sm := picPattern.FindStringSubmatch(m)
		a.Family = sm[1][:len("PIC16F")]
		if g, ok := microchipGrades[sm[2]]; ok {
			a.TempRating = types.Known(g)
		}
	case avrPattern.MatchString(m):
		sm := avrPattern.FindStringSubmatch(m)
		a.Family = alphaPrefix(sm[1])
		if sm[2] != "" {
			v, err := strconv.ParseFloat(sm[2], 64)
			a.SpeedMHz = quantity(h.name, "speed", m, v, err)
		}
	}
	return a
}

// eepromKbit decodes the density digits. 24/25 parts print Kbit directly (1025 is the
// 1 Mbit part); 93 parts use their own table.
func eepromKbit(bus, digits string) (int64, bool) {
	if bus == "93" {
		kbit, ok := microwireDensity[digits]
		return kbit, ok
	}
	if digits == "1025" {
		return 1024, true
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
