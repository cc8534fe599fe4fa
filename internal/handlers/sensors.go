package handlers

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/mpnkit/internal/types"
)

var boschKinds = map[byte]types.SensorKind{
	'A': types.SensorKindAccelerometer,
	'P': types.SensorKindPressure,
	'E': types.SensorKindHumidity,
	'I': types.SensorKindIMU,
	'M': types.SensorKindMagnetometer,
}

var boschSeries = regexp.MustCompile(`^BM[APEIM]\d{3}`)

// Bosch handles Bosch Sensortec BMx sensors. Their MPNs carry no package code.
type Bosch struct {
	base
}

func NewBosch() *Bosch {
	return &Bosch{base: newBase("Bosch", def(types.SensorBosch, `^BM[APEIM]\d{3}`))}
}

func (h *Bosch) ExtractPackageCode(string) (string, bool) { return "", false }

func (h *Bosch) ExtractSeries(m string) (string, bool) {
	s := boschSeries.FindString(m)
	return s, s != ""
}

func (h *Bosch) Attributes(m string) types.Attributes {
	var a types.Attributes
	s := boschSeries.FindString(m)
	if s == "" {
		return a
	}
	a.SensorKind = boschKinds[s[2]]
	a.Family = lineFamily(s)
	return a
}

var (
	sensirionSeries   = regexp.MustCompile(`^(SHT[2-4]\d|SHTC\d|STS\d{2}|SGP\d{2})`)
	sensirionPackages = map[string]string{
		"DIS":  "DFN-8",
		"AD1B": "DFN-4",
		"BD1B": "DFN-4",
	}
)

// Sensirion handles SHT humidity, STS temperature and SGP gas sensors. The package
// follows the first dash: SHT31-DIS-B, SHT40-AD1B-R3.
type Sensirion struct {
	base
}

func NewSensirion() *Sensirion {
	return &Sensirion{base: newBase("Sensirion",
		def(types.SensorSensirion, `^SHT[2-4]\d`, `^SHTC\d`, `^STS\d{2}`, `^SGP\d{2}`),
	)}
}

func (h *Sensirion) ExtractPackageCode(m string) (string, bool) {
	parts := strings.Split(m, "-")
	if len(parts) < 2 {
		return "", false
	}
	pkg, ok := sensirionPackages[parts[1]]
	return pkg, ok
}

func (h *Sensirion) ExtractSeries(m string) (string, bool) {
	s := sensirionSeries.FindString(m)
	return s, s != ""
}

func (h *Sensirion) Attributes(m string) types.Attributes {
	var a types.Attributes
	s := sensirionSeries.FindString(m)
	switch {
	case s == "":
		return a
	case strings.HasPrefix(s, "SHT"):
		a.SensorKind = types.SensorKindHumidity
	case strings.HasPrefix(s, "STS"):
		a.SensorKind = types.SensorKindTemperature
	case strings.HasPrefix(s, "SGP"):
		a.SensorKind = types.SensorKindGas
	}
	a.Family = lineFamily(s)
	return a
}

var (
	adiSeries     = regexp.MustCompile(`^(ADXL3\d{2}|TMP3[5-7]|ADT7\d{3})(.*)$`)
	adiReelSuffix = regexp.MustCompile(`-(RL7|RL|REEL7|REEL)$`)
	adiPackages   = map[string]string{
		"BCCZ": "LGA-14",
		"BCPZ": "LFCSP-16",
		"ACPZ": "LFCSP-16",
		"GT9":  "TO-92",
		"GRT":  "SOT-23-5",
		"GS":   "SOIC-8",
		"UCP":  "LFCSP-16",
		"TR":   "SOIC-8",
	}
)

// ADI handles Analog Devices accelerometers and temperature sensors.
type ADI struct {
	base
}

func NewADI() *ADI {
	return &ADI{base: newBase("ADI",
		def(types.SensorADI, `^ADXL3\d{2}`, `^TMP3[5-7]`, `^ADT7\d{3}`),
	)}
}

func (h *ADI) split(m string) (series, rest string, ok bool) {
	sm := adiSeries.FindStringSubmatch(m)
	if sm == nil {
		return "", "", false
	}
	return sm[1], adiReelSuffix.ReplaceAllString(sm[2], ""), true
}

func (h *ADI) ExtractPackageCode(m string) (string, bool) {
	series, rest, ok := h.split(m)
	if !ok {
		return "", false
	}
	if !strings.HasPrefix(series, "ADXL") {
		// trailing Z marks RoHS parts
		rest = strings.TrimSuffix(rest, "Z")
	}
	pkg, ok := adiPackages[rest]
	return pkg, ok
}

func (h *ADI) ExtractSeries(m string) (string, bool) {
	series, _, ok := h.split(m)
	return series, ok
}

func (h *ADI) Attributes(m string) types.Attributes {
	var a types.Attributes
	series, _, ok := h.split(m)
	if !ok {
		return a
	}
	a.SensorKind = types.SensorKindTemperature
	if strings.HasPrefix(series, "ADXL") {
		a.SensorKind = types.SensorKindAccelerometer
	}
	a.Family = lineFamily(series)
	return a
}
