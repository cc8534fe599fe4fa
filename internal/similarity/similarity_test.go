package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/mpnkit/internal/types"
)

func part(t types.ComponentType, series string, attrs ...func(*types.Attributes)) types.Classification {
	c := types.Classification{
		Input:   series,
		MPN:     series,
		Types:   []types.ComponentType{t.Base(), t},
		Primary: t,
	}
	c.Attributes.Series = series
	for _, f := range attrs {
		f(&c.Attributes)
	}
	return c
}

func channels(n int, line string) func(*types.Attributes) {
	return func(a *types.Attributes) {
		a.Channels = n
		a.Family = line
	}
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		score float64
		want  Band
	}{
		{1.0, BandExact},
		{0.95, BandHigh},
		{0.9, BandHigh},
		{0.7, BandMedium},
		{0.5, BandLow},
		{0.3, BandLow},
		{0.0, BandNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandOf(tt.score), "score %v", tt.score)
	}
}

func TestFamilyContainsRequiresNonDigitBoundary(t *testing.T) {
	f := Family{Name: "dual", Members: []string{"LM358", "MC1458"}}

	assert.True(t, f.Contains("LM358"))
	assert.True(t, f.Contains("LM358A"))
	assert.True(t, f.Contains("MC1458"))
	assert.False(t, f.Contains("LM3580"))
	assert.False(t, f.Contains("LM35"))
	assert.False(t, f.Contains(""))

	fs := Families{f, {Name: "quad", Members: []string{"LM324"}}}
	got, ok := fs.Of("LM324")
	require.True(t, ok)
	assert.Equal(t, "quad", got.Name)
	_, ok = fs.Shared("LM358", "LM324")
	assert.False(t, ok)
	assert.Equal(t, []string{"LM358", "MC1458", "LM324"}, fs.Members())
}

func TestCategoryGate(t *testing.T) {
	set := NewSet(nil)

	mosfet := part(types.MOSFETInfineon, "IRF530", func(a *types.Attributes) { a.PackageCode = "TO-92" })
	bjt := part(types.Transistor, "2N2222", func(a *types.Attributes) { a.PackageCode = "TO-92" })

	r := set.Score(mosfet, bjt)
	assert.Equal(t, None, r.Score)
	assert.Equal(t, BandNone, r.Band)
	assert.Equal(t, "category mismatch", r.Reason)

	// textual identity across categories is still None
	assert.Equal(t, None, set.Score(part(types.OpAmp, "X100"), part(types.Sensor, "X100")).Score)
	assert.Equal(t, None, set.Score(types.Classification{}, part(types.OpAmp, "LM358")).Score)
}

func TestOpAmpScores(t *testing.T) {
	set := NewSet(nil)

	tests := []struct {
		name string
		a, b types.Classification
		want float64
	}{
		{"same series", part(types.OpAmpTI, "LM358", channels(2, "LM35")), part(types.OpAmpOnsemi, "LM358", channels(2, "LM35")), Exact},
		{"dual family", part(types.OpAmpTI, "LM358", channels(2, "LM35")), part(types.OpAmpOnsemi, "MC1458", channels(2, "MC1458")), High},
		{"jfet dual family", part(types.OpAmpTI, "TL072", channels(2, "TL07")), part(types.OpAmpTI, "TL082", channels(2, "TL08")), High},
		{"same line different channels", part(types.OpAmpTI, "TL072", channels(2, "TL07")), part(types.OpAmpTI, "TL074", channels(4, "TL07")), Medium},
		{"bipolar dual and quad", part(types.OpAmpTI, "LM358", channels(2, "LM358")), part(types.OpAmpTI, "LM324", channels(4, "LM324")), Medium},
		{"automotive dual and quad", part(types.OpAmpTI, "LM2904", channels(2, "LM2904")), part(types.OpAmpTI, "LM2902", channels(4, "LM2902")), Medium},
		{"jfet dual and quad across lines", part(types.OpAmpTI, "TL072", channels(2, "TL07")), part(types.OpAmpTI, "TL084", channels(4, "TL08")), Medium},
		{"bipolar and jfet", part(types.OpAmpTI, "LM358", channels(2, "LM358")), part(types.OpAmpTI, "TL074", channels(4, "TL07")), Low},
		{"unrelated", part(types.OpAmpTI, "LM358", channels(2, "LM35")), part(types.OpAmpTI, "OPA2134", channels(2, "OPA134")), Low},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Score(tt.a, tt.b).Score)
			assert.Equal(t, tt.want, set.Score(tt.b, tt.a).Score, "families are symmetric")
		})
	}
}

func TestOpAmpChannelMismatchCapsFamily(t *testing.T) {
	c := OpAmp().withFamilies(Families{{Name: "mixed", Members: []string{"XA1", "XA4"}}})
	r := c.Score(part(types.OpAmp, "XA1", channels(1, "")), part(types.OpAmp, "XA4", channels(4, "")))
	assert.Equal(t, Medium, r.Score)
	assert.Equal(t, "channel count differs", r.Reason)
}

func TestSensorKindMismatchIsLow(t *testing.T) {
	set := NewSet(nil)
	kind := func(k types.SensorKind) func(*types.Attributes) {
		return func(a *types.Attributes) { a.SensorKind = k }
	}

	bmp := part(types.SensorBosch, "BMP280", kind(types.SensorKindPressure))
	bme := part(types.SensorBosch, "BME280", kind(types.SensorKindHumidity))
	bmp285 := part(types.SensorBosch, "BMP285", kind(types.SensorKindPressure))
	bmp388 := part(types.SensorBosch, "BMP388", kind(types.SensorKindPressure))

	assert.Equal(t, Low, set.Score(bmp, bme).Score)
	assert.Equal(t, High, set.Score(bmp, bmp285).Score)
	assert.Equal(t, Medium, set.Score(bmp, bmp388).Score)
}

func TestMemoryScores(t *testing.T) {
	set := NewSet(nil)
	mem := func(family string, bits int64, speed types.Quantity) func(*types.Attributes) {
		return func(a *types.Attributes) {
			a.Family = family
			a.DensityBits = bits
			a.SpeedMHz = speed
		}
	}

	a := part(types.MemoryWinbond, "W25Q128JV", mem("W25Q", 128<<20, types.Unknown))
	b := part(types.MemoryWinbond, "W25Q128FV", mem("W25Q", 128<<20, types.Unknown))
	c := part(types.MemoryWinbond, "W25Q64JV", mem("W25Q", 64<<20, types.Unknown))
	assert.Equal(t, High, set.Score(a, b).Score)
	assert.Equal(t, Low, set.Score(a, c).Score)

	lc := part(types.MemoryMicrochip, "24LC256", mem("24XX", 256<<10, types.Known(0.4)))
	fc := part(types.MemoryMicrochip, "24FC256", mem("24XX", 256<<10, types.Known(1.0)))
	aa := part(types.MemoryMicrochip, "24AA256", mem("24XX", 256<<10, types.Known(0.4)))
	assert.Equal(t, Medium, set.Score(lc, fc).Score)
	assert.Equal(t, High, set.Score(lc, aa).Score)

	// The SDRAM speed grade is not part of the series.
	fast := part(types.MemoryWinbond, "W9825G6KH", mem("W98", 256<<20, types.Known(166)))
	slow := part(types.MemoryWinbond, "W9825G6KH", mem("W98", 256<<20, types.Known(143)))
	r := set.Score(fast, slow)
	assert.Equal(t, Medium, r.Score)
	assert.Contains(t, r.Reason, "speed differs")
	assert.Equal(t, Exact, set.Score(fast, fast).Score)
}

func TestPassiveScores(t *testing.T) {
	set := NewSet(nil)
	res := func(ohms, tol float64) func(*types.Attributes) {
		return func(a *types.Attributes) {
			a.Resistance = types.Known(ohms)
			a.Tolerance = types.Known(tol)
			a.PackageCode = "0603"
		}
	}
	f := part(types.ResistorYageo, "RC0603F-10K", res(10e3, 1))
	j := part(types.ResistorYageo, "RC0603J-10K", res(10e3, 5))
	f2 := part(types.Resistor, "ERJ3EKF1002", res(10e3, 1))
	k22 := part(types.ResistorYageo, "RC0603F-22K", res(22e3, 1))
	assert.Equal(t, Medium, set.Score(f, j).Score)
	assert.Equal(t, High, set.Score(f, f2).Score)
	assert.Equal(t, Low, set.Score(f, k22).Score)

	elcap := func(temp float64) func(*types.Attributes) {
		return func(a *types.Attributes) {
			a.Capacitance = types.Known(100e-6)
			a.VoltageRating = types.Known(25)
			a.TempRating = types.Known(temp)
		}
	}
	uhs := part(types.CapacitorNichicon, "UHS1E101M", elcap(135))
	uhw := part(types.CapacitorNichicon, "UHW1E101M", elcap(105))
	uhe := part(types.CapacitorNichicon, "UHE1E101M", elcap(105))
	assert.Equal(t, Medium, set.Score(uhs, uhw).Score)
	assert.Equal(t, High, set.Score(uhw, uhe).Score)

	mlcc := func(d types.Dielectric, size string) func(*types.Attributes) {
		return func(a *types.Attributes) {
			a.Capacitance = types.Known(100e-9)
			a.VoltageRating = types.Known(50)
			a.Dielectric = d
			a.PackageCode = size
		}
	}
	x7r := part(types.CapacitorMurata, "GRM188R71H104", mlcc(types.DielectricX7R, "0603"))
	x5r := part(types.CapacitorMurata, "GRM188R61H104", mlcc(types.DielectricX5R, "0603"))
	big := part(types.CapacitorMurata, "GRM21BR71H104", mlcc(types.DielectricX7R, "0805"))
	assert.Equal(t, Medium, set.Score(x7r, x5r).Score)
	assert.Equal(t, Low, set.Score(x7r, big).Score)
}

func TestConnectorScores(t *testing.T) {
	set := NewSet(nil)
	conn := func(g types.Gender, o types.Orientation) func(*types.Attributes) {
		return func(a *types.Attributes) {
			a.Family = "XH"
			a.PinCount = 2
			a.Gender = g
			a.Orientation = o
		}
	}
	b2b := part(types.ConnectorJST, "B2B-XH", conn(types.GenderMale, types.OrientationVertical))
	s2b := part(types.ConnectorJST, "S2B-XH", conn(types.GenderMale, types.OrientationRightAngle))
	bm := part(types.ConnectorJST, "BM02B-XH", conn(types.GenderMale, types.OrientationVertical))
	assert.Equal(t, Medium, set.Score(b2b, s2b).Score)
	assert.Equal(t, High, set.Score(b2b, bm).Score)
}

func TestDiscreteRegulatorAndLogicScores(t *testing.T) {
	set := NewSet(nil)
	pkg := func(p string) func(*types.Attributes) {
		return func(a *types.Attributes) { a.PackageCode = p }
	}

	assert.Equal(t, High, set.Score(part(types.Transistor, "2N2222", pkg("TO-18")), part(types.TransistorOnsemi, "MMBT2222", pkg("SOT-23"))).Score)
	assert.Equal(t, High, set.Score(part(types.Diode, "1N4001"), part(types.Diode, "1N4007")).Score)
	assert.Equal(t, Medium, set.Score(part(types.Transistor, "2N3904", pkg("TO-92")), part(types.Transistor, "BC547", pkg("TO-92"))).Score)
	assert.Equal(t, High, set.Score(part(types.MOSFET, "2N7000"), part(types.MOSFET, "BS170")).Score)

	volts := func(v float64) func(*types.Attributes) {
		return func(a *types.Attributes) { a.OutputVoltage = types.Known(v) }
	}
	assert.Equal(t, High, set.Score(part(types.VoltageRegulatorTI, "LM7805", volts(5)), part(types.VoltageRegulator, "L7805", volts(5))).Score)
	assert.Equal(t, Medium, set.Score(part(types.VoltageRegulatorTI, "LM7805", volts(5)), part(types.VoltageRegulator, "MC78M05", volts(5))).Score)
	assert.Equal(t, Low, set.Score(part(types.VoltageRegulatorTI, "LM7805", volts(5)), part(types.VoltageRegulator, "L7812", volts(12))).Score)

	logic := func(fn, fam string) func(*types.Attributes) {
		return func(a *types.Attributes) {
			a.Function = fn
			a.LogicFamily = fam
		}
	}
	assert.Equal(t, High, set.Score(part(types.LogicICTI, "SN74HC00", logic("00", "HC")), part(types.LogicIC, "MC74HC00", logic("00", "HC"))).Score)
	assert.Equal(t, Medium, set.Score(part(types.LogicICTI, "SN74HC00", logic("00", "HC")), part(types.LogicIC, "74LS00", logic("00", "LS"))).Score)
	assert.Equal(t, Low, set.Score(part(types.LogicICTI, "SN74HC00", logic("00", "HC")), part(types.LogicICTI, "SN74HC04", logic("04", "HC"))).Score)
}

func TestDiscretePolarityMismatchIsLow(t *testing.T) {
	set := NewSet(nil)
	rated := func(p types.Polarity, pkg string) func(*types.Attributes) {
		return func(a *types.Attributes) {
			a.Polarity = p
			a.PackageCode = pkg
		}
	}

	npn := part(types.Transistor, "2N3904", rated(types.PolarityNPN, "TO-92"))
	pnp := part(types.Transistor, "2N3906", rated(types.PolarityPNP, "TO-92"))
	r := set.Score(npn, pnp)
	assert.Equal(t, Low, r.Score)
	assert.Equal(t, "polarity NPN vs PNP", r.Reason)

	bc := part(types.TransistorOnsemi, "BC547", rated(types.PolarityNPN, "TO-92"))
	assert.Equal(t, Medium, set.Score(npn, bc).Score)

	// One side unknown: no veto, but no package-only match either.
	bare := part(types.Transistor, "BC557", rated(types.PolarityUnknown, "TO-92"))
	assert.Equal(t, Low, set.Score(npn, bare).Score)

	nch := part(types.MOSFETAOS, "AO3400", rated(types.PolarityNChannel, "SOT-23"))
	pch := part(types.MOSFETAOS, "AO3401", rated(types.PolarityPChannel, "SOT-23"))
	assert.Equal(t, Low, set.Score(nch, pch).Score)
}

func TestRFModuleAndGeneric(t *testing.T) {
	set := NewSet(nil)
	esp := func(chip string, gen int) func(*types.Attributes) {
		return func(a *types.Attributes) {
			a.Family = chip
			a.WiFiGeneration = gen
		}
	}
	assert.Equal(t, High, set.Score(part(types.RFModuleEspressif, "ESP32-WROOM-32E", esp("ESP32", 4)), part(types.RFModuleEspressif, "ESP32-MINI-1", esp("ESP32", 4))).Score)
	assert.Equal(t, Medium, set.Score(part(types.RFModuleEspressif, "ESP32-C3", esp("ESP32-C3", 4)), part(types.RFModuleEspressif, "ESP8266", esp("ESP8266", 4))).Score)
	assert.Equal(t, Low, set.Score(part(types.RFModuleEspressif, "ESP32-C6", esp("ESP32-C6", 6)), part(types.RFModuleEspressif, "ESP32-H2", esp("ESP32-H2", 0))).Score)

	r := set.Score(part(types.MicrocontrollerMicrochip, "PIC16F877A"), part(types.MicrocontrollerMicrochip, "PIC16F877A"))
	assert.Equal(t, Exact, r.Score)
	assert.Equal(t, "generic", r.Calculator)
	assert.Equal(t, Low, set.Score(part(types.Microcontroller, "ATMEGA328P"), part(types.Microcontroller, "PIC16F877A")).Score)
}

func TestReflexivity(t *testing.T) {
	set := NewSet(nil)
	for _, base := range types.BaseTypes() {
		c := part(base, "ABC123")
		assert.GreaterOrEqual(t, set.Score(c, c).Score, High, "base %s", base)
	}
}

func TestConfiguredFamilies(t *testing.T) {
	set := NewSet(map[types.ComponentType]Families{
		types.OpAmpTI:         {{Name: "precision dual", Members: []string{"OPA2277", "OP297"}}},
		types.Microcontroller: {{Name: "atmega328", Members: []string{"ATMEGA328P", "ATMEGA328PB"}}},
		"BOGUS":               {{Name: "ignored", Members: []string{"X"}}},
	})

	r := set.Score(part(types.OpAmpTI, "OPA2277", channels(2, "OPA277")), part(types.OpAmp, "OP297", channels(2, "OP297")))
	assert.Equal(t, High, r.Score)
	assert.Equal(t, "equivalence family precision dual", r.Reason)

	// built-in families are kept
	assert.Equal(t, High, set.Score(part(types.OpAmpTI, "LM358"), part(types.OpAmp, "LM2904")).Score)

	r = set.Score(part(types.Microcontroller, "ATMEGA328P"), part(types.MicrocontrollerMicrochip, "ATMEGA328PB"))
	assert.Equal(t, High, r.Score)
	assert.Equal(t, "generic", r.Calculator)

	assert.Contains(t, set.Members(), "OP297")
	assert.Contains(t, set.Members(), "ATMEGA328PB")
	assert.NotContains(t, set.Members(), "X")

	// the default set is untouched by configuration
	assert.NotContains(t, NewSet(nil).Members(), "OP297")
}
