package similarity

import (
	"fmt"

	"github.com/standardbeagle/mpnkit/internal/types"
)

// OpAmp scores operational amplifiers. Channel counts come from the handlers' line
// tables; the Family attribute is the line (TL07, LM358, OPA134). Lines of the same
// input technology score Medium.
func OpAmp() *Calculator {
	return &Calculator{
		name:     "opamp",
		bases:    []types.ComponentType{types.OpAmp},
		families: opAmpFamilies,
		ceiling: func(a, b types.Attributes) (float64, string, bool) {
			if a.Channels > 0 && b.Channels > 0 && a.Channels != b.Channels {
				return Medium, "channel count differs", true
			}
			return 0, "", false
		},
		structural: func(a, b types.Attributes) (float64, string, bool) {
			if a.Family != "" && a.Family == b.Family {
				return Medium, "same line " + a.Family, true
			}
			if f, ok := opAmpTechnologies.Shared(a.Series, b.Series); ok {
				return Medium, "same technology " + f.Name, true
			}
			return 0, "", false
		},
	}
}

// Sensor scores sensors. Different measured quantities never score above Low.
func Sensor() *Calculator {
	return &Calculator{
		name:     "sensor",
		bases:    []types.ComponentType{types.Sensor},
		families: sensorFamilies,
		veto: func(a, b types.Attributes) (float64, string, bool) {
			if a.SensorKind != b.SensorKind {
				return Low, fmt.Sprintf("sensor kind %s vs %s", a.SensorKind, b.SensorKind), true
			}
			return 0, "", false
		},
		structural: func(a, b types.Attributes) (float64, string, bool) {
			pa, pb := alphaPrefix(a.Series), alphaPrefix(b.Series)
			if a.SensorKind != types.SensorKindUnknown && pa != "" && pa == pb {
				return Medium, "same kind and line " + pa, true
			}
			return 0, "", false
		},
	}
}

// Memory scores memories. Series and density must agree; the speed grade decides
// between High and Medium.
func Memory() *Calculator {
	return &Calculator{
		name:  "memory",
		bases: []types.ComponentType{types.Memory},
		sameSeries: func(a, b types.Attributes) (float64, string, bool) {
			if a.SpeedMHz.Known && b.SpeedMHz.Known && !a.SpeedMHz.Equal(b.SpeedMHz) {
				return Medium, "same series, speed differs", true
			}
			return 0, "", false
		},
		structural: func(a, b types.Attributes) (float64, string, bool) {
			if a.Family == "" || a.Family != b.Family || a.DensityBits == 0 || a.DensityBits != b.DensityBits {
				return 0, "", false
			}
			if a.SpeedMHz.Equal(b.SpeedMHz) || (!a.SpeedMHz.Known && !b.SpeedMHz.Known) {
				return High, "same series, density and speed", true
			}
			return Medium, "same series and density, speed differs", true
		},
	}
}

// Passive scores resistors and capacitors on their electrical values.
func Passive() *Calculator {
	return &Calculator{
		name:  "passive",
		bases: []types.ComponentType{types.Resistor, types.Capacitor},
		structural: func(a, b types.Attributes) (float64, string, bool) {
			if a.Resistance.Known || b.Resistance.Known {
				return resistorScore(a, b)
			}
			return capacitorScore(a, b)
		},
	}
}

func resistorScore(a, b types.Attributes) (float64, string, bool) {
	if !a.Resistance.Equal(b.Resistance) || a.PackageCode == "" || a.PackageCode != b.PackageCode {
		return 0, "", false
	}
	if a.Tolerance.Equal(b.Tolerance) {
		return High, "same value, size and tolerance", true
	}
	return Medium, "same value and size", true
}

func capacitorScore(a, b types.Attributes) (float64, string, bool) {
	if !a.Capacitance.Equal(b.Capacitance) || !a.VoltageRating.Equal(b.VoltageRating) {
		return 0, "", false
	}
	ceramic := a.Dielectric != types.DielectricUnknown || b.Dielectric != types.DielectricUnknown
	if ceramic {
		if a.PackageCode == "" || a.PackageCode != b.PackageCode {
			return 0, "", false
		}
		if a.Dielectric == b.Dielectric {
			return High, "same capacitance, voltage, size and dielectric", true
		}
		return Medium, "same capacitance, voltage and size", true
	}
	if a.TempRating.Equal(b.TempRating) {
		return High, "same capacitance, voltage and temperature grade", true
	}
	return Medium, "same capacitance and voltage", true
}

// Connector scores connectors within a product line.
func Connector() *Calculator {
	return &Calculator{
		name:  "connector",
		bases: []types.ComponentType{types.Connector},
		structural: func(a, b types.Attributes) (float64, string, bool) {
			if a.Family == "" || a.Family != b.Family || a.PinCount == 0 || a.PinCount != b.PinCount {
				return 0, "", false
			}
			if a.Gender == b.Gender && a.Orientation == b.Orientation {
				return High, fmt.Sprintf("same %s %dP, gender and orientation", a.Family, a.PinCount), true
			}
			return Medium, fmt.Sprintf("same %s %dP", a.Family, a.PinCount), true
		},
	}
}

// Discrete scores diodes, bipolar transistors and MOSFETs.
func Discrete() *Calculator {
	return &Calculator{
		name:     "discrete",
		bases:    []types.ComponentType{types.Diode, types.Transistor, types.MOSFET},
		families: discreteFamilies,
		veto: func(a, b types.Attributes) (float64, string, bool) {
			if a.Polarity != types.PolarityUnknown && b.Polarity != types.PolarityUnknown && a.Polarity != b.Polarity {
				return Low, fmt.Sprintf("polarity %s vs %s", a.Polarity, b.Polarity), true
			}
			return 0, "", false
		},
		structural: func(a, b types.Attributes) (float64, string, bool) {
			if a.PackageCode != "" && a.PackageCode == b.PackageCode && a.Polarity == b.Polarity {
				return Medium, "same package " + a.PackageCode, true
			}
			return 0, "", false
		},
	}
}

// Regulator scores linear regulators. Fixed regulators with the same output voltage
// but a different current class score Medium.
func Regulator() *Calculator {
	return &Calculator{
		name:     "regulator",
		bases:    []types.ComponentType{types.VoltageRegulator},
		families: regulatorFamilies(),
		structural: func(a, b types.Attributes) (float64, string, bool) {
			if a.OutputVoltage.Equal(b.OutputVoltage) {
				return Medium, "same output voltage " + a.OutputVoltage.String() + "V", true
			}
			return 0, "", false
		},
	}
}

// Logic scores 74/54 logic on the function number and logic family, ignoring the
// maker prefix and temperature range.
func Logic() *Calculator {
	return &Calculator{
		name:  "logic",
		bases: []types.ComponentType{types.LogicIC},
		structural: func(a, b types.Attributes) (float64, string, bool) {
			if a.Function == "" || a.Function != b.Function {
				return 0, "", false
			}
			if a.LogicFamily == b.LogicFamily {
				return High, "same function " + a.Function + " and family", true
			}
			return Medium, "same function " + a.Function, true
		},
	}
}

// RFModule scores radio chips and modules.
func RFModule() *Calculator {
	return &Calculator{
		name:  "rf_module",
		bases: []types.ComponentType{types.RFModule},
		structural: func(a, b types.Attributes) (float64, string, bool) {
			if a.Family != "" && a.Family == b.Family {
				return High, "same chip " + a.Family, true
			}
			if a.WiFiGeneration > 0 && a.WiFiGeneration == b.WiFiGeneration {
				return Medium, fmt.Sprintf("same Wi-Fi generation %d", a.WiFiGeneration), true
			}
			return 0, "", false
		},
	}
}

// Generic scores everything without a dedicated calculator: identical series or Low.
func Generic() *Calculator {
	return &Calculator{name: "generic"}
}

func alphaPrefix(s string) string {
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	return s[:i]
}
