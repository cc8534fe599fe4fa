package advisor

import (
	"fmt"

	"github.com/standardbeagle/mpnkit/internal/types"
)

// value is one attribute as seen by a rule: a quantity or a label, absent when
// neither is set.
type value struct {
	num   types.Quantity
	label string
}

func (v value) known() bool { return v.num.Known || v.label != "" }

func (v value) equal(o value) bool {
	if v.num.Known || o.num.Known {
		return v.num.Equal(o.num)
	}
	return v.label == o.label
}

func (v value) String() string {
	switch {
	case v.label != "":
		return v.label
	case v.num.Known:
		return v.num.String()
	default:
		return "unknown"
	}
}

type getter func(types.Attributes) value

func quantity(f func(types.Attributes) types.Quantity) getter {
	return func(a types.Attributes) value { return value{num: f(a)} }
}

func text(f func(types.Attributes) string) getter {
	return func(a types.Attributes) value { return value{label: f(a)} }
}

func count[T ~int | ~int64](f func(types.Attributes) T) getter {
	return func(a types.Attributes) value {
		n := f(a)
		if n == 0 {
			return value{}
		}
		return value{num: types.Known(float64(n)), label: fmt.Sprint(n)}
	}
}

// enum reads an ordered enum whose zero value is Unknown.
func enum[T interface {
	~uint8
	String() string
}](f func(types.Attributes) T) getter {
	return func(a types.Attributes) value {
		e := f(a)
		if e == 0 {
			return value{}
		}
		return value{num: types.Known(float64(e)), label: e.String()}
	}
}

// direction says which way an ordered attribute improves.
type direction int

const (
	higherIsBetter direction = iota
	lowerIsBetter
)

// constraint is one row of a rule table. Hard constraints must match exactly;
// ordered ones require the candidate to be equal or better.
type constraint struct {
	attribute string
	hard      bool
	better    direction
	get       getter
}

func hard(attribute string, get getter) constraint {
	return constraint{attribute: attribute, hard: true, get: get}
}

func ordered(attribute string, better direction, get getter) constraint {
	return constraint{attribute: attribute, better: better, get: get}
}

var (
	capacitance   = quantity(func(a types.Attributes) types.Quantity { return a.Capacitance })
	resistance    = quantity(func(a types.Attributes) types.Quantity { return a.Resistance })
	voltage       = quantity(func(a types.Attributes) types.Quantity { return a.VoltageRating })
	outputVoltage = quantity(func(a types.Attributes) types.Quantity { return a.OutputVoltage })
	tolerance     = quantity(func(a types.Attributes) types.Quantity { return a.Tolerance })
	tempRating    = quantity(func(a types.Attributes) types.Quantity { return a.TempRating })
	speed         = quantity(func(a types.Attributes) types.Quantity { return a.SpeedMHz })
	pitch         = quantity(func(a types.Attributes) types.Quantity { return a.Pitch })
	current       = quantity(func(a types.Attributes) types.Quantity { return a.CurrentRating })
	reverse       = quantity(func(a types.Attributes) types.Quantity { return a.ReverseVoltage })

	packageCode = text(func(a types.Attributes) string { return a.PackageCode })
	function    = text(func(a types.Attributes) string { return a.Function })
	formFactor  = text(func(a types.Attributes) string { return a.FormFactor })

	pinCount = count(func(a types.Attributes) int { return a.PinCount })
	channels = count(func(a types.Attributes) int { return a.Channels })
	density  = count(func(a types.Attributes) int64 { return a.DensityBits })
	flash    = count(func(a types.Attributes) int64 { return a.FlashBytes })
	wifi     = count(func(a types.Attributes) int { return a.WiFiGeneration })

	lifetime    = enum(func(a types.Attributes) types.Lifetime { return a.Lifetime })
	dielectric  = enum(func(a types.Attributes) types.Dielectric { return a.Dielectric })
	mounting    = enum(func(a types.Attributes) types.Mounting { return a.Mounting })
	gender      = enum(func(a types.Attributes) types.Gender { return a.Gender })
	orientation = enum(func(a types.Attributes) types.Orientation { return a.Orientation })
	sensorKind  = enum(func(a types.Attributes) types.SensorKind { return a.SensorKind })
	polarity    = enum(func(a types.Attributes) types.Polarity { return a.Polarity })
)

// Transistors and MOSFETs share a table: the polarity (NPN/PNP or N/P channel) must
// match, and the breakdown voltage (VCEO or V(BR)DSS) may only go up.
var transistorRules = []constraint{
	hard("polarity", polarity),
	hard("package", packageCode),
	ordered("voltage_rating", higherIsBetter, voltage),
}

// ruleTables holds the constraints per base type. Base types without a table are
// replaceable on similarity alone.
var ruleTables = map[types.ComponentType][]constraint{
	types.Capacitor: {
		hard("capacitance", capacitance),
		hard("voltage_rating", voltage),
		hard("package", packageCode),
		ordered("temp_rating", higherIsBetter, tempRating),
		ordered("lifetime", higherIsBetter, lifetime),
		ordered("dielectric", higherIsBetter, dielectric),
		ordered("tolerance", lowerIsBetter, tolerance),
	},
	types.Resistor: {
		hard("resistance", resistance),
		hard("package", packageCode),
		ordered("tolerance", lowerIsBetter, tolerance),
	},
	types.Connector: {
		hard("pin_count", pinCount),
		hard("pitch", pitch),
		hard("mounting", mounting),
		hard("gender", gender),
		hard("orientation", orientation),
		ordered("current_rating", higherIsBetter, current),
	},
	types.Memory: {
		hard("density", density),
		hard("package", packageCode),
		ordered("speed", higherIsBetter, speed),
		ordered("temp_rating", higherIsBetter, tempRating),
	},
	types.OpAmp: {
		hard("channels", channels),
		hard("package", packageCode),
		ordered("temp_rating", higherIsBetter, tempRating),
	},
	// 54-series parts carry the military temperature range, so the ordered
	// temperature rating ranks 54 above 74.
	types.LogicIC: {
		hard("function", function),
		hard("package", packageCode),
		ordered("temp_rating", higherIsBetter, tempRating),
	},
	types.RFModule: {
		hard("form_factor", formFactor),
		ordered("wifi_generation", higherIsBetter, wifi),
		ordered("flash", higherIsBetter, flash),
	},
	types.VoltageRegulator: {
		hard("output_voltage", outputVoltage),
		hard("package", packageCode),
		ordered("temp_rating", higherIsBetter, tempRating),
	},
	types.Sensor: {
		hard("sensor_kind", sensorKind),
		hard("package", packageCode),
	},
	types.Diode: {
		hard("package", packageCode),
		ordered("reverse_voltage", higherIsBetter, reverse),
	},
	types.Transistor: transistorRules,
	types.MOSFET:     transistorRules,
}

// Constraints lists the attribute names checked for a base type, hard ones first.
func Constraints(base types.ComponentType) (hardNames, orderedNames []string) {
	for _, c := range ruleTables[base.Base()] {
		if c.hard {
			hardNames = append(hardNames, c.attribute)
		} else {
			orderedNames = append(orderedNames, c.attribute)
		}
	}
	return hardNames, orderedNames
}
