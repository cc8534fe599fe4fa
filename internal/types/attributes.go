package types

import (
	"encoding/json"
	"math"
	"strconv"
)

// Quantity is a numeric attribute that may be absent. Absence is a normal outcome of
// extraction, not an error.
type Quantity struct {
	Value float64
	Known bool
}

// Known wraps a value as a present Quantity.
func Known(v float64) Quantity {
	return Quantity{Value: v, Known: true}
}

// Unknown is the absent Quantity.
var Unknown = Quantity{}

// Equal compares two known quantities with a relative tolerance of 1e-9.
// Unknown never equals anything, including another Unknown.
func (q Quantity) Equal(o Quantity) bool {
	if !q.Known || !o.Known {
		return false
	}
	if q.Value == o.Value {
		return true
	}
	scale := math.Max(math.Abs(q.Value), math.Abs(o.Value))
	return math.Abs(q.Value-o.Value) <= scale*1e-9
}

func (q Quantity) String() string {
	if !q.Known {
		return "unknown"
	}
	return strconv.FormatFloat(q.Value, 'g', -1, 64)
}

// MarshalJSON renders unknown quantities as null.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Known {
		return []byte("null"), nil
	}
	return json.Marshal(q.Value)
}

// Mounting is the board attachment style.
type Mounting uint8

const (
	MountingUnknown Mounting = iota
	MountingThroughHole
	MountingSMD
)

func (m Mounting) String() string {
	switch m {
	case MountingThroughHole:
		return "through-hole"
	case MountingSMD:
		return "smd"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mounting) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Gender of a connector half.
type Gender uint8

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (g Gender) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// Orientation of a connector relative to the board.
type Orientation uint8

const (
	OrientationUnknown Orientation = iota
	OrientationVertical
	OrientationRightAngle
)

func (o Orientation) String() string {
	switch o {
	case OrientationVertical:
		return "vertical"
	case OrientationRightAngle:
		return "right-angle"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Keying reports whether a connector is polarized.
type Keying uint8

const (
	KeyingUnknown Keying = iota
	KeyingKeyed
	KeyingUnkeyed
)

func (k Keying) String() string {
	switch k {
	case KeyingKeyed:
		return "keyed"
	case KeyingUnkeyed:
		return "unkeyed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Keying) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Polarity of a transistor: NPN/PNP for bipolar parts, N/P channel for MOSFETs.
type Polarity uint8

const (
	PolarityUnknown Polarity = iota
	PolarityNPN
	PolarityPNP
	PolarityNChannel
	PolarityPChannel
)

func (p Polarity) String() string {
	switch p {
	case PolarityNPN:
		return "NPN"
	case PolarityPNP:
		return "PNP"
	case PolarityNChannel:
		return "N-channel"
	case PolarityPChannel:
		return "P-channel"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Polarity) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Lifetime grade of an electrolytic capacitor. Values are ordered: higher is better.
type Lifetime uint8

const (
	LifetimeUnknown Lifetime = iota
	LifetimeStandard
	LifetimeLong
)

func (l Lifetime) String() string {
	switch l {
	case LifetimeStandard:
		return "standard"
	case LifetimeLong:
		return "long-life"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (l Lifetime) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// Dielectric of a ceramic capacitor. Values are ordered by temperature stability.
type Dielectric uint8

const (
	DielectricUnknown Dielectric = iota
	DielectricY5V
	DielectricX5R
	DielectricX7R
	DielectricC0G
)

func (d Dielectric) String() string {
	switch d {
	case DielectricY5V:
		return "Y5V"
	case DielectricX5R:
		return "X5R"
	case DielectricX7R:
		return "X7R"
	case DielectricC0G:
		return "C0G"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (d Dielectric) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// SensorKind is the measured quantity of a sensor.
type SensorKind uint8

const (
	SensorKindUnknown SensorKind = iota
	SensorKindTemperature
	SensorKindHumidity
	SensorKindPressure
	SensorKindAccelerometer
	SensorKindIMU
	SensorKindMagnetometer
	SensorKindGas
)

func (s SensorKind) String() string {
	switch s {
	case SensorKindTemperature:
		return "temperature"
	case SensorKindHumidity:
		return "humidity"
	case SensorKindPressure:
		return "pressure"
	case SensorKindAccelerometer:
		return "accelerometer"
	case SensorKindIMU:
		return "imu"
	case SensorKindMagnetometer:
		return "magnetometer"
	case SensorKindGas:
		return "gas"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s SensorKind) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Attributes holds everything a handler could derive from an MPN. Every field is
// independently optional: strings are empty, integers are zero, quantities are Unknown
// and enums hold their Unknown value when the MPN does not carry the information.
type Attributes struct {
	PackageCode string `json:"package,omitempty"`
	Series      string `json:"series,omitempty"`
	Vendor      string `json:"vendor,omitempty"`
	// Family is the vendor product line used for structural comparison
	// (TL07, W25Q, XH, UHW, SHT3).
	Family   string `json:"family,omitempty"`
	Function string `json:"function,omitempty"`

	Pitch          Quantity `json:"pitch_mm"`
	CurrentRating  Quantity `json:"current_a"`
	VoltageRating  Quantity `json:"voltage_v"`
	Capacitance    Quantity `json:"capacitance_f"`
	Resistance     Quantity `json:"resistance_ohm"`
	Tolerance      Quantity `json:"tolerance_pct"`
	TempRating     Quantity `json:"temp_rating_c"`
	SpeedMHz       Quantity `json:"speed_mhz"`
	OutputVoltage  Quantity `json:"output_voltage_v"`
	ReverseVoltage Quantity `json:"reverse_voltage_v"`

	PinCount       int   `json:"pin_count,omitempty"`
	Channels       int   `json:"channels,omitempty"`
	DensityBits    int64 `json:"density_bits,omitempty"`
	FlashBytes     int64 `json:"flash_bytes,omitempty"`
	WiFiGeneration int   `json:"wifi_generation,omitempty"`

	FormFactor  string      `json:"form_factor,omitempty"`
	LogicFamily string      `json:"logic_family,omitempty"`
	Dielectric  Dielectric  `json:"dielectric"`
	Lifetime    Lifetime    `json:"lifetime"`
	Mounting    Mounting    `json:"mounting"`
	Gender      Gender      `json:"gender"`
	Orientation Orientation `json:"orientation"`
	Keying      Keying      `json:"keying"`
	SensorKind  SensorKind  `json:"sensor_kind"`
	Polarity    Polarity    `json:"polarity"`
}

// Merge fills fields of a that are unset from b. Fields already set on a win.
func (a Attributes) Merge(b Attributes) Attributes {
	mergeString(&a.PackageCode, b.PackageCode)
	mergeString(&a.Series, b.Series)
	mergeString(&a.Vendor, b.Vendor)
	mergeString(&a.Family, b.Family)
	mergeString(&a.Function, b.Function)
	mergeString(&a.FormFactor, b.FormFactor)
	mergeString(&a.LogicFamily, b.LogicFamily)

	for _, pair := range []struct{ dst, src *Quantity }{
		{&a.Pitch, &b.Pitch},
		{&a.CurrentRating, &b.CurrentRating},
		{&a.VoltageRating, &b.VoltageRating},
		{&a.Capacitance, &b.Capacitance},
		{&a.Resistance, &b.Resistance},
		{&a.Tolerance, &b.Tolerance},
		{&a.TempRating, &b.TempRating},
		{&a.SpeedMHz, &b.SpeedMHz},
		{&a.OutputVoltage, &b.OutputVoltage},
		{&a.ReverseVoltage, &b.ReverseVoltage},
	} {
		if !pair.dst.Known {
			*pair.dst = *pair.src
		}
	}

	if a.PinCount == 0 {
		a.PinCount = b.PinCount
	}
	if a.Channels == 0 {
		a.Channels = b.Channels
	}
	if a.DensityBits == 0 {
		a.DensityBits = b.DensityBits
	}
	if a.FlashBytes == 0 {
		a.FlashBytes = b.FlashBytes
	}
	if a.WiFiGeneration == 0 {
		a.WiFiGeneration = b.WiFiGeneration
	}
	if a.Dielectric == DielectricUnknown {
		a.Dielectric = b.Dielectric
	}
	if a.Lifetime == LifetimeUnknown {
		a.Lifetime = b.Lifetime
	}
	if a.Mounting == MountingUnknown {
		a.Mounting = b.Mounting
	}
	if a.Gender == GenderUnknown {
		a.Gender = b.Gender
	}
	if a.Orientation == OrientationUnknown {
		a.Orientation = b.Orientation
	}
	if a.Keying == KeyingUnknown {
		a.Keying = b.Keying
	}
	if a.SensorKind == SensorKindUnknown {
		a.SensorKind = b.SensorKind
	}
	if a.Polarity == PolarityUnknown {
		a.Polarity = b.Polarity
	}
	return a
}

func mergeString(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}
