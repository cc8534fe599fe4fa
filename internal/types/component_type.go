package types

import (
	"sort"
	"strings"
)

// ComponentType is an element of the closed component taxonomy. A type is either a base
// type (MOSFET) or a vendor-qualified refinement of one (MOSFET_AOS).
type ComponentType string

// Base types
const (
	Resistor         ComponentType = "RESISTOR"
	Capacitor        ComponentType = "CAPACITOR"
	Diode            ComponentType = "DIODE"
	Transistor       ComponentType = "TRANSISTOR"
	MOSFET           ComponentType = "MOSFET"
	OpAmp            ComponentType = "OPAMP"
	VoltageRegulator ComponentType = "VOLTAGE_REGULATOR"
	LogicIC          ComponentType = "LOGIC_IC"
	Memory           ComponentType = "MEMORY"
	Sensor           ComponentType = "SENSOR"
	Connector        ComponentType = "CONNECTOR"
	RFModule         ComponentType = "RF_MODULE"
	Microcontroller  ComponentType = "MICROCONTROLLER"
)

// Vendor-qualified types
const (
	MOSFETAOS                ComponentType = "MOSFET_AOS"
	MOSFETInfineon           ComponentType = "MOSFET_INFINEON"
	MOSFETOnsemi             ComponentType = "MOSFET_ONSEMI"
	TransistorOnsemi         ComponentType = "TRANSISTOR_ONSEMI"
	OpAmpTI                  ComponentType = "OPAMP_TI"
	OpAmpOnsemi              ComponentType = "OPAMP_ONSEMI"
	LogicICTI                ComponentType = "LOGIC_IC_TI"
	VoltageRegulatorTI       ComponentType = "VOLTAGE_REGULATOR_TI"
	SensorTI                 ComponentType = "SENSOR_TI"
	SensorBosch              ComponentType = "SENSOR_BOSCH"
	SensorSensirion          ComponentType = "SENSOR_SENSIRION"
	SensorADI                ComponentType = "SENSOR_ADI"
	MemoryWinbond            ComponentType = "MEMORY_WINBOND"
	MemoryMicrochip          ComponentType = "MEMORY_MICROCHIP"
	MicrocontrollerMicrochip ComponentType = "MICROCONTROLLER_MICROCHIP"
	CapacitorNichicon        ComponentType = "CAPACITOR_NICHICON"
	CapacitorMurata          ComponentType = "CAPACITOR_MURATA"
	ResistorYageo            ComponentType = "RESISTOR_YAGEO"
	ConnectorMolex           ComponentType = "CONNECTOR_MOLEX"
	ConnectorJST             ComponentType = "CONNECTOR_JST"
	RFModuleEspressif        ComponentType = "RF_MODULE_ESPRESSIF"
)

// typeInfo is one row of the taxonomy table.
type typeInfo struct {
	base   ComponentType
	vendor string
}

// taxonomy is the closed set. Base types map to themselves with no vendor.
var taxonomy = map[ComponentType]typeInfo{
	Resistor:         {Resistor, ""},
	Capacitor:        {Capacitor, ""},
	Diode:            {Diode, ""},
	Transistor:       {Transistor, ""},
	MOSFET:           {MOSFET, ""},
	OpAmp:            {OpAmp, ""},
	VoltageRegulator: {VoltageRegulator, ""},
	LogicIC:          {LogicIC, ""},
	Memory:           {Memory, ""},
	Sensor:           {Sensor, ""},
	Connector:        {Connector, ""},
	RFModule:         {RFModule, ""},
	Microcontroller:  {Microcontroller, ""},

	MOSFETAOS:                {MOSFET, "AOS"},
	MOSFETInfineon:           {MOSFET, "INFINEON"},
	MOSFETOnsemi:             {MOSFET, "ONSEMI"},
	TransistorOnsemi:         {Transistor, "ONSEMI"},
	OpAmpTI:                  {OpAmp, "TI"},
	OpAmpOnsemi:              {OpAmp, "ONSEMI"},
	LogicICTI:                {LogicIC, "TI"},
	VoltageRegulatorTI:       {VoltageRegulator, "TI"},
	SensorTI:                 {Sensor, "TI"},
	SensorBosch:              {Sensor, "BOSCH"},
	SensorSensirion:          {Sensor, "SENSIRION"},
	SensorADI:                {Sensor, "ADI"},
	MemoryWinbond:            {Memory, "WINBOND"},
	MemoryMicrochip:          {Memory, "MICROCHIP"},
	MicrocontrollerMicrochip: {Microcontroller, "MICROCHIP"},
	CapacitorNichicon:        {Capacitor, "NICHICON"},
	CapacitorMurata:          {Capacitor, "MURATA"},
	ResistorYageo:            {Resistor, "YAGEO"},
	ConnectorMolex:           {Connector, "MOLEX"},
	ConnectorJST:             {Connector, "JST"},
	RFModuleEspressif:        {RFModule, "ESPRESSIF"},
}

// ParseComponentType resolves a type name (case-insensitive). The second result is false
// for names outside the taxonomy.
func ParseComponentType(name string) (ComponentType, bool) {
	t := ComponentType(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := taxonomy[t]; !ok {
		return "", false
	}
	return t, true
}

// IsValid reports whether t is part of the taxonomy.
func (t ComponentType) IsValid() bool {
	_, ok := taxonomy[t]
	return ok
}

// Base returns the base type. Invalid types return the empty type.
func (t ComponentType) Base() ComponentType {
	return taxonomy[t].base
}

// Vendor returns the vendor qualifier, or "" for base types.
func (t ComponentType) Vendor() string {
	return taxonomy[t].vendor
}

// IsQualified reports whether t is a vendor refinement.
func (t ComponentType) IsQualified() bool {
	return taxonomy[t].vendor != ""
}

// IsA reports whether t is other, or a refinement of the base type other.
func (t ComponentType) IsA(other ComponentType) bool {
	if !t.IsValid() || !other.IsValid() {
		return false
	}
	if t == other {
		return true
	}
	return !other.IsQualified() && t.Base() == other
}

// Qualify returns the vendor refinement of a base type, if it exists.
func (t ComponentType) Qualify(vendor string) (ComponentType, bool) {
	q := ComponentType(string(t.Base()) + "_" + strings.ToUpper(vendor))
	if !q.IsValid() {
		return "", false
	}
	return q, true
}

func (t ComponentType) String() string {
	return string(t)
}

// AllTypes returns the taxonomy sorted by name.
func AllTypes() []ComponentType {
	out := make([]ComponentType, 0, len(taxonomy))
	for t := range taxonomy {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BaseTypes returns only the base types, sorted by name.
func BaseTypes() []ComponentType {
	var out []ComponentType
	for _, t := range AllTypes() {
		if !t.IsQualified() {
			out = append(out, t)
		}
	}
	return out
}

// Refinements returns every qualified type whose base is base.
func Refinements(base ComponentType) []ComponentType {
	var out []ComponentType
	for _, t := range AllTypes() {
		if t.IsQualified() && t.Base() == base {
			out = append(out, t)
		}
	}
	return out
}
