package enums

import "fmt"

// Unit is the packaging unit stock is counted in.
type Unit string

const (
	UnitBox     Unit = "Box(盒)"
	UnitPacket  Unit = "Packet(包)"
	UnitBottle  Unit = "Bottle(瓶)"
	UnitMachine Unit = "Unit(台)"
	UnitTube    Unit = "Tube(支)"
	UnitBigBox  Unit = "Big Box(箱)"
)

var validUnits = []Unit{
	UnitBox,
	UnitPacket,
	UnitBottle,
	UnitMachine,
	UnitTube,
	UnitBigBox,
}

// String implements fmt.Stringer.
func (v Unit) String() string {
	return string(v)
}

// IsValid reports whether the value is a known Unit.
func (v Unit) IsValid() bool {
	for _, candidate := range validUnits {
		if candidate == v {
			return true
		}
	}
	return false
}

// Units returns every Unit in display order.
func Units() []Unit {
	return append([]Unit(nil), validUnits...)
}

// ParseUnit converts raw input into a Unit.
func ParseUnit(value string) (Unit, error) {
	for _, candidate := range validUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unit %q", value)
}
