package gearmesh

import (
	"fmt"
	"strings"
)

// GearKind tags the tooth family of a gear descriptor. Only the
// combination of master and slave kinds decides how a pair meshes.
type GearKind uint8

const (
	KindUndefined GearKind = iota
	// ExternalInvolute is a spur gear with involute teeth cut on the outside.
	ExternalInvolute
	// InternalInvolute is a ring gear with involute teeth cut on the inside.
	InternalInvolute
	// CycloidGear is a spur gear with cycloidal teeth.
	CycloidGear
	// InvoluteRack is a straight rack meshing with involute gears.
	InvoluteRack
	// CycloidRack is a straight rack meshing with cycloid gears.
	CycloidRack
)

var kindNames = [...]string{
	KindUndefined:    "undefined",
	ExternalInvolute: "external-involute",
	InternalInvolute: "internal-involute",
	CycloidGear:      "cycloid",
	InvoluteRack:     "involute-rack",
	CycloidRack:      "cycloid-rack",
}

func (k GearKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("GearKind(%d)", uint8(k))
}

// IsRack reports whether gears of this kind have no pitch circle.
func (k GearKind) IsRack() bool { return k == InvoluteRack || k == CycloidRack }

// ParseGearKind parses the text form returned by GearKind.String.
// Matching is case insensitive and accepts underscores for dashes.
func ParseGearKind(s string) (GearKind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for k := ExternalInvolute; int(k) < len(kindNames); k++ {
		if kindNames[k] == norm {
			return k, nil
		}
	}
	return KindUndefined, fmt.Errorf("unknown gear kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k GearKind) MarshalText() ([]byte, error) {
	if k == KindUndefined || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("cannot marshal %s", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *GearKind) UnmarshalText(text []byte) error {
	parsed, err := ParseGearKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Gear is a read-only snapshot of the meshing-relevant parameters of a gear.
type Gear struct {
	Kind GearKind
	// PitchDiameter is the working pitch diameter dw. Unused for racks.
	PitchDiameter float64
	// Teeth is the tooth count. Unused for racks.
	Teeth int
	// Module, PressureAngle (degrees) and Shift are consulted only when
	// the master or the slave carries a non-zero profile shift.
	Module        float64
	PressureAngle float64
	Shift         float64
}

func (g Gear) String() string {
	if g.Kind.IsRack() {
		return fmt.Sprintf("%s(m=%g)", g.Kind, g.Module)
	}
	return fmt.Sprintf("%s(dw=%g, z=%d)", g.Kind, g.PitchDiameter, g.Teeth)
}

// validate checks the parameters the solver divides by or multiplies
// into a placement. role names the gear in returned errors.
func (g Gear) validate(role string) error {
	if g.Kind.IsRack() {
		return nil
	}
	if !finite(g.PitchDiameter) || g.PitchDiameter <= 0 {
		return &GeometryError{Role: role, Field: "pitch diameter", Value: g.PitchDiameter}
	}
	if g.Teeth < 1 {
		return &GeometryError{Role: role, Field: "teeth", Value: float64(g.Teeth)}
	}
	if !finite(g.Shift) {
		return &GeometryError{Role: role, Field: "shift", Value: g.Shift}
	}
	return nil
}

// validateShifted checks the parameters read by the shifted center
// distance calculation.
func (g Gear) validateShifted(role string) error {
	if !finite(g.Module) || g.Module <= 0 {
		return &GeometryError{Role: role, Field: "module", Value: g.Module}
	}
	if !finite(g.PressureAngle) || g.PressureAngle <= 0 || g.PressureAngle >= 90 {
		return &GeometryError{Role: role, Field: "pressure angle", Value: g.PressureAngle}
	}
	return nil
}
