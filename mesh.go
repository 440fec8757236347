package gearmesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MeshCase identifies the formula family used to place a slave gear.
type MeshCase uint8

const (
	caseUndefined MeshCase = iota
	// CaseExternal meshes two external involute gears.
	CaseExternal
	// CaseInternal meshes an external pinion inside an internal ring gear.
	CaseInternal
	// CaseRack meshes a gear with a straight rack.
	CaseRack
	// CaseCycloid meshes two cycloid gears.
	CaseCycloid
)

func (c MeshCase) String() string {
	switch c {
	case CaseExternal:
		return "external"
	case CaseInternal:
		return "internal"
	case CaseRack:
		return "rack"
	case CaseCycloid:
		return "cycloid"
	}
	return "undefined"
}

// Classify returns the meshing case for a master and slave kind.
// The returned error matches ErrUnsupportedPair for combinations that do
// not mesh.
func Classify(master, slave GearKind) (MeshCase, error) {
	switch {
	case master == ExternalInvolute && slave == ExternalInvolute:
		return CaseExternal, nil
	case master == InternalInvolute && slave == ExternalInvolute:
		return CaseInternal, nil
	case master == ExternalInvolute && slave == InvoluteRack,
		master == CycloidGear && slave == CycloidRack:
		return CaseRack, nil
	case master == CycloidGear && slave == CycloidGear:
		return CaseCycloid, nil
	}
	return caseUndefined, &PairError{Master: master, Slave: slave}
}

// MeshPair is the input of one placement update.
type MeshPair struct {
	Master, Slave Gear
	// MasterPlacement is the current world placement of the master's anchor.
	MasterPlacement Placement
	// DriveAngle1 turns the slave around the master (degrees). For racks it
	// also sets the rack travel.
	DriveAngle1 float64
	// DriveAngle2 offsets the rack travel (degrees). Unused by gear pairs.
	DriveAngle2 float64
}

// SpinMode selects how the master's spin about the mesh axis is read from
// its placement.
type SpinMode uint8

const (
	// SpinProjected takes the twist of the master rotation about the mesh
	// axis and ignores any tilt.
	SpinProjected SpinMode = iota
	// SpinAxisSum multiplies the rotation angle by the sum of the rotation
	// axis components. It is only meaningful for rotations about a signed
	// principal axis and is kept for placements saved by older hosts.
	SpinAxisSum
)

// MeshAxis is the world axis both gears turn about.
var MeshAxis = r3.Vec{Z: 1}

// Solver computes slave placements. The zero value is ready to use.
// A Solver holds no state between calls and is safe for concurrent use.
type Solver struct {
	Spin SpinMode
	// CenterDistance is called with the master and slave tooth counts and
	// shifts, unsigned, when either gear carries profile shift. Its distance
	// is used as returned. If nil ShiftedCenterDistance is used for external
	// pairs and InternalCenterDistance for ring gear masters.
	CenterDistance CenterDistanceFunc
}

// Solution is the slave placement together with the intermediate
// quantities it was built from. Angles are in degrees.
type Solution struct {
	Placement Placement
	Case      MeshCase
	// CenterDistance is the signed offset of the slave along the local
	// x-axis before the drive rotation.
	CenterDistance float64
	// Ratio is the master to slave pitch diameter ratio. Zero for racks.
	Ratio float64
	// SpinAngle is the master's spin about the mesh axis.
	SpinAngle float64
	// SlaveDrive is the slave rotation following DriveAngle1 (angle2).
	SlaveDrive float64
	// ParityOffset is the half tooth rotation applied to even tooth
	// counts (angle3).
	ParityOffset float64
	// SpinCancel is the rotation removed to account for the master's
	// own spin (angle4).
	SpinCancel float64
	// RackTravel is the slide of the rack along its local y-axis.
	RackTravel float64
	// WorkingPressureAngle is reported for shifted pairs (radians).
	// It does not yet correct the slave rotation.
	WorkingPressureAngle float64
}

// Solve returns the slave anchor placement for pair using a zero Solver.
func Solve(pair MeshPair) (Placement, error) {
	var s Solver
	sol, err := s.Solve(pair)
	return sol.Placement, err
}

// Solve returns the slave anchor placement and its intermediate
// quantities. Unsupported kind pairs return an error matching
// ErrUnsupportedPair and inputs that would produce a non-finite placement
// return an error matching ErrDegenerateGeometry.
func (s *Solver) Solve(pair MeshPair) (Solution, error) {
	mc, err := Classify(pair.Master.Kind, pair.Slave.Kind)
	if err != nil {
		return Solution{}, err
	}
	if err := s.validate(mc, pair); err != nil {
		return Solution{}, err
	}
	sol := Solution{
		Case:      mc,
		SpinAngle: s.spinAngle(pair.MasterPlacement),
	}
	switch mc {
	case CaseExternal, CaseCycloid:
		err = s.spur(&sol, pair, 1)
	case CaseInternal:
		err = s.spur(&sol, pair, -1)
	case CaseRack:
		s.rack(&sol, pair)
	}
	if err != nil {
		return Solution{}, err
	}
	if !sol.Placement.IsFinite() {
		return Solution{}, &GeometryError{Role: "pair", Field: "slave placement", Value: math.NaN()}
	}
	return sol, nil
}

func (s *Solver) validate(mc MeshCase, pair MeshPair) error {
	if err := pair.Master.validate("master"); err != nil {
		return err
	}
	if err := pair.Slave.validate("slave"); err != nil {
		return err
	}
	if mc != CaseRack && (pair.Master.Shift != 0 || pair.Slave.Shift != 0) {
		if err := pair.Master.validateShifted("master"); err != nil {
			return err
		}
	}
	switch {
	case !finite(pair.DriveAngle1):
		return &GeometryError{Role: "pair", Field: "drive angle 1", Value: pair.DriveAngle1}
	case !finite(pair.DriveAngle2):
		return &GeometryError{Role: "pair", Field: "drive angle 2", Value: pair.DriveAngle2}
	case !pair.MasterPlacement.IsFinite():
		return &GeometryError{Role: "master", Field: "placement", Value: math.NaN()}
	}
	return nil
}

// spinAngle returns the master's spin about MeshAxis in degrees.
func (s *Solver) spinAngle(master Placement) float64 {
	if s.Spin == SpinAxisSum {
		axis, angle := master.AxisAngle()
		return RtoD(angle * (axis.X + axis.Y + axis.Z))
	}
	return RtoD(master.Twist(MeshAxis))
}

// spur places a slave gear meshing with a master gear. sense is -1 for a
// pinion inside a ring gear, which turns the same way as the ring.
func (s *Solver) spur(sol *Solution, pair MeshPair, sense float64) error {
	m, sl := pair.Master, pair.Slave
	dist := (m.PitchDiameter + sense*sl.PitchDiameter) / 2
	if m.Shift != 0 || sl.Shift != 0 {
		d, alphaW, err := s.shiftedDistance(m, sl, sense < 0)
		if err != nil {
			return err
		}
		dist = d
		sol.WorkingPressureAngle = alphaW
	}
	ratio := m.PitchDiameter / sl.PitchDiameter
	angle2 := sense * ratio * pair.DriveAngle1
	angle3 := parityOffset(sl.Teeth)
	angle4 := sense * ratio * sol.SpinAngle

	sol.CenterDistance = dist
	sol.Ratio = ratio
	sol.SlaveDrive = angle2
	sol.ParityOffset = angle3
	sol.SpinCancel = angle4
	sol.Placement = RotationZ(pair.DriveAngle1).
		Mul(Translation(r3.Vec{X: dist})).
		Mul(RotationZ(angle2)).
		Mul(RotationZ(angle3)).
		Mul(RotationZ(-angle4)).
		Move(pair.MasterPlacement.Base)
	return nil
}

// rack places a rack meshing with a master gear. The rack slides by the
// pitch circle arc length the drive angles sweep.
func (s *Solver) rack(sol *Solution, pair MeshPair) {
	dw := pair.Master.PitchDiameter
	dist := -dw / 2
	travel := (DtoR(pair.DriveAngle1) - DtoR(pair.DriveAngle2)) * dw / 2

	sol.CenterDistance = dist
	sol.RackTravel = travel
	sol.Placement = RotationZ(pair.DriveAngle1).
		Mul(Translation(r3.Vec{Y: travel})).
		Mul(Translation(r3.Vec{X: dist})).
		Move(pair.MasterPlacement.Base)
}

// shiftedDistance calls the center distance collaborator with the
// master and slave parameters as given.
func (s *Solver) shiftedDistance(m, sl Gear, internal bool) (dist, alphaW float64, err error) {
	f := s.CenterDistance
	switch {
	case f != nil:
	case internal:
		f = InternalCenterDistance
	default:
		f = ShiftedCenterDistance
	}
	dist, alphaW, err = f(m.Module, DtoR(m.PressureAngle), m.Teeth, sl.Teeth, m.Shift, sl.Shift)
	if err != nil {
		return 0, 0, fmt.Errorf("%s/%s pair: %w", m.Kind, sl.Kind, err)
	}
	if !finite(dist) {
		return 0, 0, &GeometryError{Role: "pair", Field: "shifted center distance", Value: dist}
	}
	return dist, alphaW, nil
}

// parityOffset returns half a tooth pitch in degrees for even tooth counts
// so the slave's teeth face the master's gaps, and zero for odd counts.
func parityOffset(teeth int) float64 {
	return math.Abs(float64(teeth%2-1)) * 180 / float64(teeth)
}
