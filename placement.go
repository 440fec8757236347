package gearmesh

import (
	"fmt"
	"math"

	"github.com/soypat/gearmesh/internal/d3"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Placement is a rigid transform: a rotation about the origin followed by
// a translation by Base. The zero value of Placement is the identity.
type Placement struct {
	// Base is the translation applied after the rotation.
	Base r3.Vec
	// The rotation quaternion is stored with 1 subtracted from its real
	// part so the zero value is the identity rotation.
	q r3.Rotation
}

// NewPlacement returns the placement rotating by rot and translating by base.
// rot is normalized. A zero quaternion is taken as the identity rotation.
func NewPlacement(base r3.Vec, rot r3.Rotation) Placement {
	n := quat.Abs(quat.Number(rot))
	if n == 0 {
		return Placement{Base: base}
	}
	if n != 1 {
		rot = r3.Rotation(quat.Scale(1/n, quat.Number(rot)))
	}
	return fromRotation(base, rot)
}

// Translation returns a placement that only translates.
func Translation(v r3.Vec) Placement { return Placement{Base: v} }

// RotationAbout returns a placement rotating degrees about axis through the
// origin (right hand rule). A zero axis yields the identity.
func RotationAbout(axis r3.Vec, degrees float64) Placement {
	if degrees == 0 || d3.IsZero(axis) {
		return Placement{}
	}
	return fromRotation(r3.Vec{}, r3.NewRotation(DtoR(degrees), axis))
}

// RotationZ returns a placement rotating degrees about the z-axis.
func RotationZ(degrees float64) Placement {
	if degrees == 0 {
		return Placement{}
	}
	s, c := math.Sincos(DtoR(degrees) / 2)
	return Placement{q: r3.Rotation{Real: c - 1, Kmag: s}}
}

func fromRotation(base r3.Vec, rot r3.Rotation) Placement {
	rot.Real -= 1
	return Placement{Base: base, q: rot}
}

// Rotation returns the unit quaternion of the placement's rotation.
func (p Placement) Rotation() r3.Rotation {
	q := p.q
	q.Real += 1
	return q
}

// Mul returns the composition p*b. Applied to a point, b acts first.
func (p Placement) Mul(b Placement) Placement {
	if p == (Placement{}) {
		return b
	}
	if b == (Placement{}) {
		return p
	}
	pr := p.Rotation()
	rot := r3.Rotation(quat.Mul(quat.Number(pr), quat.Number(b.Rotation())))
	return fromRotation(r3.Add(pr.Rotate(b.Base), p.Base), rot)
}

// Apply transforms the point v.
func (p Placement) Apply(v r3.Vec) r3.Vec {
	return r3.Add(p.Rotation().Rotate(v), p.Base)
}

// Inv returns the inverse placement such that p.Inv().Mul(p) is the identity.
func (p Placement) Inv() Placement {
	inv := r3.Rotation(quat.Conj(quat.Number(p.Rotation())))
	return fromRotation(r3.Scale(-1, inv.Rotate(p.Base)), inv)
}

// Move returns p followed by a translation by v in world coordinates.
func (p Placement) Move(v r3.Vec) Placement {
	p.Base = r3.Add(p.Base, v)
	return p
}

// AxisAngle returns the rotation axis and the rotation angle in radians.
// The angle lies in [0, π]; the axis sign carries the sense of rotation.
// For the identity the z-axis and a zero angle are returned.
func (p Placement) AxisAngle() (axis r3.Vec, angle float64) {
	q := p.Rotation()
	if q.Real < 0 {
		q = r3.Rotation(quat.Scale(-1, quat.Number(q)))
	}
	v := r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	s := r3.Norm(v)
	if s < epsilon {
		return r3.Vec{Z: 1}, 0
	}
	return r3.Scale(1/s, v), 2 * math.Atan2(s, q.Real)
}

// Twist returns the signed angle in radians by which p rotates about axis,
// discarding any rotation perpendicular to it (swing-twist decomposition).
// The result lies in [-π, π].
func (p Placement) Twist(axis r3.Vec) float64 {
	if d3.IsZero(axis) {
		return 0
	}
	q := p.Rotation()
	if q.Real < 0 {
		q = r3.Rotation(quat.Scale(-1, quat.Number(q)))
	}
	d := r3.Dot(r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}, r3.Unit(axis))
	return 2 * math.Atan2(d, q.Real)
}

// Matrix returns the placement as a 4x4 homogeneous matrix in row-major order.
func (p Placement) Matrix() [16]float64 {
	var m [16]float64
	copy(m[:], p.transform().SliceCopy())
	return m
}

func (p Placement) transform() d3.Transform {
	return d3.Rigid(p.Rotation(), p.Base)
}

// EqualWithin reports whether p and b map points within tol of each other,
// comparing their matrices element-wise.
func (p Placement) EqualWithin(b Placement, tol float64) bool {
	return p.transform().EqualWithin(b.transform(), tol)
}

// IsFinite reports whether no component of the placement is NaN or infinite.
func (p Placement) IsFinite() bool {
	return d3.Finite(p.Base) && finite(p.q.Real) && finite(p.q.Imag) &&
		finite(p.q.Jmag) && finite(p.q.Kmag)
}

func (p Placement) String() string {
	axis, angle := p.AxisAngle()
	return fmt.Sprintf("Placement{Base: (%g, %g, %g), Axis: (%g, %g, %g), Angle: %g°}",
		p.Base.X, p.Base.Y, p.Base.Z, axis.X, axis.Y, axis.Z, RtoD(angle))
}
