package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a 4x4 homogeneous transformation matrix.
// The zero value of Transform is the identity transform.
type Transform struct {
	// Diagonal elements are stored with the identity subtracted:
	//  d00 = x00-1, d11 = x11-1, d22 = x22-1, d33 = x33-1
	// so identity checks read
	//  if T == (Transform{})
	d00, x01, x02, x03 float64
	x10, d11, x12, x13 float64
	x20, x21, d22, x23 float64
	x30, x31, x32, d33 float64
}

// NewTransform returns a Transform populated with 16 values in
// row-major order.
func NewTransform(a []float64) Transform {
	if len(a) != 16 {
		panic("Transform is initialized with 16 values")
	}
	return Transform{
		d00: a[0] - 1, x01: a[1], x02: a[2], x03: a[3],
		x10: a[4], d11: a[5] - 1, x12: a[6], x13: a[7],
		x20: a[8], x21: a[9], d22: a[10] - 1, x23: a[11],
		x30: a[12], x31: a[13], x32: a[14], d33: a[15] - 1,
	}
}

// Rigid returns the transform that rotates by the unit quaternion q
// and then translates by position.
func Rigid(q r3.Rotation, position r3.Vec) Transform {
	x2 := q.Imag + q.Imag
	y2 := q.Jmag + q.Jmag
	z2 := q.Kmag + q.Kmag
	xx := q.Imag * x2
	yy := q.Jmag * y2
	zz := q.Kmag * z2
	xy := q.Imag * y2
	xz := q.Imag * z2
	yz := q.Jmag * z2
	wx := q.Real * x2
	wy := q.Real * y2
	wz := q.Real * z2
	return Transform{
		d00: -(yy + zz), x01: xy - wz, x02: xz + wy, x03: position.X,
		x10: xy + wz, d11: -(xx + zz), x12: yz - wx, x13: position.Y,
		x20: xz - wy, x21: yz + wx, d22: -(xx + yy), x23: position.Z,
	}
}

// Translate3D returns a pure translation transform.
func Translate3D(v r3.Vec) Transform {
	return Transform{x03: v.X, x13: v.Y, x23: v.Z}
}

// RotateZ returns a transform rotating by theta radians about the z-axis
// (right hand rule).
func RotateZ(theta float64) Transform {
	s, c := math.Sincos(theta)
	return Transform{
		d00: c - 1, x01: -s,
		x10: s, d11: c - 1,
	}
}

// Transform applies the Transform to the argument point.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	w := 1 / (t.x30*v.X + t.x31*v.Y + t.x32*v.Z + t.d33 + 1)
	return r3.Vec{
		X: ((t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z + t.x03) * w,
		Y: (t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z + t.x13) * w,
		Z: (t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z + t.x23) * w,
	}
}

// Mul returns the product t*b. Applied to a point, b acts first.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	a := t.SliceCopy()
	c := b.SliceCopy()
	var m [16]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[4*i+k] * c[4*k+j]
			}
			m[4*i+j] = sum
		}
	}
	return NewTransform(m[:])
}

// RotationDet returns the determinant of the upper-left 3x3 block.
// It is 1 for proper rigid transforms.
func (t Transform) RotationDet() float64 {
	x00 := t.d00 + 1
	x11 := t.d11 + 1
	x22 := t.d22 + 1
	return x00*(x11*x22-t.x12*t.x21) -
		t.x01*(t.x10*x22-t.x12*t.x20) +
		t.x02*(t.x10*t.x21-x11*t.x20)
}

// EqualWithin tests the equality of the Transforms to within a tolerance.
func (t Transform) EqualWithin(b Transform, tolerance float64) bool {
	a := t.SliceCopy()
	c := b.SliceCopy()
	for i := range a {
		if math.Abs(a[i]-c[i]) > tolerance {
			return false
		}
	}
	return true
}

// SliceCopy returns a copy of the Transform's data
// in row major storage format. It returns 16 elements.
func (t Transform) SliceCopy() []float64 {
	return []float64{
		t.d00 + 1, t.x01, t.x02, t.x03,
		t.x10, t.d11 + 1, t.x12, t.x13,
		t.x20, t.x21, t.d22 + 1, t.x23,
		t.x30, t.x31, t.x32, t.d33 + 1,
	}
}
