package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector helpers not provided by gonum.

func Elem(sides float64) r3.Vec {
	return r3.Vec{
		X: sides,
		Y: sides,
		Z: sides,
	}
}

func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// Finite returns true if no component is NaN or infinite.
func Finite(a r3.Vec) bool {
	return finite(a.X) && finite(a.Y) && finite(a.Z)
}

// IsZero returns true if all components are exactly zero.
func IsZero(a r3.Vec) bool { return a == (r3.Vec{}) }

// FromArray converts a [x, y, z] array to a vector.
func FromArray(a [3]float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
