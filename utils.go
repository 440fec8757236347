package gearmesh

import "math"

const (
	pi = math.Pi
	// epsilon bounds quaternion components treated as zero.
	epsilon = 1e-12
)

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
