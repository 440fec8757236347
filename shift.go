package gearmesh

import (
	"errors"
	"fmt"
	"math"
)

// CenterDistanceFunc computes the center distance and working pressure
// angle (radians) of a profile shifted gear pair. alpha is the reference
// pressure angle in radians, z1, z2 the tooth counts and x1, x2 the
// profile shift coefficients.
type CenterDistanceFunc func(module, alpha float64, z1, z2 int, x1, x2 float64) (dist, alphaW float64, err error)

const (
	involuteIterations = 100
	involuteTol        = 1e-15
)

var errNoWorkingAngle = errors.New("no working pressure angle for profile shift sum")

// ShiftedCenterDistance returns the working center distance and working
// pressure angle of two meshing profile shifted gears. It solves
//
//	inv(αw) = 2·tan(α)·(x1+x2)/(z1+z2) + inv(α)
//
// for αw, where inv(a) = tan(a) - a, and returns
//
//	a = m·(z1+z2)/2 · cos(α)/cos(αw)
//
// Negative tooth counts and shifts describe internal gears; the center
// distance then carries the sign of z1+z2.
func ShiftedCenterDistance(module, alpha float64, z1, z2 int, x1, x2 float64) (dist, alphaW float64, err error) {
	switch {
	case !finite(module) || module <= 0:
		return 0, 0, fmt.Errorf("shifted center distance: module must be positive, got %g", module)
	case !finite(alpha) || alpha <= 0 || alpha >= pi/2:
		return 0, 0, fmt.Errorf("shifted center distance: pressure angle %g rad outside (0, π/2)", alpha)
	case z1+z2 == 0:
		return 0, 0, errors.New("shifted center distance: tooth count sum is zero")
	}
	zs := float64(z1 + z2)
	target := 2*math.Tan(alpha)*(x1+x2)/zs + involute(alpha)
	if !finite(target) || target <= 0 {
		return 0, 0, fmt.Errorf("shifted center distance: %w (x1+x2=%g)", errNoWorkingAngle, x1+x2)
	}
	alphaW, err = inverseInvolute(target)
	if err != nil {
		return 0, 0, fmt.Errorf("shifted center distance: %w", err)
	}
	dist = module * zs / 2 * math.Cos(alpha) / math.Cos(alphaW)
	return dist, alphaW, nil
}

// InternalCenterDistance is ShiftedCenterDistance for a pinion meshing
// inside a ring gear. The ring tooth count and shift are given as positive
// values and the returned distance is the positive offset of the pinion
// axis from the ring axis.
func InternalCenterDistance(module, alpha float64, zRing, zPinion int, xRing, xPinion float64) (dist, alphaW float64, err error) {
	dist, alphaW, err = ShiftedCenterDistance(module, alpha, -zRing, zPinion, -xRing, xPinion)
	if err != nil {
		return 0, 0, err
	}
	return -dist, alphaW, nil
}

func involute(a float64) float64 { return math.Tan(a) - a }

// inverseInvolute finds a in (0, π/2) such that involute(a) = t using
// Newton steps safeguarded by bisection. involute is increasing and convex
// on the interval.
func inverseInvolute(t float64) (float64, error) {
	lo, hi := 0.0, pi/2
	// inv(a) >= a³/3 so the cube root estimate lies at or above the root.
	a := math.Min(math.Cbrt(3*t), 1.5)
	for i := 0; i < involuteIterations; i++ {
		f := involute(a) - t
		if f == 0 {
			return a, nil
		}
		if f < 0 {
			lo = a
		} else {
			hi = a
		}
		tan := math.Tan(a)
		next := a - f/(tan*tan)
		if !(next > lo && next < hi) {
			next = (lo + hi) / 2
		}
		if math.Abs(next-a) <= involuteTol*math.Max(1, a) {
			return next, nil
		}
		a = next
	}
	return 0, fmt.Errorf("inverse involute of %g did not converge", t)
}
