package gearmesh

import (
	"math"
	"testing"
)

func TestShiftedCenterDistance(t *testing.T) {
	for _, test := range []struct {
		module, alphaDeg float64
		z1, z2           int
		x1, x2           float64
		wantDist         float64
		wantAlphaWDeg    float64
	}{
		// Zero shift reduces to the nominal center distance.
		{2, 20, 20, 10, 0, 0, 30, 20},
		{1, 14.5, 31, 17, 0.2, -0.2, 24, 14.5},
		// Worked example of a shifted spur pair.
		{3, 20, 12, 24, 0.6, 0.36, 56.4999, 26.0886},
		// Internal pair: ring tooth count and shift negated.
		{1, 20, -40, 20, 0, 0, -10, 20},
	} {
		dist, alphaW, err := ShiftedCenterDistance(test.module, DtoR(test.alphaDeg), test.z1, test.z2, test.x1, test.x2)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(dist-test.wantDist) > 1e-4 {
			t.Errorf("%+v: distance %g", test, dist)
		}
		if math.Abs(RtoD(alphaW)-test.wantAlphaWDeg) > 1e-4 {
			t.Errorf("%+v: working pressure angle %g°", test, RtoD(alphaW))
		}
	}
}

func TestInternalCenterDistance(t *testing.T) {
	alpha := DtoR(20)
	dist, alphaW, err := InternalCenterDistance(1, alpha, 40, 20, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(dist-10) > 1e-9 || math.Abs(alphaW-alpha) > 1e-9 {
		t.Errorf("zero shift: distance %g, working angle %g°", dist, RtoD(alphaW))
	}
	// Equal shifts on ring and pinion cancel.
	dist, _, err = InternalCenterDistance(1, alpha, 40, 20, 0.3, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(dist-10) > 1e-9 {
		t.Errorf("equal shifts: distance %g, want 10", dist)
	}
	if _, _, err := InternalCenterDistance(1, alpha, 20, 20, 0, 0); err == nil {
		t.Error("equal tooth counts accepted")
	}
}

func TestShiftedCenterDistanceIncreasesWithShift(t *testing.T) {
	alpha := DtoR(20)
	prev := math.Inf(-1)
	for _, x := range []float64{-0.3, -0.1, 0, 0.2, 0.5, 1} {
		dist, alphaW, err := ShiftedCenterDistance(2, alpha, 18, 30, x, x)
		if err != nil {
			t.Fatal(err)
		}
		if dist <= prev {
			t.Errorf("x=%g: distance %g not above %g", x, dist, prev)
		}
		want := 2*math.Tan(alpha)*(2*x)/48 + involute(alpha)
		if got := involute(alphaW); math.Abs(got-want) > 1e-12 {
			t.Errorf("x=%g: inv(αw) = %g, want %g", x, got, want)
		}
		prev = dist
	}
}

func TestShiftedCenterDistanceErrors(t *testing.T) {
	alpha := DtoR(20)
	for name, args := range map[string]struct {
		module, alpha float64
		z1, z2        int
		x1, x2        float64
	}{
		"zero module":       {0, alpha, 10, 10, 0.1, 0},
		"zero pressure":     {1, 0, 10, 10, 0.1, 0},
		"right angle":       {1, pi / 2, 10, 10, 0.1, 0},
		"zero tooth sum":    {1, alpha, -10, 10, 0.1, 0},
		"too much undercut": {1, alpha, 4, 4, -5, -5},
	} {
		if _, _, err := ShiftedCenterDistance(args.module, args.alpha, args.z1, args.z2, args.x1, args.x2); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
