package gearmesh

import (
	"math"
	"testing"

	"github.com/soypat/gearmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPlacementZeroValue(t *testing.T) {
	var p Placement
	v := r3.Vec{X: 1, Y: 2, Z: 3}
	if got := p.Apply(v); got != v {
		t.Errorf("zero placement moved %v to %v", v, got)
	}
	if q := p.Rotation(); q != (r3.Rotation{Real: 1}) {
		t.Errorf("zero placement rotation %v", q)
	}
	if RotationZ(0) != p || RotationAbout(r3.Vec{X: 1}, 0) != p || RotationAbout(r3.Vec{}, 90) != p {
		t.Error("zero rotations are not the zero placement")
	}
	if NewPlacement(r3.Vec{}, r3.Rotation{}) != p {
		t.Error("zero quaternion is not the identity")
	}
}

func TestPlacementMulOrder(t *testing.T) {
	// b acts first: rotate a quarter turn, then translate.
	p := Translation(r3.Vec{X: 10}).Mul(RotationZ(90))
	if got, want := p.Apply(r3.Vec{X: 1}), (r3.Vec{X: 10, Y: 1}); !d3.EqualWithin(got, want, tol) {
		t.Errorf("got %v, want %v", got, want)
	}
	p = RotationZ(90).Mul(Translation(r3.Vec{X: 10}))
	if got, want := p.Apply(r3.Vec{X: 1}), (r3.Vec{Y: 11}); !d3.EqualWithin(got, want, tol) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlacementMatchesMatrix(t *testing.T) {
	a := NewPlacement(r3.Vec{X: 1, Y: -3, Z: 2}, r3.NewRotation(0.9, r3.Vec{X: 1, Y: 1}))
	b := RotationAbout(r3.Vec{Y: 1, Z: 2}, -37).Move(r3.Vec{Z: 5})
	ab := a.Mul(b)
	ma, mb, mab := a.Matrix(), b.Matrix(), ab.Matrix()
	want := d3.NewTransform(ma[:]).Mul(d3.NewTransform(mb[:]))
	got := d3.NewTransform(mab[:])
	if !got.EqualWithin(want, tol) {
		t.Errorf("composed matrix\n%v\nwant\n%v", got.SliceCopy(), want.SliceCopy())
	}
	if det := got.RotationDet(); math.Abs(det-1) > tol {
		t.Errorf("determinant %g, want 1", det)
	}
	for _, v := range []r3.Vec{{X: 1}, {Y: -2, Z: 0.5}, {X: 3, Y: 3, Z: 3}} {
		if !d3.EqualWithin(ab.Apply(v), got.Transform(v), tol) {
			t.Errorf("Apply(%v) = %v, matrix gives %v", v, ab.Apply(v), got.Transform(v))
		}
	}
}

func TestPlacementInv(t *testing.T) {
	p := NewPlacement(r3.Vec{X: 4, Y: 5, Z: -6}, r3.NewRotation(2.1, r3.Vec{X: -1, Y: 0.3, Z: 0.2}))
	if id := p.Inv().Mul(p); !id.EqualWithin(Placement{}, tol) {
		t.Errorf("p⁻¹p = %v", id)
	}
	if id := p.Mul(p.Inv()); !id.EqualWithin(Placement{}, tol) {
		t.Errorf("pp⁻¹ = %v", id)
	}
}

func TestPlacementAxisAngle(t *testing.T) {
	for _, test := range []struct {
		axis    r3.Vec
		degrees float64
		want    r3.Vec
		wantDeg float64
	}{
		{r3.Vec{Z: 1}, 30, r3.Vec{Z: 1}, 30},
		{r3.Vec{Z: 2}, -30, r3.Vec{Z: -1}, 30},
		{r3.Vec{X: 1}, 270, r3.Vec{X: -1}, 90},
		{r3.Vec{Y: 1}, 180, r3.Vec{Y: 1}, 180},
	} {
		axis, angle := RotationAbout(test.axis, test.degrees).AxisAngle()
		if !d3.EqualWithin(axis, test.want, tol) || math.Abs(RtoD(angle)-test.wantDeg) > tol {
			t.Errorf("%v %g°: got axis %v angle %g°", test.axis, test.degrees, axis, RtoD(angle))
		}
	}
}

func TestPlacementTwist(t *testing.T) {
	tilt := RotationAbout(r3.Vec{X: 1}, 25)
	for _, deg := range []float64{-170, -90, 0, 45, 179} {
		spin := RotationZ(deg)
		// A tilt applied after the spin does not change the twist about z
		// when the tilt axis is perpendicular to z.
		if got := RtoD(spin.Mul(tilt).Twist(MeshAxis)); math.Abs(got-deg) > tol {
			t.Errorf("twist of %g° spin with tilt = %g°", deg, got)
		}
		if got := RtoD(spin.Twist(MeshAxis)); math.Abs(got-deg) > tol {
			t.Errorf("twist of %g° spin = %g°", deg, got)
		}
		if got := RtoD(spin.Twist(r3.Vec{Z: -3})); math.Abs(got+deg) > tol {
			t.Errorf("twist of %g° spin about -z = %g°", deg, got)
		}
	}
	if got := RtoD(RotationZ(270).Twist(MeshAxis)); math.Abs(got+90) > tol {
		t.Errorf("twist of 270° spin = %g°, want -90°", got)
	}
}

func TestPlacementIsFinite(t *testing.T) {
	if !RotationZ(10).Move(r3.Vec{X: 1}).IsFinite() {
		t.Error("finite placement reported non-finite")
	}
	if Translation(r3.Vec{Y: math.Inf(-1)}).IsFinite() {
		t.Error("infinite base reported finite")
	}
}
