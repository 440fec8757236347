package connector

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/soypat/gearmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// part is a gear that is its own anchor.
type part struct {
	gear      gearmesh.Gear
	placement gearmesh.Placement
}

func (p *part) Gear() gearmesh.Gear                { return p.gear }
func (p *part) Placement() gearmesh.Placement      { return p.placement }
func (p *part) SetPlacement(pl gearmesh.Placement) { p.placement = pl }

// shape is a gear without a placement of its own.
type shape struct{ gear gearmesh.Gear }

func (s shape) Gear() gearmesh.Gear { return s.gear }

func spur(dw float64, teeth int) gearmesh.Gear {
	return gearmesh.Gear{Kind: gearmesh.ExternalInvolute, PitchDiameter: dw, Teeth: teeth, Module: dw / float64(teeth), PressureAngle: 20}
}

func TestUpdatePlacesSlave(t *testing.T) {
	master := &part{gear: spur(40, 20), placement: gearmesh.Translation(r3.Vec{X: 5, Y: 5})}
	slave := &part{gear: spur(20, 10)}
	c, err := New(master, slave, WithName("drive"), WithAngles(30, 0))
	if err != nil {
		t.Fatal(err)
	}
	if c.Version != Version {
		t.Errorf("version %q", c.Version)
	}
	if err := c.Update(); err != nil {
		t.Fatal(err)
	}
	want, err := gearmesh.Solve(c.Pair())
	if err != nil {
		t.Fatal(err)
	}
	if slave.placement != want {
		t.Errorf("slave placement %v, want %v", slave.placement, want)
	}
	if master.placement != gearmesh.Translation(r3.Vec{X: 5, Y: 5}) {
		t.Errorf("master placement changed to %v", master.placement)
	}
	if c.Last().CenterDistance != 30 {
		t.Errorf("last center distance %g", c.Last().CenterDistance)
	}
}

func TestSeparateAnchors(t *testing.T) {
	masterAnchor := &part{placement: gearmesh.Translation(r3.Vec{Z: 2})}
	slaveAnchor := &part{}
	_, err := New(shape{spur(40, 20)}, shape{spur(20, 10)})
	if !errors.Is(err, errNoAnchor) {
		t.Fatalf("got %v, want errNoAnchor", err)
	}
	c, err := New(shape{spur(40, 20)}, shape{spur(20, 10)}, WithAnchors(masterAnchor, slaveAnchor))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Update(); err != nil {
		t.Fatal(err)
	}
	if got := slaveAnchor.placement.Base; got != (r3.Vec{X: 30, Z: 2}) {
		t.Errorf("slave anchor base %v", got)
	}
}

func TestNewRejectsUnsupportedPair(t *testing.T) {
	ring := spur(60, 30)
	ring.Kind = gearmesh.InternalInvolute
	_, err := New(&part{gear: spur(20, 10)}, &part{gear: ring})
	if !errors.Is(err, gearmesh.ErrUnsupportedPair) {
		t.Errorf("got %v, want ErrUnsupportedPair", err)
	}
	if _, err := New(nil, &part{}); err == nil {
		t.Error("nil master accepted")
	}
}

func TestFailedUpdateKeepsPlacement(t *testing.T) {
	var buf bytes.Buffer
	master := &part{gear: spur(40, 20)}
	slave := &part{gear: spur(20, 10)}
	c, err := New(master, slave, WithName("broken"), WithLogger(log.New(&buf)))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetAngles(10, 0); err != nil {
		t.Fatal(err)
	}
	before := slave.placement
	slave.gear.Teeth = 0
	err = c.SetAngles(20, 0)
	if !errors.Is(err, gearmesh.ErrDegenerateGeometry) {
		t.Fatalf("got %v, want ErrDegenerateGeometry", err)
	}
	if slave.placement != before {
		t.Errorf("placement changed on failed update")
	}
	if !strings.Contains(buf.String(), "slave not placed") {
		t.Errorf("missing warning in log output %q", buf.String())
	}
}

func TestSnapshotRestore(t *testing.T) {
	master := &part{gear: spur(40, 20)}
	slave := &part{gear: spur(20, 10)}
	c, err := New(master, slave)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetAngles(10, 0); err != nil {
		t.Fatal(err)
	}
	st := c.Snapshot()
	if err := c.SetAngles(70, 5); err != nil {
		t.Fatal(err)
	}
	c.Restore(st)
	if c.Angle1 != 10 || c.Angle2 != 0 {
		t.Errorf("angles %g, %g after restore", c.Angle1, c.Angle2)
	}
	if slave.placement != st.Slave || c.Last() != st.Last {
		t.Error("slave placement or last solution not restored")
	}
	if err := c.Update(); err != nil {
		t.Fatal(err)
	}
	if c.Last() != st.Last {
		t.Error("update after restore differs from the snapshot")
	}
}

func TestChainedConnectors(t *testing.T) {
	a := &part{gear: spur(40, 20)}
	b := &part{gear: spur(20, 10)}
	c := &part{gear: spur(30, 15)}
	ab, err := New(a, b)
	if err != nil {
		t.Fatal(err)
	}
	bc, err := New(b, c, WithAngles(90, 0))
	if err != nil {
		t.Fatal(err)
	}
	for _, conn := range []*Connector{ab, bc} {
		if err := conn.Update(); err != nil {
			t.Fatal(err)
		}
	}
	// b sits 30 along x; c sits 25 from b at 90°.
	want := r3.Vec{X: 30, Y: 25}
	got := c.placement.Base
	if r3.Norm(r3.Sub(got, want)) > 1e-9 {
		t.Errorf("c base %v, want %v", got, want)
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	c, err := New(&part{gear: spur(40, 20)}, &part{gear: gearmesh.Gear{Kind: gearmesh.InvoluteRack}}, WithLogger(logger), WithName("rack"))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetAngles(45, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "slave placed") || !strings.Contains(out, "connector=rack") {
		t.Errorf("unexpected log output %q", out)
	}
	if c.Last().RackTravel == 0 {
		t.Error("rack did not travel")
	}
}
