// Package preview builds extruded solids of gears and gear scenes so that a
// solved assembly can be inspected as an STL mesh.
package preview

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/obj"
	sdfrender "github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/gearmesh"
	"github.com/soypat/gearmesh/render"
	"github.com/soypat/gearmesh/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoProfile is returned for gear kinds without a tooth profile generator.
var ErrNoProfile = errors.New("no tooth profile for gear kind")

const (
	defaultPressureAngle = 20
	defaultRackTeeth     = 12
	facets               = 8
	// dedendum is the root depth below the pitch line in modules.
	dedendum = 1.25
	// rim is the ring gear wall thickness beyond the pitch circle in modules.
	rim = 3.0
)

// Solid returns the gear extruded to height along +Z, centered on z=0.
// The pitch circle is centered at the origin; racks have their pitch line
// on the y axis with teeth pointing towards +X.
func Solid(g gearmesh.Gear, height float64) (sdf.SDF3, error) {
	if height <= 0 {
		return nil, errors.New("preview: height must be positive")
	}
	profile, err := Profile(g)
	if err != nil {
		return nil, err
	}
	return sdf.Extrude3D(profile, height), nil
}

// Profile returns the 2D tooth profile of g.
func Profile(g gearmesh.Gear) (sdf.SDF2, error) {
	pa := g.PressureAngle
	if pa == 0 {
		pa = defaultPressureAngle
	}
	switch g.Kind {
	case gearmesh.ExternalInvolute:
		m, err := module(g)
		if err != nil {
			return nil, err
		}
		return pinion(g.Teeth, m, pa)

	case gearmesh.InternalInvolute:
		m, err := module(g)
		if err != nil {
			return nil, err
		}
		teeth, err := pinion(g.Teeth, m, pa)
		if err != nil {
			return nil, err
		}
		outer, err := sdf.Circle2D(float64(g.Teeth)*m/2 + rim*m)
		if err != nil {
			return nil, err
		}
		return sdf.Difference2D(outer, teeth), nil

	case gearmesh.InvoluteRack:
		if !(g.Module > 0) {
			return nil, fmt.Errorf("preview: %s module must be positive", g.Kind)
		}
		n := g.Teeth
		if n < 1 {
			n = defaultRackTeeth
		}
		base := g.Module
		rack, err := sdf.GearRack2D(&sdf.GearRackParms{
			NumberTeeth:   n,
			Module:        g.Module,
			PressureAngle: gearmesh.DtoR(pa),
			BaseHeight:    base,
		})
		if err != nil {
			return nil, err
		}
		// sdfx racks sit on y=0 with teeth towards +y; the pitch line is one
		// dedendum above the base.
		pitchLine := base + dedendum*g.Module
		place := sdf.Rotate2d(-math.Pi / 2).Mul(sdf.Translate2d(v2.Vec{Y: -pitchLine}))
		return sdf.Transform2D(rack, place), nil
	}
	return nil, fmt.Errorf("%w %s", ErrNoProfile, g.Kind)
}

// pinion returns a solid involute gear profile. A zero ring width leaves
// no bore.
func pinion(teeth int, m, pressureAngle float64) (sdf.SDF2, error) {
	return obj.InvoluteGear(&obj.InvoluteGearParms{
		NumberTeeth:   teeth,
		Module:        m,
		PressureAngle: gearmesh.DtoR(pressureAngle),
		Clearance:     (dedendum - 1) * m,
		Facets:        facets,
	})
}

func module(g gearmesh.Gear) (float64, error) {
	if g.Teeth < 1 {
		return 0, fmt.Errorf("preview: %s needs at least one tooth", g.Kind)
	}
	if g.Module > 0 {
		return g.Module, nil
	}
	if g.PitchDiameter > 0 {
		return g.PitchDiameter / float64(g.Teeth), nil
	}
	return 0, fmt.Errorf("preview: %s needs a module or pitch diameter", g.Kind)
}

// Assembly returns the union of the solids of every gear node of sc, each
// moved to its node placement. Nodes whose gear has no profile are skipped.
func Assembly(sc *scene.Scene, height float64) (sdf.SDF3, error) {
	var parts []sdf.SDF3
	for _, n := range sc.Nodes() {
		if !n.HasGear() {
			continue
		}
		s, err := Solid(n.Gear(), height)
		if errors.Is(err, ErrNoProfile) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Name, err)
		}
		parts = append(parts, sdf.Transform3D(s, Matrix(n.Placement())))
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("preview: scene has no gear to draw: %w", ErrNoProfile)
	}
	return sdf.Union3D(parts...), nil
}

// Matrix returns the sdfx transform equivalent to p.
func Matrix(p gearmesh.Placement) sdf.M44 {
	axis, angle := p.AxisAngle()
	return sdf.Translate3d(vec(p.Base)).Mul(sdf.Rotate3d(vec(axis), angle))
}

// Mesh tessellates s with marching cubes over a grid of cells along its
// longest side. Triangles that collapse in single precision are dropped.
func Mesh(s sdf.SDF3, cells int) []render.Triangle3 {
	tris := sdfrender.ToTriangles(s, sdfrender.NewMarchingCubesUniform(cells))
	out := make([]render.Triangle3, 0, len(tris))
	for _, t := range tris {
		tri := render.Triangle3{r3Vec(t[0]), r3Vec(t[1]), r3Vec(t[2])}
		if tri.Degenerate() {
			continue
		}
		out = append(out, tri)
	}
	return out
}

// WriteSTL meshes s and writes it as a binary STL file to path.
func WriteSTL(path string, s sdf.SDF3, cells int) error {
	if cells < 2 {
		return errors.New("preview: need at least two cells")
	}
	return render.CreateSTL(path, Mesh(s, cells))
}

func vec(v r3.Vec) v3.Vec { return v3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
func r3Vec(v v3.Vec) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
