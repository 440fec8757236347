package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/soypat/gearmesh"
	"github.com/soypat/gearmesh/internal/d3"
	"gopkg.in/yaml.v3"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown scene file extension %q", filepath.Ext(path))
}

// defaultPressureAngle is used for gears that do not state one.
const defaultPressureAngle = 20

// File is the on-disk layout of a scene. TOML and YAML share field names.
type File struct {
	Nodes      []NodeSpec `toml:"node" yaml:"node"`
	Connectors []LinkSpec `toml:"connector" yaml:"connector"`
}

// NodeSpec describes a node. The rotation is Angle degrees about Axis;
// a zero Axis means the z-axis.
type NodeSpec struct {
	Name     string     `toml:"name" yaml:"name"`
	Position [3]float64 `toml:"position" yaml:"position"`
	Axis     [3]float64 `toml:"axis" yaml:"axis"`
	Angle    float64    `toml:"angle" yaml:"angle"`
	Gear     *GearSpec  `toml:"gear" yaml:"gear"`
}

// GearSpec describes a gear. When PitchDiameter is omitted it is
// Module × Teeth.
type GearSpec struct {
	Kind          gearmesh.GearKind `toml:"kind" yaml:"kind"`
	PitchDiameter float64           `toml:"pitch_diameter" yaml:"pitch_diameter"`
	Teeth         int               `toml:"teeth" yaml:"teeth"`
	Module        float64           `toml:"module" yaml:"module"`
	PressureAngle float64           `toml:"pressure_angle" yaml:"pressure_angle"`
	Shift         float64           `toml:"shift" yaml:"shift"`
}

// LinkSpec describes a connector.
type LinkSpec struct {
	Name         string  `toml:"name" yaml:"name"`
	Master       string  `toml:"master" yaml:"master"`
	Slave        string  `toml:"slave" yaml:"slave"`
	MasterAnchor string  `toml:"master_anchor" yaml:"master_anchor"`
	SlaveAnchor  string  `toml:"slave_anchor" yaml:"slave_anchor"`
	Angle1       float64 `toml:"angle1" yaml:"angle1"`
	Angle2       float64 `toml:"angle2" yaml:"angle2"`
}

// Load reads a scene file, picking the decoder from the file extension.
func Load(path string, opts ...Option) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	s, err := Decode(fp, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads a scene in the given format and builds it.
func Decode(r io.Reader, format Format, opts ...Option) (*Scene, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidScene, undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: empty file", ErrInvalidScene)
			}
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported scene format %q", format)
	}
	return Build(f, opts...)
}

// Build creates the scene described by f.
func Build(f File, opts ...Option) (*Scene, error) {
	s := New(opts...)
	for _, ns := range f.Nodes {
		var g *gearmesh.Gear
		if ns.Gear != nil {
			gear := ns.Gear.gear()
			g = &gear
		}
		if _, err := s.AddNode(ns.Name, ns.placement(), g); err != nil {
			return nil, err
		}
	}
	for _, ls := range f.Connectors {
		_, err := s.Connect(Link{
			Name:         ls.Name,
			Master:       ls.Master,
			Slave:        ls.Slave,
			MasterAnchor: ls.MasterAnchor,
			SlaveAnchor:  ls.SlaveAnchor,
			Angle1:       ls.Angle1,
			Angle2:       ls.Angle2,
		})
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (ns NodeSpec) placement() gearmesh.Placement {
	axis := d3.FromArray(ns.Axis)
	if d3.IsZero(axis) {
		axis = gearmesh.MeshAxis
	}
	return gearmesh.RotationAbout(axis, ns.Angle).Move(d3.FromArray(ns.Position))
}

func (gs GearSpec) gear() gearmesh.Gear {
	g := gearmesh.Gear{
		Kind:          gs.Kind,
		PitchDiameter: gs.PitchDiameter,
		Teeth:         gs.Teeth,
		Module:        gs.Module,
		PressureAngle: gs.PressureAngle,
		Shift:         gs.Shift,
	}
	if g.PitchDiameter == 0 && !g.Kind.IsRack() {
		g.PitchDiameter = g.Module * float64(g.Teeth)
	}
	if g.PressureAngle == 0 {
		g.PressureAngle = defaultPressureAngle
	}
	return g
}
