package preview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deadsy/sdfx/sdf"
)

// Material describes how a printed part deviates from its model.
type Material struct {
	Name string
	// Shrink is the thermal contraction once the part cools to room
	// temperature, as a fraction of the printed size.
	Shrink float64
}

var (
	// Exact leaves solids untouched.
	Exact = Material{Name: "exact"}
	// PLA (polylactic acid) is the most widely used 3D printing filament.
	PLA = Material{Name: "pla", Shrink: 0.2e-2}
	// PETG shrinks slightly more than PLA.
	PETG = Material{Name: "petg", Shrink: 0.4e-2}
	// ABS shrinks noticeably and usually needs compensation.
	ABS = Material{Name: "abs", Shrink: 0.7e-2}
)

var materials = map[string]Material{
	Exact.Name: Exact,
	PLA.Name:   PLA,
	PETG.Name:  PETG,
	ABS.Name:   ABS,
}

// LookupMaterial returns the material with the given case-insensitive name.
func LookupMaterial(name string) (Material, error) {
	m, ok := materials[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(materials))
		for n := range materials {
			names = append(names, n)
		}
		sort.Strings(names)
		return Material{}, fmt.Errorf("unknown material %q, want one of %s", name, strings.Join(names, ", "))
	}
	return m, nil
}

// Scale enlarges s about the origin so that it has its modeled size after
// the material shrinks.
func (m Material) Scale(s sdf.SDF3) sdf.SDF3 {
	if m.Shrink == 0 {
		return s
	}
	return sdf.ScaleUniform3D(s, 1/(1-m.Shrink))
}

func (m Material) String() string { return m.Name }
