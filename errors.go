package gearmesh

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPair is matched by errors returned for master and slave
	// kinds that do not mesh.
	ErrUnsupportedPair = errors.New("unsupported meshing pair")
	// ErrDegenerateGeometry is matched by errors returned for descriptors
	// or placements that would produce a NaN or infinite placement.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// PairError reports a master/slave kind combination the solver has no
// case for.
type PairError struct {
	Master, Slave GearKind
}

func (e *PairError) Error() string {
	return fmt.Sprintf("%s: %s master with %s slave", ErrUnsupportedPair, e.Master, e.Slave)
}

func (e *PairError) Unwrap() error { return ErrUnsupportedPair }

// GeometryError reports an input value that makes the placement undefined.
type GeometryError struct {
	Role  string // "master", "slave" or "pair"
	Field string
	Value float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s: %s %s is %g", ErrDegenerateGeometry, e.Role, e.Field, e.Value)
}

func (e *GeometryError) Unwrap() error { return ErrDegenerateGeometry }
