// Package connector links a master and a slave gear so that the slave's
// anchor object follows the master's placement.
//
// A Connector reads both gear descriptors and the master anchor placement
// on every Update, so changes made by the host between updates are picked
// up. Connectors are not safe for concurrent use; the host serializes
// updates.
package connector

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/soypat/gearmesh"
)

// Version is recorded in every new Connector.
const Version = "v0.1.0"

// GearSource supplies the current descriptor of a gear.
type GearSource interface {
	Gear() gearmesh.Gear
}

// Anchor is an object whose world placement can be read and assigned.
// The anchor of a gear may be the gear object itself or a parent grouping
// it with other geometry.
type Anchor interface {
	Placement() gearmesh.Placement
	SetPlacement(gearmesh.Placement)
}

// Connector drives the slave anchor from the master anchor.
type Connector struct {
	Name    string
	Version string

	Master, Slave             GearSource
	MasterAnchor, SlaveAnchor Anchor

	// Angle1 turns the slave around the master, in degrees.
	Angle1 float64
	// Angle2 offsets rack travel, in degrees.
	Angle2 float64

	Solver gearmesh.Solver

	logger *log.Logger
	last   gearmesh.Solution
}

// Option configures a Connector.
type Option func(*Connector)

// WithName sets the connector name used in logs and errors.
func WithName(name string) Option {
	return func(c *Connector) { c.Name = name }
}

// WithAnchors sets anchors distinct from the gear sources. A nil anchor
// keeps the default.
func WithAnchors(master, slave Anchor) Option {
	return func(c *Connector) {
		if master != nil {
			c.MasterAnchor = master
		}
		if slave != nil {
			c.SlaveAnchor = slave
		}
	}
}

// WithAngles sets the initial drive angles in degrees.
func WithAngles(angle1, angle2 float64) Option {
	return func(c *Connector) { c.Angle1, c.Angle2 = angle1, angle2 }
}

// WithSolver sets the solver configuration.
func WithSolver(s gearmesh.Solver) Option {
	return func(c *Connector) { c.Solver = s }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(c *Connector) { c.logger = l }
}

var errNoAnchor = errors.New("no anchor")

// New returns a connector between master and slave. Gear sources that also
// implement Anchor are their own anchors unless WithAnchors says otherwise.
// New checks that the gear kinds mesh but does not place the slave; call
// Update for that.
func New(master, slave GearSource, opts ...Option) (*Connector, error) {
	if master == nil || slave == nil {
		return nil, errors.New("connector: nil gear source")
	}
	c := &Connector{
		Version: Version,
		Master:  master,
		Slave:   slave,
	}
	if a, ok := master.(Anchor); ok {
		c.MasterAnchor = a
	}
	if a, ok := slave.(Anchor); ok {
		c.SlaveAnchor = a
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.MasterAnchor == nil {
		return nil, fmt.Errorf("connector %s: master: %w", c.Name, errNoAnchor)
	}
	if c.SlaveAnchor == nil {
		return nil, fmt.Errorf("connector %s: slave: %w", c.Name, errNoAnchor)
	}
	if _, err := gearmesh.Classify(master.Gear().Kind, slave.Gear().Kind); err != nil {
		return nil, fmt.Errorf("connector %s: %w", c.Name, err)
	}
	return c, nil
}

// Pair snapshots the current inputs of the connector.
func (c *Connector) Pair() gearmesh.MeshPair {
	return gearmesh.MeshPair{
		Master:          c.Master.Gear(),
		Slave:           c.Slave.Gear(),
		MasterPlacement: c.MasterAnchor.Placement(),
		DriveAngle1:     c.Angle1,
		DriveAngle2:     c.Angle2,
	}
}

// Update solves the current pair and assigns the result to the slave
// anchor. On error the slave anchor keeps its previous placement.
func (c *Connector) Update() error {
	sol, err := c.Solver.Solve(c.Pair())
	if err != nil {
		c.logger.Warn("slave not placed", "connector", c.Name, "err", err)
		return fmt.Errorf("connector %s: %w", c.Name, err)
	}
	c.SlaveAnchor.SetPlacement(sol.Placement)
	c.last = sol
	c.logger.Debug("slave placed",
		"connector", c.Name,
		"case", sol.Case,
		"distance", sol.CenterDistance,
		"placement", sol.Placement,
	)
	return nil
}

// SetAngles changes the drive angles and updates the slave.
func (c *Connector) SetAngles(angle1, angle2 float64) error {
	c.Angle1, c.Angle2 = angle1, angle2
	return c.Update()
}

// Last returns the solution of the last successful Update.
func (c *Connector) Last() gearmesh.Solution { return c.last }

// State is what Update changes on a connector and its slave anchor, plus
// the drive angles.
type State struct {
	Angle1, Angle2 float64
	Slave          gearmesh.Placement
	Last           gearmesh.Solution
}

// Snapshot records the connector's current State.
func (c *Connector) Snapshot() State {
	return State{Angle1: c.Angle1, Angle2: c.Angle2, Slave: c.SlaveAnchor.Placement(), Last: c.last}
}

// Restore puts back a State taken by Snapshot without solving.
func (c *Connector) Restore(st State) {
	c.Angle1, c.Angle2 = st.Angle1, st.Angle2
	c.SlaveAnchor.SetPlacement(st.Slave)
	c.last = st.Last
}
