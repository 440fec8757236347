// Package scene is a minimal host object model for gear connectors:
// named nodes carrying a placement and optionally a gear, and the
// connectors linking them. Scenes are built in code or loaded from TOML or
// YAML files.
package scene

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/soypat/gearmesh"
	"github.com/soypat/gearmesh/connector"
)

// ErrInvalidScene is matched by errors reporting an inconsistent scene.
var ErrInvalidScene = errors.New("invalid scene")

// Node is a named scene object. It is both a connector.GearSource and a
// connector.Anchor.
type Node struct {
	Name      string
	gear      *gearmesh.Gear
	placement gearmesh.Placement
}

// Gear returns the node's gear descriptor, the zero Gear if it has none.
func (n *Node) Gear() gearmesh.Gear {
	if n.gear == nil {
		return gearmesh.Gear{}
	}
	return *n.gear
}

// HasGear reports whether the node carries a gear.
func (n *Node) HasGear() bool { return n.gear != nil }

// SetGear replaces the node's gear descriptor.
func (n *Node) SetGear(g gearmesh.Gear) { n.gear = &g }

// Placement returns the node's current world placement.
func (n *Node) Placement() gearmesh.Placement { return n.placement }

// SetPlacement moves the node. Connectors driven by it see the new
// placement on their next update.
func (n *Node) SetPlacement(p gearmesh.Placement) { n.placement = p }

// Scene holds nodes and the connectors between them. Connectors run in
// the order they were added so a slave may drive a later connector.
type Scene struct {
	nodes      map[string]*Node
	order      []*Node
	connectors []*connector.Connector
	logger     *log.Logger
	solver     gearmesh.Solver
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger passed to every connector of the scene.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) { s.logger = l }
}

// WithSolver sets the solver configuration of every connector of the scene.
func WithSolver(solver gearmesh.Solver) Option {
	return func(s *Scene) { s.solver = solver }
}

// New returns an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{nodes: make(map[string]*Node)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddNode adds a node. gear may be nil for anchors without a gear.
func (s *Scene) AddNode(name string, p gearmesh.Placement, gear *gearmesh.Gear) (*Node, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: node without name", ErrInvalidScene)
	}
	if _, ok := s.nodes[name]; ok {
		return nil, fmt.Errorf("%w: duplicate node %q", ErrInvalidScene, name)
	}
	n := &Node{Name: name, placement: p}
	if gear != nil {
		n.SetGear(*gear)
	}
	s.nodes[name] = n
	s.order = append(s.order, n)
	return n, nil
}

// Link describes a connector between scene nodes by name. Empty anchor
// names use the gear nodes as anchors.
type Link struct {
	Name         string
	Master       string
	Slave        string
	MasterAnchor string
	SlaveAnchor  string
	Angle1       float64
	Angle2       float64
}

// Connect adds a connector. A Link without a name is given a random one.
func (s *Scene) Connect(l Link) (*connector.Connector, error) {
	if l.Name == "" {
		l.Name = uuid.NewString()
	}
	if _, ok := s.Connector(l.Name); ok {
		return nil, fmt.Errorf("%w: duplicate connector %q", ErrInvalidScene, l.Name)
	}
	master, err := s.gearNode(l.Name, "master", l.Master)
	if err != nil {
		return nil, err
	}
	slave, err := s.gearNode(l.Name, "slave", l.Slave)
	if err != nil {
		return nil, err
	}
	masterAnchor, err := s.anchor(l.Name, l.MasterAnchor)
	if err != nil {
		return nil, err
	}
	slaveAnchor, err := s.anchor(l.Name, l.SlaveAnchor)
	if err != nil {
		return nil, err
	}
	opts := []connector.Option{
		connector.WithName(l.Name),
		connector.WithAngles(l.Angle1, l.Angle2),
		connector.WithAnchors(masterAnchor, slaveAnchor),
		connector.WithSolver(s.solver),
	}
	if s.logger != nil {
		opts = append(opts, connector.WithLogger(s.logger))
	}
	c, err := connector.New(master, slave, opts...)
	if err != nil {
		return nil, err
	}
	s.connectors = append(s.connectors, c)
	return c, nil
}

func (s *Scene) gearNode(conn, role, name string) (*Node, error) {
	n, ok := s.nodes[name]
	switch {
	case !ok:
		return nil, fmt.Errorf("%w: connector %s: %s node %q not found", ErrInvalidScene, conn, role, name)
	case !n.HasGear():
		return nil, fmt.Errorf("%w: connector %s: %s node %q has no gear", ErrInvalidScene, conn, role, name)
	}
	return n, nil
}

// anchor returns nil for an empty name so the connector default applies.
func (s *Scene) anchor(conn, name string) (connector.Anchor, error) {
	if name == "" {
		return nil, nil
	}
	n, ok := s.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: connector %s: anchor node %q not found", ErrInvalidScene, conn, name)
	}
	return n, nil
}

// Node returns the node with the given name.
func (s *Scene) Node(name string) (*Node, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// Nodes returns the nodes in the order they were added.
func (s *Scene) Nodes() []*Node { return append([]*Node(nil), s.order...) }

// Connector returns the connector with the given name.
func (s *Scene) Connector(name string) (*connector.Connector, bool) {
	for _, c := range s.connectors {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Connectors returns the connectors in update order.
func (s *Scene) Connectors() []*connector.Connector {
	return append([]*connector.Connector(nil), s.connectors...)
}

// Update runs every connector in order and stops at the first error.
func (s *Scene) Update() error {
	for _, c := range s.connectors {
		if err := c.Update(); err != nil {
			return err
		}
	}
	return nil
}
