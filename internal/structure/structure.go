package structure

import (
	"github.com/alexiusacademia/gostatics/internal/element"
	"github.com/alexiusacademia/gostatics/internal/equation"
)

// Structure aggregates the linkages and connections of one diagram.
// Equations are generated on demand and never cached.
type Structure struct {
	arena       *element.Arena
	linkages    []*element.Linkage
	connections []*element.Connection
}

// New returns an empty structure with its own allocator
func New() *Structure {
	return &Structure{arena: element.NewArena()}
}

// Arena returns the allocator used to create elements for this structure
func (s *Structure) Arena() *element.Arena {
	return s.arena
}

// Linkages returns the linkages in insertion order
func (s *Structure) Linkages() []*element.Linkage {
	return append([]*element.Linkage(nil), s.linkages...)
}

// Connections returns the connections in insertion order
func (s *Structure) Connections() []*element.Connection {
	return append([]*element.Connection(nil), s.connections...)
}

// AddLinkage appends a linkage
func (s *Structure) AddLinkage(l *element.Linkage) {
	s.linkages = append(s.linkages, l)
}

// AddConnection appends a connection
func (s *Structure) AddConnection(c *element.Connection) {
	s.connections = append(s.connections, c)
}

// RemoveLinkage deletes a linkage
func (s *Structure) RemoveLinkage(l *element.Linkage) bool {
	for i, x := range s.linkages {
		if x == l {
			s.linkages = append(s.linkages[:i], s.linkages[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveConnection deletes a connection and releases the conditions it
// placed on its points.
func (s *Structure) RemoveConnection(c *element.Connection) bool {
	for i, x := range s.connections {
		if x == c {
			for _, p := range c.Points() {
				c.RemovePoint(p)
			}
			s.connections = append(s.connections[:i], s.connections[i+1:]...)
			return true
		}
	}
	return false
}

// RemovePointFromLinkage drops p from l and deletes l when it degenerates.
// It reports whether the linkage was deleted.
func (s *Structure) RemovePointFromLinkage(l *element.Linkage, p *element.Point) bool {
	l.RemovePoint(p)
	if l.Degenerate() {
		return s.RemoveLinkage(l)
	}
	return false
}

// RemovePointFromConnection drops p from c and deletes c once it has no
// points left. It reports whether the connection was deleted.
func (s *Structure) RemovePointFromConnection(c *element.Connection, p *element.Point) bool {
	c.RemovePoint(p)
	if c.Empty() {
		return s.RemoveConnection(c)
	}
	return false
}

// Points returns every distinct point, in first-seen order over linkages
// then connections.
func (s *Structure) Points() []*element.Point {
	seen := make(map[int]bool)
	var points []*element.Point
	visit := func(ps []*element.Point) {
		for _, p := range ps {
			if !seen[p.ID] {
				seen[p.ID] = true
				points = append(points, p)
			}
		}
	}
	for _, l := range s.linkages {
		visit(l.Points())
	}
	for _, c := range s.connections {
		visit(c.Points())
	}
	return points
}

// Loads returns the loads on every point followed by the loads owned by
// connections.
func (s *Structure) Loads() []*element.Load {
	var loads []*element.Load
	for _, p := range s.Points() {
		loads = append(loads, p.Loads()...)
	}
	for _, c := range s.connections {
		loads = append(loads, c.Loads()...)
	}
	return loads
}

// Equations returns the equilibrium equations of every linkage then every
// connection, in insertion order.
func (s *Structure) Equations() []equation.Equation {
	var eqs []equation.Equation
	for _, l := range s.linkages {
		eqs = append(eqs, l.Equilibrium()...)
	}
	for _, c := range s.connections {
		eqs = append(eqs, c.Equilibrium()...)
	}
	return eqs
}

// GenerateAllEquilibrium returns the text form of Equations
func (s *Structure) GenerateAllEquilibrium() []string {
	return equation.Strings(s.Equations())
}

// Variables maps every reaction and ground-reaction symbol to its variable.
func (s *Structure) Variables() map[string]*element.Variable {
	vars := make(map[string]*element.Variable)
	for _, p := range s.Points() {
		for _, v := range p.Reactions() {
			vars[v.Symbol] = v
		}
	}
	for _, c := range s.connections {
		if g := c.GroundReaction(); g != nil {
			vars[g.Symbol] = g
		}
	}
	return vars
}

// Checkpoint snapshots every reaction before solved values are written.
func (s *Structure) Checkpoint() {
	for _, p := range s.Points() {
		p.Checkpoint()
	}
	for _, c := range s.connections {
		c.Checkpoint()
	}
}

// ClearSolution restores the symbolic state held by the last checkpoint.
func (s *Structure) ClearSolution() {
	for _, p := range s.Points() {
		p.Restore()
	}
	for _, c := range s.connections {
		c.Restore()
	}
}
