package element

import (
	"fmt"

	"github.com/alexiusacademia/gostatics/internal/equation"
)

// Kind is the support or joint type of a connection
type Kind int

const (
	Fixed Kind = iota
	Pin
	PinJoint
	HorizontalRoller
	VerticalRoller
	Free
)

var kindNames = map[Kind]string{
	Fixed:            "fixed",
	Pin:              "pin",
	PinJoint:         "pinjoint",
	HorizontalRoller: "hroller",
	VerticalRoller:   "vroller",
	Free:             "free",
}

// String returns the persisted name of the kind
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown connection kind %q", s)
}

type axis int

const (
	noAxis axis = iota
	axisX
	axisY
)

func (a axis) String() string {
	switch a {
	case axisX:
		return "x"
	case axisY:
		return "y"
	}
	return ""
}

// boundaryCondition is the per-kind strategy a connection applies to its
// member points. grounded is true when the connection is a single-point
// support rather than a joint between bodies.
type boundaryCondition interface {
	apply(p *Point, grounded bool)
	// groundAxis is the direction of the connection's own ground reaction,
	// noAxis when the kind has none.
	groundAxis() axis
}

type fixedSupport struct{}

func (fixedSupport) apply(*Point, bool) {}
func (fixedSupport) groundAxis() axis   { return noAxis }

type pinSupport struct{}

func (pinSupport) apply(p *Point, _ bool) { p.Mz.Set(0) }
func (pinSupport) groundAxis() axis       { return noAxis }

// rollerSupport rolls along one axis and reacts along the other.
type rollerSupport struct {
	rolling axis
}

func (r rollerSupport) apply(p *Point, grounded bool) {
	p.Mz.Set(0)
	if !grounded {
		return
	}
	if r.rolling == axisX {
		p.Fx.Set(0)
	} else {
		p.Fy.Set(0)
	}
}

func (r rollerSupport) groundAxis() axis {
	if r.rolling == axisX {
		return axisY
	}
	return axisX
}

type freeJoint struct{}

func (freeJoint) apply(p *Point, _ bool) { p.zeroReactions() }
func (freeJoint) groundAxis() axis       { return noAxis }

func strategyFor(k Kind) boundaryCondition {
	switch k {
	case Pin, PinJoint:
		return pinSupport{}
	case HorizontalRoller:
		return rollerSupport{rolling: axisX}
	case VerticalRoller:
		return rollerSupport{rolling: axisY}
	case Free:
		return freeJoint{}
	default:
		return fixedSupport{}
	}
}

// Connection is a ground support (one point) or a rigid joint merging the
// points of several bodies. It re-applies its boundary condition to its
// points whenever membership or kind changes.
type Connection struct {
	ID   int
	Name string

	kind   Kind
	bc     boundaryCondition
	points []*Point
	loads  []*Load
	ground *Variable

	groundCheckpoint *State
}

func newConnection(id int, name string, kind Kind, points []*Point) *Connection {
	c := &Connection{ID: id, Name: name}
	c.setStrategy(kind)
	for _, p := range points {
		if c.has(p) {
			continue
		}
		c.adopt(p)
		c.points = append(c.points, p)
	}
	for _, p := range c.points {
		c.constrain(p)
	}
	return c
}

// RestoreConnection rebuilds a connection from persisted state. Point
// variables are taken as-is; no condition is re-applied. ground may be nil,
// in which case a fresh unknown is created for kinds that need one.
func RestoreConnection(id int, name string, kind Kind, points []*Point, loads []*Load, ground *Variable) *Connection {
	c := &Connection{ID: id, Name: name, points: points, loads: loads}
	c.setStrategy(kind)
	if ground != nil && c.ground != nil {
		c.ground = ground
	}
	return c
}

func (c *Connection) setStrategy(k Kind) {
	c.kind = k
	c.bc = strategyFor(k)
	c.groundCheckpoint = nil
	if a := c.bc.groundAxis(); a != noAxis {
		c.ground = NewUnknown(fmt.Sprintf("F_%s%s_ground", c.Name, a))
	} else {
		c.ground = nil
	}
}

// adopt moves the point's loads onto the connection so the total applied
// load is unchanged.
func (c *Connection) adopt(p *Point) {
	c.loads = append(c.loads, p.TakeLoads()...)
}

// constrain applies the boundary condition to p. A checkpoint taken under
// the previous condition no longer describes the point and is dropped.
func (c *Connection) constrain(p *Point) {
	p.checkpoint = nil
	c.bc.apply(p, c.grounded())
}

func (c *Connection) grounded() bool {
	return len(c.points) == 1
}

func (c *Connection) has(p *Point) bool {
	for _, x := range c.points {
		if x == p {
			return true
		}
	}
	return false
}

func (c *Connection) reapply() {
	for _, p := range c.points {
		p.release()
	}
	for _, p := range c.points {
		c.constrain(p)
	}
}

// Kind returns the current connection kind
func (c *Connection) Kind() Kind {
	return c.kind
}

// SetKind clears the conditions of every point, swaps the strategy and
// applies the new one.
func (c *Connection) SetKind(k Kind) {
	for _, p := range c.points {
		p.release()
	}
	c.setStrategy(k)
	for _, p := range c.points {
		c.constrain(p)
	}
}

// Points returns the member points in order
func (c *Connection) Points() []*Point {
	return append([]*Point(nil), c.points...)
}

// Loads returns the loads owned by the connection
func (c *Connection) Loads() []*Load {
	return append([]*Load(nil), c.loads...)
}

// GroundReaction returns the connection's own reaction unknown, or nil.
func (c *Connection) GroundReaction() *Variable {
	return c.ground
}

// Empty reports whether no points remain; the owner must then delete it.
func (c *Connection) Empty() bool {
	return len(c.points) == 0
}

// AddPoint makes p a member. Its loads move to the connection and the
// condition is applied to it; when a ground support becomes a joint the
// condition is re-applied to every point.
func (c *Connection) AddPoint(p *Point) {
	if c.has(p) {
		return
	}
	wasGrounded := c.grounded()
	c.adopt(p)
	c.points = append(c.points, p)
	if wasGrounded {
		c.reapply()
		return
	}
	c.constrain(p)
}

// RemovePoint drops p and clears its condition. Loads stay with the
// connection.
func (c *Connection) RemovePoint(p *Point) bool {
	for i, x := range c.points {
		if x != p {
			continue
		}
		c.points = append(c.points[:i], c.points[i+1:]...)
		p.release()
		if c.grounded() {
			c.reapply()
		}
		return true
	}
	return false
}

// AddLoad attaches a load to the connection
func (c *Connection) AddLoad(l *Load) {
	c.loads = append(c.loads, l)
}

// RemoveLoad detaches a load from the connection
func (c *Connection) RemoveLoad(l *Load) bool {
	var ok bool
	c.loads, ok = removeLoad(c.loads, l)
	return ok
}

// Equilibrium returns no equations for a ground support. For a joint it
// returns ΣFx and ΣFy: the negated point sums, the connection loads and
// the ground reaction along its axis.
func (c *Connection) Equilibrium() []equation.Equation {
	if len(c.points) < 2 {
		return nil
	}
	return []equation.Equation{
		c.forceSum(axisX, (*Point).TermsFx, loadFx),
		c.forceSum(axisY, (*Point).TermsFy, loadFy),
	}
}

func (c *Connection) forceSum(a axis, terms func(*Point) equation.Equation, pick func(*Load) *Variable) equation.Equation {
	var eq equation.Equation
	for _, p := range c.points {
		eq = append(eq, terms(p).Scale(-1)...)
	}
	eq = append(eq, componentTerms(c.loads, pick)...)
	if c.ground != nil && c.bc.groundAxis() == a {
		eq = append(eq, c.ground.Term())
	}
	return eq
}

// GenerateEquilibrium returns the text form of Equilibrium
func (c *Connection) GenerateEquilibrium() []string {
	return equation.Strings(c.Equilibrium())
}

// Checkpoint records the ground reaction state
func (c *Connection) Checkpoint() {
	if c.ground == nil || c.groundCheckpoint != nil {
		return
	}
	s := c.ground.save()
	c.groundCheckpoint = &s
}

// GroundCheckpoint returns the held ground reaction snapshot
func (c *Connection) GroundCheckpoint() (State, bool) {
	if c.groundCheckpoint == nil {
		return State{}, false
	}
	return *c.groundCheckpoint, true
}

// SetGroundCheckpoint installs a snapshot read back from persisted state.
// It is ignored when the kind has no ground reaction.
func (c *Connection) SetGroundCheckpoint(s State) {
	if c.ground == nil {
		return
	}
	c.groundCheckpoint = &s
}

// Restore returns the ground reaction to its checkpointed state
func (c *Connection) Restore() {
	if c.ground == nil || c.groundCheckpoint == nil {
		return
	}
	c.ground.restore(*c.groundCheckpoint)
	c.groundCheckpoint = nil
}
