package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type knownState [3]bool

func stateOf(p *Point) knownState {
	return knownState{p.Fx.Known(), p.Fy.Known(), p.Mz.Known()}
}

func TestConnectionBoundaryConditions(t *testing.T) {
	tcs := []struct {
		kind   Kind
		ground knownState
		joint  knownState
	}{
		{Fixed, knownState{false, false, false}, knownState{false, false, false}},
		{Pin, knownState{false, false, true}, knownState{false, false, true}},
		{PinJoint, knownState{false, false, true}, knownState{false, false, true}},
		{HorizontalRoller, knownState{true, false, true}, knownState{false, false, true}},
		{VerticalRoller, knownState{false, true, true}, knownState{false, false, true}},
		{Free, knownState{true, true, true}, knownState{true, true, true}},
	}
	for _, tc := range tcs {
		t.Run(tc.kind.String(), func(t *testing.T) {
			a := NewArena()
			p := a.NewPoint(0, 0)
			c := a.NewConnection(tc.kind, p)
			assert.Equal(t, tc.ground, stateOf(p))

			q := a.NewPoint(0, 0)
			c.AddPoint(q)
			assert.Equal(t, tc.joint, stateOf(p))
			assert.Equal(t, tc.joint, stateOf(q))

			require.True(t, c.RemovePoint(q))
			assert.Equal(t, knownState{}, stateOf(q))
			assert.Equal(t, tc.ground, stateOf(p))
		})
	}
}

func TestConnectionKindRoundTrip(t *testing.T) {
	kinds := []Kind{Fixed, Pin, PinJoint, HorizontalRoller, VerticalRoller, Free}
	for _, from := range kinds {
		for _, to := range kinds {
			a := NewArena()
			p, q := a.NewPoint(0, 0), a.NewPoint(0, 0)
			single := a.NewConnection(from, a.NewPoint(1, 1))
			joint := a.NewConnection(from, p, q)

			before := []knownState{stateOf(single.Points()[0]), stateOf(p), stateOf(q)}
			single.SetKind(to)
			joint.SetKind(to)
			single.SetKind(from)
			joint.SetKind(from)
			after := []knownState{stateOf(single.Points()[0]), stateOf(p), stateOf(q)}

			assert.Equal(t, before, after, "%s -> %s -> %s", from, to, from)
		}
	}
}

func TestConnectionTakesPointLoads(t *testing.T) {
	a := NewArena()
	p := a.NewPoint(0, 0)
	f := a.NewForce(5, -20)
	p.AddLoad(f)

	c := a.NewConnection(Pin, p)
	assert.Empty(t, p.Loads())
	assert.Equal(t, []*Load{f}, c.Loads())
	assert.Equal(t, knownState{false, false, true}, stateOf(p))

	c.RemovePoint(p)
	assert.True(t, c.Empty())
	assert.Equal(t, []*Load{f}, c.Loads())
}

func TestConnectionGroundSupportHasNoEquations(t *testing.T) {
	a := NewArena()
	c := a.NewConnection(HorizontalRoller, a.NewPoint(0, 0))
	assert.Empty(t, c.Equilibrium())
	assert.Empty(t, c.GenerateEquilibrium())
}

func TestConnectionJointEquations(t *testing.T) {
	a := NewArena()
	p := a.NewPoint(0, 0)
	q := a.NewPoint(0, 0)
	c := a.NewConnection(PinJoint, p, q)
	c.AddLoad(a.NewForce(7, -3))

	assert.Equal(t, []string{
		"-1*F_P1x+-1*F_P2x+7",
		"-1*F_P1y+-1*F_P2y+-3",
	}, c.GenerateEquilibrium())
}

func TestConnectionRollerGroundTerm(t *testing.T) {
	a := NewArena()
	p := a.NewPoint(0, 0)
	q := a.NewPoint(0, 0)

	c := a.NewConnection(HorizontalRoller, p, q)
	require.NotNil(t, c.GroundReaction())
	assert.Equal(t, "F_C1y_ground", c.GroundReaction().Symbol)
	assert.Equal(t, []string{
		"-1*F_P1x+-1*F_P2x",
		"-1*F_P1y+-1*F_P2y+1*F_C1y_ground",
	}, c.GenerateEquilibrium())

	c.SetKind(VerticalRoller)
	assert.Equal(t, "F_C1x_ground", c.GroundReaction().Symbol)
	assert.Equal(t, []string{
		"-1*F_P1x+-1*F_P2x+1*F_C1x_ground",
		"-1*F_P1y+-1*F_P2y",
	}, c.GenerateEquilibrium())

	c.SetKind(Pin)
	assert.Nil(t, c.GroundReaction())
}

func TestConnectionGroundCheckpoint(t *testing.T) {
	a := NewArena()
	c := a.NewConnection(VerticalRoller, a.NewPoint(0, 0), a.NewPoint(0, 0))
	g := c.GroundReaction()

	c.Checkpoint()
	g.Set(42)
	c.Restore()
	assert.False(t, g.Known())
}

func TestSetKindDropsCheckpoint(t *testing.T) {
	a := NewArena()
	p := a.NewPoint(0, 0)
	c := a.NewConnection(Pin, p)

	// solved values written over a pin
	p.Checkpoint()
	p.Fx.Set(0)
	p.Fy.Set(50)

	c.SetKind(Fixed)
	assert.False(t, p.HasCheckpoint())
	assert.Equal(t, knownState{false, false, false}, stateOf(p))

	// a later solve snapshots the fixed state, which is what clearing restores
	p.Checkpoint()
	p.Fx.Set(0)
	p.Fy.Set(50)
	p.Mz.Set(-5000)
	p.Restore()
	assert.Equal(t, knownState{false, false, false}, stateOf(p))
}

func TestMembershipChangeDropsCheckpoint(t *testing.T) {
	a := NewArena()
	p, q := a.NewPoint(0, 0), a.NewPoint(0, 0)
	c := a.NewConnection(HorizontalRoller, p)

	p.Checkpoint()
	q.Checkpoint()
	c.AddPoint(q)
	assert.False(t, p.HasCheckpoint())
	assert.False(t, q.HasCheckpoint())

	p.Checkpoint()
	c.RemovePoint(q)
	assert.False(t, p.HasCheckpoint())
	assert.Equal(t, knownState{true, false, true}, stateOf(p))
}

func TestGroundCheckpointAccessors(t *testing.T) {
	a := NewArena()
	c := a.NewConnection(VerticalRoller, a.NewPoint(0, 0), a.NewPoint(0, 0))

	_, ok := c.GroundCheckpoint()
	assert.False(t, ok)

	c.SetGroundCheckpoint(State{})
	c.GroundReaction().Set(12)
	s, ok := c.GroundCheckpoint()
	require.True(t, ok)
	assert.False(t, s.Known)

	c.Restore()
	assert.False(t, c.GroundReaction().Known())

	pin := a.NewConnection(Pin, a.NewPoint(0, 0))
	pin.SetGroundCheckpoint(State{Known: true, Value: 1})
	_, ok = pin.GroundCheckpoint()
	assert.False(t, ok)
}

func TestParseKind(t *testing.T) {
	for k, name := range kindNames {
		got, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("hinge")
	assert.Error(t, err)
}
