package nscp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gostatics/internal/element"
	"github.com/alexiusacademia/gostatics/internal/solver"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

// beam is a 100-unit simply supported beam with a dead and a live load at
// midspan.
func beam() (*structure.Structure, *element.Load, *element.Load) {
	st := structure.New()
	a := st.Arena()

	p1 := a.NewPoint(0, 0)
	p2 := a.NewPoint(100, 0)
	p3 := a.NewPoint(50, 0)

	dead := a.NewForce(0, -100)
	dead.Case = Dead
	live := a.NewForce(0, -50)
	live.Case = Live
	p3.AddLoad(dead)
	p3.AddLoad(live)

	st.AddLinkage(a.NewLinkage(p1, p3, p2))
	st.AddConnection(a.NewConnection(element.Pin, p1))
	st.AddConnection(a.NewConnection(element.HorizontalRoller, p2))
	return st, dead, live
}

func TestFactor(t *testing.T) {
	lc := LoadCombinations[1]

	f, err := lc.Factor(Live)
	require.NoError(t, err)
	assert.Equal(t, 1.6, f)

	f, err = lc.Factor("")
	require.NoError(t, err)
	assert.Equal(t, 1.2, f)

	_, err = lc.Factor("snow")
	assert.Error(t, err)
}

func TestApplyRestores(t *testing.T) {
	st, dead, live := beam()

	restore, err := SimplifiedCombinations[1].Apply(st)
	require.NoError(t, err)

	v, _ := dead.Fy.Value()
	assert.InDelta(t, -120, v, 1e-12)
	v, _ = live.Fy.Value()
	assert.InDelta(t, -80, v, 1e-12)

	restore()
	v, _ = dead.Fy.Value()
	assert.Equal(t, -100.0, v)
	v, _ = live.Fy.Value()
	assert.Equal(t, -50.0, v)
}

func TestApplyUnknownCase(t *testing.T) {
	st, dead, live := beam()
	live.Case = "snow"

	_, err := SimplifiedCombinations[0].Apply(st)
	require.Error(t, err)

	v, _ := dead.Fy.Value()
	assert.Equal(t, -100.0, v)
}

func TestSolveAndEnvelope(t *testing.T) {
	st, _, _ := beam()

	outcomes, err := Solve(solver.New(nil, 0), st, SimplifiedCombinations)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	p1y, ok := outcomes[0].Solution.Lookup("F_P1y")
	require.True(t, ok)
	assert.InDelta(t, 70, p1y, 1e-9)

	p1y, ok = outcomes[1].Solution.Lookup("F_P1y")
	require.True(t, ok)
	assert.InDelta(t, 100, p1y, 1e-9)

	env := Envelope(outcomes)
	require.Len(t, env, 3)
	assert.Equal(t, "F_P1x", env[0].Symbol)
	assert.Equal(t, "1", env[0].Combination.ID)
	for _, g := range env[1:] {
		assert.InDelta(t, 100, g.Value, 1e-9, g.Symbol)
		assert.Equal(t, "2", g.Combination.ID)
	}
}

func TestSolveUnstable(t *testing.T) {
	st := structure.New()
	a := st.Arena()
	st.AddLinkage(a.NewLinkage(a.NewPoint(0, 0), a.NewPoint(10, 0)))

	_, err := Solve(solver.New(nil, 0), st, SimplifiedCombinations)
	assert.ErrorIs(t, err, solver.ErrSingularSystem)
}
