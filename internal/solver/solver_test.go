package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gostatics/internal/element"
	"github.com/alexiusacademia/gostatics/internal/equation"
	"github.com/alexiusacademia/gostatics/internal/sample"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

const tol = 1e-9

func TestSolveSimplySupportedBeam(t *testing.T) {
	st := sample.SimplySupportedBeam()

	assert.Equal(t, []string{
		"1*F_P1x+0+0+0",
		"1*F_P1y+0+-100+1*F_P2y",
		"0+0+-5000+0+100*F_P2y+0",
	}, st.GenerateAllEquilibrium())

	sol, err := New(zap.NewNop(), 0).Solve(st)
	require.NoError(t, err)

	got := sol.Map()
	assert.Len(t, got, 3)
	assert.InDelta(t, 0, got["F_P1x"], tol)
	assert.InDelta(t, 50, got["F_P1y"], tol)
	assert.InDelta(t, 50, got["F_P2y"], tol)
}

func TestSolveCantilever(t *testing.T) {
	sol, err := Solve(sample.Cantilever())
	require.NoError(t, err)

	got := sol.Map()
	assert.InDelta(t, 0, got["F_P1x"], tol)
	assert.InDelta(t, 10, got["F_P1y"], tol)
	assert.InDelta(t, 2000, got["M_P1z"], tol)
}

func TestSolveThreeHingedArch(t *testing.T) {
	sol, err := Solve(sample.ThreeHingedArch())
	require.NoError(t, err)

	want := map[string]float64{
		"F_P1x": 25, "F_P1y": 75,
		"F_P5x": -25, "F_P5y": 25,
		"F_P3x": -25, "F_P3y": 25,
		"F_P4x": 25, "F_P4y": -25,
	}
	got := sol.Map()
	assert.Len(t, got, len(want))
	for sym, v := range want {
		assert.InDelta(t, v, got[sym], tol, sym)
	}
}

func TestSolveFreeFloatingLinkageIsSingular(t *testing.T) {
	st := structure.New()
	a := st.Arena()
	st.AddLinkage(a.NewLinkage(a.NewPoint(0, 0), a.NewPoint(10, 0)))

	sol, err := Solve(st)
	assert.ErrorIs(t, err, ErrSingularSystem)
	assert.Nil(t, sol)
}

func TestSolveSystemSquareSingular(t *testing.T) {
	sys, err := equation.Parse([]string{"1*a+1*b+-1", "2*a+2*b+-2"})
	require.NoError(t, err)

	_, err = New(nil, 0).SolveSystem(sys)
	assert.ErrorIs(t, err, ErrSingularSystem)
}

func TestSolveSystemEmpty(t *testing.T) {
	sol, err := New(nil, 0).SolveSystem(&equation.System{})
	require.NoError(t, err)
	assert.Empty(t, sol)
}

func TestSolveContradiction(t *testing.T) {
	st := structure.New()
	a := st.Arena()
	p1 := a.NewPoint(0, 0)
	p2 := a.NewPoint(100, 0)
	p2.AddLoad(a.NewForce(30, 0))
	st.AddLinkage(a.NewLinkage(p1, p2))
	// both ends roll horizontally, nothing resists the horizontal load
	st.AddConnection(a.NewConnection(element.HorizontalRoller, p1))

	_, err := Solve(st)
	assert.ErrorIs(t, err, equation.ErrUnsolvableEquation)
}

func TestApplyWritesBackAndClears(t *testing.T) {
	st := sample.SimplySupportedBeam()
	vars := st.Variables()

	sol, err := New(nil, 0).SolveAndApply(st)
	require.NoError(t, err)
	require.Len(t, sol, 3)

	v, err := vars["F_P2y"].Value()
	require.NoError(t, err)
	assert.InDelta(t, 50, v, tol)

	st.ClearSolution()
	_, err = vars["F_P2y"].Value()
	assert.ErrorIs(t, err, element.ErrValueNotSet)
	assert.True(t, vars["M_P1z"].Known(), "pin moment stays a known zero")

	// a cleared structure solves again to the same values
	again, err := Solve(st)
	require.NoError(t, err)
	assert.Equal(t, sol, again)
}

func TestClearSolutionAfterKindChange(t *testing.T) {
	st := sample.SimplySupportedBeam()
	s := New(nil, 0)
	_, err := s.SolveAndApply(st)
	require.NoError(t, err)

	p1 := st.Points()[0]
	pin := st.Connections()[0]
	require.Equal(t, "P1", p1.Name)

	pin.SetKind(element.Fixed)
	sol, err := s.SolveAndApply(st)
	require.NoError(t, err)
	mz, ok := sol.Lookup("M_P1z")
	require.True(t, ok)
	assert.InDelta(t, 0, mz, tol)

	st.ClearSolution()
	assert.False(t, p1.Fx.Known())
	assert.False(t, p1.Fy.Known())
	assert.False(t, p1.Mz.Known(), "a fixed support leaves the moment unknown")
	assert.False(t, st.Variables()["F_P2y"].Known())
}

func TestSolvedStructureSurvivesPersistence(t *testing.T) {
	for _, format := range []structure.Format{structure.JSON, structure.YAML} {
		t.Run(string(format), func(t *testing.T) {
			st := sample.SimplySupportedBeam()
			sol, err := New(nil, 0).SolveAndApply(st)
			require.NoError(t, err)

			data, err := structure.Marshal(st, format)
			require.NoError(t, err)
			back, err := structure.Unmarshal(data, format)
			require.NoError(t, err)

			v, err := back.Variables()["F_P1y"].Value()
			require.NoError(t, err)
			assert.InDelta(t, 50, v, tol)

			back.ClearSolution()
			assert.False(t, back.Variables()["F_P1y"].Known())
			assert.True(t, back.Variables()["M_P1z"].Known(), "pin moment stays a known zero")

			again, err := Solve(back)
			require.NoError(t, err)
			assert.Equal(t, sol, again)
		})
	}
}

func TestApplyIsAllOrNothing(t *testing.T) {
	st := sample.SimplySupportedBeam()
	sol := Solution{{Symbol: "F_P1y", Value: 50}, {Symbol: "F_Q9y", Value: 1}}

	err := Apply(st, sol)
	require.Error(t, err)
	assert.False(t, st.Variables()["F_P1y"].Known())
}

func TestSolutionLookup(t *testing.T) {
	sol := Solution{{"a", 1}, {"b", 2}}
	v, ok := sol.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
	_, ok = sol.Lookup("c")
	assert.False(t, ok)
}
