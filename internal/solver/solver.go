// Package solver resolves the unknown reactions of a structure by solving
// its equilibrium equations as a dense linear system.
package solver

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gostatics/internal/equation"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

// ErrSingularSystem is returned when the equations do not determine the
// unknowns: the structure is statically indeterminate or unstable.
var ErrSingularSystem = errors.New("singular system")

// DefaultMaxCondition is the largest accepted condition number of the
// coefficient matrix.
const DefaultMaxCondition = 1e12

// zeroTolerance snaps round-off residue to an exact zero
const zeroTolerance = equation.ZeroTolerance

// Result is the solved value of one unknown
type Result struct {
	Symbol string
	Value  float64
}

// Solution holds one result per unknown, in equation-system column order.
type Solution []Result

// Map returns the solution keyed by symbol
func (s Solution) Map() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, r := range s {
		m[r.Symbol] = r.Value
	}
	return m
}

// Lookup returns the value solved for symbol
func (s Solution) Lookup(symbol string) (float64, bool) {
	for _, r := range s {
		if r.Symbol == symbol {
			return r.Value, true
		}
	}
	return 0, false
}

// Solver turns equilibrium equations into numbers
type Solver struct {
	// MaxCondition rejects nearly singular systems
	MaxCondition float64

	logger *zap.Logger
}

// New creates a solver. A nil logger disables logging and a non-positive
// maxCondition selects DefaultMaxCondition.
func New(logger *zap.Logger, maxCondition float64) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxCondition <= 0 {
		maxCondition = DefaultMaxCondition
	}
	return &Solver{MaxCondition: maxCondition, logger: logger}
}

// Solve generates, parses and solves the equations of st. The structure is
// not modified.
func (s *Solver) Solve(st *structure.Structure) (Solution, error) {
	eqs := st.GenerateAllEquilibrium()
	s.logger.Debug("generated equilibrium equations", zap.Int("count", len(eqs)))

	sys, err := equation.Parse(eqs)
	if err != nil {
		return nil, err
	}
	return s.SolveSystem(sys)
}

// SolveSystem inverts the square coefficient matrix and multiplies it by
// the constant vector.
func (s *Solver) SolveSystem(sys *equation.System) (Solution, error) {
	rows, cols := sys.Rows(), sys.Cols()
	s.logger.Debug("solving system", zap.Int("equations", rows), zap.Int("unknowns", cols))

	if rows == 0 && cols == 0 {
		return Solution{}, nil
	}
	if rows != cols {
		return nil, fmt.Errorf("%w: %d independent equations for %d unknowns", ErrSingularSystem, rows, cols)
	}

	n := rows
	a := mat.NewDense(n, n, nil)
	for i, row := range sys.Matrix {
		a.SetRow(i, row)
	}
	b := mat.NewVecDense(n, append([]float64(nil), sys.Constants...))

	cond := mat.Cond(a, 1)
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond > s.MaxCondition {
		s.logger.Debug("rejecting ill-conditioned system", zap.Float64("condition", cond))
		return nil, fmt.Errorf("%w: condition number %.4e", ErrSingularSystem, cond)
	}

	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	var x mat.VecDense
	x.MulVec(&inv, b)

	sol := make(Solution, n)
	for i, name := range sys.Variables {
		sol[i] = Result{Symbol: name, Value: snap(x.AtVec(i), zeroTolerance)}
	}
	s.logger.Debug("system solved", zap.Int("unknowns", n), zap.Float64("condition", cond))
	return sol, nil
}

// SolveAndApply solves st and writes the values back onto its variables.
func (s *Solver) SolveAndApply(st *structure.Structure) (Solution, error) {
	sol, err := s.Solve(st)
	if err != nil {
		return nil, err
	}
	if err := Apply(st, sol); err != nil {
		return nil, err
	}
	return sol, nil
}

// Apply writes solved values onto the structure's variables. Every symbol
// is checked first so nothing is written unless all of them match. The
// previous state is checkpointed; Structure.ClearSolution undoes it.
func Apply(st *structure.Structure, sol Solution) error {
	vars := st.Variables()
	for _, r := range sol {
		if _, ok := vars[r.Symbol]; !ok {
			return fmt.Errorf("solution symbol %q does not belong to the structure", r.Symbol)
		}
	}
	st.Checkpoint()
	for _, r := range sol {
		vars[r.Symbol].Set(r.Value)
	}
	return nil
}

// Solve solves st with default settings
func Solve(st *structure.Structure) (Solution, error) {
	return New(nil, 0).Solve(st)
}

func snap[T constraints.Float](v, tol T) T {
	if v < tol && v > -tol {
		return 0
	}
	return v
}
