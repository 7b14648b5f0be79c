package equation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrUnsolvableEquation is returned when an equation has no variable
	// terms left but its constants do not sum to zero.
	ErrUnsolvableEquation = errors.New("unsolvable equation")

	// ErrMalformedEquation is returned for text that does not follow the
	// term grammar.
	ErrMalformedEquation = errors.New("malformed equation")
)

// ZeroTolerance is the magnitude below which a summed coefficient or
// constant counts as zero.
const ZeroTolerance = 1e-9

// System is the dense matrix form of a set of equations:
// Matrix · x = Constants, with x ordered as Variables.
type System struct {
	Matrix    [][]float64
	Constants []float64
	Variables []string
}

// Rows returns the number of retained equations
func (s *System) Rows() int {
	return len(s.Matrix)
}

// Cols returns the number of distinct variables
func (s *System) Cols() int {
	return len(s.Variables)
}

// ParseTerm decodes a single "number" or "coefficient*variable" term.
func ParseTerm(text string) (Term, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Term{}, fmt.Errorf("%w: empty term", ErrMalformedEquation)
	}

	parts := strings.Split(text, "*")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return Term{}, fmt.Errorf("%w: invalid constant %q", ErrMalformedEquation, text)
		}
		return Constant(v), nil
	case 2:
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return Term{}, fmt.Errorf("%w: invalid coefficient in %q", ErrMalformedEquation, text)
		}
		name := strings.TrimSpace(parts[1])
		if name == "" {
			return Term{}, fmt.Errorf("%w: missing variable in %q", ErrMalformedEquation, text)
		}
		return Unknown(v, name), nil
	default:
		return Term{}, fmt.Errorf("%w: too many factors in %q", ErrMalformedEquation, text)
	}
}

// ParseEquation decodes a "+"-joined sum of terms.
func ParseEquation(text string) (Equation, error) {
	fields := strings.Split(text, "+")
	eq := make(Equation, 0, len(fields))
	for _, f := range fields {
		t, err := ParseTerm(f)
		if err != nil {
			return nil, err
		}
		eq = append(eq, t)
	}
	return eq, nil
}

// Parse decodes every equation string and assembles the linear system.
func Parse(texts []string) (*System, error) {
	eqs := make([]Equation, 0, len(texts))
	for i, text := range texts {
		eq, err := ParseEquation(text)
		if err != nil {
			return nil, fmt.Errorf("equation %d: %w", i+1, err)
		}
		eqs = append(eqs, eq)
	}
	return Assemble(eqs)
}

// Assemble builds the dense system for a set of equations.
//
// Variables are numbered in first-seen order across all equations. Each
// row holds the summed coefficients of one equation and its constant is
// the negated sum of the equation's constant terms. A row whose
// coefficients are all within ZeroTolerance of zero is dropped when its constant is zero too and
// rejected with ErrUnsolvableEquation otherwise.
func Assemble(eqs []Equation) (*System, error) {
	sys := &System{}
	index := make(map[string]int)

	for _, eq := range eqs {
		for _, t := range eq {
			if t.IsConstant() {
				continue
			}
			if _, ok := index[t.Variable]; !ok {
				index[t.Variable] = len(sys.Variables)
				sys.Variables = append(sys.Variables, t.Variable)
			}
		}
	}

	for i, eq := range eqs {
		row := make([]float64, len(sys.Variables))
		var constant float64
		for _, t := range eq {
			if t.IsConstant() {
				constant -= t.Coefficient
				continue
			}
			row[index[t.Variable]] += t.Coefficient
		}

		if isZeroRow(row) {
			if math.Abs(constant) >= ZeroTolerance {
				return nil, fmt.Errorf("%w: equation %d reduces to 0 = %s",
					ErrUnsolvableEquation, i+1, FormatNumber(constant))
			}
			continue
		}

		sys.Matrix = append(sys.Matrix, row)
		sys.Constants = append(sys.Constants, constant)
	}

	return sys, nil
}

func isZeroRow(row []float64) bool {
	for _, v := range row {
		if math.Abs(v) >= ZeroTolerance {
			return false
		}
	}
	return true
}
