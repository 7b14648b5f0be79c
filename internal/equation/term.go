package equation

import (
	"strconv"
	"strings"
)

// Term is one addend of an equilibrium equation. A term with an empty
// Variable is a constant contribution; otherwise it is Coefficient*Variable.
type Term struct {
	Coefficient float64
	Variable    string
}

// Constant returns a constant term
func Constant(value float64) Term {
	return Term{Coefficient: value}
}

// Unknown returns a coefficient*variable term
func Unknown(coefficient float64, variable string) Term {
	return Term{Coefficient: coefficient, Variable: variable}
}

// IsConstant reports whether the term carries no variable
func (t Term) IsConstant() bool {
	return t.Variable == ""
}

// Scale returns the term multiplied by factor
func (t Term) Scale(factor float64) Term {
	c := t.Coefficient * factor
	if c == 0 {
		// drop the sign of negative zero so it never encodes as "-0"
		c = 0
	}
	return Term{Coefficient: c, Variable: t.Variable}
}

// String encodes the term as a bare number or "coefficient*variable".
func (t Term) String() string {
	if t.IsConstant() {
		return FormatNumber(t.Coefficient)
	}
	return FormatNumber(t.Coefficient) + "*" + t.Variable
}

// Equation is a sum of terms that must equal zero.
type Equation []Term

// Scale returns a copy of the equation with every term multiplied by factor.
func (e Equation) Scale(factor float64) Equation {
	out := make(Equation, len(e))
	for i, t := range e {
		out[i] = t.Scale(factor)
	}
	return out
}

// String encodes the equation as its terms joined by "+". An equation
// without terms encodes as "0".
func (e Equation) String() string {
	if len(e) == 0 {
		return "0"
	}
	parts := make([]string, len(e))
	for i, t := range e {
		parts[i] = t.String()
	}
	return strings.Join(parts, "+")
}

// Strings encodes a list of equations
func Strings(eqs []Equation) []string {
	out := make([]string, len(eqs))
	for i, eq := range eqs {
		out[i] = eq.String()
	}
	return out
}

// FormatNumber renders a float in plain decimal notation. Exponent notation
// is never produced because '+' is reserved as the term separator.
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0 // -0 prints as 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
