package element

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gostatics/internal/equation"
)

// ErrValueNotSet is returned when the value of a symbolic variable is read.
var ErrValueNotSet = errors.New("value not set")

// Variable is a named scalar that is either known (carries a value) or
// unknown (referenced by its symbol in equations).
type Variable struct {
	Symbol string

	known bool
	value float64
}

// NewUnknown creates a symbolic variable
func NewUnknown(symbol string) *Variable {
	return &Variable{Symbol: symbol}
}

// NewKnown creates a variable with a value
func NewKnown(symbol string, value float64) *Variable {
	return &Variable{Symbol: symbol, known: true, value: value}
}

// Known reports whether the variable carries a value
func (v *Variable) Known() bool {
	return v.known
}

// Value returns the numeric value or ErrValueNotSet while symbolic.
func (v *Variable) Value() (float64, error) {
	if !v.known {
		return 0, fmt.Errorf("%w: %s", ErrValueNotSet, v.Symbol)
	}
	return v.value, nil
}

// Set assigns a value and marks the variable known
func (v *Variable) Set(value float64) {
	v.known = true
	v.value = value
}

// Clear makes the variable symbolic again
func (v *Variable) Clear() {
	v.known = false
	v.value = 0
}

// Term returns the equation term for the variable: its value when known,
// 1*symbol otherwise.
func (v *Variable) Term() equation.Term {
	if v.known {
		return equation.Constant(v.value)
	}
	return equation.Unknown(1, v.Symbol)
}

// String returns the value-or-symbol text form
func (v *Variable) String() string {
	return v.Term().String()
}

// State is a copy of a variable's known/value pair
type State struct {
	Known bool
	Value float64
}

func (v *Variable) save() State {
	return State{Known: v.known, Value: v.value}
}

func (v *Variable) restore(s State) {
	v.known = s.Known
	v.value = s.Value
}
