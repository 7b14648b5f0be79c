// Package nscp factors load cases with the NSCP 2015 strength design
// combinations and envelopes the resulting reactions.
package nscp

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gostatics/internal/element"
	"github.com/alexiusacademia/gostatics/internal/solver"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

// Load case labels carried by element.Load.Case
const (
	Dead       = "D"
	Live       = "L"
	Roof       = "Lr"
	Wind       = "W"
	Earthquake = "E"
	Rain       = "R"
)

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load case
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L + 0.5(Lr or R)", Dead: 1.2, Live: 1.6, Roof: 0.5, Rain: 0.5},
	{ID: "3", Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)", Dead: 1.2, Live: 1.0, Roof: 1.6, Rain: 1.6, Wind: 0.5},
	{ID: "4", Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)", Dead: 1.2, Live: 1.0, Wind: 1.0, Roof: 0.5, Rain: 0.5},
	{ID: "5", Description: "1.2D + 1.0E + 1.0L", Dead: 1.2, Live: 1.0, Earthquake: 1.0},
	{ID: "6", Description: "0.9D + 1.0W", Dead: 0.9, Wind: 1.0},
	{ID: "7", Description: "0.9D + 1.0E", Dead: 0.9, Earthquake: 1.0},
}

// SimplifiedCombinations are the gravity-only combinations
var SimplifiedCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L", Dead: 1.2, Live: 1.6},
}

// Sets maps the names accepted on the command line to combination lists
var Sets = map[string][]LoadCombination{
	"basic":   LoadCombinations,
	"gravity": SimplifiedCombinations,
}

// Factor returns the load factor of a load case. An empty case is dead load.
func (lc LoadCombination) Factor(loadCase string) (float64, error) {
	switch loadCase {
	case Dead, "":
		return lc.Dead, nil
	case Live:
		return lc.Live, nil
	case Roof:
		return lc.Roof, nil
	case Wind:
		return lc.Wind, nil
	case Earthquake:
		return lc.Earthquake, nil
	case Rain:
		return lc.Rain, nil
	}
	return 0, fmt.Errorf("unknown load case %q", loadCase)
}

// Apply scales every load of st by its case factor. The returned function
// puts the original magnitudes back.
func (lc LoadCombination) Apply(st *structure.Structure) (restore func(), err error) {
	type saved struct {
		v     *element.Variable
		value float64
	}
	var originals []saved
	restore = func() {
		for _, s := range originals {
			s.v.Set(s.value)
		}
	}

	for _, l := range st.Loads() {
		f, err := lc.Factor(l.Case)
		if err != nil {
			restore()
			return nil, fmt.Errorf("load %s: %w", l.Name, err)
		}
		for _, v := range l.Variables() {
			value, err := v.Value()
			if err != nil {
				restore()
				return nil, fmt.Errorf("load %s: %w", l.Name, err)
			}
			originals = append(originals, saved{v, value})
			v.Set(value * f)
		}
	}
	return restore, nil
}

// Outcome is the solution of one factored combination
type Outcome struct {
	Combination LoadCombination
	Solution    solver.Solution
}

// Solve solves st once per combination. Loads are restored after each run.
func Solve(s *solver.Solver, st *structure.Structure, combinations []LoadCombination) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(combinations))
	for _, lc := range combinations {
		restore, err := lc.Apply(st)
		if err != nil {
			return nil, err
		}
		sol, err := s.Solve(st)
		restore()
		if err != nil {
			return nil, fmt.Errorf("combination %s (%s): %w", lc.ID, lc.Description, err)
		}
		outcomes = append(outcomes, Outcome{Combination: lc, Solution: sol})
	}
	return outcomes, nil
}

// Governing is the largest-magnitude value of one unknown over all
// combinations
type Governing struct {
	Symbol      string
	Value       float64
	Combination LoadCombination
}

// Envelope finds the governing combination of every unknown. Symbols keep
// the order of the first outcome; ties go to the earlier combination.
func Envelope(outcomes []Outcome) []Governing {
	var envelope []Governing
	index := make(map[string]int)

	for _, o := range outcomes {
		for _, r := range o.Solution {
			i, ok := index[r.Symbol]
			if !ok {
				index[r.Symbol] = len(envelope)
				envelope = append(envelope, Governing{Symbol: r.Symbol, Value: r.Value, Combination: o.Combination})
				continue
			}
			if math.Abs(r.Value) > math.Abs(envelope[i].Value) {
				envelope[i].Value = r.Value
				envelope[i].Combination = o.Combination
			}
		}
	}
	return envelope
}
