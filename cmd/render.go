package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gostatics/internal/diagram"
	"github.com/alexiusacademia/gostatics/internal/element"
	"github.com/alexiusacademia/gostatics/internal/equation"
	"github.com/alexiusacademia/gostatics/internal/solver"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

const rule = "───────────────────────────────────────────────────────────────"

func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "     %s\n", title)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
}

func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintln(w, rule)
}

func formatValue(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func printModel(out io.Writer, st *structure.Structure) {
	printSection(out, "MODEL")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Points:\t%d\n", len(st.Points()))
	fmt.Fprintf(w, "  Linkages:\t%d\n", len(st.Linkages()))
	fmt.Fprintf(w, "  Connections:\t%d\n", len(st.Connections()))
	for _, c := range st.Connections() {
		names := make([]string, len(c.Points()))
		for i, p := range c.Points() {
			names[i] = p.Name
		}
		fmt.Fprintf(w, "    %s\t%s\t%s\n", c.Name, c.Kind(), strings.Join(names, ", "))
	}
	w.Flush()
	fmt.Fprintln(out)
}

func printEquations(out io.Writer, eqs []string) {
	printSection(out, "EQUILIBRIUM EQUATIONS")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, eq := range eqs {
		fmt.Fprintf(w, "  (%d)\t%s = 0\n", i+1, eq)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func printMatrix(out io.Writer, sys *equation.System, precision int) {
	printSection(out, "COEFFICIENT MATRIX")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, v := range sys.Variables {
		fmt.Fprintf(w, "%s\t", v)
	}
	fmt.Fprintf(w, "|\tconstant\t\n")
	for i, row := range sys.Matrix {
		for _, c := range row {
			fmt.Fprintf(w, "%s\t", formatValue(c, precision))
		}
		fmt.Fprintf(w, "|\t%s\t\n", formatValue(sys.Constants[i], precision))
	}
	w.Flush()
	fmt.Fprintln(out)
}

// printReactions lists the reaction variables of every point after the
// solution has been written back. Values that are still unknown print as "-".
func printReactions(out io.Writer, st *structure.Structure, precision int) {
	printSection(out, "REACTIONS")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Point\tx\ty\tFx\tFy\tMz\n")
	for _, p := range st.Points() {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n", p.Name,
			formatValue(p.X, precision), formatValue(p.Y, precision),
			variableValue(p.Fx, precision), variableValue(p.Fy, precision), variableValue(p.Mz, precision))
	}
	w.Flush()

	var grounds []*element.Connection
	for _, c := range st.Connections() {
		if c.GroundReaction() != nil && len(c.Points()) > 1 {
			grounds = append(grounds, c)
		}
	}
	if len(grounds) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Ground\tKind\tReaction\n")
		for _, c := range grounds {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Name, c.Kind(), variableValue(c.GroundReaction(), precision))
		}
		w.Flush()
	}
	fmt.Fprintln(out)
}

func variableValue(v *element.Variable, precision int) string {
	val, err := v.Value()
	if err != nil {
		return "-"
	}
	return formatValue(val, precision)
}

func reactionBars(sol solver.Solution) []diagram.Bar {
	bars := make([]diagram.Bar, len(sol))
	for i, r := range sol {
		bars[i] = diagram.Bar{Label: r.Symbol, Value: r.Value}
	}
	return bars
}
