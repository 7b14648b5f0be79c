package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gostatics/internal/diagram"
	"github.com/alexiusacademia/gostatics/internal/equation"
	"github.com/alexiusacademia/gostatics/internal/report"
	"github.com/alexiusacademia/gostatics/internal/solver"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

var (
	solveFile         string
	solveShowEqs      bool
	solveShowMatrix   bool
	solveShowDiagram  bool
	solveExportFile   string
	solveWorkbookFile string
	solveSaveFile     string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the reactions of a structure",
	Long: `Generate the equilibrium equations of a structure, solve them and
print the reaction at every point.

The structure file may be JSON (.json) or YAML (.yaml, .yml).

Examples:
  gostatics solve --file beam.json
  gostatics solve -f arch.yaml --equations --matrix
  gostatics solve -f beam.json --diagram -o reactions.png
  gostatics solve -f beam.json --xlsx report.xlsx --save solved.json`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Path to structure JSON or YAML file [required]")
	solveCmd.MarkFlagRequired("file")

	solveCmd.Flags().BoolVar(&solveShowEqs, "equations", false, "Print the generated equilibrium equations")
	solveCmd.Flags().BoolVar(&solveShowMatrix, "matrix", false, "Print the coefficient matrix")

	// Diagram options
	solveCmd.Flags().BoolVar(&solveShowDiagram, "diagram", false, "Show ASCII reaction diagram")
	solveCmd.Flags().StringVarP(&solveExportFile, "output", "o", "", "Export reaction chart to file (png, svg, pdf)")

	solveCmd.Flags().StringVar(&solveWorkbookFile, "xlsx", "", "Write reactions, equations and matrix to an Excel workbook")
	solveCmd.Flags().StringVar(&solveSaveFile, "save", "", "Save the solved structure to a JSON or YAML file")
}

func runSolve(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	st, err := structure.LoadFromFile(solveFile)
	if err != nil {
		return fmt.Errorf("loading structure: %w", err)
	}
	logger.Info("structure loaded",
		zap.String("file", solveFile),
		zap.Int("points", len(st.Points())),
		zap.Int("linkages", len(st.Linkages())),
		zap.Int("connections", len(st.Connections())))

	eqs := st.GenerateAllEquilibrium()
	sys, err := equation.Parse(eqs)
	if err != nil {
		return fmt.Errorf("building equation system: %w", err)
	}

	printHeader(out, "RIGID-LINK STATICS SOLUTION")
	printModel(out, st)
	if solveShowEqs {
		printEquations(out, eqs)
	}
	if solveShowMatrix {
		printMatrix(out, sys, cfg.Precision)
	}

	sol, err := solver.New(logger, cfg.MaxCondition).SolveSystem(sys)
	if errors.Is(err, solver.ErrSingularSystem) {
		logger.Warn("solve failed", zap.Error(err))
		return fmt.Errorf("unable to solve the structure: it is statically indeterminate or unstable (%v)", err)
	}
	if err != nil {
		return err
	}
	if err := solver.Apply(st, sol); err != nil {
		return err
	}

	printReactions(out, st, cfg.Precision)

	if solveShowDiagram {
		fmt.Fprintln(out, diagram.DrawReactionBars("Reactions", reactionBars(sol), cfg.Precision))
	}

	lines := []string{
		fmt.Sprintf("Equations: %d", len(eqs)),
		fmt.Sprintf("Unknowns:  %d", len(sol)),
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("SOLVED", lines))
	fmt.Fprintln(out)

	if solveExportFile != "" {
		path, err := diagram.ExportReactionChart(reactionBars(sol), solveExportFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting diagram: %v\n", err)
		} else {
			fmt.Fprintf(out, "Diagram exported to: %s\n", path)
		}
	}
	if solveWorkbookFile != "" {
		wb := report.Workbook{Equations: eqs, System: sys, Solution: sol}
		if err := report.WriteWorkbook(solveWorkbookFile, wb); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		fmt.Fprintf(out, "Workbook written to: %s\n", solveWorkbookFile)
	}
	if solveSaveFile != "" {
		if err := structure.SaveToFile(st, solveSaveFile); err != nil {
			return fmt.Errorf("saving structure: %w", err)
		}
		fmt.Fprintf(out, "Solved structure saved to: %s\n", solveSaveFile)
	}
	return nil
}
