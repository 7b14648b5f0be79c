package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gostatics/internal/equation"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

var (
	equationsFile       string
	equationsShowMatrix bool
)

var equationsCmd = &cobra.Command{
	Use:   "equations",
	Short: "List the equilibrium equations of a structure",
	Long: `Print the equilibrium equations generated for a structure without
solving them. Each equation is a sum of terms equal to zero; a term is
either coef*symbol or a constant.

Examples:
  gostatics equations --file beam.json
  gostatics equations -f arch.yaml --matrix`,
	RunE: runEquations,
}

func init() {
	rootCmd.AddCommand(equationsCmd)

	equationsCmd.Flags().StringVarP(&equationsFile, "file", "f", "", "Path to structure JSON or YAML file [required]")
	equationsCmd.MarkFlagRequired("file")
	equationsCmd.Flags().BoolVar(&equationsShowMatrix, "matrix", false, "Also print the coefficient matrix")
}

func runEquations(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	st, err := structure.LoadFromFile(equationsFile)
	if err != nil {
		return fmt.Errorf("loading structure: %w", err)
	}

	eqs := st.GenerateAllEquilibrium()
	logger.Debug("equations generated", zap.String("file", equationsFile), zap.Int("count", len(eqs)))

	printHeader(out, "EQUILIBRIUM EQUATIONS")
	printEquations(out, eqs)

	if equationsShowMatrix {
		sys, err := equation.Parse(eqs)
		if err != nil {
			return err
		}
		printMatrix(out, sys, cfg.Precision)
	}
	return nil
}
