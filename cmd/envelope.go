package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gostatics/internal/nscp"
	"github.com/alexiusacademia/gostatics/internal/solver"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

var (
	envelopeFile string
	envelopeSet  string
)

var envelopeCmd = &cobra.Command{
	Use:   "envelope",
	Short: "Solve every NSCP load combination and report governing reactions",
	Long: `Factor the load cases of a structure with the NSCP 2015 (Section 203.3)
strength design combinations, solve each combination and report the
largest-magnitude value of every reaction with its governing combination.

Loads are assigned to a case with the "case" field (D, L, Lr, W, E, R).
Loads without a case are treated as dead load.

Examples:
  gostatics envelope --file frame.json
  gostatics envelope -f frame.yaml --set gravity`,
	RunE: runEnvelope,
}

func init() {
	rootCmd.AddCommand(envelopeCmd)

	envelopeCmd.Flags().StringVarP(&envelopeFile, "file", "f", "", "Path to structure JSON or YAML file [required]")
	envelopeCmd.MarkFlagRequired("file")
	envelopeCmd.Flags().StringVar(&envelopeSet, "set", "basic", "Combination set: "+strings.Join(setNames(), ", "))
}

func setNames() []string {
	names := make([]string, 0, len(nscp.Sets))
	for n := range nscp.Sets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	combos, ok := nscp.Sets[envelopeSet]
	if !ok {
		return fmt.Errorf("unknown combination set %q (available: %s)", envelopeSet, strings.Join(setNames(), ", "))
	}

	st, err := structure.LoadFromFile(envelopeFile)
	if err != nil {
		return fmt.Errorf("loading structure: %w", err)
	}

	outcomes, err := nscp.Solve(solver.New(logger, cfg.MaxCondition), st, combos)
	if err != nil {
		logger.Warn("envelope failed", zap.Error(err))
		return fmt.Errorf("unable to solve the structure: %w", err)
	}
	logger.Info("combinations solved", zap.String("set", envelopeSet), zap.Int("count", len(outcomes)))

	printHeader(out, "LOAD COMBINATION ENVELOPE - NSCP 2015")

	printSection(out, "COMBINATIONS")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, o := range outcomes {
		fmt.Fprintf(w, "  %s\t%s\n", o.Combination.ID, o.Combination.Description)
	}
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "GOVERNING REACTIONS")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Symbol\tValue\tCombination\n")
	for _, g := range nscp.Envelope(outcomes) {
		fmt.Fprintf(w, "  %s\t%s\t%s (%s)\n", g.Symbol, formatValue(g.Value, cfg.Precision),
			g.Combination.ID, g.Combination.Description)
	}
	w.Flush()
	fmt.Fprintln(out)

	if len(st.Loads()) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: the structure has no loads")
	}
	return nil
}
