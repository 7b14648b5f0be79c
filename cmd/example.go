package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gostatics/internal/sample"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

var exampleOutput string

var exampleCmd = &cobra.Command{
	Use:   "example <name>",
	Short: "Write a sample structure file",
	Long: fmt.Sprintf(`Write one of the built-in sample structures so it can be edited and
solved. Available samples: %s.

Without --output the structure is printed as JSON.

Examples:
  gostatics example beam -o beam.json
  gostatics example arch -o arch.yaml`, strings.Join(sample.Names(), ", ")),
	Args:      cobra.ExactArgs(1),
	ValidArgs: sample.Names(),
	RunE:      runExample,
}

func init() {
	rootCmd.AddCommand(exampleCmd)

	exampleCmd.Flags().StringVarP(&exampleOutput, "output", "o", "", "Write to file (.json, .yaml, .yml)")
}

func runExample(cmd *cobra.Command, args []string) error {
	st, err := sample.Build(args[0])
	if err != nil {
		return err
	}

	if exampleOutput == "" {
		data, err := structure.Marshal(st, structure.JSON)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if err := structure.SaveToFile(st, exampleOutput); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sample %q written to: %s\n", args[0], exampleOutput)
	return nil
}
