package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gostatics/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gostatics",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gostatics v%s\n", version.Version)
		fmt.Println("2-D Rigid-Link Statics Solver")
		fmt.Printf("Build time: %s\n", version.BuildTime)
		fmt.Printf("Git commit: %s\n", version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
