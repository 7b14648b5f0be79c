package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gostatics/internal/config"
	"github.com/alexiusacademia/gostatics/internal/logging"
	"github.com/alexiusacademia/gostatics/internal/version"
)

var (
	envFile  string
	logLevel string
	verbose  bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gostatics",
	Short: "2-D Rigid-Link Statics Solver",
	Long: `gostatics - Go Statics Solver

A CLI tool that computes the support and joint reactions of planar
structures built from rigid links, supports and joints.

The structure is read from a JSON or YAML file. gostatics generates
the static equilibrium equations of every link and connection:
  - ΣFx = 0, ΣFy = 0 and ΣM = 0 about the first point of each link
  - ΣFx = 0 and ΣFy = 0 over the points of each joint or multi-point support

and solves them as a linear system for the unknown reactions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.LogLevel, cfg.IsDevelopment())
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded",
			zap.String("environment", cfg.Environment),
			zap.String("log_level", cfg.LogLevel),
			zap.Float64("max_condition", cfg.MaxCondition),
			zap.Int("precision", cfg.Precision))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gostatics v%-45s║\n", version.Version)
		fmt.Println("  ║   Go 2-D Rigid-Link Statics Solver                        ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool that solves the reactions of planar structures")
		fmt.Println("  made of rigid links, supports and joints.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Fixed, pin and roller supports, pin joints and free joints")
		fmt.Println("    • Point forces and moments on points and connections")
		fmt.Println("    • Equilibrium equation listing and coefficient matrix")
		fmt.Println("    • Reaction charts (png, svg, pdf) and Excel reports")
		fmt.Println()
		fmt.Println("  Use 'gostatics --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Load settings from this dotenv file if it exists")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides GOSTATICS_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
