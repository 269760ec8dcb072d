package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Central planning simulator",
		Long: `planner computes, per planning cycle, material shortages and the cost to
remedy them, commodity prices, labor shortages and worker wages for a catalog of
materials and commodities.

Examples:
  planner catalog sample --dir ./data
  planner plan run --materials data/materials.json --commodities data/commodities.json
  planner plan run --cycles 3 --format json
  planner catalog import --materials data/materials.yaml --commodities data/commodities.yaml
  planner plan run --source database --persist
  planner plan forecast --alpha 0.5 100 120 130 140 150
  planner report list`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: planner.yaml in ., ./configs or /etc/planner)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewReportCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command. Configuration errors exit with status 2, everything else with 1.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var phaseErr *planning.ErrInvalidPhaseTransition
	switch {
	case planning.IsConfigurationError(err):
		return 2
	case errors.As(err, &phaseErr):
		return 3
	default:
		return 1
	}
}
