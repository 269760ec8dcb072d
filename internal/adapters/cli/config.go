package cli

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/planner-go/internal/infrastructure/config"
)

var passwordPattern = regexp.MustCompile(`(://[^:/@]+:)[^@]+@`)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect planner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (PLAN_* prefix, e.g. PLAN_PLANNING_CYCLES=3; DATABASE_URL)
2. Config file (planner.yaml)
3. Default values

Examples:
  planner config show
  planner config show --yaml`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			if asYAML {
				masked := *cfg
				masked.Database.Password = maskSecret(masked.Database.Password)
				masked.Database.URL = maskPassword(masked.Database.URL)
				out, err := yaml.Marshal(configDocument(&masked))
				if err != nil {
					return fmt.Errorf("failed to render config: %w", err)
				}
				fmt.Print(string(out))
				return nil
			}

			fmt.Println("Planner Configuration")
			fmt.Println("=====================")

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nPlanning:")
			fmt.Printf("  Source:           %s\n", cfg.Planning.Source)
			fmt.Printf("  Materials:        %s\n", cfg.Planning.MaterialsFile)
			fmt.Printf("  Commodities:      %s\n", cfg.Planning.CommoditiesFile)
			fmt.Printf("  Cycles:           %d\n", cfg.Planning.Cycles)
			fmt.Printf("  Persist State:    %t\n", cfg.Planning.PersistState)
			fmt.Printf("  Smoothing Alpha:  %g\n", cfg.Planning.SmoothingAlpha)
			fmt.Printf("  Lock File:        %s\n", cfg.Planning.LockFile)
			fmt.Printf("  Report Format:    %s\n", cfg.Planning.ReportFormat)
			if cfg.Planning.ReportFile != "" {
				fmt.Printf("  Report File:      %s\n", cfg.Planning.ReportFile)
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Printf("  Namespace:        %s\n", cfg.Metrics.Namespace)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Textfile:         %s\n", cfg.Metrics.TextfilePath)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the effective configuration as planner.yaml")

	return cmd
}

// configDocument mirrors the planner.yaml layout, since Config only carries mapstructure tags
func configDocument(cfg *config.Config) map[string]interface{} {
	return map[string]interface{}{
		"database": map[string]interface{}{
			"type":     cfg.Database.Type,
			"url":      cfg.Database.URL,
			"host":     cfg.Database.Host,
			"port":     cfg.Database.Port,
			"user":     cfg.Database.User,
			"password": cfg.Database.Password,
			"name":     cfg.Database.Name,
			"sslmode":  cfg.Database.SSLMode,
			"path":     cfg.Database.Path,
		},
		"planning": map[string]interface{}{
			"source":           cfg.Planning.Source,
			"materials_file":   cfg.Planning.MaterialsFile,
			"commodities_file": cfg.Planning.CommoditiesFile,
			"cycles":           cfg.Planning.Cycles,
			"persist_state":    cfg.Planning.PersistState,
			"smoothing_alpha":  cfg.Planning.SmoothingAlpha,
			"lock_file":        cfg.Planning.LockFile,
			"report_format":    cfg.Planning.ReportFormat,
			"report_file":      cfg.Planning.ReportFile,
		},
		"logging": map[string]interface{}{
			"level":     cfg.Logging.Level,
			"format":    cfg.Logging.Format,
			"output":    cfg.Logging.Output,
			"file_path": cfg.Logging.FilePath,
		},
		"metrics": map[string]interface{}{
			"enabled":       cfg.Metrics.Enabled,
			"textfile_path": cfg.Metrics.TextfilePath,
			"namespace":     cfg.Metrics.Namespace,
		},
	}
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
