package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/planner-go/internal/adapters/catalog"
	"github.com/andrescamacho/planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/planner-go/internal/application/common"
	appPlanning "github.com/andrescamacho/planner-go/internal/application/planning"
	"github.com/andrescamacho/planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/planner-go/internal/application/planning/queries"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/pkg/utils"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage material and commodity catalogs",
		Long: `Manage the material registry and commodity catalog.

Catalog files are json, yaml or hjson, chosen by extension. Materials are an
object keyed by name; commodities are a list.

Examples:
  planner catalog sample --dir ./data --format yaml
  planner catalog show --materials data/materials.yaml --commodities data/commodities.yaml
  planner catalog import --materials data/materials.yaml --commodities data/commodities.yaml
  planner catalog export --dir ./backup`,
	}

	cmd.AddCommand(newCatalogImportCommand())
	cmd.AddCommand(newCatalogShowCommand())
	cmd.AddCommand(newCatalogSampleCommand())
	cmd.AddCommand(newCatalogExportCommand())

	return cmd
}

func newCatalogImportCommand() *cobra.Command {
	var materialsFile, commoditiesFile string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a catalog from files in the database",
		Long: `Validate catalog files and store them in the database, replacing records with
the same names. A catalog whose commodities reference unknown materials is refused.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if materialsFile == "" {
				materialsFile = s.cfg.Planning.MaterialsFile
			}
			if commoditiesFile == "" {
				commoditiesFile = s.cfg.Planning.CommoditiesFile
			}
			s.logger = s.logger.With("run_id", utils.GenerateRunID("import", commoditiesFile))

			db, err := s.db()
			if err != nil {
				return err
			}

			alpha := s.cfg.Planning.SmoothingAlpha
			mediator := common.NewMediator()
			mediator.Use(common.LoggingMiddleware())
			handlers := appPlanning.Handlers{
				ImportCatalog: commands.NewImportCatalogHandler(
					func(m, c string) planning.StateLoader { return catalog.NewFileSource(m, c, alpha) },
					persistence.NewMaterialRepository(db),
					persistence.NewCommodityRepository(db),
				),
			}
			if err := handlers.Register(mediator); err != nil {
				return err
			}

			resp, err := mediator.Send(s.context(cmd), &commands.ImportCatalogCommand{
				MaterialsFile:   materialsFile,
				CommoditiesFile: commoditiesFile,
			})
			if err != nil {
				return err
			}

			result := resp.(*commands.ImportCatalogResponse)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d materials and %d commodities\n", result.Materials, result.Commodities)
			printWarnings(result.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVar(&materialsFile, "materials", "", "Materials catalog file (default from config)")
	cmd.Flags().StringVar(&commoditiesFile, "commodities", "", "Commodities catalog file (default from config)")

	return cmd
}

func newCatalogShowCommand() *cobra.Command {
	var (
		materialsFile   string
		commoditiesFile string
		source          string
		noColor         bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the catalog in planning order",
		Long: `Show each commodity in the order it will be planned, with its bill of materials
and workers. Materials that cannot cover the commodity's own need are flagged red.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if source == "" {
				source = s.cfg.Planning.Source
			}

			var loader planning.StateLoader
			switch source {
			case "database":
				db, err := s.db()
				if err != nil {
					return err
				}
				loader = persistence.NewStateLoader(db)
			case "file":
				if materialsFile == "" {
					materialsFile = s.cfg.Planning.MaterialsFile
				}
				if commoditiesFile == "" {
					commoditiesFile = s.cfg.Planning.CommoditiesFile
				}
				loader = catalog.NewFileSource(materialsFile, commoditiesFile, s.cfg.Planning.SmoothingAlpha)
			default:
				return fmt.Errorf("unknown catalog source %q: use file or database", source)
			}

			mediator := common.NewMediator()
			if err := (appPlanning.Handlers{ShowCatalog: queries.NewShowCatalogHandler(loader)}).Register(mediator); err != nil {
				return err
			}
			resp, err := mediator.Send(s.context(cmd), &queries.ShowCatalogQuery{})
			if err != nil {
				return err
			}
			result := resp.(*queries.ShowCatalogResponse)

			registry, err := planning.NewMaterialRegistry(result.Materials...)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), NewTreeFormatter(!noColor).FormatCatalog(result.Commodities, registry))
			printWarnings(result.Warnings)
			if result.Problems != nil {
				fmt.Fprintf(os.Stderr, "\nCatalog problems:\n%v\n", result.Problems)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&materialsFile, "materials", "", "Materials catalog file (default from config)")
	cmd.Flags().StringVar(&commoditiesFile, "commodities", "", "Commodities catalog file (default from config)")
	cmd.Flags().StringVar(&source, "source", "", "Catalog source: file or database (default from config)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func newCatalogSampleCommand() *cobra.Command {
	var dir, format string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the demonstration catalog",
		Long: `Write the demonstration catalog (Materials A, B and C; Chair and Bread) to
materials.<ext> and commodities.<ext> in the target directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			materialsPath, commoditiesPath, err := catalog.WriteDocument(dir, catalog.SampleDocument(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", materialsPath, commoditiesPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Target directory")
	cmd.Flags().StringVar(&format, "format", "json", "File format: json, yaml or hjson")

	return cmd
}

func newCatalogExportCommand() *cobra.Command {
	var dir, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored catalog, with current inventories, to files",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.Close()

			db, err := s.db()
			if err != nil {
				return err
			}
			state, _, err := persistence.NewStateLoader(db).LoadState(s.context(cmd))
			if err != nil {
				return err
			}

			doc := catalog.DocumentFromCatalog(state.Materials.All(), state.Commodities.All())
			materialsPath, commoditiesPath, err := catalog.WriteDocument(dir, doc, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", materialsPath, commoditiesPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Target directory")
	cmd.Flags().StringVar(&format, "format", "json", "File format: json, yaml or hjson")

	return cmd
}

func parseFormat(name string) (catalog.Format, error) {
	return catalog.FormatFromPath("catalog." + name)
}

func printWarnings(warnings []*planning.DataRangeWarning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%d record(s) rejected:\n", len(warnings))
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "  %v\n", w)
	}
}
