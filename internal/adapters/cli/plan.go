package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/planner-go/internal/adapters/catalog"
	"github.com/andrescamacho/planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/planner-go/internal/adapters/report"
	"github.com/andrescamacho/planner-go/internal/application/common"
	appPlanning "github.com/andrescamacho/planner-go/internal/application/planning"
	"github.com/andrescamacho/planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/planner-go/internal/application/planning/queries"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/internal/infrastructure/config"
	"github.com/andrescamacho/planner-go/internal/infrastructure/runlock"
	"github.com/andrescamacho/planner-go/pkg/utils"
)

// NewPlanCommand creates the plan command with subcommands
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run planning cycles and demand forecasts",
		Long: `Run planning cycles over a material registry and commodity catalog.

Commodities are planned in order of priority class (1 = basic needs first),
then by descending demand, then by name. Each commodity draws down inventory
before the next is planned.

Examples:
  planner plan run
  planner plan run --cycles 3 --format json --output report.json
  planner plan run --source database --persist --store-reports
  planner plan forecast --alpha 0.5 100 120 130 140 150`,
	}

	cmd.AddCommand(newPlanRunCommand())
	cmd.AddCommand(newPlanForecastCommand())

	return cmd
}

type planRunOptions struct {
	materialsFile   string
	commoditiesFile string
	source          string
	cycles          int
	format          string
	output          string
	persist         bool
	storeReports    bool
	metricsFile     string
}

// apply overrides configuration with every flag set on the command line
func (o *planRunOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("materials") {
		cfg.Planning.MaterialsFile = o.materialsFile
	}
	if flags.Changed("commodities") {
		cfg.Planning.CommoditiesFile = o.commoditiesFile
	}
	if flags.Changed("source") {
		cfg.Planning.Source = o.source
	}
	if flags.Changed("cycles") {
		cfg.Planning.Cycles = o.cycles
	}
	if flags.Changed("format") {
		cfg.Planning.ReportFormat = o.format
	}
	if flags.Changed("output") {
		cfg.Planning.ReportFile = o.output
	}
	if flags.Changed("persist") {
		cfg.Planning.PersistState = o.persist
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Enabled = o.metricsFile != ""
		cfg.Metrics.TextfilePath = o.metricsFile
	}
}

func newPlanRunCommand() *cobra.Command {
	opts := &planRunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one or more planning cycles",
		Long: `Run planning cycles and print the shortage, cost, price and wage report.

The catalog is read from files (json, yaml or hjson by extension) or, with
--source database, from a catalog previously stored with 'planner catalog import'.
With --persist the depleted inventories are written back to the database once
every cycle has succeeded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.materialsFile, "materials", "", "Materials catalog file")
	cmd.Flags().StringVar(&opts.commoditiesFile, "commodities", "", "Commodities catalog file")
	cmd.Flags().StringVar(&opts.source, "source", "", "Catalog source: file or database")
	cmd.Flags().IntVarP(&opts.cycles, "cycles", "n", 1, "Number of consecutive cycles")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Report format: text or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.persist, "persist", false, "Write depleted inventories back to the database")
	cmd.Flags().BoolVar(&opts.storeReports, "store-reports", false, "Store cycle reports in the database")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")

	return cmd
}

func runPlan(cmd *cobra.Command, opts *planRunOptions) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	opts.apply(cmd, cfg)
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s, err := newSessionFromConfig(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	runSource := cfg.Planning.CommoditiesFile
	if cfg.Planning.Source == "database" {
		runSource = "database"
	}
	s.logger = s.logger.With("run_id", utils.GenerateRunID("plan", runSource))
	ctx := s.context(cmd)

	if cfg.Planning.PersistState {
		lock := runlock.New(cfg.Planning.LockFile)
		if err := lock.Acquire(); err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				s.logger.Warn("failed to release run lock", "path", lock.Path(), "error", err)
			}
		}()
	}

	out, err := s.output(cfg.Planning.ReportFile)
	if err != nil {
		return err
	}
	sinks := report.NewMultiSink()
	switch cfg.Planning.ReportFormat {
	case "json":
		sinks.Add(report.NewJSONSink(out))
	default:
		sinks.Add(report.NewTextSink(out, cfg.Planning.Cycles > 1))
	}

	var (
		loader    planning.StateLoader
		runOpts   []commands.RunPlanningOption
		needsDB   = cfg.Planning.Source == "database" || cfg.Planning.PersistState || opts.storeReports
		mediator  = common.NewMediator()
		collector *metrics.PlanningMetricsCollector
	)
	mediator.Use(common.LoggingMiddleware())

	if needsDB {
		db, err := s.db()
		if err != nil {
			return err
		}
		if cfg.Planning.Source == "database" {
			loader = persistence.NewStateLoader(db)
		}
		if cfg.Planning.PersistState {
			runOpts = append(runOpts, commands.WithMaterialRepository(persistence.NewMaterialRepository(db)))
		}
		if opts.storeReports {
			sinks.Add(report.NewRepositorySink(persistence.NewCycleReportRepository(db)))
		}
	}
	if loader == nil {
		loader = catalog.NewFileSource(cfg.Planning.MaterialsFile, cfg.Planning.CommoditiesFile, cfg.Planning.SmoothingAlpha)
	}

	if cfg.Metrics.Enabled {
		collector = metrics.NewPlanningMetricsCollector(cfg.Metrics.Namespace)
		commandMetrics := metrics.NewCommandMetricsCollector(cfg.Metrics.Namespace)
		registry, err := metrics.NewRegistry(collector, commandMetrics)
		if err != nil {
			return err
		}
		mediator.Use(metrics.PrometheusMiddleware(commandMetrics))
		sinks.Add(collector)
		runOpts = append(runOpts, commands.WithWarningRecorder(collector))
		defer func() {
			if err := metrics.WriteTextfile(registry, cfg.Metrics.TextfilePath); err != nil {
				s.logger.Error("failed to export metrics", "path", cfg.Metrics.TextfilePath, "error", err)
			}
		}()
	}

	handlers := appPlanning.Handlers{
		RunPlanning: commands.NewRunPlanningHandler(loader, sinks, runOpts...),
	}
	if err := handlers.Register(mediator); err != nil {
		return err
	}

	resp, err := mediator.Send(ctx, &commands.RunPlanningCommand{
		Cycles:       cfg.Planning.Cycles,
		PersistState: cfg.Planning.PersistState,
	})
	if err != nil {
		return err
	}

	result := resp.(*commands.RunPlanningResponse)
	if n := len(result.Warnings); n > 0 {
		fmt.Fprintf(os.Stderr, "%d record(s) rejected; see log for details\n", n)
	}
	if result.Persisted {
		s.logger.Info("Inventories persisted", "materials", len(result.Inventories))
	}
	return nil
}

func newPlanForecastCommand() *cobra.Command {
	var alpha float64

	cmd := &cobra.Command{
		Use:   "forecast <demand>...",
		Short: "Estimate demand from a history with exponential smoothing",
		Long: `Estimate next-cycle demand from a history series. The forecast starts at the
first value and each later value v updates it to alpha*v + (1-alpha)*forecast.

Example:
  planner plan forecast --alpha 0.5 100 120 130 140 150   # prints 140`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history := make([]float64, 0, len(args))
			for _, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid demand value %q: %w", arg, err)
				}
				history = append(history, v)
			}

			mediator := common.NewMediator()
			if err := (appPlanning.Handlers{}).Register(mediator); err != nil {
				return err
			}
			resp, err := mediator.Send(cmd.Context(), &queries.ForecastDemandQuery{History: history, Alpha: alpha})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), utils.FormatQuantity(resp.(*queries.ForecastDemandResponse).Forecast))
			return nil
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", planning.DefaultSmoothingAlpha, "Smoothing factor in [0,1]")

	return cmd
}
