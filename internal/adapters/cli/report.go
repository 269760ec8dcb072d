package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/planner-go/internal/adapters/report"
	"github.com/andrescamacho/planner-go/internal/application/common"
	appPlanning "github.com/andrescamacho/planner-go/internal/application/planning"
	"github.com/andrescamacho/planner-go/internal/application/planning/queries"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/pkg/utils"
)

// NewReportCommand creates the report command with subcommands
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Browse stored cycle reports",
		Long: `Browse cycle reports stored by 'planner plan run --store-reports'.

Examples:
  planner report list --limit 10
  planner report show <report-id>
  planner report show <report-id> --format json`,
	}

	cmd.AddCommand(newReportListCommand())
	cmd.AddCommand(newReportShowCommand())

	return cmd
}

// reportMediator wires the report queries against the configured database
func reportMediator(s *session) (common.Mediator, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}
	repo := persistence.NewCycleReportRepository(db)

	mediator := common.NewMediator()
	handlers := appPlanning.Handlers{
		ListCycleReports: queries.NewListCycleReportsHandler(repo),
		GetCycleReport:   queries.NewGetCycleReportHandler(repo),
	}
	if err := handlers.Register(mediator); err != nil {
		return nil, err
	}
	return mediator, nil
}

func newReportListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored cycle reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.Close()

			mediator, err := reportMediator(s)
			if err != nil {
				return err
			}
			resp, err := mediator.Send(s.context(cmd), &queries.ListCycleReportsQuery{Limit: limit})
			if err != nil {
				return err
			}
			reports := resp.(*queries.ListCycleReportsResponse).Reports
			if len(reports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cycle reports stored")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCycle\tCompleted\tCommodities\tShortages\tLabor Shortages\tTotal Cost")
			fmt.Fprintln(w, "──\t─────\t─────────\t───────────\t─────────\t───────────────\t──────────")
			for _, r := range reports {
				fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%d\t%s\n",
					r.ID,
					r.Cycle,
					r.CompletedAt.Local().Format("2006-01-02 15:04:05"),
					len(r.Commodities),
					r.ShortageCount(),
					len(r.LaborShortages()),
					utils.FormatQuantity(r.TotalCost),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of reports (0 for all)")

	return cmd
}

func newReportShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <report-id>",
		Short: "Show a stored cycle report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.Close()

			mediator, err := reportMediator(s)
			if err != nil {
				return err
			}
			ctx := s.context(cmd)
			resp, err := mediator.Send(ctx, &queries.GetCycleReportQuery{ReportID: args[0]})
			if err != nil {
				return err
			}
			stored := resp.(*queries.GetCycleReportResponse).Report

			var sink planning.ReportSink
			switch format {
			case "json":
				sink = report.NewJSONSink(cmd.OutOrStdout())
			case "text":
				sink = report.NewTextSink(cmd.OutOrStdout(), true)
			default:
				return fmt.Errorf("unknown report format %q: use text or json", format)
			}
			for _, result := range stored.Commodities {
				if err := sink.CommodityPlanned(ctx, stored.Cycle, result); err != nil {
					return err
				}
			}
			return sink.CycleCompleted(ctx, stored)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")

	return cmd
}
