package planning

import (
	"github.com/andrescamacho/planner-go/internal/application/common"
	"github.com/andrescamacho/planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/planner-go/internal/application/planning/queries"
)

// Handlers groups the planning request handlers. A nil handler is not registered,
// so commands that need a database can be left out when none is configured.
type Handlers struct {
	RunPlanning      *commands.RunPlanningHandler
	ImportCatalog    *commands.ImportCatalogHandler
	ListCycleReports *queries.ListCycleReportsHandler
	GetCycleReport   *queries.GetCycleReportHandler
	ShowCatalog      *queries.ShowCatalogHandler
}

// Register wires every non-nil handler plus the forecast query into m
func (h Handlers) Register(m common.Mediator) error {
	if err := common.RegisterHandler[*queries.ForecastDemandQuery](m, queries.NewForecastDemandHandler()); err != nil {
		return err
	}
	if h.RunPlanning != nil {
		if err := common.RegisterHandler[*commands.RunPlanningCommand](m, h.RunPlanning); err != nil {
			return err
		}
	}
	if h.ImportCatalog != nil {
		if err := common.RegisterHandler[*commands.ImportCatalogCommand](m, h.ImportCatalog); err != nil {
			return err
		}
	}
	if h.ListCycleReports != nil {
		if err := common.RegisterHandler[*queries.ListCycleReportsQuery](m, h.ListCycleReports); err != nil {
			return err
		}
	}
	if h.GetCycleReport != nil {
		if err := common.RegisterHandler[*queries.GetCycleReportQuery](m, h.GetCycleReport); err != nil {
			return err
		}
	}
	if h.ShowCatalog != nil {
		if err := common.RegisterHandler[*queries.ShowCatalogQuery](m, h.ShowCatalog); err != nil {
			return err
		}
	}
	return nil
}
