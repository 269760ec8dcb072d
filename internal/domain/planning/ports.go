package planning

import "context"

// ReportSink receives structured planning results. Implementations render, store or
// measure them; the planner never formats output itself.
type ReportSink interface {
	// CommodityPlanned is called once per commodity, in processing order
	CommodityPlanned(ctx context.Context, cycle int, result CommodityResult) error

	// CycleCompleted is called once after every commodity has been reported
	CycleCompleted(ctx context.Context, report *CycleReport) error
}

// StateLoader builds a PlanningState from some source (files, database).
// Rejected records come back as warnings; only fatal problems are returned as error.
type StateLoader interface {
	LoadState(ctx context.Context) (*PlanningState, []*DataRangeWarning, error)
}

// MaterialRepository persists the material registry
type MaterialRepository interface {
	// SaveAll inserts or replaces every material
	SaveAll(ctx context.Context, materials []*Material) error

	// FindAll retrieves every material ordered by name
	FindAll(ctx context.Context) ([]*Material, error)

	// UpdateInventories writes back the inventory of each material atomically
	UpdateInventories(ctx context.Context, materials []*Material) error
}

// CommodityRepository persists the commodity catalog
type CommodityRepository interface {
	// SaveAll inserts or replaces every commodity with its usages and workers
	SaveAll(ctx context.Context, commodities []*Commodity) error

	// FindAll retrieves every commodity ordered by name
	FindAll(ctx context.Context) ([]*Commodity, error)
}

// CycleReportRepository persists cycle reports
type CycleReportRepository interface {
	Save(ctx context.Context, report *CycleReport) error
	FindByID(ctx context.Context, id string) (*CycleReport, error)
	List(ctx context.Context, limit int) ([]*CycleReport, error)
}
