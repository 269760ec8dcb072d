package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/planner-go/internal/application/common"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/internal/domain/shared"
)

// RunPlanningCommand runs one or more consecutive planning cycles
type RunPlanningCommand struct {
	Cycles       int  // at least 1; inventory depletion carries from one cycle to the next
	PersistState bool // write final inventories back through the material repository
}

// RunPlanningResponse summarizes a planning run
type RunPlanningResponse struct {
	Reports     []*planning.CycleReport
	Warnings    []*planning.DataRangeWarning
	Inventories []planning.InventoryLevel
	Persisted   bool
}

// WarningRecorder receives records rejected while loading the planning state
type WarningRecorder interface {
	RecordRejectedRecords(warnings []*planning.DataRangeWarning)
}

// RunPlanningHandler handles the RunPlanning command
type RunPlanningHandler struct {
	loader    planning.StateLoader
	sink      planning.ReportSink
	materials planning.MaterialRepository
	warnings  WarningRecorder
	clock     shared.Clock
}

// RunPlanningOption customizes the handler
type RunPlanningOption func(*RunPlanningHandler)

// WithMaterialRepository enables PersistState
func WithMaterialRepository(repo planning.MaterialRepository) RunPlanningOption {
	return func(h *RunPlanningHandler) { h.materials = repo }
}

// WithWarningRecorder forwards load-time warnings, e.g. to metrics
func WithWarningRecorder(recorder WarningRecorder) RunPlanningOption {
	return func(h *RunPlanningHandler) { h.warnings = recorder }
}

// WithClock sets the clock handed to the planner
func WithClock(clock shared.Clock) RunPlanningOption {
	return func(h *RunPlanningHandler) { h.clock = clock }
}

// NewRunPlanningHandler creates a new RunPlanningHandler
func NewRunPlanningHandler(loader planning.StateLoader, sink planning.ReportSink, opts ...RunPlanningOption) *RunPlanningHandler {
	h := &RunPlanningHandler{
		loader: loader,
		sink:   sink,
		clock:  shared.NewRealClock(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle executes the RunPlanning command.
// Inventories are persisted only after every requested cycle succeeded.
func (h *RunPlanningHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunPlanningCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunPlanningCommand")
	}
	if cmd.Cycles < 1 {
		return nil, shared.NewValidationError("cycles", fmt.Sprintf("must be at least 1, got %d", cmd.Cycles))
	}
	if cmd.PersistState && h.materials == nil {
		return nil, fmt.Errorf("persisting state requires a material repository")
	}

	logger := common.LoggerFromContext(ctx)

	state, warnings, err := h.loader.LoadState(ctx)
	h.reportWarnings(logger, warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to load planning state: %w", err)
	}
	logger.Log("INFO", "Planning state loaded", map[string]interface{}{
		"materials":   state.Materials.Len(),
		"commodities": state.Commodities.Len(),
		"rejected":    len(warnings),
	})

	planner := planning.NewPlanner(h.sink, planning.WithClock(h.clock))
	if err := planner.Load(state); err != nil {
		return nil, err
	}

	response := &RunPlanningResponse{Warnings: warnings}
	for i := 0; i < cmd.Cycles; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report, err := planner.RunCycle(ctx)
		if err != nil {
			logger.Log("ERROR", "Planning cycle aborted", map[string]interface{}{
				"cycle": planner.CyclesCompleted() + 1,
				"error": err.Error(),
			})
			return nil, err
		}
		response.Reports = append(response.Reports, report)

		logger.Log("INFO", "Planning cycle completed", map[string]interface{}{
			"cycle":           report.Cycle,
			"report_id":       report.ID,
			"total_cost":      report.TotalCost,
			"shortages":       report.ShortageCount(),
			"labor_shortages": len(report.LaborShortages()),
		})
	}

	response.Inventories = planner.State().Materials.Inventories()

	if cmd.PersistState {
		if err := h.materials.UpdateInventories(ctx, planner.State().Materials.All()); err != nil {
			return nil, fmt.Errorf("failed to persist inventories: %w", err)
		}
		response.Persisted = true
		logger.Log("INFO", "Inventories persisted", map[string]interface{}{
			"materials": len(response.Inventories),
		})
	}

	return response, nil
}

func (h *RunPlanningHandler) reportWarnings(logger common.PlanLogger, warnings []*planning.DataRangeWarning) {
	for _, w := range warnings {
		logger.Log("WARN", "Record rejected", map[string]interface{}{
			"record": w.Record,
			"field":  w.Field,
			"value":  w.Value,
			"rule":   w.Rule,
		})
	}
	if h.warnings != nil && len(warnings) > 0 {
		h.warnings.RecordRejectedRecords(warnings)
	}
}
