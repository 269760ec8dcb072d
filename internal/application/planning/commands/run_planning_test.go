package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/adapters/report"
	"github.com/andrescamacho/planner-go/internal/application/common"
	"github.com/andrescamacho/planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/internal/domain/shared"
	"github.com/andrescamacho/planner-go/test/helpers"
)

func runPlanning(t *testing.T, h *commands.RunPlanningHandler, cmd *commands.RunPlanningCommand) (*commands.RunPlanningResponse, *helpers.RecordingLogger, error) {
	t.Helper()
	logger := &helpers.RecordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)
	resp, err := h.Handle(ctx, cmd)
	if err != nil {
		return nil, logger, err
	}
	return resp.(*commands.RunPlanningResponse), logger, nil
}

func TestRunPlanningHandler_SingleCycle(t *testing.T) {
	// Arrange
	recorder := &report.Recorder{}
	handler := commands.NewRunPlanningHandler(helpers.NewMockStateLoader(), recorder)

	// Act
	resp, logger, err := runPlanning(t, handler, &commands.RunPlanningCommand{Cycles: 1})

	// Assert
	require.NoError(t, err)
	require.Len(t, resp.Reports, 1)
	assert.InDelta(t, 4516.0, resp.Reports[0].TotalCost, 1e-9)
	assert.Len(t, recorder.Results, 2)
	assert.False(t, resp.Persisted)
	assert.Contains(t, logger.Messages("INFO"), "Planning cycle completed")
}

func TestRunPlanningHandler_MultipleCyclesCarryDepletion(t *testing.T) {
	// Arrange
	handler := commands.NewRunPlanningHandler(helpers.NewMockStateLoader(), nil)

	// Act
	resp, _, err := runPlanning(t, handler, &commands.RunPlanningCommand{Cycles: 2})

	// Assert
	require.NoError(t, err)
	require.Len(t, resp.Reports, 2)
	assert.Equal(t, 1, resp.Reports[0].Cycle)
	assert.Equal(t, 2, resp.Reports[1].Cycle)
	assert.InDelta(t, 4523.5, resp.Reports[1].TotalCost, 1e-9)
	for _, inv := range resp.Inventories {
		assert.Zero(t, inv.Inventory, inv.Material)
	}
}

func TestRunPlanningHandler_PersistsInventories(t *testing.T) {
	// Arrange
	repo := helpers.NewMockMaterialRepository()
	require.NoError(t, repo.SaveAll(context.Background(), helpers.SampleMaterials()))
	handler := commands.NewRunPlanningHandler(helpers.NewMockStateLoader(), nil,
		commands.WithMaterialRepository(repo))

	// Act
	resp, _, err := runPlanning(t, handler, &commands.RunPlanningCommand{Cycles: 1, PersistState: true})

	// Assert
	require.NoError(t, err)
	assert.True(t, resp.Persisted)
	assert.Equal(t, 1, repo.Updates)
	assert.Equal(t, 0.0, repo.Inventory("Material A"))
	assert.Equal(t, 0.0, repo.Inventory("Material C"))
}

func TestRunPlanningHandler_PersistRequiresRepository(t *testing.T) {
	handler := commands.NewRunPlanningHandler(helpers.NewMockStateLoader(), nil)

	_, _, err := runPlanning(t, handler, &commands.RunPlanningCommand{Cycles: 1, PersistState: true})

	assert.ErrorContains(t, err, "material repository")
}

func TestRunPlanningHandler_AbortSkipsPersistence(t *testing.T) {
	// Arrange
	loader := &helpers.MockStateLoader{Build: func() (*planning.PlanningState, error) {
		materials := helpers.SampleMaterials()[:2] // Material C missing
		return planning.NewPlanningState(materials, helpers.SampleCommodities())
	}}
	repo := helpers.NewMockMaterialRepository()
	require.NoError(t, repo.SaveAll(context.Background(), helpers.SampleMaterials()))
	handler := commands.NewRunPlanningHandler(loader, nil, commands.WithMaterialRepository(repo))

	// Act
	_, logger, err := runPlanning(t, handler, &commands.RunPlanningCommand{Cycles: 1, PersistState: true})

	// Assert
	require.Error(t, err)
	assert.True(t, planning.IsConfigurationError(err))
	assert.Zero(t, repo.Updates)
	assert.Equal(t, 50.0, repo.Inventory("Material A"))
	assert.Contains(t, logger.Messages("ERROR"), "Planning cycle aborted")
}

type warningCounter struct{ n int }

func (w *warningCounter) RecordRejectedRecords(warnings []*planning.DataRangeWarning) { w.n += len(warnings) }

func TestRunPlanningHandler_LogsRejectedRecords(t *testing.T) {
	// Arrange
	loader := helpers.NewMockStateLoader()
	loader.Warnings = []*planning.DataRangeWarning{{Record: `material "D"`, Field: "inventory", Value: -1, Rule: "must be non-negative"}}
	counter := &warningCounter{}
	handler := commands.NewRunPlanningHandler(loader, nil, commands.WithWarningRecorder(counter))

	// Act
	_, logger, err := runPlanning(t, handler, &commands.RunPlanningCommand{Cycles: 1})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"Record rejected"}, logger.Messages("WARN"))
	assert.Equal(t, 1, counter.n)
}

func TestRunPlanningHandler_LoadFailure(t *testing.T) {
	loader := &helpers.MockStateLoader{Build: func() (*planning.PlanningState, error) {
		return nil, errors.New("disk on fire")
	}}
	handler := commands.NewRunPlanningHandler(loader, nil)

	_, _, err := runPlanning(t, handler, &commands.RunPlanningCommand{Cycles: 1})

	assert.ErrorContains(t, err, "failed to load planning state: disk on fire")
}

func TestRunPlanningHandler_RejectsZeroCycles(t *testing.T) {
	handler := commands.NewRunPlanningHandler(helpers.NewMockStateLoader(), nil)

	_, _, err := runPlanning(t, handler, &commands.RunPlanningCommand{Cycles: 0})

	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "cycles", validationErr.Field)
}

func TestRunPlanningHandler_ThroughMediator(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	m.Use(common.LoggingMiddleware())
	require.NoError(t, common.RegisterHandler[*commands.RunPlanningCommand](m,
		commands.NewRunPlanningHandler(helpers.NewMockStateLoader(), nil)))
	logger := &helpers.RecordingLogger{}

	// Act
	resp, err := m.Send(common.WithLogger(context.Background(), logger), &commands.RunPlanningCommand{Cycles: 1})

	// Assert
	require.NoError(t, err)
	assert.Len(t, resp.(*commands.RunPlanningResponse).Reports, 1)
	assert.Contains(t, logger.Messages("DEBUG"), "RunPlanningCommand handled")
}
