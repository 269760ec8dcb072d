package planning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/internal/domain/shared"
)

type recordingSink struct {
	planned   []string
	reports   []*planning.CycleReport
	failCycle bool
}

func (s *recordingSink) CommodityPlanned(_ context.Context, _ int, result planning.CommodityResult) error {
	s.planned = append(s.planned, result.Commodity)
	return nil
}

func (s *recordingSink) CycleCompleted(_ context.Context, report *planning.CycleReport) error {
	if s.failCycle {
		return errors.New("disk full")
	}
	s.reports = append(s.reports, report)
	return nil
}

func newTestPlanner(t *testing.T, sink planning.ReportSink, state *planning.PlanningState) *planning.Planner {
	t.Helper()
	clock := shared.NewMockClock(time.Time{})
	planner := planning.NewPlanner(sink,
		planning.WithClock(clock),
		planning.WithIDGenerator(func() string { return "report-1" }),
	)
	require.NoError(t, planner.Load(state))
	return planner
}

func inventoryOf(t *testing.T, state *planning.PlanningState, name string) float64 {
	t.Helper()
	m, err := state.Materials.Get(name)
	require.NoError(t, err)
	return m.Inventory()
}

func TestPlanner_SampleCycle(t *testing.T) {
	sink := &recordingSink{}
	state := sampleState(t)
	planner := newTestPlanner(t, sink, state)

	report, err := planner.RunCycle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, planning.PhaseDone, planner.Phase())
	assert.Equal(t, []string{"Bread", "Chair"}, sink.planned)
	require.Len(t, sink.reports, 1)
	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, 1, report.Cycle)

	bread := report.Commodities[0]
	assert.Equal(t, "Bread", bread.Commodity)
	assert.Zero(t, bread.Materials[0].Shortage)
	assert.Zero(t, bread.Materials[1].Shortage)
	assert.Equal(t, 3216.0, bread.CycleCost)
	assert.InDelta(t, 36.1, bread.UnitPrice, 1e-9)
	assert.False(t, bread.Labor.Shortage)

	chair := report.Commodities[1]
	assert.Equal(t, 1300.0, chair.CycleCost)
	assert.InDelta(t, 28.9, chair.UnitPrice, 1e-9)
	assert.True(t, chair.Labor.Shortage)
	assert.Equal(t, 1300.0, chair.Labor.Required)
	assert.Equal(t, 1000, chair.Labor.Available)
	require.Len(t, chair.Wages, 2)
	assert.Equal(t, 650.0, chair.Wages[0].Wage)
	assert.Equal(t, 16.25, chair.WageRate)

	assert.Equal(t, 4516.0, report.TotalCost)
	assert.Equal(t, 0.0, inventoryOf(t, state, "Material A"))
	assert.Equal(t, 0.0, inventoryOf(t, state, "Material B"))
	assert.Equal(t, 0.0, inventoryOf(t, state, "Material C"))
}

func TestPlanner_NextCycleSeesDepletedRegistry(t *testing.T) {
	state := sampleState(t)
	planner := newTestPlanner(t, nil, state)

	_, err := planner.RunCycle(context.Background())
	require.NoError(t, err)
	report, err := planner.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Cycle)
	bread := report.Commodities[0]
	// 100.5 of Material A required against 0 stock + 100 capacity
	assert.Equal(t, 0.5, bread.Materials[0].Shortage)
	assert.Equal(t, 7.5, bread.Materials[0].RemediationCost)
	assert.Equal(t, 4523.5, report.TotalCost)
	assert.Equal(t, 2, planner.CyclesCompleted())
}

func TestPlanner_EarlierCommodityDepletesSharedMaterial(t *testing.T) {
	state, err := planning.NewPlanningState(
		[]*planning.Material{mustMaterial(t, "Steel", 10, 0, 2)},
		[]*planning.Commodity{
			mustCommodity(t, planning.CommoditySpec{
				Name: "Tractor", Priority: planning.PriorityBasicNeeds, Demand: 10,
				Usages: []planning.MaterialUsage{{Material: "Steel", UsageRate: 1}},
			}),
			mustCommodity(t, planning.CommoditySpec{
				Name: "Sculpture", Priority: planning.PriorityLuxuryGoodsAndServices, Demand: 5,
				Usages: []planning.MaterialUsage{{Material: "Steel", UsageRate: 1}},
			}),
		},
	)
	require.NoError(t, err)
	planner := newTestPlanner(t, nil, state)

	report, err := planner.RunCycle(context.Background())

	require.NoError(t, err)
	assert.Zero(t, report.Commodities[0].Materials[0].Shortage)
	assert.Equal(t, 5.0, report.Commodities[1].Materials[0].Shortage)
	assert.Equal(t, 10.0, report.Commodities[1].CycleCost)
}

func TestPlanner_MatchesCycleCost(t *testing.T) {
	state := sampleState(t)
	snapshot := state.Materials.Clone()
	bread, err := state.Commodities.Get("Bread")
	require.NoError(t, err)
	expected, err := planning.CycleCost(bread, snapshot)
	require.NoError(t, err)

	report, err := newTestPlanner(t, nil, state).RunCycle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, report.Commodities[0].CycleCost)
}

func TestPlanner_MissingMaterialAbortsWithoutDepletion(t *testing.T) {
	state, err := planning.NewPlanningState(
		[]*planning.Material{mustMaterial(t, "Steel", 10, 0, 2)},
		[]*planning.Commodity{
			mustCommodity(t, planning.CommoditySpec{
				Name: "Tractor", Priority: 1, Demand: 5,
				Usages: []planning.MaterialUsage{{Material: "Steel", UsageRate: 1}},
			}),
			mustCommodity(t, planning.CommoditySpec{
				Name: "Robot", Priority: 2, Demand: 1,
				Usages: []planning.MaterialUsage{{Material: "Unobtainium", UsageRate: 1}},
			}),
		},
	)
	require.NoError(t, err)
	sink := &recordingSink{}
	planner := newTestPlanner(t, sink, state)

	_, err = planner.RunCycle(context.Background())

	require.Error(t, err)
	assert.True(t, planning.IsConfigurationError(err))
	assert.ErrorIs(t, err, planning.ErrMaterialNotFound)
	assert.Contains(t, err.Error(), "Unobtainium")
	assert.Equal(t, planning.PhaseAborted, planner.Phase())
	assert.Equal(t, 10.0, inventoryOf(t, state, "Steel"))
	assert.Empty(t, sink.planned)
	assert.Equal(t, 1, state.Materials.Len())

	_, err = planner.RunCycle(context.Background())
	var transitionErr *planning.ErrInvalidPhaseTransition
	assert.True(t, errors.As(err, &transitionErr), "an aborted planner must be reloaded first")
}

func TestPlanner_SinkFailureKeepsRegistry(t *testing.T) {
	state := sampleState(t)
	planner := newTestPlanner(t, &recordingSink{failCycle: true}, state)

	_, err := planner.RunCycle(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 50.0, inventoryOf(t, state, "Material A"))
	assert.Equal(t, 0, planner.CyclesCompleted())
}

func TestPlanner_WagesRecordedOnlyWhenCycleCompletes(t *testing.T) {
	// Arrange
	sink := &recordingSink{failCycle: true}
	state := sampleState(t)
	planner := newTestPlanner(t, sink, state)

	// Act
	_, err := planner.RunCycle(context.Background())

	// Assert
	require.Error(t, err)
	chair, err := state.Commodities.Get("Chair")
	require.NoError(t, err)
	for _, w := range chair.Workers() {
		assert.Zero(t, w.Wage, "aborted cycle must not record wages")
	}

	// Act
	sink.failCycle = false
	require.NoError(t, planner.Load(state))
	report, err := planner.RunCycle(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 650.0, report.Commodities[1].Wages[0].Wage)
	for _, w := range chair.Workers() {
		assert.Equal(t, 650.0, w.Wage)
	}
}

func TestPlanner_RequiresLoadedState(t *testing.T) {
	planner := planning.NewPlanner(nil)

	_, err := planner.RunCycle(context.Background())

	var transitionErr *planning.ErrInvalidPhaseTransition
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, planning.PhaseIdle, transitionErr.From)
	assert.Error(t, planner.Load(nil))
}

func TestPlanner_InventoryNeverNegativeAcrossCycles(t *testing.T) {
	state := sampleState(t)
	planner := newTestPlanner(t, nil, state)

	for i := 0; i < 4; i++ {
		report, err := planner.RunCycle(context.Background())
		require.NoError(t, err)
		for _, level := range report.Inventories {
			assert.GreaterOrEqual(t, level.Inventory, 0.0)
		}
	}
}
