package planning_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

func mustMaterial(t *testing.T, name string, inventory, capacity, cost float64) *planning.Material {
	t.Helper()
	m, err := planning.NewMaterial(name, inventory, capacity, cost)
	require.NoError(t, err)
	return m
}

func mustCommodity(t *testing.T, spec planning.CommoditySpec) *planning.Commodity {
	t.Helper()
	c, err := planning.NewCommodity(spec)
	require.NoError(t, err)
	return c
}

// sampleState is the chair and bread economy the simulator ships with
func sampleState(t *testing.T) *planning.PlanningState {
	t.Helper()
	materials := []*planning.Material{
		mustMaterial(t, "Material A", 50, 100, 15),
		mustMaterial(t, "Material B", 40, 150, 14),
		mustMaterial(t, "Material C", 60, 200, 18),
	}
	commodities := []*planning.Commodity{
		mustCommodity(t, planning.CommoditySpec{
			Name:           "Chair",
			Usages:         []planning.MaterialUsage{{Material: "Material A", UsageRate: 0.5}, {Material: "Material B", UsageRate: 0.6}},
			LaborRequired:  13,
			LaborAvailable: 1000,
			Demand:         100,
			Priority:       planning.PriorityConsumerGoodsAndServices,
			Workers:        []planning.Worker{{Name: "Alice", HoursWorked: 40}, {Name: "Bob", HoursWorked: 40}},
		}),
		mustCommodity(t, planning.CommoditySpec{
			Name:           "Bread",
			Usages:         []planning.MaterialUsage{{Material: "Material A", UsageRate: 0.5}, {Material: "Material C", UsageRate: 0.7}},
			LaborRequired:  16,
			LaborAvailable: 5000,
			Demand:         201,
			Priority:       planning.PriorityBasicNeeds,
		}),
	}
	state, err := planning.NewPlanningState(materials, commodities)
	require.NoError(t, err)
	return state
}
