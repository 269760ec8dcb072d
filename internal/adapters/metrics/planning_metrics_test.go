package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/application/common"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

func chairResult() planning.CommodityResult {
	return planning.CommodityResult{
		Commodity: "Chair",
		Priority:  planning.PriorityConsumerGoodsAndServices,
		Demand:    100,
		Materials: []planning.MaterialFinding{
			{Material: "Material A", Shortage: 0},
			{Material: "Material B", Shortage: 2, RemediationCost: 28},
		},
		Labor:     planning.LaborFinding{Required: 1300, Available: 1000, Shortage: true},
		CycleCost: 1328,
		UnitPrice: 28.9,
	}
}

func TestPlanningMetricsCollector_CommodityPlanned(t *testing.T) {
	// Arrange
	c := NewPlanningMetricsCollector("test")
	_, err := NewRegistry(c)
	require.NoError(t, err)

	// Act
	require.NoError(t, c.CommodityPlanned(context.Background(), 1, chairResult()))

	// Assert
	assert.Equal(t, 1328.0, testutil.ToFloat64(c.commodityCycleCost.WithLabelValues("Chair", "4")))
	assert.Equal(t, 28.9, testutil.ToFloat64(c.commodityUnitPrice.WithLabelValues("Chair")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.laborShortage.WithLabelValues("Chair")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.materialShortage.WithLabelValues("Chair", "Material B")))
	assert.Equal(t, 28.0, testutil.ToFloat64(c.materialRemediation.WithLabelValues("Chair", "Material B")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.shortagesTotal))
}

func TestPlanningMetricsCollector_CycleCompleted(t *testing.T) {
	// Arrange
	c := NewPlanningMetricsCollector("")
	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	report := &planning.CycleReport{
		Cycle:       2,
		StartedAt:   started,
		CompletedAt: started.Add(10 * time.Millisecond),
		TotalCost:   4523.5,
		Inventories: []planning.InventoryLevel{{Material: "Material A", Inventory: 0}, {Material: "Material C", Inventory: 12}},
	}

	// Act
	require.NoError(t, c.CycleCompleted(context.Background(), report))

	// Assert
	assert.Equal(t, 4523.5, testutil.ToFloat64(c.cycleTotalCost))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cycleNumber))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cyclesTotal))
	assert.Equal(t, 12.0, testutil.ToFloat64(c.materialInventory.WithLabelValues("Material C")))
}

func TestPlanningMetricsCollector_RecordRejectedRecords(t *testing.T) {
	c := NewPlanningMetricsCollector("")

	c.RecordRejectedRecords([]*planning.DataRangeWarning{
		{Field: "usage_rate[Material A]"},
		{Field: "usage_rate[Material B]"},
		{Field: "inventory"},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.rejectedRecords.WithLabelValues("usage_rate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rejectedRecords.WithLabelValues("inventory")))
}

func TestWriteTextfile(t *testing.T) {
	// Arrange
	c := NewPlanningMetricsCollector("planner")
	reg, err := NewRegistry(c)
	require.NoError(t, err)
	require.NoError(t, c.CommodityPlanned(context.Background(), 1, chairResult()))
	path := filepath.Join(t.TempDir(), "planner.prom")

	// Act
	err = WriteTextfile(reg, path)

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `planner_planning_commodity_unit_price{commodity="Chair"} 28.9`)
}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	type PingCommand struct{}
	collector := NewCommandMetricsCollector("")
	mw := PrometheusMiddleware(collector)

	_, err := mw(context.Background(), &PingCommand{}, func(ctx context.Context, request common.Request) (common.Response, error) {
		return "pong", nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("PingCommand", "success")))
}
