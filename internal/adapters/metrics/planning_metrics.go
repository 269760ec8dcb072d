package metrics

import (
	"context"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// PlanningMetricsCollector exports planning results as Prometheus metrics.
// It implements planning.ReportSink so it can sit next to the text and JSON sinks.
type PlanningMetricsCollector struct {
	// Per-commodity gauges, overwritten every cycle
	commodityCycleCost *prometheus.GaugeVec
	commodityUnitPrice *prometheus.GaugeVec
	commodityDemand    *prometheus.GaugeVec
	laborShortage      *prometheus.GaugeVec

	// Per-material gauges
	materialShortage    *prometheus.GaugeVec
	materialRemediation *prometheus.GaugeVec
	materialInventory   *prometheus.GaugeVec

	// Cycle aggregates
	cycleTotalCost  prometheus.Gauge
	cycleNumber     prometheus.Gauge
	cyclesTotal     prometheus.Counter
	cycleDuration   prometheus.Histogram
	shortagesTotal  prometheus.Counter
	rejectedRecords *prometheus.CounterVec
}

// NewPlanningMetricsCollector creates the planning metrics under namespace
func NewPlanningMetricsCollector(namespace string) *PlanningMetricsCollector {
	namespace = namespaceOrDefault(namespace)
	gaugeVec := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &PlanningMetricsCollector{
		commodityCycleCost: gaugeVec("commodity_cycle_cost", "Remediation plus labor cost of a commodity in the last cycle", "commodity", "priority"),
		commodityUnitPrice: gaugeVec("commodity_unit_price", "Unit price of a commodity in the last cycle", "commodity"),
		commodityDemand:    gaugeVec("commodity_demand", "Planned demand of a commodity in the last cycle", "commodity"),
		laborShortage:      gaugeVec("labor_shortage", "1 when a commodity was understaffed in the last cycle", "commodity"),

		materialShortage:    gaugeVec("material_shortage_units", "Shortage of a material for a commodity in the last cycle", "commodity", "material"),
		materialRemediation: gaugeVec("material_remediation_cost", "Cost to close a material shortage in the last cycle", "commodity", "material"),
		materialInventory:   gaugeVec("material_inventory_units", "Material inventory after the last cycle", "material"),

		cycleTotalCost: gauge("cycle_total_cost", "Total cost of all commodities in the last cycle"),
		cycleNumber:    gauge("cycle_number", "Number of the last completed cycle"),
		cyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycles_total",
			Help:      "Total number of completed planning cycles",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycle_duration_seconds",
			Help:      "Planning cycle duration distribution",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		}),
		shortagesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "material_shortages_total",
			Help:      "Total number of material shortages found across cycles",
		}),
		rejectedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejected_records_total",
			Help:      "Catalog records rejected at load time by field",
		}, []string{"field"}),
	}
}

// Register registers all planning metrics
func (c *PlanningMetricsCollector) Register(reg prometheus.Registerer) error {
	return registerAll(reg,
		c.commodityCycleCost,
		c.commodityUnitPrice,
		c.commodityDemand,
		c.laborShortage,
		c.materialShortage,
		c.materialRemediation,
		c.materialInventory,
		c.cycleTotalCost,
		c.cycleNumber,
		c.cyclesTotal,
		c.cycleDuration,
		c.shortagesTotal,
		c.rejectedRecords,
	)
}

// CommodityPlanned implements planning.ReportSink
func (c *PlanningMetricsCollector) CommodityPlanned(_ context.Context, _ int, result planning.CommodityResult) error {
	c.commodityCycleCost.WithLabelValues(result.Commodity, strconv.Itoa(int(result.Priority))).Set(result.CycleCost)
	c.commodityUnitPrice.WithLabelValues(result.Commodity).Set(result.UnitPrice)
	c.commodityDemand.WithLabelValues(result.Commodity).Set(result.Demand)

	shortage := 0.0
	if result.Labor.Shortage {
		shortage = 1
	}
	c.laborShortage.WithLabelValues(result.Commodity).Set(shortage)

	for _, m := range result.Materials {
		c.materialShortage.WithLabelValues(result.Commodity, m.Material).Set(m.Shortage)
		c.materialRemediation.WithLabelValues(result.Commodity, m.Material).Set(m.RemediationCost)
		if m.HasShortage() {
			c.shortagesTotal.Inc()
		}
	}
	return nil
}

// CycleCompleted implements planning.ReportSink
func (c *PlanningMetricsCollector) CycleCompleted(_ context.Context, report *planning.CycleReport) error {
	c.cycleTotalCost.Set(report.TotalCost)
	c.cycleNumber.Set(float64(report.Cycle))
	c.cyclesTotal.Inc()
	c.cycleDuration.Observe(report.CompletedAt.Sub(report.StartedAt).Seconds())

	for _, inv := range report.Inventories {
		c.materialInventory.WithLabelValues(inv.Material).Set(inv.Inventory)
	}
	return nil
}

// RecordRejectedRecords counts catalog records dropped at load time
func (c *PlanningMetricsCollector) RecordRejectedRecords(warnings []*planning.DataRangeWarning) {
	for _, w := range warnings {
		// usage_rate[Material A] and usage_rate[Material B] share one series
		field, _, _ := strings.Cut(w.Field, "[")
		c.rejectedRecords.WithLabelValues(field).Inc()
	}
}
