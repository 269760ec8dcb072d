package planning

import (
	"context"
	"fmt"

	"github.com/andrescamacho/planner-go/internal/domain/shared"
)

// Planner runs planning cycles over a PlanningState.
//
// A cycle is a single sequential pass: commodities are processed strictly in
// CompareCommodities order and inventory drawn by one commodity is visible to the next.
// The pass runs against a working copy of the registry which replaces the state's
// registry only after the cycle completes. Worker wages are written back at the same
// point, so an aborted cycle leaves both stock and wages untouched.
// Planner is not safe for concurrent use.
type Planner struct {
	state *PlanningState
	sink  ReportSink
	clock shared.Clock
	phase *CyclePhaseMachine
	cycle int
	newID func() string
}

// PlannerOption customizes a Planner
type PlannerOption func(*Planner)

// WithClock sets the clock used for report and phase timestamps
func WithClock(clock shared.Clock) PlannerOption {
	return func(p *Planner) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithIDGenerator overrides report ID generation
func WithIDGenerator(newID func() string) PlannerOption {
	return func(p *Planner) {
		if newID != nil {
			p.newID = newID
		}
	}
}

// NewPlanner creates an idle planner publishing to sink. A nil sink discards results.
func NewPlanner(sink ReportSink, opts ...PlannerOption) *Planner {
	p := &Planner{
		sink:  sink,
		clock: shared.NewRealClock(),
		newID: NewReportID,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sink == nil {
		p.sink = discardSink{}
	}
	p.phase = NewCyclePhaseMachine(p.clock)
	return p
}

func (p *Planner) Phase() CyclePhase     { return p.phase.Phase() }
func (p *Planner) State() *PlanningState { return p.state }

// CyclesCompleted returns how many cycles finished since the planner was created
func (p *Planner) CyclesCompleted() int { return p.cycle }

// Load attaches a planning state. Allowed from IDLE, LOADED, DONE and ABORTED.
func (p *Planner) Load(state *PlanningState) error {
	if state == nil || state.Materials == nil || state.Commodities == nil {
		return fmt.Errorf("planning state is incomplete")
	}
	if err := p.phase.Transition(PhaseLoaded); err != nil {
		return err
	}
	p.state = state
	return nil
}

// RunCycle performs one planning pass and publishes its results to the sink.
// A missing material reference aborts the cycle with a ConfigurationError before
// any commodity is processed. Calling RunCycle again after DONE plans the next cycle
// against the depleted registry.
func (p *Planner) RunCycle(ctx context.Context) (*CycleReport, error) {
	if err := p.phase.Transition(PhaseOrdering); err != nil {
		return nil, err
	}
	cycle := p.cycle + 1
	startedAt := p.clock.Now()

	if err := p.state.CheckReferences(); err != nil {
		return nil, p.abort(cycle, err)
	}
	ordered := OrderCommodities(p.state.Commodities.All())
	working := p.state.Materials.Clone()

	if err := p.phase.Transition(PhasePerCommodity); err != nil {
		return nil, err
	}
	results := make([]CommodityResult, 0, len(ordered))
	total := 0.0
	for _, commodity := range ordered {
		result, err := planCommodity(commodity, working)
		if err != nil {
			return nil, p.abort(cycle, err)
		}
		total += result.CycleCost
		results = append(results, result)
	}

	if err := p.phase.Transition(PhaseAggregated); err != nil {
		return nil, err
	}
	report := &CycleReport{
		ID:          p.newID(),
		Cycle:       cycle,
		StartedAt:   startedAt,
		Commodities: results,
		TotalCost:   total,
		Inventories: working.Inventories(),
	}
	for _, result := range results {
		if err := p.sink.CommodityPlanned(ctx, cycle, result); err != nil {
			return nil, p.abort(cycle, fmt.Errorf("report commodity %s: %w", result.Commodity, err))
		}
	}
	report.CompletedAt = p.clock.Now()
	if err := p.sink.CycleCompleted(ctx, report); err != nil {
		return nil, p.abort(cycle, fmt.Errorf("report cycle: %w", err))
	}

	p.state.Materials = working
	for i, commodity := range ordered {
		commodity.setWages(results[i].Wages)
	}
	p.cycle = cycle
	if err := p.phase.Transition(PhaseDone); err != nil {
		return nil, err
	}
	return report, nil
}

func (p *Planner) abort(cycle int, cause error) error {
	if err := p.phase.Abort(cause); err != nil {
		return err
	}
	return fmt.Errorf("planning cycle %d aborted: %w", cycle, cause)
}

// planCommodity runs the material loop, labor check, pricing and wage steps for one
// commodity, depleting registry as it goes.
func planCommodity(commodity *Commodity, registry *MaterialRegistry) (CommodityResult, error) {
	result := CommodityResult{
		Commodity: commodity.name,
		Priority:  commodity.priority,
		Demand:    commodity.demand,
		Materials: make([]MaterialFinding, 0, len(commodity.usages)),
	}

	cost := 0.0
	for _, usage := range commodity.usages {
		material, err := registry.Resolve(commodity.name, usage.Material)
		if err != nil {
			return CommodityResult{}, err
		}

		available := material.Available()
		shortage := Balance(material, commodity.demand, usage.UsageRate)
		remediation := RemediationCost(material, shortage)
		consumed := Deplete(material, commodity.demand, usage.UsageRate)

		result.Materials = append(result.Materials, MaterialFinding{
			Material:        usage.Material,
			Required:        Required(commodity.demand, usage.UsageRate),
			Available:       available,
			Shortage:        shortage,
			RemediationCost: remediation,
			Consumed:        consumed,
			InventoryAfter:  material.Inventory(),
		})
		cost += remediation
	}

	result.Labor = LaborFinding{
		Required:  commodity.LaborBudget(),
		Available: commodity.laborAvailable,
		Shortage:  commodity.HasLaborShortage(),
	}
	result.CycleCost = cost + commodity.LaborBudget()

	price, err := Price(commodity, registry)
	if err != nil {
		return CommodityResult{}, err
	}
	result.UnitPrice = price

	result.WageRate = WageRate(commodity.workers, commodity.laborRequired, commodity.demand)
	result.Wages = commodity.allocateWages()
	return result, nil
}

type discardSink struct{}

func (discardSink) CommodityPlanned(context.Context, int, CommodityResult) error { return nil }
func (discardSink) CycleCompleted(context.Context, *CycleReport) error          { return nil }
