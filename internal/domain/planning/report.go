package planning

import "time"

// MaterialFinding is the outcome of one material for one commodity.
// Shortage and Required are assessed before the commodity draws the material down.
type MaterialFinding struct {
	Material        string  `json:"material"`
	Required        float64 `json:"required"`
	Available       float64 `json:"available"`
	Shortage        float64 `json:"shortage"`
	RemediationCost float64 `json:"remediation_cost"`
	Consumed        float64 `json:"consumed"`
	InventoryAfter  float64 `json:"inventory_after"`
}

// HasShortage reports whether the material fell short
func (f MaterialFinding) HasShortage() bool {
	return f.Shortage > 0
}

// LaborFinding is informational; it never changes cost or price.
type LaborFinding struct {
	Required  float64 `json:"required"`
	Available int     `json:"available"`
	Shortage  bool    `json:"shortage"`
}

// CommodityResult is everything the cycle derived for one commodity.
type CommodityResult struct {
	Commodity string            `json:"commodity"`
	Priority  PriorityClass     `json:"priority"`
	Demand    float64           `json:"demand"`
	Materials []MaterialFinding `json:"materials"`
	Labor     LaborFinding      `json:"labor"`
	CycleCost float64           `json:"cycle_cost"`
	UnitPrice float64           `json:"unit_price"`
	WageRate  float64           `json:"wage_rate"`
	Wages     []Worker          `json:"wages"`
}

// InventoryLevel is a material's stock after a cycle
type InventoryLevel struct {
	Material           string  `json:"material"`
	Inventory          float64 `json:"inventory"`
	ProductionCapacity float64 `json:"production_capacity"`
}

// CycleReport is the structured output of one planning cycle.
type CycleReport struct {
	ID          string            `json:"id"`
	Cycle       int               `json:"cycle"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt time.Time         `json:"completed_at"`
	Commodities []CommodityResult `json:"commodities"`
	TotalCost   float64           `json:"total_cost"`
	Inventories []InventoryLevel  `json:"inventories"`
}

// LaborShortages returns the commodities that were understaffed this cycle
func (r *CycleReport) LaborShortages() []string {
	var names []string
	for _, c := range r.Commodities {
		if c.Labor.Shortage {
			names = append(names, c.Commodity)
		}
	}
	return names
}

// ShortageCount returns how many material findings fell short across the cycle
func (r *CycleReport) ShortageCount() int {
	count := 0
	for _, c := range r.Commodities {
		for _, m := range c.Materials {
			if m.HasShortage() {
				count++
			}
		}
	}
	return count
}
