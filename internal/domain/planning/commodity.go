package planning

import (
	"fmt"
	"math"
)

// MaterialUsage is one entry of a commodity's bill of materials:
// UsageRate units of Material are consumed per unit of demand.
type MaterialUsage struct {
	Material  string  `json:"material"`
	UsageRate float64 `json:"usage_rate"`
}

// Worker staffs exactly one commodity for the cycle. Wage is derived, never an input.
type Worker struct {
	Name        string  `json:"name"`
	HoursWorked float64 `json:"hours_worked"`
	Wage        float64 `json:"wage"`
}

// Commodity is a planned output with its material and labor requirements.
//
// Invariants:
// - each material appears at most once in usages, and every usage has a rate
// - demand, usage rates, labor figures and worker hours are non-negative
type Commodity struct {
	name           string
	usages         []MaterialUsage
	laborRequired  int
	laborAvailable int
	demand         float64
	priority       PriorityClass
	workers        []Worker
}

// CommoditySpec carries the raw fields used to build a Commodity
type CommoditySpec struct {
	Name           string
	Usages         []MaterialUsage
	LaborRequired  int
	LaborAvailable int
	Demand         float64
	Priority       PriorityClass
	Workers        []Worker
}

// NewCommodity validates spec and creates a commodity.
// Range violations return a DataRangeWarning, a material listed twice returns a ConfigurationError.
func NewCommodity(spec CommoditySpec) (*Commodity, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("commodity name cannot be empty")
	}
	record := fmt.Sprintf("commodity %q", spec.Name)

	if err := checkNonNegative(record, "demand", spec.Demand); err != nil {
		return nil, err
	}
	if err := checkNonNegative(record, "labor_required", float64(spec.LaborRequired)); err != nil {
		return nil, err
	}
	if err := checkNonNegative(record, "labor_available", float64(spec.LaborAvailable)); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(spec.Usages))
	usages := make([]MaterialUsage, 0, len(spec.Usages))
	for _, u := range spec.Usages {
		if u.Material == "" {
			return nil, fmt.Errorf("%s: material usage with empty material name", record)
		}
		if seen[u.Material] {
			return nil, NewConfigurationError("commodity", spec.Name, ErrDuplicateName,
				fmt.Sprintf("material %q listed more than once", u.Material))
		}
		seen[u.Material] = true
		if err := checkNonNegative(record, "usage_rate["+u.Material+"]", u.UsageRate); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}

	workers := make([]Worker, 0, len(spec.Workers))
	for _, w := range spec.Workers {
		if err := checkNonNegative(record, "hours_worked["+w.Name+"]", w.HoursWorked); err != nil {
			return nil, err
		}
		workers = append(workers, Worker{Name: w.Name, HoursWorked: w.HoursWorked})
	}

	return &Commodity{
		name:           spec.Name,
		usages:         usages,
		laborRequired:  spec.LaborRequired,
		laborAvailable: spec.LaborAvailable,
		demand:         spec.Demand,
		priority:       spec.Priority,
		workers:        workers,
	}, nil
}

func checkNonNegative(record, field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &DataRangeWarning{Record: record, Field: field, Value: value, Rule: "must be finite"}
	}
	if value < 0 {
		return newNegativeValueWarning(record, field, value)
	}
	return nil
}

// Getters

func (c *Commodity) Name() string            { return c.name }
func (c *Commodity) LaborRequired() int      { return c.laborRequired }
func (c *Commodity) LaborAvailable() int     { return c.laborAvailable }
func (c *Commodity) Demand() float64         { return c.demand }
func (c *Commodity) Priority() PriorityClass { return c.priority }

// Usages returns a copy of the bill of materials in declaration order.
func (c *Commodity) Usages() []MaterialUsage {
	out := make([]MaterialUsage, len(c.usages))
	copy(out, c.usages)
	return out
}

// Workers returns a copy of the worker list including the last allocated wages.
func (c *Commodity) Workers() []Worker {
	out := make([]Worker, len(c.workers))
	copy(out, c.workers)
	return out
}

// LaborBudget is labor_required * demand: the cycle labor cost and the wage pool.
func (c *Commodity) LaborBudget() float64 {
	return float64(c.laborRequired) * c.demand
}

// HasLaborShortage reports whether staffed hours fall below the labor budget.
func (c *Commodity) HasLaborShortage() bool {
	return float64(c.laborAvailable) < c.LaborBudget()
}

// allocateWages computes every worker's wage from the commodity's labor budget.
// The staff list is copied; setWages records the result once the cycle completes.
func (c *Commodity) allocateWages() []Worker {
	return AllocateWages(c.Workers(), c.laborRequired, c.demand)
}

func (c *Commodity) setWages(wages []Worker) {
	copy(c.workers, wages)
}
