package planning

import (
	"fmt"
	"math"
)

// Material is a raw input tracked by the registry.
//
// Invariants:
// - inventory >= 0 at all times; only Deplete lowers it
// - productionCapacity is a renewable per-cycle ceiling and is never consumed
type Material struct {
	name               string
	inventory          float64
	productionCapacity float64
	unitCost           float64
}

// NewMaterial validates and creates a material.
// Negative inventory or capacity yields a DataRangeWarning so the loader can reject the record.
func NewMaterial(name string, inventory, productionCapacity, unitCost float64) (*Material, error) {
	if name == "" {
		return nil, fmt.Errorf("material name cannot be empty")
	}
	record := fmt.Sprintf("material %q", name)

	checks := []struct {
		field string
		value float64
	}{
		{"inventory", inventory},
		{"production_capacity", productionCapacity},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return nil, &DataRangeWarning{Record: record, Field: c.field, Value: c.value, Rule: "must be finite"}
		}
		if c.value < 0 {
			return nil, newNegativeValueWarning(record, c.field, c.value)
		}
	}
	if math.IsNaN(unitCost) || math.IsInf(unitCost, 0) {
		return nil, &DataRangeWarning{Record: record, Field: "unit_cost", Value: unitCost, Rule: "must be finite"}
	}

	return &Material{
		name:               name,
		inventory:          inventory,
		productionCapacity: productionCapacity,
		unitCost:           unitCost,
	}, nil
}

// Getters

func (m *Material) Name() string                { return m.name }
func (m *Material) Inventory() float64          { return m.inventory }
func (m *Material) ProductionCapacity() float64 { return m.productionCapacity }
func (m *Material) UnitCost() float64           { return m.unitCost }

// Available is what shortage accounting counts as supply: stock plus same-cycle production.
func (m *Material) Available() float64 {
	return m.inventory + m.productionCapacity
}

// Clone returns an independent copy, used for registry snapshots.
func (m *Material) Clone() *Material {
	clone := *m
	return &clone
}
