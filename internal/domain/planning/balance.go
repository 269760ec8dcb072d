package planning

import "math"

// Required returns the material quantity needed to meet demand at the given usage rate.
func Required(demand, usageRate float64) float64 {
	return demand * usageRate
}

// Balance returns the shortfall of material against demand*usageRate.
// Inventory and production capacity both count as supply. Pure: the material is not modified.
func Balance(material *Material, demand, usageRate float64) float64 {
	return math.Max(0, Required(demand, usageRate)-material.Available())
}

// Deplete draws demand*usageRate from inventory, capped at what is on hand,
// and returns the quantity actually consumed. Production capacity is never drawn down.
func Deplete(material *Material, demand, usageRate float64) float64 {
	required := Required(demand, usageRate)
	if required <= 0 {
		return 0
	}
	actual := math.Min(material.inventory, required)
	material.inventory -= actual
	return actual
}
