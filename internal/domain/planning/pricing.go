package planning

// RemediationCost is the cost of covering a shortage at the material's unit cost.
func RemediationCost(material *Material, shortage float64) float64 {
	if shortage <= 0 {
		return 0
	}
	return shortage * material.UnitCost()
}

// Price returns the commodity's intrinsic unit price: each usage rate valued at the
// material's current unit cost, plus labor_required unscaled by demand.
func Price(commodity *Commodity, registry *MaterialRegistry) (float64, error) {
	total := 0.0
	for _, usage := range commodity.usages {
		material, err := registry.Resolve(commodity.name, usage.Material)
		if err != nil {
			return 0, err
		}
		total += usage.UsageRate * material.UnitCost()
	}
	return total + float64(commodity.laborRequired), nil
}

// CycleCost returns the commodity's cost for one cycle against the registry as it stands:
// remediation cost of every shortage plus the labor budget. Labor shortage does not affect it.
// Pure: the registry is not modified.
func CycleCost(commodity *Commodity, registry *MaterialRegistry) (float64, error) {
	total := 0.0
	for _, usage := range commodity.usages {
		material, err := registry.Resolve(commodity.name, usage.Material)
		if err != nil {
			return 0, err
		}
		total += RemediationCost(material, Balance(material, commodity.demand, usage.UsageRate))
	}
	return total + commodity.LaborBudget(), nil
}
