package catalog

import "github.com/andrescamacho/planner-go/internal/domain/planning"

// SampleDocument returns the two-commodity demonstration catalog:
// Chair (consumer goods) and Bread (basic needs) sharing Material A.
func SampleDocument() *Document {
	consumerGoods := PriorityValue(planning.PriorityConsumerGoodsAndServices)
	basicNeeds := PriorityValue(planning.PriorityBasicNeeds)

	return &Document{
		Materials: map[string]MaterialRecord{
			"Material A": {Inventory: floatPtr(50), ProductionCapacity: floatPtr(100), Cost: floatPtr(15)},
			"Material B": {Inventory: floatPtr(40), ProductionCapacity: floatPtr(150), Cost: floatPtr(14)},
			"Material C": {Inventory: floatPtr(60), ProductionCapacity: floatPtr(200), Cost: floatPtr(18)},
		},
		Commodities: []CommodityRecord{
			{
				Name:           "Chair",
				MaterialNames:  []string{"Material A", "Material B"},
				UsageRates:     map[string]float64{"Material A": 0.5, "Material B": 0.6},
				LaborRequired:  intPtr(13),
				LaborAvailable: intPtr(1000),
				Demand:         floatPtr(100),
				Priority:       &consumerGoods,
				Workers: []WorkerRecord{
					{Name: "Alice", HoursWorked: floatPtr(40)},
					{Name: "Bob", HoursWorked: floatPtr(40)},
				},
			},
			{
				Name:           "Bread",
				MaterialNames:  []string{"Material A", "Material C"},
				UsageRates:     map[string]float64{"Material A": 0.5, "Material C": 0.7},
				LaborRequired:  intPtr(16),
				LaborAvailable: intPtr(5000),
				Demand:         floatPtr(201),
				Priority:       &basicNeeds,
				Workers:        []WorkerRecord{},
			},
		},
	}
}

// DocumentFromCatalog converts domain objects back into records, for exporting an imported catalog
func DocumentFromCatalog(materials []*planning.Material, commodities []*planning.Commodity) *Document {
	doc := &Document{Materials: make(map[string]MaterialRecord, len(materials))}
	for _, m := range materials {
		doc.Materials[m.Name()] = MaterialRecord{
			Inventory:          floatPtr(m.Inventory()),
			ProductionCapacity: floatPtr(m.ProductionCapacity()),
			Cost:               floatPtr(m.UnitCost()),
		}
	}
	for _, c := range commodities {
		priority := PriorityValue(c.Priority())
		rec := CommodityRecord{
			Name:           c.Name(),
			UsageRates:     make(map[string]float64),
			LaborRequired:  intPtr(c.LaborRequired()),
			LaborAvailable: intPtr(c.LaborAvailable()),
			Demand:         floatPtr(c.Demand()),
			Priority:       &priority,
		}
		for _, u := range c.Usages() {
			rec.MaterialNames = append(rec.MaterialNames, u.Material)
			rec.UsageRates[u.Material] = u.UsageRate
		}
		for _, w := range c.Workers() {
			rec.Workers = append(rec.Workers, WorkerRecord{Name: w.Name, HoursWorked: floatPtr(w.HoursWorked)})
		}
		doc.Commodities = append(doc.Commodities, rec)
	}
	return doc
}
