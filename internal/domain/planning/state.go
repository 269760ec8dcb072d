package planning

import "errors"

// PlanningState is everything a run owns: the material registry and the commodity catalog.
// It is built at load time, mutated by each planning cycle (inventory depletion only),
// and discarded or carried into the next cycle by its owner.
type PlanningState struct {
	Materials   *MaterialRegistry
	Commodities *CommodityCatalog
}

// NewPlanningState assembles a state from loaded records, rejecting duplicate names.
func NewPlanningState(materials []*Material, commodities []*Commodity) (*PlanningState, error) {
	registry, err := NewMaterialRegistry(materials...)
	if err != nil {
		return nil, err
	}
	catalog, err := NewCommodityCatalog(commodities...)
	if err != nil {
		return nil, err
	}
	return &PlanningState{Materials: registry, Commodities: catalog}, nil
}

// CheckReferences verifies every commodity's materials resolve in the registry.
// All misses are joined so a single pass reports the whole configuration problem.
func (s *PlanningState) CheckReferences() error {
	var errs []error
	for _, commodity := range s.Commodities.All() {
		for _, usage := range commodity.usages {
			if _, err := s.Materials.Resolve(commodity.name, usage.Material); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
