package planning

import "fmt"

// MaterialRegistry holds the current state of every material, keyed by unique name.
// Lookups are fallible: an absent name is reported, never inserted.
type MaterialRegistry struct {
	materials map[string]*Material
	order     []string
}

// NewMaterialRegistry creates a registry from materials, rejecting duplicate names.
func NewMaterialRegistry(materials ...*Material) (*MaterialRegistry, error) {
	r := &MaterialRegistry{materials: make(map[string]*Material, len(materials))}
	for _, m := range materials {
		if err := r.Add(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a material. A name collision is a ConfigurationError.
func (r *MaterialRegistry) Add(m *Material) error {
	if _, exists := r.materials[m.name]; exists {
		return NewConfigurationError("material", m.name, ErrDuplicateName, "")
	}
	r.materials[m.name] = m
	r.order = append(r.order, m.name)
	return nil
}

// Get returns the named material or ErrMaterialNotFound.
func (r *MaterialRegistry) Get(name string) (*Material, error) {
	m, ok := r.materials[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMaterialNotFound, name)
	}
	return m, nil
}

// Resolve looks up a material referenced by a commodity, reporting a miss as a
// ConfigurationError against that commodity.
func (r *MaterialRegistry) Resolve(commodity, material string) (*Material, error) {
	m, ok := r.materials[material]
	if !ok {
		return nil, NewConfigurationError("commodity", commodity, ErrMaterialNotFound,
			fmt.Sprintf("references material %q", material))
	}
	return m, nil
}

// Len returns the number of registered materials
func (r *MaterialRegistry) Len() int {
	return len(r.materials)
}

// All returns materials in registration order
func (r *MaterialRegistry) All() []*Material {
	out := make([]*Material, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.materials[name])
	}
	return out
}

// Inventories returns the current inventory level of every material in registration order
func (r *MaterialRegistry) Inventories() []InventoryLevel {
	levels := make([]InventoryLevel, 0, len(r.order))
	for _, name := range r.order {
		m := r.materials[name]
		levels = append(levels, InventoryLevel{
			Material:           name,
			Inventory:          m.inventory,
			ProductionCapacity: m.productionCapacity,
		})
	}
	return levels
}

// Clone returns a deep copy so a caller can plan against a snapshot
func (r *MaterialRegistry) Clone() *MaterialRegistry {
	clone := &MaterialRegistry{
		materials: make(map[string]*Material, len(r.materials)),
		order:     append([]string(nil), r.order...),
	}
	for name, m := range r.materials {
		clone.materials[name] = m.Clone()
	}
	return clone
}
