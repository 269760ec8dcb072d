package planning

import "fmt"

// CommodityCatalog holds every planned commodity, keyed by unique name.
type CommodityCatalog struct {
	commodities map[string]*Commodity
	order       []string
}

// NewCommodityCatalog creates a catalog from commodities, rejecting duplicate names.
func NewCommodityCatalog(commodities ...*Commodity) (*CommodityCatalog, error) {
	c := &CommodityCatalog{commodities: make(map[string]*Commodity, len(commodities))}
	for _, commodity := range commodities {
		if err := c.Add(commodity); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers a commodity. A name collision is a ConfigurationError.
func (c *CommodityCatalog) Add(commodity *Commodity) error {
	if _, exists := c.commodities[commodity.name]; exists {
		return NewConfigurationError("commodity", commodity.name, ErrDuplicateName, "")
	}
	c.commodities[commodity.name] = commodity
	c.order = append(c.order, commodity.name)
	return nil
}

// Get returns the named commodity or ErrCommodityNotFound.
func (c *CommodityCatalog) Get(name string) (*Commodity, error) {
	commodity, ok := c.commodities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommodityNotFound, name)
	}
	return commodity, nil
}

// Len returns the number of commodities
func (c *CommodityCatalog) Len() int {
	return len(c.commodities)
}

// All returns commodities in registration order
func (c *CommodityCatalog) All() []*Commodity {
	out := make([]*Commodity, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.commodities[name])
	}
	return out
}
