package planning

import (
	"cmp"
	"slices"
	"strings"
)

// CompareCommodities defines processing order: priority ascending, then demand
// descending, then name ascending so the order is total.
func CompareCommodities(a, b *Commodity) int {
	if c := cmp.Compare(a.priority, b.priority); c != 0 {
		return c
	}
	if c := cmp.Compare(b.demand, a.demand); c != 0 {
		return c
	}
	return strings.Compare(a.name, b.name)
}

// OrderCommodities returns a new slice sorted for processing; the input is left untouched.
func OrderCommodities(commodities []*Commodity) []*Commodity {
	ordered := slices.Clone(commodities)
	slices.SortStableFunc(ordered, CompareCommodities)
	return ordered
}
