package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/pkg/utils"
)

// TreeFormatter renders the catalog as commodity -> material trees, in processing order
type TreeFormatter struct {
	useColors bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors bool) *TreeFormatter {
	return &TreeFormatter{useColors: useColors}
}

// FormatCatalog renders each commodity with its bill of materials and workers.
// Materials whose stock plus capacity cannot cover the commodity's own need are flagged.
func (f *TreeFormatter) FormatCatalog(commodities []*planning.Commodity, registry *planning.MaterialRegistry) string {
	if len(commodities) == 0 {
		return "(empty catalog)\n"
	}

	var builder strings.Builder
	for _, c := range commodities {
		fmt.Fprintf(&builder, "%s [%s] demand=%s labor=%d/%d\n",
			c.Name(),
			c.Priority(),
			utils.FormatQuantity(c.Demand()),
			c.LaborRequired(),
			c.LaborAvailable(),
		)

		usages := c.Usages()
		workers := c.Workers()
		for i, u := range usages {
			isLast := i == len(usages)-1 && len(workers) == 0
			builder.WriteString(f.branch(isLast))
			builder.WriteString(f.formatUsage(c, u, registry))
			builder.WriteString("\n")
		}
		for i, w := range workers {
			builder.WriteString(f.branch(i == len(workers)-1))
			fmt.Fprintf(&builder, "worker %s (%s h)\n", w.Name, utils.FormatQuantity(w.HoursWorked))
		}
	}
	return builder.String()
}

func (f *TreeFormatter) branch(isLast bool) string {
	if isLast {
		return "└── "
	}
	return "├── "
}

func (f *TreeFormatter) formatUsage(c *planning.Commodity, u planning.MaterialUsage, registry *planning.MaterialRegistry) string {
	material, err := registry.Get(u.Material)
	if err != nil {
		return fmt.Sprintf("%s%s x%s (missing from registry)%s",
			f.color(colorRed), u.Material, utils.FormatQuantity(u.UsageRate), f.colorReset())
	}

	required := planning.Required(c.Demand(), u.UsageRate)
	color := colorGreen
	if required > material.Available() {
		color = colorRed
	}
	return fmt.Sprintf("%s%s%s x%s need=%s stock=%s capacity=%s",
		f.color(color),
		u.Material,
		f.colorReset(),
		utils.FormatQuantity(u.UsageRate),
		utils.FormatQuantity(required),
		utils.FormatQuantity(material.Inventory()),
		utils.FormatQuantity(material.ProductionCapacity()),
	)
}

const (
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
)

func (f *TreeFormatter) color(code string) string {
	if !f.useColors {
		return ""
	}
	return code
}

func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}
