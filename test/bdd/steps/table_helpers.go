package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// getCellValue returns the cell of row under the header named columnName, or "" if absent
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	headerRow := table.Rows[0]
	for i, headerCell := range headerRow.Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return strings.TrimSpace(row.Cells[i].Value)
			}
			return ""
		}
	}
	return ""
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return v, nil
}

// splitList splits "Material A, Material B" into trimmed items
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseFloatList(s string) ([]float64, error) {
	items := splitList(s)
	out := make([]float64, 0, len(items))
	for _, item := range items {
		v, err := parseFloat(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// materialFromRow reads name | inventory | production_capacity | unit_cost
func materialFromRow(table *godog.Table, row *messages.PickleTableRow) (*planning.Material, error) {
	var values [3]float64
	for i, column := range []string{"inventory", "production_capacity", "unit_cost"} {
		v, err := parseFloat(getCellValue(table, row, column))
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return planning.NewMaterial(getCellValue(table, row, "name"), values[0], values[1], values[2])
}

// commoditySpecFromRow reads name | materials | usage_rates | labor_required | labor_available | demand | priority
func commoditySpecFromRow(table *godog.Table, row *messages.PickleTableRow) (planning.CommoditySpec, error) {
	spec := planning.CommoditySpec{Name: getCellValue(table, row, "name")}

	materials := splitList(getCellValue(table, row, "materials"))
	rates, err := parseFloatList(getCellValue(table, row, "usage_rates"))
	if err != nil {
		return spec, err
	}
	if len(materials) != len(rates) {
		return spec, fmt.Errorf("commodity %s lists %d materials but %d usage rates", spec.Name, len(materials), len(rates))
	}
	for i, m := range materials {
		spec.Usages = append(spec.Usages, planning.MaterialUsage{Material: m, UsageRate: rates[i]})
	}

	if spec.LaborRequired, err = parseInt(getCellValue(table, row, "labor_required")); err != nil {
		return spec, err
	}
	if spec.LaborAvailable, err = parseInt(getCellValue(table, row, "labor_available")); err != nil {
		return spec, err
	}
	if spec.Demand, err = parseFloat(getCellValue(table, row, "demand")); err != nil {
		return spec, err
	}
	if spec.Priority, err = planning.ParsePriorityClass(getCellValue(table, row, "priority")); err != nil {
		return spec, err
	}
	return spec, nil
}

// workersFromTable reads name | hours_worked
func workersFromTable(table *godog.Table) ([]planning.Worker, error) {
	var workers []planning.Worker
	for _, row := range table.Rows[1:] {
		hours, err := parseFloat(getCellValue(table, row, "hours_worked"))
		if err != nil {
			return nil, err
		}
		workers = append(workers, planning.Worker{Name: getCellValue(table, row, "name"), HoursWorked: hours})
	}
	return workers, nil
}
