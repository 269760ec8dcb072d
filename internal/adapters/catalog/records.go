package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// MaterialRecord is one entry of the materials document, keyed by material name
type MaterialRecord struct {
	Inventory          *float64 `json:"inventory" yaml:"inventory" validate:"required"`
	ProductionCapacity *float64 `json:"production_capacity" yaml:"production_capacity" validate:"required"`
	Cost               *float64 `json:"cost" yaml:"cost" validate:"required"`
}

// WorkerRecord is one worker of a commodity. Wage is accepted for compatibility and ignored.
type WorkerRecord struct {
	Name        string   `json:"name" yaml:"name" validate:"required"`
	HoursWorked *float64 `json:"hoursWorked" yaml:"hoursWorked" validate:"required"`
	Wage        float64  `json:"wage" yaml:"wage"`
}

// CommodityRecord is one entry of the commodities document
type CommodityRecord struct {
	Name           string             `json:"name" yaml:"name" validate:"required"`
	MaterialNames  []string           `json:"materialNames" yaml:"materialNames" validate:"required,dive,required"`
	UsageRates     map[string]float64 `json:"usageRates" yaml:"usageRates" validate:"required"`
	LaborRequired  *int               `json:"laborRequired" yaml:"laborRequired" validate:"required"`
	LaborAvailable *int               `json:"laborAvailable" yaml:"laborAvailable" validate:"required"`
	Demand         *float64           `json:"demand,omitempty" yaml:"demand,omitempty" validate:"required_without=DemandHistory"`
	DemandHistory  []float64          `json:"demandHistory,omitempty" yaml:"demandHistory,omitempty"`
	SmoothingAlpha *float64           `json:"smoothingAlpha,omitempty" yaml:"smoothingAlpha,omitempty"`
	Priority       *PriorityValue     `json:"priority" yaml:"priority" validate:"required"`
	Workers        []WorkerRecord     `json:"workers" yaml:"workers" validate:"dive"`
}

// PriorityValue is a priority class written either as its number or its name
type PriorityValue planning.PriorityClass

// UnmarshalJSON accepts 4, "4" or "CONSUMER_GOODS_AND_SERVICES"
func (p *PriorityValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var text string
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return fmt.Errorf("priority must be a whole number, got %v", v)
		}
		text = strconv.Itoa(int(v))
	case string:
		text = v
	default:
		return fmt.Errorf("priority must be a number or a class name")
	}

	class, err := planning.ParsePriorityClass(text)
	if err != nil {
		return err
	}
	*p = PriorityValue(class)
	return nil
}

// MarshalJSON writes the numeric class, as the original catalogs do
func (p PriorityValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(p))
}

// MarshalYAML writes the numeric class
func (p PriorityValue) MarshalYAML() (interface{}, error) {
	return int(p), nil
}

// Document is a decoded pair of catalog files
type Document struct {
	Materials   map[string]MaterialRecord
	Commodities []CommodityRecord
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
