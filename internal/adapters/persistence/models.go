package persistence

import (
	"time"
)

// MaterialModel represents the materials table
type MaterialModel struct {
	Name               string    `gorm:"column:name;primaryKey"`
	Inventory          float64   `gorm:"column:inventory;not null;default:0"`
	ProductionCapacity float64   `gorm:"column:production_capacity;not null;default:0"`
	UnitCost           float64   `gorm:"column:unit_cost;not null;default:0"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (MaterialModel) TableName() string {
	return "materials"
}

// CommodityModel represents the commodities table
type CommodityModel struct {
	Name           string                   `gorm:"column:name;primaryKey"`
	LaborRequired  int                      `gorm:"column:labor_required;not null;default:0"`
	LaborAvailable int                      `gorm:"column:labor_available;not null;default:0"`
	Demand         float64                  `gorm:"column:demand;not null;default:0"`
	Priority       int                      `gorm:"column:priority;not null"`
	Usages         []CommodityMaterialModel `gorm:"foreignKey:CommodityName;references:Name;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Workers        []WorkerModel            `gorm:"foreignKey:CommodityName;references:Name;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UpdatedAt      time.Time                `gorm:"column:updated_at"`
}

func (CommodityModel) TableName() string {
	return "commodities"
}

// CommodityMaterialModel represents the commodity_materials table (bill of materials)
// Position keeps the catalog order, which decides the order shortages are reported in
type CommodityMaterialModel struct {
	ID            int     `gorm:"column:id;primaryKey;autoIncrement"`
	CommodityName string  `gorm:"column:commodity_name;not null;index"`
	MaterialName  string  `gorm:"column:material_name;not null"`
	UsageRate     float64 `gorm:"column:usage_rate;not null"`
	Position      int     `gorm:"column:position;not null"`
}

func (CommodityMaterialModel) TableName() string {
	return "commodity_materials"
}

// WorkerModel represents the workers table
// Wages are derived every cycle and never stored here
type WorkerModel struct {
	ID            int     `gorm:"column:id;primaryKey;autoIncrement"`
	CommodityName string  `gorm:"column:commodity_name;not null;index"`
	Name          string  `gorm:"column:name;not null"`
	HoursWorked   float64 `gorm:"column:hours_worked;not null;default:0"`
	Position      int     `gorm:"column:position;not null"`
}

func (WorkerModel) TableName() string {
	return "workers"
}

// CycleReportModel represents the cycle_reports table
type CycleReportModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Cycle          int       `gorm:"column:cycle;not null"`
	StartedAt      time.Time `gorm:"column:started_at;not null"`
	CompletedAt    time.Time `gorm:"column:completed_at;not null;index"`
	TotalCost      float64   `gorm:"column:total_cost;not null"`
	CommodityCount int       `gorm:"column:commodity_count;not null"`
	ShortageCount  int       `gorm:"column:shortage_count;not null"`
	Payload        string    `gorm:"column:payload;type:text;not null"` // JSON-encoded CycleReport
}

func (CycleReportModel) TableName() string {
	return "cycle_reports"
}

// AllModels lists every model the planner migrates
func AllModels() []interface{} {
	return []interface{}{
		&MaterialModel{},
		&CommodityModel{},
		&CommodityMaterialModel{},
		&WorkerModel{},
		&CycleReportModel{},
	}
}
