package config

// PlanningConfig controls where catalogs come from and how cycles are run and reported
type PlanningConfig struct {
	// Source of the planning state: "file" reads the catalog files, "database" reads imported catalogs
	Source string `mapstructure:"source" validate:"required,oneof=file database"`

	// Catalog files (.json, .yaml, .yml or .hjson)
	MaterialsFile   string `mapstructure:"materials_file" validate:"required_if=Source file,catalog_file"`
	CommoditiesFile string `mapstructure:"commodities_file" validate:"required_if=Source file,catalog_file"`

	// Number of consecutive cycles per run; inventory depletion carries over
	Cycles int `mapstructure:"cycles" validate:"min=1,max=1000"`

	// Write depleted inventories back to the database after a successful run
	PersistState bool `mapstructure:"persist_state"`

	// Alpha used when a commodity derives demand from its history and sets none of its own
	SmoothingAlpha float64 `mapstructure:"smoothing_alpha" validate:"gte=0,lte=1"`

	// Lock file held while inventories are written back
	LockFile string `mapstructure:"lock_file"`

	// Report rendering: text (line report) or json
	ReportFormat string `mapstructure:"report_format" validate:"required,oneof=text json"`

	// Report destination; empty writes to stdout
	ReportFile string `mapstructure:"report_file"`
}
