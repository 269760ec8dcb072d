package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "planner.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "planner"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "planner"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Planning defaults
	if cfg.Planning.Source == "" {
		cfg.Planning.Source = "file"
	}
	if cfg.Planning.MaterialsFile == "" {
		cfg.Planning.MaterialsFile = "materials.json"
	}
	if cfg.Planning.CommoditiesFile == "" {
		cfg.Planning.CommoditiesFile = "commodities.json"
	}
	if cfg.Planning.Cycles == 0 {
		cfg.Planning.Cycles = 1
	}
	if cfg.Planning.SmoothingAlpha == 0 {
		cfg.Planning.SmoothingAlpha = 0.5
	}
	if cfg.Planning.LockFile == "" {
		cfg.Planning.LockFile = "planner.lock"
	}
	if cfg.Planning.ReportFormat == "" {
		cfg.Planning.ReportFormat = "text"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "planner"
	}
	if cfg.Metrics.Enabled && cfg.Metrics.TextfilePath == "" {
		cfg.Metrics.TextfilePath = "planner.prom"
	}
}
