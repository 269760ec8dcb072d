package config

// MetricsConfig holds metrics collection and export configuration
type MetricsConfig struct {
	// Enabled controls whether planning metrics are collected
	Enabled bool `mapstructure:"enabled"`

	// TextfilePath receives the Prometheus text exposition after each run
	// (suitable for the node_exporter textfile collector)
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace" validate:"required"`
}
