package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// DefaultNamespace prefixes every metric when the configuration names none
	DefaultNamespace = "planner"
	// Subsystem for planning metrics
	subsystem = "planning"
)

// Collector is a group of metrics registered together
type Collector interface {
	Register(reg prometheus.Registerer) error
}

// NewRegistry creates a registry with the standard Go runtime collectors plus the given groups
func NewRegistry(groups ...Collector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	for _, g := range groups {
		if err := g.Register(reg); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return reg, nil
}

// WriteTextfile writes the registry in text exposition format for the node_exporter textfile collector.
// The file is replaced atomically.
func WriteTextfile(gatherer prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

func registerAll(reg prometheus.Registerer, metrics ...prometheus.Collector) error {
	for _, metric := range metrics {
		if err := reg.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

func namespaceOrDefault(namespace string) string {
	if namespace == "" {
		return DefaultNamespace
	}
	return namespace
}
