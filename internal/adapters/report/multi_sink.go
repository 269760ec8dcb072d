package report

import (
	"context"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// MultiSink fans results out to several sinks in order, stopping at the first error
type MultiSink struct {
	sinks []planning.ReportSink
}

// NewMultiSink skips nil sinks
func NewMultiSink(sinks ...planning.ReportSink) *MultiSink {
	m := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Add appends a sink
func (m *MultiSink) Add(sink planning.ReportSink) {
	if sink != nil {
		m.sinks = append(m.sinks, sink)
	}
}

// CommodityPlanned implements planning.ReportSink
func (m *MultiSink) CommodityPlanned(ctx context.Context, cycle int, result planning.CommodityResult) error {
	for _, s := range m.sinks {
		if err := s.CommodityPlanned(ctx, cycle, result); err != nil {
			return err
		}
	}
	return nil
}

// CycleCompleted implements planning.ReportSink
func (m *MultiSink) CycleCompleted(ctx context.Context, report *planning.CycleReport) error {
	for _, s := range m.sinks {
		if err := s.CycleCompleted(ctx, report); err != nil {
			return err
		}
	}
	return nil
}
