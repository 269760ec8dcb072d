package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// JSONSink writes one indented JSON document per completed cycle.
// Per-commodity results are carried inside the cycle document.
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink writes to w
func NewJSONSink(w io.Writer) *JSONSink {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONSink{enc: enc}
}

// CommodityPlanned implements planning.ReportSink
func (s *JSONSink) CommodityPlanned(context.Context, int, planning.CommodityResult) error {
	return nil
}

// CycleCompleted implements planning.ReportSink
func (s *JSONSink) CycleCompleted(_ context.Context, report *planning.CycleReport) error {
	if err := s.enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode cycle report: %w", err)
	}
	return nil
}
