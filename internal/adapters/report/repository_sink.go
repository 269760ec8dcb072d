package report

import (
	"context"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// RepositorySink stores every completed cycle report
type RepositorySink struct {
	repo planning.CycleReportRepository
}

// NewRepositorySink persists reports through repo
func NewRepositorySink(repo planning.CycleReportRepository) *RepositorySink {
	return &RepositorySink{repo: repo}
}

// CommodityPlanned implements planning.ReportSink
func (s *RepositorySink) CommodityPlanned(context.Context, int, planning.CommodityResult) error {
	return nil
}

// CycleCompleted implements planning.ReportSink
func (s *RepositorySink) CycleCompleted(ctx context.Context, report *planning.CycleReport) error {
	return s.repo.Save(ctx, report)
}

// Recorder keeps every report in memory; the CLI uses it to print summaries after a run
type Recorder struct {
	Results []planning.CommodityResult
	Reports []*planning.CycleReport
}

// CommodityPlanned implements planning.ReportSink
func (r *Recorder) CommodityPlanned(_ context.Context, _ int, result planning.CommodityResult) error {
	r.Results = append(r.Results, result)
	return nil
}

// CycleCompleted implements planning.ReportSink
func (r *Recorder) CycleCompleted(_ context.Context, report *planning.CycleReport) error {
	r.Reports = append(r.Reports, report)
	return nil
}
