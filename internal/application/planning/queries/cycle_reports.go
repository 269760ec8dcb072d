package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/planner-go/internal/application/common"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/internal/domain/shared"
)

// ListCycleReportsQuery lists stored cycle reports, newest first
type ListCycleReportsQuery struct {
	Limit int // 0 lists everything
}

// ListCycleReportsResponse carries the reports found
type ListCycleReportsResponse struct {
	Reports []*planning.CycleReport
}

// ListCycleReportsHandler handles the ListCycleReports query
type ListCycleReportsHandler struct {
	repo planning.CycleReportRepository
}

// NewListCycleReportsHandler creates a new ListCycleReportsHandler
func NewListCycleReportsHandler(repo planning.CycleReportRepository) *ListCycleReportsHandler {
	return &ListCycleReportsHandler{repo: repo}
}

// Handle executes the ListCycleReports query
func (h *ListCycleReportsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListCycleReportsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListCycleReportsQuery")
	}
	if query.Limit < 0 {
		return nil, shared.NewValidationError("limit", "cannot be negative")
	}

	reports, err := h.repo.List(ctx, query.Limit)
	if err != nil {
		return nil, err
	}
	return &ListCycleReportsResponse{Reports: reports}, nil
}

// GetCycleReportQuery fetches one stored cycle report
type GetCycleReportQuery struct {
	ReportID string
}

// GetCycleReportResponse carries the report
type GetCycleReportResponse struct {
	Report *planning.CycleReport
}

// GetCycleReportHandler handles the GetCycleReport query
type GetCycleReportHandler struct {
	repo planning.CycleReportRepository
}

// NewGetCycleReportHandler creates a new GetCycleReportHandler
func NewGetCycleReportHandler(repo planning.CycleReportRepository) *GetCycleReportHandler {
	return &GetCycleReportHandler{repo: repo}
}

// Handle executes the GetCycleReport query
func (h *GetCycleReportHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetCycleReportQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCycleReportQuery")
	}
	if err := planning.ValidateReportID(query.ReportID); err != nil {
		return nil, err
	}

	report, err := h.repo.FindByID(ctx, query.ReportID)
	if err != nil {
		return nil, err
	}
	return &GetCycleReportResponse{Report: report}, nil
}
