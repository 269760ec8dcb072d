package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// CycleReportRepositoryGORM implements planning.CycleReportRepository using GORM.
// The full report is stored as a JSON payload next to a few queryable summary columns.
type CycleReportRepositoryGORM struct {
	db *gorm.DB
}

// NewCycleReportRepository creates a new GORM cycle report repository
func NewCycleReportRepository(db *gorm.DB) *CycleReportRepositoryGORM {
	return &CycleReportRepositoryGORM{db: db}
}

// Save persists a cycle report
func (r *CycleReportRepositoryGORM) Save(ctx context.Context, report *planning.CycleReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal cycle report: %w", err)
	}

	model := &CycleReportModel{
		ID:             report.ID,
		Cycle:          report.Cycle,
		StartedAt:      report.StartedAt,
		CompletedAt:    report.CompletedAt,
		TotalCost:      report.TotalCost,
		CommodityCount: len(report.Commodities),
		ShortageCount:  report.ShortageCount(),
		Payload:        string(payload),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save cycle report: %w", err)
	}
	return nil
}

// FindByID retrieves a cycle report by ID
func (r *CycleReportRepositoryGORM) FindByID(ctx context.Context, id string) (*planning.CycleReport, error) {
	var model CycleReportModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", planning.ErrReportNotFound, id)
		}
		return nil, fmt.Errorf("failed to find cycle report: %w", result.Error)
	}
	return modelToReport(&model)
}

// List retrieves the most recent reports first. A non-positive limit returns all reports.
func (r *CycleReportRepositoryGORM) List(ctx context.Context, limit int) ([]*planning.CycleReport, error) {
	query := r.db.WithContext(ctx).Order("completed_at DESC").Order("cycle DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []CycleReportModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list cycle reports: %w", err)
	}

	reports := make([]*planning.CycleReport, 0, len(models))
	for i := range models {
		report, err := modelToReport(&models[i])
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func modelToReport(model *CycleReportModel) (*planning.CycleReport, error) {
	var report planning.CycleReport
	if err := json.Unmarshal([]byte(model.Payload), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cycle report %s: %w", model.ID, err)
	}
	return &report, nil
}
