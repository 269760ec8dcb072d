package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// StateLoader builds a PlanningState from imported catalogs.
// Records are validated on import, so this loader reports no warnings of its own.
type StateLoader struct {
	materials   planning.MaterialRepository
	commodities planning.CommodityRepository
}

// NewStateLoader creates a loader over the GORM repositories
func NewStateLoader(db *gorm.DB) *StateLoader {
	return &StateLoader{
		materials:   NewMaterialRepository(db),
		commodities: NewCommodityRepository(db),
	}
}

// LoadState implements planning.StateLoader
func (l *StateLoader) LoadState(ctx context.Context) (*planning.PlanningState, []*planning.DataRangeWarning, error) {
	materials, err := l.materials.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	commodities, err := l.commodities.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(materials) == 0 && len(commodities) == 0 {
		return nil, nil, fmt.Errorf("no catalog in database; run 'planner catalog import' first")
	}

	state, err := planning.NewPlanningState(materials, commodities)
	if err != nil {
		return nil, nil, err
	}
	return state, nil, nil
}
