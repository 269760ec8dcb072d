package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// MaterialRepositoryGORM implements planning.MaterialRepository using GORM
type MaterialRepositoryGORM struct {
	db *gorm.DB
}

// NewMaterialRepository creates a new GORM material repository
func NewMaterialRepository(db *gorm.DB) *MaterialRepositoryGORM {
	return &MaterialRepositoryGORM{db: db}
}

// SaveAll upserts every material in a single transaction
func (r *MaterialRepositoryGORM) SaveAll(ctx context.Context, materials []*planning.Material) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range materials {
			model := materialToModel(m)
			if err := tx.Save(model).Error; err != nil {
				return fmt.Errorf("failed to save material %s: %w", m.Name(), err)
			}
		}
		return nil
	})
}

// FindAll retrieves every material ordered by name.
// Rows that no longer satisfy the material invariants are reported as an error.
func (r *MaterialRepositoryGORM) FindAll(ctx context.Context) ([]*planning.Material, error) {
	var models []MaterialModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	materials := make([]*planning.Material, 0, len(models))
	for i := range models {
		m, err := modelToMaterial(&models[i])
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, nil
}

// UpdateInventories writes back each material's inventory atomically.
// A material missing from the table fails the whole update.
func (r *MaterialRepositoryGORM) UpdateInventories(ctx context.Context, materials []*planning.Material) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range materials {
			result := tx.Model(&MaterialModel{}).
				Where("name = ?", m.Name()).
				Update("inventory", m.Inventory())
			if result.Error != nil {
				return fmt.Errorf("failed to update inventory of %s: %w", m.Name(), result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("failed to update inventory of %s: %w", m.Name(), planning.ErrMaterialNotFound)
			}
		}
		return nil
	})
}

func materialToModel(m *planning.Material) *MaterialModel {
	return &MaterialModel{
		Name:               m.Name(),
		Inventory:          m.Inventory(),
		ProductionCapacity: m.ProductionCapacity(),
		UnitCost:           m.UnitCost(),
	}
}

func modelToMaterial(model *MaterialModel) (*planning.Material, error) {
	m, err := planning.NewMaterial(model.Name, model.Inventory, model.ProductionCapacity, model.UnitCost)
	if err != nil {
		return nil, fmt.Errorf("invalid material %s in database: %w", model.Name, err)
	}
	return m, nil
}
