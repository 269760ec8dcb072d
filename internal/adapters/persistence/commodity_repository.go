package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// CommodityRepositoryGORM implements planning.CommodityRepository using GORM
type CommodityRepositoryGORM struct {
	db *gorm.DB
}

// NewCommodityRepository creates a new GORM commodity repository
func NewCommodityRepository(db *gorm.DB) *CommodityRepositoryGORM {
	return &CommodityRepositoryGORM{db: db}
}

// SaveAll upserts every commodity and replaces its usages and workers
func (r *CommodityRepositoryGORM) SaveAll(ctx context.Context, commodities []*planning.Commodity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range commodities {
			model := commodityToModel(c)

			if err := tx.Where("commodity_name = ?", c.Name()).Delete(&CommodityMaterialModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear usages of %s: %w", c.Name(), err)
			}
			if err := tx.Where("commodity_name = ?", c.Name()).Delete(&WorkerModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear workers of %s: %w", c.Name(), err)
			}
			if err := tx.Omit("Usages", "Workers").Save(model).Error; err != nil {
				return fmt.Errorf("failed to save commodity %s: %w", c.Name(), err)
			}
			if len(model.Usages) > 0 {
				if err := tx.Create(&model.Usages).Error; err != nil {
					return fmt.Errorf("failed to save usages of %s: %w", c.Name(), err)
				}
			}
			if len(model.Workers) > 0 {
				if err := tx.Create(&model.Workers).Error; err != nil {
					return fmt.Errorf("failed to save workers of %s: %w", c.Name(), err)
				}
			}
		}
		return nil
	})
}

// FindAll retrieves every commodity ordered by name, with usages and workers in catalog order
func (r *CommodityRepositoryGORM) FindAll(ctx context.Context) ([]*planning.Commodity, error) {
	var models []CommodityModel
	err := r.db.WithContext(ctx).
		Preload("Usages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Workers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list commodities: %w", err)
	}

	commodities := make([]*planning.Commodity, 0, len(models))
	for i := range models {
		c, err := modelToCommodity(&models[i])
		if err != nil {
			return nil, err
		}
		commodities = append(commodities, c)
	}
	return commodities, nil
}

func commodityToModel(c *planning.Commodity) *CommodityModel {
	model := &CommodityModel{
		Name:           c.Name(),
		LaborRequired:  c.LaborRequired(),
		LaborAvailable: c.LaborAvailable(),
		Demand:         c.Demand(),
		Priority:       int(c.Priority()),
	}
	for i, usage := range c.Usages() {
		model.Usages = append(model.Usages, CommodityMaterialModel{
			CommodityName: c.Name(),
			MaterialName:  usage.Material,
			UsageRate:     usage.UsageRate,
			Position:      i,
		})
	}
	for i, w := range c.Workers() {
		model.Workers = append(model.Workers, WorkerModel{
			CommodityName: c.Name(),
			Name:          w.Name,
			HoursWorked:   w.HoursWorked,
			Position:      i,
		})
	}
	return model
}

func modelToCommodity(model *CommodityModel) (*planning.Commodity, error) {
	spec := planning.CommoditySpec{
		Name:           model.Name,
		LaborRequired:  model.LaborRequired,
		LaborAvailable: model.LaborAvailable,
		Demand:         model.Demand,
		Priority:       planning.PriorityClass(model.Priority),
	}
	for _, u := range model.Usages {
		spec.Usages = append(spec.Usages, planning.MaterialUsage{Material: u.MaterialName, UsageRate: u.UsageRate})
	}
	for _, w := range model.Workers {
		spec.Workers = append(spec.Workers, planning.Worker{Name: w.Name, HoursWorked: w.HoursWorked})
	}

	c, err := planning.NewCommodity(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid commodity %s in database: %w", model.Name, err)
	}
	return c, nil
}
