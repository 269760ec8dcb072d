package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// Catalog is the domain view of a decoded document plus the records it rejected
type Catalog struct {
	Materials   []*planning.Material
	Commodities []*planning.Commodity
	Warnings    []*planning.DataRangeWarning
}

// State assembles a planning state from the accepted records
func (c *Catalog) State() (*planning.PlanningState, error) {
	return planning.NewPlanningState(c.Materials, c.Commodities)
}

// Builder turns catalog records into domain objects.
//
// Records with out-of-range numbers are dropped and reported as warnings.
// Missing fields and mismatched usage rates are configuration errors and stop the build.
type Builder struct {
	validate *validator.Validate
	alpha    float64
}

// NewBuilder creates a builder; alpha smooths demand histories that carry no alpha of their own
func NewBuilder(alpha float64) *Builder {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Builder{validate: v, alpha: alpha}
}

// Build converts doc. Materials are processed in name order, commodities in document order.
func (b *Builder) Build(doc *Document) (*Catalog, error) {
	out := &Catalog{}

	names := make([]string, 0, len(doc.Materials))
	for name := range doc.Materials {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		material, err := b.buildMaterial(name, doc.Materials[name])
		if err != nil {
			var warning *planning.DataRangeWarning
			if errors.As(err, &warning) {
				out.Warnings = append(out.Warnings, warning)
				continue
			}
			return nil, err
		}
		out.Materials = append(out.Materials, material)
	}

	for i := range doc.Commodities {
		commodity, err := b.buildCommodity(&doc.Commodities[i])
		if err != nil {
			var warning *planning.DataRangeWarning
			if errors.As(err, &warning) {
				out.Warnings = append(out.Warnings, warning)
				continue
			}
			return nil, err
		}
		out.Commodities = append(out.Commodities, commodity)
	}

	return out, nil
}

func (b *Builder) buildMaterial(name string, rec MaterialRecord) (*planning.Material, error) {
	if name == "" {
		return nil, planning.NewConfigurationError("material", name, planning.ErrMissingField, "empty material name")
	}
	if err := b.validate.Struct(rec); err != nil {
		return nil, b.missingFields("material", name, err)
	}
	return planning.NewMaterial(name, *rec.Inventory, *rec.ProductionCapacity, *rec.Cost)
}

func (b *Builder) buildCommodity(rec *CommodityRecord) (*planning.Commodity, error) {
	if err := b.validate.Struct(rec); err != nil {
		return nil, b.missingFields("commodity", rec.Name, err)
	}

	usages, err := pairUsageRates(rec)
	if err != nil {
		return nil, err
	}

	demand, err := b.demandOf(rec)
	if err != nil {
		return nil, err
	}

	workers := make([]planning.Worker, 0, len(rec.Workers))
	for _, w := range rec.Workers {
		workers = append(workers, planning.Worker{Name: w.Name, HoursWorked: *w.HoursWorked})
	}

	return planning.NewCommodity(planning.CommoditySpec{
		Name:           rec.Name,
		Usages:         usages,
		LaborRequired:  *rec.LaborRequired,
		LaborAvailable: *rec.LaborAvailable,
		Demand:         demand,
		Priority:       planning.PriorityClass(*rec.Priority),
		Workers:        workers,
	})
}

// pairUsageRates joins materialNames with usageRates, keeping materialNames order.
// Every listed material needs a rate and every rate needs a listed material.
func pairUsageRates(rec *CommodityRecord) ([]planning.MaterialUsage, error) {
	listed := make(map[string]bool, len(rec.MaterialNames))
	usages := make([]planning.MaterialUsage, 0, len(rec.MaterialNames))
	for _, name := range rec.MaterialNames {
		rate, ok := rec.UsageRates[name]
		if !ok {
			return nil, planning.NewConfigurationError("commodity", rec.Name, planning.ErrMissingUsageRate, name)
		}
		listed[name] = true
		usages = append(usages, planning.MaterialUsage{Material: name, UsageRate: rate})
	}

	var orphans []string
	for name := range rec.UsageRates {
		if !listed[name] {
			orphans = append(orphans, name)
		}
	}
	if len(orphans) > 0 {
		slices.Sort(orphans)
		return nil, planning.NewConfigurationError("commodity", rec.Name, planning.ErrOrphanUsageRate, strings.Join(orphans, ", "))
	}
	return usages, nil
}

// demandOf returns the explicit demand or, without one, the smoothed demand history
func (b *Builder) demandOf(rec *CommodityRecord) (float64, error) {
	if rec.Demand != nil {
		return *rec.Demand, nil
	}

	alpha := b.alpha
	if rec.SmoothingAlpha != nil {
		alpha = *rec.SmoothingAlpha
	}
	demand, err := planning.ExponentialSmoothing(rec.DemandHistory, alpha)
	if err != nil {
		var warning *planning.DataRangeWarning
		if errors.As(err, &warning) {
			warning.Record = fmt.Sprintf("commodity %q", rec.Name)
			warning.Field = "smoothingAlpha"
			return 0, warning
		}
		return 0, planning.NewConfigurationError("commodity", rec.Name, err, "")
	}
	return demand, nil
}

func (b *Builder) missingFields(entity, name string, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return planning.NewConfigurationError(entity, name, err, "")
	}
	fields := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		// drop the leading record type, keeping paths such as workers[0].hoursWorked
		_, field, _ := strings.Cut(e.Namespace(), ".")
		fields = append(fields, field)
	}
	return planning.NewConfigurationError(entity, name, planning.ErrMissingField, strings.Join(fields, ", "))
}
