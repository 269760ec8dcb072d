package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/adapters/catalog"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

const originalMaterials = `{
  "Material A": {"inventory": 50, "production_capacity": 100, "cost": 15},
  "Material B": {"inventory": 40, "production_capacity": 150, "cost": 14}
}`

const originalCommodities = `[
  {
    "name": "Chair",
    "materialNames": ["Material A", "Material B"],
    "usageRates": {"Material A": 0.5, "Material B": 0.6},
    "laborRequired": 13,
    "laborAvailable": 1000,
    "demand": 100,
    "priority": 4,
    "workers": [
      {"name": "Alice", "hoursWorked": 40, "wage": 0},
      {"name": "Bob", "hoursWorked": 40, "wage": 999}
    ]
  }
]`

func decodeOriginal(t *testing.T) *catalog.Document {
	t.Helper()
	doc := &catalog.Document{}
	require.NoError(t, catalog.Decode([]byte(originalMaterials), catalog.FormatJSON, &doc.Materials))
	require.NoError(t, catalog.Decode([]byte(originalCommodities), catalog.FormatJSON, &doc.Commodities))
	return doc
}

func TestBuilder_OriginalJSONFormat(t *testing.T) {
	// Arrange
	doc := decodeOriginal(t)

	// Act
	cat, err := catalog.NewBuilder(planning.DefaultSmoothingAlpha).Build(doc)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, cat.Warnings)
	require.Len(t, cat.Materials, 2)
	assert.Equal(t, "Material A", cat.Materials[0].Name())
	assert.Equal(t, 15.0, cat.Materials[0].UnitCost())

	require.Len(t, cat.Commodities, 1)
	chair := cat.Commodities[0]
	assert.Equal(t, planning.PriorityConsumerGoodsAndServices, chair.Priority())
	assert.Equal(t, []planning.MaterialUsage{
		{Material: "Material A", UsageRate: 0.5},
		{Material: "Material B", UsageRate: 0.6},
	}, chair.Usages())
	for _, w := range chair.Workers() {
		assert.Zero(t, w.Wage, "input wages are ignored")
	}
}

func TestBuilder_SampleDocumentBuildsState(t *testing.T) {
	cat, err := catalog.NewBuilder(planning.DefaultSmoothingAlpha).Build(catalog.SampleDocument())
	require.NoError(t, err)

	state, err := cat.State()
	require.NoError(t, err)
	assert.Equal(t, 3, state.Materials.Len())
	assert.Equal(t, 2, state.Commodities.Len())
	assert.NoError(t, state.CheckReferences())
}

func TestBuilder_PriorityByName(t *testing.T) {
	var records []catalog.CommodityRecord
	data := `[{"name": "Bread", "materialNames": [], "usageRates": {}, "laborRequired": 1,
	  "laborAvailable": 1, "demand": 1, "priority": "basic needs", "workers": []}]`
	require.NoError(t, catalog.Decode([]byte(data), catalog.FormatJSON, &records))

	cat, err := catalog.NewBuilder(0.5).Build(&catalog.Document{Commodities: records})

	require.NoError(t, err)
	assert.Equal(t, planning.PriorityBasicNeeds, cat.Commodities[0].Priority())
}

func TestBuilder_UnknownPriorityFailsDecode(t *testing.T) {
	var records []catalog.CommodityRecord
	data := `[{"name": "Bread", "priority": "whenever"}]`

	err := catalog.Decode([]byte(data), catalog.FormatJSON, &records)

	assert.ErrorContains(t, err, "unknown priority class")
}

func TestBuilder_OrphanUsageRate(t *testing.T) {
	// Arrange
	doc := decodeOriginal(t)
	doc.Commodities[0].UsageRates["Material Z"] = 1

	// Act
	_, err := catalog.NewBuilder(0.5).Build(doc)

	// Assert
	require.Error(t, err)
	assert.True(t, planning.IsConfigurationError(err))
	assert.True(t, errors.Is(err, planning.ErrOrphanUsageRate))
	assert.Contains(t, err.Error(), "Material Z")
}

func TestBuilder_MissingUsageRate(t *testing.T) {
	doc := decodeOriginal(t)
	delete(doc.Commodities[0].UsageRates, "Material B")

	_, err := catalog.NewBuilder(0.5).Build(doc)

	require.Error(t, err)
	assert.True(t, errors.Is(err, planning.ErrMissingUsageRate))
}

func TestBuilder_MissingFieldIsConfigurationError(t *testing.T) {
	// Arrange
	doc := decodeOriginal(t)
	doc.Commodities[0].LaborRequired = nil
	doc.Commodities[0].Workers[1].HoursWorked = nil

	// Act
	_, err := catalog.NewBuilder(0.5).Build(doc)

	// Assert
	require.Error(t, err)
	var cfgErr *planning.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "commodity", cfgErr.Entity)
	assert.Equal(t, "Chair", cfgErr.Name)
	assert.ErrorIs(t, err, planning.ErrMissingField)
	assert.Contains(t, err.Error(), "laborRequired")
	assert.Contains(t, err.Error(), "workers[1].hoursWorked")
}

func TestBuilder_NegativeValuesAreRejectedWithWarnings(t *testing.T) {
	// Arrange
	doc := decodeOriginal(t)
	negative := -5.0
	doc.Materials["Material B"] = catalog.MaterialRecord{
		Inventory:          &negative,
		ProductionCapacity: doc.Materials["Material B"].ProductionCapacity,
		Cost:               doc.Materials["Material B"].Cost,
	}

	// Act
	cat, err := catalog.NewBuilder(0.5).Build(doc)

	// Assert
	require.NoError(t, err)
	require.Len(t, cat.Warnings, 1)
	assert.Equal(t, "inventory", cat.Warnings[0].Field)
	assert.Equal(t, -5.0, cat.Warnings[0].Value)
	require.Len(t, cat.Materials, 1)
	assert.Equal(t, "Material A", cat.Materials[0].Name())

	// the chair still references the rejected material
	state, err := cat.State()
	require.NoError(t, err)
	assert.True(t, planning.IsConfigurationError(state.CheckReferences()))
}

func TestBuilder_DemandFromHistory(t *testing.T) {
	// Arrange
	doc := decodeOriginal(t)
	doc.Commodities[0].Demand = nil
	doc.Commodities[0].DemandHistory = []float64{100, 120, 130, 140, 150}

	// Act
	cat, err := catalog.NewBuilder(0.5).Build(doc)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 140.0, cat.Commodities[0].Demand(), 1e-9)
}

func TestBuilder_RecordAlphaOverridesDefault(t *testing.T) {
	doc := decodeOriginal(t)
	doc.Commodities[0].Demand = nil
	doc.Commodities[0].DemandHistory = []float64{100, 200}
	alpha := 1.0
	doc.Commodities[0].SmoothingAlpha = &alpha

	cat, err := catalog.NewBuilder(0.5).Build(doc)

	require.NoError(t, err)
	assert.Equal(t, 200.0, cat.Commodities[0].Demand())
}

func TestBuilder_InvalidAlphaRejectsCommodity(t *testing.T) {
	doc := decodeOriginal(t)
	doc.Commodities[0].Demand = nil
	doc.Commodities[0].DemandHistory = []float64{100}
	alpha := 1.5
	doc.Commodities[0].SmoothingAlpha = &alpha

	cat, err := catalog.NewBuilder(0.5).Build(doc)

	require.NoError(t, err)
	assert.Empty(t, cat.Commodities)
	require.Len(t, cat.Warnings, 1)
	assert.Equal(t, "smoothingAlpha", cat.Warnings[0].Field)
	assert.Contains(t, cat.Warnings[0].Error(), "Chair")
}

func TestBuilder_MissingDemandAndHistory(t *testing.T) {
	doc := decodeOriginal(t)
	doc.Commodities[0].Demand = nil

	_, err := catalog.NewBuilder(0.5).Build(doc)

	require.Error(t, err)
	assert.ErrorIs(t, err, planning.ErrMissingField)
	assert.Contains(t, err.Error(), "demand")
}
