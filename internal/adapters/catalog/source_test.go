package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/adapters/catalog"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

func TestFileSource_LoadsSampleInEveryFormat(t *testing.T) {
	for _, format := range []catalog.Format{catalog.FormatJSON, catalog.FormatYAML, catalog.FormatHJSON} {
		t.Run(string(format), func(t *testing.T) {
			// Arrange
			materials, commodities, err := catalog.WriteDocument(t.TempDir(), catalog.SampleDocument(), format)
			require.NoError(t, err)
			assert.Equal(t, "materials"+format.Extension(), filepath.Base(materials))

			// Act
			state, warnings, err := catalog.NewFileSource(materials, commodities, 0.5).LoadState(context.Background())

			// Assert
			require.NoError(t, err)
			assert.Empty(t, warnings)
			chair, err := state.Commodities.Get("Chair")
			require.NoError(t, err)
			assert.Equal(t, 100.0, chair.Demand())
			assert.Equal(t, planning.PriorityConsumerGoodsAndServices, chair.Priority())
			assert.Len(t, chair.Workers(), 2)

			b, err := state.Materials.Get("Material B")
			require.NoError(t, err)
			assert.Equal(t, 14.0, b.UnitCost())
		})
	}
}

func TestFileSource_HJSONWithComments(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	materials := filepath.Join(dir, "materials.hjson")
	commodities := filepath.Join(dir, "commodities.hjson")
	require.NoError(t, os.WriteFile(materials, []byte(`{
  # stock on hand
  "Material A": { inventory: 10, production_capacity: 0, cost: 2 }
}`), 0o644))
	require.NoError(t, os.WriteFile(commodities, []byte(`[
  {
    name: Widget
    materialNames: ["Material A"]
    usageRates: { "Material A": 1 }
    laborRequired: 1
    laborAvailable: 100
    demandHistory: [10, 20]
    priority: EMERGENCY_SERVICES_AND_DISASTER_MANAGEMENT
    workers: []
  }
]`), 0o644))

	// Act
	state, _, err := catalog.NewFileSource(materials, commodities, 0.5).LoadState(context.Background())

	// Assert
	require.NoError(t, err)
	widget, err := state.Commodities.Get("Widget")
	require.NoError(t, err)
	assert.Equal(t, 15.0, widget.Demand())
	assert.Equal(t, planning.PriorityEmergencyServices, widget.Priority())
}

func TestFileSource_UnsupportedExtension(t *testing.T) {
	_, _, err := catalog.NewFileSource("materials.txt", "commodities.json", 0.5).LoadState(context.Background())

	assert.ErrorContains(t, err, "unsupported catalog file extension")
}

func TestFileSource_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, _, err := catalog.NewFileSource(filepath.Join(dir, "materials.json"), filepath.Join(dir, "commodities.json"), 0.5).
		LoadState(context.Background())

	assert.ErrorContains(t, err, "failed to open catalog file")
}

func TestDocumentFromCatalog_RoundTrip(t *testing.T) {
	// Arrange
	built, err := catalog.NewBuilder(0.5).Build(catalog.SampleDocument())
	require.NoError(t, err)

	// Act
	doc := catalog.DocumentFromCatalog(built.Materials, built.Commodities)
	rebuilt, err := catalog.NewBuilder(0.5).Build(doc)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, built.Materials, rebuilt.Materials)
	assert.Equal(t, built.Commodities, rebuilt.Commodities)
}

func TestFileSource_DuplicateMaterialIsConfigurationError(t *testing.T) {
	documents := map[string]string{
		"materials.json": `{
  "Material A": {"inventory": 50, "production_capacity": 0, "cost": 15},
  "Material A": {"inventory": 1, "production_capacity": 0, "cost": 999}
}`,
		"materials.hjson": `{
  "Material A": { inventory: 50, production_capacity: 0, cost: 15 }
  "Material A": { inventory: 1, production_capacity: 0, cost: 999 }
}`,
		"materials.yaml": `Material A: {inventory: 50, production_capacity: 0, cost: 15}
Material A: {inventory: 1, production_capacity: 0, cost: 999}
`,
	}

	for file, content := range documents {
		t.Run(file, func(t *testing.T) {
			// Arrange
			dir := t.TempDir()
			materials := filepath.Join(dir, file)
			commodities := filepath.Join(dir, "commodities.json")
			require.NoError(t, os.WriteFile(materials, []byte(content), 0o644))
			require.NoError(t, os.WriteFile(commodities, []byte(`[]`), 0o644))

			// Act
			state, _, err := catalog.NewFileSource(materials, commodities, 0.5).LoadState(context.Background())

			// Assert
			require.Error(t, err)
			assert.Nil(t, state)
			assert.True(t, planning.IsConfigurationError(err), "got %v", err)
			assert.ErrorIs(t, err, planning.ErrDuplicateName)
			assert.ErrorContains(t, err, "Material A")
		})
	}
}

func TestFileSource_DistinctMaterialsPassUniquenessCheck(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	materials := filepath.Join(dir, "materials.json")
	commodities := filepath.Join(dir, "commodities.json")
	require.NoError(t, os.WriteFile(materials, []byte(`{
  "Material A": {"inventory": 50, "production_capacity": 0, "cost": 15},
  "Material B": {"inventory": 20, "production_capacity": 0, "cost": 14}
}`), 0o644))
	require.NoError(t, os.WriteFile(commodities, []byte(`[]`), 0o644))

	// Act
	state, _, err := catalog.NewFileSource(materials, commodities, 0.5).LoadState(context.Background())

	// Assert
	require.NoError(t, err)
	a, err := state.Materials.Get("Material A")
	require.NoError(t, err)
	assert.Equal(t, 50.0, a.Inventory())
}
