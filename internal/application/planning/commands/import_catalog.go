package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/planner-go/internal/application/common"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/internal/domain/shared"
)

// ImportCatalogCommand copies a catalog from files into the database
type ImportCatalogCommand struct {
	MaterialsFile   string
	CommoditiesFile string
}

// ImportCatalogResponse reports what was stored
type ImportCatalogResponse struct {
	Materials   int
	Commodities int
	Warnings    []*planning.DataRangeWarning
}

// SourceFactory opens a state loader over a pair of catalog files
type SourceFactory func(materialsFile, commoditiesFile string) planning.StateLoader

// ImportCatalogHandler handles the ImportCatalog command
type ImportCatalogHandler struct {
	open        SourceFactory
	materials   planning.MaterialRepository
	commodities planning.CommodityRepository
}

// NewImportCatalogHandler creates a new ImportCatalogHandler
func NewImportCatalogHandler(
	open SourceFactory,
	materials planning.MaterialRepository,
	commodities planning.CommodityRepository,
) *ImportCatalogHandler {
	return &ImportCatalogHandler{
		open:        open,
		materials:   materials,
		commodities: commodities,
	}
}

// Handle executes the ImportCatalog command.
// A catalog whose commodities reference unknown materials is refused as a whole.
func (h *ImportCatalogHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ImportCatalogCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportCatalogCommand")
	}
	if cmd.MaterialsFile == "" {
		return nil, shared.NewValidationError("materials_file", "required")
	}
	if cmd.CommoditiesFile == "" {
		return nil, shared.NewValidationError("commodities_file", "required")
	}

	logger := common.LoggerFromContext(ctx)

	state, warnings, err := h.open(cmd.MaterialsFile, cmd.CommoditiesFile).LoadState(ctx)
	for _, w := range warnings {
		logger.Log("WARN", "Record rejected", map[string]interface{}{"record": w.Record, "field": w.Field, "value": w.Value})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := state.CheckReferences(); err != nil {
		return nil, fmt.Errorf("catalog not imported: %w", err)
	}

	if err := h.materials.SaveAll(ctx, state.Materials.All()); err != nil {
		return nil, err
	}
	if err := h.commodities.SaveAll(ctx, state.Commodities.All()); err != nil {
		return nil, err
	}

	logger.Log("INFO", "Catalog imported", map[string]interface{}{
		"materials":   state.Materials.Len(),
		"commodities": state.Commodities.Len(),
		"rejected":    len(warnings),
	})

	return &ImportCatalogResponse{
		Materials:   state.Materials.Len(),
		Commodities: state.Commodities.Len(),
		Warnings:    warnings,
	}, nil
}
