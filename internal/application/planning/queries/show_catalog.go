package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/planner-go/internal/application/common"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// ShowCatalogQuery loads the current catalog without planning it
type ShowCatalogQuery struct{}

// ShowCatalogResponse lists the catalog in processing order
type ShowCatalogResponse struct {
	Materials   []*planning.Material
	Commodities []*planning.Commodity // ordered by priority, demand, then name
	Warnings    []*planning.DataRangeWarning
	Problems    error // dangling material references, if any
}

// ShowCatalogHandler handles the ShowCatalog query
type ShowCatalogHandler struct {
	loader planning.StateLoader
}

// NewShowCatalogHandler creates a new ShowCatalogHandler
func NewShowCatalogHandler(loader planning.StateLoader) *ShowCatalogHandler {
	return &ShowCatalogHandler{loader: loader}
}

// Handle executes the ShowCatalog query
func (h *ShowCatalogHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ShowCatalogQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ShowCatalogQuery")
	}

	state, warnings, err := h.loader.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return &ShowCatalogResponse{
		Materials:   state.Materials.All(),
		Commodities: planning.OrderCommodities(state.Commodities.All()),
		Warnings:    warnings,
		Problems:    state.CheckReferences(),
	}, nil
}
