package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/planner-go/internal/application/common"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// ForecastDemandQuery smooths a demand history into a single estimate
type ForecastDemandQuery struct {
	History []float64
	Alpha   float64
}

// ForecastDemandResponse carries the estimate
type ForecastDemandResponse struct {
	Forecast float64
}

// ForecastDemandHandler handles the ForecastDemand query
type ForecastDemandHandler struct{}

// NewForecastDemandHandler creates a new ForecastDemandHandler
func NewForecastDemandHandler() *ForecastDemandHandler {
	return &ForecastDemandHandler{}
}

// Handle executes the ForecastDemand query
func (h *ForecastDemandHandler) Handle(_ context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ForecastDemandQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ForecastDemandQuery")
	}

	forecast, err := planning.ExponentialSmoothing(query.History, query.Alpha)
	if err != nil {
		return nil, err
	}
	return &ForecastDemandResponse{Forecast: forecast}, nil
}
