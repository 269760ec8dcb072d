package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/planner-go/internal/application/common"
)

// PrometheusMiddleware records duration and outcome of every mediator request.
//
// Command names are extracted via reflection and simplified to remove package prefixes.
// For example: "*commands.RunPlanningCommand" becomes "RunPlanningCommand"
func PrometheusMiddleware(collector *CommandMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), err == nil)
		return response, err
	}
}

// extractCommandName extracts a clean command name from the request
//   - "*commands.RunPlanningCommand" -> "RunPlanningCommand"
//   - "*queries.ListCycleReportsQuery" -> "ListCycleReportsQuery"
func extractCommandName(request common.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
