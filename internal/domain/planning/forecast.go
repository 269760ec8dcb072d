package planning

import (
	"errors"
	"math"
)

// ErrEmptyHistory is returned when there is nothing to smooth
var ErrEmptyHistory = errors.New("demand history is empty")

// DefaultSmoothingAlpha weights the newest observation and the running forecast equally
const DefaultSmoothingAlpha = 0.5

// ExponentialSmoothing estimates demand from a history series. The forecast starts at
// history[0] and each later point p updates it to alpha*p + (1-alpha)*forecast.
func ExponentialSmoothing(history []float64, alpha float64) (float64, error) {
	if len(history) == 0 {
		return 0, ErrEmptyHistory
	}
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return 0, &DataRangeWarning{Record: "demand history", Field: "alpha", Value: alpha, Rule: "must be within [0,1]"}
	}

	forecast := history[0]
	for _, point := range history[1:] {
		forecast = alpha*point + (1-alpha)*forecast
	}
	return forecast, nil
}
