package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

func TestExponentialSmoothing_Recurrence(t *testing.T) {
	// 100 -> 110 -> 120 -> 130 -> 140
	forecast, err := planning.ExponentialSmoothing([]float64{100, 120, 130, 140, 150}, 0.5)

	require.NoError(t, err)
	assert.Equal(t, 140.0, forecast)
}

func TestExponentialSmoothing_AlphaBounds(t *testing.T) {
	history := []float64{10, 20, 40}

	first, err := planning.ExponentialSmoothing(history, 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, first, "alpha 0 keeps the first observation")

	last, err := planning.ExponentialSmoothing(history, 1)
	require.NoError(t, err)
	assert.Equal(t, 40.0, last, "alpha 1 tracks the latest observation")

	_, err = planning.ExponentialSmoothing(history, 1.5)
	assert.True(t, planning.IsDataRangeWarning(err))
}

func TestExponentialSmoothing_SinglePointAndEmpty(t *testing.T) {
	forecast, err := planning.ExponentialSmoothing([]float64{42}, 0.3)
	require.NoError(t, err)
	assert.Equal(t, 42.0, forecast)

	_, err = planning.ExponentialSmoothing(nil, 0.5)
	assert.ErrorIs(t, err, planning.ErrEmptyHistory)
}
