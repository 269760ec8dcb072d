package planning_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/internal/domain/shared"
)

func TestCyclePhaseMachine_HappyPath(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Time{})
	sm := planning.NewCyclePhaseMachine(clock)

	// Act & Assert
	assert.Equal(t, planning.PhaseIdle, sm.Phase())
	for _, next := range []planning.CyclePhase{
		planning.PhaseLoaded,
		planning.PhaseOrdering,
		planning.PhasePerCommodity,
		planning.PhaseAggregated,
		planning.PhaseDone,
		planning.PhaseOrdering,
	} {
		clock.Advance(time.Second)
		require.NoError(t, sm.Transition(next))
		assert.Equal(t, next, sm.Phase())
		assert.Equal(t, clock.Now(), sm.EnteredAt())
	}
}

func TestCyclePhaseMachine_RejectsSkippedPhases(t *testing.T) {
	sm := planning.NewCyclePhaseMachine(nil)

	err := sm.Transition(planning.PhaseOrdering)

	var phaseErr *planning.ErrInvalidPhaseTransition
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, planning.PhaseIdle, phaseErr.From)
	assert.Equal(t, planning.PhaseOrdering, phaseErr.To)
	assert.Equal(t, planning.PhaseIdle, sm.Phase())
}

func TestCyclePhaseMachine_AbortRecordsCause(t *testing.T) {
	// Arrange
	sm := planning.NewCyclePhaseMachine(shared.NewMockClock(time.Time{}))
	require.NoError(t, sm.Transition(planning.PhaseLoaded))
	require.NoError(t, sm.Transition(planning.PhaseOrdering))
	cause := errors.New("material not found")

	// Act
	require.NoError(t, sm.Abort(cause))

	// Assert
	assert.Equal(t, planning.PhaseAborted, sm.Phase())
	assert.Equal(t, cause, sm.LastError())
	assert.False(t, sm.CanTransition(planning.PhaseOrdering))

	require.NoError(t, sm.Transition(planning.PhaseLoaded))
	assert.NoError(t, sm.LastError())
}

func TestCyclePhaseMachine_CannotAbortWhenIdle(t *testing.T) {
	sm := planning.NewCyclePhaseMachine(nil)

	assert.Error(t, sm.Abort(errors.New("late")))
	assert.NoError(t, sm.LastError())
}
