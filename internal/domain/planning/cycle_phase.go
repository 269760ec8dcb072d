package planning

import (
	"slices"
	"time"

	"github.com/andrescamacho/planner-go/internal/domain/shared"
)

// CyclePhase is the planner's position in the planning state machine
type CyclePhase string

const (
	// PhaseIdle indicates no state has been loaded yet
	PhaseIdle CyclePhase = "IDLE"

	// PhaseLoaded indicates a planning state is attached and ready
	PhaseLoaded CyclePhase = "LOADED"

	// PhaseOrdering indicates commodities are being ordered and references checked
	PhaseOrdering CyclePhase = "ORDERING"

	// PhasePerCommodity indicates the material, labor, pricing and wage steps are running
	PhasePerCommodity CyclePhase = "PER_COMMODITY"

	// PhaseAggregated indicates totals are computed but not yet published
	PhaseAggregated CyclePhase = "AGGREGATED"

	// PhaseDone indicates the cycle finished; Ordering may be re-entered for the next cycle
	PhaseDone CyclePhase = "DONE"

	// PhaseAborted indicates a fatal configuration error stopped the cycle
	PhaseAborted CyclePhase = "ABORTED"
)

var phaseTransitions = map[CyclePhase][]CyclePhase{
	PhaseIdle:         {PhaseLoaded},
	PhaseLoaded:       {PhaseLoaded, PhaseOrdering},
	PhaseOrdering:     {PhasePerCommodity, PhaseAborted},
	PhasePerCommodity: {PhaseAggregated, PhaseAborted},
	PhaseAggregated:   {PhaseDone, PhaseAborted},
	PhaseDone:         {PhaseLoaded, PhaseOrdering},
	PhaseAborted:      {PhaseLoaded},
}

// CyclePhaseMachine tracks planner phases and when each was entered.
//
// Invariants:
// - transitions follow phaseTransitions
// - timestamps come from the injected clock
type CyclePhaseMachine struct {
	phase     CyclePhase
	enteredAt time.Time
	lastError error
	clock     shared.Clock
}

// NewCyclePhaseMachine creates a machine in IDLE
func NewCyclePhaseMachine(clock shared.Clock) *CyclePhaseMachine {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CyclePhaseMachine{
		phase:     PhaseIdle,
		enteredAt: clock.Now(),
		clock:     clock,
	}
}

func (sm *CyclePhaseMachine) Phase() CyclePhase    { return sm.phase }
func (sm *CyclePhaseMachine) EnteredAt() time.Time { return sm.enteredAt }
func (sm *CyclePhaseMachine) LastError() error     { return sm.lastError }

// CanTransition reports whether to is reachable from the current phase
func (sm *CyclePhaseMachine) CanTransition(to CyclePhase) bool {
	return slices.Contains(phaseTransitions[sm.phase], to)
}

// Transition moves to the next phase
func (sm *CyclePhaseMachine) Transition(to CyclePhase) error {
	if !sm.CanTransition(to) {
		return &ErrInvalidPhaseTransition{From: sm.phase, To: to}
	}
	sm.phase = to
	sm.enteredAt = sm.clock.Now()
	if to != PhaseAborted {
		sm.lastError = nil
	}
	return nil
}

// Abort records cause and moves to ABORTED
func (sm *CyclePhaseMachine) Abort(cause error) error {
	if err := sm.Transition(PhaseAborted); err != nil {
		return err
	}
	sm.lastError = cause
	return nil
}
