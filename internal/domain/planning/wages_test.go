package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

func TestAllocateWages_EvenSplit(t *testing.T) {
	workers := []planning.Worker{{Name: "Alice", HoursWorked: 40}, {Name: "Bob", HoursWorked: 40}}

	planning.AllocateWages(workers, 13, 100)

	assert.Equal(t, 650.0, workers[0].Wage)
	assert.Equal(t, 650.0, workers[1].Wage)
	assert.Equal(t, 16.25, planning.WageRate(workers, 13, 100))
}

func TestAllocateWages_ProportionalToHours(t *testing.T) {
	workers := []planning.Worker{
		{Name: "A", HoursWorked: 10},
		{Name: "B", HoursWorked: 25},
		{Name: "C", HoursWorked: 7.5},
	}

	planning.AllocateWages(workers, 16, 201)

	sum := 0.0
	for _, w := range workers {
		sum += w.Wage
	}
	assert.InEpsilon(t, 16.0*201, sum, 1e-9)
	assert.InEpsilon(t, workers[0].Wage*2.5, workers[1].Wage, 1e-9)
}

func TestAllocateWages_ZeroHoursPaysNothing(t *testing.T) {
	workers := []planning.Worker{{Name: "Idle", HoursWorked: 0, Wage: 99}, {Name: "Also idle", Wage: 12}}

	planning.AllocateWages(workers, 13, 100)

	for _, w := range workers {
		assert.Equal(t, 0.0, w.Wage)
	}
	assert.Equal(t, 0.0, planning.WageRate(workers, 13, 100))
}

func TestAllocateWages_NoWorkers(t *testing.T) {
	assert.Empty(t, planning.AllocateWages(nil, 13, 100))
}
