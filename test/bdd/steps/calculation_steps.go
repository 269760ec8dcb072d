package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/pkg/utils"
)

// calculationContext holds state for the pure balance, wage and smoothing scenarios
type calculationContext struct {
	materials   map[string]*planning.Material
	shortage    float64
	remediation float64
	consumed    float64
	lastBalance func() float64
	wages       []planning.Worker
	forecast    float64
	forecastErr error
}

func (c *calculationContext) reset() {
	c.materials = make(map[string]*planning.Material)
	c.shortage, c.remediation, c.consumed, c.forecast = 0, 0, 0, 0
	c.lastBalance = nil
	c.wages = nil
	c.forecastErr = nil
}

// InitializeCalculationScenario registers the material balance, wage and forecast steps
func InitializeCalculationScenario(sc *godog.ScenarioContext) {
	c := &calculationContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	// Given steps
	sc.Step(`^a material "([^"]*)" with inventory ([\d.]+), production capacity ([\d.]+) and unit cost ([\d.]+)$`, c.aMaterialWith)

	// When steps
	sc.Step(`^I balance "([^"]*)" for demand ([\d.]+) at usage rate ([\d.]+)$`, c.iBalance)
	sc.Step(`^I deplete "([^"]*)" for demand ([\d.]+) at usage rate ([\d.]+)$`, c.iDeplete)
	sc.Step(`^I allocate a labor requirement of (\d+) for demand ([\d.]+) to workers:$`, c.iAllocateWages)
	sc.Step(`^I smooth the demand history "([^"]*)" with alpha ([\d.]+)$`, c.iSmooth)

	// Then steps
	sc.Step(`^the shortage should be ([\d.]+)$`, c.theShortageShouldBe)
	sc.Step(`^the remediation cost should be ([\d.]+)$`, c.theRemediationCostShouldBe)
	sc.Step(`^balancing again should give the same shortage$`, c.balancingAgainGivesSameShortage)
	sc.Step(`^"([^"]*)" should have ([\d.]+) units in inventory$`, c.materialShouldHaveInventory)
	sc.Step(`^([\d.]+) units should have been consumed$`, c.unitsShouldHaveBeenConsumed)
	sc.Step(`^worker "([^"]*)" should earn ([\d.]+)$`, c.workerShouldEarn)
	sc.Step(`^the wages should sum to ([\d.]+)$`, c.theWagesShouldSumTo)
	sc.Step(`^the forecast should be ([\d.]+)$`, c.theForecastShouldBe)
	sc.Step(`^the smoothing should be rejected$`, c.theSmoothingShouldBeRejected)
}

func (c *calculationContext) aMaterialWith(name string, inventory, capacity, cost float64) error {
	m, err := planning.NewMaterial(name, inventory, capacity, cost)
	if err != nil {
		return err
	}
	c.materials[name] = m
	return nil
}

func (c *calculationContext) material(name string) (*planning.Material, error) {
	m, ok := c.materials[name]
	if !ok {
		return nil, fmt.Errorf("material %q was not defined in this scenario", name)
	}
	return m, nil
}

func (c *calculationContext) iBalance(name string, demand, rate float64) error {
	m, err := c.material(name)
	if err != nil {
		return err
	}
	c.shortage = planning.Balance(m, demand, rate)
	c.remediation = planning.RemediationCost(m, c.shortage)
	c.lastBalance = func() float64 { return planning.Balance(m, demand, rate) }
	return nil
}

func (c *calculationContext) iDeplete(name string, demand, rate float64) error {
	m, err := c.material(name)
	if err != nil {
		return err
	}
	c.consumed = planning.Deplete(m, demand, rate)
	return nil
}

func (c *calculationContext) iAllocateWages(laborRequired int, demand float64, table *godog.Table) error {
	workers, err := workersFromTable(table)
	if err != nil {
		return err
	}
	c.wages = planning.AllocateWages(workers, laborRequired, demand)
	return nil
}

func (c *calculationContext) iSmooth(history string, alpha float64) error {
	values, err := parseFloatList(history)
	if err != nil {
		return err
	}
	c.forecast, c.forecastErr = planning.ExponentialSmoothing(values, alpha)
	return nil
}

func (c *calculationContext) theShortageShouldBe(expected float64) error {
	return expectQuantity("shortage", expected, c.shortage)
}

func (c *calculationContext) theRemediationCostShouldBe(expected float64) error {
	return expectQuantity("remediation cost", expected, c.remediation)
}

func (c *calculationContext) balancingAgainGivesSameShortage() error {
	if c.lastBalance == nil {
		return fmt.Errorf("no balance computed yet")
	}
	return expectQuantity("repeated shortage", c.shortage, c.lastBalance())
}

func (c *calculationContext) materialShouldHaveInventory(name string, expected float64) error {
	m, err := c.material(name)
	if err != nil {
		return err
	}
	return expectQuantity(name+" inventory", expected, m.Inventory())
}

func (c *calculationContext) unitsShouldHaveBeenConsumed(expected float64) error {
	return expectQuantity("consumed", expected, c.consumed)
}

func (c *calculationContext) workerShouldEarn(name string, expected float64) error {
	for _, w := range c.wages {
		if w.Name == name {
			return expectQuantity("wage of "+name, expected, w.Wage)
		}
	}
	return fmt.Errorf("worker %q has no allocated wage", name)
}

func (c *calculationContext) theWagesShouldSumTo(expected float64) error {
	total := 0.0
	for _, w := range c.wages {
		total += w.Wage
	}
	return expectQuantity("wage total", expected, total)
}

func (c *calculationContext) theForecastShouldBe(expected float64) error {
	if c.forecastErr != nil {
		return fmt.Errorf("smoothing failed: %w", c.forecastErr)
	}
	return expectQuantity("forecast", expected, c.forecast)
}

func (c *calculationContext) theSmoothingShouldBeRejected() error {
	if c.forecastErr == nil {
		return fmt.Errorf("expected smoothing to fail, got forecast %v", c.forecast)
	}
	return nil
}

// expectQuantity compares derived quantities with a relative tolerance
func expectQuantity(what string, expected, actual float64) error {
	if math.IsNaN(actual) || !utils.ApproxEqual(expected, actual, 1e-9) {
		return fmt.Errorf("expected %s %s, got %s", what, utils.FormatQuantity(expected), utils.FormatQuantity(actual))
	}
	return nil
}
