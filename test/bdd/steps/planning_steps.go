package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/planner-go/internal/adapters/report"
	"github.com/andrescamacho/planner-go/internal/application/common"
	"github.com/andrescamacho/planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/test/helpers"
)

// planningContext holds state for planning cycle scenarios
type planningContext struct {
	materials []*planning.Material
	specs     []planning.CommoditySpec
	workers   map[string][]planning.Worker
	sample    bool
	repo      *helpers.MockMaterialRepository
	recorder  *report.Recorder
	text      bytes.Buffer
	logger    *helpers.RecordingLogger
	response  *commands.RunPlanningResponse
	runErr    error
}

func (c *planningContext) reset() {
	c.materials = nil
	c.specs = nil
	c.workers = make(map[string][]planning.Worker)
	c.sample = false
	c.repo = nil
	c.recorder = &report.Recorder{}
	c.text.Reset()
	c.logger = &helpers.RecordingLogger{}
	c.response = nil
	c.runErr = nil
}

// LoadState implements planning.StateLoader from the scenario tables.
// Records failing range checks are rejected with a warning, as the file loader does.
func (c *planningContext) LoadState(context.Context) (*planning.PlanningState, []*planning.DataRangeWarning, error) {
	if c.sample {
		return helpers.SampleState(), nil, nil
	}

	var warnings []*planning.DataRangeWarning
	materials := make([]*planning.Material, 0, len(c.materials))
	for _, m := range c.materials {
		materials = append(materials, m.Clone())
	}
	commodities := make([]*planning.Commodity, 0, len(c.specs))
	for _, spec := range c.specs {
		spec.Workers = c.workers[spec.Name]
		commodity, err := planning.NewCommodity(spec)
		var warning *planning.DataRangeWarning
		if errors.As(err, &warning) {
			warnings = append(warnings, warning)
			continue
		}
		if err != nil {
			return nil, warnings, err
		}
		commodities = append(commodities, commodity)
	}

	state, err := planning.NewPlanningState(materials, commodities)
	return state, warnings, err
}

// InitializePlanningScenario registers the planning cycle steps
func InitializePlanningScenario(sc *godog.ScenarioContext) {
	c := &planningContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	// Given steps
	sc.Step(`^the demonstration economy$`, c.theDemonstrationEconomy)
	sc.Step(`^the following materials:$`, c.theFollowingMaterials)
	sc.Step(`^the following commodities:$`, c.theFollowingCommodities)
	sc.Step(`^commodity "([^"]*)" is staffed by:$`, c.commodityIsStaffedBy)
	sc.Step(`^the materials are stored in the database$`, c.theMaterialsAreStored)
	sc.Step(`^the catalog is imported into the database$`, c.theCatalogIsImported)

	// When steps
	sc.Step(`^I run (\d+) planning cycles?$`, c.iRunPlanningCycles)
	sc.Step(`^I run (\d+) planning cycles? and persist the inventories$`, c.iRunAndPersist)
	sc.Step(`^I import the catalog into the database$`, c.iImportTheCatalog)
	sc.Step(`^I run (\d+) planning cycles? from the database and persist the inventories$`, c.iRunFromDatabase)

	// Then steps
	sc.Step(`^the run should succeed$`, c.theRunShouldSucceed)
	sc.Step(`^the run should fail with a configuration error mentioning "([^"]*)"$`, c.theRunShouldFailWithConfigurationError)
	sc.Step(`^commodities should be planned in the order "([^"]*)"$`, c.commoditiesShouldBePlannedInOrder)
	sc.Step(`^"([^"]*)" should be short (\d+(?:\.\d+)?) units of "([^"]*)" costing (\d+(?:\.\d+)?)$`, c.shouldBeShortOf)
	sc.Step(`^"([^"]*)" should have no shortage of "([^"]*)"$`, c.shouldHaveNoShortageOf)
	sc.Step(`^the cycle cost of "([^"]*)" should be (\d+(?:\.\d+)?)$`, c.theCycleCostShouldBe)
	sc.Step(`^the unit price of "([^"]*)" should be (\d+(?:\.\d+)?)$`, c.theUnitPriceShouldBe)
	sc.Step(`^"([^"]*)" should report a labor shortage with (\d+) required and (\d+) available$`, c.shouldReportLaborShortage)
	sc.Step(`^"([^"]*)" should not report a labor shortage$`, c.shouldNotReportLaborShortage)
	sc.Step(`^"([^"]*)" should pay "([^"]*)" (\d+(?:\.\d+)?)$`, c.shouldPayWorker)
	sc.Step(`^the total cost of cycle (\d+) should be (\d+(?:\.\d+)?)$`, c.theTotalCostOfCycleShouldBe)
	sc.Step(`^the inventory of "([^"]*)" should be (\d+(?:\.\d+)?) after the run$`, c.theInventoryAfterRunShouldBe)
	sc.Step(`^the stored inventory of "([^"]*)" should be (\d+(?:\.\d+)?)$`, c.theStoredInventoryShouldBe)
	sc.Step(`^(\d+) records? should be rejected$`, c.recordsShouldBeRejected)
	sc.Step(`^the rejected field should be "([^"]*)"$`, c.theRejectedFieldShouldBe)
	sc.Step(`^the report should read:$`, c.theReportShouldRead)
	sc.Step(`^the import should be refused mentioning "([^"]*)"$`, c.theImportShouldBeRefused)
	sc.Step(`^the database inventory of "([^"]*)" should be (\d+(?:\.\d+)?)$`, c.theDatabaseInventoryShouldBe)
	sc.Step(`^(\d+) cycle reports? should be stored$`, c.cycleReportsShouldBeStored)
}

func (c *planningContext) theDemonstrationEconomy() error {
	c.sample = true
	return nil
}

func (c *planningContext) theFollowingMaterials(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		m, err := materialFromRow(table, row)
		if err != nil {
			return err
		}
		c.materials = append(c.materials, m)
	}
	return nil
}

func (c *planningContext) theFollowingCommodities(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		spec, err := commoditySpecFromRow(table, row)
		if err != nil {
			return err
		}
		c.specs = append(c.specs, spec)
	}
	return nil
}

func (c *planningContext) commodityIsStaffedBy(name string, table *godog.Table) error {
	workers, err := workersFromTable(table)
	if err != nil {
		return err
	}
	c.workers[name] = workers
	return nil
}

func (c *planningContext) theMaterialsAreStored() error {
	c.repo = helpers.NewMockMaterialRepository()
	source := c.materials
	if c.sample {
		source = helpers.SampleMaterials()
	}
	return c.repo.SaveAll(context.Background(), source)
}

func (c *planningContext) importCatalog() error {
	db := helpers.SharedTestDB
	handler := commands.NewImportCatalogHandler(
		func(string, string) planning.StateLoader { return c },
		persistence.NewMaterialRepository(db),
		persistence.NewCommodityRepository(db),
	)
	_, err := handler.Handle(context.Background(), &commands.ImportCatalogCommand{
		MaterialsFile:   "scenario",
		CommoditiesFile: "scenario",
	})
	return err
}

func (c *planningContext) theCatalogIsImported() error {
	return c.importCatalog()
}

func (c *planningContext) iImportTheCatalog() error {
	c.runErr = c.importCatalog()
	return nil
}

func (c *planningContext) iRunFromDatabase(cycles int) error {
	db := helpers.SharedTestDB
	sink := report.NewMultiSink(
		c.recorder,
		report.NewRepositorySink(persistence.NewCycleReportRepository(db)),
	)
	handler := commands.NewRunPlanningHandler(persistence.NewStateLoader(db), sink,
		commands.WithMaterialRepository(persistence.NewMaterialRepository(db)))

	ctx := common.WithLogger(context.Background(), c.logger)
	resp, err := handler.Handle(ctx, &commands.RunPlanningCommand{Cycles: cycles, PersistState: true})
	c.runErr = err
	if err == nil {
		c.response = resp.(*commands.RunPlanningResponse)
	}
	return nil
}

func (c *planningContext) iRunPlanningCycles(cycles int) error {
	c.run(cycles, false)
	return nil
}

func (c *planningContext) iRunAndPersist(cycles int) error {
	if c.repo == nil {
		return fmt.Errorf("no material repository: store the materials first")
	}
	c.run(cycles, true)
	return nil
}

func (c *planningContext) run(cycles int, persist bool) {
	sink := report.NewMultiSink(c.recorder, report.NewTextSink(&c.text, false))
	var opts []commands.RunPlanningOption
	if c.repo != nil {
		opts = append(opts, commands.WithMaterialRepository(c.repo))
	}
	handler := commands.NewRunPlanningHandler(c, sink, opts...)

	ctx := common.WithLogger(context.Background(), c.logger)
	resp, err := handler.Handle(ctx, &commands.RunPlanningCommand{Cycles: cycles, PersistState: persist})
	c.runErr = err
	if err == nil {
		c.response = resp.(*commands.RunPlanningResponse)
	}
}

func (c *planningContext) theRunShouldSucceed() error {
	if c.runErr != nil {
		return fmt.Errorf("expected run to succeed, got: %w", c.runErr)
	}
	return nil
}

func (c *planningContext) theRunShouldFailWithConfigurationError(fragment string) error {
	if c.runErr == nil {
		return fmt.Errorf("expected run to fail")
	}
	if !planning.IsConfigurationError(c.runErr) {
		return fmt.Errorf("expected a configuration error, got: %v", c.runErr)
	}
	if !strings.Contains(c.runErr.Error(), fragment) {
		return fmt.Errorf("expected error to mention %q, got: %v", fragment, c.runErr)
	}
	return nil
}

// result returns the latest result for commodity, i.e. from the last cycle run
func (c *planningContext) result(commodity string) (planning.CommodityResult, error) {
	if c.runErr != nil {
		return planning.CommodityResult{}, fmt.Errorf("run failed: %w", c.runErr)
	}
	for i := len(c.recorder.Results) - 1; i >= 0; i-- {
		if c.recorder.Results[i].Commodity == commodity {
			return c.recorder.Results[i], nil
		}
	}
	return planning.CommodityResult{}, fmt.Errorf("commodity %q was not planned", commodity)
}

func (c *planningContext) finding(commodity, material string) (planning.MaterialFinding, error) {
	result, err := c.result(commodity)
	if err != nil {
		return planning.MaterialFinding{}, err
	}
	for _, f := range result.Materials {
		if f.Material == material {
			return f, nil
		}
	}
	return planning.MaterialFinding{}, fmt.Errorf("%s does not use %s", commodity, material)
}

func (c *planningContext) commoditiesShouldBePlannedInOrder(order string) error {
	if c.response == nil || len(c.response.Reports) == 0 {
		return fmt.Errorf("no cycle report: %v", c.runErr)
	}
	var names []string
	for _, r := range c.response.Reports[0].Commodities {
		names = append(names, r.Commodity)
	}
	if got := strings.Join(names, ", "); got != order {
		return fmt.Errorf("expected order %q, got %q", order, got)
	}
	return nil
}

func (c *planningContext) shouldBeShortOf(commodity string, shortage float64, material string, cost float64) error {
	f, err := c.finding(commodity, material)
	if err != nil {
		return err
	}
	if err := expectQuantity("shortage of "+material, shortage, f.Shortage); err != nil {
		return err
	}
	return expectQuantity("remediation cost of "+material, cost, f.RemediationCost)
}

func (c *planningContext) shouldHaveNoShortageOf(commodity, material string) error {
	f, err := c.finding(commodity, material)
	if err != nil {
		return err
	}
	if f.HasShortage() {
		return fmt.Errorf("expected no shortage of %s, got %v", material, f.Shortage)
	}
	return nil
}

func (c *planningContext) theCycleCostShouldBe(commodity string, expected float64) error {
	result, err := c.result(commodity)
	if err != nil {
		return err
	}
	return expectQuantity("cycle cost of "+commodity, expected, result.CycleCost)
}

func (c *planningContext) theUnitPriceShouldBe(commodity string, expected float64) error {
	result, err := c.result(commodity)
	if err != nil {
		return err
	}
	return expectQuantity("unit price of "+commodity, expected, result.UnitPrice)
}

func (c *planningContext) shouldReportLaborShortage(commodity string, required, available int) error {
	result, err := c.result(commodity)
	if err != nil {
		return err
	}
	if !result.Labor.Shortage {
		return fmt.Errorf("expected a labor shortage for %s", commodity)
	}
	if err := expectQuantity("labor required", float64(required), result.Labor.Required); err != nil {
		return err
	}
	if result.Labor.Available != available {
		return fmt.Errorf("expected %d labor available, got %d", available, result.Labor.Available)
	}
	return nil
}

func (c *planningContext) shouldNotReportLaborShortage(commodity string) error {
	result, err := c.result(commodity)
	if err != nil {
		return err
	}
	if result.Labor.Shortage {
		return fmt.Errorf("expected no labor shortage for %s", commodity)
	}
	return nil
}

func (c *planningContext) shouldPayWorker(commodity, worker string, expected float64) error {
	result, err := c.result(commodity)
	if err != nil {
		return err
	}
	for _, w := range result.Wages {
		if w.Name == worker {
			return expectQuantity("wage of "+worker, expected, w.Wage)
		}
	}
	return fmt.Errorf("%s has no worker %q", commodity, worker)
}

func (c *planningContext) theTotalCostOfCycleShouldBe(cycle int, expected float64) error {
	if c.response == nil {
		return fmt.Errorf("run failed: %v", c.runErr)
	}
	for _, r := range c.response.Reports {
		if r.Cycle == cycle {
			return expectQuantity(fmt.Sprintf("total cost of cycle %d", cycle), expected, r.TotalCost)
		}
	}
	return fmt.Errorf("cycle %d was not run", cycle)
}

func (c *planningContext) theInventoryAfterRunShouldBe(material string, expected float64) error {
	if c.response == nil {
		return fmt.Errorf("run failed: %v", c.runErr)
	}
	for _, level := range c.response.Inventories {
		if level.Material == material {
			return expectQuantity(material+" inventory", expected, level.Inventory)
		}
	}
	return fmt.Errorf("material %q not in final inventories", material)
}

func (c *planningContext) theStoredInventoryShouldBe(material string, expected float64) error {
	if c.repo == nil {
		return fmt.Errorf("no material repository in this scenario")
	}
	return expectQuantity("stored "+material+" inventory", expected, c.repo.Inventory(material))
}

func (c *planningContext) recordsShouldBeRejected(count int) error {
	if c.response == nil {
		return fmt.Errorf("run failed: %v", c.runErr)
	}
	if got := len(c.response.Warnings); got != count {
		return fmt.Errorf("expected %d rejected records, got %d", count, got)
	}
	if got := len(c.logger.Messages("WARN")); got != count {
		return fmt.Errorf("expected %d rejection warnings logged, got %d", count, got)
	}
	return nil
}

func (c *planningContext) theRejectedFieldShouldBe(field string) error {
	if c.response == nil || len(c.response.Warnings) == 0 {
		return fmt.Errorf("no rejected records")
	}
	if got := c.response.Warnings[0].Field; got != field {
		return fmt.Errorf("expected rejected field %q, got %q", field, got)
	}
	return nil
}

func (c *planningContext) theReportShouldRead(doc *godog.DocString) error {
	expected := strings.TrimSpace(doc.Content)
	actual := strings.TrimSpace(c.text.String())
	if expected != actual {
		return fmt.Errorf("report mismatch\nexpected:\n%s\n\nactual:\n%s", expected, actual)
	}
	return nil
}

func (c *planningContext) theImportShouldBeRefused(fragment string) error {
	if c.runErr == nil {
		return fmt.Errorf("expected import to be refused")
	}
	if !strings.Contains(c.runErr.Error(), fragment) {
		return fmt.Errorf("expected error to mention %q, got: %v", fragment, c.runErr)
	}
	materials, err := persistence.NewMaterialRepository(helpers.SharedTestDB).FindAll(context.Background())
	if err != nil {
		return err
	}
	if len(materials) != 0 {
		return fmt.Errorf("refused import stored %d materials", len(materials))
	}
	return nil
}

func (c *planningContext) theDatabaseInventoryShouldBe(material string, expected float64) error {
	materials, err := persistence.NewMaterialRepository(helpers.SharedTestDB).FindAll(context.Background())
	if err != nil {
		return err
	}
	for _, m := range materials {
		if m.Name() == material {
			return expectQuantity("database "+material+" inventory", expected, m.Inventory())
		}
	}
	return fmt.Errorf("material %q not in database", material)
}

func (c *planningContext) cycleReportsShouldBeStored(count int) error {
	reports, err := persistence.NewCycleReportRepository(helpers.SharedTestDB).List(context.Background(), 0)
	if err != nil {
		return err
	}
	if len(reports) != count {
		return fmt.Errorf("expected %d stored reports, got %d", count, len(reports))
	}
	return nil
}
