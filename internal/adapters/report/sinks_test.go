package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/adapters/report"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
	"github.com/andrescamacho/planner-go/test/helpers"
)

const sampleCycleText = `Commodity: Bread
 No shortage of Material A
 No shortage of Material C
 Total cost for Bread: 3216
 Price for Bread: 36.1
Commodity: Chair
 No shortage of Material A
 No shortage of Material B
 Labor shortage for Chair. Required: 1300, Available: 1000
 Total cost for Chair: 1300
 Price for Chair: 28.9
 Wage for Alice: 650
 Wage for Bob: 650
Total cost for all commodities: 4516
`

func runCycles(t *testing.T, sink planning.ReportSink, n int) []*planning.CycleReport {
	t.Helper()
	planner := planning.NewPlanner(sink)
	require.NoError(t, planner.Load(helpers.SampleState()))
	var reports []*planning.CycleReport
	for i := 0; i < n; i++ {
		r, err := planner.RunCycle(context.Background())
		require.NoError(t, err)
		reports = append(reports, r)
	}
	return reports
}

func TestTextSink_SampleCycle(t *testing.T) {
	// Arrange
	var buf bytes.Buffer

	// Act
	runCycles(t, report.NewTextSink(&buf, false), 1)

	// Assert
	assert.Equal(t, sampleCycleText, buf.String())
}

func TestTextSink_SecondCycleShowsShortage(t *testing.T) {
	// Arrange
	var buf bytes.Buffer

	// Act
	runCycles(t, report.NewTextSink(&buf, true), 2)

	// Assert
	out := buf.String()
	assert.Contains(t, out, "Cycle: 1\nCommodity: Bread\n")
	assert.Contains(t, out, "Cycle: 2\nCommodity: Bread\n Shortage of Material A: 0.5\n Cost to fix shortage: 7.5\n")
	assert.Contains(t, out, " Total cost for Bread: 3223.5\n")
	assert.Contains(t, out, "Total cost for all commodities: 4523.5\n")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("Cycle: ")))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestTextSink_WriteErrorAbortsCycle(t *testing.T) {
	planner := planning.NewPlanner(report.NewTextSink(failingWriter{}, false))
	require.NoError(t, planner.Load(helpers.SampleState()))

	_, err := planner.RunCycle(context.Background())

	assert.ErrorContains(t, err, "broken pipe")
	assert.Equal(t, planning.PhaseAborted, planner.Phase())
}

func TestJSONSink_EncodesCycleReport(t *testing.T) {
	// Arrange
	var buf bytes.Buffer

	// Act
	reports := runCycles(t, report.NewJSONSink(&buf), 1)

	// Assert
	var decoded planning.CycleReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, reports[0].ID, decoded.ID)
	assert.InDelta(t, 4516.0, decoded.TotalCost, 1e-9)
	require.Len(t, decoded.Commodities, 2)
	assert.Equal(t, "Bread", decoded.Commodities[0].Commodity)
	assert.True(t, decoded.Commodities[1].Labor.Shortage)
}

func TestMultiSink_FansOutAndSkipsNil(t *testing.T) {
	// Arrange
	first, second := &report.Recorder{}, &report.Recorder{}
	sink := report.NewMultiSink(first, nil)
	sink.Add(second)
	sink.Add(nil)

	// Act
	runCycles(t, sink, 1)

	// Assert
	assert.Len(t, first.Results, 2)
	assert.Len(t, second.Results, 2)
	assert.Len(t, first.Reports, 1)
	assert.Len(t, second.Reports, 1)
}

func TestRepositorySink_SavesReports(t *testing.T) {
	repo := &helpers.MockCycleReportRepository{}

	reports := runCycles(t, report.NewRepositorySink(repo), 2)

	stored, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, reports[1].ID, stored[0].ID)
}

func TestRepositorySink_SaveFailureAbortsCycle(t *testing.T) {
	repo := &helpers.MockCycleReportRepository{SaveErr: errors.New("database is locked")}
	planner := planning.NewPlanner(report.NewRepositorySink(repo))
	state := helpers.SampleState()
	require.NoError(t, planner.Load(state))

	_, err := planner.RunCycle(context.Background())

	require.Error(t, err)
	a, _ := state.Materials.Get("Material A")
	assert.Equal(t, 50.0, a.Inventory())
}
