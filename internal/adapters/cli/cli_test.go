package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/adapters/cli"
	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestForecastCommand(t *testing.T) {
	out, err := execute(t, "plan", "forecast", "--alpha", "0.5", "100", "120", "130", "140", "150")

	require.NoError(t, err)
	assert.Equal(t, "140\n", out)
}

func TestForecastCommand_RejectsBadAlpha(t *testing.T) {
	out, err := execute(t, "plan", "forecast", "--alpha", "1.5", "100")

	assert.Error(t, err)
	assert.NotContains(t, out, "Error:", "Execute reports the error once")
}

func TestSampleThenRun(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	_, err := execute(t, "catalog", "sample", "--dir", dir, "--format", "yaml")
	require.NoError(t, err)
	reportPath := filepath.Join(dir, "report.txt")

	// Act
	_, err = execute(t, "plan", "run",
		"--materials", filepath.Join(dir, "materials.yaml"),
		"--commodities", filepath.Join(dir, "commodities.yaml"),
		"--output", reportPath,
		"--cycles", "2",
		"--metrics-file", filepath.Join(dir, "planner.prom"),
	)

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	report := string(data)
	assert.True(t, strings.HasPrefix(report, "Cycle: 1\nCommodity: Bread\n"), report)
	assert.Contains(t, report, "Total cost for all commodities: 4516\n")
	assert.Contains(t, report, "Total cost for all commodities: 4523.5\n")

	metrics, err := os.ReadFile(filepath.Join(dir, "planner.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "planner_planning_cycles_total 2")
}

func TestRun_MissingMaterialIsConfigurationError(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	_, err := execute(t, "catalog", "sample", "--dir", dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "materials.json"),
		[]byte(`{"Material A": {"inventory": 50, "production_capacity": 100, "cost": 15}}`), 0o644))

	// Act
	_, err = execute(t, "plan", "run",
		"--materials", filepath.Join(dir, "materials.json"),
		"--commodities", filepath.Join(dir, "commodities.json"),
		"--output", filepath.Join(dir, "report.txt"),
	)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "material not found")
}

func TestRun_DuplicateMaterialIsConfigurationError(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	_, err := execute(t, "catalog", "sample", "--dir", dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "materials.json"), []byte(`{
  "Material A": {"inventory": 50, "production_capacity": 100, "cost": 15},
  "Material A": {"inventory": 1, "production_capacity": 0, "cost": 999}
}`), 0o644))
	reportPath := filepath.Join(dir, "report.txt")

	// Act
	_, err = execute(t, "plan", "run",
		"--materials", filepath.Join(dir, "materials.json"),
		"--commodities", filepath.Join(dir, "commodities.json"),
		"--output", reportPath,
	)

	// Assert
	require.Error(t, err)
	assert.True(t, planning.IsConfigurationError(err), "got %v", err)
	assert.ErrorIs(t, err, planning.ErrDuplicateName)
	data, _ := os.ReadFile(reportPath)
	assert.NotContains(t, string(data), "Cost to fix shortage")
}
