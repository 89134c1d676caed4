package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCommand_MissingArgs(t *testing.T) {
	_, _, err := executeCommand(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommand_NonExistentDir(t *testing.T) {
	out, _, err := executeCommand(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "scenarios directory not found")
}

func TestTestCommand_NoScenarios(t *testing.T) {
	out, _, err := executeCommand(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_Passing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mugs.yaml", mugScenario)

	out, _, err := executeCommand(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ two_mugs")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_Failing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mugs.yaml", mugScenario)
	writeFile(t, dir, "bad.yaml", failingScenario)
	writeFile(t, dir, "broken.yaml", "name: broken\n")

	out, _, err := executeCommand(t, "--format", "json", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 2, result.Failed)
}

func TestTestCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mugs.yaml", mugScenario)
	writeFile(t, dir, "bad.yaml", failingScenario)

	out, _, err := executeCommand(t, "test", dir, "--filter", "mug*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")

	_, _, err = executeCommand(t, "test", dir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_GoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mugs.yaml", mugScenario)

	out, _, err := executeCommand(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ two_mugs (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "two_mugs.golden")
	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name":"two_mugs"`)
	assert.Contains(t, string(data), `"total":"17"`)

	out, _, err = executeCommand(t, "--format", "json", "test", dir)
	require.NoError(t, err)
	var result TestResult
	decodeResponse(t, out, &result)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, "match", result.Scenarios[0].Golden)

	require.NoError(t, os.WriteFile(goldenPath, []byte("{}"), 0644))
	out, _, err = executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "snapshot does not match golden file")
}

func TestTestCommand_GoldenDirFlag(t *testing.T) {
	dir := t.TempDir()
	scenarios := filepath.Join(dir, "scenarios")
	golden := filepath.Join(dir, "snapshots")
	writeFile(t, scenarios, "mugs.yaml", mugScenario)

	_, _, err := executeCommand(t, "test", scenarios, "--golden", golden, "--update")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(golden, "two_mugs.golden"))
}

func TestFindScenarioFiles_SkipsGoldenDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", mugScenario)
	writeFile(t, dir, "nested/b.yml", mugScenario)
	writeFile(t, dir, "golden/c.yaml", "not a scenario")
	writeFile(t, dir, "notes.txt", "ignored")

	files, err := findScenarioFiles(dir, filepath.Join(dir, "golden"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "nested", "b.yml")}, files)
}
