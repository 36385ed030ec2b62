package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "caregiver_match_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPath_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
databaseURL: postgres://localhost:5432/caregiver_match
benchmark:
  rrule: FREQ=DAILY
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/caregiver_match", cfg.DatabaseURL)
	assert.Equal(t, 5.0, cfg.Thresholds.SoftKm)
	assert.Equal(t, 15.0, cfg.Thresholds.HardKm)
	assert.Equal(t, 100, cfg.Tabu.Iterations)
	assert.Equal(t, 12, cfg.Tabu.ListSize)
	assert.Equal(t, 100.0, cfg.Annealing.InitialTemperature)
	assert.Equal(t, 0.97, cfg.Annealing.CoolingRate)
	assert.Equal(t, 3, cfg.Annealing.PatienceLevels)
	assert.Equal(t, 14, cfg.Benchmark.DayLimit)
}

func TestLoadFromPath_ExplicitValuesKept(t *testing.T) {
	path := writeConfigFile(t, `
databaseURL: postgres://localhost:5432/caregiver_match
thresholds:
  softKm: 3
  hardKm: 20
tabu:
  iterations: 250
  listSize: 20
benchmark:
  rrule: FREQ=WEEKLY;BYDAY=MO,WE,FR
  shiftCount: 50
  caregiverCount: 60
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 3.0, cfg.Thresholds.SoftKm)
	assert.Equal(t, 20.0, cfg.Thresholds.HardKm)
	assert.Equal(t, 250, cfg.Tabu.Iterations)
	assert.Equal(t, 50, cfg.Benchmark.ShiftCount)
	assert.Equal(t, 60, cfg.Benchmark.CaregiverCount)
}

func TestLoadFromPath_MissingDatabaseURL(t *testing.T) {
	path := writeConfigFile(t, `
benchmark:
  rrule: FREQ=DAILY
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadFromPath_InvalidThresholdOrder(t *testing.T) {
	path := writeConfigFile(t, `
databaseURL: postgres://localhost:5432/caregiver_match
thresholds:
  softKm: 15
  hardKm: 5
benchmark:
  rrule: FREQ=DAILY
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	path := writeConfigFile(t, `
databaseURL: postgres://localhost:5432/caregiver_match
benchmark:
  rrule: FREQ=SOMETIMES
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_FileMissing(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
