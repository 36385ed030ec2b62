package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meliora-health/caregiver-match/internal/config"
	"github.com/meliora-health/caregiver-match/pkg/core/model"
)

// mockRankShiftStore implements RankShiftStore for testing
type mockRankShiftStore struct {
	shift            *model.Shift
	caregivers       []*model.Caregiver
	getShiftErr      error
	getCaregiversErr error
}

func (m *mockRankShiftStore) GetShift(ctx context.Context, shiftID int) (*model.Shift, error) {
	if m.getShiftErr != nil {
		return nil, m.getShiftErr
	}
	return m.shift, nil
}

func (m *mockRankShiftStore) GetCaregivers(ctx context.Context) ([]*model.Caregiver, error) {
	if m.getCaregiversErr != nil {
		return nil, m.getCaregiversErr
	}
	return m.caregivers, nil
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL: "postgres://localhost:5432/test",
		Thresholds:  config.Thresholds{SoftKm: 5, HardKm: 15},
		Tabu:        config.TabuConfig{Iterations: 100, ListSize: 12},
		Annealing: config.AnnealingConfig{
			InitialTemperature: 100.0,
			CoolingRate:        0.97,
			MinTemperature:     0.01,
			PatienceLevels:     3,
		},
		Benchmark: config.BenchmarkConfig{
			RRule:          "FREQ=DAILY",
			DayLimit:       3,
			ShiftCount:     20,
			CaregiverCount: 30,
		},
	}
}

func testWeights() model.Weights {
	return model.Weights{Night: 1, Weekend: 1, Distance: 1}
}

func dayShift() *model.Shift {
	return &model.Shift{
		ID:             1,
		PatientID:      10,
		StartsAt:       time.Date(2025, 4, 21, 8, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2025, 4, 21, 16, 0, 0, 0, time.UTC),
		RequiredSkills: []int{1, 2},
		Location:       model.Point{Latitude: 40.60, Longitude: 22.95},
	}
}

func TestRankShift_RanksBestFirst(t *testing.T) {
	store := &mockRankShiftStore{
		shift: dayShift(),
		caregivers: []*model.Caregiver{
			// Far with one matching skill
			{ID: 1, Name: "Maria", Skills: []int{1}, Location: model.Point{Latitude: 40.70, Longitude: 22.95}},
			// Close with both matching skills
			{ID: 2, Name: "Nikos", Skills: []int{1, 2}, Location: model.Point{Latitude: 40.61, Longitude: 22.95}},
		},
	}

	result, err := RankShift(context.Background(), store, testConfig(), zap.NewNop(), 1, testWeights(), "WSM")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "WSM", result.Policy)
	require.Len(t, result.Results, 2)
	assert.Equal(t, 2, result.Results[0].CaregiverID)
	assert.Equal(t, 100.0, result.Results[0].Percentage)
	assert.True(t, result.Results[0].MeetsAllNeeds)
	assert.Equal(t, 1, result.Results[1].CaregiverID)
	assert.Less(t, result.Results[1].Score, result.Results[0].Score)
}

func TestRankShift_HistoricalPolicyName(t *testing.T) {
	store := &mockRankShiftStore{shift: dayShift(), caregivers: nil}

	result, err := RankShift(context.Background(), store, testConfig(), zap.NewNop(), 1, testWeights(), "MCDM")
	require.NoError(t, err)
	assert.Equal(t, "WSM", result.Policy)
	assert.Empty(t, result.Results)
}

func TestRankShift_UnknownPolicy(t *testing.T) {
	store := &mockRankShiftStore{shift: dayShift()}

	_, err := RankShift(context.Background(), store, testConfig(), zap.NewNop(), 1, testWeights(), "BOGUS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scoring policy")
}

func TestRankShift_ShiftFetchError(t *testing.T) {
	store := &mockRankShiftStore{getShiftErr: errors.New("connection refused")}

	_, err := RankShift(context.Background(), store, testConfig(), zap.NewNop(), 1, testWeights(), "WSM")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch shift")
}

func TestRankShift_CaregiverFetchError(t *testing.T) {
	store := &mockRankShiftStore{
		shift:            dayShift(),
		getCaregiversErr: errors.New("connection refused"),
	}

	_, err := RankShift(context.Background(), store, testConfig(), zap.NewNop(), 1, testWeights(), "WSM")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch caregivers")
}
