package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
)

// mockAssignShiftsStore implements AssignShiftsStore for testing
type mockAssignShiftsStore struct {
	shifts           []*model.Shift
	caregivers       []*model.Caregiver
	savedAssignments map[int]int
	getShiftsErr     error
	getCaregiversErr error
	saveErr          error
}

func (m *mockAssignShiftsStore) GetOpenShifts(ctx context.Context) ([]*model.Shift, error) {
	if m.getShiftsErr != nil {
		return nil, m.getShiftsErr
	}
	return m.shifts, nil
}

func (m *mockAssignShiftsStore) GetCaregivers(ctx context.Context) ([]*model.Caregiver, error) {
	if m.getCaregiversErr != nil {
		return nil, m.getCaregiversErr
	}
	return m.caregivers, nil
}

func (m *mockAssignShiftsStore) SaveAssignments(ctx context.Context, byShift map[int]int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedAssignments = byShift
	return nil
}

func assignmentFixtures() ([]*model.Shift, []*model.Caregiver) {
	shifts := []*model.Shift{
		{
			ID:             1,
			PatientID:      10,
			StartsAt:       time.Date(2025, 4, 21, 8, 0, 0, 0, time.UTC),
			EndsAt:         time.Date(2025, 4, 21, 16, 0, 0, 0, time.UTC),
			RequiredSkills: []int{1},
			Location:       model.Point{Latitude: 40.60, Longitude: 22.95},
		},
		{
			ID:             2,
			PatientID:      11,
			StartsAt:       time.Date(2025, 4, 21, 9, 0, 0, 0, time.UTC),
			EndsAt:         time.Date(2025, 4, 21, 17, 0, 0, 0, time.UTC),
			RequiredSkills: []int{2},
			Location:       model.Point{Latitude: 40.62, Longitude: 22.95},
		},
	}
	caregivers := []*model.Caregiver{
		{ID: 1, Name: "Maria", Skills: []int{1}, Location: model.Point{Latitude: 40.60, Longitude: 22.95}},
		{ID: 2, Name: "Nikos", Skills: []int{2}, Location: model.Point{Latitude: 40.62, Longitude: 22.95}},
		{ID: 3, Name: "Eleni", Skills: []int{1, 2}, Location: model.Point{Latitude: 40.61, Longitude: 22.95}},
	}
	return shifts, caregivers
}

func TestAssignShifts_SavesAssignments(t *testing.T) {
	shifts, caregivers := assignmentFixtures()
	store := &mockAssignShiftsStore{shifts: shifts, caregivers: caregivers}

	result, err := AssignShifts(context.Background(), store, testConfig(), zap.NewNop(),
		testWeights(), "WSM", "SERIAL", 1, false)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "WSM", result.Policy)
	assert.Equal(t, "SERIAL", result.Strategy)
	assert.Equal(t, 2, result.ShiftCount)
	assert.Equal(t, 3, result.CaregiverCount)
	assert.Equal(t, 2, result.AssignedCount)
	assert.True(t, result.Saved)

	// Writeback mirrors the assignment and never double-books
	require.Len(t, store.savedAssignments, 2)
	seen := make(map[int]bool)
	for _, shift := range result.Shifts {
		require.NotNil(t, shift.AssignedCaregiverID)
		assert.Equal(t, store.savedAssignments[shift.ID], *shift.AssignedCaregiverID)
		assert.False(t, seen[*shift.AssignedCaregiverID])
		seen[*shift.AssignedCaregiverID] = true
	}
}

func TestAssignShifts_DryRunDoesNotSave(t *testing.T) {
	shifts, caregivers := assignmentFixtures()
	store := &mockAssignShiftsStore{shifts: shifts, caregivers: caregivers}

	result, err := AssignShifts(context.Background(), store, testConfig(), zap.NewNop(),
		testWeights(), "WSM", "SERIAL", 1, true)
	require.NoError(t, err)

	assert.Equal(t, 2, result.AssignedCount)
	assert.False(t, result.Saved)
	assert.Nil(t, store.savedAssignments)
}

func TestAssignShifts_EmptyPool(t *testing.T) {
	shifts, _ := assignmentFixtures()
	store := &mockAssignShiftsStore{shifts: shifts, caregivers: nil}

	result, err := AssignShifts(context.Background(), store, testConfig(), zap.NewNop(),
		testWeights(), "WSM", "SERIAL", 1, false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.AssignedCount)
	assert.False(t, result.Saved)
	assert.Nil(t, store.savedAssignments)
}

func TestAssignShifts_MetaheuristicStrategies(t *testing.T) {
	for _, name := range []string{"KNAPSACK", "TABU", "SIMULATED_ANNEALING"} {
		t.Run(name, func(t *testing.T) {
			shifts, caregivers := assignmentFixtures()
			store := &mockAssignShiftsStore{shifts: shifts, caregivers: caregivers}

			result, err := AssignShifts(context.Background(), store, testConfig(), zap.NewNop(),
				testWeights(), "WSM", name, 42, false)
			require.NoError(t, err)

			assert.Equal(t, name, result.Strategy)
			assert.Equal(t, 2, result.AssignedCount)
		})
	}
}

func TestAssignShifts_UnknownStrategy(t *testing.T) {
	store := &mockAssignShiftsStore{}

	_, err := AssignShifts(context.Background(), store, testConfig(), zap.NewNop(),
		testWeights(), "WSM", "BOGUS", 1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown assignment strategy")
}

func TestAssignShifts_SaveError(t *testing.T) {
	shifts, caregivers := assignmentFixtures()
	store := &mockAssignShiftsStore{
		shifts:     shifts,
		caregivers: caregivers,
		saveErr:    errors.New("connection reset"),
	}

	_, err := AssignShifts(context.Background(), store, testConfig(), zap.NewNop(),
		testWeights(), "WSM", "SERIAL", 1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save assignments")
}

func TestAssignShifts_ShiftFetchError(t *testing.T) {
	store := &mockAssignShiftsStore{getShiftsErr: errors.New("connection refused")}

	_, err := AssignShifts(context.Background(), store, testConfig(), zap.NewNop(),
		testWeights(), "WSM", "SERIAL", 1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch open shifts")
}
