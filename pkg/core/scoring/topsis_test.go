package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
)

func TestTOPSIS_DominantCandidateRanksFirst(t *testing.T) {
	// Candidate 1 dominates on every criterion: full coverage, at the
	// patient's door, matching preferences. It must score closeness 1
	// (raw 100) and the dominated candidate must score 0.
	best := &model.Caregiver{
		ID:       1,
		Skills:   []int{1, 2},
		Location: model.Point{Latitude: 40.60, Longitude: 22.95},
	}
	worst := &model.Caregiver{
		ID:            2,
		Skills:        []int{5},
		PrefersNights: true,
		Location:      model.Point{Latitude: 40.80, Longitude: 22.95},
	}
	shift := weekdayShift(1, 2)
	weights := model.Weights{Night: 1, Weekend: 1, Distance: 1}

	results := RankCaregivers(NewTOPSIS(DefaultThresholds()), shift, []*model.Caregiver{best, worst}, weights, false)

	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].CaregiverID)
	assert.Equal(t, 100.0, results[0].Score)
	assert.Equal(t, 0.0, results[1].Score)
	assert.Equal(t, 100.0, results[0].Percentage)
}

func TestTOPSIS_IdenticalCandidatesAllRankEqualBest(t *testing.T) {
	// With no spread between candidates the closeness denominator is zero;
	// everyone counts as ideal.
	twin := func(id int) *model.Caregiver {
		return &model.Caregiver{
			ID:       id,
			Skills:   []int{1},
			Location: model.Point{Latitude: 40.60, Longitude: 22.95},
		}
	}
	shift := weekdayShift(1, 2)
	weights := model.Weights{Night: 1, Weekend: 1, Distance: 1}

	results := RankCaregivers(NewTOPSIS(DefaultThresholds()), shift, []*model.Caregiver{twin(1), twin(2)}, weights, false)

	require.Len(t, results, 2)
	assert.Equal(t, 100.0, results[0].Score)
	assert.Equal(t, 100.0, results[1].Score)
}

func TestTOPSIS_EmptyCandidateSet(t *testing.T) {
	shift := weekdayShift(1, 2)

	results := RankCaregivers(NewTOPSIS(DefaultThresholds()), shift, nil, model.Weights{}, false)

	assert.Empty(t, results)
}

func TestTOPSIS_WholeSetEffect(t *testing.T) {
	// TOPSIS scores are relative: the same caregiver scores differently
	// depending on who else is in the pool.
	subject := &model.Caregiver{
		ID:       1,
		Skills:   []int{1},
		Location: model.Point{Latitude: 40.68, Longitude: 22.95},
	}
	stronger := &model.Caregiver{
		ID:       2,
		Skills:   []int{1, 2},
		Location: model.Point{Latitude: 40.60, Longitude: 22.95},
	}
	weaker := &model.Caregiver{
		ID:            3,
		Skills:        []int{6},
		PrefersNights: true,
		Location:      model.Point{Latitude: 40.85, Longitude: 22.95},
	}
	shift := weekdayShift(1, 2)
	weights := model.Weights{Night: 1, Weekend: 1, Distance: 1}

	againstStronger := RankCaregivers(NewTOPSIS(DefaultThresholds()), shift, []*model.Caregiver{subject, stronger}, weights, false)
	againstWeaker := RankCaregivers(NewTOPSIS(DefaultThresholds()), shift, []*model.Caregiver{subject, weaker}, weights, false)

	var vsStrong, vsWeak float64
	for _, r := range againstStronger {
		if r.CaregiverID == 1 {
			vsStrong = r.Score
		}
	}
	for _, r := range againstWeaker {
		if r.CaregiverID == 1 {
			vsWeak = r.Score
		}
	}

	assert.Greater(t, vsWeak, vsStrong)
}

func TestPolicyFromName(t *testing.T) {
	thresholds := DefaultThresholds()

	for _, name := range []string{"WSM", "MCDM", "GREEDY", "TOPSIS", "RANDOM"} {
		policy, err := PolicyFromName(name, thresholds)
		require.NoError(t, err)
		require.NotNil(t, policy)
	}

	_, err := PolicyFromName("HUNGARIAN", thresholds)
	assert.Error(t, err)
}
