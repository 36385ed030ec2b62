package scoring

import (
	"github.com/meliora-health/caregiver-match/pkg/core/model"
)

// randomScore is the constant placeholder score every candidate receives
const randomScore = 1

// Random gives every candidate the same constant score, so ranking order
// degenerates to input order. It exists as a baseline for the benchmark
// harness; the diagnostic flags are still computed honestly.
type Random struct {
	thresholds Thresholds
}

// NewRandom creates the baseline scorer
func NewRandom(thresholds Thresholds) *Random {
	return &Random{thresholds: thresholds}
}

func (p *Random) Name() string {
	return "RANDOM"
}

func (p *Random) ScoreCandidates(shift *model.Shift, candidates []Candidate, weights model.Weights) []model.FitResult {
	results := make([]model.FitResult, 0, len(candidates))
	for _, c := range candidates {
		cg := c.Caregiver

		results = append(results, model.FitResult{
			CaregiverID:          cg.ID,
			CaregiverName:        cg.Name,
			Score:                randomScore,
			DistanceKm:           c.DistanceKm,
			MeetsAllNeeds:        cg.MeetsAllNeeds(shift),
			MeetsSomeNeeds:       cg.MatchingSkillCount(shift) > 0,
			OutOfBounds:          c.DistanceKm > p.thresholds.HardKm,
			OptimalDistance:      c.DistanceKm < p.thresholds.SoftKm,
			NightShiftEligible:   cg.PrefersNights,
			WeekendShiftEligible: cg.PrefersWeekends,
		})
	}
	return results
}
