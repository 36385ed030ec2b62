package scoring

import (
	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/shiftwindow"
)

// Greedy is the coarse step scorer.
//
// Candidates are prefiltered to caregivers sharing at least one required
// skill. Distance contributes a bucket score (+10 under soft, +5 up to hard,
// -10 beyond) and the preference bonuses apply only when the shift actually
// has the attribute.
//
// Unlike WSM, Greedy reads the preference flags as willingness: a caregiver
// who "prefers nights" is eligible for night work.
type Greedy struct {
	thresholds Thresholds

	// DisablePrefilter keeps non-overlapping caregivers in the candidate
	// set. RankCaregivers sets it on its own copy when asked to skip
	// prefilters, so the benchmark harness scores the unfiltered pool.
	DisablePrefilter bool
}

// NewGreedy creates a greedy scorer with the given distance thresholds
func NewGreedy(thresholds Thresholds) *Greedy {
	return &Greedy{thresholds: thresholds}
}

func (p *Greedy) Name() string {
	return "GREEDY"
}

func (p *Greedy) ScoreCandidates(shift *model.Shift, candidates []Candidate, weights model.Weights) []model.FitResult {
	isNight := shiftwindow.IsNightShift(shift.StartsAt, shift.EndsAt)
	isWeekend := shiftwindow.IsWeekendShift(shift.StartsAt, shift.EndsAt)

	results := make([]model.FitResult, 0, len(candidates))
	for _, c := range candidates {
		cg := c.Caregiver

		if !p.DisablePrefilter && cg.MatchingSkillCount(shift) == 0 {
			continue
		}

		nightEligible := cg.PrefersNights
		weekendEligible := cg.PrefersWeekends

		score := 0.0
		switch {
		case c.DistanceKm < p.thresholds.SoftKm:
			score += 10
		case c.DistanceKm <= p.thresholds.HardKm:
			score += 5
		default:
			score -= 10
		}

		if isNight && nightEligible {
			score += weights.Night * 5
		}
		if isWeekend && weekendEligible {
			score += weights.Weekend * 5
		}

		results = append(results, model.FitResult{
			CaregiverID:          cg.ID,
			CaregiverName:        cg.Name,
			Score:                score,
			DistanceKm:           c.DistanceKm,
			MeetsAllNeeds:        cg.MeetsAllNeeds(shift),
			MeetsSomeNeeds:       cg.MatchingSkillCount(shift) > 0,
			OutOfBounds:          c.DistanceKm > p.thresholds.HardKm,
			OptimalDistance:      c.DistanceKm < p.thresholds.SoftKm,
			NightShiftEligible:   nightEligible,
			WeekendShiftEligible: weekendEligible,
		})
	}

	return results
}
