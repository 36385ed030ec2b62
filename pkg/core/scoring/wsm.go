package scoring

import (
	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/shiftwindow"
)

// WSM is the weighted-sum multi-criteria scorer.
//
// Scoring per candidate:
//   - +20 per required skill the caregiver holds
//   - distance under the soft threshold: +10, flagged optimal
//   - distance between the thresholds: -(distance - soft) x distanceWeight
//   - distance beyond the hard threshold: -100, flagged out of bounds
//   - +nightWeight x 5 when the shift's night classification matches the
//     caregiver's night preference, and likewise for weekends
//
// The preference flags are read as willingness: a caregiver who prefers
// nights is eligible for night work, and the bonus rewards an exact match
// between the shift's classification and the preference (a day shift with a
// caregiver who does not prefer nights also matches).
type WSM struct {
	thresholds Thresholds
}

// NewWSM creates a weighted-sum scorer with the given distance thresholds
func NewWSM(thresholds Thresholds) *WSM {
	return &WSM{thresholds: thresholds}
}

func (p *WSM) Name() string {
	return "WSM"
}

func (p *WSM) ScoreCandidates(shift *model.Shift, candidates []Candidate, weights model.Weights) []model.FitResult {
	isNight := shiftwindow.IsNightShift(shift.StartsAt, shift.EndsAt)
	isWeekend := shiftwindow.IsWeekendShift(shift.StartsAt, shift.EndsAt)

	results := make([]model.FitResult, 0, len(candidates))
	for _, c := range candidates {
		cg := c.Caregiver

		score := float64(cg.MatchingSkillCount(shift)) * 20
		optimalDistance := false
		outOfBounds := false

		switch {
		case c.DistanceKm < p.thresholds.SoftKm:
			score += 10
			optimalDistance = true
		case c.DistanceKm <= p.thresholds.HardKm:
			score -= (c.DistanceKm - p.thresholds.SoftKm) * weights.Distance
		default:
			score -= 100
			outOfBounds = true
		}

		nightEligible := cg.PrefersNights
		weekendEligible := cg.PrefersWeekends

		if isNight == nightEligible {
			score += weights.Night * 5
		}
		if isWeekend == weekendEligible {
			score += weights.Weekend * 5
		}

		results = append(results, model.FitResult{
			CaregiverID:          cg.ID,
			CaregiverName:        cg.Name,
			Score:                score,
			DistanceKm:           c.DistanceKm,
			MeetsAllNeeds:        cg.MeetsAllNeeds(shift),
			MeetsSomeNeeds:       cg.MatchingSkillCount(shift) > 0,
			OutOfBounds:          outOfBounds,
			OptimalDistance:      optimalDistance,
			NightShiftEligible:   nightEligible,
			WeekendShiftEligible: weekendEligible,
		})
	}

	return results
}
