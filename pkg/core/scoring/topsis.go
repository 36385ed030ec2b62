package scoring

import (
	"math"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/shiftwindow"
)

// TOPSIS criteria column indices
const (
	critSkillCoverage = iota
	critDistance
	critNightMatch
	critWeekendMatch
	criteriaCount
)

// TOPSIS ranks candidates by relative closeness to an ideal solution.
//
// A decision matrix is built over four benefit criteria: skill-coverage
// ratio, distance closeness (1 under the soft threshold, 0 beyond the hard
// threshold, linear in between), night match and weekend match indicators.
// Columns are vector-normalized, scaled by the criterion weights, and the
// ideal / negative-ideal vectors are the per-column max / min across the
// candidate set. Each candidate scores its relative closeness
// d(negative-ideal) / (d(ideal) + d(negative-ideal)), scaled x100.
//
// This is inherently a whole-set computation: a candidate's score depends on
// who else is in the pool.
//
// Preference flags follow the WSM reading: a match is the shift's
// classification equaling the caregiver's preference flag.
type TOPSIS struct {
	thresholds Thresholds
}

// NewTOPSIS creates a TOPSIS scorer with the given distance thresholds
func NewTOPSIS(thresholds Thresholds) *TOPSIS {
	return &TOPSIS{thresholds: thresholds}
}

func (p *TOPSIS) Name() string {
	return "TOPSIS"
}

func (p *TOPSIS) ScoreCandidates(shift *model.Shift, candidates []Candidate, weights model.Weights) []model.FitResult {
	if len(candidates) == 0 {
		return []model.FitResult{}
	}

	isNight := shiftwindow.IsNightShift(shift.StartsAt, shift.EndsAt)
	isWeekend := shiftwindow.IsWeekendShift(shift.StartsAt, shift.EndsAt)

	// The skill criterion has no caller-supplied weight; it anchors the
	// scale at 1.
	criterionWeights := [criteriaCount]float64{
		critSkillCoverage: 1,
		critDistance:      weights.Distance,
		critNightMatch:    weights.Night,
		critWeekendMatch:  weights.Weekend,
	}

	matrix := make([][criteriaCount]float64, len(candidates))
	for i, c := range candidates {
		cg := c.Caregiver

		coverage := 1.0
		if len(shift.RequiredSkills) > 0 {
			coverage = float64(cg.MatchingSkillCount(shift)) / float64(len(shift.RequiredSkills))
		}

		matrix[i][critSkillCoverage] = coverage
		matrix[i][critDistance] = p.distanceCloseness(c.DistanceKm)
		matrix[i][critNightMatch] = boolIndicator(isNight == cg.PrefersNights)
		matrix[i][critWeekendMatch] = boolIndicator(isWeekend == cg.PrefersWeekends)
	}

	// Vector-normalize and weight each column. An all-zero column would
	// produce a zero norm, so substitute 1 to keep the division defined.
	for j := 0; j < criteriaCount; j++ {
		sumSquares := 0.0
		for i := range matrix {
			sumSquares += matrix[i][j] * matrix[i][j]
		}
		norm := math.Sqrt(sumSquares)
		if norm == 0 {
			norm = 1
		}
		for i := range matrix {
			matrix[i][j] = matrix[i][j] / norm * criterionWeights[j]
		}
	}

	// Ideal and negative-ideal vectors. Every criterion is a benefit
	// criterion, so ideal is the column max.
	var ideal, negIdeal [criteriaCount]float64
	for j := 0; j < criteriaCount; j++ {
		ideal[j] = matrix[0][j]
		negIdeal[j] = matrix[0][j]
		for i := 1; i < len(matrix); i++ {
			ideal[j] = math.Max(ideal[j], matrix[i][j])
			negIdeal[j] = math.Min(negIdeal[j], matrix[i][j])
		}
	}

	results := make([]model.FitResult, 0, len(candidates))
	for i, c := range candidates {
		cg := c.Caregiver

		dIdeal := 0.0
		dNegIdeal := 0.0
		for j := 0; j < criteriaCount; j++ {
			dIdeal += (matrix[i][j] - ideal[j]) * (matrix[i][j] - ideal[j])
			dNegIdeal += (matrix[i][j] - negIdeal[j]) * (matrix[i][j] - negIdeal[j])
		}
		dIdeal = math.Sqrt(dIdeal)
		dNegIdeal = math.Sqrt(dNegIdeal)

		// All candidates identical: closeness is undefined, call it 1 so
		// every candidate ranks equal-best.
		closeness := 1.0
		if dIdeal+dNegIdeal > 0 {
			closeness = dNegIdeal / (dIdeal + dNegIdeal)
		}

		results = append(results, model.FitResult{
			CaregiverID:          cg.ID,
			CaregiverName:        cg.Name,
			Score:                closeness * 100,
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

// distanceCloseness maps distance to [0,1]: 1 under the soft threshold,
// 0 beyond the hard threshold, linear in between
func (p *TOPSIS) distanceCloseness(distanceKm float64) float64 {
	switch {
	case distanceKm < p.thresholds.SoftKm:
		return 1
	case distanceKm > p.thresholds.HardKm:
		return 0
	default:
		return 1 - (distanceKm-p.thresholds.SoftKm)/(p.thresholds.HardKm-p.thresholds.SoftKm)
	}
}

func boolIndicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
