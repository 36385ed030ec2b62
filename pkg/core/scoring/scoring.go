// Package scoring computes per-(caregiver, shift) fitness scores under a set
// of interchangeable policies, and normalizes raw scores into a 0-100
// percentage-of-best ranking.
package scoring

import (
	"fmt"

	"github.com/meliora-health/caregiver-match/pkg/core/geo"
	"github.com/meliora-health/caregiver-match/pkg/core/model"
)

// Thresholds are the distance bounds shared by every policy. Below SoftKm
// travel is considered optimal; above HardKm a caregiver is out of bounds.
type Thresholds struct {
	SoftKm float64
	HardKm float64
}

// DefaultThresholds returns the standard 5 km / 15 km distance bounds
func DefaultThresholds() Thresholds {
	return Thresholds{SoftKm: 5, HardKm: 15}
}

// Candidate pairs a caregiver with their precomputed distance to the shift's
// work site
type Candidate struct {
	Caregiver  *model.Caregiver
	DistanceKm float64
}

// Policy scores a candidate set against a single shift. Pairwise policies
// (WSM, Greedy) score each candidate independently; TOPSIS needs the whole
// candidate set at once, which is why the contract is set-oriented.
//
// Implementations return raw scores only; Normalize fills in percentages
// and sorts.
type Policy interface {
	Name() string
	ScoreCandidates(shift *model.Shift, candidates []Candidate, weights model.Weights) []model.FitResult
}

// PolicyFromName resolves a policy selector as it appears at the API
// boundary (WSM, GREEDY, TOPSIS, RANDOM). WSM also answers to its historical
// name MCDM.
func PolicyFromName(name string, thresholds Thresholds) (Policy, error) {
	switch name {
	case "WSM", "MCDM":
		return NewWSM(thresholds), nil
	case "GREEDY":
		return NewGreedy(thresholds), nil
	case "TOPSIS":
		return NewTOPSIS(thresholds), nil
	case "RANDOM":
		return NewRandom(thresholds), nil
	}
	return nil, fmt.Errorf("unknown scoring policy %q", name)
}

// RankCaregivers scores all caregivers against the shift under the given
// policy and returns them normalized and sorted best-first.
//
// When the shift requires exactly one skill, candidates are prefiltered to
// holders of that skill before the policy runs. Set skipPrefilter to rank the
// unfiltered pool (used by the benchmark harness).
func RankCaregivers(policy Policy, shift *model.Shift, caregivers []*model.Caregiver, weights model.Weights, skipPrefilter bool) []model.FitResult {
	candidates := BuildCandidates(shift, caregivers)

	if !skipPrefilter && len(shift.RequiredSkills) == 1 {
		singleNeed := shift.RequiredSkills[0]
		filtered := candidates[:0]
		for _, c := range candidates {
			if c.Caregiver.HasSkill(singleNeed) {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	// Greedy carries its own overlap prefilter; skipPrefilter must bypass
	// that one too. Score through a copy so the caller's policy value stays
	// untouched.
	if skipPrefilter {
		if greedy, ok := policy.(*Greedy); ok && !greedy.DisablePrefilter {
			unfiltered := *greedy
			unfiltered.DisablePrefilter = true
			policy = &unfiltered
		}
	}

	return Normalize(policy.ScoreCandidates(shift, candidates, weights))
}

// BuildCandidates computes the distance from each caregiver to the shift's
// work site
func BuildCandidates(shift *model.Shift, caregivers []*model.Caregiver) []Candidate {
	candidates := make([]Candidate, len(caregivers))
	for i, cg := range caregivers {
		candidates[i] = Candidate{
			Caregiver:  cg,
			DistanceKm: geo.DistanceKm(cg.Location, shift.Location),
		}
	}
	return candidates
}
