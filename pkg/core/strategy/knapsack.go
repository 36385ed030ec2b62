package strategy

import (
	"sort"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
)

// Knapsack is the global pairing strategy. Despite the name it is a greedy
// matcher, not an exact solver: it scores every (shift, caregiver) pair up
// front, walks all pairs in descending percentage order accepting any pair
// whose shift and caregiver are both still free, and finally pairs any
// leftover shifts with leftover caregivers in input order so that every
// shift is covered whenever enough caregivers exist.
type Knapsack struct {
	SkipPrefilter bool
}

func (s *Knapsack) Name() string {
	return "KNAPSACK"
}

type scoredPair struct {
	shiftIdx     int
	caregiverIdx int
	percentage   float64
}

func (s *Knapsack) Assign(shifts []*model.Shift, caregivers []*model.Caregiver, weights model.Weights, policy scoring.Policy) *model.Assignment {
	matrix := buildMatrix(shifts, caregivers, weights, policy, s.SkipPrefilter)

	pairs := make([]scoredPair, 0, len(shifts)*len(caregivers))
	for si := range shifts {
		for ci := range caregivers {
			if matrix.scores[si][ci].eligible {
				pairs = append(pairs, scoredPair{
					shiftIdx:     si,
					caregiverIdx: ci,
					percentage:   matrix.scores[si][ci].percentage,
				})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].percentage > pairs[j].percentage
	})

	assign := make([]int, len(shifts))
	for i := range assign {
		assign[i] = unassigned
	}
	used := make([]bool, len(caregivers))

	for _, pair := range pairs {
		if assign[pair.shiftIdx] != unassigned || used[pair.caregiverIdx] {
			continue
		}
		assign[pair.shiftIdx] = pair.caregiverIdx
		used[pair.caregiverIdx] = true
	}

	// Second pass: full coverage over optimality
	matrix.repair(assign)

	return matrix.toAssignment(assign)
}
