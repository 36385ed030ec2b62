package strategy

import (
	"math/rand"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
)

// Tabu runs a tabu search over single-shift reassignments.
//
// The search starts from a random full assignment. Each iteration evaluates
// every reassignment of one shift to every other caregiver (taking the
// caregiver away from their current shift when occupied, which keeps the
// no-double-booking invariant), skips moves whose (shift, caregiver) pair
// sits in the bounded FIFO recency list, and applies the best remaining
// neighbor even when it is worse than the current solution; the pairs the
// move undoes go into the list. A separately kept best-ever solution makes
// the result no worse than the seed.
type Tabu struct {
	params        TabuParams
	rng           *rand.Rand
	skipPrefilter bool
}

// NewTabu creates a tabu search strategy drawing randomness from rng
func NewTabu(params TabuParams, rng *rand.Rand, skipPrefilter bool) *Tabu {
	return &Tabu{params: params, rng: rng, skipPrefilter: skipPrefilter}
}

func (s *Tabu) Name() string {
	return "TABU"
}

type tabuMove struct {
	shiftIdx     int
	caregiverIdx int
}

func (s *Tabu) Assign(shifts []*model.Shift, caregivers []*model.Caregiver, weights model.Weights, policy scoring.Policy) *model.Assignment {
	matrix := buildMatrix(shifts, caregivers, weights, policy, s.skipPrefilter)

	// Random full seed: one caregiver per shift, each used once. With fewer
	// caregivers than shifts the tail stays unassigned.
	current := make([]int, len(shifts))
	for i := range current {
		current[i] = unassigned
	}
	perm := s.rng.Perm(len(caregivers))
	for si := range shifts {
		if si >= len(perm) {
			break
		}
		current[si] = perm[si]
	}

	// shiftOf tracks which shift currently holds each caregiver
	shiftOf := make([]int, len(caregivers))
	for i := range shiftOf {
		shiftOf[i] = unassigned
	}
	for si, ci := range current {
		if ci != unassigned {
			shiftOf[ci] = si
		}
	}

	currentObj := matrix.objective(current)

	best := make([]int, len(current))
	copy(best, current)
	bestObj := currentObj

	var tabuList []tabuMove

	for iter := 0; iter < s.params.Iterations; iter++ {
		bestMove := tabuMove{shiftIdx: unassigned, caregiverIdx: unassigned}
		bestMoveObj := 0.0
		found := false

		for si := range shifts {
			for ci := range caregivers {
				if ci == current[si] {
					continue
				}
				if s.isTabu(tabuList, si, ci) {
					continue
				}

				neighborObj := currentObj - matrix.contribution(si, current[si]) + matrix.contribution(si, ci)
				if holder := shiftOf[ci]; holder != unassigned {
					// Taking an occupied caregiver leaves their shift empty
					neighborObj -= matrix.contribution(holder, ci)
				}

				if !found || neighborObj > bestMoveObj {
					found = true
					bestMove = tabuMove{shiftIdx: si, caregiverIdx: ci}
					bestMoveObj = neighborObj
				}
			}
		}

		if !found {
			break
		}

		// Apply the move even if it worsens the current solution; that is
		// how the search escapes local optima. The undone pairs become tabu.
		si, ci := bestMove.shiftIdx, bestMove.caregiverIdx
		if holder := shiftOf[ci]; holder != unassigned {
			current[holder] = unassigned
			tabuList = append(tabuList, tabuMove{shiftIdx: holder, caregiverIdx: ci})
		}
		if prev := current[si]; prev != unassigned {
			shiftOf[prev] = unassigned
			tabuList = append(tabuList, tabuMove{shiftIdx: si, caregiverIdx: prev})
		}
		current[si] = ci
		shiftOf[ci] = si
		if len(tabuList) > s.params.ListSize {
			tabuList = tabuList[len(tabuList)-s.params.ListSize:]
		}
		currentObj = bestMoveObj

		if currentObj > bestObj {
			copy(best, current)
			bestObj = currentObj
		}
	}

	return matrix.toAssignment(best)
}

func (s *Tabu) isTabu(list []tabuMove, shiftIdx, caregiverIdx int) bool {
	for _, m := range list {
		if m.shiftIdx == shiftIdx && m.caregiverIdx == caregiverIdx {
			return true
		}
	}
	return false
}
