package strategy

import (
	"math"
	"math/rand"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
)

// seedTopPickProbability is the chance the seed takes one of a shift's top
// three ranked caregivers instead of a uniform draw over the ranked pool
const seedTopPickProbability = 0.8

// coldSelectionFraction is the share of the ranked candidate list the
// reassign move samples from once the temperature has bottomed out
const coldSelectionFraction = 0.3

// Annealing runs simulated annealing over the assignment arena.
//
// The seed is a semi-randomized greedy pass. Neighbors come from two moves
// picked at random: swapping the caregivers of two shifts, or reassigning
// one shift to a free caregiver, with the draw biased toward top-ranked
// candidates as the temperature drops. Worsening moves are accepted with
// Metropolis probability exp(delta/T); the temperature decays geometrically
// and a patience counter ends the search after too many levels without a
// new best. A final repair pass fills any shifts the search left empty.
type Annealing struct {
	params        AnnealingParams
	rng           *rand.Rand
	skipPrefilter bool
}

// NewAnnealing creates a simulated annealing strategy drawing randomness
// from rng
func NewAnnealing(params AnnealingParams, rng *rand.Rand, skipPrefilter bool) *Annealing {
	return &Annealing{params: params, rng: rng, skipPrefilter: skipPrefilter}
}

func (s *Annealing) Name() string {
	return "SIMULATED_ANNEALING"
}

func (s *Annealing) Assign(shifts []*model.Shift, caregivers []*model.Caregiver, weights model.Weights, policy scoring.Policy) *model.Assignment {
	matrix := buildMatrix(shifts, caregivers, weights, policy, s.skipPrefilter)

	current := s.seed(matrix)
	used := matrix.usedSet(current)
	currentObj := matrix.objective(current)

	best := make([]int, len(current))
	copy(best, current)
	bestObj := currentObj

	// Inner budget per temperature level, scaled to problem size
	innerIterations := 4 * len(shifts)
	if innerIterations < 20 {
		innerIterations = 20
	}

	levelsWithoutBest := 0

	for temp := s.params.InitialTemperature; temp >= s.params.MinTemperature; temp *= s.params.CoolingRate {
		newBestThisLevel := false

		for i := 0; i < innerIterations; i++ {
			accepted := false
			if s.rng.Float64() < 0.5 && len(shifts) >= 2 {
				accepted = s.swapMove(matrix, current, &currentObj, temp)
			} else {
				accepted = s.reassignMove(matrix, current, used, &currentObj, temp)
			}

			if accepted && currentObj > bestObj {
				copy(best, current)
				bestObj = currentObj
				newBestThisLevel = true
			}
		}

		if newBestThisLevel {
			levelsWithoutBest = 0
		} else {
			levelsWithoutBest++
			if levelsWithoutBest >= s.params.PatienceLevels {
				break
			}
		}
	}

	matrix.repair(best)

	return matrix.toAssignment(best)
}

// seed builds the initial solution: a left-to-right greedy pass that takes
// one of the shift's top three ranked free caregivers 80% of the time and a
// uniform draw over the ranked free pool otherwise
func (s *Annealing) seed(matrix *scoreMatrix) []int {
	assign := make([]int, len(matrix.shifts))
	for i := range assign {
		assign[i] = unassigned
	}
	used := make([]bool, len(matrix.caregivers))

	for si := range matrix.shifts {
		free := make([]int, 0, len(matrix.ranked[si]))
		for _, ci := range matrix.ranked[si] {
			if !used[ci] {
				free = append(free, ci)
			}
		}
		if len(free) == 0 {
			continue
		}

		var pick int
		if s.rng.Float64() < seedTopPickProbability {
			top := len(free)
			if top > 3 {
				top = 3
			}
			pick = free[s.rng.Intn(top)]
		} else {
			pick = free[s.rng.Intn(len(free))]
		}

		assign[si] = pick
		used[pick] = true
	}

	return assign
}

// swapMove exchanges the caregivers of two random shifts
func (s *Annealing) swapMove(matrix *scoreMatrix, assign []int, currentObj *float64, temp float64) bool {
	a := s.rng.Intn(len(assign))
	b := s.rng.Intn(len(assign))
	if a == b {
		return false
	}

	before := matrix.contribution(a, assign[a]) + matrix.contribution(b, assign[b])
	after := matrix.contribution(a, assign[b]) + matrix.contribution(b, assign[a])
	delta := after - before

	if !s.accept(delta, temp) {
		return false
	}

	assign[a], assign[b] = assign[b], assign[a]
	*currentObj += delta
	return true
}

// reassignMove moves one random shift to a free caregiver. The candidate is
// drawn from the shift's ranking: near-uniform while hot, narrowing to the
// top 30% as the temperature approaches the floor.
func (s *Annealing) reassignMove(matrix *scoreMatrix, assign []int, used []bool, currentObj *float64, temp float64) bool {
	si := s.rng.Intn(len(assign))

	free := make([]int, 0, len(matrix.ranked[si]))
	for _, ci := range matrix.ranked[si] {
		if !used[ci] {
			free = append(free, ci)
		}
	}
	if len(free) == 0 {
		return false
	}

	fraction := coldSelectionFraction + (1-coldSelectionFraction)*(temp/s.params.InitialTemperature)
	if fraction > 1 {
		fraction = 1
	}
	window := int(math.Ceil(fraction * float64(len(free))))
	if window < 1 {
		window = 1
	}
	ci := free[s.rng.Intn(window)]

	delta := matrix.contribution(si, ci) - matrix.contribution(si, assign[si])
	if !s.accept(delta, temp) {
		return false
	}

	prev := assign[si]
	assign[si] = ci
	used[ci] = true
	if prev != unassigned {
		used[prev] = false
	}
	*currentObj += delta
	return true
}

// accept applies the Metropolis criterion: improving moves always pass,
// worsening moves pass with probability exp(delta/T)
func (s *Annealing) accept(delta, temp float64) bool {
	if delta >= 0 {
		return true
	}
	return s.rng.Float64() < math.Exp(delta/temp)
}
