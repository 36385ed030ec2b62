package strategy

import (
	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
)

// unassigned marks an empty shift slot in an index arena
const unassigned = -1

// pairScore is one cell of the precomputed (shift, caregiver) score matrix
type pairScore struct {
	// eligible is false when the policy's filters dropped the caregiver
	// from this shift's candidate set
	eligible   bool
	raw        float64
	percentage float64
}

// scoreMatrix precomputes every (shift, caregiver) pair score once, so the
// search strategies evaluate moves with array lookups instead of rescoring.
type scoreMatrix struct {
	shifts     []*model.Shift
	caregivers []*model.Caregiver

	// scores is indexed [shiftIdx][caregiverIdx]
	scores [][]pairScore

	// ranked holds, per shift, the eligible caregiver indices best-first
	ranked [][]int
}

func buildMatrix(shifts []*model.Shift, caregivers []*model.Caregiver, weights model.Weights, policy scoring.Policy, skipPrefilter bool) *scoreMatrix {
	indexByID := make(map[int]int, len(caregivers))
	for i, cg := range caregivers {
		indexByID[cg.ID] = i
	}

	m := &scoreMatrix{
		shifts:     shifts,
		caregivers: caregivers,
		scores:     make([][]pairScore, len(shifts)),
		ranked:     make([][]int, len(shifts)),
	}

	for si, shift := range shifts {
		m.scores[si] = make([]pairScore, len(caregivers))

		results := scoring.RankCaregivers(policy, shift, caregivers, weights, skipPrefilter)
		m.ranked[si] = make([]int, 0, len(results))
		for _, r := range results {
			ci := indexByID[r.CaregiverID]
			m.scores[si][ci] = pairScore{
				eligible:   true,
				raw:        r.Score,
				percentage: r.Percentage,
			}
			m.ranked[si] = append(m.ranked[si], ci)
		}
	}

	return m
}

// contribution is one assigned pair's share of the objective: the raw score
// for eligible pairs (an ineligible pairing contributes no score) plus one
// for having the shift covered at all.
func (m *scoreMatrix) contribution(shiftIdx, caregiverIdx int) float64 {
	if caregiverIdx == unassigned {
		return 0
	}
	cell := m.scores[shiftIdx][caregiverIdx]
	if !cell.eligible {
		return 1
	}
	return cell.raw + 1
}

// objective scores a whole index arena
func (m *scoreMatrix) objective(assign []int) float64 {
	total := 0.0
	for si, ci := range assign {
		total += m.contribution(si, ci)
	}
	return total
}

// toAssignment converts an index arena into the public Assignment form
func (m *scoreMatrix) toAssignment(assign []int) *model.Assignment {
	assignment := model.NewAssignment()
	for si, ci := range assign {
		if ci != unassigned {
			assignment.Assign(m.shifts[si].ID, m.caregivers[ci].ID)
		}
	}
	return assignment
}

// usedSet returns which caregiver indices an arena currently occupies
func (m *scoreMatrix) usedSet(assign []int) []bool {
	used := make([]bool, len(m.caregivers))
	for _, ci := range assign {
		if ci != unassigned {
			used[ci] = true
		}
	}
	return used
}

// ObjectiveValue scores a finished assignment the way the search strategies
// do internally: the summed raw fit score of every assigned pair plus the
// number of covered shifts.
func ObjectiveValue(shifts []*model.Shift, caregivers []*model.Caregiver, weights model.Weights, policy scoring.Policy, assignment *model.Assignment, skipPrefilter bool) float64 {
	matrix := buildMatrix(shifts, caregivers, weights, policy, skipPrefilter)

	indexByID := make(map[int]int, len(caregivers))
	for i, cg := range caregivers {
		indexByID[cg.ID] = i
	}

	total := 0.0
	for si, shift := range shifts {
		cg := assignment.CaregiverFor(shift.ID)
		if cg == nil {
			continue
		}
		total += matrix.contribution(si, indexByID[*cg])
	}
	return total
}

// repair fills every still-unassigned shift with a still-unused caregiver,
// preferring the shift's best-ranked remaining candidate and falling back to
// any free caregiver when the policy filtered them all out.
func (m *scoreMatrix) repair(assign []int) {
	used := m.usedSet(assign)

	for si, ci := range assign {
		if ci != unassigned {
			continue
		}

		picked := unassigned
		for _, candidate := range m.ranked[si] {
			if !used[candidate] {
				picked = candidate
				break
			}
		}
		if picked == unassigned {
			for candidate := range m.caregivers {
				if !used[candidate] {
					picked = candidate
					break
				}
			}
		}

		if picked != unassigned {
			assign[si] = picked
			used[picked] = true
		}
	}
}
