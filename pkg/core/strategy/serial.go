package strategy

import (
	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
)

// Serial is the single-pass greedy strategy: it scans shifts left to right,
// ranks the currently unassigned caregivers for each one, and takes the top
// candidate. A poor early pick is never revisited.
//
// Ranking happens against the remaining pool only, so percentages are
// relative to whoever is still available at that point in the scan.
type Serial struct {
	SkipPrefilter bool
}

func (s *Serial) Name() string {
	return "SERIAL"
}

func (s *Serial) Assign(shifts []*model.Shift, caregivers []*model.Caregiver, weights model.Weights, policy scoring.Policy) *model.Assignment {
	assignment := model.NewAssignment()
	assignedIDs := make(map[int]bool, len(caregivers))

	for _, shift := range shifts {
		pool := make([]*model.Caregiver, 0, len(caregivers))
		for _, cg := range caregivers {
			if !assignedIDs[cg.ID] {
				pool = append(pool, cg)
			}
		}

		ranked := scoring.RankCaregivers(policy, shift, pool, weights, s.SkipPrefilter)
		if len(ranked) == 0 {
			continue
		}

		top := ranked[0]
		assignment.Assign(shift.ID, top.CaregiverID)
		assignedIDs[top.CaregiverID] = true
	}

	return assignment
}
