// Package stats runs an assignment strategy over a large synthetic
// population and reports aggregate match-quality metrics with the
// wall-clock runtime. It is a load-testing harness, but it exercises the
// exact strategy and scoring code paths production requests use.
package stats

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
	"github.com/meliora-health/caregiver-match/pkg/core/shiftwindow"
	"github.com/meliora-health/caregiver-match/pkg/core/strategy"
	"github.com/meliora-health/caregiver-match/pkg/core/workload"
)

// Params describe one benchmark run
type Params struct {
	ShiftCount     int
	CaregiverCount int
	ShiftDays      []time.Time
	Weights        model.Weights
	Policy         scoring.Policy
	Strategy       strategy.Strategy
	Rand           *rand.Rand
}

// Report holds the aggregate quality metrics of one benchmark run.
// Percentages are over all generated shifts; an unassigned shift counts as
// not matching anything.
type Report struct {
	RunID    string
	Policy   string
	Strategy string

	ShiftCount     int
	CaregiverCount int
	AssignedCount  int

	RuntimeMs int64

	// PercentageOfMeetsAllNeeds: assigned caregiver's skills are a
	// superset of the shift's required skills.
	PercentageOfMeetsAllNeeds float64
	// PercentageOfMeetsSomeNeeds: at least one required skill is covered.
	PercentageOfMeetsSomeNeeds float64
	// PercentageOfMatchesNight: the shift is not a night shift, or its
	// caregiver prefers nights. Same reading for weekends.
	PercentageOfMatchesNight   float64
	PercentageOfMatchesWeekend float64
	PercentageOfMatchesBoth    float64
}

// Run generates the synthetic population, executes the strategy once with
// the skill prefilter disabled, and aggregates the outcome.
//
// The strategy passed in must have been built with the prefilter disabled
// too (strategy.Params.SkipPrefilter); Run only controls the generation and
// measurement around it.
func Run(params Params) *Report {
	caregivers := workload.Caregivers(params.Rand, params.CaregiverCount)
	shifts := workload.Shifts(params.Rand, params.ShiftCount, params.ShiftDays)

	started := time.Now()
	assignment := params.Strategy.Assign(shifts, caregivers, params.Weights, params.Policy)
	runtime := time.Since(started)

	report := &Report{
		RunID:          uuid.NewString(),
		Policy:         params.Policy.Name(),
		Strategy:       params.Strategy.Name(),
		ShiftCount:     len(shifts),
		CaregiverCount: len(caregivers),
		AssignedCount:  assignment.AssignedCount(),
		RuntimeMs:      runtime.Milliseconds(),
	}

	caregiverByID := make(map[int]*model.Caregiver, len(caregivers))
	for _, cg := range caregivers {
		caregiverByID[cg.ID] = cg
	}

	var meetsAll, meetsSome, matchesNight, matchesWeekend, matchesBoth int
	for _, shift := range shifts {
		assigned := assignment.CaregiverFor(shift.ID)
		if assigned == nil {
			continue
		}
		cg := caregiverByID[*assigned]

		if cg.MeetsAllNeeds(shift) {
			meetsAll++
		}
		if cg.MatchingSkillCount(shift) > 0 {
			meetsSome++
		}

		nightOK := !shiftwindow.IsNightShift(shift.StartsAt, shift.EndsAt) || cg.PrefersNights
		weekendOK := !shiftwindow.IsWeekendShift(shift.StartsAt, shift.EndsAt) || cg.PrefersWeekends
		if nightOK {
			matchesNight++
		}
		if weekendOK {
			matchesWeekend++
		}
		if nightOK && weekendOK {
			matchesBoth++
		}
	}

	total := len(shifts)
	report.PercentageOfMeetsAllNeeds = percentage(meetsAll, total)
	report.PercentageOfMeetsSomeNeeds = percentage(meetsSome, total)
	report.PercentageOfMatchesNight = percentage(matchesNight, total)
	report.PercentageOfMatchesWeekend = percentage(matchesWeekend, total)
	report.PercentageOfMatchesBoth = percentage(matchesBoth, total)

	return report
}

// percentage rounds to one decimal, matching the ranking output scale
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
