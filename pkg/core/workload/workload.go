// Package workload generates synthetic caregiver and shift populations for
// the benchmark harness. The populations mimic the production data shape:
// caregivers and patients scattered over a ~10 km urban box, skill
// identifiers from a small closed set, and shift windows of a working day.
//
// All randomness comes from the injected rand source, so benchmark runs are
// reproducible from a seed.
package workload

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
)

const (
	// skill identifiers are drawn from [1, skillKinds]
	skillKinds = 6

	// baseLatitude/baseLongitude anchor the synthetic service area
	baseLatitude  = 40.6
	baseLongitude = 22.9

	// fraction of a day that is night / of a week that is weekend; used as
	// the probability a synthetic caregiver prefers those shifts
	prefersNightsProbability   = 8.0 / 24.0
	prefersWeekendsProbability = 2.0 / 7.0
)

// Caregivers generates count synthetic caregivers, each with two to four
// skills and a random location in the service area
func Caregivers(rng *rand.Rand, count int) []*model.Caregiver {
	caregivers := make([]*model.Caregiver, count)
	for i := range caregivers {
		skillCount := 2 + rng.Intn(3)
		skills := make([]int, skillCount)
		for j := range skills {
			skills[j] = 1 + rng.Intn(skillKinds)
		}

		caregivers[i] = &model.Caregiver{
			ID:              i + 1,
			Name:            fmt.Sprintf("caregiver-%d", i+1),
			Skills:          skills,
			PrefersNights:   rng.Float64() < prefersNightsProbability,
			PrefersWeekends: rng.Float64() < prefersWeekendsProbability,
			Location:        randomPoint(rng),
		}
	}
	return caregivers
}

// Shifts generates count synthetic shifts spread over the given days, with
// one or two required skills, a one-to-eight hour window starting between
// 06:00 and 17:59, and a random work-site location. With no days there is
// nothing to spread over, so the result is empty.
func Shifts(rng *rand.Rand, count int, days []time.Time) []*model.Shift {
	if len(days) == 0 {
		return nil
	}

	shifts := make([]*model.Shift, count)
	for i := range shifts {
		day := days[rng.Intn(len(days))]

		startHour := 6 + rng.Intn(12)
		startMinute := rng.Intn(60)
		startsAt := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMinute, 0, 0, day.Location())
		endsAt := startsAt.Add(time.Duration(1+rng.Intn(8)) * time.Hour)

		needCount := 1 + rng.Intn(2)
		needs := make([]int, needCount)
		for j := range needs {
			needs[j] = 1 + rng.Intn(skillKinds)
		}

		shifts[i] = &model.Shift{
			ID:             i + 1,
			PatientID:      1 + rng.Intn(count/4+1),
			StartsAt:       startsAt,
			EndsAt:         endsAt,
			RequiredSkills: needs,
			Location:       randomPoint(rng),
		}
	}
	return shifts
}

// DaysFromRRule expands a recurrence rule into at most limit shift days
// starting from the given anchor
func DaysFromRRule(ruleText string, anchor time.Time, limit int) ([]time.Time, error) {
	rule, err := rrule.StrToRRule(ruleText)
	if err != nil {
		return nil, fmt.Errorf("invalid benchmark rrule: %w", err)
	}
	rule.DTStart(anchor)

	iter := rule.Iterator()
	days := make([]time.Time, 0, limit)
	for len(days) < limit {
		day, ok := iter()
		if !ok {
			break
		}
		days = append(days, day)
	}

	if len(days) == 0 {
		return nil, fmt.Errorf("benchmark rrule %q yields no occurrences", ruleText)
	}
	return days, nil
}

func randomPoint(rng *rand.Rand) model.Point {
	return model.Point{
		Latitude:  baseLatitude + rng.Float64()/10,
		Longitude: baseLongitude + rng.Float64()/10,
	}
}
