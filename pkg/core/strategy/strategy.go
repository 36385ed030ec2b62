// Package strategy solves the one-to-one assignment of caregivers to shifts.
//
// Every strategy consumes the full shift and caregiver collections plus a
// scoring policy, and produces an Assignment in which each caregiver appears
// at most once. Assignment state is held as an index arena (a caregiver
// index per shift slot), so moves made by the search strategies are O(1)
// array writes rather than object copies.
package strategy

import (
	"fmt"
	"math/rand"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
)

// Strategy produces a global caregiver-to-shift assignment
type Strategy interface {
	Name() string
	Assign(shifts []*model.Shift, caregivers []*model.Caregiver, weights model.Weights, policy scoring.Policy) *model.Assignment
}

// TabuParams tune the tabu search
type TabuParams struct {
	// Iterations is the fixed iteration budget
	Iterations int
	// ListSize bounds the FIFO recency list of undone moves
	ListSize int
}

// DefaultTabuParams returns the standard tabu search configuration
func DefaultTabuParams() TabuParams {
	return TabuParams{Iterations: 100, ListSize: 12}
}

// AnnealingParams tune the simulated annealing search
type AnnealingParams struct {
	// InitialTemperature is where the cooling schedule starts
	InitialTemperature float64
	// CoolingRate is the geometric decay applied per temperature level
	CoolingRate float64
	// MinTemperature is the floor that ends the schedule
	MinTemperature float64
	// PatienceLevels is how many temperature levels may pass without a new
	// best solution before the search stops early
	PatienceLevels int
}

// DefaultAnnealingParams returns the standard annealing configuration
func DefaultAnnealingParams() AnnealingParams {
	return AnnealingParams{
		InitialTemperature: 100.0,
		CoolingRate:        0.97,
		MinTemperature:     0.01,
		PatienceLevels:     3,
	}
}

// Params bundles the tuning knobs shared by the strategy factory
type Params struct {
	Tabu      TabuParams
	Annealing AnnealingParams

	// SkipPrefilter disables the single-need skill prefilter when scoring
	// candidates (benchmark harness runs unfiltered)
	SkipPrefilter bool
}

// DefaultParams returns the standard strategy configuration
func DefaultParams() Params {
	return Params{
		Tabu:      DefaultTabuParams(),
		Annealing: DefaultAnnealingParams(),
	}
}

// FromName resolves a strategy selector as it appears at the API boundary
// (SERIAL, KNAPSACK, TABU, SIMULATED_ANNEALING). The randomized strategies
// draw from rng, so callers that need reproducible runs seed it themselves.
func FromName(name string, params Params, rng *rand.Rand) (Strategy, error) {
	switch name {
	case "SERIAL":
		return &Serial{SkipPrefilter: params.SkipPrefilter}, nil
	case "KNAPSACK":
		return &Knapsack{SkipPrefilter: params.SkipPrefilter}, nil
	case "TABU":
		return NewTabu(params.Tabu, rng, params.SkipPrefilter), nil
	case "SIMULATED_ANNEALING":
		return NewAnnealing(params.Annealing, rng, params.SkipPrefilter), nil
	}
	return nil, fmt.Errorf("unknown assignment strategy %q", name)
}
