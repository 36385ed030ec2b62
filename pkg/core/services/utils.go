package services

import (
	"math/rand"
	"time"

	"github.com/meliora-health/caregiver-match/internal/config"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
	"github.com/meliora-health/caregiver-match/pkg/core/strategy"
)

// thresholdsFromConfig maps the config distance bounds onto the scoring package
func thresholdsFromConfig(cfg *config.Config) scoring.Thresholds {
	return scoring.Thresholds{
		SoftKm: cfg.Thresholds.SoftKm,
		HardKm: cfg.Thresholds.HardKm,
	}
}

// strategyParamsFromConfig maps the config tuning knobs onto the strategy package
func strategyParamsFromConfig(cfg *config.Config, skipPrefilter bool) strategy.Params {
	return strategy.Params{
		Tabu: strategy.TabuParams{
			Iterations: cfg.Tabu.Iterations,
			ListSize:   cfg.Tabu.ListSize,
		},
		Annealing: strategy.AnnealingParams{
			InitialTemperature: cfg.Annealing.InitialTemperature,
			CoolingRate:        cfg.Annealing.CoolingRate,
			MinTemperature:     cfg.Annealing.MinTemperature,
			PatienceLevels:     cfg.Annealing.PatienceLevels,
		},
		SkipPrefilter: skipPrefilter,
	}
}

// newRand seeds a rand source; seed 0 means non-reproducible
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
