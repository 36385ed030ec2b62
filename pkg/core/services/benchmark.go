package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meliora-health/caregiver-match/internal/config"
	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
	"github.com/meliora-health/caregiver-match/pkg/core/stats"
	"github.com/meliora-health/caregiver-match/pkg/core/strategy"
	"github.com/meliora-health/caregiver-match/pkg/core/workload"
)

// Benchmark runs the named policy/strategy combination over a synthetic
// population and reports aggregate match quality and runtime. Shift days are
// expanded from the benchmark recurrence rule in the config; the skill
// prefilter is disabled so every pairing is scored.
func Benchmark(
	cfg *config.Config,
	logger *zap.Logger,
	weights model.Weights,
	policyName string,
	strategyName string,
	seed int64,
) (*stats.Report, error) {
	logger.Debug("Starting benchmark",
		zap.String("policy", policyName),
		zap.String("strategy", strategyName),
		zap.Int("shift_count", cfg.Benchmark.ShiftCount),
		zap.Int("caregiver_count", cfg.Benchmark.CaregiverCount),
		zap.Int64("seed", seed))

	policy, err := scoring.PolicyFromName(policyName, thresholdsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	strat, err := strategy.FromName(strategyName, strategyParamsFromConfig(cfg, true), newRand(seed))
	if err != nil {
		return nil, err
	}

	anchor := time.Now().Truncate(24 * time.Hour)
	shiftDays, err := workload.DaysFromRRule(cfg.Benchmark.RRule, anchor, cfg.Benchmark.DayLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to expand benchmark shift days: %w", err)
	}
	logger.Debug("Expanded benchmark shift days", zap.Int("count", len(shiftDays)))

	logger.Info("Running benchmark",
		zap.String("policy", policy.Name()),
		zap.String("strategy", strat.Name()))

	report := stats.Run(stats.Params{
		ShiftCount:     cfg.Benchmark.ShiftCount,
		CaregiverCount: cfg.Benchmark.CaregiverCount,
		ShiftDays:      shiftDays,
		Weights:        weights,
		Policy:         policy,
		Strategy:       strat,
		Rand:           newRand(seed),
	})

	logger.Info("Benchmark completed",
		zap.String("run_id", report.RunID),
		zap.Int64("runtime_ms", report.RuntimeMs),
		zap.Int("assigned", report.AssignedCount))

	return report, nil
}
