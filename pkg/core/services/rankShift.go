// Package services orchestrates the matching engine behind the CLI: each
// service fetches what it needs through a narrow store interface, runs the
// core scoring or assignment code, and reports the outcome.
package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meliora-health/caregiver-match/internal/config"
	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
)

// RankShiftResult contains the ranked caregivers for one shift
type RankShiftResult struct {
	Shift   *model.Shift
	Policy  string
	Results []model.FitResult
}

// RankShiftStore defines the database operations needed for ranking a shift
type RankShiftStore interface {
	GetShift(ctx context.Context, shiftID int) (*model.Shift, error)
	GetCaregivers(ctx context.Context) ([]*model.Caregiver, error)
}

// RankShift scores every caregiver against one shift under the named policy
// and returns them sorted best-first with percentage-of-best scores
func RankShift(
	ctx context.Context,
	database RankShiftStore,
	cfg *config.Config,
	logger *zap.Logger,
	shiftID int,
	weights model.Weights,
	policyName string,
) (*RankShiftResult, error) {
	logger.Debug("Starting rankShift",
		zap.Int("shift_id", shiftID),
		zap.String("policy", policyName))

	policy, err := scoring.PolicyFromName(policyName, thresholdsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	// Step 1: DB query - Fetch the shift with its work site
	logger.Debug("Fetching shift")
	shift, err := database.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift: %w", err)
	}
	logger.Debug("Found shift",
		zap.Time("starts_at", shift.StartsAt),
		zap.Ints("required_skills", shift.RequiredSkills))

	// Step 2: DB query - Fetch the caregiver pool
	logger.Debug("Fetching caregivers")
	caregivers, err := database.GetCaregivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch caregivers: %w", err)
	}
	logger.Debug("Found caregivers", zap.Int("count", len(caregivers)))

	// Step 3: Score and rank
	results := scoring.RankCaregivers(policy, shift, caregivers, weights, false)

	logger.Info("Ranked caregivers for shift",
		zap.Int("shift_id", shiftID),
		zap.String("policy", policy.Name()),
		zap.Int("candidates", len(results)))

	return &RankShiftResult{
		Shift:   shift,
		Policy:  policy.Name(),
		Results: results,
	}, nil
}
