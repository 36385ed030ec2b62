package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meliora-health/caregiver-match/internal/config"
	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/scoring"
	"github.com/meliora-health/caregiver-match/pkg/core/strategy"
)

// AssignShiftsResult contains the outcome of one batch assignment run
type AssignShiftsResult struct {
	Policy   string
	Strategy string

	ShiftCount     int
	CaregiverCount int
	AssignedCount  int

	Shifts     []*model.Shift
	Assignment *model.Assignment
	Saved      bool
}

// AssignShiftsStore defines the database operations needed for batch assignment
type AssignShiftsStore interface {
	GetOpenShifts(ctx context.Context) ([]*model.Shift, error)
	GetCaregivers(ctx context.Context) ([]*model.Caregiver, error)
	SaveAssignments(ctx context.Context, byShift map[int]int) error
}

// AssignShifts runs the named strategy over all open shifts and writes the
// resulting caregiver assignments back to the database.
// If dryRun is true, assignments are not saved.
// If seed is non-zero, the randomized strategies are reproducible.
func AssignShifts(
	ctx context.Context,
	database AssignShiftsStore,
	cfg *config.Config,
	logger *zap.Logger,
	weights model.Weights,
	policyName string,
	strategyName string,
	seed int64,
	dryRun bool,
) (*AssignShiftsResult, error) {
	logger.Debug("Starting assignShifts",
		zap.String("policy", policyName),
		zap.String("strategy", strategyName),
		zap.Int64("seed", seed),
		zap.Bool("dry_run", dryRun))

	policy, err := scoring.PolicyFromName(policyName, thresholdsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	strat, err := strategy.FromName(strategyName, strategyParamsFromConfig(cfg, false), newRand(seed))
	if err != nil {
		return nil, err
	}

	// Step 1: DB query - Fetch open shifts
	logger.Debug("Fetching open shifts")
	shifts, err := database.GetOpenShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open shifts: %w", err)
	}
	logger.Debug("Found open shifts", zap.Int("count", len(shifts)))

	// Step 2: DB query - Fetch the caregiver pool
	logger.Debug("Fetching caregivers")
	caregivers, err := database.GetCaregivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch caregivers: %w", err)
	}
	logger.Debug("Found caregivers", zap.Int("count", len(caregivers)))

	// Step 3: Run the assignment strategy. Empty pools produce an empty
	// assignment rather than an error.
	logger.Info("Running assignment strategy",
		zap.String("policy", policy.Name()),
		zap.String("strategy", strat.Name()))
	assignment := strat.Assign(shifts, caregivers, weights, policy)

	logger.Info("Assignment completed",
		zap.Int("shifts", len(shifts)),
		zap.Int("assigned", assignment.AssignedCount()))

	// Mirror the outcome onto the shift records for display and writeback
	byShift := make(map[int]int)
	for _, shift := range shifts {
		if caregiverID := assignment.CaregiverFor(shift.ID); caregiverID != nil {
			shift.AssignedCaregiverID = caregiverID
			byShift[shift.ID] = *caregiverID
		}
	}

	saved := false
	if dryRun {
		logger.Info("Dry run mode - assignments not saved")
	} else if len(byShift) == 0 {
		logger.Info("Nothing to save - no shifts were assigned")
	} else {
		logger.Info("Saving assignments to database", zap.Int("count", len(byShift)))
		if err := database.SaveAssignments(ctx, byShift); err != nil {
			return nil, fmt.Errorf("failed to save assignments: %w", err)
		}
		saved = true
		logger.Info("Assignments saved", zap.Int("count", len(byShift)))
	}

	return &AssignShiftsResult{
		Policy:         policy.Name(),
		Strategy:       strat.Name(),
		ShiftCount:     len(shifts),
		CaregiverCount: len(caregivers),
		AssignedCount:  assignment.AssignedCount(),
		Shifts:         shifts,
		Assignment:     assignment,
		Saved:          saved,
	}, nil
}
