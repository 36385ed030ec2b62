package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meliora-health/caregiver-match/internal/config"
	"github.com/meliora-health/caregiver-match/pkg/core/model"
	"github.com/meliora-health/caregiver-match/pkg/core/services"
	"github.com/meliora-health/caregiver-match/pkg/postgres"
	"github.com/meliora-health/caregiver-match/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	configPath     string
	nightWeight    float64
	weekendWeight  float64
	distanceWeight float64
	app            *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Caregiver Match CLI - Match caregivers to patient shifts",
		Long:  `A CLI tool for ranking caregivers against shifts, running batch assignment strategies, and benchmarking them on synthetic populations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to caregiver_match_config.yaml)")
	rootCmd.PersistentFlags().Float64Var(&nightWeight, "night-weight", 1, "Night shift preference weight (0-5)")
	rootCmd.PersistentFlags().Float64Var(&weekendWeight, "weekend-weight", 1, "Weekend shift preference weight (0-5)")
	rootCmd.PersistentFlags().Float64Var(&distanceWeight, "distance-weight", 1, "Distance penalty weight (0-5)")

	rootCmd.AddCommand(rankShiftCmd())
	rootCmd.AddCommand(assignShiftsCmd())
	rootCmd.AddCommand(benchmarkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger and config; the database is connected on first use
// so commands that never touch it (benchmark) work without one
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger("cli")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Loading configuration")
	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	return nil
}

// db connects to the database on first use
func (a *App) db() (*postgres.DB, error) {
	if a.database != nil {
		return a.database, nil
	}

	a.logger.Info("Connecting to database")
	database, err := postgres.NewDB(a.ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.logger.Debug("Database connection established")

	a.database = database
	return database, nil
}

// weightsFromFlags validates the weight flags against the accepted range
func weightsFromFlags() (model.Weights, error) {
	weights := model.Weights{
		Night:    nightWeight,
		Weekend:  weekendWeight,
		Distance: distanceWeight,
	}

	for name, value := range map[string]float64{
		"night-weight":    weights.Night,
		"weekend-weight":  weights.Weekend,
		"distance-weight": weights.Distance,
	} {
		if value < 0 || value > 5 {
			return model.Weights{}, fmt.Errorf("--%s must be between 0 and 5, got %g", name, value)
		}
	}

	return weights, nil
}

// Command definitions

func rankShiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rankShift <shift_id>",
		Short: "Rank all caregivers against a shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("shift_id must be a number: %w", err)
			}

			weights, err := weightsFromFlags()
			if err != nil {
				return err
			}

			policy, _ := cmd.Flags().GetString("policy")

			database, err := app.db()
			if err != nil {
				return err
			}

			result, err := services.RankShift(app.ctx, database, app.cfg, app.logger, shiftID, weights, policy)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\nShift %d (%s policy): %d candidates\n\n",
				result.Shift.ID, result.Policy, len(result.Results))
			fmt.Printf("%-6s %-20s %8s %7s %9s  %s\n",
				"Rank", "Caregiver", "Score", "Pct", "Dist(km)", "Flags")
			for i, fit := range result.Results {
				fmt.Printf("%-6d %-20s %8.1f %6.1f%% %9.1f  %s\n",
					i+1, fit.CaregiverName, fit.Score, fit.Percentage, fit.DistanceKm, fitFlags(fit))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("policy", "WSM", "Scoring policy (WSM, GREEDY, TOPSIS, RANDOM)")

	return cmd
}

func assignShiftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignShifts",
		Short: "Assign caregivers to all open shifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, err := weightsFromFlags()
			if err != nil {
				return err
			}

			policy, _ := cmd.Flags().GetString("policy")
			strategyName, _ := cmd.Flags().GetString("strategy")
			seed, _ := cmd.Flags().GetInt64("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			database, err := app.db()
			if err != nil {
				return err
			}

			result, err := services.AssignShifts(app.ctx, database, app.cfg, app.logger,
				weights, policy, strategyName, seed, dryRun)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Assignment completed (%s policy, %s strategy)\n\n",
				result.Policy, result.Strategy)
			fmt.Printf("Open shifts:  %d\n", result.ShiftCount)
			fmt.Printf("Caregivers:   %d\n", result.CaregiverCount)
			fmt.Printf("Assigned:     %d\n\n", result.AssignedCount)

			for _, shift := range result.Shifts {
				if shift.AssignedCaregiverID != nil {
					fmt.Printf("  shift %-5d → caregiver %d\n", shift.ID, *shift.AssignedCaregiverID)
				} else {
					fmt.Printf("  shift %-5d → (unassigned)\n", shift.ID)
				}
			}
			fmt.Println()

			if dryRun {
				fmt.Println("Dry run mode - assignments were not saved.")
			} else if !result.Saved {
				fmt.Println("Nothing was saved.")
			}

			return nil
		},
	}

	cmd.Flags().String("policy", "WSM", "Scoring policy (WSM, GREEDY, TOPSIS, RANDOM)")
	cmd.Flags().String("strategy", "SERIAL", "Assignment strategy (SERIAL, KNAPSACK, TABU, SIMULATED_ANNEALING)")
	cmd.Flags().Int64("seed", 0, "Seed for the randomized strategies (0 = non-reproducible)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}

func benchmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Benchmark a policy/strategy pair on a synthetic population",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, err := weightsFromFlags()
			if err != nil {
				return err
			}

			policy, _ := cmd.Flags().GetString("policy")
			strategyName, _ := cmd.Flags().GetString("strategy")
			seed, _ := cmd.Flags().GetInt64("seed")

			report, err := services.Benchmark(app.cfg, app.logger, weights, policy, strategyName, seed)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Benchmark completed\n\n")
			fmt.Printf("Run ID:      %s\n", report.RunID)
			fmt.Printf("Policy:      %s\n", report.Policy)
			fmt.Printf("Strategy:    %s\n", report.Strategy)
			fmt.Printf("Shifts:      %d\n", report.ShiftCount)
			fmt.Printf("Caregivers:  %d\n", report.CaregiverCount)
			fmt.Printf("Assigned:    %d\n", report.AssignedCount)
			fmt.Printf("Runtime:     %d ms\n\n", report.RuntimeMs)
			fmt.Printf("Meets all needs:   %5.1f%%\n", report.PercentageOfMeetsAllNeeds)
			fmt.Printf("Meets some needs:  %5.1f%%\n", report.PercentageOfMeetsSomeNeeds)
			fmt.Printf("Night match:       %5.1f%%\n", report.PercentageOfMatchesNight)
			fmt.Printf("Weekend match:     %5.1f%%\n", report.PercentageOfMatchesWeekend)
			fmt.Printf("Both match:        %5.1f%%\n\n", report.PercentageOfMatchesBoth)

			return nil
		},
	}

	cmd.Flags().String("policy", "WSM", "Scoring policy (WSM, GREEDY, TOPSIS, RANDOM)")
	cmd.Flags().String("strategy", "SERIAL", "Assignment strategy (SERIAL, KNAPSACK, TABU, SIMULATED_ANNEALING)")
	cmd.Flags().Int64("seed", 0, "Seed for population generation and the randomized strategies")

	return cmd
}

// fitFlags renders the boolean fit indicators as a compact string
func fitFlags(fit model.FitResult) string {
	flags := ""
	if fit.MeetsAllNeeds {
		flags += "all-needs "
	} else if fit.MeetsSomeNeeds {
		flags += "some-needs "
	}
	if fit.OptimalDistance {
		flags += "optimal "
	}
	if fit.OutOfBounds {
		flags += "out-of-bounds "
	}
	return flags
}
