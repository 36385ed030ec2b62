package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Thresholds are the distance bounds used by every scoring policy
type Thresholds struct {
	SoftKm float64 `yaml:"softKm" validate:"required,gt=0"`
	HardKm float64 `yaml:"hardKm" validate:"required,gtfield=SoftKm"`
}

// TabuConfig tunes the tabu search strategy
type TabuConfig struct {
	Iterations int `yaml:"iterations" validate:"omitempty,min=1"`
	ListSize   int `yaml:"listSize" validate:"omitempty,min=1"`
}

// AnnealingConfig tunes the simulated annealing strategy
type AnnealingConfig struct {
	InitialTemperature float64 `yaml:"initialTemperature" validate:"omitempty,gt=0"`
	CoolingRate        float64 `yaml:"coolingRate" validate:"omitempty,gt=0,lt=1"`
	MinTemperature     float64 `yaml:"minTemperature" validate:"omitempty,gt=0"`
	PatienceLevels     int     `yaml:"patienceLevels" validate:"omitempty,min=1"`
}

// BenchmarkConfig controls the synthetic population used by the benchmark
// command. The shift days are expanded from the recurrence rule.
type BenchmarkConfig struct {
	RRule          string `yaml:"rrule" validate:"required"`
	DayLimit       int    `yaml:"dayLimit" validate:"omitempty,min=1"`
	ShiftCount     int    `yaml:"shiftCount" validate:"omitempty,min=1"`
	CaregiverCount int    `yaml:"caregiverCount" validate:"omitempty,min=1"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string          `yaml:"databaseURL" validate:"required"`
	Thresholds  Thresholds      `yaml:"thresholds"`
	Tabu        TabuConfig      `yaml:"tabu,omitempty"`
	Annealing   AnnealingConfig `yaml:"annealing,omitempty"`
	Benchmark   BenchmarkConfig `yaml:"benchmark"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from caregiver_match_config.yaml
// It looks for the config file in the current directory first, then in the
// user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := rrule.StrToRRule(cfg.Benchmark.RRule); err != nil {
		return fmt.Errorf("invalid rrule in benchmark config: %w", err)
	}

	return nil
}

// applyDefaults fills in tuning knobs the config file leaves unset
func applyDefaults(cfg *Config) {
	if cfg.Thresholds.SoftKm == 0 {
		cfg.Thresholds.SoftKm = 5
	}
	if cfg.Thresholds.HardKm == 0 {
		cfg.Thresholds.HardKm = 15
	}
	if cfg.Tabu.Iterations == 0 {
		cfg.Tabu.Iterations = 100
	}
	if cfg.Tabu.ListSize == 0 {
		cfg.Tabu.ListSize = 12
	}
	if cfg.Annealing.InitialTemperature == 0 {
		cfg.Annealing.InitialTemperature = 100.0
	}
	if cfg.Annealing.CoolingRate == 0 {
		cfg.Annealing.CoolingRate = 0.97
	}
	if cfg.Annealing.MinTemperature == 0 {
		cfg.Annealing.MinTemperature = 0.01
	}
	if cfg.Annealing.PatienceLevels == 0 {
		cfg.Annealing.PatienceLevels = 3
	}
	if cfg.Benchmark.DayLimit == 0 {
		cfg.Benchmark.DayLimit = 14
	}
	if cfg.Benchmark.ShiftCount == 0 {
		cfg.Benchmark.ShiftCount = 200
	}
	if cfg.Benchmark.CaregiverCount == 0 {
		cfg.Benchmark.CaregiverCount = 250
	}
}

// findConfigFile searches for caregiver_match_config.yaml in current
// directory and home directory
func findConfigFile() (string, error) {
	configFileName := "caregiver_match_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
