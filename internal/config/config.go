// Package config loads every solver tunable from the environment, with
// defaults matching the spec's recommended values, the same
// Load()/Default pattern the rest of the solver's sub-components use for
// their own Config types.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/ga"
	"github.com/routeforge/hgsvrp/internal/localsearch"
	"github.com/routeforge/hgsvrp/internal/neighbours"
	"github.com/routeforge/hgsvrp/internal/population"
)

// Config bundles every sub-component's tuning plus top-level run
// parameters (seed, stopping bounds).
type Config struct {
	Seed              int64
	MaxIterations     int
	MaxRuntime        time.Duration
	NoImprovementIters int
	LogLevel          string
	LogFormat         string

	GA         ga.Config
	Population population.Config
	LocalSearch localsearch.Config
	Neighbours  neighbours.Config
	CostEval    costeval.Config
}

// Default returns the full default configuration.
func Default() Config {
	return Config{
		Seed:               1,
		MaxIterations:      20000,
		MaxRuntime:         5 * time.Minute,
		NoImprovementIters: 20000,
		LogLevel:           "info",
		LogFormat:          "json",

		GA:          ga.DefaultConfig(),
		Population:  population.DefaultConfig(),
		LocalSearch: localsearch.DefaultConfig(),
		Neighbours:  neighbours.DefaultConfig(),
		CostEval:    costeval.DefaultConfig(),
	}
}

// Load reads an optional .env file (if present, errors are ignored the
// same way the CLI tolerates a missing file) then overlays environment
// variable overrides onto the defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	cfg.Seed = getEnvInt64("HGSVRP_SEED", cfg.Seed)
	cfg.MaxIterations = getEnvInt("HGSVRP_MAX_ITERATIONS", cfg.MaxIterations)
	cfg.MaxRuntime = getEnvDuration("HGSVRP_MAX_RUNTIME", cfg.MaxRuntime)
	cfg.NoImprovementIters = getEnvInt("HGSVRP_NO_IMPROVEMENT_ITERS", cfg.NoImprovementIters)
	cfg.LogLevel = getEnv("HGSVRP_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("HGSVRP_LOG_FORMAT", cfg.LogFormat)

	cfg.GA.Seed = cfg.Seed
	cfg.GA.RestartThreshold = getEnvInt("HGSVRP_RESTART_THRESHOLD", cfg.GA.RestartThreshold)
	cfg.Population.MuMin = getEnvInt("HGSVRP_MU_MIN", cfg.Population.MuMin)
	cfg.Population.MuGen = getEnvInt("HGSVRP_MU_GEN", cfg.Population.MuGen)
	cfg.Neighbours.K = getEnvInt("HGSVRP_NEIGHBOURHOOD_K", cfg.Neighbours.K)
	cfg.CostEval.Target = getEnvFloat("HGSVRP_PENALTY_TARGET", cfg.CostEval.Target)
	cfg.CostEval.Rate = getEnvFloat("HGSVRP_PENALTY_RATE", cfg.CostEval.Rate)

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
