// Package config loads simulation run parameters from environment
// variables. Grounded on the teacher's cmd/worldsim/main.go, which reads
// ANTHROPIC_API_KEY / WEATHER_API_KEY / RANDOM_ORG_API_KEY /
// WORLDSIM_ADMIN_KEY directly via os.Getenv at the top of main — the same
// inlined-os.Getenv-with-defaults style is kept here, just collected into
// one loader function since this simulation has more knobs than the
// teacher's and no HTTP/LLM/weather keys to read (those collaborators were
// dropped; see SPEC_FULL.md §1 and DESIGN.md).
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds every environment-tunable parameter for a simulation run.
type Config struct {
	Seed           string
	StartWorldTime string
	TimeScale      float64
	LogDir         string
	CatchUp        bool
	CatchUpSpeed   float64
	BatchDays      int
	ForceSeed      bool
}

// Load reads Config from the environment, applying the same defaults the
// teacher hardcoded in main() (seed 42, etc.) where the spec leaves the
// value to the operator.
func Load() (Config, error) {
	cfg := Config{
		Seed:           getEnv("SIM_SEED", "42"),
		StartWorldTime: getEnv("SIM_START_WORLD_TIME", "0001-01-01T00:00:00"),
		TimeScale:      1.0,
		LogDir:         getEnv("SIM_LOG_DIR", "data"),
		CatchUp:        true,
		CatchUpSpeed:   100.0,
		BatchDays:      0,
	}

	if v := os.Getenv("SIM_TIME_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("config: SIM_TIME_SCALE: %w", err)
		}
		cfg.TimeScale = f
	}

	if v := os.Getenv("SIM_CATCH_UP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("config: SIM_CATCH_UP: %w", err)
		}
		cfg.CatchUp = b
	}

	if v := os.Getenv("SIM_CATCH_UP_SPEED"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("config: SIM_CATCH_UP_SPEED: %w", err)
		}
		cfg.CatchUpSpeed = f
	}

	if v := os.Getenv("SIM_BATCH_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("config: SIM_BATCH_DAYS: %w", err)
		}
		cfg.BatchDays = n
	}

	if v := os.Getenv("FORCE_SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("config: FORCE_SEED: %w", err)
		}
		cfg.ForceSeed = b
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
