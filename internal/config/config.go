package config

import (
	"os"
	"strconv"

	"numcmp/internal/errors"
)

// Config represents the complete application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Simulation SimulationConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    string
	UIPort  string
	GinMode string
}

// DatabaseConfig holds the optional run-ledger connection settings. The
// ledger is disabled when no URL is configured.
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// SimulationConfig holds bootstrap engine defaults.
type SimulationConfig struct {
	Iterations   int
	Seed         int64
	Workers      int
	StrictChecks bool
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    envOr("PORT", "8080"),
			UIPort:  envOr("UI_PORT", "8081"),
			GinMode: envOr("GIN_MODE", "release"),
		},
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database = DatabaseConfig{URL: url, Enabled: true}
	}

	sim, err := loadSimulationConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load simulation configuration")
	}
	cfg.Simulation = *sim

	return cfg, nil
}

func loadSimulationConfig() (*SimulationConfig, error) {
	sim := &SimulationConfig{
		Iterations:   10000,
		Seed:         42,
		Workers:      4,
		StrictChecks: os.Getenv("NUMCMP_STRICT_CHECKS") == "true",
	}

	if v := os.Getenv("NUMCMP_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, errors.ConfigInvalid("NUMCMP_ITERATIONS must be a positive integer")
		}
		sim.Iterations = n
	}

	if v := os.Getenv("NUMCMP_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("NUMCMP_SEED must be an integer")
		}
		sim.Seed = n
	}

	if v := os.Getenv("NUMCMP_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, errors.ConfigInvalid("NUMCMP_WORKERS must be a positive integer")
		}
		sim.Workers = n
	}

	return sim, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
