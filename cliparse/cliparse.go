// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults
const (
	DefaultPort      = 3318
	DefaultSQLiteURL = "file:seatsim.db"
	DefaultWorkers   = 4
	DefaultEnvFile   = ".env"
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	AdminKeySalt   string
	DatasetPath    string
	Workers        int
	AllowedOrigins []string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, origins string

	flags := flag.NewFlagSet("seatsim", flag.ContinueOnError)

	flags.StringVar(&envFile, "env-file", DefaultEnvFile, "Dotenv file loaded before reading env (missing file is ignored)")

	// Network config (can be CLI args or env)
	flags.IntVar(&cfg.Port, "p", 0, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	flags.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	flags.StringVar(&origins, "origins", "", "Comma separated CORS origins")

	// Simulation
	flags.StringVar(&cfg.DatasetPath, "dataset", "", "YAML dataset seeding an empty store (default embedded EU 2024)")
	flags.IntVar(&cfg.Workers, "w", 0, "Constituencies apportioned concurrently")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := intFromEnv("PORT", DefaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	if cfg.DatasetPath == "" {
		cfg.DatasetPath = os.Getenv("DATASET_PATH")
	}

	if cfg.Workers == 0 {
		workers, err := intFromEnv("SIM_WORKERS", DefaultWorkers)
		if err != nil {
			return Config{}, err
		}
		cfg.Workers = workers
	}
	if cfg.Workers < 1 {
		return Config{}, errors.New("workers must be at least 1")
	}

	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}
	if origins == "" {
		origins = "*"
	}
	cfg.AllowedOrigins = splitList(origins)

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	return cfg, nil
}

// loadEnvFile loads a dotenv file without overriding variables already set.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func intFromEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
