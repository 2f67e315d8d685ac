// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string (default: file:seatsim.db for sqlite)
  - DatabaseType: sqlite (default) or postgres
  - AdminKeySalt: Secret for admin key HMAC (required)
  - DatasetPath: YAML dataset seeding an empty store (default: embedded)
  - Workers: constituencies apportioned concurrently (default: 4)
  - AllowedOrigins: CORS origins (default: *)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-w            Simulation workers
	--dataset     Dataset YAML path
	--origins     Comma separated CORS origins
	--admin-salt  Admin key salt
	--env-file    Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SIM_WORKERS    → -w
	DATASET_PATH   → --dataset
	CORS_ORIGINS   → --origins
	ADMIN_KEY_SALT → --admin-salt

CLI flags take precedence over environment variables, and environment
variables over the .env file (loaded with github.com/joho/godotenv).

# Validation

ParseFlags returns an error if:

  - ADMIN_KEY_SALT is missing
  - DATABASE_TYPE is neither sqlite nor postgres
  - DATABASE_URL is missing for postgres
  - PORT or SIM_WORKERS is not a number, or workers < 1

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(store, cfg, metrics.New(reg), reg)
*/
package cliparse
