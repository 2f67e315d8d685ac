// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the seatsim API server.

seatsim simulates the European Parliament: vote shares, turnout and
electorate per member state become votes, each constituency apportions
its seats under its own method and threshold, and the results are summed
per political group.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --admin-salt ...

Variables may also live in a .env file next to the binary.

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for the dataset admin key

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): connection string (default: file:seatsim.db)
  - DATASET_PATH (--dataset): YAML dataset seeding an empty store
  - SIM_WORKERS (-w): constituencies apportioned concurrently (default: 4)
  - CORS_ORIGINS (--origins): allowed origins (default: *)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - apportion: D'Hondt, Sainte-Laguë, modified Sainte-Laguë, largest remainder
  - election: vote table, constituency runner, aggregation
  - dataset: parties, rule table and baseline forecast (YAML)
  - handlers: HTTP request handlers (simulations, dataset)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - metrics: Prometheus instrumentation
  - auth: Admin key validation
  - db: Schema creation and dataset store
  - cliparse: Configuration parsing

The offline CLI lives in cmd/seatsim.

See package documentation for each component.
*/
package main
