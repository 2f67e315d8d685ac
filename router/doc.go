// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the seatsim API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	reg := prometheus.NewRegistry()
	mux := router.NewRouter(store, cfg, reg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Reference data (public):

	GET /parties        - Parties with category and colour
	GET /constituencies - Rule table with baseline turnout and electorate
	GET /dataset        - Full dataset

Dataset administration (requires X-Admin-Key):

	PUT /dataset - Replace the stored baseline

Simulations (public, nothing is stored):

	POST /simulations          - Run with overrides
	GET  /simulations/baseline - Run the stored baseline

# Handler Initialization

The router creates handler instances with dependency injection:

	simulationHandler := handlers.NewSimulationHandler(store, cfg, m)
	datasetHandler := handlers.NewDatasetHandler(store, cfg, m)

Both share the store, the configuration and one metrics.Metrics
registered on reg.
*/
package router
