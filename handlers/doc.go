// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the seatsim API.

# Handler Types

Each handler is a struct with store, config and metrics dependencies:

  - SimulationHandler: run simulations against the stored baseline
  - DatasetHandler: read reference data, replace the dataset

Handlers are created via constructor functions:

	simulationHandler := handlers.NewSimulationHandler(store, cfg, m)

# Simulations

	POST /simulations          → RunSimulation (overrides in body)
	GET  /simulations/baseline → GetBaseline

The body overrides vote shares per constituency and party, turnout and
electorate per constituency. Values may be numbers or strings such as
"31 %". Local problems (unknown names, malformed percentages, missing
vote data) come back as warnings next to the tables. A run that allocates
no seat at all returns 422 with the warnings. Nothing is persisted.

# Reference Data

	GET /parties        → GetParties
	GET /constituencies → GetConstituencies
	GET /dataset        → GetDataset
	PUT /dataset        → ReplaceDataset

ReplaceDataset requires the X-Admin-Key header and rejects unknown fields
and datasets that fail validation.

# Status Codes

	400 invalid JSON or failed validation
	401 invalid admin key
	422 zero total seats
	503 no dataset stored yet
	500 anything else
*/
package handlers
