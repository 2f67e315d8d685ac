// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

  - SimulationRequest: shares (constituency → party → share), turnout,
    electorate, workers. All maps override the stored baseline.

Percentages and counts accept either JSON numbers or strings:

	{"shares": {"Germany": {"EPP": "31 %"}}, "turnout": {"Germany": 65}}

# Response Types

  - SimulationResponse: id, dataset, total_seats, disproportionality,
    groups, seats, votes, warnings
  - Party, Constituency: the stored reference dataset
  - ReplaceDatasetResponse: summary of a replaced dataset
  - ErrorResponse: error, message, warnings

# Warning Kinds

	WarningDataIntegrity     = "data_integrity"
	WarningInvalidPercentage = "invalid_percentage"
*/
package models
