// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dataset holds the static configuration a simulation runs on.

A Dataset lists the parties (political groups) with their reporting
category and chart colour, and the constituencies with their
apportionment rule and baseline forecast: turnout, electorate size and
per-party vote share. Percentages and counts are kept as the strings
they were written as; the election package parses them leniently.

# Loading

	ds, err := dataset.LoadFile("forecast.yaml")
	ds := dataset.Default() // embedded EU 2024 baseline

Load validates struct tags (go-playground/validator) and then the
cross references: unique names, shares that name known parties, and a
dispatchable apportionment rule per constituency.

# Format

	name: eu-2024-baseline
	parties:
	  - name: EPP
	    category: 8
	    color: "#00008B"
	constituencies:
	  - name: Austria
	    method: dhondt
	    seats: 20
	    threshold: 0.04
	    turnout: "60 %"
	    electorate: "7400000"
	    shares:
	      EPP: "35 %"

A constituency without a shares block has no vote data; the runner
reports it and skips it.
*/
package dataset
