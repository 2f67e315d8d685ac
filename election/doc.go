// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election runs a seat simulation over a dataset.

# Pipeline

	shares × turnout × electorate → vote table
	vote table → per-constituency tally → threshold → method → seat table
	seat table → group totals

Simulate runs all three steps:

	res, err := election.Simulate(ctx, dataset.Default(), election.Inputs{
		Turnout: map[string]string{"Germany": "65 %"},
	}, election.Options{Workers: 4})

# Failure modes

Bad data never aborts a run. Each problem becomes a Warning:

  - data_integrity: a constituency in the rule table has no vote rows
    (it is skipped), or an override names an unknown party or constituency
  - invalid_percentage: a share, turnout or electorate value does not
    parse; it counts as zero

The one terminal condition is ErrZeroTotalSeats, returned when no seats
were allocated anywhere. Simulate still returns the vote and seat
tables alongside it.

# Concurrency

Constituencies are independent. Runner evaluates them on a bounded
errgroup and writes each result into its own slot, so output order
follows the rule table regardless of Workers.
*/
package election
