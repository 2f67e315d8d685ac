// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apportion converts vote tallies into integer seat counts.

# Tallies

A Tally is an ordered list of party vote counts for one constituency.
The order matters: whenever two quotients or remainders are exactly
equal, the party that appears first in the tally wins the seat.

	t := apportion.Tally{
		{Party: "EPP", Votes: 1000},
		{Party: "S&D", Votes: 600},
	}

# Methods

Four methods are supported:

  - DHondt: divisors 1, 2, 3, ...
  - SainteLague: divisors 1, 3, 5, ...
  - ModifiedSainteLague: divisors 1.4, 3, 5, ...
  - LargestRemainder: quota division (Hare by default) plus leftover
    seats by largest remainder

Method is a small tagged value that selects one of them:

	m := apportion.Method{Kind: apportion.KindLargestRemainder, Quota: apportion.QuotaHare}
	seats := m.Allocate(t, 10)

# Rules

A Rule bundles a method with a seat count and an exclusion threshold.
Rule.Apply filters the tally first, so parties below the threshold
neither win seats nor count towards divisor or quota totals:

	r := apportion.Rule{Method: m, Seats: 10, Threshold: 0.05}
	seats := r.Apply(t)

Every method returns an Allocation whose seats sum to exactly the
requested seat count, or an empty Allocation when nothing is left to
apportion.
*/
package apportion
