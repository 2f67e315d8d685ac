// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import "sort"

// quotient is one candidate seat in a divisor method.
type quotient struct {
	value float64
	party string
}

// DHondt allocates seats using the divisors 1, 2, 3, ...
func DHondt(t Tally, seats int) Allocation {
	if seats <= 0 || len(t) == 0 {
		return Allocation{}
	}

	quotients := make([]quotient, 0, len(t)*seats)
	for _, pv := range t {
		for i := 1; i <= seats; i++ {
			quotients = append(quotients, quotient{value: pv.Votes / float64(i), party: pv.Party})
		}
	}

	return topQuotients(quotients, seats)
}

// SainteLague allocates seats using the divisors 1, 3, 5, ...
func SainteLague(t Tally, seats int) Allocation {
	if seats <= 0 || len(t) == 0 {
		return Allocation{}
	}

	quotients := make([]quotient, 0, len(t)*seats)
	for _, pv := range t {
		for i := 0; i < seats; i++ {
			quotients = append(quotients, quotient{value: pv.Votes / float64(2*i+1), party: pv.Party})
		}
	}

	return topQuotients(quotients, seats)
}

// modifiedFirstDivisor raises the bar for a party's first seat.
const modifiedFirstDivisor = 1.4

// ModifiedSainteLague allocates seats using the divisors 1.4, 3, 5, ...
//
// All first-seat quotients are listed ahead of the later ones, so on an
// exact tie a party's first seat beats another party's later seat.
func ModifiedSainteLague(t Tally, seats int) Allocation {
	if seats <= 0 || len(t) == 0 {
		return Allocation{}
	}

	quotients := make([]quotient, 0, len(t)*seats)
	for _, pv := range t {
		quotients = append(quotients, quotient{value: pv.Votes / modifiedFirstDivisor, party: pv.Party})
	}
	for _, pv := range t {
		for i := 1; i < seats; i++ {
			quotients = append(quotients, quotient{value: pv.Votes / float64(2*i+1), party: pv.Party})
		}
	}

	return topQuotients(quotients, seats)
}

// topQuotients awards one seat per quotient among the largest `seats` values.
// The sort must be stable: equal quotients keep their listing order.
func topQuotients(quotients []quotient, seats int) Allocation {
	sort.SliceStable(quotients, func(i, j int) bool {
		return quotients[i].value > quotients[j].value
	})

	if seats > len(quotients) {
		seats = len(quotients)
	}

	allocation := make(Allocation)
	for _, q := range quotients[:seats] {
		allocation[q.party]++
	}
	return allocation
}
