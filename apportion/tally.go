// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

// PartyVotes is a single party's vote count in one constituency.
type PartyVotes struct {
	Party string  `json:"party"`
	Votes float64 `json:"votes"`
}

// Tally holds the votes of one constituency in tie-break order.
type Tally []PartyVotes

// Total returns the sum of all votes in the tally.
func (t Tally) Total() float64 {
	total := 0.0
	for _, pv := range t {
		total += pv.Votes
	}
	return total
}

// Allocation maps a party to the seats it won. Parties without seats are absent.
type Allocation map[string]int

// Total returns the number of seats allocated.
func (a Allocation) Total() int {
	total := 0
	for _, seats := range a {
		total += seats
	}
	return total
}
