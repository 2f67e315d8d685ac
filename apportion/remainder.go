// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import (
	"math"
	"sort"
)

// RemainderBreakdown shows how LargestRemainder reached its result.
type RemainderBreakdown struct {
	Quota      float64
	Base       map[string]int
	Remainders map[string]float64
	// Extra is the number of seats handed out by remainder.
	Extra int
}

// LargestRemainder allocates seats by quota, then hands the leftover
// seats to the parties with the largest remainders. A nil quota means Hare.
func LargestRemainder(t Tally, seats int, quota QuotaFunc) Allocation {
	allocation, _ := largestRemainder(t, seats, quota)
	return allocation
}

// LargestRemainderBreakdown is LargestRemainder with its intermediate values.
func LargestRemainderBreakdown(t Tally, seats int, quota QuotaFunc) (Allocation, RemainderBreakdown) {
	return largestRemainder(t, seats, quota)
}

func largestRemainder(t Tally, seats int, quota QuotaFunc) (Allocation, RemainderBreakdown) {
	var breakdown RemainderBreakdown

	total := t.Total()
	if seats <= 0 || len(t) == 0 || total <= 0 {
		return Allocation{}, breakdown
	}
	if quota == nil {
		quota = HareQuota
	}

	q := quota(total, seats)
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return Allocation{}, breakdown
	}

	type remainder struct {
		index int
		value float64
	}

	base := make([]int, len(t))
	remainders := make([]remainder, len(t))
	assigned := 0
	for i, pv := range t {
		mod := math.Mod(pv.Votes, q)
		base[i] = int(math.Round((pv.Votes - mod) / q))
		remainders[i] = remainder{index: i, value: mod}
		assigned += base[i]
	}

	breakdown.Quota = q
	breakdown.Base = make(map[string]int, len(t))
	breakdown.Remainders = make(map[string]float64, len(t))
	for i, pv := range t {
		breakdown.Base[pv.Party] = base[i]
		breakdown.Remainders[pv.Party] = remainders[i].value
	}

	// Stable so that equal remainders favour the earlier party.
	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].value > remainders[j].value
	})

	extra := seats - assigned
	if extra < 0 {
		extra = 0
	}
	breakdown.Extra = extra

	// With Hare extra < len(t) always holds; small totals under other
	// quotas can need more than one pass.
	for k := 0; k < extra; k++ {
		base[remainders[k%len(remainders)].index]++
	}

	allocation := make(Allocation)
	for i, pv := range t {
		if base[i] > 0 {
			allocation[pv.Party] += base[i]
		}
	}
	return allocation, breakdown
}
