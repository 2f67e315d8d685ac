// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

// FilterThreshold keeps the parties whose share of the total is at least
// threshold. Order is preserved. A tally with no votes filters to empty.
//
// Filtering twice at the same threshold returns the same tally: removing
// parties only raises the shares of those that remain.
func FilterThreshold(t Tally, threshold float64) Tally {
	total := t.Total()
	if total <= 0 {
		return Tally{}
	}

	filtered := make(Tally, 0, len(t))
	for _, pv := range t {
		if pv.Votes/total >= threshold {
			filtered = append(filtered, pv)
		}
	}
	return filtered
}
