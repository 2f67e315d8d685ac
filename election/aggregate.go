// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/danielhkuo/seatsim/dataset"
)

// Aggregate sums seats per party across constituencies. Category and
// colour come from parties; a party missing there lands in category 0.
// Groups are ordered by category descending, then name.
//
// Every constituency in the seat table must hold exactly the seats its
// rule assigns, otherwise ErrSeatMismatch is returned.
func Aggregate(seats []SeatRow, rules []ConstituencyRule, parties []dataset.Party) ([]GroupSeats, error) {
	if err := checkSeats(seats, rules); err != nil {
		return nil, err
	}

	info := make(map[string]dataset.Party, len(parties))
	for _, p := range parties {
		info[p.Name] = p
	}

	totals := make(map[string]int)
	var order []string
	for _, row := range seats {
		if _, seen := totals[row.Party]; !seen {
			order = append(order, row.Party)
		}
		totals[row.Party] += row.Seats
	}

	groups := make([]GroupSeats, 0, len(order))
	total := 0
	for _, party := range order {
		p := info[party]
		groups = append(groups, GroupSeats{
			Party:    party,
			Category: p.Category,
			Color:    p.Color,
			Seats:    totals[party],
		})
		total += totals[party]
	}

	if total == 0 {
		return nil, ErrZeroTotalSeats
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Category != groups[j].Category {
			return groups[i].Category > groups[j].Category
		}
		return groups[i].Party < groups[j].Party
	})

	return groups, nil
}

// checkSeats compares the seats of each apportioned constituency with its rule.
func checkSeats(seats []SeatRow, rules []ConstituencyRule) error {
	want := make(map[string]int, len(rules))
	for _, cr := range rules {
		want[cr.Constituency] = cr.Rule.Seats
	}

	got := make(map[string]int)
	for _, row := range seats {
		if row.Seats < 0 {
			return fmt.Errorf("%w: %s has %d seats for %s", ErrSeatMismatch, row.Constituency, row.Seats, row.Party)
		}
		got[row.Constituency] += row.Seats
	}

	for _, name := range sortedKeys(got) {
		n, ok := want[name]
		if !ok {
			return fmt.Errorf("%w: %s is not in the rule table", ErrSeatMismatch, name)
		}
		if got[name] != n {
			return fmt.Errorf("%w: %s allocated %d of %d seats", ErrSeatMismatch, name, got[name], n)
		}
	}
	return nil
}

// Disproportionality is the Gallagher least-squares index, in percentage
// points, between each party's national vote share and seat share.
// 0 means seats match votes exactly. Returns 0 when there are no votes
// or no seats.
func Disproportionality(votes []VoteRow, seats []SeatRow) float64 {
	voteTotals := make(map[string]float64)
	seatTotals := make(map[string]float64)
	var parties []string
	add := func(party string) {
		if _, ok := voteTotals[party]; !ok {
			if _, ok := seatTotals[party]; !ok {
				parties = append(parties, party)
			}
		}
	}
	for _, row := range votes {
		add(row.Party)
		voteTotals[row.Party] += row.Votes
	}
	for _, row := range seats {
		add(row.Party)
		seatTotals[row.Party] += float64(row.Seats)
	}

	v := make([]float64, len(parties))
	s := make([]float64, len(parties))
	for i, p := range parties {
		v[i] = voteTotals[p]
		s[i] = seatTotals[p]
	}

	vSum, sSum := floats.Sum(v), floats.Sum(s)
	if vSum <= 0 || sSum <= 0 {
		return 0
	}
	floats.Scale(100/vSum, v)
	floats.Scale(100/sSum, s)

	diff := make([]float64, len(parties))
	floats.SubTo(diff, v, s)
	return floats.Norm(diff, 2) / math.Sqrt2
}
