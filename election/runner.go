// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/seatsim/apportion"
	"github.com/danielhkuo/seatsim/dataset"
)

// Runner applies each constituency's rule to its votes.
type Runner struct {
	// Workers bounds concurrent constituencies. Values below 1 mean sequential.
	Workers int
}

// RulesFor returns the rule table of a dataset in dataset order.
func RulesFor(ds *dataset.Dataset) []ConstituencyRule {
	rules := make([]ConstituencyRule, len(ds.Constituencies))
	for i, c := range ds.Constituencies {
		rules[i] = ConstituencyRule{Constituency: c.Name, Rule: c.Rule()}
	}
	return rules
}

// constituencyResult is one slot of the runner's output.
type constituencyResult struct {
	seats   []SeatRow
	warning *Warning
}

// Run apportions every constituency in rules. Constituencies without vote
// rows or with an unusable rule are skipped with a warning. Seat rows come
// back in rule order, and within a constituency in vote-row order.
func (r Runner) Run(ctx context.Context, rules []ConstituencyRule, votes []VoteRow) ([]SeatRow, []Warning, error) {
	byConstituency := make(map[string][]VoteRow)
	for _, row := range votes {
		byConstituency[row.Constituency] = append(byConstituency[row.Constituency], row)
	}

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]constituencyResult, len(rules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, cr := range rules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = runConstituency(cr, byConstituency)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("simulation cancelled: %w", err)
	}

	var seats []SeatRow
	var warnings []Warning
	for _, res := range results {
		if res.warning != nil {
			slog.Warn("constituency skipped",
				"constituency", res.warning.Constituency,
				"reason", res.warning.Message,
			)
			warnings = append(warnings, *res.warning)
			continue
		}
		seats = append(seats, res.seats...)
	}

	return seats, warnings, nil
}

func runConstituency(cr ConstituencyRule, byConstituency map[string][]VoteRow) constituencyResult {
	rows, ok := byConstituency[cr.Constituency]
	if !ok {
		return constituencyResult{warning: &Warning{
			Kind:         WarnDataIntegrity,
			Constituency: cr.Constituency,
			Message:      "no vote data for constituency",
		}}
	}
	if err := cr.Rule.Validate(); err != nil {
		return constituencyResult{warning: &Warning{
			Kind:         WarnDataIntegrity,
			Constituency: cr.Constituency,
			Message:      err.Error(),
		}}
	}

	t := buildTally(rows)
	allocation := cr.Rule.Apply(t)

	seats := make([]SeatRow, 0, len(allocation))
	for _, pv := range t {
		if n := allocation[pv.Party]; n > 0 {
			seats = append(seats, SeatRow{Party: pv.Party, Constituency: cr.Constituency, Seats: n})
		}
	}
	return constituencyResult{seats: seats}
}

// buildTally keeps parties with positive votes in first-seen order and
// merges repeated rows for the same party.
func buildTally(rows []VoteRow) apportion.Tally {
	index := make(map[string]int, len(rows))
	t := make(apportion.Tally, 0, len(rows))
	for _, row := range rows {
		if !(row.Votes > 0) {
			continue
		}
		if i, seen := index[row.Party]; seen {
			t[i].Votes += row.Votes
			continue
		}
		index[row.Party] = len(t)
		t = append(t, apportion.PartyVotes{Party: row.Party, Votes: row.Votes})
	}
	return t
}
