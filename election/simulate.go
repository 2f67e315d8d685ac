// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/seatsim/dataset"
)

// Options tune a run without changing its result.
type Options struct {
	Workers int
}

// Result is everything one simulation produces. Nothing in it is stored.
type Result struct {
	ID                 uuid.UUID
	ComputedAt         time.Time
	Votes              []VoteRow
	Seats              []SeatRow
	Groups             []GroupSeats
	Warnings           []Warning
	TotalSeats         int
	Disproportionality float64
}

// Simulate builds the vote table, apportions every constituency and
// aggregates the groups. On ErrZeroTotalSeats the returned Result still
// holds the vote and seat tables and the warnings.
func Simulate(ctx context.Context, ds *dataset.Dataset, in Inputs, opts Options) (*Result, error) {
	res := &Result{
		ID:         uuid.New(),
		ComputedAt: time.Now().UTC(),
	}

	votes, warnings := BuildVoteTable(ds, in)
	res.Votes = votes
	res.Warnings = warnings

	rules := RulesFor(ds)
	seats, runWarnings, err := Runner{Workers: opts.Workers}.Run(ctx, rules, votes)
	if err != nil {
		return nil, err
	}
	res.Seats = seats
	res.Warnings = append(res.Warnings, runWarnings...)

	groups, err := Aggregate(seats, rules, ds.Parties)
	if err != nil {
		if errors.Is(err, ErrZeroTotalSeats) {
			slog.Error("simulation produced no seats", "simulation_id", res.ID)
		}
		return res, err
	}
	res.Groups = groups
	for _, g := range groups {
		res.TotalSeats += g.Seats
	}
	res.Disproportionality = Disproportionality(votes, seats)

	slog.Info("simulation complete",
		"simulation_id", res.ID,
		"constituencies", len(ds.Constituencies),
		"total_seats", res.TotalSeats,
		"warnings", len(res.Warnings),
	)

	return res, nil
}
