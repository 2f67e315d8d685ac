// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/seatsim/apportion"
)

var (
	// ErrZeroTotalSeats is returned when a run allocates no seats at all.
	ErrZeroTotalSeats = errors.New("the total of seats cannot be zero")
	// ErrSeatMismatch means seats were created or lost between the rule
	// table and the seat table.
	ErrSeatMismatch = errors.New("seat table does not match the rule table")
)

// VoteRow is the derived vote count of one party in one constituency.
type VoteRow struct {
	Party        string
	Constituency string
	Votes        float64
	Category     int
}

// SeatRow is the seat count of one party in one constituency.
type SeatRow struct {
	Party        string
	Constituency string
	Seats        int
}

// GroupSeats is a party's seat total across all constituencies.
type GroupSeats struct {
	Party    string
	Category int
	Color    string
	Seats    int
}

// ConstituencyRule ties a rule to the constituency it applies to.
type ConstituencyRule struct {
	Constituency string
	Rule         apportion.Rule
}

// WarningKind classifies a non-fatal problem.
type WarningKind string

const (
	WarnDataIntegrity     WarningKind = "data_integrity"
	WarnInvalidPercentage WarningKind = "invalid_percentage"
)

// Warning is a local problem that did not stop the run.
type Warning struct {
	Kind         WarningKind
	Constituency string
	Party        string
	Message      string
}

func (w Warning) String() string {
	if w.Party != "" {
		return fmt.Sprintf("%s: %s/%s: %s", w.Kind, w.Constituency, w.Party, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Constituency, w.Message)
}
