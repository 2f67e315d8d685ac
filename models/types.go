// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/seatsim/election"
)

// Warning kinds
const (
	WarningDataIntegrity     = "data_integrity"
	WarningInvalidPercentage = "invalid_percentage"
)

// Request types

// Values may be JSON numbers (35) or strings ("35 %", "64,800,000").
type SimulationRequest struct {
	// constituency -> party -> vote share
	Shares     map[string]map[string]election.Percentage `json:"shares,omitempty"`
	Turnout    map[string]election.Percentage            `json:"turnout,omitempty"`
	Electorate map[string]election.Percentage            `json:"electorate,omitempty"`
	Workers    int                                       `json:"workers,omitempty" validate:"min=0,max=64"`
}

// Response types

type VoteRow struct {
	Party        string  `json:"party"`
	Constituency string  `json:"constituency"`
	Votes        float64 `json:"votes"`
	Category     int     `json:"category"`
}

type SeatRow struct {
	Party        string `json:"party"`
	Constituency string `json:"constituency"`
	Seats        int    `json:"seats"`
}

type GroupSeats struct {
	Party    string `json:"party"`
	Category int    `json:"category"`
	Color    string `json:"color,omitempty"`
	Seats    int    `json:"seats"`
}

type Warning struct {
	Kind         string `json:"kind"`
	Constituency string `json:"constituency"`
	Party        string `json:"party,omitempty"`
	Message      string `json:"message"`
}

type SimulationResponse struct {
	ID                 string       `json:"id"`
	Dataset            string       `json:"dataset"`
	ComputedAt         time.Time    `json:"computed_at"`
	TotalSeats         int          `json:"total_seats"`
	Disproportionality float64      `json:"disproportionality"`
	Groups             []GroupSeats `json:"groups"`
	Seats              []SeatRow    `json:"seats"`
	Votes              []VoteRow    `json:"votes"`
	Warnings           []Warning    `json:"warnings"`
}

type Party struct {
	Name     string `json:"name"`
	Category int    `json:"category"`
	Color    string `json:"color,omitempty"`
}

type Constituency struct {
	Name        string  `json:"name"`
	Method      string  `json:"method"`
	Quota       string  `json:"quota,omitempty"`
	Seats       int     `json:"seats"`
	Threshold   float64 `json:"threshold"`
	Turnout     string  `json:"turnout"`
	Electorate  string  `json:"electorate"`
	HasForecast bool    `json:"has_forecast"`
}

type ReplaceDatasetResponse struct {
	Name           string `json:"name"`
	Parties        int    `json:"parties"`
	Constituencies int    `json:"constituencies"`
	TotalSeats     int    `json:"total_seats"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	// Warnings accompany a failed simulation so clients can see why no seats were allocated.
	Warnings []Warning `json:"warnings,omitempty"`
}
