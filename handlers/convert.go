// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"github.com/danielhkuo/seatsim/dataset"
	"github.com/danielhkuo/seatsim/election"
	"github.com/danielhkuo/seatsim/models"
)

// toInputs converts request overrides into simulation inputs.
func toInputs(req models.SimulationRequest) election.Inputs {
	in := election.Inputs{
		Turnout:    percentMap(req.Turnout),
		Electorate: percentMap(req.Electorate),
	}
	if req.Shares != nil {
		in.Shares = make(map[string]map[string]string, len(req.Shares))
		for constituency, shares := range req.Shares {
			in.Shares[constituency] = percentMap(shares)
		}
	}
	return in
}

func percentMap(m map[string]election.Percentage) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = string(v)
	}
	return out
}

func toSimulationResponse(datasetName string, res *election.Result) models.SimulationResponse {
	resp := models.SimulationResponse{
		ID:                 res.ID.String(),
		Dataset:            datasetName,
		ComputedAt:         res.ComputedAt,
		TotalSeats:         res.TotalSeats,
		Disproportionality: res.Disproportionality,
		Groups:             make([]models.GroupSeats, 0, len(res.Groups)),
		Seats:              make([]models.SeatRow, 0, len(res.Seats)),
		Votes:              make([]models.VoteRow, 0, len(res.Votes)),
		Warnings:           toWarnings(res.Warnings),
	}
	for _, g := range res.Groups {
		resp.Groups = append(resp.Groups, models.GroupSeats{
			Party:    g.Party,
			Category: g.Category,
			Color:    g.Color,
			Seats:    g.Seats,
		})
	}
	for _, s := range res.Seats {
		resp.Seats = append(resp.Seats, models.SeatRow{
			Party:        s.Party,
			Constituency: s.Constituency,
			Seats:        s.Seats,
		})
	}
	for _, v := range res.Votes {
		resp.Votes = append(resp.Votes, models.VoteRow{
			Party:        v.Party,
			Constituency: v.Constituency,
			Votes:        v.Votes,
			Category:     v.Category,
		})
	}
	return resp
}

func toWarnings(warnings []election.Warning) []models.Warning {
	out := make([]models.Warning, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, models.Warning{
			Kind:         string(w.Kind),
			Constituency: w.Constituency,
			Party:        w.Party,
			Message:      w.Message,
		})
	}
	return out
}

func toParties(ds *dataset.Dataset) []models.Party {
	parties := make([]models.Party, 0, len(ds.Parties))
	for _, p := range ds.Parties {
		parties = append(parties, models.Party{Name: p.Name, Category: p.Category, Color: p.Color})
	}
	return parties
}

func toConstituencies(ds *dataset.Dataset) []models.Constituency {
	constituencies := make([]models.Constituency, 0, len(ds.Constituencies))
	for _, c := range ds.Constituencies {
		constituencies = append(constituencies, models.Constituency{
			Name:        c.Name,
			Method:      string(c.Method),
			Quota:       string(c.Quota),
			Seats:       c.Seats,
			Threshold:   c.Threshold,
			Turnout:     c.Turnout,
			Electorate:  c.Electorate,
			HasForecast: c.HasForecast(),
		})
	}
	return constituencies
}
