// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/seatsim/dataset"
)

// Inputs override the dataset baseline. Values are percentages or counts
// in the lenient string form accepted by ParsePercentage and ParseCount.
type Inputs struct {
	// Shares is keyed by constituency, then party.
	Shares     map[string]map[string]string
	Turnout    map[string]string
	Electorate map[string]string
}

// BuildVoteTable derives votes = share × turnout × electorate for every
// party in every constituency that has a forecast, in dataset order.
func BuildVoteTable(ds *dataset.Dataset, in Inputs) ([]VoteRow, []Warning) {
	var rows []VoteRow
	warnings := checkOverrides(ds, in)

	for _, c := range ds.Constituencies {
		overrides := in.Shares[c.Name]
		if !c.HasForecast() && overrides == nil {
			continue
		}

		turnoutRaw := c.Turnout
		if v, ok := in.Turnout[c.Name]; ok {
			turnoutRaw = v
		}
		turnout, ok := ParsePercentage(turnoutRaw)
		if !ok {
			warnings = append(warnings, Warning{
				Kind:         WarnInvalidPercentage,
				Constituency: c.Name,
				Message:      fmt.Sprintf("turnout %q is not a percentage, using 0", turnoutRaw),
			})
		}

		electorateRaw := c.Electorate
		if v, ok := in.Electorate[c.Name]; ok {
			electorateRaw = v
		}
		electorate, ok := ParseCount(electorateRaw)
		if !ok {
			warnings = append(warnings, Warning{
				Kind:         WarnInvalidPercentage,
				Constituency: c.Name,
				Message:      fmt.Sprintf("electorate %q is not a number, using 0", electorateRaw),
			})
		}

		for _, p := range ds.Parties {
			shareRaw, present := c.Shares[p.Name]
			if v, ok := overrides[p.Name]; ok {
				shareRaw, present = v, true
			}

			var share float64
			if present {
				share, ok = ParsePercentage(shareRaw)
				if !ok {
					warnings = append(warnings, Warning{
						Kind:         WarnInvalidPercentage,
						Constituency: c.Name,
						Party:        p.Name,
						Message:      fmt.Sprintf("vote share %q is not a percentage, using 0", shareRaw),
					})
				}
			}

			rows = append(rows, VoteRow{
				Party:        p.Name,
				Constituency: c.Name,
				Votes:        share * turnout * electorate,
				Category:     p.Category,
			})
		}
	}

	return rows, warnings
}

// checkOverrides reports overrides that point at nothing in the dataset.
func checkOverrides(ds *dataset.Dataset, in Inputs) []Warning {
	var warnings []Warning

	unknown := func(name, field string) {
		warnings = append(warnings, Warning{
			Kind:         WarnDataIntegrity,
			Constituency: name,
			Message:      fmt.Sprintf("%s override for unknown constituency ignored", field),
		})
	}

	for _, name := range sortedKeys(in.Turnout) {
		if _, ok := ds.Constituency(name); !ok {
			unknown(name, "turnout")
		}
	}
	for _, name := range sortedKeys(in.Electorate) {
		if _, ok := ds.Constituency(name); !ok {
			unknown(name, "electorate")
		}
	}
	for _, name := range sortedKeys(in.Shares) {
		if _, ok := ds.Constituency(name); !ok {
			unknown(name, "vote share")
			continue
		}
		for _, party := range sortedKeys(in.Shares[name]) {
			if _, ok := ds.Party(party); !ok {
				warnings = append(warnings, Warning{
					Kind:         WarnDataIntegrity,
					Constituency: name,
					Party:        party,
					Message:      "vote share override for unknown party ignored",
				})
			}
		}
	}

	return warnings
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
