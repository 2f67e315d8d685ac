// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danielhkuo/seatsim/apportion"
	"github.com/danielhkuo/seatsim/dataset"
)

const testYAML = `
name: test
parties:
  - name: A
    category: 2
    color: "#FF0000"
  - name: B
    category: 1
  - name: C
    category: 3
constituencies:
  - name: North
    method: dhondt
    seats: 4
    threshold: 0.05
    turnout: "50 %"
    electorate: "1,000"
    shares: {A: "60 %", B: "30 %", C: "3 %"}
  - name: South
    method: largest_remainder
    quota: hare
    seats: 2
    threshold: 0
    turnout: "80 %"
    electorate: "500"
    shares: {A: "50 %", B: "50 %", C: "0 %"}
  - name: East
    method: sainte_lague
    seats: 3
    threshold: 0
    turnout: "50 %"
    electorate: "100"
`

func loadTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load([]byte(testYAML))
	require.NoError(t, err)
	return ds
}

func findVotes(rows []VoteRow, party, constituency string) (VoteRow, bool) {
	for _, r := range rows {
		if r.Party == party && r.Constituency == constituency {
			return r, true
		}
	}
	return VoteRow{}, false
}

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"35 %", 0.35, true},
		{"35%", 0.35, true},
		{" 35 ", 0.35, true},
		{"0 %", 0, true},
		{"100", 1, true},
		{"12.5%", 0.125, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-5 %", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePercentage(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.InDelta(t, tt.want, got, 1e-12, "input %q", tt.in)
	}
}

func TestParseCount(t *testing.T) {
	v, ok := ParseCount("64,800,000")
	assert.True(t, ok)
	assert.Equal(t, 64800000.0, v)

	v, ok = ParseCount("7 400 000")
	assert.True(t, ok)
	assert.Equal(t, 7400000.0, v)

	_, ok = ParseCount("lots")
	assert.False(t, ok)

	_, ok = ParseCount("-1")
	assert.False(t, ok)
}

func TestPercentage_UnmarshalJSON(t *testing.T) {
	var got map[string]Percentage
	err := json.Unmarshal([]byte(`{"a": 35, "b": "35 %", "c": null, "d": true}`), &got)
	require.NoError(t, err)

	assert.Equal(t, Percentage("35"), got["a"])
	assert.Equal(t, Percentage("35 %"), got["b"])
	assert.Equal(t, Percentage(""), got["c"])
	assert.Equal(t, Percentage("true"), got["d"])

	_, ok := ParsePercentage(string(got["d"]))
	assert.False(t, ok)
}

func TestBuildVoteTable(t *testing.T) {
	ds := loadTestDataset(t)

	rows, warnings := BuildVoteTable(ds, Inputs{})
	assert.Empty(t, warnings)

	// East has no forecast, so two constituencies times three parties.
	require.Len(t, rows, 6)
	assert.Equal(t, "A", rows[0].Party)
	assert.Equal(t, "North", rows[0].Constituency)

	a, ok := findVotes(rows, "A", "North")
	require.True(t, ok)
	assert.InDelta(t, 300, a.Votes, 1e-9)
	assert.Equal(t, 2, a.Category)

	c, ok := findVotes(rows, "C", "South")
	require.True(t, ok)
	assert.Equal(t, 0.0, c.Votes)

	_, ok = findVotes(rows, "A", "East")
	assert.False(t, ok)
}

func TestBuildVoteTable_Overrides(t *testing.T) {
	ds := loadTestDataset(t)

	rows, warnings := BuildVoteTable(ds, Inputs{
		Shares: map[string]map[string]string{
			"North":   {"B": "40 %", "Z": "5 %"},
			"East":    {"A": "100 %"},
			"Nowhere": {"A": "1 %"},
		},
		Turnout:    map[string]string{"South": "100%"},
		Electorate: map[string]string{"North": "2,000", "Atlantis": "5"},
	})

	b, ok := findVotes(rows, "B", "North")
	require.True(t, ok)
	assert.InDelta(t, 400, b.Votes, 1e-9)

	a, ok := findVotes(rows, "A", "South")
	require.True(t, ok)
	assert.InDelta(t, 250, a.Votes, 1e-9)

	east, ok := findVotes(rows, "A", "East")
	require.True(t, ok)
	assert.InDelta(t, 50, east.Votes, 1e-9)

	kinds := map[WarningKind]int{}
	for _, w := range warnings {
		kinds[w.Kind]++
	}
	assert.Equal(t, 3, kinds[WarnDataIntegrity], "%v", warnings)
}

func TestBuildVoteTable_InvalidPercentagesCountAsZero(t *testing.T) {
	ds := loadTestDataset(t)

	rows, warnings := BuildVoteTable(ds, Inputs{
		Shares:  map[string]map[string]string{"North": {"A": "sixty"}},
		Turnout: map[string]string{"South": "high"},
	})

	a, ok := findVotes(rows, "A", "North")
	require.True(t, ok)
	assert.Equal(t, 0.0, a.Votes)

	b, ok := findVotes(rows, "B", "South")
	require.True(t, ok)
	assert.Equal(t, 0.0, b.Votes)

	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, WarnInvalidPercentage, w.Kind)
	}
	assert.Equal(t, "A", warnings[0].Party)
	assert.Equal(t, "South", warnings[1].Constituency)
}

func TestRunner_Run(t *testing.T) {
	ds := loadTestDataset(t)
	votes, _ := BuildVoteTable(ds, Inputs{})

	seats, warnings, err := Runner{Workers: 2}.Run(context.Background(), RulesFor(ds), votes)
	require.NoError(t, err)

	assert.Equal(t, []SeatRow{
		{Party: "A", Constituency: "North", Seats: 3},
		{Party: "B", Constituency: "North", Seats: 1},
		{Party: "A", Constituency: "South", Seats: 1},
		{Party: "B", Constituency: "South", Seats: 1},
	}, seats)

	require.Len(t, warnings, 1)
	assert.Equal(t, WarnDataIntegrity, warnings[0].Kind)
	assert.Equal(t, "East", warnings[0].Constituency)
}

func TestRunner_InvalidRuleIsSkipped(t *testing.T) {
	rules := []ConstituencyRule{
		{Constituency: "X", Rule: apportion.Rule{Method: apportion.Method{Kind: "stv"}, Seats: 2}},
		{Constituency: "Y", Rule: apportion.Rule{Method: apportion.Method{Kind: apportion.KindDHondt}, Seats: 1}},
	}
	votes := []VoteRow{
		{Party: "A", Constituency: "X", Votes: 10},
		{Party: "A", Constituency: "Y", Votes: 10},
	}

	seats, warnings, err := Runner{}.Run(context.Background(), rules, votes)
	require.NoError(t, err)
	assert.Equal(t, []SeatRow{{Party: "A", Constituency: "Y", Seats: 1}}, seats)
	require.Len(t, warnings, 1)
	assert.Equal(t, "X", warnings[0].Constituency)
}

func TestRunner_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	ds := loadTestDataset(t)
	votes, _ := BuildVoteTable(ds, Inputs{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Runner{Workers: 4}.Run(ctx, RulesFor(ds), votes)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_DeterministicAcrossWorkerCounts(t *testing.T) {
	defer goleak.VerifyNone(t)
	ds := dataset.Default()
	votes, _ := BuildVoteTable(ds, Inputs{})
	rules := RulesFor(ds)

	sequential, _, err := Runner{Workers: 1}.Run(context.Background(), rules, votes)
	require.NoError(t, err)

	for _, workers := range []int{0, 3, 16} {
		parallel, _, err := Runner{Workers: workers}.Run(context.Background(), rules, votes)
		require.NoError(t, err)
		assert.Equal(t, sequential, parallel, "workers=%d", workers)
	}
}

func TestBuildTally(t *testing.T) {
	rows := []VoteRow{
		{Party: "A", Votes: 10},
		{Party: "B", Votes: 0},
		{Party: "C", Votes: 5},
		{Party: "A", Votes: 2},
	}
	assert.Equal(t, apportion.Tally{
		{Party: "A", Votes: 12},
		{Party: "C", Votes: 5},
	}, buildTally(rows))
}

func TestAggregate(t *testing.T) {
	parties := []dataset.Party{
		{Name: "A", Category: 2, Color: "#FF0000"},
		{Name: "B", Category: 1},
		{Name: "C", Category: 2},
	}
	seats := []SeatRow{
		{Party: "B", Constituency: "X", Seats: 2},
		{Party: "C", Constituency: "X", Seats: 1},
		{Party: "A", Constituency: "X", Seats: 3},
		{Party: "A", Constituency: "Y", Seats: 1},
		{Party: "Z", Constituency: "Y", Seats: 1},
	}

	rules := []ConstituencyRule{
		{Constituency: "X", Rule: apportion.Rule{Method: apportion.Method{Kind: apportion.KindDHondt}, Seats: 6}},
		{Constituency: "Y", Rule: apportion.Rule{Method: apportion.Method{Kind: apportion.KindDHondt}, Seats: 2}},
	}

	groups, err := Aggregate(seats, rules, parties)
	require.NoError(t, err)

	assert.Equal(t, []GroupSeats{
		{Party: "A", Category: 2, Color: "#FF0000", Seats: 4},
		{Party: "C", Category: 2, Seats: 1},
		{Party: "B", Category: 1, Seats: 2},
		{Party: "Z", Category: 0, Seats: 1},
	}, groups)

	total := 0
	for _, g := range groups {
		total += g.Seats
	}
	assert.Equal(t, 8, total)
}

func TestAggregate_ZeroTotalSeats(t *testing.T) {
	_, err := Aggregate(nil, nil, nil)
	assert.ErrorIs(t, err, ErrZeroTotalSeats)
}

func TestAggregate_SeatMismatch(t *testing.T) {
	rules := []ConstituencyRule{
		{Constituency: "X", Rule: apportion.Rule{Method: apportion.Method{Kind: apportion.KindDHondt}, Seats: 3}},
	}

	tests := []struct {
		name  string
		seats []SeatRow
	}{
		{"seat lost", []SeatRow{{Party: "A", Constituency: "X", Seats: 2}}},
		{"seat created", []SeatRow{{Party: "A", Constituency: "X", Seats: 2}, {Party: "B", Constituency: "X", Seats: 2}}},
		{"unknown constituency", []SeatRow{{Party: "A", Constituency: "X", Seats: 3}, {Party: "A", Constituency: "Q", Seats: 1}}},
		{"negative seats", []SeatRow{{Party: "A", Constituency: "X", Seats: 4}, {Party: "B", Constituency: "X", Seats: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := Aggregate(tt.seats, rules, nil)
			assert.ErrorIs(t, err, ErrSeatMismatch)
			assert.Nil(t, groups)
		})
	}
}

func TestDisproportionality(t *testing.T) {
	t.Run("perfectly proportional", func(t *testing.T) {
		votes := []VoteRow{{Party: "A", Votes: 50}, {Party: "B", Votes: 50}}
		seats := []SeatRow{{Party: "A", Seats: 1}, {Party: "B", Seats: 1}}
		assert.InDelta(t, 0, Disproportionality(votes, seats), 1e-9)
	})

	t.Run("winner takes all", func(t *testing.T) {
		votes := []VoteRow{{Party: "A", Votes: 75}, {Party: "B", Votes: 25}}
		seats := []SeatRow{{Party: "A", Seats: 1}}
		assert.InDelta(t, 25, Disproportionality(votes, seats), 1e-9)
	})

	t.Run("no seats", func(t *testing.T) {
		votes := []VoteRow{{Party: "A", Votes: 75}}
		assert.Equal(t, 0.0, Disproportionality(votes, nil))
	})
}

func TestSimulate(t *testing.T) {
	ds := loadTestDataset(t)

	res, err := Simulate(context.Background(), ds, Inputs{}, Options{Workers: 2})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID.String())
	assert.Len(t, res.Votes, 6)
	assert.Len(t, res.Seats, 4)
	assert.Equal(t, 6, res.TotalSeats)
	assert.Equal(t, []GroupSeats{
		{Party: "A", Category: 2, Color: "#FF0000", Seats: 4},
		{Party: "B", Category: 1, Seats: 2},
	}, res.Groups)
	assert.Greater(t, res.Disproportionality, 0.0)
	assert.Less(t, res.Disproportionality, 20.0)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarnDataIntegrity, res.Warnings[0].Kind)
}

func TestSimulate_ZeroTotalSeats(t *testing.T) {
	ds := loadTestDataset(t)

	res, err := Simulate(context.Background(), ds, Inputs{
		Turnout: map[string]string{"North": "0 %", "South": "0 %"},
	}, Options{})

	assert.ErrorIs(t, err, ErrZeroTotalSeats)
	require.NotNil(t, res)
	assert.Len(t, res.Votes, 6)
	assert.Empty(t, res.Seats)
	assert.Empty(t, res.Groups)
}

func TestSimulate_DefaultDataset(t *testing.T) {
	ds := dataset.Default()

	res, err := Simulate(context.Background(), ds, Inputs{}, Options{Workers: 4})
	require.NoError(t, err)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, 720, res.TotalSeats)

	perConstituency := map[string]int{}
	for _, s := range res.Seats {
		perConstituency[s.Constituency] += s.Seats
	}
	for _, c := range ds.Constituencies {
		assert.Equal(t, c.Seats, perConstituency[c.Name], c.Name)
	}

	seatOf := func(party, constituency string) int {
		for _, s := range res.Seats {
			if s.Party == party && s.Constituency == constituency {
				return s.Seats
			}
		}
		return 0
	}
	assert.Equal(t, 1, seatOf("EPP", "Belgium_German"))
	assert.Equal(t, 9, seatOf("EPP", "Slovenia"))

	// Groups are ordered by category, highest first.
	for i := 1; i < len(res.Groups); i++ {
		assert.GreaterOrEqual(t, res.Groups[i-1].Category, res.Groups[i].Category)
	}
}
