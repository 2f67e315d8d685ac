// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/seatsim/dataset"
	"github.com/danielhkuo/seatsim/election"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printVotes(w io.Writer, rows []election.VoteRow) {
	fmt.Fprintln(w, "VOTES")
	tw := newTable(w)
	fmt.Fprintln(tw, "PARTY\tCONSTITUENCY\tVOTES\tCATEGORY")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.Party, r.Constituency, humanize.Comma(int64(math.Round(r.Votes))), r.Category)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printSeats(w io.Writer, rows []election.SeatRow) {
	fmt.Fprintln(w, "SEATS")
	tw := newTable(w)
	fmt.Fprintln(tw, "PARTY\tCONSTITUENCY\tSEATS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Party, r.Constituency, r.Seats)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printGroups(w io.Writer, res *election.Result) {
	fmt.Fprintln(w, "GROUPS")
	tw := newTable(w)
	fmt.Fprintln(tw, "PARTY\tCATEGORY\tSEATS")
	for _, g := range res.Groups {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", g.Party, g.Category, g.Seats)
	}
	fmt.Fprintf(tw, "TOTAL\t\t%d\n", res.TotalSeats)
	tw.Flush()
	fmt.Fprintf(w, "Disproportionality (Gallagher): %s\n", humanize.FtoaWithDigits(res.Disproportionality, 2))
}

func printRules(w io.Writer, ds *dataset.Dataset) {
	tw := newTable(w)
	fmt.Fprintln(tw, "CONSTITUENCY\tMETHOD\tSEATS\tTHRESHOLD\tTURNOUT\tELECTORATE")
	for _, c := range ds.Constituencies {
		method := c.Rule().Method.String()
		electorate := c.Electorate
		if n, ok := election.ParseCount(c.Electorate); ok {
			electorate = humanize.Comma(int64(n))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s%%\t%s\t%s\n",
			c.Name, method, c.Seats, humanize.FtoaWithDigits(c.Threshold*100, 2), c.Turnout, electorate)
	}
	fmt.Fprintf(tw, "TOTAL\t\t%d\t\t\t\n", ds.TotalSeats())
	tw.Flush()
}

func printWarnings(w io.Writer, warnings []election.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", english.Plural(len(warnings), "warning", ""))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  %s\n", warning)
	}
}
