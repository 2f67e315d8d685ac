// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/seatsim/auth"
	"github.com/danielhkuo/seatsim/cliparse"
	"github.com/danielhkuo/seatsim/dataset"
	"github.com/danielhkuo/seatsim/election"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seatsim",
		Short:         "European Parliament seat simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("dataset", "", "YAML dataset (default: embedded EU 2024 baseline)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newAdminKeyCmd())
	return root
}

type runOptions struct {
	shares     []string
	turnout    []string
	electorate []string
	workers    int
	votes      bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate an election and print the seat tables",
		Long: `Derives votes from shares, turnout and electorate, apportions every
constituency under its own rule and sums the seats per political group.

Overrides are applied on top of the dataset baseline:
  seatsim run --share "EPP@Germany=31%" --turnout "Germany=65%" --electorate "Malta=400,000"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, opts)
		},
	}

	// StringArray keeps commas inside values such as "64,800,000"
	cmd.Flags().StringArrayVar(&opts.shares, "share", nil, "Vote share override PARTY@CONSTITUENCY=PERCENT (repeatable)")
	cmd.Flags().StringArrayVar(&opts.turnout, "turnout", nil, "Turnout override CONSTITUENCY=PERCENT (repeatable)")
	cmd.Flags().StringArrayVar(&opts.electorate, "electorate", nil, "Electorate override CONSTITUENCY=COUNT (repeatable)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", cliparse.DefaultWorkers, "Constituencies apportioned concurrently")
	cmd.Flags().BoolVar(&opts.votes, "votes", false, "Also print the vote table")
	return cmd
}

func runSimulation(cmd *cobra.Command, opts runOptions) error {
	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}

	in, err := parseOverrides(opts)
	if err != nil {
		return err
	}

	res, simErr := election.Simulate(cmd.Context(), ds, in, election.Options{Workers: opts.workers})
	if res == nil {
		return simErr
	}

	out := cmd.OutOrStdout()
	if opts.votes {
		printVotes(out, res.Votes)
	}
	printSeats(out, res.Seats)
	if simErr == nil {
		printGroups(out, res)
	}
	printWarnings(cmd.ErrOrStderr(), res.Warnings)
	return simErr
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the constituency rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			printRules(cmd.OutOrStdout(), ds)
			return nil
		},
	}
}

func newAdminKeyCmd() *cobra.Command {
	var salt string
	cmd := &cobra.Command{
		Use:   "admin-key",
		Short: "Print the X-Admin-Key that authorizes PUT /dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if salt == "" {
				salt = os.Getenv("ADMIN_KEY_SALT")
			}
			if salt == "" {
				return errors.New("ADMIN_KEY_SALT required (use --salt or env)")
			}
			fmt.Fprintln(cmd.OutOrStdout(), auth.GenerateAdminKey(auth.DatasetScope, salt))
			return nil
		},
	}
	cmd.Flags().StringVar(&salt, "salt", "", "Admin key salt (prefer env)")
	return cmd
}

func loadDataset(cmd *cobra.Command) (*dataset.Dataset, error) {
	path, err := cmd.Flags().GetString("dataset")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return dataset.Default(), nil
	}
	return dataset.LoadFile(path)
}

// parseOverrides turns the repeatable flags into simulation inputs.
func parseOverrides(opts runOptions) (election.Inputs, error) {
	var in election.Inputs

	for _, s := range opts.shares {
		key, value, err := splitAssignment(s)
		if err != nil {
			return in, fmt.Errorf("--share: %w", err)
		}
		party, constituency, ok := strings.Cut(key, "@")
		if !ok || party == "" || constituency == "" {
			return in, fmt.Errorf("--share %q: expected PARTY@CONSTITUENCY=PERCENT", s)
		}
		if in.Shares == nil {
			in.Shares = make(map[string]map[string]string)
		}
		if in.Shares[constituency] == nil {
			in.Shares[constituency] = make(map[string]string)
		}
		in.Shares[constituency][party] = value
	}

	var err error
	if in.Turnout, err = parseAssignments("--turnout", opts.turnout); err != nil {
		return in, err
	}
	if in.Electorate, err = parseAssignments("--electorate", opts.electorate); err != nil {
		return in, err
	}
	return in, nil
}

func parseAssignments(flag string, values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(values))
	for _, s := range values {
		key, value, err := splitAssignment(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flag, err)
		}
		out[key] = value
	}
	return out, nil
}

func splitAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("%q is not NAME=VALUE", s)
	}
	return key, strings.TrimSpace(value), nil
}
