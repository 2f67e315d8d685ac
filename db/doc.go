// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores the reference dataset: parties, the constituency rule
table and the baseline forecast. It runs on SQLite (modernc.org/sqlite,
the default) or PostgreSQL (lib/pq).

# Schema Creation

CreateSchema initializes all required tables:

	conn, err := db.Open(db.TypeSQLite, "file:seatsim.db")
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - dataset_meta: dataset name and update time (one row)
  - party: political groups with category and colour
  - constituency: rule (method, quota, seats, threshold), turnout, electorate
  - forecast_share: baseline vote share per (constituency, party)

# Relationships

	constituency 1──* forecast_share *──1 party

# Store

	store := db.NewStore(conn, db.TypeSQLite)
	seeded, err := store.Seed(ctx, dataset.Default())
	ds, err := store.Load(ctx)

Replace swaps the whole dataset in one transaction. Simulation results
are computed per request and never written here.
*/
package db
