// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/seatsim/apportion"
	"github.com/danielhkuo/seatsim/dataset"
)

// Database types accepted by Open.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// ErrEmptyStore is returned by Load before any dataset was stored.
var ErrEmptyStore = errors.New("no dataset stored")

// Open connects to a PostgreSQL or SQLite database and pings it.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite, "":
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite" {
		// One connection keeps in-memory databases alive and avoids SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// Store keeps the reference dataset. Simulation results are never stored.
type Store struct {
	db       *sql.DB
	postgres bool
}

// NewStore wraps an open connection. dbType selects the placeholder style.
func NewStore(db *sql.DB, dbType string) *Store {
	return &Store{db: db, postgres: dbType == TypePostgres}
}

// rebind turns ? placeholders into $1, $2, ... for PostgreSQL.
func (s *Store) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsEmpty reports whether no dataset has been stored yet.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dataset_meta`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count datasets: %w", err)
	}
	return count == 0, nil
}

// Seed stores ds only if the store is empty. It reports whether it wrote.
func (s *Store) Seed(ctx context.Context, ds *dataset.Dataset) (bool, error) {
	empty, err := s.IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}
	return true, s.Replace(ctx, ds)
}

// Replace validates ds and swaps it in for the stored dataset in one transaction.
func (s *Store) Replace(ctx context.Context, ds *dataset.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM forecast_share`,
		`DELETE FROM constituency`,
		`DELETE FROM party`,
		`DELETE FROM dataset_meta`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear dataset: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`
		INSERT INTO dataset_meta (id, name) VALUES (1, ?)
	`), ds.Name); err != nil {
		return fmt.Errorf("failed to insert dataset: %w", err)
	}

	for i, p := range ds.Parties {
		if _, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO party (name, position, category, color)
			VALUES (?, ?, ?, ?)
		`), p.Name, i, p.Category, p.Color); err != nil {
			return fmt.Errorf("failed to insert party %q: %w", p.Name, err)
		}
	}

	for i, c := range ds.Constituencies {
		if _, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO constituency (name, position, method, quota, seats, threshold, turnout, electorate, has_forecast)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`), c.Name, i, string(c.Method), string(c.Quota), c.Seats, c.Threshold, c.Turnout, c.Electorate, c.HasForecast()); err != nil {
			return fmt.Errorf("failed to insert constituency %q: %w", c.Name, err)
		}

		for party, share := range c.Shares {
			if _, err := tx.ExecContext(ctx, s.rebind(`
				INSERT INTO forecast_share (constituency, party, share)
				VALUES (?, ?, ?)
			`), c.Name, party, share); err != nil {
				return fmt.Errorf("failed to insert share %s/%s: %w", c.Name, party, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}
	return nil
}

// Load reads the stored dataset back in its original order. All reads
// share one transaction so a concurrent Replace is seen whole or not at all.
func (s *Store) Load(ctx context.Context) (*dataset.Dataset, error) {
	opts := &sql.TxOptions{ReadOnly: true}
	if s.postgres {
		// Read committed takes a new snapshot per statement
		opts.Isolation = sql.LevelRepeatableRead
	}
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ds dataset.Dataset
	err = tx.QueryRowContext(ctx, `SELECT name FROM dataset_meta WHERE id = 1`).Scan(&ds.Name)
	if err == sql.ErrNoRows {
		return nil, ErrEmptyStore
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset: %w", err)
	}

	if ds.Parties, err = loadParties(ctx, tx); err != nil {
		return nil, err
	}
	if ds.Constituencies, err = loadConstituencies(ctx, tx); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to finish read: %w", err)
	}
	return &ds, nil
}

func loadParties(ctx context.Context, tx *sql.Tx) ([]dataset.Party, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT name, category, color FROM party ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	var parties []dataset.Party
	for rows.Next() {
		var p dataset.Party
		if err := rows.Scan(&p.Name, &p.Category, &p.Color); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, p)
	}
	return parties, rows.Err()
}

func loadConstituencies(ctx context.Context, tx *sql.Tx) ([]dataset.Constituency, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT name, method, quota, seats, threshold, turnout, electorate, has_forecast
		FROM constituency
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query constituencies: %w", err)
	}
	defer rows.Close()

	var constituencies []dataset.Constituency
	index := make(map[string]int)
	for rows.Next() {
		var c dataset.Constituency
		var method, quota string
		var hasForecast bool
		if err := rows.Scan(&c.Name, &method, &quota, &c.Seats, &c.Threshold, &c.Turnout, &c.Electorate, &hasForecast); err != nil {
			return nil, fmt.Errorf("failed to scan constituency: %w", err)
		}
		c.Method = apportion.Kind(method)
		c.Quota = apportion.QuotaKind(quota)
		if hasForecast {
			c.Shares = make(map[string]string)
		}
		index[c.Name] = len(constituencies)
		constituencies = append(constituencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows.Close()

	shares, err := tx.QueryContext(ctx, `
		SELECT constituency, party, share FROM forecast_share
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares: %w", err)
	}
	defer shares.Close()

	for shares.Next() {
		var constituency, party, share string
		if err := shares.Scan(&constituency, &party, &share); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		i, ok := index[constituency]
		if !ok {
			continue
		}
		if constituencies[i].Shares == nil {
			constituencies[i].Shares = make(map[string]string)
		}
		constituencies[i].Shares[party] = share
	}
	return constituencies, shares.Err()
}
