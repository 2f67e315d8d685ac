// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/seatsim/auth"
	"github.com/danielhkuo/seatsim/cliparse"
	"github.com/danielhkuo/seatsim/dataset"
	"github.com/danielhkuo/seatsim/db"
	"github.com/danielhkuo/seatsim/metrics"
)

// TestDBURL is an in-memory SQLite database, private to each connection
const TestDBURL = ":memory:"

// SmallDatasetYAML has one D'Hondt, one largest remainder and one
// constituency without a forecast.
const SmallDatasetYAML = `
name: small
parties:
  - {name: A, category: 2, color: "#0000ff"}
  - {name: B, category: 1, color: "#ff0000"}
  - {name: C, category: 3}
constituencies:
  - name: North
    method: dhondt
    seats: 4
    threshold: 0
    turnout: "50 %"
    electorate: "3,800"
    shares: {A: "50 %", B: "30 %", C: "20 %"}
  - name: South
    method: largest_remainder
    quota: hare
    seats: 2
    threshold: 0.05
    turnout: "100 %"
    electorate: "1000"
    shares: {A: "40 %", B: "58 %", C: "2 %"}
  - name: East
    method: sainte_lague
    seats: 3
    threshold: 0
    turnout: "60 %"
    electorate: "500"
`

// SetupEmptyStore creates a fresh in-memory store with the full schema and no dataset
func SetupEmptyStore(t *testing.T) *db.Store {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db.NewStore(conn, db.TypeSQLite)
}

// SetupTestStore creates a fresh store seeded with ds, or the default dataset when ds is nil
func SetupTestStore(t *testing.T, ds *dataset.Dataset) *db.Store {
	t.Helper()

	if ds == nil {
		ds = dataset.Default()
	}
	store := SetupEmptyStore(t)
	if _, err := store.Seed(context.Background(), ds); err != nil {
		t.Fatalf("Failed to seed test dataset: %v", err)
	}
	return store
}

// SmallDataset loads SmallDatasetYAML
func SmallDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	ds, err := dataset.Load([]byte(SmallDatasetYAML))
	if err != nil {
		t.Fatalf("Failed to load small dataset: %v", err)
	}
	return ds
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   cliparse.DatabaseSQLite,
		AdminKeySalt:   "test-admin-salt",
		Workers:        2,
		AllowedOrigins: []string{"*"},
	}
}

// NewTestMetrics registers metrics on a private registry
func NewTestMetrics() (*metrics.Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return metrics.New(reg), reg
}

// AdminHeaders returns the headers authorizing dataset administration
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{
		"X-Admin-Key": auth.GenerateAdminKey(auth.DatasetScope, cfg.AdminKeySalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
