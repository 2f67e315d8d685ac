// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danielhkuo/seatsim/dataset"
	"github.com/danielhkuo/seatsim/db"
	"github.com/danielhkuo/seatsim/models"
	tu "github.com/danielhkuo/seatsim/testutil"
)

func newDatasetHandler(t *testing.T) (*DatasetHandler, *db.Store) {
	t.Helper()
	store := tu.SetupTestStore(t, nil)
	m, _ := tu.NewTestMetrics()
	return NewDatasetHandler(store, tu.GetTestConfig(), m), store
}

func TestGetParties(t *testing.T) {
	handler, _ := newDatasetHandler(t)

	w := httptest.NewRecorder()
	handler.GetParties(w, tu.MakeRequest("GET", "/parties", nil, nil))

	tu.AssertStatus(t, w, http.StatusOK)

	var parties []models.Party
	tu.AssertJSON(t, w, &parties)

	if len(parties) != 8 {
		t.Fatalf("Expected 8 parties, got %d", len(parties))
	}
	if parties[0].Name != "EPP" || parties[0].Category != 8 {
		t.Errorf("Expected EPP with category 8 first, got %+v", parties[0])
	}
	for _, p := range parties {
		if p.Color == "" {
			t.Errorf("Expected a colour for %s", p.Name)
		}
	}
}

func TestGetConstituencies(t *testing.T) {
	handler, _ := newDatasetHandler(t)

	w := httptest.NewRecorder()
	handler.GetConstituencies(w, tu.MakeRequest("GET", "/constituencies", nil, nil))

	tu.AssertStatus(t, w, http.StatusOK)

	var constituencies []models.Constituency
	tu.AssertJSON(t, w, &constituencies)

	if len(constituencies) != 47 {
		t.Fatalf("Expected 47 constituencies, got %d", len(constituencies))
	}

	total := 0
	byName := map[string]models.Constituency{}
	for _, c := range constituencies {
		total += c.Seats
		byName[c.Name] = c
	}
	if total != 720 {
		t.Errorf("Expected 720 seats in the rule table, got %d", total)
	}

	sweden := byName["Sweden"]
	if sweden.Method != "modified_sainte_lague" || sweden.Seats != 21 || sweden.Threshold != 0.04 {
		t.Errorf("Unexpected rule for Sweden: %+v", sweden)
	}
	if !sweden.HasForecast {
		t.Error("Expected Sweden to have a forecast")
	}
	if byName["Bulgaria"].Quota != "hare" {
		t.Errorf("Expected Hare quota for Bulgaria, got %q", byName["Bulgaria"].Quota)
	}
}

func TestGetDataset(t *testing.T) {
	handler, _ := newDatasetHandler(t)

	w := httptest.NewRecorder()
	handler.GetDataset(w, tu.MakeRequest("GET", "/dataset", nil, nil))

	tu.AssertStatus(t, w, http.StatusOK)

	var ds dataset.Dataset
	tu.AssertJSON(t, w, &ds)

	if err := ds.Validate(); err != nil {
		t.Fatalf("Returned dataset does not validate: %v", err)
	}
	if ds.TotalSeats() != 720 {
		t.Errorf("Expected 720 seats, got %d", ds.TotalSeats())
	}
}

func TestReplaceDataset(t *testing.T) {
	cfg := tu.GetTestConfig()

	small := tu.SmallDataset(t)
	invalid := tu.SmallDataset(t)
	invalid.Constituencies[0].Seats = 0

	tests := []struct {
		name           string
		body           interface{}
		rawBody        string
		headers        map[string]string
		expectedStatus int
	}{
		{
			name:           "valid replace",
			body:           small,
			headers:        tu.AdminHeaders(cfg),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing admin key",
			body:           small,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong admin key",
			body:           small,
			headers:        map[string]string{"X-Admin-Key": "nope"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid dataset",
			body:           invalid,
			headers:        tu.AdminHeaders(cfg),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown method",
			rawBody:        `{"name":"x","parties":[{"name":"A","category":1}],"constituencies":[{"name":"N","method":"borda","seats":1,"threshold":0,"turnout":"50","electorate":"10"}]}`,
			headers:        tu.AdminHeaders(cfg),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown field",
			rawBody:        `{"name":"x","colour":"red"}`,
			headers:        tu.AdminHeaders(cfg),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, store := newDatasetHandler(t)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest("PUT", "/dataset", strings.NewReader(tt.rawBody))
				for k, v := range tt.headers {
					req.Header.Set(k, v)
				}
			} else {
				req = tu.MakeRequest("PUT", "/dataset", tt.body, tt.headers)
			}
			w := httptest.NewRecorder()
			handler.ReplaceDataset(w, req)

			tu.AssertStatus(t, w, tt.expectedStatus)

			loaded, err := store.Load(context.Background())
			if err != nil {
				t.Fatalf("Failed to load dataset: %v", err)
			}

			if tt.expectedStatus != http.StatusOK {
				if loaded.Name != dataset.Default().Name {
					t.Errorf("Rejected replace must keep the baseline, got '%s'", loaded.Name)
				}
				return
			}

			var resp models.ReplaceDatasetResponse
			tu.AssertJSON(t, w, &resp)
			expected := models.ReplaceDatasetResponse{Name: "small", Parties: 3, Constituencies: 3, TotalSeats: 9}
			if resp != expected {
				t.Errorf("Expected %+v, got %+v", expected, resp)
			}
			if loaded.Name != "small" {
				t.Errorf("Expected stored dataset 'small', got '%s'", loaded.Name)
			}
			if got := testutil.ToFloat64(handler.metrics.DatasetReplacements); got != 1 {
				t.Errorf("Expected 1 replacement recorded, got %v", got)
			}
		})
	}
}

func TestDatasetHandler_EmptyStore(t *testing.T) {
	m, _ := tu.NewTestMetrics()
	handler := NewDatasetHandler(tu.SetupEmptyStore(t), tu.GetTestConfig(), m)

	for name, fn := range map[string]http.HandlerFunc{
		"parties":        handler.GetParties,
		"constituencies": handler.GetConstituencies,
		"dataset":        handler.GetDataset,
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			fn(w, tu.MakeRequest("GET", "/"+name, nil, nil))
			tu.AssertStatus(t, w, http.StatusServiceUnavailable)
		})
	}
}
