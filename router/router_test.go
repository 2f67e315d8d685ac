// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/seatsim/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	store := testutil.SetupTestStore(t, nil)
	return NewRouter(store, testutil.GetTestConfig(), prometheus.NewRegistry())
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "seatsim API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	// Run one simulation so the counters have a sample
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/simulations/baseline", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected baseline to succeed, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, name := range []string{
		`seatsim_simulations_total{outcome="ok"} 1`,
		"seatsim_simulation_duration_seconds_count 1",
		"seatsim_seats_allocated_sum 720",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("Expected metrics output to contain %q", name)
		}
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	// Test that routes respond (handler is invoked)
	testCases := []struct {
		method string
		path   string
	}{
		// Health, metrics and root
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"GET", "/"},

		// Reference data
		{"GET", "/parties"},
		{"GET", "/constituencies"},
		{"GET", "/dataset"},
		{"PUT", "/dataset"},

		// Simulations
		{"POST", "/simulations"},
		{"GET", "/simulations/baseline"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			// 400 and 401 are valid responses for routes needing a body or key
			if w.Code == http.StatusMethodNotAllowed || w.Code == http.StatusNotFound {
				t.Errorf("Route %s %s returned %d, expected route handler to exist", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	mux := newTestRouter(t)

	// Test that method-specific routes are enforced
	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		// POST /health doesn't exist, should return 405
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		// Only PUT is an admin route
		{"POST to dataset endpoint", "POST", "/dataset", http.StatusMethodNotAllowed},
		{"DELETE simulations", "DELETE", "/simulations", http.StatusMethodNotAllowed},
		// Unauthenticated replace
		{"PUT dataset without key", "PUT", "/dataset", http.StatusUnauthorized},
		// Empty body
		{"POST simulations without body", "POST", "/simulations", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}
