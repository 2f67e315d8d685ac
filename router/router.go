// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/seatsim/cliparse"
	"github.com/danielhkuo/seatsim/db"
	"github.com/danielhkuo/seatsim/handlers"
	"github.com/danielhkuo/seatsim/metrics"
	"github.com/danielhkuo/seatsim/middleware"
)

// NewRouter registers simulation metrics on reg and serves them on /metrics.
func NewRouter(store *db.Store, cfg cliparse.Config, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	m := metrics.New(reg)

	// Initialize handlers
	simulationHandler := handlers.NewSimulationHandler(store, cfg, m)
	datasetHandler := handlers.NewDatasetHandler(store, cfg, m)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	// Reference data (public)
	mux.HandleFunc("GET /parties", middleware.WithLogging(datasetHandler.GetParties))
	mux.HandleFunc("GET /constituencies", middleware.WithLogging(datasetHandler.GetConstituencies))
	mux.HandleFunc("GET /dataset", middleware.WithLogging(datasetHandler.GetDataset))

	// Dataset administration (requires X-Admin-Key)
	mux.HandleFunc("PUT /dataset", middleware.WithLogging(datasetHandler.ReplaceDataset))

	// Simulations (nothing is stored)
	mux.HandleFunc("POST /simulations", middleware.WithLogging(simulationHandler.RunSimulation))
	mux.HandleFunc("GET /simulations/baseline", middleware.WithLogging(simulationHandler.GetBaseline))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("seatsim API v1"))
	})

	return mux
}
