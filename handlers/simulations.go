// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/seatsim/cliparse"
	"github.com/danielhkuo/seatsim/db"
	"github.com/danielhkuo/seatsim/election"
	"github.com/danielhkuo/seatsim/metrics"
	"github.com/danielhkuo/seatsim/middleware"
	"github.com/danielhkuo/seatsim/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type SimulationHandler struct {
	store   *db.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewSimulationHandler(store *db.Store, cfg cliparse.Config, m *metrics.Metrics) *SimulationHandler {
	return &SimulationHandler{store: store, cfg: cfg, metrics: m}
}

// RunSimulation handles POST /simulations
// Overrides in the body are applied on top of the stored baseline
func (h *SimulationHandler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	var req models.SimulationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.simulate(w, r, req)
}

// GetBaseline handles GET /simulations/baseline
func (h *SimulationHandler) GetBaseline(w http.ResponseWriter, r *http.Request) {
	h.simulate(w, r, models.SimulationRequest{})
}

func (h *SimulationHandler) simulate(w http.ResponseWriter, r *http.Request, req models.SimulationRequest) {
	ds, ok := loadDataset(w, r, h.store)
	if !ok {
		return
	}

	workers := req.Workers
	if workers == 0 {
		workers = h.cfg.Workers
	}

	start := time.Now()
	res, err := election.Simulate(r.Context(), ds, toInputs(req), election.Options{Workers: workers})
	h.metrics.ObserveSimulation(start)

	if errors.Is(err, election.ErrZeroTotalSeats) {
		h.metrics.IncrementSimulation(metrics.OutcomeZeroSeats)
		h.countWarnings(res.Warnings)
		middleware.JSONResponse(w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:    http.StatusText(http.StatusUnprocessableEntity),
			Message:  err.Error(),
			Warnings: toWarnings(res.Warnings),
		})
		return
	}
	if err != nil {
		h.metrics.IncrementSimulation(metrics.OutcomeError)
		slog.Error("simulation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Simulation failed")
		return
	}

	h.metrics.IncrementSimulation(metrics.OutcomeOK)
	h.metrics.ObserveSeats(res.TotalSeats)
	h.countWarnings(res.Warnings)

	middleware.JSONResponse(w, http.StatusOK, toSimulationResponse(ds.Name, res))
}

func (h *SimulationHandler) countWarnings(warnings []election.Warning) {
	for _, warning := range warnings {
		h.metrics.IncrementWarning(string(warning.Kind))
	}
}
