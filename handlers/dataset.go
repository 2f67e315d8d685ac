// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/seatsim/auth"
	"github.com/danielhkuo/seatsim/cliparse"
	"github.com/danielhkuo/seatsim/dataset"
	"github.com/danielhkuo/seatsim/db"
	"github.com/danielhkuo/seatsim/metrics"
	"github.com/danielhkuo/seatsim/middleware"
	"github.com/danielhkuo/seatsim/models"
)

type DatasetHandler struct {
	store   *db.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewDatasetHandler(store *db.Store, cfg cliparse.Config, m *metrics.Metrics) *DatasetHandler {
	return &DatasetHandler{store: store, cfg: cfg, metrics: m}
}

// GetParties handles GET /parties
func (h *DatasetHandler) GetParties(w http.ResponseWriter, r *http.Request) {
	ds, ok := loadDataset(w, r, h.store)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, toParties(ds))
}

// GetConstituencies handles GET /constituencies
// Returns the rule table with baseline turnout and electorate
func (h *DatasetHandler) GetConstituencies(w http.ResponseWriter, r *http.Request) {
	ds, ok := loadDataset(w, r, h.store)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, toConstituencies(ds))
}

// GetDataset handles GET /dataset
func (h *DatasetHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	ds, ok := loadDataset(w, r, h.store)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ds)
}

// ReplaceDataset handles PUT /dataset
// Requires X-Admin-Key for the dataset scope
func (h *DatasetHandler) ReplaceDataset(w http.ResponseWriter, r *http.Request) {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(auth.DatasetScope, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var ds dataset.Dataset
	if err := middleware.ParseStrictJSONBody(r, &ds); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := ds.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Replace(r.Context(), &ds); err != nil {
		slog.Error("failed to replace dataset", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	h.metrics.IncrementDatasetReplaced()

	slog.Info("dataset replaced",
		"name", ds.Name,
		"constituencies", len(ds.Constituencies),
		"total_seats", ds.TotalSeats(),
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt),
	)

	middleware.JSONResponse(w, http.StatusOK, models.ReplaceDatasetResponse{
		Name:           ds.Name,
		Parties:        len(ds.Parties),
		Constituencies: len(ds.Constituencies),
		TotalSeats:     ds.TotalSeats(),
	})
}

// loadDataset reads the stored dataset, writing the error response on failure.
func loadDataset(w http.ResponseWriter, r *http.Request, store *db.Store) (*dataset.Dataset, bool) {
	ds, err := store.Load(r.Context())
	if errors.Is(err, db.ErrEmptyStore) {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "No dataset loaded")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to load dataset", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	return ds, true
}
