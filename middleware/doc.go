// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /parties", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access (github.com/go-chi/cors):

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(mux),
	}

Allows methods GET, POST, PUT, OPTIONS with headers Accept, Content-Type
and X-Admin-Key.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (capped at MaxBodyBytes):

	var req models.SimulationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

ParseStrictJSONBody also rejects unknown fields.

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs and, hashed, in admin audit logs.
*/
package middleware
