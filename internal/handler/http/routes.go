// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)

	// probes and scraping
	router.Group(func(r chi.Router) {
		r.Get("/api/healthz", h.healthz)
		r.Get("/api/version", h.getServerVersion)
		r.Method("GET", "/metrics", h.metrics.Handler())
	})

	// operator routes
	router.Group(func(r chi.Router) {
		r.Use(h.withAuth)
		r.Post("/api/sync/{pass}", h.triggerPass)
		r.Get("/api/sync/last", h.lastResults)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
