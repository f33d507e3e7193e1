// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/utils"
)

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		log.Err(err).Msg("database health check failed")
		utils.WriteJSON(w, healthResponse{Status: "degraded", Database: "unreachable"}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, healthResponse{Status: "ok", Database: "ok"}, http.StatusOK)
}
