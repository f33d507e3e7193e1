// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/utils"
	"github.com/sama64/nerdeala25/models"
)

// triggerPass runs one pass synchronously and answers with its result.
// The pass is detached from the request's cancellation so a client
// disconnect cannot leave a course half-reconciled.
func (h *Handler) triggerPass(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	kind := models.PassKind(chi.URLParam(r, "pass"))

	subject, _ := utils.GetSubjectFromContext(r.Context())
	log.Info().Str("pass", string(kind)).Str("operator", subject).Msg("manual pass requested")

	ctx := context.WithoutCancel(r.Context())
	result, err := h.services.SyncService.RunPass(ctx, kind)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			log.Err(err).Str("pass", string(kind)).Msg("manual pass failed")
		}
		utils.WriteError(w, err, status)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

type lastResultsResponse struct {
	Results []models.SyncResult `json:"results"`
	Length  int                 `json:"length"`
}

func (h *Handler) lastResults(w http.ResponseWriter, _ *http.Request) {
	results := h.services.SyncService.LastResults()
	if results == nil {
		results = []models.SyncResult{}
	}

	utils.WriteJSON(w, lastResultsResponse{Results: results, Length: len(results)}, http.StatusOK)
}
