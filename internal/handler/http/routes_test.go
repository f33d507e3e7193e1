// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sama64/nerdeala25/internal/adapter"
	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/service"
	"github.com/sama64/nerdeala25/internal/utils"
	"github.com/sama64/nerdeala25/models"
)

func serve(h *Handler, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

// ── /api/sync/{pass} ──

func TestTriggerPass_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "full", path: "/api/sync/full", wantStatus: http.StatusOK},
		{name: "delta", path: "/api/sync/delta", wantStatus: http.StatusOK},
		{name: "unknown pass", path: "/api/sync/weekly", err: service.ErrUnknownPass, wantStatus: http.StatusBadRequest},
		{name: "pass in progress", path: "/api/sync/delta", err: service.ErrPassInProgress, wantStatus: http.StatusConflict},
		{name: "no credentials", path: "/api/sync/full", err: service.ErrNoCredentials, wantStatus: http.StatusServiceUnavailable},
		{name: "integration", path: "/api/sync/full", err: adapter.ErrIntegration, wantStatus: http.StatusBadGateway},
		{name: "unexpected", path: "/api/sync/full", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(config.App{})
			deps.sync.err = tt.err
			deps.sync.result = models.SyncResult{Courses: 2, Changed: 1}

			rr := serve(h, http.MethodPost, tt.path, "")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			if tt.err != nil {
				assert.Contains(t, rr.Body.String(), `"error"`)
				return
			}

			var got models.SyncResult
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, 2, got.Courses)
			assert.Equal(t, 1, got.Changed)
			assert.Equal(t, models.PassKind(strings.TrimPrefix(tt.path, "/api/sync/")), got.Pass)
		})
	}
}

func TestTriggerPass_DetachedFromRequestCancellation(t *testing.T) {
	h, deps := newTestHandler(config.App{})

	rr := serve(h, http.MethodPost, "/api/sync/full", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NoError(t, deps.sync.ctxErr)
	assert.Equal(t, []models.PassKind{models.PassFull}, deps.sync.kinds)
}

// ── /api/sync/last ──

func TestLastResults(t *testing.T) {
	h, deps := newTestHandler(config.App{})
	deps.sync.last = []models.SyncResult{{Pass: models.PassFull, Courses: 3}, {Pass: models.PassDelta}}

	rr := serve(h, http.MethodGet, "/api/sync/last", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var got lastResultsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Length)
	assert.Equal(t, models.PassFull, got.Results[0].Pass)
	assert.Equal(t, 3, got.Results[0].Courses)
}

func TestLastResults_EmptyIsArray(t *testing.T) {
	h, _ := newTestHandler(config.App{})

	rr := serve(h, http.MethodGet, "/api/sync/last", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"results":[],"length":0}`, rr.Body.String())
}

// ── Authentication ──

func TestOperatorRoutes_RequireTokenWhenKeySet(t *testing.T) {
	h, deps := newTestHandler(config.App{TokenSignKey: testSignKey, TokenIssuer: "classroom-sync"})

	valid, err := utils.GenerateJWTToken("classroom-sync", "ops", time.Hour, testSignKey)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWTToken("classroom-sync", "ops", time.Hour, "other-key")
	require.NoError(t, err)
	wrongIssuer, err := utils.GenerateJWTToken("someone-else", "ops", time.Hour, testSignKey)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "foreign signature", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "wrong issuer", header: "Bearer " + wrongIssuer, wantStatus: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(h, http.MethodGet, "/api/sync/last", tt.header)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}

	rr := serve(h, http.MethodPost, "/api/sync/delta", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, deps.sync.kinds, "rejected request must not run a pass")
}

func TestProbes_AreOpenWhenKeySet(t *testing.T) {
	h, _ := newTestHandler(config.App{TokenSignKey: testSignKey})

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/healthz", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/version", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/metrics", "").Code)
}

// ── Probes ──

func TestHealthz(t *testing.T) {
	h, deps := newTestHandler(config.App{})

	rr := serve(h, http.MethodGet, "/api/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, rr.Body.String())

	deps.pinger.err = errors.New("connection refused")
	rr = serve(h, http.MethodGet, "/api/healthz", "")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"degraded","database":"unreachable"}`, rr.Body.String())
}

func TestGetServerVersion(t *testing.T) {
	h, _ := newTestHandler(config.App{})

	rr := serve(h, http.MethodGet, "/api/version", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.4.0","build_commit":"abc123"}`, rr.Body.String())
}

func TestMetrics_ExposesRequestCounter(t *testing.T) {
	h, _ := newTestHandler(config.App{})
	router := h.Init()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/sync/full", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `route="/api/sync/{pass}"`)
}

// ── Routing ──

func TestUnknownMethodOrRoute_NotFound(t *testing.T) {
	h, _ := newTestHandler(config.App{})

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodDelete, "/api/sync/last", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/sync/full", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/nothing", "").Code)
}

func TestInit_EchoesTraceID(t *testing.T) {
	h, _ := newTestHandler(config.App{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-42")
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	assert.Equal(t, "trace-42", rr.Header().Get(traceIDHeader))
}
