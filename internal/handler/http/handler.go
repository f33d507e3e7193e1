// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/metrics"
	"github.com/sama64/nerdeala25/internal/service"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	services *service.Services
	health   HealthChecker
	metrics  *metrics.Metrics
	auth     config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, health HealthChecker, m *metrics.Metrics, auth config.App, logger *logger.Logger) *Handler {
	logger.Info().Bool("auth", auth.TokenSignKey != "").Msg("http handler created")
	return &Handler{
		services: services,
		health:   health,
		metrics:  m,
		auth:     auth,
		logger:   logger,
	}
}
