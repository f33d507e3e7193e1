// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/handler/http"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/metrics"
	"github.com/sama64/nerdeala25/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers enabled by cfg. The admin API
// is optional: with no HTTP address the daemon runs its jobs headless.
func NewHandlers(services *service.Services, health http.HealthChecker, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if services == nil {
		return nil, errNoServices
	}

	handlers := &Handlers{}
	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, health, m, cfg.App, logger)
	}

	return handlers, nil
}
