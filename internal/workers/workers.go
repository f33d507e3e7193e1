// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/service"
	"github.com/sama64/nerdeala25/models"
)

type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewWorkers builds the periodic full and delta sync jobs. RunOnStart only
// applies to the full job: the delta job would lose the pass lock to it.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			service.NewSyncJob(services.SyncService, models.PassFull, cfg.FullInterval, cfg.RunOnStart, logger),
			service.NewSyncJob(services.SyncService, models.PassDelta, cfg.DeltaInterval, false, logger),
		},
		logger: logger,
	}
}

// Start starts every worker in order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
	if w.logger != nil {
		w.logger.Info().Int("workers", len(w.workers)).Msg("background workers started")
	}
}

// Stop stops every worker in reverse order and waits for each to return.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
