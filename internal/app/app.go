// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the sync engine from configuration: storage,
// metrics, the catalog adapter, the notifier and the service layer. Both
// binaries build on it; the daemon additionally asks it for a [server.Server].
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sama64/nerdeala25/internal/adapter"
	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/handler"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/metrics"
	"github.com/sama64/nerdeala25/internal/notifier"
	"github.com/sama64/nerdeala25/internal/server"
	"github.com/sama64/nerdeala25/internal/service"
	"github.com/sama64/nerdeala25/internal/store"
	"github.com/sama64/nerdeala25/internal/workers"
	"github.com/sama64/nerdeala25/models"
)

type App struct {
	Config   *config.StructuredConfig
	Storages *store.Storages
	Metrics  *metrics.Metrics
	Services *service.Services

	closers []io.Closer
	logger  *logger.Logger
}

// New connects every dependency named by cfg. On error, whatever was
// already opened is closed again.
func New(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) (_ *App, err error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}

	a := &App{Config: cfg, logger: log}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.Storages, err = store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}
	a.closers = append(a.closers, a.Storages)

	a.Metrics = metrics.New()

	fetcher, err := adapter.NewFetcher(cfg.Adapter, log, adapter.WithRecorder(a.Metrics))
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}
	classroom := adapter.NewClassroomAdapter(fetcher, cfg.Adapter, log)

	n, closer, err := notifier.New(ctx, cfg.Notifier, log)
	if err != nil {
		return nil, fmt.Errorf("create notifier: %w", err)
	}
	a.closers = append(a.closers, closer)

	a.Services = service.NewServices(a.Storages, classroom, n, a.Metrics, *cfg, build, log)

	log.Info().
		Str("driver", cfg.Storage.DB.Driver).
		Str("notifier", cfg.Notifier.Kind).
		Msg("application assembled")
	return a, nil
}

// NewServer builds the daemon: the periodic sync jobs and, when an address
// is configured, the admin API.
func (a *App) NewServer() (server.Server, error) {
	handlers, err := handler.NewHandlers(a.Services, a.Storages, a.Metrics, *a.Config, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create handlers: %w", err)
	}

	jobs := workers.NewWorkers(a.Services, a.Config.Workers, a.logger)

	return server.NewServer(handlers, jobs, a.Config.Server, a.logger)
}

// Close releases the notifier transport and the database pool, in reverse
// order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
