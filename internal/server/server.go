// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/handler"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/workers"
)

type server struct {
	httpServer *httpServer
	jobs       workers.Worker
	logger     *logger.Logger
}

// NewServer assembles the daemon from the enabled transports and the
// background jobs. jobs may be nil when only the admin API is wanted.
func NewServer(handlers *handler.Handlers, jobs workers.Worker, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{jobs: jobs, logger: logger}

	if handlers != nil && handlers.HTTP != nil && cfg.HTTPAddress != "" {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}

	if servers.httpServer == nil && servers.jobs == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx, s.startHTTP)
}

func (s *server) Shutdown() {
	// the admin API goes first so no manual pass starts during teardown
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
	if s.jobs != nil {
		s.jobs.Stop()
	}
}

func (s *server) startHTTP() {
	if s.httpServer == nil {
		return
	}
	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
	go s.httpServer.RunServer()
}

// run starts the jobs and the transport, then blocks until ctx is done and
// everything has stopped.
func (s *server) run(ctx context.Context, startTransport func()) {
	if s.jobs != nil {
		s.jobs.Start(ctx)
	}
	startTransport()

	<-ctx.Done()
	s.logger.Info().Msg("stop signal received, shutting down")

	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")
}
