// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sama64/nerdeala25/internal/app"
	"github.com/sama64/nerdeala25/internal/client"
	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.NewLogger("classroom-sync-cli")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	application, err := app.New(ctx, cfg, build, log)
	if err != nil {
		return fmt.Errorf("error assembling application: %w", err)
	}
	defer application.Close()

	cli, err := client.NewApp(application.Services, cfg.App, os.Stdout, log)
	if err != nil {
		return err
	}

	return cli.Run(ctx, flag.Args())
}
