// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"

	"github.com/sama64/nerdeala25/internal/app"
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
	log := logger.NewLogger("classroom-sync")
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().
		Str("version", orNA(build.BuildVersion())).
		Str("date", orNA(build.BuildDate())).
		Str("commit", orNA(build.BuildCommit())).
		Msg("starting")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	application, err := app.New(context.Background(), cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error assembling application")
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Err(err).Msg("error closing application")
		}
	}()

	srv, err := application.NewServer()
	if err != nil {
		log.Err(err).Msg("error creating server")
		return
	}

	srv.RunServer()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
