// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/service"
	"github.com/sama64/nerdeala25/internal/utils"
	"github.com/sama64/nerdeala25/models"
)

const (
	defaultTokenIssuer   = "classroom-sync"
	defaultTokenDuration = 24 * time.Hour
)

// ErrUsage is returned for a missing or unknown command.
var ErrUsage = errors.New("usage: classroom-sync-cli [flags] full|delta|token <subject> [duration]")

type App struct {
	services *service.Services
	auth     config.App
	out      io.Writer
	logger   *logger.Logger
}

func NewApp(services *service.Services, auth config.App, out io.Writer, logger *logger.Logger) (Client, error) {
	if services == nil || services.SyncService == nil {
		return nil, errors.New("client: sync service is required")
	}
	return &App{services: services, auth: auth, out: out, logger: logger}, nil
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch cmd := args[0]; cmd {
	case string(models.PassFull), string(models.PassDelta):
		return a.runPass(ctx, models.PassKind(cmd))
	case "token":
		return a.mintToken(args[1:])
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) runPass(ctx context.Context, kind models.PassKind) error {
	a.logger.Info().Str("pass", string(kind)).Msg("running one-shot pass")

	result, err := a.services.SyncService.RunPass(ctx, kind)
	if err != nil {
		return fmt.Errorf("%s pass: %w", kind, err)
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (a *App) mintToken(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: token needs a subject", ErrUsage)
	}
	if a.auth.TokenSignKey == "" {
		return errors.New("APP_TOKEN_SIGN_KEY is not set")
	}

	duration := defaultTokenDuration
	if len(args) > 1 {
		d, err := time.ParseDuration(args[1])
		if err != nil {
			return fmt.Errorf("%w: invalid duration %q", ErrUsage, args[1])
		}
		duration = d
	}

	issuer := a.auth.TokenIssuer
	if issuer == "" {
		issuer = defaultTokenIssuer
	}

	token, err := utils.GenerateJWTToken(issuer, args[0], duration, a.auth.TokenSignKey)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.out, token)
	return err
}
