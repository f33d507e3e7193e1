// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/service"
	"github.com/sama64/nerdeala25/models"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func sqliteConfig(t *testing.T) *config.StructuredConfig {
	t.Helper()
	return &config.StructuredConfig{
		Storage: config.Storage{DB: config.DB{
			Driver: "sqlite3",
			DSN:    filepath.Join(t.TempDir(), "sync.db"),
		}},
		Adapter: config.Adapter{
			BaseURL:       "http://127.0.0.1:1/v1",
			MaxInFlight:   1,
			RetryAttempts: 1,
		},
		Notifier: config.Notifier{Kind: config.NotifierConsole},
		Workers:  config.Workers{DeltaInterval: 0, FullInterval: 0},
	}
}

// ── New ──

func TestNew_NilConfig(t *testing.T) {
	a, err := New(context.Background(), nil, models.AppBuildInfo{}, logger.Nop())

	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestNew_UnknownNotifierClosesStorage(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Notifier.Kind = "carrier-pigeon"

	a, err := New(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())

	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestNew_AssemblesAndRunsPass(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, sqliteConfig(t), models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Services)
	require.NoError(t, a.Storages.Ping(ctx))
	assert.Equal(t, "1.0.0", a.Services.AppInfoService.GetAppInfo(ctx).Version)

	// no identity has connected an account yet
	_, err = a.Services.SyncService.RunPass(ctx, models.PassFull)
	assert.ErrorIs(t, err, service.ErrNoCredentials)

	srv, err := a.NewServer()
	require.NoError(t, err)
	assert.NotNil(t, srv)
}

// ── Close ──

func TestClose_ReverseOrderAndJoinedErrors(t *testing.T) {
	var order []int
	errFirst := errors.New("first")

	a := &App{closers: []io.Closer{
		closerFunc(func() error { order = append(order, 1); return errFirst }),
		closerFunc(func() error { order = append(order, 2); return nil }),
	}}

	err := a.Close()

	assert.ErrorIs(t, err, errFirst)
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, a.Close(), "second Close is a no-op")
}
