// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/mock"
	"github.com/sama64/nerdeala25/internal/service"
	"github.com/sama64/nerdeala25/internal/utils"
	"github.com/sama64/nerdeala25/models"
)

func newTestApp(t *testing.T, auth config.App) (Client, *mock.MockSyncService, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	syncSvc := mock.NewMockSyncService(ctrl)
	out := &bytes.Buffer{}

	app, err := NewApp(&service.Services{SyncService: syncSvc}, auth, out, logger.Nop())
	require.NoError(t, err)
	return app, syncSvc, out
}

func TestNewApp_RequiresSyncService(t *testing.T) {
	_, err := NewApp(&service.Services{}, config.App{}, &bytes.Buffer{}, logger.Nop())
	assert.Error(t, err)
}

// ── passes ──

func TestRun_PrintsPassResult(t *testing.T) {
	app, syncSvc, out := newTestApp(t, config.App{})

	syncSvc.EXPECT().RunPass(gomock.Any(), models.PassDelta).
		Return(models.SyncResult{Pass: models.PassDelta, Courses: 2, Changed: 1}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"delta"}))

	var got models.SyncResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 2, got.Courses)
	assert.Equal(t, 1, got.Changed)
}

func TestRun_PassErrorIsReturned(t *testing.T) {
	app, syncSvc, out := newTestApp(t, config.App{})

	syncSvc.EXPECT().RunPass(gomock.Any(), models.PassFull).Return(models.SyncResult{}, service.ErrNoCredentials)

	err := app.Run(context.Background(), []string{"full"})

	assert.ErrorIs(t, err, service.ErrNoCredentials)
	assert.Empty(t, out.String())
}

func TestRun_Usage(t *testing.T) {
	app, _, _ := newTestApp(t, config.App{})

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"weekly"}), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"token"}), ErrUsage)
}

// ── token ──

func TestRun_MintsVerifiableToken(t *testing.T) {
	app, _, out := newTestApp(t, config.App{TokenSignKey: "k", TokenIssuer: "ops-issuer"})

	require.NoError(t, app.Run(context.Background(), []string{"token", "alice", "1h"}))

	subject, err := utils.ValidateJWTToken(strings.TrimSpace(out.String()), "k", "ops-issuer")
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestRun_TokenNeedsKeyAndValidDuration(t *testing.T) {
	app, _, _ := newTestApp(t, config.App{})
	assert.Error(t, app.Run(context.Background(), []string{"token", "alice"}))

	app, _, _ = newTestApp(t, config.App{TokenSignKey: "k"})
	assert.ErrorIs(t, app.Run(context.Background(), []string{"token", "alice", "soon"}), ErrUsage)
}
