// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/metrics"
	"github.com/sama64/nerdeala25/internal/service"
	"github.com/sama64/nerdeala25/models"
)

const testSignKey = "admin-secret"

// ── Fakes ──

type fakeSyncService struct {
	mu     sync.Mutex
	kinds  []models.PassKind
	result models.SyncResult
	err    error
	last   []models.SyncResult
	ctxErr error
}

func (f *fakeSyncService) RunPass(ctx context.Context, kind models.PassKind) (models.SyncResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return models.SyncResult{}, f.err
	}
	r := f.result
	r.Pass = kind
	return r, nil
}

func (f *fakeSyncService) LastResults() []models.SyncResult { return f.last }

type fakeAppInfo struct {
	info models.AppInfo
}

func (f *fakeAppInfo) GetAppInfo(context.Context) models.AppInfo { return f.info }

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

// ── Builders ──

type testDeps struct {
	sync    *fakeSyncService
	pinger  *fakePinger
	metrics *metrics.Metrics
}

func newTestHandler(auth config.App) (*Handler, *testDeps) {
	deps := &testDeps{
		sync:    &fakeSyncService{},
		pinger:  &fakePinger{},
		metrics: metrics.New(),
	}
	services := &service.Services{
		AppInfoService: &fakeAppInfo{info: models.AppInfo{Version: "1.4.0", Commit: "abc123"}},
		SyncService:    deps.sync,
	}
	return NewHandler(services, deps.pinger, deps.metrics, auth, logger.Nop()), deps
}

// withBufferLogger puts a JSON logger writing to buf into the request context.
func withBufferLogger(r *http.Request, buf *bytes.Buffer) *http.Request {
	l := zerolog.New(buf)
	return r.WithContext(l.WithContext(r.Context()))
}
