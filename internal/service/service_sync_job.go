// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

// Reference intervals of the periodic passes.
const (
	DefaultDeltaInterval = 5 * time.Minute
	DefaultFullInterval  = 6 * time.Hour
)

type syncJob struct {
	syncService SyncService
	kind        models.PassKind
	interval    time.Duration
	runOnStart  bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a job that runs a pass of the given kind on a ticker.
// A zero or negative interval falls back to the reference interval of the
// kind. The job is idle until Start is called.
func NewSyncJob(syncService SyncService, kind models.PassKind, interval time.Duration, runOnStart bool, logger *logger.Logger) SyncJob {
	if interval <= 0 {
		interval = DefaultDeltaInterval
		if kind == models.PassFull {
			interval = DefaultFullInterval
		}
	}

	return &syncJob{
		syncService: syncService,
		kind:        kind,
		interval:    interval,
		runOnStart:  runOnStart,
		logger:      logger.Child("job", "classroom-"+string(kind)),
	}
}

// Start implements SyncJob. It stops any previously running instance, then
// launches a goroutine that runs the pass every interval. Ticks that arrive
// while a pass is still running are dropped. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()

		if j.runOnStart {
			j.run(jobCtx)
		}

		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.run(jobCtx)
			}
		}
	}()

	j.logger.Info().Dur("interval", j.interval).Msg("sync job started")
}

// Stop implements SyncJob. It cancels the job and blocks until the running
// pass, if any, has returned. Safe to call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *syncJob) run(ctx context.Context) {
	_, err := j.syncService.RunPass(ctx, j.kind)
	switch {
	case err == nil:
	case IsPassInProgress(err):
		j.logger.Debug().Msg("previous pass still running, tick skipped")
	case ctx.Err() != nil:
		j.logger.Debug().Msg("pass interrupted by shutdown")
	default:
		j.logger.Err(err).Msg("scheduled pass failed")
	}
}
