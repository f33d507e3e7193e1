// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"fmt"
	"io"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
)

// New builds the Notifier selected by cfg.Kind. The returned closer releases
// the transport's connections and is never nil.
func New(ctx context.Context, cfg config.Notifier, log *logger.Logger) (Notifier, io.Closer, error) {
	switch cfg.Kind {
	case "", config.NotifierConsole:
		return NewConsoleNotifier(log), nopCloser{}, nil
	case config.NotifierHTTP:
		n, err := NewHTTPNotifier(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return n, nopCloser{}, nil
	case config.NotifierRedis:
		client, err := NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisQueueNotifier(client, cfg.Queue, log), client, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
