// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
)

// txRetryAttempts bounds how many times a course transaction is replayed after
// a retryable driver error (deadlock, serialization failure, lost connection).
const txRetryAttempts = 3

// Storages owns the database handle and exposes repositories bound to the
// connection pool. Writes that must be atomic go through [Storages.WithinTx].
type Storages struct {
	*Repositories
	db *DB
}

// NewStorages connects to the database selected by cfg.Driver, applies
// pending migrations and returns pool-bound repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres, "":
		db, err = NewConnectPostgres(ctx, cfg, log)
	case DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return newStorages(db), nil
}

func newStorages(db *DB) *Storages {
	return &Storages{
		Repositories: newRepositories(db.DB, db.builder, db.logger),
		db:           db,
	}
}

// Ping reports whether the database is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storages) Close() error {
	return s.db.Close()
}

// WithinTx implements [Transactor]. The whole callback is replayed when the
// error classifier marks the failure retryable.
func (s *Storages) WithinTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	backoff := retry.WithMaxRetries(txRetryAttempts-1, retry.NewExponential(100*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.runTx(ctx, fn)
		if err != nil && s.retryable(err) {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "*Storages.WithinTx").Msg("retrying transaction")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *Storages) runTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*Storages.runTx").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(ctx, newRepositories(tx, s.db.builder, s.db.logger)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*Storages.runTx").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *Storages) retryable(err error) bool {
	if s.db.errorClassificator == nil || errors.Is(err, context.Canceled) {
		return false
	}
	return s.db.errorClassificator.Classify(err) == Retryable
}
