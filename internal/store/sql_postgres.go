// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
)

const (
	postgresMaxOpenConns = 10
	postgresMaxIdleConns = 4
)

func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	return open(ctx, DriverPostgres, cfg.DSN, NewPostgresErrorClassifier(), log, func(conn *sql.DB) {
		conn.SetMaxOpenConns(postgresMaxOpenConns)
		conn.SetMaxIdleConns(postgresMaxIdleConns)
	})
}
