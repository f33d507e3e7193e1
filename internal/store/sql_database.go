// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/migrations"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// statementBuilder returns a squirrel builder using the placeholder format
// of the given driver.
func statementBuilder(driver string) sq.StatementBuilderType {
	if driver == DriverSQLite {
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// open connects with the given driver, applies pool settings and pings the
// database before handing it out.
func open(ctx context.Context, driver, dsn string, classifier ErrorClassificator, log *logger.Logger, tune func(*sql.DB)) (*DB, error) {
	l := log.With().Str("func", "store.open").Str("driver", driver).Logger()

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		l.Err(err).Msg("error opening database")
		return nil, fmt.Errorf("error opening %s database: %w", driver, err)
	}
	if tune != nil {
		tune(conn)
	}

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		l.Err(err).Msg("error connecting database (ping)")
		return nil, fmt.Errorf("error connecting %s database: %w", driver, err)
	}
	l.Debug().Msg("connected to database")

	return &DB{
		DB:                 conn,
		driver:             driver,
		builder:            statementBuilder(driver),
		errorClassificator: classifier,
		logger:             log,
	}, nil
}
