// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sama64/nerdeala25/internal/logger"
)

type etagRepository struct {
	q      queryer
	logger *logger.Logger
}

func (r *etagRepository) Get(ctx context.Context, courseID, key string) (*string, error) {
	log := logger.FromContext(ctx)

	var etag sql.NullString
	err := r.q.QueryRowContext(ctx, getETag, courseID, key).Scan(&etag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*etagRepository.Get").Str("course_id", courseID).Str("key", key).Msg("error reading etag")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if !etag.Valid || etag.String == "" {
		return nil, nil
	}

	value := etag.String
	return &value, nil
}

func (r *etagRepository) Set(ctx context.Context, courseID, key string, etag *string) error {
	log := logger.FromContext(ctx)

	var value any
	if etag != nil && *etag != "" {
		value = *etag
	}

	_, err := r.q.ExecContext(ctx, setETag, courseID, key, value, timeNow())
	if err != nil {
		log.Err(err).Str("func", "*etagRepository.Set").Str("course_id", courseID).Str("key", key).Msg("error writing etag")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
