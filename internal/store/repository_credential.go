// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

// credentialRepository implements [CredentialRepository] against
// "oauth_credentials".
type credentialRepository struct {
	q      queryer
	logger *logger.Logger
}

func (r *credentialRepository) List(ctx context.Context) ([]models.OAuthCredential, error) {
	log := logger.FromContext(ctx)

	rows, err := r.q.QueryContext(ctx, listCredentials)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.List").Msg("error querying credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	creds := make([]models.OAuthCredential, 0)
	for rows.Next() {
		var (
			cred      models.OAuthCredential
			expiresAt sql.NullTime
		)
		if err := rows.Scan(&cred.UserID, &cred.AccessToken, &cred.RefreshToken, &expiresAt, &cred.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*credentialRepository.List").Msg("error scanning credential")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		cred.ExpiresAt = timePtr(expiresAt)
		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return creds, nil
}

func (r *credentialRepository) Save(ctx context.Context, cred models.OAuthCredential) error {
	log := logger.FromContext(ctx)

	_, err := r.q.ExecContext(ctx, saveCredential, cred.UserID, cred.AccessToken, cred.RefreshToken, nullableTime(cred.ExpiresAt), timeNow())
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Save").Int64("user_id", cred.UserID).Msg("error saving credential")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
