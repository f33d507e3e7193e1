// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

// identityRepository reads the "users" table. Identities are owned by the
// surrounding application; the sync engine never writes them.
type identityRepository struct {
	q      queryer
	logger *logger.Logger
}

func (r *identityRepository) FindByEmail(ctx context.Context, email string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.Identity{}, ErrIdentityNotFound
	}

	var identity models.Identity
	err := r.q.QueryRowContext(ctx, findIdentityByEmail, email).Scan(&identity.ID, &identity.Name, &identity.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Identity{}, ErrIdentityNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*identityRepository.FindByEmail").Msg("error scanning identity")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return identity, nil
}

func (r *identityRepository) FindByName(ctx context.Context, name string) ([]models.Identity, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	rows, err := r.q.QueryContext(ctx, findIdentitiesByName, name)
	if err != nil {
		log.Err(err).Str("func", "*identityRepository.FindByName").Msg("error querying identities")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var identities []models.Identity
	for rows.Next() {
		var identity models.Identity
		if err := rows.Scan(&identity.ID, &identity.Name, &identity.Email); err != nil {
			log.Err(err).Str("func", "*identityRepository.FindByName").Msg("error scanning identity")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		identities = append(identities, identity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return identities, nil
}

// contactRepository implements [ContactRepository] against "user_contacts".
type contactRepository struct {
	q       queryer
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

func (r *contactRepository) UpsertEmail(ctx context.Context, userID int64, email string) error {
	log := logger.FromContext(ctx)

	_, err := r.q.ExecContext(ctx, upsertContactEmail, userID, strings.ToLower(strings.TrimSpace(email)), timeNow())
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.UpsertEmail").Int64("user_id", userID).Msg("error upserting contact")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *contactRepository) GetPhoneMap(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	log := logger.FromContext(ctx)

	phones := make(map[int64]string, len(userIDs))
	if len(userIDs) == 0 {
		return phones, nil
	}

	query, args, err := buildPhoneMapQuery(r.builder, userIDs)
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.GetPhoneMap").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.GetPhoneMap").Msg("error querying phones")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID int64
			phone  string
		)
		if err := rows.Scan(&userID, &phone); err != nil {
			log.Err(err).Str("func", "*contactRepository.GetPhoneMap").Msg("error scanning phone")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		phones[userID] = phone
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return phones, nil
}
