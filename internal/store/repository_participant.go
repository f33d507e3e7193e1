// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/utils"
	"github.com/sama64/nerdeala25/models"
)

// participantRepository implements [ParticipantRepository] against the
// "course_participants" table.
type participantRepository struct {
	q       queryer
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// Upsert keys rows by (course, remote user). The surrogate id is generated
// only for a brand-new row; the conflict branch keeps the stored one.
func (r *participantRepository) Upsert(ctx context.Context, p models.Participant) error {
	log := logger.FromContext(ctx)

	seenAt := p.LastSeenAt
	if seenAt.IsZero() {
		seenAt = timeNow()
	}

	_, err := r.q.ExecContext(ctx, upsertParticipant,
		utils.NewID(),
		p.CourseID,
		p.GoogleUserID,
		p.Email,
		p.FullName,
		p.PhotoURL,
		string(p.Role),
		nullableInt(p.MatchedUserID),
		seenAt.UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "*participantRepository.Upsert").
			Str("course_id", p.CourseID).
			Str("google_user_id", p.GoogleUserID).
			Msg("error upserting participant")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *participantRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Participant, error) {
	log := logger.FromContext(ctx)

	rows, err := r.q.QueryContext(ctx, listParticipantsByCourse, courseID)
	if err != nil {
		log.Err(err).Str("func", "*participantRepository.ListByCourse").Str("course_id", courseID).Msg("error querying participants")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var (
			p       models.Participant
			role    string
			matched sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.CourseID, &p.GoogleUserID, &p.Email, &p.FullName, &p.PhotoURL,
			&role, &matched, &p.LastSeenAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*participantRepository.ListByCourse").Msg("error scanning participant")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		p.Role = models.Role(role)
		p.MatchedUserID = intPtr(matched)
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*participantRepository.ListByCourse").Msg("error iterating participants")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return participants, nil
}

func (r *participantRepository) DeleteAbsent(ctx context.Context, courseID string, roles []models.Role, seen []string) (int64, error) {
	log := logger.FromContext(ctx)

	if len(roles) == 0 {
		return 0, nil
	}

	query, args, err := buildDeleteAbsentParticipantsQuery(r.builder, courseID, roles, seen)
	if err != nil {
		log.Err(err).Str("func", "*participantRepository.DeleteAbsent").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*participantRepository.DeleteAbsent").Str("course_id", courseID).Msg("error deleting absent participants")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return deleted, nil
}

func (r *participantRepository) ListStudentRecipients(ctx context.Context, courseID string) ([]models.Recipient, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildStudentRecipientsQuery(r.builder, courseID)
	if err != nil {
		log.Err(err).Str("func", "*participantRepository.ListStudentRecipients").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*participantRepository.ListStudentRecipients").Str("course_id", courseID).Msg("error querying recipients")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	recipients := make([]models.Recipient, 0)
	for rows.Next() {
		var (
			rc      models.Recipient
			matched sql.NullInt64
		)
		if err := rows.Scan(&rc.GoogleUserID, &matched, &rc.Name, &rc.Email, &rc.Phone); err != nil {
			log.Err(err).Str("func", "*participantRepository.ListStudentRecipients").Msg("error scanning recipient")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rc.MatchedUserID = intPtr(matched)
		recipients = append(recipients, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return recipients, nil
}
