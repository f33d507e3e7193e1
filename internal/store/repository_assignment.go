// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

// assignmentRepository implements [AssignmentRepository] against the
// "course_assignments" table. Assignee ids are stored as a JSON array.
type assignmentRepository struct {
	q       queryer
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

func (r *assignmentRepository) Exists(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx)

	var one int
	err := r.q.QueryRowContext(ctx, assignmentExists, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*assignmentRepository.Exists").Str("coursework_id", id).Msg("error checking assignment")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return true, nil
}

func (r *assignmentRepository) Upsert(ctx context.Context, a models.Assignment) error {
	log := logger.FromContext(ctx)

	assignees := a.AssigneeUserIDs
	if assignees == nil {
		assignees = []string{}
	}
	assigneesJSON, err := json.Marshal(assignees)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}

	_, err = r.q.ExecContext(ctx, upsertAssignment,
		a.ID,
		a.CourseID,
		a.Title,
		a.Description,
		a.WorkType,
		a.State,
		nullableTime(a.DueAt),
		a.AlternateLink,
		nullableFloat(a.MaxPoints),
		nullableTime(a.CreatedTime),
		nullableTime(a.UpdatedTime),
		string(a.AssigneeMode),
		string(assigneesJSON),
		timeNow(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "*assignmentRepository.Upsert").
			Str("course_id", a.CourseID).
			Str("coursework_id", a.ID).
			Msg("error upserting assignment")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *assignmentRepository) DeleteAbsent(ctx context.Context, courseID string, seen []string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteAbsentAssignmentsQuery(r.builder, courseID, seen)
	if err != nil {
		log.Err(err).Str("func", "*assignmentRepository.DeleteAbsent").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*assignmentRepository.DeleteAbsent").Str("course_id", courseID).Msg("error deleting absent assignments")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return deleted, nil
}
