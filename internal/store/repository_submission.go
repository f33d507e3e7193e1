// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

// submissionRepository implements [SubmissionRepository] against the
// "course_submissions" table. Attachments are stored as a JSON array.
type submissionRepository struct {
	q      queryer
	logger *logger.Logger
}

func (r *submissionRepository) Get(ctx context.Context, id string) (*models.Submission, error) {
	log := logger.FromContext(ctx)

	var (
		s             models.Submission
		matched       sql.NullInt64
		turnedInAt    sql.NullTime
		assignedGrade sql.NullFloat64
		draftGrade    sql.NullFloat64
		attachments   string
		updatedTime   sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, getSubmission, id).Scan(
		&s.ID, &s.CourseID, &s.CourseWorkID, &s.GoogleUserID, &matched, &s.State, &s.Late,
		&turnedInAt, &assignedGrade, &draftGrade, &attachments, &updatedTime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*submissionRepository.Get").Str("submission_id", id).Msg("error scanning submission")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	s.MatchedUserID = intPtr(matched)
	s.TurnedInAt = timePtr(turnedInAt)
	s.AssignedGrade = floatPtr(assignedGrade)
	s.DraftGrade = floatPtr(draftGrade)
	s.UpdatedTime = timePtr(updatedTime)
	s.Attachments = []models.Attachment{}
	if attachments != "" {
		if err := json.Unmarshal([]byte(attachments), &s.Attachments); err != nil {
			log.Err(err).Str("func", "*submissionRepository.Get").Str("submission_id", id).Msg("error decoding attachments")
			return nil, fmt.Errorf("%w: %w", ErrEncodingColumn, err)
		}
	}

	return &s, nil
}

func (r *submissionRepository) Upsert(ctx context.Context, s models.Submission) error {
	log := logger.FromContext(ctx)

	attachments := s.Attachments
	if attachments == nil {
		attachments = []models.Attachment{}
	}
	attachmentsJSON, err := json.Marshal(attachments)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}

	_, err = r.q.ExecContext(ctx, upsertSubmission,
		s.ID,
		s.CourseID,
		s.CourseWorkID,
		s.GoogleUserID,
		nullableInt(s.MatchedUserID),
		s.State,
		s.Late,
		nullableTime(s.TurnedInAt),
		nullableFloat(s.AssignedGrade),
		nullableFloat(s.DraftGrade),
		string(attachmentsJSON),
		nullableTime(s.UpdatedTime),
		timeNow(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "*submissionRepository.Upsert").
			Str("course_id", s.CourseID).
			Str("submission_id", s.ID).
			Msg("error upserting submission")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
