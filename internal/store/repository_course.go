// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

// courseRepository implements [CourseRepository] against the "courses" table.
type courseRepository struct {
	q      queryer
	logger *logger.Logger
}

func (r *courseRepository) Get(ctx context.Context, id string) (models.Course, error) {
	log := logger.FromContext(ctx)

	var (
		course    models.Course
		teacherID sql.NullInt64
	)
	err := r.q.QueryRowContext(ctx, getCourse, id).
		Scan(&course.ID, &course.Name, &course.Description, &teacherID, &course.CreatedAt, &course.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Course{}, ErrCourseNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*courseRepository.Get").Str("course_id", id).Msg("error scanning course")
		return models.Course{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	course.TeacherID = intPtr(teacherID)

	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course models.Course) error {
	log := logger.FromContext(ctx)

	_, err := r.q.ExecContext(ctx, createCourse, course.ID, course.Name, course.Description, nullableInt(course.TeacherID), timeNow())
	if err != nil {
		log.Err(err).Str("func", "*courseRepository.Create").Str("course_id", course.ID).Msg("error inserting course")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *courseRepository) Update(ctx context.Context, course models.Course) error {
	log := logger.FromContext(ctx)

	_, err := r.q.ExecContext(ctx, updateCourse, course.Name, course.Description, timeNow(), course.ID)
	if err != nil {
		log.Err(err).Str("func", "*courseRepository.Update").Str("course_id", course.ID).Msg("error updating course")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
