// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sama64/nerdeala25/internal/store"
	"github.com/sama64/nerdeala25/models"
)

// ensureCourse creates the local course for rc or renames an existing one.
// A stored description is only filled in when it is empty. Repeating the
// call with the same input writes nothing.
func ensureCourse(ctx context.Context, courses store.CourseRepository, rc models.RemoteCourse) error {
	course, err := courses.Get(ctx, rc.ID)
	if errors.Is(err, store.ErrCourseNotFound) {
		err = courses.Create(ctx, models.Course{
			ID:          rc.ID,
			Name:        rc.Name,
			Description: models.DefaultCourseDescription,
		})
		if err != nil {
			return fmt.Errorf("create course %s: %w", rc.ID, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("get course %s: %w", rc.ID, err)
	}

	changed := false
	if rc.Name != "" && course.Name != rc.Name {
		course.Name = rc.Name
		changed = true
	}
	if strings.TrimSpace(course.Description) == "" {
		course.Description = models.DefaultCourseDescription
		changed = true
	}
	if !changed {
		return nil
	}

	if err := courses.Update(ctx, course); err != nil {
		return fmt.Errorf("update course %s: %w", rc.ID, err)
	}
	return nil
}
