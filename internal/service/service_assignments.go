// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/sama64/nerdeala25/internal/adapter"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/store"
	"github.com/sama64/nerdeala25/models"
)

const courseWorkKey = "coursework"

type assignmentReconciler struct {
	classroom adapter.ClassroomAdapter
}

func (r *assignmentReconciler) fetch(ctx context.Context, etags store.ETagRepository, token, courseID string) (adapter.Listing[models.Assignment], error) {
	etag, err := etags.Get(ctx, courseID, courseWorkKey)
	if err != nil {
		return adapter.Listing[models.Assignment]{}, fmt.Errorf("read coursework etag: %w", err)
	}

	listing, err := r.classroom.ListAssignments(ctx, token, courseID, etag)
	if err != nil {
		return adapter.Listing[models.Assignment]{}, fmt.Errorf("list coursework: %w", err)
	}
	return listing, nil
}

// apply upserts the fetched coursework and returns the number of upserted
// rows together with the assignments stored for the first time.
func (r *assignmentReconciler) apply(ctx context.Context, repos *store.Repositories, courseID string, listing adapter.Listing[models.Assignment]) (int, []models.Assignment, error) {
	log := logger.FromContext(ctx)

	if listing.NotModified {
		return 0, nil, nil
	}

	var (
		seen      = make([]string, 0, len(listing.Items))
		created   []models.Assignment
		processed int
	)
	for _, a := range listing.Items {
		a.CourseID = courseID

		exists, err := repos.Assignments.Exists(ctx, a.ID)
		if err != nil {
			return processed, nil, fmt.Errorf("check assignment %s: %w", a.ID, err)
		}

		if err := repos.Assignments.Upsert(ctx, a); err != nil {
			return processed, nil, fmt.Errorf("upsert assignment %s: %w", a.ID, err)
		}
		if !exists {
			created = append(created, a)
		}

		seen = append(seen, a.ID)
		processed++
	}

	if !listing.Complete() {
		log.Warn().Str("collection", courseWorkKey).Msg("coursework listing incomplete, keeping existing rows")
		return processed, created, nil
	}

	deleted, err := repos.Assignments.DeleteAbsent(ctx, courseID, seen)
	if err != nil {
		return processed, nil, fmt.Errorf("delete absent assignments: %w", err)
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("removed assignments absent upstream")
	}

	if err := repos.ETags.Set(ctx, courseID, courseWorkKey, listing.ETag); err != nil {
		return processed, nil, fmt.Errorf("write coursework etag: %w", err)
	}

	return processed, created, nil
}
