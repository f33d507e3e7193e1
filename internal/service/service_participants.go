// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sama64/nerdeala25/internal/adapter"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/store"
	"github.com/sama64/nerdeala25/models"
)

// rosterRoles are the roster collections of a course, in fetch order.
var rosterRoles = []models.Role{models.RoleTeacher, models.RoleStudent}

// rosterKey is the etag cache key of a roster collection.
func rosterKey(role models.Role) string {
	return string(role) + "s"
}

type rosterFetch struct {
	role    models.Role
	listing adapter.Listing[models.RemoteParticipant]
}

type participantReconciler struct {
	classroom adapter.ClassroomAdapter
}

// fetch reads every roster of the course with its cached validator.
func (r *participantReconciler) fetch(ctx context.Context, etags store.ETagRepository, token, courseID string) ([]rosterFetch, error) {
	fetched := make([]rosterFetch, 0, len(rosterRoles))
	for _, role := range rosterRoles {
		etag, err := etags.Get(ctx, courseID, rosterKey(role))
		if err != nil {
			return nil, fmt.Errorf("read %s etag: %w", rosterKey(role), err)
		}

		listing, err := r.classroom.ListParticipants(ctx, token, courseID, role, etag)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", rosterKey(role), err)
		}
		fetched = append(fetched, rosterFetch{role: role, listing: listing})
	}
	return fetched, nil
}

// apply converges the local roster of the course to the fetched listings
// and returns the number of upserted rows. Rows are deleted by absence only
// for roles whose listing is complete.
func (r *participantReconciler) apply(ctx context.Context, repos *store.Repositories, courseID string, fetched []rosterFetch) (int, error) {
	log := logger.FromContext(ctx)
	resolver := NewIdentityResolver(repos.Identities)

	var (
		seen      []string
		complete  []models.Role
		processed int
	)
	for _, f := range fetched {
		if f.listing.NotModified {
			continue
		}

		for _, rp := range f.listing.Items {
			email := strings.ToLower(strings.TrimSpace(rp.Email))

			matched, err := resolver.Resolve(ctx, email, rp.FullName)
			if err != nil {
				return processed, err
			}

			err = repos.Participants.Upsert(ctx, models.Participant{
				CourseID:      courseID,
				GoogleUserID:  rp.UserID,
				Email:         email,
				FullName:      rp.FullName,
				PhotoURL:      rp.PhotoURL,
				Role:          f.role,
				MatchedUserID: matched,
			})
			if err != nil {
				return processed, fmt.Errorf("upsert participant %s: %w", rp.UserID, err)
			}

			if matched != nil && email != "" {
				if err := repos.Contacts.UpsertEmail(ctx, *matched, email); err != nil {
					return processed, fmt.Errorf("record contact of identity %d: %w", *matched, err)
				}
			}

			seen = append(seen, rp.UserID)
			processed++
		}

		if !f.listing.Complete() {
			log.Warn().Str("collection", rosterKey(f.role)).Msg("roster listing incomplete, keeping existing rows")
			continue
		}

		complete = append(complete, f.role)
		if err := repos.ETags.Set(ctx, courseID, rosterKey(f.role), f.listing.ETag); err != nil {
			return processed, fmt.Errorf("write %s etag: %w", rosterKey(f.role), err)
		}
	}

	if len(complete) == 0 {
		return processed, nil
	}

	deleted, err := repos.Participants.DeleteAbsent(ctx, courseID, complete, seen)
	if err != nil {
		return processed, fmt.Errorf("delete absent participants: %w", err)
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("removed participants absent upstream")
	}

	return processed, nil
}
