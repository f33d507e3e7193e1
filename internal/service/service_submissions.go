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

const submissionsKey = "submissions"

// submissionChange is a meaningful transition waiting for the course
// transaction to commit.
type submissionChange struct {
	to         models.Recipient
	submission models.Submission
	transition models.Transition
}

type submissionReconciler struct {
	classroom adapter.ClassroomAdapter
}

func (r *submissionReconciler) fetch(ctx context.Context, etags store.ETagRepository, token, courseID string) (adapter.Listing[models.Submission], error) {
	etag, err := etags.Get(ctx, courseID, submissionsKey)
	if err != nil {
		return adapter.Listing[models.Submission]{}, fmt.Errorf("read submissions etag: %w", err)
	}

	listing, err := r.classroom.ListSubmissions(ctx, token, courseID, etag)
	if err != nil {
		return adapter.Listing[models.Submission]{}, fmt.Errorf("list submissions: %w", err)
	}
	return listing, nil
}

// apply upserts the fetched submissions and returns the number of upserted
// rows with the meaningful transitions among them. Submissions are never
// deleted.
func (r *submissionReconciler) apply(ctx context.Context, repos *store.Repositories, courseID string, listing adapter.Listing[models.Submission]) (int, []submissionChange, error) {
	log := logger.FromContext(ctx)

	if listing.NotModified {
		return 0, nil, nil
	}

	roster, err := repos.Participants.ListByCourse(ctx, courseID)
	if err != nil {
		return 0, nil, fmt.Errorf("load roster: %w", err)
	}

	byRemoteID := make(map[string]models.Participant, len(roster))
	matchedIDs := make([]int64, 0, len(roster))
	for _, p := range roster {
		byRemoteID[p.GoogleUserID] = p
		if p.MatchedUserID != nil {
			matchedIDs = append(matchedIDs, *p.MatchedUserID)
		}
	}

	phones, err := repos.Contacts.GetPhoneMap(ctx, matchedIDs)
	if err != nil {
		return 0, nil, fmt.Errorf("load phones: %w", err)
	}

	var (
		changes   []submissionChange
		contacted = make(map[int64]struct{})
		processed int
	)
	for _, s := range listing.Items {
		s.CourseID = courseID
		p := byRemoteID[s.GoogleUserID]
		s.MatchedUserID = p.MatchedUserID

		prev, err := repos.Submissions.Get(ctx, s.ID)
		if err != nil {
			return processed, nil, fmt.Errorf("load submission %s: %w", s.ID, err)
		}

		if err := repos.Submissions.Upsert(ctx, s); err != nil {
			return processed, nil, fmt.Errorf("upsert submission %s: %w", s.ID, err)
		}
		processed++

		var phone string
		if p.MatchedUserID != nil {
			phone = phones[*p.MatchedUserID]
			_, done := contacted[*p.MatchedUserID]
			if phone == "" && p.Email != "" && !done {
				contacted[*p.MatchedUserID] = struct{}{}
				if err := repos.Contacts.UpsertEmail(ctx, *p.MatchedUserID, p.Email); err != nil {
					return processed, nil, fmt.Errorf("record contact of identity %d: %w", *p.MatchedUserID, err)
				}
			}
		}

		if prev == nil {
			continue
		}
		t := models.DetectTransition(*prev, s)
		if t == models.TransitionNone {
			continue
		}

		changes = append(changes, submissionChange{
			to: models.Recipient{
				GoogleUserID:  s.GoogleUserID,
				MatchedUserID: p.MatchedUserID,
				Name:          p.FullName,
				Email:         p.Email,
				Phone:         phone,
			},
			submission: s,
			transition: t,
		})
	}

	if listing.Complete() {
		if err := repos.ETags.Set(ctx, courseID, submissionsKey, listing.ETag); err != nil {
			return processed, nil, fmt.Errorf("write submissions etag: %w", err)
		}
	} else {
		log.Warn().Str("collection", submissionsKey).Msg("submissions listing incomplete")
	}

	return processed, changes, nil
}
