// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PassKind names a sync pass.
type PassKind string

const (
	// PassFull converges courses, rosters and assignments.
	PassFull PassKind = "full"
	// PassDelta converges submissions only.
	PassDelta PassKind = "delta"
)

// CourseUpdates reports the meaningful submission changes seen in one course.
type CourseUpdates struct {
	CourseID string `json:"course_id"`
	Updates  int    `json:"updates"`
}

// SyncResult aggregates the counters of a pass. Only courses whose
// transaction committed contribute to the counters; FailedCourses counts the
// rolled back ones.
type SyncResult struct {
	Pass PassKind `json:"pass"`

	Courses      int `json:"courses"`
	Participants int `json:"participants"`
	Assignments  int `json:"assignments"`
	Submissions  int `json:"submissions"`
	// Changed is the number of submissions with a meaningful transition.
	Changed       int             `json:"processed"`
	CourseUpdates []CourseUpdates `json:"course_updates,omitempty"`

	FailedCourses int `json:"failed_courses"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Add folds the counters of other into r. Timestamps are widened to cover both.
func (r *SyncResult) Add(other SyncResult) {
	r.Courses += other.Courses
	r.Participants += other.Participants
	r.Assignments += other.Assignments
	r.Submissions += other.Submissions
	r.Changed += other.Changed
	r.FailedCourses += other.FailedCourses
	r.CourseUpdates = append(r.CourseUpdates, other.CourseUpdates...)

	if r.StartedAt.IsZero() || (!other.StartedAt.IsZero() && other.StartedAt.Before(r.StartedAt)) {
		r.StartedAt = other.StartedAt
	}
	if other.FinishedAt.After(r.FinishedAt) {
		r.FinishedAt = other.FinishedAt
	}
}
