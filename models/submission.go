// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Submission states reported upstream.
const (
	SubmissionStateNew       = "NEW"
	SubmissionStateCreated   = "CREATED"
	SubmissionStateTurnedIn  = "TURNED_IN"
	SubmissionStateReturned  = "RETURNED"
	SubmissionStateReclaimed = "RECLAIMED_BY_STUDENT"
)

// Attachment is a file or link attached to a submission.
type Attachment struct {
	Kind  string `json:"kind"`
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Submission is a student's submission for one assignment. The same type
// carries the parsed upstream record and the local row.
type Submission struct {
	ID            string       `json:"id"`
	CourseID      string       `json:"course_id"`
	CourseWorkID  string       `json:"coursework_id"`
	GoogleUserID  string       `json:"google_user_id"`
	MatchedUserID *int64       `json:"matched_user_id,omitempty"`
	State         string       `json:"state,omitempty"`
	Late          bool         `json:"late"`
	TurnedInAt    *time.Time   `json:"turned_in_at,omitempty"`
	AssignedGrade *float64     `json:"assigned_grade,omitempty"`
	DraftGrade    *float64     `json:"draft_grade,omitempty"`
	Attachments   []Attachment `json:"attachments"`
	UpdatedTime   *time.Time   `json:"updated_time,omitempty"`
}

// TableName returns the name of the database table
// associated with the Submission model.
func (s Submission) TableName() string {
	return "course_submissions"
}

// Transition is the kind of meaningful change between two observations of
// the same submission.
type Transition int

const (
	TransitionNone Transition = iota
	// TransitionLate means the late flag flipped from false to true.
	TransitionLate
	// TransitionReturned means the state entered RETURNED.
	TransitionReturned
)

func (t Transition) String() string {
	switch t {
	case TransitionLate:
		return "late"
	case TransitionReturned:
		return "returned"
	default:
		return "none"
	}
}

// DetectTransition compares the previous and the current observation of a
// submission. A late flip wins over a return when both happen at once.
func DetectTransition(prev, cur Submission) Transition {
	if cur.Late && !prev.Late {
		return TransitionLate
	}
	if !isReturned(prev.State) && isReturned(cur.State) {
		return TransitionReturned
	}
	return TransitionNone
}

func isReturned(state string) bool {
	return strings.EqualFold(state, SubmissionStateReturned)
}
