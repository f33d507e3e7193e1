// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the role a participant holds in a course.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// RemoteParticipant is one entry of a course roster as returned upstream.
// Empty strings mean the upstream did not report the value.
type RemoteParticipant struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	Role     Role   `json:"role"`
}

// Participant is a local roster row, unique per (CourseID, GoogleUserID).
type Participant struct {
	ID           string `json:"id"`
	CourseID     string `json:"course_id"`
	GoogleUserID string `json:"google_user_id"`
	Email        string `json:"email,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	Role         Role   `json:"role"`

	// MatchedUserID is a lookup reference to a local identity; the roster row
	// does not own the identity.
	MatchedUserID *int64 `json:"matched_user_id,omitempty"`

	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Participant model.
func (p Participant) TableName() string {
	return "course_participants"
}
