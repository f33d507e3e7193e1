// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AssigneeMode tells which students an assignment targets.
type AssigneeMode string

const (
	AssigneeAllStudents        AssigneeMode = "ALL_STUDENTS"
	AssigneeIndividualStudents AssigneeMode = "INDIVIDUAL_STUDENTS"
)

// Assignment is a piece of coursework. The same type carries the parsed
// upstream record and the local row; ID is globally unique upstream.
type Assignment struct {
	ID            string     `json:"id"`
	CourseID      string     `json:"course_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	WorkType      string     `json:"work_type,omitempty"`
	State         string     `json:"state,omitempty"`
	DueAt         *time.Time `json:"due_at,omitempty"`
	AlternateLink string     `json:"alternate_link,omitempty"`
	MaxPoints     *float64   `json:"max_points,omitempty"`
	CreatedTime   *time.Time `json:"created_time,omitempty"`
	UpdatedTime   *time.Time `json:"updated_time,omitempty"`

	AssigneeMode AssigneeMode `json:"assignee_mode,omitempty"`
	// AssigneeUserIDs is always empty when AssigneeMode is AssigneeAllStudents.
	AssigneeUserIDs []string `json:"assignee_user_ids"`
}

// TableName returns the name of the database table
// associated with the Assignment model.
func (a Assignment) TableName() string {
	return "course_assignments"
}
