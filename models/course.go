// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DefaultCourseDescription is written to courses created by the sync engine
// and to existing courses whose description is still empty.
const DefaultCourseDescription = "Course synced from Google Classroom"

// RemoteCourse is a course listed by the upstream catalog for the viewer
// whose credential was used. It lives only for the duration of a sync pass.
type RemoteCourse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section,omitempty"`
	Room    string `json:"room,omitempty"`

	// IsTeacher and IsStudent describe the viewer's role in the course. A
	// course listed under both role filters has both flags set.
	IsTeacher bool `json:"is_teacher"`
	IsStudent bool `json:"is_student"`
}

// Course is the local course record. Its ID is shared with the remote course.
// The sync engine creates and renames courses but never deletes them.
type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeacherID   *int64    `json:"teacher_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Course model.
func (c Course) TableName() string {
	return "courses"
}
