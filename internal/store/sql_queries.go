// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/sama64/nerdeala25/models"
)

// Static statements use $n placeholders numbered in order of first
// appearance, which both PostgreSQL and SQLite bind positionally.
const (
	getCourse = `SELECT id, name, description, teacher_id, created_at, updated_at
		FROM courses
		WHERE id = $1;`

	createCourse = `INSERT INTO courses (id, name, description, teacher_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5);`

	updateCourse = `UPDATE courses
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4;`

	upsertParticipant = `INSERT INTO course_participants (
			id,
			course_id,
			google_user_id,
			email,
			full_name,
			photo_url,
			role,
			matched_user_id,
			last_seen_at,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $9, $9)
		ON CONFLICT (course_id, google_user_id) DO UPDATE SET
			email = COALESCE(excluded.email, course_participants.email),
			full_name = COALESCE(excluded.full_name, course_participants.full_name),
			photo_url = COALESCE(excluded.photo_url, course_participants.photo_url),
			role = excluded.role,
			matched_user_id = excluded.matched_user_id,
			last_seen_at = excluded.last_seen_at,
			updated_at = excluded.updated_at;`

	listParticipantsByCourse = `SELECT
			id,
			course_id,
			google_user_id,
			COALESCE(email, ''),
			COALESCE(full_name, ''),
			COALESCE(photo_url, ''),
			role,
			matched_user_id,
			last_seen_at,
			created_at,
			updated_at
		FROM course_participants
		WHERE course_id = $1
		ORDER BY google_user_id;`

	assignmentExists = `SELECT 1 FROM course_assignments WHERE id = $1;`

	upsertAssignment = `INSERT INTO course_assignments (
			id,
			course_id,
			title,
			description,
			work_type,
			state,
			due_at,
			alternate_link,
			max_points,
			created_time,
			updated_time,
			assignee_mode,
			assignee_user_ids,
			synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			course_id = excluded.course_id,
			title = excluded.title,
			description = excluded.description,
			work_type = excluded.work_type,
			state = excluded.state,
			due_at = excluded.due_at,
			alternate_link = excluded.alternate_link,
			max_points = excluded.max_points,
			created_time = excluded.created_time,
			updated_time = excluded.updated_time,
			assignee_mode = excluded.assignee_mode,
			assignee_user_ids = excluded.assignee_user_ids,
			synced_at = excluded.synced_at;`

	getSubmission = `SELECT
			id,
			course_id,
			coursework_id,
			google_user_id,
			matched_user_id,
			COALESCE(state, ''),
			late,
			turned_in_at,
			assigned_grade,
			draft_grade,
			attachments,
			updated_time
		FROM course_submissions
		WHERE id = $1;`

	upsertSubmission = `INSERT INTO course_submissions (
			id,
			course_id,
			coursework_id,
			google_user_id,
			matched_user_id,
			state,
			late,
			turned_in_at,
			assigned_grade,
			draft_grade,
			attachments,
			updated_time,
			synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			course_id = excluded.course_id,
			coursework_id = excluded.coursework_id,
			google_user_id = excluded.google_user_id,
			matched_user_id = excluded.matched_user_id,
			state = excluded.state,
			late = excluded.late,
			turned_in_at = excluded.turned_in_at,
			assigned_grade = excluded.assigned_grade,
			draft_grade = excluded.draft_grade,
			attachments = excluded.attachments,
			updated_time = excluded.updated_time,
			synced_at = excluded.synced_at;`

	getETag = `SELECT etag FROM etag_cache WHERE course_id = $1 AND cache_key = $2;`

	setETag = `INSERT INTO etag_cache (course_id, cache_key, etag, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (course_id, cache_key) DO UPDATE SET
			etag = excluded.etag,
			updated_at = excluded.updated_at;`

	findIdentityByEmail = `SELECT id, name, email
		FROM users
		WHERE LOWER(email) = $1
		ORDER BY id
		LIMIT 1;`

	findIdentitiesByName = `SELECT id, name, email
		FROM users
		WHERE LOWER(name) = LOWER($1)
		ORDER BY id
		LIMIT 2;`

	upsertContactEmail = `INSERT INTO user_contacts (user_id, email, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			email = excluded.email,
			updated_at = excluded.updated_at;`

	listCredentials = `SELECT user_id, access_token, refresh_token, expires_at, updated_at
		FROM oauth_credentials
		ORDER BY user_id;`

	saveCredential = `INSERT INTO oauth_credentials (user_id, access_token, refresh_token, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = COALESCE(NULLIF(excluded.refresh_token, ''), oauth_credentials.refresh_token),
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at;`
)

// buildDeleteAbsentParticipantsQuery deletes roster rows of the given roles
// that were not seen in the latest fetch. An empty seen slice deletes every
// row of those roles.
func buildDeleteAbsentParticipantsQuery(b sq.StatementBuilderType, courseID string, roles []models.Role, seen []string) (string, []any, error) {
	roleNames := make([]string, 0, len(roles))
	for _, role := range roles {
		roleNames = append(roleNames, string(role))
	}

	return b.Delete("course_participants").
		Where(sq.Eq{"course_id": courseID, "role": roleNames}).
		Where(sq.NotEq{"google_user_id": seen}).
		ToSql()
}

// buildDeleteAbsentAssignmentsQuery deletes assignments of a course that were
// not seen in the latest fetch.
func buildDeleteAbsentAssignmentsQuery(b sq.StatementBuilderType, courseID string, seen []string) (string, []any, error) {
	return b.Delete("course_assignments").
		Where(sq.Eq{"course_id": courseID}).
		Where(sq.NotEq{"id": seen}).
		ToSql()
}

// buildPhoneMapQuery selects non-empty phone numbers of the given identities.
func buildPhoneMapQuery(b sq.StatementBuilderType, userIDs []int64) (string, []any, error) {
	return b.Select("user_id", "phone_e164").
		From("user_contacts").
		Where(sq.Eq{"user_id": userIDs}).
		Where(sq.NotEq{"phone_e164": nil}).
		Where("phone_e164 <> ''").
		OrderBy("user_id").
		ToSql()
}

// buildStudentRecipientsQuery joins the students of a course with the contact
// of their matched identity. The contact email wins over the roster email.
func buildStudentRecipientsQuery(b sq.StatementBuilderType, courseID string) (string, []any, error) {
	return b.Select(
		"p.google_user_id",
		"p.matched_user_id",
		"COALESCE(p.full_name, '')",
		"COALESCE(c.email, p.email, '')",
		"COALESCE(c.phone_e164, '')",
	).
		From("course_participants p").
		LeftJoin("user_contacts c ON c.user_id = p.matched_user_id").
		Where(sq.Eq{"p.course_id": courseID, "p.role": string(models.RoleStudent)}).
		OrderBy("p.google_user_id").
		ToSql()
}
