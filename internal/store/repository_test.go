// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		driver:             DriverPostgres,
		builder:            statementBuilder(DriverPostgres),
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func newTestRepos(t *testing.T) (*Repositories, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	storeDB := newDBFromSQL(db)
	return newRepositories(storeDB.DB, storeDB.builder, storeDB.logger), mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func int64Ptr(v int64) *int64 { return &v }

// ── Courses ──

func TestCourseRepository_Get(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repos, mock := newTestRepos(t)

		mock.ExpectQuery("FROM courses").
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "teacher_id", "created_at", "updated_at"}).
				AddRow("c1", "Algebra", models.DefaultCourseDescription, int64(5), now, now))

		course, err := repos.Courses.Get(testContext(), "c1")
		require.NoError(t, err)
		assert.Equal(t, "Algebra", course.Name)
		require.NotNil(t, course.TeacherID)
		assert.Equal(t, int64(5), *course.TeacherID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repos, mock := newTestRepos(t)

		mock.ExpectQuery("FROM courses").WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := repos.Courses.Get(testContext(), "missing")
		require.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("db error is wrapped", func(t *testing.T) {
		repos, mock := newTestRepos(t)

		mock.ExpectQuery("FROM courses").WithArgs("c1").WillReturnError(errors.New("boom"))

		_, err := repos.Courses.Get(testContext(), "c1")
		require.ErrorIs(t, err, ErrScanningRow)
	})
}

func TestCourseRepository_CreateAndUpdate(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectExec("INSERT INTO courses").
		WithArgs("c1", "Algebra", models.DefaultCourseDescription, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE courses").
		WithArgs("Algebra II", "desc", sqlmock.AnyArg(), "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repos.Courses.Create(testContext(), models.Course{ID: "c1", Name: "Algebra", Description: models.DefaultCourseDescription}))
	require.NoError(t, repos.Courses.Update(testContext(), models.Course{ID: "c1", Name: "Algebra II", Description: "desc"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── Participants ──

func TestParticipantRepository_Upsert(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectExec("INSERT INTO course_participants").
		WithArgs(sqlmock.AnyArg(), "c1", "g1", "ana@example.com", "Ana", "", "student", int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repos.Participants.Upsert(testContext(), models.Participant{
		CourseID:      "c1",
		GoogleUserID:  "g1",
		Email:         "ana@example.com",
		FullName:      "Ana",
		Role:          models.RoleStudent,
		MatchedUserID: int64Ptr(3),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_UpsertError(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectExec("INSERT INTO course_participants").WillReturnError(errors.New("boom"))

	err := repos.Participants.Upsert(testContext(), models.Participant{CourseID: "c1", GoogleUserID: "g1", Role: models.RoleTeacher})
	require.ErrorIs(t, err, ErrExecutingQuery)
}

func TestParticipantRepository_ListByCourse(t *testing.T) {
	repos, mock := newTestRepos(t)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM course_participants").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "google_user_id", "email", "full_name", "photo_url", "role", "matched_user_id", "last_seen_at", "created_at", "updated_at"}).
			AddRow("p1", "c1", "g1", "a@x.io", "A", "", "teacher", nil, now, now, now).
			AddRow("p2", "c1", "g2", "", "B", "", "student", int64(9), now, now, now))

	participants, err := repos.Participants.ListByCourse(testContext(), "c1")
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, models.RoleTeacher, participants[0].Role)
	assert.Nil(t, participants[0].MatchedUserID)
	require.NotNil(t, participants[1].MatchedUserID)
	assert.Equal(t, int64(9), *participants[1].MatchedUserID)
}

func TestParticipantRepository_DeleteAbsent(t *testing.T) {
	t.Run("deletes rows not seen", func(t *testing.T) {
		repos, mock := newTestRepos(t)

		mock.ExpectExec("DELETE FROM course_participants").
			WithArgs("c1", "student", "g1").
			WillReturnResult(sqlmock.NewResult(0, 2))

		deleted, err := repos.Participants.DeleteAbsent(testContext(), "c1", []models.Role{models.RoleStudent}, []string{"g1"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no roles is a no-op", func(t *testing.T) {
		repos, mock := newTestRepos(t)

		deleted, err := repos.Participants.DeleteAbsent(testContext(), "c1", nil, []string{"g1"})
		require.NoError(t, err)
		assert.Zero(t, deleted)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestParticipantRepository_ListStudentRecipients(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectQuery("FROM course_participants p").
		WithArgs("c1", "student").
		WillReturnRows(sqlmock.NewRows([]string{"google_user_id", "matched_user_id", "full_name", "email", "phone"}).
			AddRow("g1", int64(1), "Ana", "ana@x.io", "+5491100000000").
			AddRow("g2", nil, "Bo", "", ""))

	recipients, err := repos.Participants.ListStudentRecipients(testContext(), "c1")
	require.NoError(t, err)
	require.Len(t, recipients, 2)
	assert.Equal(t, "+5491100000000", recipients[0].Phone)
	assert.Nil(t, recipients[1].MatchedUserID)
}

// ── Assignments ──

func TestAssignmentRepository_Exists(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectQuery("SELECT 1 FROM course_assignments").
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM course_assignments").
		WithArgs("w2").
		WillReturnError(sql.ErrNoRows)

	exists, err := repos.Assignments.Exists(testContext(), "w1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repos.Assignments.Exists(testContext(), "w2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAssignmentRepository_Upsert(t *testing.T) {
	repos, mock := newTestRepos(t)
	due := time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)
	points := 100.0

	mock.ExpectExec("INSERT INTO course_assignments").
		WithArgs("w1", "c1", "Essay", "", "ASSIGNMENT", "PUBLISHED", due, "", 100.0, nil, nil,
			"INDIVIDUAL_STUDENTS", `["g1","g2"]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repos.Assignments.Upsert(testContext(), models.Assignment{
		ID:              "w1",
		CourseID:        "c1",
		Title:           "Essay",
		WorkType:        "ASSIGNMENT",
		State:           "PUBLISHED",
		DueAt:           &due,
		MaxPoints:       &points,
		AssigneeMode:    models.AssigneeIndividualStudents,
		AssigneeUserIDs: []string{"g1", "g2"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_UpsertNilAssigneesStoredAsEmptyArray(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectExec("INSERT INTO course_assignments").
		WithArgs("w1", "c1", "Quiz", "", "", "", nil, "", nil, nil, nil, "ALL_STUDENTS", `[]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repos.Assignments.Upsert(testContext(), models.Assignment{ID: "w1", CourseID: "c1", Title: "Quiz", AssigneeMode: models.AssigneeAllStudents})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_DeleteAbsent(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectExec("DELETE FROM course_assignments").
		WithArgs("c1", "w1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repos.Assignments.DeleteAbsent(testContext(), "c1", []string{"w1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

// ── Submissions ──

var submissionColumns = []string{
	"id", "course_id", "coursework_id", "google_user_id", "matched_user_id", "state", "late",
	"turned_in_at", "assigned_grade", "draft_grade", "attachments", "updated_time",
}

func TestSubmissionRepository_Get(t *testing.T) {
	t.Run("absent returns nil", func(t *testing.T) {
		repos, mock := newTestRepos(t)

		mock.ExpectQuery("FROM course_submissions").WithArgs("s1").WillReturnError(sql.ErrNoRows)

		sub, err := repos.Submissions.Get(testContext(), "s1")
		require.NoError(t, err)
		assert.Nil(t, sub)
	})

	t.Run("decodes attachments", func(t *testing.T) {
		repos, mock := newTestRepos(t)
		turnedIn := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)

		mock.ExpectQuery("FROM course_submissions").
			WithArgs("s1").
			WillReturnRows(sqlmock.NewRows(submissionColumns).
				AddRow("s1", "c1", "w1", "g1", nil, "TURNED_IN", true, turnedIn, 9.5, nil,
					`[{"kind":"link","url":"https://x.io"}]`, nil))

		sub, err := repos.Submissions.Get(testContext(), "s1")
		require.NoError(t, err)
		require.NotNil(t, sub)
		assert.True(t, sub.Late)
		assert.Equal(t, "TURNED_IN", sub.State)
		require.NotNil(t, sub.AssignedGrade)
		assert.Equal(t, 9.5, *sub.AssignedGrade)
		assert.Nil(t, sub.DraftGrade)
		require.Len(t, sub.Attachments, 1)
		assert.Equal(t, "https://x.io", sub.Attachments[0].URL)
	})

	t.Run("corrupt attachments", func(t *testing.T) {
		repos, mock := newTestRepos(t)

		mock.ExpectQuery("FROM course_submissions").
			WithArgs("s1").
			WillReturnRows(sqlmock.NewRows(submissionColumns).
				AddRow("s1", "c1", "w1", "g1", nil, "", false, nil, nil, nil, `{not json`, nil))

		_, err := repos.Submissions.Get(testContext(), "s1")
		require.ErrorIs(t, err, ErrEncodingColumn)
	})
}

func TestSubmissionRepository_Upsert(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectExec("INSERT INTO course_submissions").
		WithArgs("s1", "c1", "w1", "g1", int64(4), "RETURNED", false, nil, nil, nil, `[]`, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repos.Submissions.Upsert(testContext(), models.Submission{
		ID:            "s1",
		CourseID:      "c1",
		CourseWorkID:  "w1",
		GoogleUserID:  "g1",
		MatchedUserID: int64Ptr(4),
		State:         "RETURNED",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── ETags ──

func TestETagRepository(t *testing.T) {
	t.Run("get missing", func(t *testing.T) {
		repos, mock := newTestRepos(t)
		mock.ExpectQuery("FROM etag_cache").WithArgs("c1", "students").WillReturnError(sql.ErrNoRows)

		etag, err := repos.ETags.Get(testContext(), "c1", "students")
		require.NoError(t, err)
		assert.Nil(t, etag)
	})

	t.Run("get stored", func(t *testing.T) {
		repos, mock := newTestRepos(t)
		mock.ExpectQuery("FROM etag_cache").
			WithArgs("c1", "students").
			WillReturnRows(sqlmock.NewRows([]string{"etag"}).AddRow(`W/"abc"`))

		etag, err := repos.ETags.Get(testContext(), "c1", "students")
		require.NoError(t, err)
		require.NotNil(t, etag)
		assert.Equal(t, `W/"abc"`, *etag)
	})

	t.Run("set nil stores null", func(t *testing.T) {
		repos, mock := newTestRepos(t)
		mock.ExpectExec("INSERT INTO etag_cache").
			WithArgs("c1", "subs", nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repos.ETags.Set(testContext(), "c1", "subs", nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// ── Identities & contacts ──

func TestIdentityRepository_FindByEmail(t *testing.T) {
	t.Run("lowercases input", func(t *testing.T) {
		repos, mock := newTestRepos(t)
		mock.ExpectQuery("FROM users").
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(int64(1), "Ana", "Ana@Example.com"))

		identity, err := repos.Identities.FindByEmail(testContext(), "  ANA@example.com ")
		require.NoError(t, err)
		assert.Equal(t, int64(1), identity.ID)
	})

	t.Run("empty email never queries", func(t *testing.T) {
		repos, mock := newTestRepos(t)

		_, err := repos.Identities.FindByEmail(testContext(), "")
		require.ErrorIs(t, err, ErrIdentityNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repos, mock := newTestRepos(t)
		mock.ExpectQuery("FROM users").WithArgs("x@y.z").WillReturnError(sql.ErrNoRows)

		_, err := repos.Identities.FindByEmail(testContext(), "x@y.z")
		require.ErrorIs(t, err, ErrIdentityNotFound)
	})
}

func TestIdentityRepository_FindByName(t *testing.T) {
	repos, mock := newTestRepos(t)
	mock.ExpectQuery("FROM users").
		WithArgs("Ana Diaz").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(int64(1), "Ana Diaz", "a@x.io").
			AddRow(int64(2), "ana diaz", "b@x.io"))

	identities, err := repos.Identities.FindByName(testContext(), "Ana Diaz")
	require.NoError(t, err)
	assert.Len(t, identities, 2)
}

func TestContactRepository(t *testing.T) {
	t.Run("upsert email lowercases", func(t *testing.T) {
		repos, mock := newTestRepos(t)
		mock.ExpectExec("INSERT INTO user_contacts").
			WithArgs(int64(1), "ana@example.com", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repos.Contacts.UpsertEmail(testContext(), 1, "Ana@Example.com"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("phone map", func(t *testing.T) {
		repos, mock := newTestRepos(t)
		mock.ExpectQuery("FROM user_contacts").
			WithArgs(int64(1), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "phone_e164"}).AddRow(int64(1), "+100"))

		phones, err := repos.Contacts.GetPhoneMap(testContext(), []int64{1, 2})
		require.NoError(t, err)
		assert.Equal(t, map[int64]string{1: "+100"}, phones)
	})

	t.Run("phone map without ids", func(t *testing.T) {
		repos, mock := newTestRepos(t)

		phones, err := repos.Contacts.GetPhoneMap(testContext(), nil)
		require.NoError(t, err)
		assert.Empty(t, phones)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// ── Credentials ──

func TestCredentialRepository(t *testing.T) {
	repos, mock := newTestRepos(t)
	exp := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM oauth_credentials").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "access_token", "refresh_token", "expires_at", "updated_at"}).
			AddRow(int64(1), "at", "rt", exp, now).
			AddRow(int64(2), "at2", "", nil, now))
	mock.ExpectExec("INSERT INTO oauth_credentials").
		WithArgs(int64(1), "new-at", "", exp, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	creds, err := repos.Credentials.List(testContext())
	require.NoError(t, err)
	require.Len(t, creds, 2)
	require.NotNil(t, creds[0].ExpiresAt)
	assert.True(t, creds[0].ExpiresAt.Equal(exp))
	assert.Nil(t, creds[1].ExpiresAt)

	require.NoError(t, repos.Credentials.Save(testContext(), models.OAuthCredential{UserID: 1, AccessToken: "new-at", ExpiresAt: &exp}))
	require.NoError(t, mock.ExpectationsWereMet())
}
