// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements persistence for the classroom sync engine on top
// of database/sql. PostgreSQL (pgx stdlib driver) is the production backend;
// SQLite (go-sqlite3) serves local runs and the one-shot CLI.
//
// Repositories are bound either to the connection pool or to a transaction.
// [Storages.WithinTx] hands a transaction-bound [Repositories] set to a
// callback so that every write of one course commits or rolls back together.
package store

import (
	"context"
	"database/sql"

	"github.com/sama64/nerdeala25/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// queryer is the subset of *sql.DB and *sql.Tx used by repositories.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrorClassificator decides whether a failed database operation may succeed
// when attempted again.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Transactor runs a unit of work inside one database transaction.
type Transactor interface {
	// WithinTx begins a transaction, calls fn with repositories bound to it
	// and commits when fn returns nil. Any error from fn rolls the
	// transaction back and is returned unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}

// CourseRepository persists local course records.
type CourseRepository interface {
	// Get returns the course with the given id or [ErrCourseNotFound].
	Get(ctx context.Context, id string) (models.Course, error)

	// Create inserts a new course row.
	Create(ctx context.Context, course models.Course) error

	// Update overwrites name and description of an existing course.
	Update(ctx context.Context, course models.Course) error
}

// ParticipantRepository persists course roster rows.
type ParticipantRepository interface {
	// Upsert inserts or updates the row keyed by (CourseID, GoogleUserID).
	// Empty email, name and photo values keep what is already stored; role
	// is always overwritten.
	Upsert(ctx context.Context, p models.Participant) error

	// ListByCourse returns every roster row of a course.
	ListByCourse(ctx context.Context, courseID string) ([]models.Participant, error)

	// DeleteAbsent removes rows of the course whose role is in roles and
	// whose remote id is not in seen. It returns the number of deleted rows.
	DeleteAbsent(ctx context.Context, courseID string, roles []models.Role, seen []string) (int64, error)

	// ListStudentRecipients returns the students of a course joined with the
	// contact of their matched identity.
	ListStudentRecipients(ctx context.Context, courseID string) ([]models.Recipient, error)
}

// AssignmentRepository persists coursework rows.
type AssignmentRepository interface {
	// Exists reports whether a row with the given id is stored.
	Exists(ctx context.Context, id string) (bool, error)

	// Upsert inserts or fully updates the row keyed by ID.
	Upsert(ctx context.Context, a models.Assignment) error

	// DeleteAbsent removes assignments of the course whose id is not in seen.
	DeleteAbsent(ctx context.Context, courseID string, seen []string) (int64, error)
}

// SubmissionRepository persists student submission rows.
type SubmissionRepository interface {
	// Get returns the stored submission or nil when none exists.
	Get(ctx context.Context, id string) (*models.Submission, error)

	// Upsert inserts or fully updates the row keyed by ID.
	Upsert(ctx context.Context, s models.Submission) error
}

// ETagRepository persists cache validators per (course, collection key).
type ETagRepository interface {
	// Get returns the stored validator, or nil when there is none.
	Get(ctx context.Context, courseID, key string) (*string, error)

	// Set overwrites the validator. A nil etag records that the upstream
	// returned no validator.
	Set(ctx context.Context, courseID, key string, etag *string) error
}

// IdentityRepository looks up local identities.
type IdentityRepository interface {
	// FindByEmail returns the identity whose lowercased email equals email
	// or [ErrIdentityNotFound].
	FindByEmail(ctx context.Context, email string) (models.Identity, error)

	// FindByName returns up to two identities whose display name equals name
	// case-insensitively. Two results mean the name is ambiguous.
	FindByName(ctx context.Context, name string) ([]models.Identity, error)
}

// ContactRepository persists contact addresses of local identities.
type ContactRepository interface {
	// UpsertEmail records email for the identity, keeping any stored phone.
	UpsertEmail(ctx context.Context, userID int64, email string) error

	// GetPhoneMap returns the known phone numbers of the given identities.
	// Identities without a phone are absent from the map.
	GetPhoneMap(ctx context.Context, userIDs []int64) (map[int64]string, error)
}

// CredentialRepository persists OAuth grants used to call the catalog.
type CredentialRepository interface {
	// List returns every stored grant ordered by user id.
	List(ctx context.Context) ([]models.OAuthCredential, error)

	// Save inserts or updates the grant of cred.UserID. An empty refresh
	// token keeps the stored one.
	Save(ctx context.Context, cred models.OAuthCredential) error
}
