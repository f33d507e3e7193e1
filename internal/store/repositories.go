// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/sama64/nerdeala25/internal/logger"
)

// Repositories groups every repository bound to the same queryer: either the
// connection pool or one open transaction.
type Repositories struct {
	Courses      CourseRepository
	Participants ParticipantRepository
	Assignments  AssignmentRepository
	Submissions  SubmissionRepository
	ETags        ETagRepository
	Identities   IdentityRepository
	Contacts     ContactRepository
	Credentials  CredentialRepository
}

func newRepositories(q queryer, builder sq.StatementBuilderType, log *logger.Logger) *Repositories {
	return &Repositories{
		Courses:      &courseRepository{q: q, logger: log},
		Participants: &participantRepository{q: q, builder: builder, logger: log},
		Assignments:  &assignmentRepository{q: q, builder: builder, logger: log},
		Submissions:  &submissionRepository{q: q, logger: log},
		ETags:        &etagRepository{q: q, logger: log},
		Identities:   &identityRepository{q: q, logger: log},
		Contacts:     &contactRepository{q: q, builder: builder, logger: log},
		Credentials:  &credentialRepository{q: q, logger: log},
	}
}

// timeNow is replaced in tests.
var timeNow = func() time.Time {
	return time.Now().UTC()
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableInt(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func intPtr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	i := ni.Int64
	return &i
}
