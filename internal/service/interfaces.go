// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the classroom sync engine.
//
// A pass lists the active courses of every authorized identity and
// reconciles each course inside its own transaction:
//
//	full:  register course -> reconcile rosters -> reconcile coursework
//	delta: register course -> reconcile submissions
//
// A failing course is rolled back and logged; the pass moves on to the next
// one. Notifications are dispatched only after the course transaction has
// committed.
package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/sama64/nerdeala25/models"
)

// SyncService runs sync passes. At most one pass runs at a time.
type SyncService interface {
	// RunPass runs a full or a delta pass for every usable credential and
	// returns the aggregate of the committed courses. It returns
	// ErrPassInProgress when another pass holds the lock.
	RunPass(ctx context.Context, kind models.PassKind) (models.SyncResult, error)

	// LastResults returns the result of the latest finished pass of each
	// kind, full first.
	LastResults() []models.SyncResult
}

// CredentialProvider supplies the authorization contexts of a pass.
type CredentialProvider interface {
	// Credentials returns one valid bearer token per authorized identity.
	// Identities whose token cannot be obtained are skipped; when none is
	// left the error wraps ErrNoCredentials.
	Credentials(ctx context.Context) ([]models.Credential, error)
}

// NotificationDispatcher composes messages and selects their recipients.
type NotificationDispatcher interface {
	// AssignmentCreated notifies every student with a known phone about a
	// newly stored assignment.
	AssignmentCreated(ctx context.Context, a models.Assignment, students []models.Recipient)

	// SubmissionChanged notifies the submitter about a meaningful transition.
	SubmissionChanged(ctx context.Context, to models.Recipient, s models.Submission, t models.Transition)
}

// IdentityResolver maps remote people to local identities.
type IdentityResolver interface {
	// Resolve returns the id of the local identity matching email, or name
	// when email does not match. It returns nil when nothing matches.
	Resolve(ctx context.Context, email, name string) (*int64, error)
}

// SyncJob runs a pass periodically until stopped.
type SyncJob interface {
	Start(ctx context.Context)
	Stop()
}

// AppInfoService reports build metadata of the running binary.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}

// Recorder observes the engine. The metrics package provides the
// Prometheus implementation.
type Recorder interface {
	PassDone(pass, outcome string, d time.Duration)
	CourseDone(pass, outcome string)
	NotificationDone(trigger, outcome string)
}
