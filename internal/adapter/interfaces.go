// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client of the upstream course catalog (the Google
// Classroom REST API).
//
// [Fetcher] is the generic conditional paginated reader: it attaches the
// caller's bearer token and cache validator, follows continuation tokens,
// retries transient failures and shares one in-flight gate across the
// process. [ClassroomAdapter] builds the typed listings on top of it and
// parses every remote record strictly, dropping records that miss a required
// field.
//
// Errors from a listing wrap [ErrIntegration] together with one of the
// status sentinels in errors.go, so callers can use [errors.Is] on either.
package adapter

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sama64/nerdeala25/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// FetchRequest describes one collection read.
type FetchRequest struct {
	// Path is relative to the adapter base URL, e.g. "/courses/1/students".
	Path string
	// Query is sent on every page; pageToken is managed by the fetcher.
	Query url.Values
	// Token is the bearer credential of the acting identity.
	Token string
	// ETag is sent as If-None-Match on the first page when not nil.
	ETag *string
	// ItemsKey names the array holding the page items, e.g. "students".
	ItemsKey string
}

// FetchResult is the concatenation of every page of a collection.
type FetchResult struct {
	Items []json.RawMessage
	// ETag is the validator returned with the first page. It is the request
	// validator when NotModified is set.
	ETag *string
	// NotModified means the upstream answered 304; Items is empty and must
	// not be read as "everything was removed".
	NotModified bool
	// Forbidden means the upstream answered 403; Items is empty and the
	// result is not a complete listing.
	Forbidden bool
}

// Complete reports whether Items is the full current collection.
func (r FetchResult) Complete() bool {
	return !r.NotModified && !r.Forbidden
}

// Fetcher reads a paginated collection conditionally.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (FetchResult, error)
}

// Listing is a typed, parsed [FetchResult].
type Listing[T any] struct {
	Items       []T
	ETag        *string
	NotModified bool
	Forbidden   bool
}

// Complete reports whether Items is the full current collection.
func (l Listing[T]) Complete() bool {
	return !l.NotModified && !l.Forbidden
}

// ClassroomAdapter lists the catalog entities the sync engine reconciles.
type ClassroomAdapter interface {
	// ListActiveCourses returns the active courses where the token owner is a
	// teacher or a student, deduplicated by id with role flags unioned.
	ListActiveCourses(ctx context.Context, token string) ([]models.RemoteCourse, error)

	// ListParticipants lists the teachers or the students of a course.
	ListParticipants(ctx context.Context, token, courseID string, role models.Role, etag *string) (Listing[models.RemoteParticipant], error)

	// ListAssignments lists the coursework of a course.
	ListAssignments(ctx context.Context, token, courseID string, etag *string) (Listing[models.Assignment], error)

	// ListSubmissions lists the student submissions of every coursework of a
	// course.
	ListSubmissions(ctx context.Context, token, courseID string, etag *string) (Listing[models.Submission], error)
}
