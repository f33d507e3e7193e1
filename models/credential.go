// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Credential is one authorization context for a sync pass: the local
// identity that owns the grant and a bearer token valid for the catalog.
type Credential struct {
	UserID int64
	Token  string
}

// OAuthCredential is the stored OAuth grant of a local identity.
type OAuthCredential struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
	UpdatedAt    time.Time
}
