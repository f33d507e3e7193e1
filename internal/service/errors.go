// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrAuth means no usable bearer token could be obtained for an identity.
	ErrAuth = errors.New("authorization failed")
	// ErrNoCredentials means no identity could supply a token for a pass.
	ErrNoCredentials = errors.New("no usable credentials")

	ErrPassInProgress = errors.New("a sync pass is already running")
	ErrUnknownPass    = errors.New("unknown sync pass")
)
