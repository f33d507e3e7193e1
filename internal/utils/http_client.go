// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent identifies the sync engine to the catalog API and the messaging
// gateway.
const UserAgent = "classroom-sync/1"

// HTTPClient wraps a resty client shared by the outbound integrations. It
// embeds *resty.Client so callers configure base URL and timeouts directly.
//
// Retries are left to the caller: resty's own retry loop stays disabled so
// a single attempt budget governs each call.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client that sends [UserAgent] and
// asks for JSON responses.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}
