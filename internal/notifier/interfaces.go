// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notifier is the outbound messaging capability of the sync engine.
//
// The engine composes message text and selects recipients; a Notifier only
// moves the text to a phone. Three variants are provided and selected by
// configuration:
//   - console: writes the message to the log, used in development;
//   - http: posts the message to the messaging gateway's /send endpoint;
//   - redis: pushes a job onto the gateway's pending queue.
package notifier

//go:generate mockgen -source=interfaces.go -destination=../mock/notifier_mock.go -package=mock

import (
	"context"

	"github.com/sama64/nerdeala25/models"
)

// Notifier delivers a text message to a recipient.
type Notifier interface {
	// Send delivers text to to.Phone. A recipient without a phone yields
	// ErrNoPhone. Transport failures are returned wrapped in ErrDelivery.
	Send(ctx context.Context, to models.Recipient, text string) error
}
