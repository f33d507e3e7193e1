// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import "errors"

var (
	ErrNoPhone     = errors.New("recipient has no phone")
	ErrDelivery    = errors.New("message delivery failed")
	ErrUnknownKind = errors.New("unknown notifier kind")
	ErrNoGateway   = errors.New("messaging gateway url is not configured")
)
