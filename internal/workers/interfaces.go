// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers manages the background sync jobs of the daemon.
// It defines the Worker interface and a Workers aggregate that starts and
// stops every job in a unified way.
package workers

import "context"

// Worker is a background job with a start/stop lifecycle.
//
// Start must not block; the job runs in its own goroutine until ctx is
// cancelled or Stop is called. Stop blocks until the job has returned.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
