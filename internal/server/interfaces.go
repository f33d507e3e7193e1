// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server defines the lifecycle contract of the daemon.
//
// Implementations block in [RunServer] until a stop signal arrives and
// release resources in [Shutdown].
type Server interface {
	// RunServer starts serving and blocks until the daemon stops.
	RunServer()

	// Shutdown gracefully stops everything that was started.
	Shutdown()
}
