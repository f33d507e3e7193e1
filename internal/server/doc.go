// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the sync daemon: the background sync jobs and the
// optional admin HTTP server, with signal handling and graceful shutdown of
// both.
package server
