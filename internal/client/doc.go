// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the one-shot operator command line.
//
// It runs a single sync pass against the configured store and prints the
// result as JSON, or mints an admin API token, then exits.
package client
