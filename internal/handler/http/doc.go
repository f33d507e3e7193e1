// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the admin HTTP API of the sync daemon.
//
// It exposes manual pass triggers, the last pass results, health and version
// probes, and the Prometheus scrape endpoint. Request tracing, access
// logging, request metrics and bearer-token authentication are handled here
// before requests reach the service layer.
package http
