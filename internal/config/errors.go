// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAdapterConfigs indicates invalid catalog client settings
	// (for example, an unparsable base URL or a zero in-flight cap).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidNotifierConfigs indicates an unknown notifier kind or a
	// kind whose endpoint is missing.
	ErrInvalidNotifierConfigs = errors.New("invalid notifier configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a negative interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidServerConfigs indicates invalid admin server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
