// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config assembles the service configuration.
//
// Sources are merged in this order, each overriding the non-zero fields of
// the previous one: environment variables, command-line flags, then the
// JSON file named by -c. Defaults fill whatever is still empty and the
// result is validated. Use [GetStructuredConfig].
package config
