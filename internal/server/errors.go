// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated means neither the admin HTTP server nor the
// background jobs are configured.
var errNoServersAreCreated = errors.New("nothing to run: no http address and no jobs")
