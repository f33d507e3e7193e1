// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoServices is returned by NewHandlers when it is given no service
// layer to route to. It is a wiring bug and fails the daemon at startup.
var errNoServices = errors.New("no services were provided to handlers")
