// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/sama64/nerdeala25/internal/adapter"
	"github.com/sama64/nerdeala25/internal/service"
	"github.com/sama64/nerdeala25/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrUnknownPass:    http.StatusBadRequest,
	service.ErrPassInProgress: http.StatusConflict,
	service.ErrNoCredentials:  http.StatusServiceUnavailable,
	service.ErrAuth:           http.StatusBadGateway,

	adapter.ErrIntegration: http.StatusBadGateway,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,

	context.DeadlineExceeded: http.StatusGatewayTimeout,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
