// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/utils"
)

// withAuth enforces HS256 bearer tokens on operator routes.
//
// When no sign key is configured the routes are open. Otherwise the request
// is rejected with 401 Unauthorized if the "Authorization" header is absent,
// is not of the "Bearer <token>" form, or carries a token that fails
// [utils.ValidateJWTToken]. On success the token subject is stored in the
// request context under [utils.SubjectCtxKey].
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.auth.TokenSignKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		subject, err := utils.ValidateJWTToken(tokenString, h.auth.TokenSignKey, h.auth.TokenIssuer)
		if err != nil {
			log.Err(err).Msg("admin token rejected")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.SubjectCtxKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
