// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sama64/nerdeala25/internal/store"
)

type identityResolver struct {
	identities store.IdentityRepository
}

// NewIdentityResolver resolves by exact lowercased email first and by exact
// case-insensitive display name second. An ambiguous name resolves to nil.
func NewIdentityResolver(identities store.IdentityRepository) IdentityResolver {
	return &identityResolver{identities: identities}
}

func (r *identityResolver) Resolve(ctx context.Context, email, name string) (*int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		identity, err := r.identities.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return &identity.ID, nil
		case !errors.Is(err, store.ErrIdentityNotFound):
			return nil, fmt.Errorf("resolve identity by email: %w", err)
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	matches, err := r.identities.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve identity by name: %w", err)
	}
	if len(matches) != 1 {
		return nil, nil
	}

	return &matches[0].ID, nil
}
