// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/store"
	"github.com/sama64/nerdeala25/models"
)

type credentialProvider struct {
	credentials store.CredentialRepository
	oauth       *oauth2.Config
	margin      time.Duration
	now         func() time.Time

	logger *logger.Logger
}

// NewCredentialProvider returns a provider reading stored OAuth grants and
// refreshing access tokens that expire within cfg.RefreshMargin.
func NewCredentialProvider(credentials store.CredentialRepository, cfg config.OAuth, logger *logger.Logger) CredentialProvider {
	return &credentialProvider{
		credentials: credentials,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		margin: cfg.RefreshMargin,
		now:    time.Now,
		logger: logger,
	}
}

func (p *credentialProvider) Credentials(ctx context.Context) ([]models.Credential, error) {
	log := logger.FromContext(ctx)

	stored, err := p.credentials.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored credentials: %w", err)
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("%w: no stored grants", ErrNoCredentials)
	}

	creds := make([]models.Credential, 0, len(stored))
	for _, cred := range stored {
		token, err := p.accessToken(ctx, cred)
		if err != nil {
			log.Warn().Err(err).Int64("user_id", cred.UserID).Msg("skipping identity without usable token")
			continue
		}
		creds = append(creds, models.Credential{UserID: cred.UserID, Token: token})
	}

	if len(creds) == 0 {
		return nil, fmt.Errorf("%w: every identity failed authorization", ErrNoCredentials)
	}
	return creds, nil
}

// accessToken returns the stored token, refreshing it first when it is
// missing or expires within the margin.
func (p *credentialProvider) accessToken(ctx context.Context, cred models.OAuthCredential) (string, error) {
	needsRefresh := cred.AccessToken == "" ||
		(cred.ExpiresAt != nil && !cred.ExpiresAt.After(p.now().Add(p.margin)))
	if !needsRefresh {
		return cred.AccessToken, nil
	}

	refreshed, err := p.refresh(ctx, cred)
	if err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

func (p *credentialProvider) refresh(ctx context.Context, cred models.OAuthCredential) (models.OAuthCredential, error) {
	if cred.RefreshToken == "" {
		return models.OAuthCredential{}, fmt.Errorf("%w: identity %d has no refresh token", ErrAuth, cred.UserID)
	}
	if p.oauth.ClientID == "" || p.oauth.Endpoint.TokenURL == "" {
		return models.OAuthCredential{}, fmt.Errorf("%w: oauth client is not configured", ErrAuth)
	}

	token, err := p.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return models.OAuthCredential{}, fmt.Errorf("%w: refresh rejected for identity %d: %s", ErrAuth, cred.UserID, retrieveErr.ErrorCode)
		}
		return models.OAuthCredential{}, fmt.Errorf("%w: refresh token for identity %d: %w", ErrAuth, cred.UserID, err)
	}

	refreshed := models.OAuthCredential{
		UserID:       cred.UserID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiresAt := token.Expiry.UTC()
		refreshed.ExpiresAt = &expiresAt
	}

	if err := p.credentials.Save(ctx, refreshed); err != nil {
		return models.OAuthCredential{}, fmt.Errorf("save refreshed token of identity %d: %w", cred.UserID, err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", cred.UserID).Msg("access token refreshed")
	return refreshed, nil
}
