// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/utils"
	"github.com/sama64/nerdeala25/models"
)

const sendPath = "/send"

type httpNotifier struct {
	client  *utils.HTTPClient
	baseURL string
	apiKey  string
	timeout time.Duration
	now     func() time.Time
	logger  *logger.Logger
}

// NewHTTPNotifier returns a Notifier that posts messages to the gateway at
// cfg.BaseURL.
func NewHTTPNotifier(cfg config.Notifier, log *logger.Logger) (Notifier, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrNoGateway
	}

	return &httpNotifier{
		client:  utils.NewHTTPClient(),
		baseURL: base,
		apiKey:  cfg.APIKey,
		timeout: cfg.RequestTimeout,
		now:     time.Now,
		logger:  log,
	}, nil
}

func (n *httpNotifier) Send(ctx context.Context, to models.Recipient, text string) error {
	if to.Phone == "" {
		return ErrNoPhone
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	req := n.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetBody(newJob(to, text, n.now()))
	if n.apiKey != "" {
		req.SetAuthToken(n.apiKey)
	}

	resp, err := req.Post(n.baseURL + sendPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		n.logger.Error().
			Str("func", "*httpNotifier.Send").
			Int("status", resp.StatusCode()).
			Str("body", string(resp.Body())).
			Msg("messaging gateway rejected message")
		return fmt.Errorf("%w: gateway status %d", ErrDelivery, resp.StatusCode())
	}

	return nil
}
