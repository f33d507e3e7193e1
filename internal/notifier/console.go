// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"

	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

type consoleNotifier struct {
	logger *logger.Logger
}

// NewConsoleNotifier returns a Notifier that only logs the messages it is
// asked to send.
func NewConsoleNotifier(log *logger.Logger) Notifier {
	return &consoleNotifier{logger: log}
}

func (n *consoleNotifier) Send(ctx context.Context, to models.Recipient, text string) error {
	if to.Phone == "" {
		return ErrNoPhone
	}

	n.logger.Info().
		Str("channel", "console").
		Str("phone", to.Phone).
		Str("text", text).
		Msg("simulated message send")

	return nil
}
