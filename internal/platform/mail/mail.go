// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package mail is the outbound notification sink.

Callers hand a [Message] to a [Dispatcher], which delivers it on a detached
goroutine. Delivery failures are logged and never reported back: a signup or a
designer review must not fail because an email could not be sent.

Senders:

  - ResendSender: production delivery through the Resend API.
  - LogSender: development/test; writes the message to the log.
*/
package mail

import (
	"context"
	"log/slog"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/config"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers one message synchronously.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// NewSender picks the Resend sender when an API key is configured and falls
// back to logging otherwise.
func NewSender(cfg *config.Config, logger *slog.Logger) Sender {
	if cfg.ResendAPIKey != "" {
		logger.Info("mail sender initialised", slog.String("sender", "resend"))
		return NewResendSender(cfg.ResendAPIKey, cfg.MailFrom)
	}

	logger.Warn("mail sender initialised without RESEND_API_KEY, emails will only be logged")
	return NewLogSender(logger)
}
