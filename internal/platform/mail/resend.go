// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers mail through the Resend HTTP API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender authenticated with apiKey.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

// NewResendSenderWithClient wraps an already configured client.
func NewResendSenderWithClient(client *resend.Client, from string) *ResendSender {
	return &ResendSender{client: client, from: from}
}

func (s *ResendSender) Name() string { return "resend" }

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("mail: resend delivery to %s failed: %w", msg.To, err)
	}
	return nil
}
