// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

// Package mailer delivers transactional email, primarily the confirmation
// codes issued during signup.
//
// # Architecture
//
// The [Mailer] interface keeps the auth service decoupled from the delivery
// mechanism. Production uses [SMTPMailer]; development and tests use
// [LogMailer], which writes the message to the structured log instead of
// sending it.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends a plain-text email to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// # Development Delivery

// LogMailer writes outgoing mail to the structured log. Used when no SMTP
// endpoint is configured, so the confirmation flow works in local setups.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a mailer that logs instead of sending.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message at INFO level.
func (mailer *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	mailer.logger.InfoContext(ctx, "mail_logged_instead_of_sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}

// # SMTP Delivery

// SMTPMailer sends mail through a plain SMTP endpoint.
type SMTPMailer struct {
	addr string
	from string
}

// NewSMTPMailer returns a mailer that delivers via the SMTP server at addr (host:port).
func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

/*
Send delivers a plain-text message via SMTP.

Parameters:
  - ctx: Unused by net/smtp but kept for interface symmetry.
  - to: Recipient address.
  - subject: Message subject line.
  - body: Plain-text message body.

Returns:
  - error: Wrapped delivery error, nil on success.
*/
func (mailer *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	message := strings.Join([]string{
		"From: " + mailer.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(mailer.addr, nil, mailer.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("mailer_smtp_send_failed: %w", err)
	}

	return nil
}
