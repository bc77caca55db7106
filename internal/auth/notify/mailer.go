// Package notify renders and delivers the notices sent to invitees.
package notify

import (
	"context"
	"log/slog"

	"github.com/akashm011/Auth/pkg/slogx"
)

// Message is a rendered plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a rendered message.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// LogMailer records that a message would have been sent. The body is never
// logged since it carries tokens and passwords.
type LogMailer struct {
	Logger *slog.Logger
}

func (l LogMailer) Send(ctx context.Context, m Message) error {
	log := l.Logger
	if log == nil {
		log = slogx.FromContext(ctx)
	}
	log.Info("mail delivery skipped, no smtp host configured",
		slog.String("to", m.To),
		slog.String("subject", m.Subject),
	)
	return nil
}
