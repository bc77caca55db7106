package service

import (
	"context"

	"github.com/akashm011/Auth/internal/auth/domain"
)

// Notifier delivers notices to users. Implementations must not block the
// caller on delivery; failures are theirs to log.
type Notifier interface {
	NotifyInvitation(ctx context.Context, n domain.InvitationNotice)
	NotifyCredentials(ctx context.Context, n domain.CredentialsNotice)
}

// nopNotifier drops every notice.
type nopNotifier struct{}

func (nopNotifier) NotifyInvitation(context.Context, domain.InvitationNotice)   {}
func (nopNotifier) NotifyCredentials(context.Context, domain.CredentialsNotice) {}
