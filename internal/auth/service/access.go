package service

import (
	"context"
	"log/slog"

	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/pkg/slogx"
)

// AccessService answers whether a user may act within a tenant. A grant is
// live while its invitation is used, not revoked, unexpired and still lists
// the tenant among its scopes.
type AccessService struct {
	Store store.Store
	Clock Clock
}

func (s *AccessService) HasAccess(ctx context.Context, userID, tenant string) (bool, error) {
	if userID == "" || tenant == "" {
		return false, nil
	}

	ok, err := s.Store.Invitations().HasAccess(ctx, userID, tenant, s.Clock.Now())
	if err != nil {
		slogx.FromContext(ctx).Error("failed to evaluate access",
			slog.String("user_id", userID),
			slog.String("tenant", tenant),
			slog.Any("error", err),
		)
		return false, err
	}
	return ok, nil
}

// AccessibleTenants lists the distinct tenant slugs userID holds live grants
// for, sorted.
func (s *AccessService) AccessibleTenants(ctx context.Context, userID string) ([]string, error) {
	tenants, err := s.Store.Invitations().AccessibleTenants(ctx, userID, s.Clock.Now())
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list accessible tenants",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil, err
	}
	if tenants == nil {
		tenants = []string{}
	}
	return tenants, nil
}
