package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/internal/auth/store/drivers/sqlite/gen"
)

type invitationsRepo struct {
	q *gen.Queries
}

// CreateInvitation writes the invitation row and one scope row per tenant.
// Run it inside a transaction so a failed scope insert leaves nothing behind.
func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	err := r.q.CreateInvitation(ctx, gen.CreateInvitationParams{
		ID:        inv.ID,
		Email:     inv.Email,
		UserID:    inv.UserID,
		Token:     inv.TokenHash,
		ExpiresAt: toMillis(inv.ExpiresAt),
		CreatedBy: inv.CreatedBy,
		CreatedAt: toMillis(inv.CreatedAt),
		UpdatedAt: toMillis(inv.UpdatedAt),
	})
	if err != nil {
		return mapConstraint(err)
	}

	for i, slug := range inv.Tenants {
		err := r.q.CreateInvitationTenant(ctx, gen.CreateInvitationTenantParams{
			InvitationID: inv.ID,
			TenantSlug:   slug,
			Position:     int64(i),
		})
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}

	scopes, err := r.scopesFor(ctx, []string{id})
	if err != nil {
		return domain.Invitation{}, err
	}
	return mapInvitation(row, scopes[id]), nil
}

func (r *invitationsRepo) AcceptInvitation(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (domain.AcceptedInvitation, error) {
	row, err := r.q.AcceptInvitation(ctx, gen.AcceptInvitationParams{
		Now:   toMillis(now),
		Token: tokenHash,
	})
	if err != nil {
		return domain.AcceptedInvitation{}, mapNotFound(err)
	}

	scopes, err := r.scopesFor(ctx, []string{row.ID})
	if err != nil {
		return domain.AcceptedInvitation{}, err
	}

	return domain.AcceptedInvitation{
		ID:      row.ID,
		Email:   row.Email,
		UserID:  row.UserID,
		Tenants: scopes[row.ID],
	}, nil
}

func (r *invitationsRepo) RevokeScopes(
	ctx context.Context,
	invitationID string,
	slugs []string,
	reason string,
	now time.Time,
) ([]string, bool, error) {
	if len(slugs) == 0 {
		return []string{}, false, nil
	}
	at := toMillis(now)

	// 1. Stamp the live scopes that were asked for
	revoked, err := r.q.RevokeInvitationTenants(ctx, gen.RevokeInvitationTenantsParams{
		RevokedAt:    sql.NullInt64{Int64: at, Valid: true},
		InvitationID: invitationID,
		Slugs:        slugs,
	})
	if err != nil {
		return nil, false, err
	}
	if len(revoked) == 0 {
		return revoked, false, nil
	}

	// 2. Revoke the invitation itself once no live scope is left
	n, err := r.q.RevokeInvitationIfDrained(ctx, gen.RevokeInvitationIfDrainedParams{
		Now:           at,
		RevokedReason: mapStringNull(reason),
		ID:            invitationID,
	})
	if err != nil {
		return nil, false, err
	}
	if n > 0 {
		return revoked, true, nil
	}

	// 3. Otherwise just record the modification
	err = r.q.TouchInvitation(ctx, gen.TouchInvitationParams{UpdatedAt: at, ID: invitationID})
	return revoked, false, err
}

func (r *invitationsRepo) ListActiveGrantIDs(ctx context.Context, userID string) ([]string, error) {
	return r.q.ListActiveGrantIDs(ctx, userID)
}

func (r *invitationsRepo) ExtendInvitation(ctx context.Context, invitationID string, expiresAt, now time.Time) error {
	return mapRowsAffected(r.q.ExtendInvitation(ctx, gen.ExtendInvitationParams{
		ExpiresAt: toMillis(expiresAt),
		UpdatedAt: toMillis(now),
		ID:        invitationID,
	}))
}

func (r *invitationsRepo) ListInvitations(
	ctx context.Context,
	f domain.InvitationFilter,
	p store.Page,
) ([]domain.Invitation, int, error) {
	var isUsed sql.NullBool
	if f.IsUsed != nil {
		isUsed = sql.NullBool{Bool: *f.IsUsed, Valid: true}
	}
	var revoked int64
	if f.IsRevoked != nil && *f.IsRevoked {
		revoked = 1
	}

	total, err := r.q.CountInvitations(ctx, gen.CountInvitationsParams{
		Email:   f.Email,
		Tenant:  f.Tenant,
		IsUsed:  isUsed,
		Revoked: revoked,
	})
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.q.ListInvitations(ctx, gen.ListInvitationsParams{
		Email:   f.Email,
		Tenant:  f.Tenant,
		IsUsed:  isUsed,
		Revoked: revoked,
		Limit:   int64(p.Limit),
		Offset:  int64(p.Skip),
	})
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	scopes, err := r.scopesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	invitations := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		invitations = append(invitations, mapInvitation(row, scopes[row.ID]))
	}
	return invitations, int(total), nil
}

func (r *invitationsRepo) HasAccess(ctx context.Context, userID, slug string, now time.Time) (bool, error) {
	n, err := r.q.HasLiveGrant(ctx, gen.HasLiveGrantParams{
		UserID:     userID,
		TenantSlug: slug,
		ExpiresAt:  toMillis(now),
	})
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (r *invitationsRepo) AccessibleTenants(ctx context.Context, userID string, now time.Time) ([]string, error) {
	return r.q.ListLiveGrantTenants(ctx, gen.ListLiveGrantTenantsParams{
		UserID:    userID,
		ExpiresAt: toMillis(now),
	})
}

// scopesFor loads the displayed tenant slugs for each invitation id, in the
// order they were granted.
func (r *invitationsRepo) scopesFor(ctx context.Context, ids []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.q.ListInvitationTenants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.InvitationID] = append(out[row.InvitationID], row.TenantSlug)
	}
	return out, nil
}
