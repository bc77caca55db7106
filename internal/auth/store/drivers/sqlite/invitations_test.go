package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func seedInvitation(t *testing.T, s *Store, id, userID, email, token string, expiresAt time.Time, tenants ...string) {
	t.Helper()

	now := time.Now().UTC()
	require.NoError(t, s.Invitations().CreateInvitation(context.Background(), domain.Invitation{
		ID:        id,
		Email:     email,
		UserID:    userID,
		TokenHash: token,
		Tenants:   tenants,
		ExpiresAt: expiresAt,
		CreatedBy: "admin",
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func TestInvitationsAccept(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now().UTC()

	seedTenant(t, s, "myapp")
	seedTenant(t, s, "dashboard")
	seedUser(t, s, "u1", "alice@example.com")
	seedInvitation(t, s, "inv-1", "u1", "alice@example.com", "tok-1", now.Add(time.Hour), "myapp", "dashboard")
	seedInvitation(t, s, "inv-old", "u1", "alice@example.com", "tok-old", now.Add(-time.Minute), "myapp")

	t.Run("first accept wins", func(t *testing.T) {
		accepted, err := s.Invitations().AcceptInvitation(ctx, "tok-1", now)
		require.NoError(t, err)
		require.Equal(t, "inv-1", accepted.ID)
		require.Equal(t, "u1", accepted.UserID)
		require.Equal(t, []string{"myapp", "dashboard"}, accepted.Tenants)

		_, err = s.Invitations().AcceptInvitation(ctx, "tok-1", now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("expired and unknown tokens do not qualify", func(t *testing.T) {
		_, err := s.Invitations().AcceptInvitation(ctx, "tok-old", now)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Invitations().AcceptInvitation(ctx, "nope", now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("accepted invitation grants access until expiry", func(t *testing.T) {
		ok, err := s.Invitations().HasAccess(ctx, "u1", "myapp", now)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = s.Invitations().HasAccess(ctx, "u1", "myapp", now.Add(2*time.Hour))
		require.NoError(t, err)
		require.False(t, ok)

		tenants, err := s.Invitations().AccessibleTenants(ctx, "u1", now)
		require.NoError(t, err)
		require.Equal(t, []string{"dashboard", "myapp"}, tenants)
	})

	t.Run("revoked invitation cannot be accepted", func(t *testing.T) {
		seedInvitation(t, s, "inv-2", "u1", "alice@example.com", "tok-2", now.Add(time.Hour), "myapp")

		_, full, err := s.Invitations().RevokeScopes(ctx, "inv-2", []string{"myapp"}, "gone", now)
		require.NoError(t, err)
		require.True(t, full)

		_, err = s.Invitations().AcceptInvitation(ctx, "tok-2", now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestInvitationsRevokeScopes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now().UTC()

	seedTenant(t, s, "myapp")
	seedTenant(t, s, "dashboard")
	seedUser(t, s, "u1", "alice@example.com")
	seedInvitation(t, s, "inv-1", "u1", "alice@example.com", "tok-1", now.Add(time.Hour), "myapp", "dashboard")

	_, err := s.Invitations().AcceptInvitation(ctx, "tok-1", now)
	require.NoError(t, err)

	t.Run("partial revoke keeps the invitation live", func(t *testing.T) {
		revoked, full, err := s.Invitations().RevokeScopes(ctx, "inv-1", []string{"myapp", "unknown"}, "r", now)
		require.NoError(t, err)
		require.Equal(t, []string{"myapp"}, revoked)
		require.False(t, full)

		inv, err := s.Invitations().GetInvitationByID(ctx, "inv-1")
		require.NoError(t, err)
		require.Equal(t, []string{"dashboard"}, inv.Tenants)
		require.False(t, inv.Revoked())

		ok, err := s.Invitations().HasAccess(ctx, "u1", "myapp", now)
		require.NoError(t, err)
		require.False(t, ok)

		ids, err := s.Invitations().ListActiveGrantIDs(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, []string{"inv-1"}, ids)
	})

	t.Run("revoking an already revoked scope is a no-op", func(t *testing.T) {
		revoked, full, err := s.Invitations().RevokeScopes(ctx, "inv-1", []string{"myapp"}, "r", now)
		require.NoError(t, err)
		require.Empty(t, revoked)
		require.False(t, full)
	})

	t.Run("revoking the last scope revokes the invitation", func(t *testing.T) {
		later := now.Add(time.Second)
		revoked, full, err := s.Invitations().RevokeScopes(ctx, "inv-1", []string{"dashboard"}, "offboarded", later)
		require.NoError(t, err)
		require.Equal(t, []string{"dashboard"}, revoked)
		require.True(t, full)

		inv, err := s.Invitations().GetInvitationByID(ctx, "inv-1")
		require.NoError(t, err)
		require.True(t, inv.Revoked())
		require.Equal(t, "offboarded", inv.RevokedReason)
		require.Equal(t, []string{"dashboard"}, inv.Tenants)

		ids, err := s.Invitations().ListActiveGrantIDs(ctx, "u1")
		require.NoError(t, err)
		require.Empty(t, ids)
	})

	t.Run("extend still applies to revoked invitations", func(t *testing.T) {
		expires := now.Add(48 * time.Hour).Truncate(time.Millisecond)
		stamp := now.Add(time.Hour).Truncate(time.Millisecond)
		require.NoError(t, s.Invitations().ExtendInvitation(ctx, "inv-1", expires, stamp))

		inv, err := s.Invitations().GetInvitationByID(ctx, "inv-1")
		require.NoError(t, err)
		require.True(t, expires.Equal(inv.ExpiresAt))
		require.True(t, stamp.Equal(inv.UpdatedAt))

		require.ErrorIs(t, s.Invitations().ExtendInvitation(ctx, "missing", expires, stamp), store.ErrNotFound)
	})
}

func TestInvitationsList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now().UTC()

	seedTenant(t, s, "myapp")
	seedTenant(t, s, "dashboard")
	seedUser(t, s, "u1", "Alice@Example.com")
	seedUser(t, s, "u2", "bob@example.com")

	for i := range 3 {
		seedInvitation(t, s, fmt.Sprintf("a-%d", i), "u1", "Alice@Example.com", fmt.Sprintf("ta-%d", i), now.Add(time.Hour), "myapp")
	}
	seedInvitation(t, s, "b-0", "u2", "bob@example.com", "tb-0", now.Add(time.Hour), "dashboard")
	seedInvitation(t, s, "b-1", "u2", "bob@example.com", "tb-1", now.Add(time.Hour), "dashboard")

	_, err := s.Invitations().AcceptInvitation(ctx, "tb-0", now)
	require.NoError(t, err)
	_, _, err = s.Invitations().RevokeScopes(ctx, "b-1", []string{"dashboard"}, "", now)
	require.NoError(t, err)

	yes, no := true, false

	t.Run("excludes revoked by default", func(t *testing.T) {
		list, total, err := s.Invitations().ListInvitations(ctx, domain.InvitationFilter{}, store.Page{Limit: 20})
		require.NoError(t, err)
		require.Equal(t, 4, total)
		require.Len(t, list, 4)
	})

	t.Run("email substring is case-insensitive", func(t *testing.T) {
		_, total, err := s.Invitations().ListInvitations(ctx, domain.InvitationFilter{Email: "alice@"}, store.Page{Limit: 20})
		require.NoError(t, err)
		require.Equal(t, 3, total)
	})

	t.Run("filters by tenant and usage", func(t *testing.T) {
		list, total, err := s.Invitations().ListInvitations(ctx, domain.InvitationFilter{Tenant: "dashboard", IsUsed: &yes}, store.Page{Limit: 20})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, "b-0", list[0].ID)

		_, total, err = s.Invitations().ListInvitations(ctx, domain.InvitationFilter{IsUsed: &no}, store.Page{Limit: 20})
		require.NoError(t, err)
		require.Equal(t, 3, total)
	})

	t.Run("revoked only", func(t *testing.T) {
		list, total, err := s.Invitations().ListInvitations(ctx, domain.InvitationFilter{IsRevoked: &yes}, store.Page{Limit: 20})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, "b-1", list[0].ID)
	})

	t.Run("pages keep the total", func(t *testing.T) {
		list, total, err := s.Invitations().ListInvitations(ctx, domain.InvitationFilter{}, store.Page{Skip: 3, Limit: 2})
		require.NoError(t, err)
		require.Equal(t, 4, total)
		require.Len(t, list, 1)
	})
}
