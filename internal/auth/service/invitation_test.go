package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestIssueInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to thirty days and stores only the fingerprint", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")

		inv, token := h.issue(t, "Alice@Example.com", "t1")

		require.Equal(t, "alice@example.com", inv.Email)
		require.Equal(t, []string{"t1"}, inv.Tenants)
		require.Equal(t, h.now.AddDate(0, 0, 30), inv.ExpiresAt)
		require.False(t, inv.IsUsed)
		require.NotEmpty(t, inv.UserID)

		stored, err := h.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, cryptox.FingerprintToken(token), stored.TokenHash)
		require.NotEqual(t, token, stored.TokenHash)
		require.False(t, stored.IsUsed)

		page, err := h.invitations.List(ctx, service.InvitationQuery{})
		require.NoError(t, err)
		require.Equal(t, 1, page.Pagination.Total)
	})

	t.Run("applies days then months then years", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")

		// 31 Jan + 1 day = 1 Feb, + 1 month = 1 Mar. The reverse order would
		// normalise 31 Feb first and land on 4 Mar.
		inv, err := h.invitations.Issue(ctx, service.IssueInvitationInput{
			Email:        "a@example.com",
			Tenants:      []string{"t1"},
			ExpiryDays:   intPtr(1),
			ExpiryMonths: 1,
			ExpiryYears:  1,
		}, "admin", domain.RequestMeta{})
		require.NoError(t, err)
		require.Equal(t, time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC), inv.ExpiresAt)
	})

	t.Run("unknown or inactive tenant", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		off := h.tenant(t, "off")
		require.NoError(t, h.tenants.Deactivate(ctx, off.ID))

		for _, tenants := range [][]string{{"missing"}, {"t1", "off"}} {
			_, err := h.invitations.Issue(ctx, service.IssueInvitationInput{
				Email:   "a@example.com",
				Tenants: tenants,
			}, "admin", domain.RequestMeta{})
			require.ErrorIs(t, err, service.ErrTenantNotFound)
		}

		// Nothing was written, not even the user.
		_, err := h.users.FindByEmail(ctx, "a@example.com")
		require.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("validation happens before side effects", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.invitations.Issue(ctx, service.IssueInvitationInput{
			Email:   "not-an-email",
			Tenants: []string{" ", ""},
		}, "admin", domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrValidation)

		var verr *service.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Contains(t, verr.Fields, "email")
		require.Contains(t, verr.Fields, "tenants")
		require.Empty(t, h.notices.invitations)
	})

	t.Run("re-invite reuses the user", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		h.tenant(t, "t2")

		first, _ := h.issue(t, "bob@example.com", "t1")
		second, _ := h.issue(t, "BOB@example.com", "t2", "t2")

		require.Equal(t, first.UserID, second.UserID)
		require.Equal(t, []string{"t2"}, second.Tenants)

		n, err := h.users.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("audits the invite", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		h.tenant(t, "t2")
		inv, _ := h.issue(t, "a@example.com", "t1", "t2")

		logs := h.logs(t, domain.AccessLogFilter{Action: domain.ActionInvite})
		require.Len(t, logs, 2)

		tenants := make([]string, 0, len(logs))
		for _, entry := range logs {
			require.Equal(t, inv.UserID, entry.UserID)
			require.Equal(t, domain.StatusSuccess, entry.Status)
			tenants = append(tenants, entry.TenantID)
		}
		require.ElementsMatch(t, []string{"t1", "t2"}, tenants)

		perTenant := h.logs(t, domain.AccessLogFilter{Action: domain.ActionInvite, TenantID: "t2"})
		require.Len(t, perTenant, 1)
	})
}

func TestAcceptInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("generates credentials once", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		inv, token := h.issue(t, "alice@example.com", "t1")

		creds := h.accept(t, token)
		require.Equal(t, "alice@example.com", creds.Email)
		require.Regexp(t, `^user_[0-9a-f]{8}$`, creds.Username)
		require.Regexp(t, `^[0-9a-f]{32}$`, creds.Password)

		user, err := h.users.FindByID(ctx, inv.UserID)
		require.NoError(t, err)
		require.True(t, user.IsInvitationAccepted)
		require.Equal(t, creds.Username, user.Username)
		require.NotContains(t, user.PasswordHash, creds.Password)
		require.True(t, h.creds.Verify(creds.Password, user.PasswordHash))

		require.Len(t, h.notices.credentials, 1)
		require.Equal(t, creds.Password, h.notices.credentials[0].Password)

		_, err = h.invitations.Accept(ctx, token, domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrInvalidOrExpiredInvitation)
	})

	t.Run("concurrent accepts succeed exactly once", func(t *testing.T) {
		h := newFileHarness(t)
		h.tenant(t, "t1")
		_, token := h.issue(t, "race@example.com", "t1")

		const n = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			failures  int
		)
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := h.invitations.Accept(ctx, token, domain.RequestMeta{})
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					successes++
					return
				}
				if errors.Is(err, service.ErrInvalidOrExpiredInvitation) {
					failures++
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, successes)
		require.Equal(t, n-1, failures)
		require.Len(t, h.notices.credentials, 1)
	})

	t.Run("unknown expired and revoked collapse to one error", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")

		_, err := h.invitations.Accept(ctx, "nope", domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrInvalidOrExpiredInvitation)

		_, expiredToken := h.issue(t, "old@example.com", "t1")
		h.now = h.now.AddDate(0, 0, 31)
		_, err = h.invitations.Accept(ctx, expiredToken, domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrInvalidOrExpiredInvitation)

		revoked, revokedToken := h.issue(t, "gone@example.com", "t1")
		_, err = h.invitations.Revoke(ctx, revoked.ID, []string{"t1"}, "mistake", domain.RequestMeta{})
		require.NoError(t, err)
		_, err = h.invitations.Accept(ctx, revokedToken, domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrInvalidOrExpiredInvitation)

		failed := h.logs(t, domain.AccessLogFilter{
			Action: domain.ActionAcceptInvitation,
			Status: domain.StatusFailed,
		})
		require.Len(t, failed, 3)
	})

	t.Run("missing token is a validation error", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.invitations.Accept(ctx, "  ", domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("username is fixed by the first acceptance", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		h.tenant(t, "t2")

		_, token1 := h.issue(t, "carol@example.com", "t1")
		first := h.accept(t, token1)

		_, token2 := h.issue(t, "carol@example.com", "t2")
		second := h.accept(t, token2)

		require.Equal(t, first.Username, second.Username)
		require.NotEqual(t, first.Password, second.Password)
	})
}

func TestRevokeAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("partial then full revoke", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		h.tenant(t, "t2")
		inv, token := h.issue(t, "dan@example.com", "t1", "t2")
		h.accept(t, token)

		res, err := h.invitations.Revoke(ctx, inv.ID, []string{"t1", "unknown"}, "", domain.RequestMeta{})
		require.NoError(t, err)
		require.Equal(t, []string{"t1"}, res.Revoked)
		require.False(t, res.FullyRevoked)

		got, err := h.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"t2"}, got.Tenants)
		require.Nil(t, got.RevokedAt)

		ok, err := h.access.HasAccess(ctx, inv.UserID, "t1")
		require.NoError(t, err)
		require.False(t, ok)
		ok, err = h.access.HasAccess(ctx, inv.UserID, "t2")
		require.NoError(t, err)
		require.True(t, ok)

		res, err = h.invitations.Revoke(ctx, inv.ID, []string{"t2"}, "offboarded", domain.RequestMeta{})
		require.NoError(t, err)
		require.True(t, res.FullyRevoked)

		got, err = h.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.NotNil(t, got.RevokedAt)
		require.Equal(t, "offboarded", got.RevokedReason)

		tenants, err := h.access.AccessibleTenants(ctx, inv.UserID)
		require.NoError(t, err)
		require.Empty(t, tenants)
	})

	t.Run("concurrent single-scope revokes drain the invitation", func(t *testing.T) {
		h := newFileHarness(t)
		slugs := []string{"t1", "t2", "t3", "t4", "t5", "t6"}
		for _, slug := range slugs {
			h.tenant(t, slug)
		}
		inv, token := h.issue(t, "parallel@example.com", slugs...)
		h.accept(t, token)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			removed []string
			full    int
			errs    []error
		)
		for _, slug := range slugs {
			wg.Go(func() {
				res, err := h.invitations.Revoke(ctx, inv.ID, []string{slug}, "offboarded", domain.RequestMeta{})
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				removed = append(removed, res.Revoked...)
				if res.FullyRevoked {
					full++
				}
			})
		}
		wg.Wait()

		require.Empty(t, errs)
		require.ElementsMatch(t, slugs, removed)
		require.Equal(t, 1, full)

		got, err := h.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.NotNil(t, got.RevokedAt)
		require.Equal(t, "offboarded", got.RevokedReason)

		tenants, err := h.access.AccessibleTenants(ctx, inv.UserID)
		require.NoError(t, err)
		require.Empty(t, tenants)
	})

	t.Run("user revoke writes one audit entry per scope", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		h.tenant(t, "t2")
		inv, token := h.issue(t, "erin@example.com", "t1", "t2")
		h.accept(t, token)

		count, at, err := h.invitations.RevokeUserAccess(ctx, service.RevokeAccessInput{
			UserID:  inv.UserID,
			Tenants: []string{"t1", "t2"},
			Reason:  "contract ended",
		}, domain.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"})
		require.NoError(t, err)
		require.Equal(t, 2, count)
		require.Equal(t, h.now, at)

		logs := h.logs(t, domain.AccessLogFilter{Action: domain.ActionRevoke, UserID: inv.UserID})
		require.Len(t, logs, 2)
		tenants := []string{logs[0].TenantID, logs[1].TenantID}
		require.ElementsMatch(t, []string{"t1", "t2"}, tenants)
		require.Equal(t, "10.0.0.1", logs[0].IPAddress)
	})

	t.Run("pending invitations are not touched", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		inv, _ := h.issue(t, "pending@example.com", "t1")

		count, _, err := h.invitations.RevokeUserAccess(ctx, service.RevokeAccessInput{
			UserID:  inv.UserID,
			Tenants: []string{"t1"},
		}, domain.RequestMeta{})
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("requires user and tenants", func(t *testing.T) {
		h := newHarness(t)
		_, _, err := h.invitations.RevokeUserAccess(ctx, service.RevokeAccessInput{}, domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("unknown invitation", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.invitations.Revoke(ctx, "missing", []string{"t1"}, "", domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrInvitationNotFound)
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestExtendAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("resets rather than accumulates", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		inv, _ := h.issue(t, "f@example.com", "t1")

		expiresAt, err := h.invitations.Extend(ctx, service.ExtendAccessInput{
			InvitationID: inv.ID,
			ExpiryDays:   1,
		}, domain.RequestMeta{})
		require.NoError(t, err)
		require.Equal(t, h.now.AddDate(0, 0, 1), expiresAt)

		got, err := h.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, expiresAt, got.ExpiresAt)

		logs := h.logs(t, domain.AccessLogFilter{Action: domain.ActionExtendAccess})
		require.Len(t, logs, 1)
		require.Equal(t, inv.UserID, logs[0].UserID)
	})

	t.Run("stamps updated_at from the service clock", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		inv, token := h.issue(t, "stamp@example.com", "t1")

		h.now = h.now.Add(time.Hour)
		h.accept(t, token)
		user, err := h.users.FindByID(ctx, inv.UserID)
		require.NoError(t, err)
		require.True(t, h.now.Equal(user.UpdatedAt))

		h.now = h.now.Add(time.Hour)
		_, err = h.invitations.Extend(ctx, service.ExtendAccessInput{
			InvitationID: inv.ID,
			ExpiryMonths: 1,
		}, domain.RequestMeta{})
		require.NoError(t, err)

		got, err := h.store.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.True(t, h.now.Equal(got.UpdatedAt))
	})

	t.Run("restores an expired grant", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		inv, token := h.issue(t, "g@example.com", "t1")
		h.accept(t, token)

		h.now = h.now.AddDate(0, 2, 0)
		ok, err := h.access.HasAccess(ctx, inv.UserID, "t1")
		require.NoError(t, err)
		require.False(t, ok)

		_, err = h.invitations.Extend(ctx, service.ExtendAccessInput{InvitationID: inv.ID, ExpiryMonths: 1}, domain.RequestMeta{})
		require.NoError(t, err)

		ok, err = h.access.HasAccess(ctx, inv.UserID, "t1")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("succeeds on a revoked invitation without restoring access", func(t *testing.T) {
		h := newHarness(t)
		h.tenant(t, "t1")
		inv, token := h.issue(t, "h@example.com", "t1")
		h.accept(t, token)
		_, err := h.invitations.Revoke(ctx, inv.ID, []string{"t1"}, "", domain.RequestMeta{})
		require.NoError(t, err)

		_, err = h.invitations.Extend(ctx, service.ExtendAccessInput{InvitationID: inv.ID, ExpiryYears: 1}, domain.RequestMeta{})
		require.NoError(t, err)

		ok, err := h.access.HasAccess(ctx, inv.UserID, "t1")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown invitation", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.invitations.Extend(ctx, service.ExtendAccessInput{InvitationID: "missing"}, domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrInvitationNotFound)
	})
}

func TestListInvitations(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.tenant(t, "t1")
	h.tenant(t, "t2")

	for _, email := range []string{"a@example.com", "b@example.com", "c@other.org"} {
		h.issue(t, email, "t1")
		h.now = h.now.Add(time.Minute)
	}
	used, token := h.issue(t, "d@example.com", "t2")
	h.accept(t, token)
	revoked, _ := h.issue(t, "e@example.com", "t1")
	_, err := h.invitations.Revoke(ctx, revoked.ID, []string{"t1"}, "", domain.RequestMeta{})
	require.NoError(t, err)

	t.Run("newest first, revoked excluded", func(t *testing.T) {
		page, err := h.invitations.List(ctx, service.InvitationQuery{})
		require.NoError(t, err)
		require.Equal(t, 4, page.Pagination.Total)
		require.Equal(t, 20, page.Pagination.Limit)
		require.False(t, page.Pagination.HasMore)
		require.Equal(t, used.ID, page.Invitations[0].ID)
		require.Equal(t, "a@example.com", page.Invitations[3].Email)
	})

	t.Run("filters", func(t *testing.T) {
		page, err := h.invitations.List(ctx, service.InvitationQuery{Filter: domain.InvitationFilter{Email: "EXAMPLE.com"}})
		require.NoError(t, err)
		require.Equal(t, 3, page.Pagination.Total)

		page, err = h.invitations.List(ctx, service.InvitationQuery{Filter: domain.InvitationFilter{Tenant: "t2"}})
		require.NoError(t, err)
		require.Equal(t, 1, page.Pagination.Total)

		page, err = h.invitations.List(ctx, service.InvitationQuery{Filter: domain.InvitationFilter{IsUsed: boolPtr(true)}})
		require.NoError(t, err)
		require.Equal(t, 1, page.Pagination.Total)

		page, err = h.invitations.List(ctx, service.InvitationQuery{Filter: domain.InvitationFilter{IsRevoked: boolPtr(true)}})
		require.NoError(t, err)
		require.Equal(t, 1, page.Pagination.Total)
		require.Equal(t, revoked.ID, page.Invitations[0].ID)
		require.Equal(t, []string{"t1"}, page.Invitations[0].Tenants)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := h.invitations.List(ctx, service.InvitationQuery{Skip: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page.Invitations, 2)
		require.True(t, page.Pagination.HasMore)

		page, err = h.invitations.List(ctx, service.InvitationQuery{Limit: 1000})
		require.NoError(t, err)
		require.Equal(t, 100, page.Pagination.Limit)

		_, err = h.invitations.List(ctx, service.InvitationQuery{Skip: -1})
		require.ErrorIs(t, err, service.ErrValidation)
	})
}
