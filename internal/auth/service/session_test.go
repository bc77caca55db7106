package service_test

import (
	"context"
	"testing"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.tenant(t, "t1")
	h.tenant(t, "t2")
	inv, token := h.issue(t, "sam@example.com", "t1")
	creds := h.accept(t, token)

	t.Run("success", func(t *testing.T) {
		res, err := h.sessions.SignIn(ctx, service.SignInInput{
			Email:    "sam@example.com",
			Password: creds.Password,
			TenantID: "t1",
		}, domain.RequestMeta{IPAddress: "192.0.2.1"})
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)
		require.Equal(t, inv.UserID, res.User.ID)
		require.Equal(t, []string{"t1"}, res.AccessibleTenants)

		session, err := h.sessions.Verify(ctx, res.Token)
		require.NoError(t, err)
		require.Equal(t, "t1", session.Claims.Tenant)
		require.Equal(t, creds.Username, session.Claims.Username)
		require.Empty(t, session.Claims.Scopes)

		user, err := h.users.FindByID(ctx, inv.UserID)
		require.NoError(t, err)
		require.NotNil(t, user.LastLogin)

		ok := h.logs(t, domain.AccessLogFilter{Action: domain.ActionSignIn, Status: domain.StatusSuccess})
		require.Len(t, ok, 1)
		require.Equal(t, "192.0.2.1", ok[0].IPAddress)
	})

	cases := []struct {
		name   string
		in     service.SignInInput
		err    error
		reason string
	}{
		{"missing fields", service.SignInInput{Email: "sam@example.com"}, service.ErrValidation, "Missing email or password"},
		{"unknown user", service.SignInInput{Email: "who@example.com", Password: "x"}, service.ErrInvalidCredentials, "User not found"},
		{"wrong password", service.SignInInput{Email: "sam@example.com", Password: "wrong"}, service.ErrInvalidCredentials, "Invalid password"},
		{"no grant for tenant", service.SignInInput{Email: "sam@example.com", Password: creds.Password, TenantID: "t2"}, service.ErrNoTenantAccess, "No access to tenant"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.sessions.SignIn(ctx, tc.in, domain.RequestMeta{})
			require.ErrorIs(t, err, tc.err)

			failed := h.logs(t, domain.AccessLogFilter{Action: domain.ActionSignIn, Status: domain.StatusFailed})
			require.NotEmpty(t, failed)
			require.Equal(t, tc.reason, failed[0].ErrorMessage)
		})
	}

	t.Run("pending user has no password", func(t *testing.T) {
		h.issue(t, "pending@example.com", "t1")
		_, err := h.sessions.SignIn(ctx, service.SignInInput{Email: "pending@example.com", Password: "x"}, domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrPasswordNotSet)
	})

	t.Run("revoked grant invalidates the session", func(t *testing.T) {
		res, err := h.sessions.SignIn(ctx, service.SignInInput{
			Email: "sam@example.com", Password: creds.Password, TenantID: "t1",
		}, domain.RequestMeta{})
		require.NoError(t, err)

		_, err = h.invitations.Revoke(ctx, inv.ID, []string{"t1"}, "", domain.RequestMeta{})
		require.NoError(t, err)

		_, err = h.sessions.Verify(ctx, res.Token)
		require.ErrorIs(t, err, service.ErrNoTenantAccess)

		_, err = h.sessions.SignIn(ctx, service.SignInInput{
			Email: "sam@example.com", Password: creds.Password, TenantID: "t1",
		}, domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrNoTenantAccess)
	})

	t.Run("inactive user is refused", func(t *testing.T) {
		require.NoError(t, h.users.Deactivate(ctx, inv.UserID))
		_, err := h.sessions.SignIn(ctx, service.SignInInput{
			Email: "sam@example.com", Password: creds.Password,
		}, domain.RequestMeta{})
		require.ErrorIs(t, err, service.ErrUserInactive)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := h.sessions.Verify(ctx, "not.a.jwt")
		require.ErrorIs(t, err, service.ErrInvalidSession)
		require.ErrorIs(t, err, service.ErrUnauthenticated)
	})
}

func TestSignInAdminScopes(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.bootstrap.Bootstrap(ctx, "bootstrap-secret", service.BootstrapInput{
		AdminEmail:    "root@example.com",
		AdminPassword: "correct horse battery",
	})
	require.NoError(t, err)

	res, err := h.sessions.SignIn(ctx, service.SignInInput{
		Email: "root@example.com", Password: "correct horse battery",
	}, domain.RequestMeta{})
	require.NoError(t, err)
	require.Equal(t, "admin", res.User.Username)

	session, err := h.sessions.Verify(ctx, res.Token)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{service.ScopeAdminRead, service.ScopeAdminWrite}, session.Claims.Scopes)
	require.Empty(t, session.AccessibleTenants)
}
