package service_test

import (
	"context"
	"testing"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	in := service.BootstrapInput{
		AdminEmail:    "Root@Example.com",
		AdminPassword: "correct horse battery",
	}

	t.Run("wrong token", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.bootstrap.Bootstrap(ctx, "guess", in)
		require.ErrorIs(t, err, service.ErrBootstrapUnauthorized)
	})

	t.Run("disabled without a configured token", func(t *testing.T) {
		h := newHarness(t)
		h.bootstrap.Token = ""
		_, err := h.bootstrap.Bootstrap(ctx, "", in)
		require.ErrorIs(t, err, service.ErrBootstrapUnauthorized)
	})

	t.Run("seeds admin and default tenants once", func(t *testing.T) {
		h := newHarness(t)

		res, err := h.bootstrap.Bootstrap(ctx, "bootstrap-secret", in)
		require.NoError(t, err)
		require.Len(t, res.Tenants, 2)

		admin, err := h.users.FindByID(ctx, res.AdminID)
		require.NoError(t, err)
		require.Equal(t, "root@example.com", admin.Email)
		require.Equal(t, "admin", admin.Username)
		require.Equal(t, domain.RoleAdmin, admin.Role)
		require.True(t, admin.IsInvitationAccepted)

		for _, slug := range []string{"myapp", "dashboard"} {
			_, err := h.tenants.FindBySlug(ctx, slug)
			require.NoError(t, err)
		}

		_, err = h.bootstrap.Bootstrap(ctx, "bootstrap-secret", in)
		require.ErrorIs(t, err, service.ErrBootstrapAlready)
	})

	t.Run("explicit tenants replace the defaults", func(t *testing.T) {
		h := newHarness(t)
		custom := in
		custom.Tenants = []service.BootstrapTenantInput{{Name: "Portal", Slug: "portal"}}

		res, err := h.bootstrap.Bootstrap(ctx, "bootstrap-secret", custom)
		require.NoError(t, err)
		require.Len(t, res.Tenants, 1)

		_, err = h.tenants.FindBySlug(ctx, "myapp")
		require.ErrorIs(t, err, service.ErrTenantNotFound)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		h := newHarness(t)
		weak := in
		weak.AdminPassword = "short"
		_, err := h.bootstrap.Bootstrap(ctx, "bootstrap-secret", weak)
		require.ErrorIs(t, err, service.ErrValidation)
	})
}
