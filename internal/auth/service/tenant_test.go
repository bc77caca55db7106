package service_test

import (
	"context"
	"testing"

	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func TestTenantService(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	created, err := h.tenants.Create(ctx, service.CreateTenantInput{
		Name:   "Zeta",
		Slug:   "zeta",
		Domain: "zeta.example.com",
	}, "admin-1")
	require.NoError(t, err)
	require.True(t, created.IsActive)
	require.Equal(t, "admin-1", created.CreatedBy)
	h.tenant(t, "alpha")

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		_, err := h.tenants.Create(ctx, service.CreateTenantInput{Name: "Other", Slug: "zeta"}, "admin-1")
		require.ErrorIs(t, err, service.ErrTenantSlugTaken)
		require.ErrorIs(t, err, service.ErrConflict)
	})

	t.Run("slug format is validated", func(t *testing.T) {
		for _, slug := range []string{"Has Caps", "-lead", "trail-", "dou--ble", ""} {
			_, err := h.tenants.Create(ctx, service.CreateTenantInput{Name: "X", Slug: slug}, "admin-1")
			require.ErrorIs(t, err, service.ErrValidation, slug)
		}
	})

	t.Run("find", func(t *testing.T) {
		got, err := h.tenants.FindBySlug(ctx, "zeta")
		require.NoError(t, err)
		require.Equal(t, created.ID, got.ID)

		got, err = h.tenants.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "zeta.example.com", got.Domain)

		_, err = h.tenants.FindBySlug(ctx, "nope")
		require.ErrorIs(t, err, service.ErrTenantNotFound)
	})

	t.Run("update patches only given fields", func(t *testing.T) {
		name := "Zeta Prime"
		got, err := h.tenants.Update(ctx, created.ID, service.UpdateTenantInput{Name: &name})
		require.NoError(t, err)
		require.Equal(t, "Zeta Prime", got.Name)
		require.Equal(t, "zeta.example.com", got.Domain)
		require.Equal(t, "zeta", got.Slug)

		_, err = h.tenants.Update(ctx, "missing", service.UpdateTenantInput{Name: &name})
		require.ErrorIs(t, err, service.ErrTenantNotFound)
	})

	t.Run("list is ordered by name and deactivation hides tenants", func(t *testing.T) {
		all, err := h.tenants.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, "alpha", all[0].Slug)

		require.NoError(t, h.tenants.Deactivate(ctx, created.ID))

		active, err := h.tenants.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 1)

		everything, err := h.tenants.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, everything, 2)

		require.ErrorIs(t, h.tenants.Deactivate(ctx, "missing"), service.ErrTenantNotFound)
	})
}
