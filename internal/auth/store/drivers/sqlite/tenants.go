package sqlite

import (
	"context"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store/drivers/sqlite/gen"
)

type tenantsRepo struct {
	q *gen.Queries
}

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	err := r.q.CreateTenant(ctx, gen.CreateTenantParams{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Domain:      mapStringNull(t.Domain),
		Description: mapStringNull(t.Description),
		CreatedBy:   t.CreatedBy,
		CreatedAt:   toMillis(t.CreatedAt),
		UpdatedAt:   toMillis(t.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	row, err := r.q.GetTenantByID(ctx, id)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return mapTenant(row), nil
}

func (r *tenantsRepo) GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	row, err := r.q.GetTenantBySlug(ctx, slug)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return mapTenant(row), nil
}

func (r *tenantsRepo) ListTenants(ctx context.Context, activeOnly bool) ([]domain.Tenant, error) {
	var (
		rows []gen.Tenant
		err  error
	)
	if activeOnly {
		rows, err = r.q.ListActiveTenants(ctx)
	} else {
		rows, err = r.q.ListTenants(ctx)
	}
	if err != nil {
		return nil, err
	}

	tenants := make([]domain.Tenant, 0, len(rows))
	for _, row := range rows {
		tenants = append(tenants, mapTenant(row))
	}
	return tenants, nil
}

func (r *tenantsRepo) UpdateTenant(ctx context.Context, t domain.Tenant) error {
	return mapRowsAffected(r.q.UpdateTenant(ctx, gen.UpdateTenantParams{
		Name:        t.Name,
		Domain:      mapStringNull(t.Domain),
		Description: mapStringNull(t.Description),
		UpdatedAt:   toMillis(t.UpdatedAt),
		ID:          t.ID,
	}))
}

func (r *tenantsRepo) DeactivateTenant(ctx context.Context, id string, now time.Time) error {
	return mapRowsAffected(r.q.DeactivateTenant(ctx, gen.DeactivateTenantParams{
		UpdatedAt: toMillis(now),
		ID:        id,
	}))
}

func (r *tenantsRepo) CountActiveTenantsBySlug(ctx context.Context, slugs []string) (int, error) {
	if len(slugs) == 0 {
		return 0, nil
	}
	n, err := r.q.CountActiveTenantsBySlug(ctx, slugs)
	return int(n), err
}
