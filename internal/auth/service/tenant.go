package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/pkg/idx"
	"github.com/akashm011/Auth/pkg/slogx"
)

type TenantService struct {
	Store store.Store
	Clock Clock
}

type CreateTenantInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,max=63,slug"`
	Domain      string `json:"domain" validate:"omitempty,max=255"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// UpdateTenantInput patches a tenant. Nil fields are left untouched.
type UpdateTenantInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Domain      *string `json:"domain" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// Create registers a tenant. The slug is the scope token used by invitations
// and cannot change afterwards.
func (s *TenantService) Create(ctx context.Context, in CreateTenantInput, creatorID string) (domain.Tenant, error) {
	log := slogx.FromContext(ctx)

	in.Slug = strings.TrimSpace(in.Slug)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return domain.Tenant{}, err
	}

	now := s.Clock.Now()
	tenant := domain.Tenant{
		ID:          idx.New().String(),
		Name:        in.Name,
		Slug:        in.Slug,
		Domain:      in.Domain,
		Description: in.Description,
		IsActive:    true,
		CreatedBy:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Tenants().CreateTenant(ctx, tenant); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Tenant{}, ErrTenantSlugTaken
		}
		log.Error("failed to create tenant", slog.String("slug", in.Slug), slog.Any("error", err))
		return domain.Tenant{}, err
	}

	log.Info("tenant created",
		slog.String("tenant_id", tenant.ID),
		slog.String("slug", tenant.Slug),
		slog.String("created_by", creatorID),
	)
	return tenant, nil
}

func (s *TenantService) FindBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	t, err := s.Store.Tenants().GetTenantBySlug(ctx, slug)
	return t, mapTenantErr(err)
}

func (s *TenantService) FindByID(ctx context.Context, id string) (domain.Tenant, error) {
	t, err := s.Store.Tenants().GetTenantByID(ctx, id)
	return t, mapTenantErr(err)
}

// List returns tenants ordered by name.
func (s *TenantService) List(ctx context.Context, activeOnly bool) ([]domain.Tenant, error) {
	return s.Store.Tenants().ListTenants(ctx, activeOnly)
}

func (s *TenantService) Update(ctx context.Context, id string, in UpdateTenantInput) (domain.Tenant, error) {
	if err := validateInput(in); err != nil {
		return domain.Tenant{}, err
	}

	var updated domain.Tenant
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.Tenants().GetTenantByID(ctx, id)
		if err != nil {
			return mapTenantErr(err)
		}

		if in.Name != nil {
			t.Name = strings.TrimSpace(*in.Name)
		}
		if in.Domain != nil {
			t.Domain = *in.Domain
		}
		if in.Description != nil {
			t.Description = *in.Description
		}

		t.UpdatedAt = s.Clock.Now()
		if err := tx.Tenants().UpdateTenant(ctx, t); err != nil {
			return mapTenantErr(err)
		}
		updated, err = tx.Tenants().GetTenantByID(ctx, id)
		return mapTenantErr(err)
	})
	return updated, err
}

// Deactivate hides the tenant from new invitations. Existing grants keep
// their scope rows; the tenant simply stops validating on issue.
func (s *TenantService) Deactivate(ctx context.Context, id string) error {
	if err := mapTenantErr(s.Store.Tenants().DeactivateTenant(ctx, id, s.Clock.Now())); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("tenant deactivated", slog.String("tenant_id", id))
	return nil
}

func mapTenantErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrTenantNotFound
	}
	return err
}
