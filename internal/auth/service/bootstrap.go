package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/pkg/idx"
	"github.com/akashm011/Auth/pkg/slogx"
)

const bootstrapAdminUsername = "admin"

// defaultTenants are seeded when a bootstrap request names none.
var defaultTenants = []domain.TenantDefinition{
	{Name: "My App", Slug: "myapp", Description: "Default application tenant"},
	{Name: "Dashboard", Slug: "dashboard", Description: "Administrative dashboard"},
}

type BootstrapService struct {
	Store       store.Store
	Credentials *CredentialIssuer
	Clock       Clock
	Token       string // Pre-configured bootstrap token
}

type BootstrapInput struct {
	AdminEmail    string                 `json:"adminEmail" validate:"required,email,max=254"`
	AdminName     string                 `json:"adminName" validate:"max=100"`
	AdminPassword string                 `json:"adminPassword" validate:"required,min=12,max=1024"`
	Tenants       []BootstrapTenantInput `json:"tenants" validate:"omitempty,dive"`
}

type BootstrapTenantInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,max=63,slug"`
	Domain      string `json:"domain" validate:"omitempty,max=255"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type BootstrapResult struct {
	AdminID string
	Tenants []domain.Tenant
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	n, err := s.Store.Users().CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Bootstrap creates the first admin user and the initial tenants. It is only
// allowed while no user exists and requires the configured token.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, in BootstrapInput) (BootstrapResult, error) {
	l := slogx.FromContext(ctx)

	// 1. Validate provided token
	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return BootstrapResult{}, ErrBootstrapUnauthorized
	}

	// 2. Check if already bootstrapped
	if bootstrapped, err := s.IsBootstrapped(ctx); err != nil {
		return BootstrapResult{}, err
	} else if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return BootstrapResult{}, ErrBootstrapAlready
	}

	in.AdminEmail = normalizeEmail(in.AdminEmail)
	if err := validateInput(in); err != nil {
		return BootstrapResult{}, err
	}

	defs := make([]domain.TenantDefinition, 0, len(in.Tenants))
	for _, t := range in.Tenants {
		defs = append(defs, domain.TenantDefinition{
			Name:        strings.TrimSpace(t.Name),
			Slug:        strings.TrimSpace(t.Slug),
			Domain:      t.Domain,
			Description: t.Description,
		})
	}
	if len(defs) == 0 {
		defs = defaultTenants
	}

	// 3. Hash password
	passHash, err := s.Credentials.Hash(in.AdminPassword)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return BootstrapResult{}, err
	}

	name := in.AdminName
	if name == "" {
		name = "Administrator"
	}

	// 4. Create admin user and tenants in a transaction
	now := s.Clock.Now()
	res := BootstrapResult{AdminID: idx.New().String()}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		err := tx.Users().CreateUser(ctx, domain.User{
			ID:                   res.AdminID,
			Email:                in.AdminEmail,
			Username:             bootstrapAdminUsername,
			PasswordHash:         passHash,
			Name:                 name,
			Role:                 domain.RoleAdmin,
			IsActive:             true,
			IsInvitationAccepted: true,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
		if err != nil {
			l.Error("failed to create admin user", slog.Any("error", err))
			return err
		}

		for _, def := range defs {
			t := domain.Tenant{
				ID:          idx.New().String(),
				Name:        def.Name,
				Slug:        def.Slug,
				Domain:      def.Domain,
				Description: def.Description,
				IsActive:    true,
				CreatedBy:   res.AdminID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.Tenants().CreateTenant(ctx, t); err != nil {
				if errors.Is(err, store.ErrAlreadyExists) {
					return ErrTenantSlugTaken
				}
				l.Error("failed to create tenant", slog.String("slug", def.Slug), slog.Any("error", err))
				return err
			}
			res.Tenants = append(res.Tenants, t)
		}
		return nil
	})
	if err != nil {
		return BootstrapResult{}, err
	}

	l.Info("successfully bootstrapped system",
		slog.String("admin_user_id", res.AdminID),
		slog.Int("tenants", len(res.Tenants)),
	)
	return res, nil
}
