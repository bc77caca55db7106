package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/pkg/cryptox"
	"github.com/akashm011/Auth/pkg/idx"
	"github.com/akashm011/Auth/pkg/slogx"
)

const (
	defaultExpiryDays = 30

	defaultInvitationLimit = 20
	maxInvitationLimit     = 100

	// maxUsernameAttempts bounds retries when a generated username collides.
	maxUsernameAttempts = 5
)

// InvitationService runs the invitation lifecycle: issue, one-time accept,
// partial or full revoke and expiry extension.
type InvitationService struct {
	Store       store.Store
	Users       *UserService
	Credentials *CredentialIssuer
	Audit       *AuditService
	Notices     Notifier
	Clock       Clock
}

type IssueInvitationInput struct {
	Email        string   `json:"email" validate:"required,email,max=254"`
	Tenants      []string `json:"tenants" validate:"required,min=1,dive,required,max=63"`
	ExpiryDays   *int     `json:"expiryDays" validate:"omitempty,gte=0,lte=3650"`
	ExpiryMonths int      `json:"expiryMonths" validate:"gte=0,lte=1200"`
	ExpiryYears  int      `json:"expiryYears" validate:"gte=0,lte=100"`
}

func (in IssueInvitationInput) policy() domain.ExpiryPolicy {
	days := defaultExpiryDays
	if in.ExpiryDays != nil {
		days = *in.ExpiryDays
	}
	return domain.ExpiryPolicy{Days: days, Months: in.ExpiryMonths, Years: in.ExpiryYears}
}

// Issue creates a pending invitation for email scoped to the given tenants
// and hands the raw token to the notifier. Every tenant must exist and be
// active; the user is reused when already registered.
func (s *InvitationService) Issue(
	ctx context.Context,
	in IssueInvitationInput,
	issuerID string,
	meta domain.RequestMeta,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input before any side effect
	in.Email = normalizeEmail(in.Email)
	in.Tenants = uniqueSlugs(in.Tenants)
	if err := validateInput(in); err != nil {
		return domain.Invitation{}, err
	}

	// 2. Generate the capability; only its fingerprint is stored
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	now := s.Clock.Now()
	inv := domain.Invitation{
		ID:        idx.New().String(),
		Email:     in.Email,
		TokenHash: cryptox.FingerprintToken(token),
		Tenants:   in.Tenants,
		ExpiresAt: in.policy().From(now),
		CreatedBy: issuerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 3. Resolve tenants and owner, then persist
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		active, err := tx.Tenants().CountActiveTenantsBySlug(ctx, inv.Tenants)
		if err != nil {
			return err
		}
		if active != len(inv.Tenants) {
			return ErrTenantNotFound
		}

		user, _, err := s.Users.resolve(ctx, tx, inv.Email, "", "")
		if err != nil {
			return err
		}
		inv.UserID = user.ID

		return tx.Invitations().CreateInvitation(ctx, inv)
	})
	if err != nil {
		if !errors.Is(err, ErrTenantNotFound) {
			log.Error("failed to issue invitation", slog.Any("error", err))
		}
		return domain.Invitation{}, err
	}

	log.Info("invitation issued",
		slog.String("invitation_id", inv.ID),
		slog.String("user_id", inv.UserID),
		slog.Any("tenants", inv.Tenants),
		slog.Time("expires_at", inv.ExpiresAt),
	)

	// 4. Post-commit side effects
	s.notifier().NotifyInvitation(ctx, domain.InvitationNotice{
		Email:       inv.Email,
		Token:       token,
		TenantNames: s.tenantNames(ctx, inv.Tenants),
		ExpiresAt:   inv.ExpiresAt,
	})
	for _, tenant := range inv.Tenants {
		s.Audit.record(ctx, domain.ActionInvite, domain.StatusSuccess, inv.UserID, tenant, meta, "")
	}

	return inv, nil
}

// Accept redeems a token exactly once. It generates the invitee's
// credentials and returns the raw password; this is the only time it can
// be read.
func (s *InvitationService) Accept(ctx context.Context, token string, meta domain.RequestMeta) (domain.Credentials, error) {
	log := slogx.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Credentials{}, fieldError("token", "is required")
	}

	var (
		accepted domain.AcceptedInvitation
		expires  time.Time
		creds    domain.Credentials
	)

	// 1. Mark the invitation used and store the credentials in one unit
	now := s.Clock.Now()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		accepted, err = tx.Invitations().AcceptInvitation(ctx, cryptox.FingerprintToken(token), now)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOrExpiredInvitation
		}
		if err != nil {
			return err
		}

		inv, err := tx.Invitations().GetInvitationByID(ctx, accepted.ID)
		if err != nil {
			return err
		}
		expires = inv.ExpiresAt

		password, err := s.Credentials.GeneratePassword()
		if err != nil {
			return err
		}
		hash, err := s.Credentials.Hash(password)
		if err != nil {
			return err
		}

		for range maxUsernameAttempts {
			username, err := s.Credentials.GenerateUsername()
			if err != nil {
				return err
			}
			effective, err := markAccepted(ctx, tx, accepted.UserID, username, hash, now)
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			if err != nil {
				return err
			}
			creds = domain.Credentials{Email: accepted.Email, Username: effective, Password: password}
			return nil
		}
		return errors.New("could not allocate a unique username")
	})
	if err != nil {
		if errors.Is(err, ErrInvalidOrExpiredInvitation) {
			log.Info("invitation accept refused")
			s.Audit.record(ctx, domain.ActionAcceptInvitation, domain.StatusFailed, "", "", meta, "Invalid or expired invitation")
			return domain.Credentials{}, err
		}
		log.Error("failed to accept invitation", slog.Any("error", err))
		return domain.Credentials{}, err
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", accepted.ID),
		slog.String("user_id", accepted.UserID),
		slog.String("username", creds.Username),
	)

	// 2. Post-commit side effects
	s.notifier().NotifyCredentials(ctx, domain.CredentialsNotice{
		Email:     creds.Email,
		Username:  creds.Username,
		Password:  creds.Password,
		Tenants:   accepted.Tenants,
		ExpiresAt: expires,
	})
	for _, tenant := range accepted.Tenants {
		s.Audit.record(ctx, domain.ActionAcceptInvitation, domain.StatusSuccess, accepted.UserID, tenant, meta, "")
	}

	return creds, nil
}

// RevokeResult reports what a revoke actually removed.
type RevokeResult struct {
	Revoked      []string
	FullyRevoked bool
	RevokedAt    time.Time
}

// Revoke removes tenants from one invitation's live scopes. Slugs that are not
// live scopes are ignored. When nothing remains the invitation is revoked as
// a whole with reason.
func (s *InvitationService) Revoke(
	ctx context.Context,
	invitationID string,
	tenants []string,
	reason string,
	meta domain.RequestMeta,
) (RevokeResult, error) {
	if invitationID == "" {
		return RevokeResult{}, fieldError("invitationId", "is required")
	}
	tenants = uniqueSlugs(tenants)
	if len(tenants) == 0 {
		return RevokeResult{}, fieldError("tenants", "must contain at least 1 item(s)")
	}

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if errors.Is(err, store.ErrNotFound) {
		return RevokeResult{}, ErrInvitationNotFound
	}
	if err != nil {
		return RevokeResult{}, err
	}

	now := s.Clock.Now()
	res, err := s.revoke(ctx, inv.ID, inv.UserID, tenants, reason, now, meta)
	if err != nil {
		return RevokeResult{}, err
	}
	return res, nil
}

type RevokeAccessInput struct {
	UserID  string   `json:"userId" validate:"required"`
	Tenants []string `json:"tenants" validate:"required,min=1,dive,required"`
	Reason  string   `json:"reason" validate:"max=500"`
}

// RevokeUserAccess revokes the given tenants from every accepted, non-revoked
// invitation owned by the user. It returns the number of scopes removed.
func (s *InvitationService) RevokeUserAccess(
	ctx context.Context,
	in RevokeAccessInput,
	meta domain.RequestMeta,
) (int, time.Time, error) {
	log := slogx.FromContext(ctx)

	in.Tenants = uniqueSlugs(in.Tenants)
	if err := validateInput(in); err != nil {
		return 0, time.Time{}, err
	}

	ids, err := s.Store.Invitations().ListActiveGrantIDs(ctx, in.UserID)
	if err != nil {
		log.Error("failed to list grants", slog.String("user_id", in.UserID), slog.Any("error", err))
		return 0, time.Time{}, err
	}

	now := s.Clock.Now()
	count := 0
	for _, id := range ids {
		res, err := s.revoke(ctx, id, in.UserID, in.Tenants, in.Reason, now, meta)
		if err != nil {
			return count, now, err
		}
		count += len(res.Revoked)
	}

	log.Info("user access revoked",
		slog.String("user_id", in.UserID),
		slog.Any("tenants", in.Tenants),
		slog.Int("revoked_count", count),
	)
	return count, now, nil
}

func (s *InvitationService) revoke(
	ctx context.Context,
	invitationID, userID string,
	tenants []string,
	reason string,
	now time.Time,
	meta domain.RequestMeta,
) (RevokeResult, error) {
	log := slogx.FromContext(ctx)

	var (
		revoked []string
		full    bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		revoked, full, err = tx.Invitations().RevokeScopes(ctx, invitationID, tenants, reason, now)
		return err
	})
	if err != nil {
		log.Error("failed to revoke scopes",
			slog.String("invitation_id", invitationID),
			slog.Any("error", err),
		)
		return RevokeResult{}, err
	}

	if len(revoked) > 0 {
		log.Info("invitation scopes revoked",
			slog.String("invitation_id", invitationID),
			slog.Any("tenants", revoked),
			slog.Bool("fully_revoked", full),
		)
	}
	for _, tenant := range revoked {
		s.Audit.record(ctx, domain.ActionRevoke, domain.StatusSuccess, userID, tenant, meta, "")
	}

	return RevokeResult{Revoked: revoked, FullyRevoked: full, RevokedAt: now}, nil
}

type ExtendAccessInput struct {
	InvitationID string `json:"invitationId" validate:"required"`
	ExpiryDays   int    `json:"expiryDays" validate:"gte=0,lte=3650"`
	ExpiryMonths int    `json:"expiryMonths" validate:"gte=0,lte=1200"`
	ExpiryYears  int    `json:"expiryYears" validate:"gte=0,lte=100"`
}

// Extend resets the expiry to now plus the given offset. It does not add to
// the previous expiry, and it applies to used and revoked invitations alike.
func (s *InvitationService) Extend(
	ctx context.Context,
	in ExtendAccessInput,
	meta domain.RequestMeta,
) (time.Time, error) {
	log := slogx.FromContext(ctx)

	if err := validateInput(in); err != nil {
		return time.Time{}, err
	}

	policy := domain.ExpiryPolicy{Days: in.ExpiryDays, Months: in.ExpiryMonths, Years: in.ExpiryYears}
	now := s.Clock.Now()
	expiresAt := policy.From(now)

	err := s.Store.Invitations().ExtendInvitation(ctx, in.InvitationID, expiresAt, now)
	if errors.Is(err, store.ErrNotFound) {
		return time.Time{}, ErrInvitationNotFound
	}
	if err != nil {
		log.Error("failed to extend invitation", slog.String("invitation_id", in.InvitationID), slog.Any("error", err))
		return time.Time{}, err
	}

	log.Info("invitation extended",
		slog.String("invitation_id", in.InvitationID),
		slog.Time("expires_at", expiresAt),
	)

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, in.InvitationID)
	if err != nil {
		log.Warn("failed to reload extended invitation", slog.Any("error", err))
		return expiresAt, nil
	}
	for _, tenant := range inv.Tenants {
		s.Audit.record(ctx, domain.ActionExtendAccess, domain.StatusSuccess, inv.UserID, tenant, meta, "")
	}

	return expiresAt, nil
}

type InvitationQuery struct {
	Filter domain.InvitationFilter
	Skip   int
	Limit  int
}

type InvitationPage struct {
	Invitations []domain.Invitation
	Pagination  Pagination
}

// List returns invitations newest first. Revoked invitations are excluded
// unless the filter asks for them.
func (s *InvitationService) List(ctx context.Context, q InvitationQuery) (InvitationPage, error) {
	if q.Skip < 0 {
		return InvitationPage{}, fieldError("skip", "must be greater than or equal to 0")
	}
	limit := clampLimit(q.Limit, defaultInvitationLimit, maxInvitationLimit)
	q.Filter.Email = normalizeEmail(q.Filter.Email)

	invitations, total, err := s.Store.Invitations().ListInvitations(ctx, q.Filter, store.Page{Skip: q.Skip, Limit: limit})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invitations", slog.Any("error", err))
		return InvitationPage{}, err
	}

	return InvitationPage{
		Invitations: invitations,
		Pagination:  newPagination(total, q.Skip, limit),
	}, nil
}

func (s *InvitationService) notifier() Notifier {
	if s.Notices == nil {
		return nopNotifier{}
	}
	return s.Notices
}

// tenantNames maps slugs to display names, falling back to the slug.
func (s *InvitationService) tenantNames(ctx context.Context, slugs []string) []string {
	names := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		t, err := s.Store.Tenants().GetTenantBySlug(ctx, slug)
		if err != nil {
			names = append(names, slug)
			continue
		}
		names = append(names, t.Name)
	}
	return names
}

// uniqueSlugs trims and de-duplicates slugs, keeping first-seen order.
func uniqueSlugs(slugs []string) []string {
	out := make([]string, 0, len(slugs))
	seen := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
