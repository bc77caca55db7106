package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/pkg/jwtx"
	"github.com/akashm011/Auth/pkg/slogx"
)

// Scopes carried by session tokens of admin users.
const (
	ScopeAdminRead  = "admin:read"
	ScopeAdminWrite = "admin:write"
)

// Sign-in failure reasons as written to the access log.
const (
	reasonMissingCredentials = "Missing email or password"
	reasonUserNotFound       = "User not found"
	reasonNoPassword         = "User has no password set"
	reasonInvalidPassword    = "Invalid password"
	reasonUserInactive       = "User is inactive"
	reasonNotAccepted        = "Invitation not accepted"
	reasonNoTenantAccess     = "No access to tenant"
)

// SessionService signs users in and validates the session tokens it mints.
// Tenant access is always decided by AccessService.
type SessionService struct {
	Users       *UserService
	Access      *AccessService
	Credentials *CredentialIssuer
	Audit       *AuditService
	Signer      jwtx.Signer
	Verifier    jwtx.Verifier
	Issuer      string
	TTL         time.Duration
	Clock       Clock
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenantId"`
}

type SignInResult struct {
	Token             string
	User              domain.User
	AccessibleTenants []string
}

// SignIn checks the password and, when a tenant is named, that the user holds
// a live grant for it. Every attempt is audited with its failure reason.
func (s *SessionService) SignIn(ctx context.Context, in SignInInput, meta domain.RequestMeta) (SignInResult, error) {
	log := slogx.FromContext(ctx)

	tenant := strings.TrimSpace(in.TenantID)
	fail := func(userID, reason string, err error) (SignInResult, error) {
		log.Info("sign-in refused", slog.String("reason", reason), slog.String("tenant", tenant))
		s.Audit.record(ctx, domain.ActionSignIn, domain.StatusFailed, userID, tenant, meta, reason)
		return SignInResult{}, err
	}

	// 1. Required fields
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		fields := map[string]string{}
		if strings.TrimSpace(in.Email) == "" {
			fields["email"] = "is required"
		}
		if in.Password == "" {
			fields["password"] = "is required"
		}
		return fail("", reasonMissingCredentials, &ValidationError{Fields: fields})
	}

	// 2. Password
	user, err := s.Users.FindByEmail(ctx, in.Email)
	if errors.Is(err, ErrUserNotFound) {
		return fail("", reasonUserNotFound, ErrInvalidCredentials)
	}
	if err != nil {
		log.Error("failed to load user for sign-in", slog.Any("error", err))
		return SignInResult{}, err
	}
	if user.PasswordHash == "" {
		return fail(user.ID, reasonNoPassword, ErrPasswordNotSet)
	}
	if !s.Credentials.Verify(in.Password, user.PasswordHash) {
		return fail(user.ID, reasonInvalidPassword, ErrInvalidCredentials)
	}

	// 3. Account state and tenant access
	if !user.IsActive {
		return fail(user.ID, reasonUserInactive, ErrUserInactive)
	}
	if !user.IsInvitationAccepted {
		return fail(user.ID, reasonNotAccepted, ErrInvitationNotAccepted)
	}
	if tenant != "" {
		ok, err := s.Access.HasAccess(ctx, user.ID, tenant)
		if err != nil {
			return SignInResult{}, err
		}
		if !ok {
			return fail(user.ID, reasonNoTenantAccess, ErrNoTenantAccess)
		}
	}

	// 4. Mint the session
	if err := s.Users.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Warn("failed to update last login", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	token, err := s.mint(user, tenant)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return SignInResult{}, err
	}

	accessible, err := s.Access.AccessibleTenants(ctx, user.ID)
	if err != nil {
		return SignInResult{}, err
	}

	s.Audit.record(ctx, domain.ActionSignIn, domain.StatusSuccess, user.ID, tenant, meta, "")
	log.Info("user signed in", slog.String("user_id", user.ID), slog.String("tenant", tenant))

	return SignInResult{
		Token:             token,
		User:              user,
		AccessibleTenants: accessible,
	}, nil
}

func (s *SessionService) mint(user domain.User, tenant string) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	var scopes []string
	if user.Role.IsAdmin() {
		scopes = []string{ScopeAdminRead, ScopeAdminWrite}
	}

	claims := jwtx.NewSessionClaims(jwtx.SessionSubject{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     string(user.Role),
		Tenant:   tenant,
		Scopes:   scopes,
	}, ttl, s.Issuer, s.Clock.Now())

	return s.Signer.Sign(claims)
}

type Session struct {
	User              domain.User
	Claims            jwtx.Claims
	AccessibleTenants []string
}

// Verify validates a session token and re-checks the state it was minted
// from: the user must still be active and, for a tenant session, still hold
// a live grant for that tenant.
func (s *SessionService) Verify(ctx context.Context, token string) (Session, error) {
	log := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		log.Debug("session token rejected", slog.Any("error", err))
		return Session{}, ErrInvalidSession
	}
	return s.Resume(ctx, claims)
}

// Resume re-checks already verified claims against the stored user and the
// tenant grant the session was opened for.
func (s *SessionService) Resume(ctx context.Context, claims jwtx.Claims) (Session, error) {
	user, err := s.Users.FindByID(ctx, claims.Subject)
	if errors.Is(err, ErrUserNotFound) {
		return Session{}, ErrInvalidSession
	}
	if err != nil {
		return Session{}, err
	}
	if !user.IsActive {
		return Session{}, ErrUserInactive
	}

	if claims.Tenant != "" {
		ok, err := s.Access.HasAccess(ctx, user.ID, claims.Tenant)
		if err != nil {
			return Session{}, err
		}
		if !ok {
			return Session{}, ErrNoTenantAccess
		}
	}

	accessible, err := s.Access.AccessibleTenants(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}

	return Session{User: user, Claims: claims, AccessibleTenants: accessible}, nil
}
