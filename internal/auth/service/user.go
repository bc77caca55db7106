package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/pkg/idx"
	"github.com/akashm011/Auth/pkg/slogx"
)

// maxUsernameProbes bounds the name, name1, name2, ... search.
const maxUsernameProbes = 1000

type UserService struct {
	Store store.Store
	Clock Clock
}

// Create returns the user registered for email, creating one when none
// exists. A new user gets a provisional username derived from suggested, or
// from the email local part, made unique by probing numeric suffixes.
func (s *UserService) Create(ctx context.Context, email, suggested, name string) (domain.User, error) {
	user, _, err := s.resolve(ctx, s.Store, email, suggested, name)
	return user, err
}

// resolve is Create against st, which may be a transaction. created reports
// whether a new row was written.
func (s *UserService) resolve(
	ctx context.Context,
	st store.Store,
	email, suggested, name string,
) (user domain.User, created bool, err error) {
	log := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	// 1. Reuse an existing user for this email
	user, err = st.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up user by email", slog.Any("error", err))
		return domain.User{}, false, err
	}

	local, _, _ := strings.Cut(email, "@")
	base := sanitizeUsername(suggested)
	if base == "" {
		base = sanitizeUsername(local)
	}
	if base == "" {
		base = "user"
	}
	if name == "" {
		name = local
	}

	// 2. Probe base, base1, base2, ... until a free username inserts
	now := s.Clock.Now()
	for i := range maxUsernameProbes {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}

		taken, err := st.Users().UsernameExists(ctx, candidate)
		if err != nil {
			return domain.User{}, false, err
		}
		if taken {
			continue
		}

		user = domain.User{
			ID:        idx.New().String(),
			Email:     email,
			Username:  candidate,
			Name:      name,
			Role:      domain.RoleUser,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = st.Users().CreateUser(ctx, user)
		if err == nil {
			log.Info("user created",
				slog.String("user_id", user.ID),
				slog.String("username", user.Username),
			)
			return user, true, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			log.Error("failed to create user", slog.Any("error", err))
			return domain.User{}, false, err
		}

		// Lost a race: either the email was registered meanwhile or the
		// username was taken between the probe and the insert.
		if existing, err := st.Users().GetUserByEmail(ctx, email); err == nil {
			return existing, false, nil
		}
	}

	return domain.User{}, false, fmt.Errorf("no free username for base %q after %d probes", base, maxUsernameProbes)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	return u, mapUserErr(err)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	return u, mapUserErr(err)
}

func (s *UserService) FindByID(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	return u, mapUserErr(err)
}

func (s *UserService) UpdateLastLogin(ctx context.Context, userID string) error {
	return mapUserErr(s.Store.Users().UpdateLastLogin(ctx, userID, s.Clock.Now()))
}

// MarkInvitationAccepted stores the password hash and accepted flag, and the
// username when the user has none fixed yet. It returns the username in
// effect afterwards.
func (s *UserService) MarkInvitationAccepted(ctx context.Context, userID, username, passwordHash string) (string, error) {
	return markAccepted(ctx, s.Store, userID, username, passwordHash, s.Clock.Now())
}

func markAccepted(
	ctx context.Context,
	st store.Store,
	userID, username, passwordHash string,
	now time.Time,
) (string, error) {
	effective, err := st.Users().MarkInvitationAccepted(ctx, userID, username, passwordHash, now)
	if err != nil {
		return "", mapUserErr(err)
	}
	return effective, nil
}

func (s *UserService) LinkOAuthProvider(
	ctx context.Context,
	userID string,
	provider domain.OAuthProvider,
	providerID string,
) error {
	log := slogx.FromContext(ctx)

	if providerID == "" {
		return fieldError("providerId", "is required")
	}

	err := s.Store.Users().LinkOAuthProvider(ctx, userID, provider, providerID, s.Clock.Now())
	switch {
	case err == nil:
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrOAuthLinkTaken
	case errors.Is(err, store.ErrNotFound):
		return ErrUserNotFound
	default:
		log.Error("failed to link oauth provider", slog.Any("error", err))
		return err
	}

	log.Info("oauth provider linked",
		slog.String("user_id", userID),
		slog.String("provider", string(provider)),
	)
	return nil
}

type LinkOAuthInput struct {
	Email      string `json:"email" validate:"required,email"`
	Provider   string `json:"provider" validate:"required,oneof=google github"`
	ProviderID string `json:"providerId" validate:"required,max=255"`
}

// LinkOAuthByEmail links a provider identity to the user registered for the
// email. Only existing users can be linked; unknown emails are not created.
func (s *UserService) LinkOAuthByEmail(ctx context.Context, in LinkOAuthInput) (domain.User, error) {
	if err := validateInput(in); err != nil {
		return domain.User{}, err
	}
	provider, err := domain.ParseOAuthProvider(in.Provider)
	if err != nil {
		return domain.User{}, fieldError("provider", "must be one of: google github")
	}

	user, err := s.FindByEmail(ctx, in.Email)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.LinkOAuthProvider(ctx, user.ID, provider, in.ProviderID); err != nil {
		return domain.User{}, err
	}
	return s.FindByID(ctx, user.ID)
}

func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	if err := mapUserErr(s.Store.Users().DeactivateUser(ctx, userID, s.Clock.Now())); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user deactivated", slog.String("user_id", userID))
	return nil
}

func (s *UserService) Count(ctx context.Context) (int, error) {
	return s.Store.Users().CountUsers(ctx)
}

func mapUserErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sanitizeUsername keeps the characters usernames are allowed to contain.
func sanitizeUsername(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
