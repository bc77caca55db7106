package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}

	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:                   u.ID,
		Email:                u.Email,
		Username:             mapStringNull(u.Username),
		PasswordHash:         mapStringNull(u.PasswordHash),
		Name:                 u.Name,
		Image:                mapStringNull(u.Image),
		Role:                 string(role),
		IsActive:             u.IsActive,
		IsInvitationAccepted: u.IsInvitationAccepted,
		CreatedAt:            toMillis(u.CreatedAt),
		UpdatedAt:            toMillis(u.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, mapStringNull(username))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	n, err := r.q.UsernameExists(ctx, mapStringNull(username))
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return mapRowsAffected(r.q.UpdateUserLastLogin(ctx, gen.UpdateUserLastLoginParams{
		LastLogin: sql.NullInt64{Int64: toMillis(at), Valid: true},
		ID:        userID,
	}))
}

func (r *usersRepo) MarkInvitationAccepted(
	ctx context.Context,
	userID string,
	username string,
	passwordHash string,
	now time.Time,
) (string, error) {
	effective, err := r.q.MarkUserInvitationAccepted(ctx, gen.MarkUserInvitationAcceptedParams{
		Username:     mapStringNull(username),
		PasswordHash: mapStringNull(passwordHash),
		UpdatedAt:    toMillis(now),
		ID:           userID,
	})
	if err != nil {
		return "", mapConstraint(mapNotFound(err))
	}
	return mapNullString(effective), nil
}

func (r *usersRepo) LinkOAuthProvider(
	ctx context.Context,
	userID string,
	provider domain.OAuthProvider,
	providerID string,
	at time.Time,
) error {
	now := toMillis(at)

	var (
		n   int64
		err error
	)
	switch provider {
	case domain.OAuthGoogle:
		n, err = r.q.LinkUserGoogle(ctx, gen.LinkUserGoogleParams{
			GoogleID:  mapStringNull(providerID),
			UpdatedAt: now,
			ID:        userID,
		})
	case domain.OAuthGitHub:
		n, err = r.q.LinkUserGithub(ctx, gen.LinkUserGithubParams{
			GithubID:  mapStringNull(providerID),
			UpdatedAt: now,
			ID:        userID,
		})
	default:
		return fmt.Errorf("unsupported oauth provider %q", provider)
	}
	return mapRowsAffected(n, mapConstraint(err))
}

func (r *usersRepo) DeactivateUser(ctx context.Context, userID string, now time.Time) error {
	return mapRowsAffected(r.q.DeactivateUser(ctx, gen.DeactivateUserParams{
		UpdatedAt: toMillis(now),
		ID:        userID,
	}))
}

func (r *usersRepo) CountUsers(ctx context.Context) (int, error) {
	n, err := r.q.CountUsers(ctx)
	return int(n), err
}
