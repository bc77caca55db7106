package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seedUser(t, s, "u1", "alice@example.com")

	t.Run("duplicate email is rejected", func(t *testing.T) {
		now := time.Now()
		err := s.Users().CreateUser(ctx, domain.User{
			ID: "u2", Email: "alice@example.com", IsActive: true, CreatedAt: now, UpdatedAt: now,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookups", func(t *testing.T) {
		u, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "u1", u.ID)
		require.Equal(t, domain.RoleUser, u.Role)
		require.False(t, u.IsInvitationAccepted)

		exists, err := s.Users().UsernameExists(ctx, "u1")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = s.Users().UsernameExists(ctx, "nobody")
		require.NoError(t, err)
		require.False(t, exists)

		_, err = s.Users().GetUserByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("username is fixed after first acceptance", func(t *testing.T) {
		stamp := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
		username, err := s.Users().MarkInvitationAccepted(ctx, "u1", "user_aaaa1111", "hash-1", stamp)
		require.NoError(t, err)
		require.Equal(t, "user_aaaa1111", username)

		username, err = s.Users().MarkInvitationAccepted(ctx, "u1", "user_bbbb2222", "hash-2", stamp)
		require.NoError(t, err)
		require.Equal(t, "user_aaaa1111", username)

		u, err := s.Users().GetUserByID(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, "hash-2", u.PasswordHash)
		require.True(t, u.IsInvitationAccepted)
		require.True(t, stamp.Equal(u.UpdatedAt))

		_, err = s.Users().MarkInvitationAccepted(ctx, "missing", "x", "y", stamp)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("oauth links", func(t *testing.T) {
		stamp := time.Date(2025, 2, 2, 9, 30, 0, 0, time.UTC)
		require.NoError(t, s.Users().LinkOAuthProvider(ctx, "u1", domain.OAuthGitHub, "gh-42", stamp))

		u, err := s.Users().GetUserByID(ctx, "u1")
		require.NoError(t, err)
		require.True(t, stamp.Equal(u.UpdatedAt))
		require.Equal(t, "gh-42", u.OAuthLinks[domain.OAuthGitHub])
		require.NotContains(t, u.OAuthLinks, domain.OAuthGoogle)

		seedUser(t, s, "u3", "bob@example.com")
		err = s.Users().LinkOAuthProvider(ctx, "u3", domain.OAuthGitHub, "gh-42", stamp)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("last login and deactivation", func(t *testing.T) {
		at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, s.Users().UpdateLastLogin(ctx, "u1", at))
		require.NoError(t, s.Users().DeactivateUser(ctx, "u1", at))

		u, err := s.Users().GetUserByID(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, u.LastLogin)
		require.True(t, at.Equal(*u.LastLogin))
		require.False(t, u.IsActive)

		n, err := s.Users().CountUsers(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})
}
