package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/stretchr/testify/require"
)

// newFileStore opens an on-disk database with the DSN the service runs with,
// so the pool hands out several connections that contend for the write lock.
func newFileStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(FileDSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestFileStoreConcurrentAccept(t *testing.T) {
	const workers = 16

	ctx := context.Background()
	s := newFileStore(t)
	now := time.Now().UTC()

	seedTenant(t, s, "myapp")
	seedUser(t, s, "u1", "alice@example.com")
	seedInvitation(t, s, "inv-1", "u1", "alice@example.com", "tok-1", now.Add(time.Hour), "myapp")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		notFound int
		other    []error
	)
	start := make(chan struct{})
	for range workers {
		wg.Go(func() {
			<-start
			err := s.WithTx(ctx, func(tx store.Tx) error {
				_, err := tx.Invitations().AcceptInvitation(ctx, "tok-1", now)
				return err
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, store.ErrNotFound):
				notFound++
			default:
				other = append(other, err)
			}
		})
	}
	close(start)
	wg.Wait()

	require.Empty(t, other)
	require.Equal(t, 1, wins)
	require.Equal(t, workers-1, notFound)

	inv, err := s.Invitations().GetInvitationByID(ctx, "inv-1")
	require.NoError(t, err)
	require.True(t, inv.IsUsed)
}

func TestFileStoreConcurrentPartialRevoke(t *testing.T) {
	const scopes = 8

	ctx := context.Background()
	s := newFileStore(t)
	now := time.Now().UTC()

	slugs := make([]string, 0, scopes)
	for i := range scopes {
		slug := fmt.Sprintf("app%d", i)
		seedTenant(t, s, slug)
		slugs = append(slugs, slug)
	}
	seedUser(t, s, "u1", "alice@example.com")
	seedInvitation(t, s, "inv-1", "u1", "alice@example.com", "tok-1", now.Add(time.Hour), slugs...)

	type outcome struct {
		revoked []string
		full    bool
		err     error
	}
	results := make([]outcome, scopes)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, slug := range slugs {
		wg.Go(func() {
			<-start
			var res outcome
			res.err = s.WithTx(ctx, func(tx store.Tx) error {
				var err error
				res.revoked, res.full, err = tx.Invitations().RevokeScopes(ctx, "inv-1", []string{slug}, "offboarded", now)
				return err
			})
			results[i] = res
		})
	}
	close(start)
	wg.Wait()

	var (
		removed []string
		full    int
	)
	for i, res := range results {
		require.NoError(t, res.err, "revoking %s", slugs[i])
		require.Equal(t, []string{slugs[i]}, res.revoked)
		removed = append(removed, res.revoked...)
		if res.full {
			full++
		}
	}
	require.ElementsMatch(t, slugs, removed)
	require.Equal(t, 1, full, "exactly one revoke drains the invitation")

	inv, err := s.Invitations().GetInvitationByID(ctx, "inv-1")
	require.NoError(t, err)
	require.True(t, inv.Revoked())
	require.Equal(t, "offboarded", inv.RevokedReason)
}
