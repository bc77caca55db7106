package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func TestAccessLogsRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	entries := []domain.AccessLogEntry{
		{ID: "l1", UserID: "u1", TenantID: "myapp", Action: domain.ActionInvite, Status: domain.StatusSuccess, Timestamp: base},
		{ID: "l2", UserID: "u1", TenantID: "myapp", Action: domain.ActionSignIn, Status: domain.StatusFailed, ErrorMessage: "Invalid password", Timestamp: base.Add(time.Hour)},
		{ID: "l3", UserID: "u2", TenantID: "dashboard", Action: domain.ActionRevoke, Status: domain.StatusSuccess, Timestamp: base.Add(2 * time.Hour)},
		{ID: "l4", Action: domain.ActionSignIn, Status: domain.StatusFailed, ErrorMessage: "User not found", IPAddress: "10.0.0.1", Timestamp: base.Add(3 * time.Hour)},
	}
	for _, e := range entries {
		require.NoError(t, s.AccessLogs().AppendAccessLog(ctx, e))
	}

	t.Run("newest first", func(t *testing.T) {
		list, total, err := s.AccessLogs().QueryAccessLogs(ctx, domain.AccessLogFilter{}, store.Page{Limit: 100})
		require.NoError(t, err)
		require.Equal(t, 4, total)
		require.Equal(t, "l4", list[0].ID)
		require.Equal(t, "10.0.0.1", list[0].IPAddress)
		require.Equal(t, "l1", list[3].ID)
	})

	t.Run("filters combine", func(t *testing.T) {
		list, total, err := s.AccessLogs().QueryAccessLogs(ctx, domain.AccessLogFilter{
			UserID: "u1",
			Status: domain.StatusFailed,
		}, store.Page{Limit: 100})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, "Invalid password", list[0].ErrorMessage)
	})

	t.Run("date range is inclusive", func(t *testing.T) {
		start := base.Add(time.Hour)
		end := base.Add(2 * time.Hour)
		_, total, err := s.AccessLogs().QueryAccessLogs(ctx, domain.AccessLogFilter{
			StartDate: &start,
			EndDate:   &end,
		}, store.Page{Limit: 100})
		require.NoError(t, err)
		require.Equal(t, 2, total)
	})

	t.Run("entries are append-only", func(t *testing.T) {
		_, err := s.db.ExecContext(ctx, `UPDATE access_logs SET status = 'success' WHERE id = 'l2'`)
		require.Error(t, err)

		_, err = s.db.ExecContext(ctx, `DELETE FROM access_logs`)
		require.Error(t, err)
	})
}
