package sqlite

import (
	"context"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/internal/auth/store/drivers/sqlite/gen"
)

type accessLogsRepo struct {
	q *gen.Queries
}

func (r *accessLogsRepo) AppendAccessLog(ctx context.Context, e domain.AccessLogEntry) error {
	return r.q.CreateAccessLog(ctx, gen.CreateAccessLogParams{
		ID:           e.ID,
		UserID:       mapStringNull(e.UserID),
		TenantID:     e.TenantID,
		Action:       string(e.Action),
		Status:       string(e.Status),
		IpAddress:    mapStringNull(e.IPAddress),
		UserAgent:    mapStringNull(e.UserAgent),
		ErrorMessage: mapStringNull(e.ErrorMessage),
		Timestamp:    toMillis(e.Timestamp),
	})
}

func (r *accessLogsRepo) QueryAccessLogs(
	ctx context.Context,
	f domain.AccessLogFilter,
	p store.Page,
) ([]domain.AccessLogEntry, int, error) {
	count := gen.CountAccessLogsParams{
		UserID:    f.UserID,
		TenantID:  f.TenantID,
		Action:    string(f.Action),
		Status:    string(f.Status),
		StartDate: mapOptionalMillis(f.StartDate),
		EndDate:   mapOptionalMillis(f.EndDate),
	}

	total, err := r.q.CountAccessLogs(ctx, count)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.q.ListAccessLogs(ctx, gen.ListAccessLogsParams{
		UserID:    count.UserID,
		TenantID:  count.TenantID,
		Action:    count.Action,
		Status:    count.Status,
		StartDate: count.StartDate,
		EndDate:   count.EndDate,
		Limit:     int64(p.Limit),
		Offset:    int64(p.Skip),
	})
	if err != nil {
		return nil, 0, err
	}

	entries := make([]domain.AccessLogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, mapAccessLog(row))
	}
	return entries, int(total), nil
}
