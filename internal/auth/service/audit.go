package service

import (
	"context"
	"log/slog"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/pkg/idx"
	"github.com/akashm011/Auth/pkg/slogx"
)

const (
	defaultAccessLogLimit = 100
	maxAccessLogLimit     = 500
)

// AuditService writes and reads the append-only access log.
type AuditService struct {
	Store store.Store
	Clock Clock
}

// Append writes e, filling in the id and timestamp when unset, and returns the
// entry's id. Callers run it after their own transaction committed: a failed
// audit write is logged, never fails the operation that produced it and
// yields an empty id.
func (s *AuditService) Append(ctx context.Context, e domain.AccessLogEntry) string {
	if e.ID == "" {
		e.ID = idx.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.Clock.Now()
	}

	if err := s.Store.AccessLogs().AppendAccessLog(ctx, e); err != nil {
		slogx.FromContext(ctx).Error("failed to append access log",
			slog.String("action", string(e.Action)),
			slog.String("status", string(e.Status)),
			slog.String("user_id", e.UserID),
			slog.String("tenant_id", e.TenantID),
			slog.Any("error", err),
		)
		return ""
	}
	return e.ID
}

// record is the common shape of Append used by the other services.
func (s *AuditService) record(
	ctx context.Context,
	action domain.AccessAction,
	status domain.AccessStatus,
	userID, tenant string,
	meta domain.RequestMeta,
	errMsg string,
) {
	if s == nil {
		return
	}
	s.Append(ctx, domain.AccessLogEntry{
		UserID:       userID,
		TenantID:     tenant,
		Action:       action,
		Status:       status,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		ErrorMessage: errMsg,
	})
}

type AccessLogQuery struct {
	Filter domain.AccessLogFilter
	Skip   int
	Limit  int
}

type AccessLogPage struct {
	Logs       []domain.AccessLogEntry
	Pagination Pagination
}

// Query returns entries newest first. Limit defaults to 100 and is capped
// at 500.
func (s *AuditService) Query(ctx context.Context, q AccessLogQuery) (AccessLogPage, error) {
	if q.Skip < 0 {
		return AccessLogPage{}, fieldError("skip", "must be greater than or equal to 0")
	}
	if q.Filter.StartDate != nil && q.Filter.EndDate != nil && q.Filter.EndDate.Before(*q.Filter.StartDate) {
		return AccessLogPage{}, fieldError("endDate", "must not be before startDate")
	}
	if q.Filter.Action != "" && !validAction(q.Filter.Action) {
		return AccessLogPage{}, fieldError("action", "must be one of: invite accept-invitation signin revoke extend-access")
	}
	if q.Filter.Status != "" && q.Filter.Status != domain.StatusSuccess && q.Filter.Status != domain.StatusFailed {
		return AccessLogPage{}, fieldError("status", "must be one of: success failed")
	}

	limit := clampLimit(q.Limit, defaultAccessLogLimit, maxAccessLogLimit)

	logs, total, err := s.Store.AccessLogs().QueryAccessLogs(ctx, q.Filter, store.Page{Skip: q.Skip, Limit: limit})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to query access logs", slog.Any("error", err))
		return AccessLogPage{}, err
	}

	return AccessLogPage{
		Logs:       logs,
		Pagination: newPagination(total, q.Skip, limit),
	}, nil
}

func validAction(a domain.AccessAction) bool {
	switch a {
	case domain.ActionInvite,
		domain.ActionAcceptInvitation,
		domain.ActionSignIn,
		domain.ActionRevoke,
		domain.ActionExtendAccess:
		return true
	}
	return false
}
