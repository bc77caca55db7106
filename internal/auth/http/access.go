package http

import (
	"net/http"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/authsdk"
	"github.com/akashm011/Auth/pkg/httpx"
)

type AccessHandler struct {
	InvitationService *service.InvitationService
	AuditService      *service.AuditService
}

// HandleRevoke godoc
//
//	@Summary		Revoke Access
//	@Description	Remove tenants from every live grant the user holds. A grant left with no tenants is revoked as a whole. Admin only.
//	@Tags			Access
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RevokeAccessRequest		true	"Revoke request"
//	@Success		200		{object}	authsdk.RevokeAccessResponse	"message, revokedCount, revokedAt"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description, details"
//	@Failure		401		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/access/revoke [post].
func (h *AccessHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RevokeAccessRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" || len(req.Tenants) == 0 {
		badRequest(w, "userId and tenants array are required")
		return
	}

	count, revokedAt, err := h.InvitationService.RevokeUserAccess(r.Context(), service.RevokeAccessInput{
		UserID:  req.UserID,
		Tenants: req.Tenants,
		Reason:  req.Reason,
	}, requestMeta(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to revoke access")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.RevokeAccessResponse{
		Message:      "Access revoked successfully",
		RevokedCount: count,
		RevokedAt:    revokedAt,
	})
}

// HandleExtend godoc
//
//	@Summary		Extend Access
//	@Description	Reset an invitation's expiry to now plus the given offset (days, then months, then years). Admin only.
//	@Tags			Access
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ExtendAccessRequest		true	"Extend request"
//	@Success		200		{object}	authsdk.ExtendAccessResponse	"message, expiresAt"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description, details"
//	@Failure		404		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/access/extend [post].
func (h *AccessHandler) HandleExtend(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ExtendAccessRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.InvitationID == "" {
		badRequest(w, "invitationId is required")
		return
	}

	expiresAt, err := h.InvitationService.Extend(r.Context(), service.ExtendAccessInput{
		InvitationID: req.InvitationID,
		ExpiryDays:   req.ExpiryDays,
		ExpiryMonths: req.ExpiryMonths,
		ExpiryYears:  req.ExpiryYears,
	}, requestMeta(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to extend access")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ExtendAccessResponse{
		Message:   "Access extended successfully",
		ExpiresAt: expiresAt,
	})
}

// HandleLogs godoc
//
//	@Summary		Access Logs
//	@Description	Query the audit log newest first. Admin only.
//	@Tags			Access
//	@Produce		json
//	@Param			userId		query		string	false	"User id"
//	@Param			tenantId	query		string	false	"Tenant slug"
//	@Param			action		query		string	false	"invite, accept-invitation, signin, revoke or extend-access"
//	@Param			status		query		string	false	"success or failed"
//	@Param			startDate	query		string	false	"Inclusive lower bound (RFC 3339 or YYYY-MM-DD)"
//	@Param			endDate		query		string	false	"Inclusive upper bound (RFC 3339 or YYYY-MM-DD)"
//	@Param			skip		query		int		false	"Offset"
//	@Param			limit		query		int		false	"Page size (default 100, max 500)"
//	@Success		200			{object}	authsdk.ListAccessLogsResponse	"logs, pagination"
//	@Failure		400			{object}	authsdk.ErrorResponse			"error, error_description, details"
//	@Security		BearerAuth
//	@Router			/v1/access-logs [get].
func (h *AccessHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	qr := newQueryReader(r.URL.Query())
	query := service.AccessLogQuery{
		Filter: domain.AccessLogFilter{
			UserID:    qr.String("userId"),
			TenantID:  qr.String("tenantId"),
			Action:    domain.AccessAction(qr.String("action")),
			Status:    domain.AccessStatus(qr.String("status")),
			StartDate: qr.Time("startDate"),
			EndDate:   qr.Time("endDate"),
		},
		Skip:  qr.Int("skip"),
		Limit: qr.Int("limit"),
	}
	if err := qr.Err(); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	page, err := h.AuditService.Query(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err, "failed to query access logs")
		return
	}

	logs := make([]authsdk.AccessLog, 0, len(page.Logs))
	for _, e := range page.Logs {
		logs = append(logs, toAccessLogDTO(e))
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ListAccessLogsResponse{
		Logs:       logs,
		Pagination: toPaginationDTO(page.Pagination),
	})
}
