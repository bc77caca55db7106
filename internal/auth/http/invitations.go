package http

import (
	"errors"
	"net/http"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/authsdk"
	"github.com/akashm011/Auth/pkg/httpx"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleIssue godoc
//
//	@Summary		Issue Invitation
//	@Description	Invite a user to one or more tenants. The acceptance token is delivered to the invitee by email and never returned. Admin only.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.IssueInvitationRequest	true	"Invitation request"
//	@Success		201		{object}	authsdk.IssueInvitationResponse	"message, invitation"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description, details"
//	@Failure		401		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.IssueInvitationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inv, err := h.InvitationService.Issue(ctx, service.IssueInvitationInput{
		Email:        req.Email,
		Tenants:      req.Tenants,
		ExpiryDays:   req.ExpiryDays,
		ExpiryMonths: req.ExpiryMonths,
		ExpiryYears:  req.ExpiryYears,
	}, httpx.UserIDFromContext(ctx), requestMeta(r))
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			badRequest(w, "One or more tenants are unknown or inactive")
			return
		}
		writeServiceError(w, r, err, "failed to send invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.IssueInvitationResponse{
		Message: "Invitation sent successfully",
		Invitation: authsdk.IssuedInvitation{
			ID:        inv.ID,
			Email:     inv.Email,
			Tenants:   nonNil(inv.Tenants),
			ExpiresAt: inv.ExpiresAt,
		},
	})
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	List invitations newest first. Revoked invitations are hidden unless isRevoked=true. Admin only.
//	@Tags			Invitations
//	@Produce		json
//	@Param			email		query		string	false	"Case-insensitive email substring"
//	@Param			tenantId	query		string	false	"Tenant slug"
//	@Param			isUsed		query		bool	false	"Accepted invitations only (true) or pending only (false)"
//	@Param			isRevoked	query		bool	false	"Revoked invitations only"
//	@Param			skip		query		int		false	"Offset"
//	@Param			limit		query		int		false	"Page size (default 20, max 100)"
//	@Success		200			{object}	authsdk.ListInvitationsResponse	"invitations, pagination"
//	@Failure		400			{object}	authsdk.ErrorResponse			"error, error_description, details"
//	@Failure		401			{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		403			{object}	authsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	qr := newQueryReader(r.URL.Query())
	query := service.InvitationQuery{
		Filter: domain.InvitationFilter{
			Email:     qr.String("email"),
			Tenant:    qr.String("tenantId"),
			IsUsed:    qr.Bool("isUsed"),
			IsRevoked: qr.Bool("isRevoked"),
		},
		Skip:  qr.Int("skip"),
		Limit: qr.Int("limit"),
	}
	if err := qr.Err(); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	page, err := h.InvitationService.List(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err, "failed to list invitations")
		return
	}

	invitations := make([]authsdk.Invitation, 0, len(page.Invitations))
	for _, inv := range page.Invitations {
		invitations = append(invitations, toInvitationDTO(inv))
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ListInvitationsResponse{
		Invitations: invitations,
		Pagination:  toPaginationDTO(page.Pagination),
	})
}

// HandleAccept godoc
//
//	@Summary		Accept Invitation
//	@Description	Redeem an invitation token. Succeeds at most once per token and returns freshly generated credentials, which are also emailed to the invitee.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.AcceptInvitationRequest		true	"Invitation token"
//	@Success		200		{object}	authsdk.AcceptInvitationResponse	"message, email, username, password"
//	@Failure		400		{object}	authsdk.ErrorResponse				"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse				"error, error_description"
//	@Router			/v1/invitations/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req authsdk.AcceptInvitationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Token == "" {
		badRequest(w, "Invitation token is required")
		return
	}

	creds, err := h.InvitationService.Accept(r.Context(), req.Token, requestMeta(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to accept invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AcceptInvitationResponse{
		Message:  "Invitation accepted successfully",
		Email:    creds.Email,
		Username: creds.Username,
		Password: creds.Password,
	})
}
