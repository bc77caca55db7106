package http

import (
	"errors"
	"net/http"

	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/authsdk"
	"github.com/akashm011/Auth/pkg/httpx"
)

type SignInHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Sign In
//	@Description	Authenticate with email and password. When tenantId is set the user must hold a live grant for that tenant. Returns a signed session token.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignInRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.SignInResponse	"success, token, user, accessibleTenants"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description, details"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/signin [post].
func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.SessionService.SignIn(r.Context(), service.SignInInput{
		Email:    req.Email,
		Password: req.Password,
		TenantID: req.TenantID,
	}, requestMeta(r))
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            authsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Email and password are required",
				Details:          verr.Fields,
			})
			return
		}
		writeServiceError(w, r, err, "failed to sign in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SignInResponse{
		Success: true,
		Token:   res.Token,
		User: authsdk.SignInUser{
			ID:       res.User.ID,
			Email:    res.User.Email,
			Username: res.User.Username,
			Name:     res.User.Name,
			Image:    res.User.Image,
		},
		AccessibleTenants: nonNil(res.AccessibleTenants),
	})
}

type SessionHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Verify Session
//	@Description	Validate a session token and re-check the user behind it: the user must still be active and, for a tenant session, still hold a live grant.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionResponse	"valid, user, tenant, scopes, expiresAt, accessibleTenants"
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/auth/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, ok := httpx.BearerToken(r)
	if !ok {
		authsdk.NewAPIError(http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken,
			"Missing or invalid authorization header").WriteError(w)
		return
	}

	sess, err := h.SessionService.Verify(r.Context(), raw)
	if err != nil {
		if errors.Is(err, service.ErrUserInactive) {
			notFound(w, "User not found or inactive")
			return
		}
		writeServiceError(w, r, err, "failed to verify session")
		return
	}

	var expiresAt int64
	if sess.Claims.ExpiresAt != nil {
		expiresAt = sess.Claims.ExpiresAt.Unix()
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SessionResponse{
		Valid:             true,
		User:              toUserDTO(sess.User),
		Tenant:            sess.Claims.Tenant,
		Scopes:            sess.Claims.Scopes,
		ExpiresAt:         expiresAt,
		AccessibleTenants: nonNil(sess.AccessibleTenants),
	})
}
