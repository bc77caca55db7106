package http

import (
	"net/http"

	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/authsdk"
	"github.com/akashm011/Auth/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleCount godoc
//
//	@Summary		Count Users
//	@Description	Total number of registered users. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	authsdk.UserCountResponse	"count"
//	@Failure		401	{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	authsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/users/count [get].
func (h *UsersHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.UserService.Count(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to count users")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.UserCountResponse{Count: count})
}

// HandleDeactivate godoc
//
//	@Summary		Deactivate User
//	@Description	Mark a user inactive. Inactive users cannot sign in and their sessions stop verifying. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string					true	"User id"
//	@Success		200	{object}	authsdk.UserResponse	"user"
//	@Failure		404	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/deactivate [post].
func (h *UsersHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.UserService.Deactivate(ctx, id); err != nil {
		writeServiceError(w, r, err, "failed to deactivate user")
		return
	}

	user, err := h.UserService.FindByID(ctx, id)
	if err != nil {
		writeServiceError(w, r, err, "failed to load user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{User: toUserDTO(user)})
}

// HandleLinkOAuth godoc
//
//	@Summary		Link OAuth Identity
//	@Description	Attach an external provider id to the user registered for the email. Called by the upstream OAuth gateway. Admin only.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LinkOAuthRequest	true	"Provider identity"
//	@Success		200		{object}	authsdk.UserResponse		"user"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description, details"
//	@Failure		404		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/auth/oauth/link [post].
func (h *UsersHandler) HandleLinkOAuth(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LinkOAuthRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.UserService.LinkOAuthByEmail(r.Context(), service.LinkOAuthInput{
		Email:      req.Email,
		Provider:   req.Provider,
		ProviderID: req.ProviderID,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to link oauth provider")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{User: toUserDTO(user)})
}
