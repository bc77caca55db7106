package http

import (
	"net/http"
	"strings"

	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/authsdk"
	"github.com/akashm011/Auth/pkg/httpx"
	"github.com/akashm011/Auth/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the access service
//	@Description	Creates the first admin user and the initial tenants ("myapp" and "dashboard" when none are given). Only available when a bootstrap token is configured, and only while no user exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token for authorization"
//	@Param			request				body		authsdk.BootstrapRequest	true	"Bootstrap configuration"
//	@Success		201					{object}	authsdk.BootstrapResponse	"admin id and created tenants"
//	@Failure		400					{object}	authsdk.ErrorResponse		"Invalid request body or validation failed"
//	@Failure		401					{object}	authsdk.ErrorResponse		"Missing or invalid bootstrap token"
//	@Failure		404					{object}	authsdk.ErrorResponse		"Bootstrap not enabled (no token configured)"
//	@Failure		409					{object}	authsdk.ErrorResponse		"System already bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	// 1. Check if enabled
	if h.BootstrapService.Token == "" {
		notFound(w, "Bootstrap endpoint is not enabled")
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		authsdk.NewAPIError(http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized,
			"Bootstrap token is required in X-Bootstrap-Token header").WriteError(w)
		return
	}

	// 3. Parse request body
	var req authsdk.BootstrapRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tenants := make([]service.BootstrapTenantInput, len(req.Tenants))
	for i, t := range req.Tenants {
		tenants[i] = service.BootstrapTenantInput{
			Name:        strings.TrimSpace(t.Name),
			Slug:        strings.TrimSpace(t.Slug),
			Domain:      strings.TrimSpace(t.Domain),
			Description: t.Description,
		}
	}

	// 4. Perform bootstrap
	res, err := h.BootstrapService.Bootstrap(r.Context(), token, service.BootstrapInput{
		AdminEmail:    strings.TrimSpace(req.AdminEmail),
		AdminName:     strings.TrimSpace(req.AdminName),
		AdminPassword: req.AdminPassword,
		Tenants:       tenants,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to bootstrap")
		return
	}

	// 5. Respond with the created admin and tenants
	httpx.WriteJSON(w, http.StatusCreated, authsdk.BootstrapResponse{
		Message: "System bootstrapped successfully",
		AdminID: res.AdminID,
		Tenants: toTenantDTOs(res.Tenants),
	})
}
