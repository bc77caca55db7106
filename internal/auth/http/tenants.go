package http

import (
	"net/http"
	"strconv"

	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/authsdk"
	"github.com/akashm011/Auth/pkg/httpx"
)

type TenantsHandler struct {
	TenantService *service.TenantService
}

// HandleList godoc
//
//	@Summary		List Tenants
//	@Description	List tenants ordered by name. Inactive tenants are only included on request. Admin only.
//	@Tags			Tenants
//	@Produce		json
//	@Param			includeInactive	query		bool	false	"Include deactivated tenants"
//	@Success		200				{object}	authsdk.ListTenantsResponse	"tenants"
//	@Failure		401				{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	authsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tenants [get].
func (h *TenantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("includeInactive"))

	tenants, err := h.TenantService.List(r.Context(), !includeInactive)
	if err != nil {
		writeServiceError(w, r, err, "failed to list tenants")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ListTenantsResponse{Tenants: toTenantDTOs(tenants)})
}

// HandleCreate godoc
//
//	@Summary		Create Tenant
//	@Description	Register a tenant. The slug is the scope token used by invitations and cannot change. Admin only.
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.CreateTenantRequest	true	"Tenant"
//	@Success		201		{object}	authsdk.TenantResponse		"tenant"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description, details"
//	@Failure		409		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tenants [post].
func (h *TenantsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.CreateTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Slug == "" {
		badRequest(w, "name and slug are required")
		return
	}

	tenant, err := h.TenantService.Create(ctx, service.CreateTenantInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Domain:      req.Domain,
		Description: req.Description,
	}, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err, "failed to create tenant")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.TenantResponse{Tenant: toTenantDTO(tenant)})
}

// HandleUpdate godoc
//
//	@Summary		Update Tenant
//	@Description	Change a tenant's name, domain or description. Omitted fields are kept. Admin only.
//	@Tags			Tenants
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Tenant id"
//	@Param			request	body		authsdk.UpdateTenantRequest	true	"Fields to change"
//	@Success		200		{object}	authsdk.TenantResponse		"tenant"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description, details"
//	@Failure		404		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tenants/{id} [patch].
func (h *TenantsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UpdateTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tenant, err := h.TenantService.Update(r.Context(), r.PathValue("id"), service.UpdateTenantInput{
		Name:        req.Name,
		Domain:      req.Domain,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to update tenant")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TenantResponse{Tenant: toTenantDTO(tenant)})
}

// HandleDeactivate godoc
//
//	@Summary		Deactivate Tenant
//	@Description	Mark a tenant inactive. Existing grants for it stop being live; nothing is deleted. Admin only.
//	@Tags			Tenants
//	@Produce		json
//	@Param			id	path		string					true	"Tenant id"
//	@Success		200	{object}	authsdk.TenantResponse	"tenant"
//	@Failure		404	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tenants/{id} [delete].
func (h *TenantsHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.TenantService.Deactivate(ctx, id); err != nil {
		writeServiceError(w, r, err, "failed to deactivate tenant")
		return
	}

	tenant, err := h.TenantService.FindByID(ctx, id)
	if err != nil {
		writeServiceError(w, r, err, "failed to load tenant")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TenantResponse{Tenant: toTenantDTO(tenant)})
}
