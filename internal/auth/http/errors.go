package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/authsdk"
	"github.com/akashm011/Auth/pkg/httpx"
	"github.com/akashm011/Auth/pkg/slogx"
)

// writeServiceError maps a service error onto the shared error envelope.
// Unrecognised errors are logged and reported as server_error with fallback
// as the description.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid request parameters",
			Details:          verr.Fields,
		})
	case errors.Is(err, service.ErrInvalidOrExpiredInvitation):
		authsdk.ErrInvalidInvitation.WriteError(w)

	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrPasswordNotSet):
		authsdk.NewAPIError(http.StatusUnauthorized, authsdk.ErrorCodeInvalidCredentials,
			"Please use social login").WriteError(w)
	case errors.Is(err, service.ErrInvalidSession):
		authsdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrBootstrapUnauthorized):
		authsdk.NewAPIError(http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized,
			"Invalid bootstrap token").WriteError(w)
	case errors.Is(err, service.ErrUnauthenticated):
		authsdk.NewAPIError(http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized,
			"Authentication required").WriteError(w)

	case errors.Is(err, service.ErrInvitationNotAccepted):
		authsdk.NewAPIError(http.StatusForbidden, authsdk.ErrorCodeAccessDenied,
			"You must accept the invitation first").WriteError(w)
	case errors.Is(err, service.ErrNoTenantAccess):
		authsdk.NewAPIError(http.StatusForbidden, authsdk.ErrorCodeAccessDenied,
			"You do not have access to this application or your access has expired").WriteError(w)
	case errors.Is(err, service.ErrUserInactive):
		authsdk.NewAPIError(http.StatusForbidden, authsdk.ErrorCodeAccessDenied,
			"User is inactive").WriteError(w)
	case errors.Is(err, service.ErrUnauthorized):
		authsdk.ErrUnauthorized.WriteError(w)

	case errors.Is(err, service.ErrTenantNotFound):
		notFound(w, "Tenant not found")
	case errors.Is(err, service.ErrUserNotFound):
		notFound(w, "User not found")
	case errors.Is(err, service.ErrInvitationNotFound):
		notFound(w, "Invitation not found or could not be updated")
	case errors.Is(err, service.ErrNotFound):
		notFound(w, "Not found")

	case errors.Is(err, service.ErrTenantSlugTaken):
		conflict(w, "Tenant with this slug already exists")
	case errors.Is(err, service.ErrOAuthLinkTaken):
		conflict(w, "Provider account is already linked to another user")
	case errors.Is(err, service.ErrBootstrapAlready):
		conflict(w, "System has already been bootstrapped")
	case errors.Is(err, service.ErrConflict):
		conflict(w, "Conflict")

	default:
		slogx.FromContext(r.Context()).Error(fallback, slog.Any("error", err))
		authsdk.NewAPIError(http.StatusInternalServerError, authsdk.ErrorCodeServerError,
			"Internal server error").WriteError(w)
	}
}

func notFound(w http.ResponseWriter, desc string) {
	authsdk.NewAPIError(http.StatusNotFound, authsdk.ErrorCodeNotFound, desc).WriteError(w)
}

func conflict(w http.ResponseWriter, desc string) {
	authsdk.NewAPIError(http.StatusConflict, authsdk.ErrorCodeConflict, desc).WriteError(w)
}

func badRequest(w http.ResponseWriter, desc string) {
	authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, desc).WriteError(w)
}

// decodeBody parses a JSON body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		badRequest(w, "Invalid JSON body")
		return false
	}
	return true
}

// requestMeta captures the client identity recorded in the access log.
func requestMeta(r *http.Request) domain.RequestMeta {
	return domain.RequestMeta{
		IPAddress: httpx.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}
