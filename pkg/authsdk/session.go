package authsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Session represents an authenticated session holding a signed session
// token. Admin operations require a token carrying the admin scopes.
type Session struct {
	client *SDKClient

	mu                sync.RWMutex
	token             string
	user              SignInUser
	accessibleTenants []string
}

// newSession creates a new authenticated session from a sign-in response.
func newSession(client *SDKClient, resp *SignInResponse) *Session {
	return &Session{
		client:            client,
		token:             resp.Token,
		user:              resp.User,
		accessibleTenants: resp.AccessibleTenants,
	}
}

// Token returns the session token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the profile captured at sign-in. Empty for sessions created
// from a bare token.
func (s *Session) User() SignInUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AccessibleTenants returns the tenant slugs known from the last sign-in or
// verification.
func (s *Session) AccessibleTenants() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.accessibleTenants...)
}

func (s *Session) call(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	token := s.Token()
	if token == "" {
		return errors.New("authsdk: session has no token")
	}
	return s.client.call(ctx, method, path, body, token, nil, target, expectedStatus)
}

// ============================================================================
// Session
// ============================================================================

// Verify checks the token with the service and refreshes the cached list of
// accessible tenants.
func (s *Session) Verify(ctx context.Context) (*SessionResponse, error) {
	var resp SessionResponse
	if err := s.call(ctx, http.MethodGet, "/v1/auth/session", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.accessibleTenants = resp.AccessibleTenants
	s.mu.Unlock()

	return &resp, nil
}

// ============================================================================
// Invitations
// ============================================================================

// IssueInvitation issues an invitation for one or more tenants. The token is
// delivered to the invitee out of band and never returned here.
func (s *Session) IssueInvitation(ctx context.Context, req IssueInvitationRequest) (*IssueInvitationResponse, error) {
	var resp IssueInvitationResponse
	if err := s.call(ctx, http.MethodPost, "/v1/invitations", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListInvitations lists invitations, newest first.
func (s *Session) ListInvitations(ctx context.Context, params ListInvitationsParams) (*ListInvitationsResponse, error) {
	q := url.Values{}
	setString(q, "email", params.Email)
	setString(q, "tenantId", params.TenantID)
	setBool(q, "isUsed", params.IsUsed)
	setBool(q, "isRevoked", params.IsRevoked)
	setWindow(q, params.Skip, params.Limit)

	var resp ListInvitationsResponse
	if err := s.call(ctx, http.MethodGet, withQuery("/v1/invitations", q), nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ============================================================================
// Access
// ============================================================================

// RevokeAccess removes the user's live grants for the given tenants.
func (s *Session) RevokeAccess(ctx context.Context, req RevokeAccessRequest) (*RevokeAccessResponse, error) {
	var resp RevokeAccessResponse
	if err := s.call(ctx, http.MethodPost, "/v1/access/revoke", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExtendAccess resets an invitation's expiry relative to now.
func (s *Session) ExtendAccess(ctx context.Context, req ExtendAccessRequest) (*ExtendAccessResponse, error) {
	var resp ExtendAccessResponse
	if err := s.call(ctx, http.MethodPost, "/v1/access/extend", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAccessLogs queries the audit log, newest first.
func (s *Session) ListAccessLogs(ctx context.Context, params ListAccessLogsParams) (*ListAccessLogsResponse, error) {
	q := url.Values{}
	setString(q, "userId", params.UserID)
	setString(q, "tenantId", params.TenantID)
	setString(q, "action", params.Action)
	setString(q, "status", params.Status)
	setTime(q, "startDate", params.StartDate)
	setTime(q, "endDate", params.EndDate)
	setWindow(q, params.Skip, params.Limit)

	var resp ListAccessLogsResponse
	if err := s.call(ctx, http.MethodGet, withQuery("/v1/access-logs", q), nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ============================================================================
// Tenants
// ============================================================================

func (s *Session) ListTenants(ctx context.Context, includeInactive bool) ([]Tenant, error) {
	path := "/v1/tenants"
	if includeInactive {
		path += "?includeInactive=true"
	}

	var resp ListTenantsResponse
	if err := s.call(ctx, http.MethodGet, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Tenants, nil
}

func (s *Session) CreateTenant(ctx context.Context, req CreateTenantRequest) (*Tenant, error) {
	var resp TenantResponse
	if err := s.call(ctx, http.MethodPost, "/v1/tenants", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp.Tenant, nil
}

func (s *Session) UpdateTenant(ctx context.Context, id string, req UpdateTenantRequest) (*Tenant, error) {
	var resp TenantResponse
	if err := s.call(ctx, http.MethodPatch, "/v1/tenants/"+url.PathEscape(id), req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.Tenant, nil
}

// DeactivateTenant marks the tenant inactive. Grants for it stop being live.
func (s *Session) DeactivateTenant(ctx context.Context, id string) (*Tenant, error) {
	var resp TenantResponse
	if err := s.call(ctx, http.MethodDelete, "/v1/tenants/"+url.PathEscape(id), nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.Tenant, nil
}

// ============================================================================
// Users
// ============================================================================

func (s *Session) CountUsers(ctx context.Context) (int, error) {
	var resp UserCountResponse
	if err := s.call(ctx, http.MethodGet, "/v1/users/count", nil, &resp, http.StatusOK); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (s *Session) DeactivateUser(ctx context.Context, userID string) (*User, error) {
	var resp UserResponse
	path := "/v1/users/" + url.PathEscape(userID) + "/deactivate"
	if err := s.call(ctx, http.MethodPost, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// LinkOAuth attaches an external provider id to the user with the given email.
func (s *Session) LinkOAuth(ctx context.Context, req LinkOAuthRequest) (*User, error) {
	var resp UserResponse
	if err := s.call(ctx, http.MethodPost, "/v1/auth/oauth/link", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ============================================================================
// Query helpers
// ============================================================================

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setBool(q url.Values, key string, value *bool) {
	if value != nil {
		q.Set(key, strconv.FormatBool(*value))
	}
}

func setTime(q url.Values, key string, value *time.Time) {
	if value != nil {
		q.Set(key, value.UTC().Format(time.RFC3339))
	}
}

func setWindow(q url.Values, skip, limit int) {
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
