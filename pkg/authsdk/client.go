package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the tenant access service. It provides the
// public operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignIn authenticates with email and password. A non-empty tenantID also
// requires a live grant for that tenant.
func (c *SDKClient) SignIn(ctx context.Context, email, password, tenantID string) (*Session, error) {
	var resp SignInResponse
	err := c.call(ctx, http.MethodPost, "/v1/auth/signin", SignInRequest{
		Email:    email,
		Password: password,
		TenantID: tenantID,
	}, "", nil, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return newSession(c, &resp), nil
}

// NewSessionFromToken wraps a session token obtained elsewhere.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// AcceptInvitation redeems an invitation token and returns the generated
// credentials. It succeeds at most once per token.
func (c *SDKClient) AcceptInvitation(ctx context.Context, token string) (*AcceptInvitationResponse, error) {
	var resp AcceptInvitationResponse
	err := c.call(ctx, http.MethodPost, "/v1/invitations/accept",
		AcceptInvitationRequest{Token: token}, "", nil, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Bootstrap performs the one-time setup using the configured bootstrap token.
func (c *SDKClient) Bootstrap(ctx context.Context, bootstrapToken string, req BootstrapRequest) (*BootstrapResponse, error) {
	var resp BootstrapResponse
	err := c.call(ctx, http.MethodPost, "/v1/bootstrap", req, "",
		map[string]string{"X-Bootstrap-Token": bootstrapToken}, &resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
