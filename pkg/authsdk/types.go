package authsdk

import "time"

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the error envelope every endpoint returns.
type ErrorResponse struct {
	// Error is a machine-readable code (e.g., "invalid_request", "not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`

	// Details contains field-specific validation errors (field name: message)
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Schema   string `json:"schema"`
	Signer   string `json:"signer"`
}

// ============================================================================
// Invitations
// ============================================================================

// IssueInvitationRequest is the body of POST /v1/invitations. ExpiryDays
// defaults to 30 when omitted.
type IssueInvitationRequest struct {
	Email        string   `json:"email"`
	Tenants      []string `json:"tenants"`
	ExpiryDays   *int     `json:"expiryDays,omitempty"`
	ExpiryMonths int      `json:"expiryMonths,omitempty"`
	ExpiryYears  int      `json:"expiryYears,omitempty"`
}

type IssuedInvitation struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Tenants   []string  `json:"tenants"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type IssueInvitationResponse struct {
	Message    string           `json:"message"`
	Invitation IssuedInvitation `json:"invitation"`
}

// Invitation is the admin view of an invitation. The token is never exposed.
type Invitation struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	UserID        string     `json:"userId"`
	Tenants       []string   `json:"tenants"`
	ExpiresAt     time.Time  `json:"expiresAt"`
	AcceptedAt    *time.Time `json:"acceptedAt,omitempty"`
	IsUsed        bool       `json:"isUsed"`
	RevokedAt     *time.Time `json:"revokedAt,omitempty"`
	RevokedReason string     `json:"revokedReason,omitempty"`
	CreatedBy     string     `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// ListInvitationsParams are the query filters of GET /v1/invitations.
type ListInvitationsParams struct {
	Email     string
	TenantID  string
	IsUsed    *bool
	IsRevoked *bool
	Skip      int
	Limit     int
}

type ListInvitationsResponse struct {
	Invitations []Invitation `json:"invitations"`
	Pagination  Pagination   `json:"pagination"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

// AcceptInvitationResponse carries the generated credentials. The password
// is only ever returned here.
type AcceptInvitationResponse struct {
	Message  string `json:"message"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ============================================================================
// Access
// ============================================================================

type RevokeAccessRequest struct {
	UserID  string   `json:"userId"`
	Tenants []string `json:"tenants"`
	Reason  string   `json:"reason,omitempty"`
}

type RevokeAccessResponse struct {
	Message      string    `json:"message"`
	RevokedCount int       `json:"revokedCount"`
	RevokedAt    time.Time `json:"revokedAt"`
}

type ExtendAccessRequest struct {
	InvitationID string `json:"invitationId"`
	ExpiryDays   int    `json:"expiryDays,omitempty"`
	ExpiryMonths int    `json:"expiryMonths,omitempty"`
	ExpiryYears  int    `json:"expiryYears,omitempty"`
}

type ExtendAccessResponse struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AccessLog struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	TenantID     string    `json:"tenantId"`
	Action       string    `json:"action"`
	Status       string    `json:"status"`
	IPAddress    string    `json:"ipAddress"`
	UserAgent    string    `json:"userAgent"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ListAccessLogsParams are the query filters of GET /v1/access-logs.
type ListAccessLogsParams struct {
	UserID    string
	TenantID  string
	Action    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Skip      int
	Limit     int
}

type ListAccessLogsResponse struct {
	Logs       []AccessLog `json:"logs"`
	Pagination Pagination  `json:"pagination"`
}

// ============================================================================
// Tenants
// ============================================================================

type Tenant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Domain      string    `json:"domain,omitempty"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateTenantRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Domain      string `json:"domain,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateTenantRequest patches a tenant. Nil fields are left untouched.
type UpdateTenantRequest struct {
	Name        *string `json:"name,omitempty"`
	Domain      *string `json:"domain,omitempty"`
	Description *string `json:"description,omitempty"`
}

type TenantResponse struct {
	Tenant Tenant `json:"tenant"`
}

type ListTenantsResponse struct {
	Tenants []Tenant `json:"tenants"`
}

// ============================================================================
// Sign-in and sessions
// ============================================================================

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenantId,omitempty"`
}

// SignInUser is the public profile returned on sign-in.
type SignInUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Image    string `json:"image"`
}

type SignInResponse struct {
	Success           bool       `json:"success"`
	Token             string     `json:"token"`
	User              SignInUser `json:"user"`
	AccessibleTenants []string   `json:"accessibleTenants"`
}

// User is the full user record without its password hash.
type User struct {
	ID                   string            `json:"id"`
	Email                string            `json:"email"`
	Username             string            `json:"username"`
	Name                 string            `json:"name"`
	Image                string            `json:"image,omitempty"`
	Role                 string            `json:"role"`
	IsActive             bool              `json:"isActive"`
	IsInvitationAccepted bool              `json:"isInvitationAccepted"`
	LastLogin            *time.Time        `json:"lastLogin,omitempty"`
	OAuth                map[string]string `json:"oauth,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

type SessionResponse struct {
	Valid             bool     `json:"valid"`
	User              User     `json:"user"`
	Tenant            string   `json:"tenant,omitempty"`
	Scopes            []string `json:"scopes,omitempty"`
	ExpiresAt         int64    `json:"expiresAt"`
	AccessibleTenants []string `json:"accessibleTenants"`
}

// ============================================================================
// Users
// ============================================================================

type LinkOAuthRequest struct {
	Email      string `json:"email"`
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
}

type UserResponse struct {
	User User `json:"user"`
}

type UserCountResponse struct {
	Count int `json:"count"`
}

// ============================================================================
// Bootstrap
// ============================================================================

type BootstrapTenant struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Domain      string `json:"domain,omitempty"`
	Description string `json:"description,omitempty"`
}

// BootstrapRequest is the body of POST /v1/bootstrap. Tenants defaults to
// "myapp" and "dashboard" when empty.
type BootstrapRequest struct {
	AdminEmail    string            `json:"adminEmail"`
	AdminName     string            `json:"adminName,omitempty"`
	AdminPassword string            `json:"adminPassword"`
	Tenants       []BootstrapTenant `json:"tenants,omitempty"`
}

type BootstrapResponse struct {
	Message string   `json:"message"`
	AdminID string   `json:"adminId"`
	Tenants []Tenant `json:"tenants"`
}
