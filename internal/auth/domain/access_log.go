package domain

import "time"

type AccessAction string

const (
	ActionInvite           AccessAction = "invite"
	ActionAcceptInvitation AccessAction = "accept-invitation"
	ActionSignIn           AccessAction = "signin"
	ActionRevoke           AccessAction = "revoke"
	ActionExtendAccess     AccessAction = "extend-access"
)

type AccessStatus string

const (
	StatusSuccess AccessStatus = "success"
	StatusFailed  AccessStatus = "failed"
)

// AccessLogEntry is immutable once written.
type AccessLogEntry struct {
	ID           string
	UserID       string // Empty for anonymous attempts
	TenantID     string
	Action       AccessAction
	Status       AccessStatus
	IPAddress    string
	UserAgent    string
	ErrorMessage string
	Timestamp    time.Time
}

type AccessLogFilter struct {
	UserID    string
	TenantID  string
	Action    AccessAction
	Status    AccessStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// RequestMeta identifies the client behind an audited operation.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
