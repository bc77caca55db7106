package domain

import "time"

// InvitationNotice tells an invitee how to accept. Token is the raw opaque
// token and only ever travels inside this notice.
type InvitationNotice struct {
	Email       string
	Token       string
	TenantNames []string
	ExpiresAt   time.Time
}

// CredentialsNotice hands out the credentials generated on acceptance.
type CredentialsNotice struct {
	Email     string
	Username  string
	Password  string
	Tenants   []string
	ExpiresAt time.Time
}
