package domain

import "time"

// Invitation is both the invite sent to a user and, once accepted, the grant
// that carries their live tenant access.
type Invitation struct {
	ID            string
	Email         string
	UserID        string
	TokenHash     string // SHA-256 fingerprint of the opaque token, never the token itself
	Tenants       []string
	ExpiresAt     time.Time
	AcceptedAt    *time.Time
	IsUsed        bool
	RevokedAt     *time.Time
	RevokedReason string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Expired reports whether the invitation is past its expiry at now.
func (i Invitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Revoked reports whether the whole invitation has been revoked.
func (i Invitation) Revoked() bool {
	return i.RevokedAt != nil
}

// ExpiryPolicy is a calendar offset. It is applied as days, then months, then
// years; the order matters around month ends.
type ExpiryPolicy struct {
	Days   int
	Months int
	Years  int
}

// From returns t shifted by the policy.
func (p ExpiryPolicy) From(t time.Time) time.Time {
	return t.AddDate(0, 0, p.Days).AddDate(0, p.Months, 0).AddDate(p.Years, 0, 0)
}

// InvitationFilter narrows an invitation listing. Nil pointers mean "any",
// except IsRevoked which defaults to excluding revoked invitations.
type InvitationFilter struct {
	Email     string // Case-insensitive substring
	Tenant    string
	IsUsed    *bool
	IsRevoked *bool
}

// AcceptedInvitation is returned by the conditional accept step.
type AcceptedInvitation struct {
	ID      string
	Email   string
	UserID  string
	Tenants []string
}

// Credentials are handed to an invitee exactly once.
type Credentials struct {
	Email    string
	Username string
	Password string
}
