package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsAdmin reports whether the role may perform administrative operations.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// OAuthProvider is the closed set of identity providers a user can be linked to.
type OAuthProvider string

const (
	OAuthGoogle OAuthProvider = "google"
	OAuthGitHub OAuthProvider = "github"
)

// ParseOAuthProvider returns the provider for s or an error if it is not supported.
func ParseOAuthProvider(s string) (OAuthProvider, error) {
	switch p := OAuthProvider(s); p {
	case OAuthGoogle, OAuthGitHub:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported oauth provider %q", s)
	}
}

type User struct {
	ID                   string
	Email                string
	Username             string // Empty until assigned
	PasswordHash         string // Empty until acceptance or an explicit password set
	Name                 string
	Image                string
	Role                 Role
	IsActive             bool
	IsInvitationAccepted bool
	LastLogin            *time.Time
	OAuthLinks           map[OAuthProvider]string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
