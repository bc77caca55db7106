package store

import (
	"context"
	"errors"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite) implement
// this. It exposes sub-repositories to keep concerns tidy and testable, and so
// nobody accidentally starts a transaction within a transaction.
type Store interface {
	Tenants() Tenants
	Users() Users
	Invitations() Invitations
	AccessLogs() AccessLogs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Page is an offset window over an ordered listing.
type Page struct {
	Skip  int
	Limit int
}

type Tenants interface {
	// CreateTenant inserts a tenant. Returns ErrAlreadyExists on a duplicate slug.
	CreateTenant(ctx context.Context, t domain.Tenant) error

	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error)

	// ListTenants returns tenants ordered by name.
	ListTenants(ctx context.Context, activeOnly bool) ([]domain.Tenant, error)

	// UpdateTenant overwrites name, domain, description and updated_at.
	UpdateTenant(ctx context.Context, t domain.Tenant) error

	// DeactivateTenant clears is_active and stamps updated_at with now.
	DeactivateTenant(ctx context.Context, id string, now time.Time) error

	// CountActiveTenantsBySlug returns how many of the given slugs resolve to
	// active tenants.
	CountActiveTenantsBySlug(ctx context.Context, slugs []string) (int, error)
}

type Users interface {
	// CreateUser inserts a user. Returns ErrAlreadyExists on a duplicate email
	// or username.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UsernameExists is used while probing for a free username.
	UsernameExists(ctx context.Context, username string) (bool, error)

	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// MarkInvitationAccepted sets password_hash and is_invitation_accepted in
	// one statement. The username is only written while the user has not yet
	// accepted an invitation; afterwards the stored one is kept. Returns the
	// username in effect.
	MarkInvitationAccepted(ctx context.Context, userID, username, passwordHash string, now time.Time) (string, error)

	// LinkOAuthProvider stores the provider-assigned id in the provider's column.
	LinkOAuthProvider(
		ctx context.Context,
		userID string,
		provider domain.OAuthProvider,
		providerID string,
		now time.Time,
	) error

	DeactivateUser(ctx context.Context, userID string, now time.Time) error

	CountUsers(ctx context.Context) (int, error)
}

type Invitations interface {
	// CreateInvitation inserts the invitation and its tenant scopes.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// AcceptInvitation atomically flips is_used for a live invitation matching
	// tokenHash. Returns ErrNotFound when no row qualified (unknown, used,
	// revoked or expired).
	AcceptInvitation(ctx context.Context, tokenHash string, now time.Time) (domain.AcceptedInvitation, error)

	// RevokeScopes removes the given slugs from the invitation's live scopes
	// in a single conditional update and returns the slugs actually removed.
	// When no live scope remains, the invitation itself is marked revoked with
	// reason; fullyRevoked reports that transition.
	RevokeScopes(
		ctx context.Context,
		invitationID string,
		slugs []string,
		reason string,
		now time.Time,
	) (revoked []string, fullyRevoked bool, err error)

	// ListActiveGrantIDs returns the ids of used, non-revoked invitations owned
	// by userID.
	ListActiveGrantIDs(ctx context.Context, userID string) ([]string, error)

	// ExtendInvitation sets expires_at regardless of used or revoked state.
	// Returns ErrNotFound for an unknown id.
	ExtendInvitation(ctx context.Context, invitationID string, expiresAt, now time.Time) error

	// ListInvitations returns a page ordered by created_at descending plus the
	// total number of matching invitations.
	ListInvitations(ctx context.Context, f domain.InvitationFilter, p Page) ([]domain.Invitation, int, error)

	// HasAccess reports whether userID holds a live grant for slug at now.
	HasAccess(ctx context.Context, userID, slug string, now time.Time) (bool, error)

	// AccessibleTenants returns the distinct slugs userID holds live grants for.
	AccessibleTenants(ctx context.Context, userID string, now time.Time) ([]string, error)
}

type AccessLogs interface {
	// AppendAccessLog writes an immutable entry.
	AppendAccessLog(ctx context.Context, e domain.AccessLogEntry) error

	// QueryAccessLogs returns a page ordered by timestamp descending plus the
	// total number of matching entries.
	QueryAccessLogs(ctx context.Context, f domain.AccessLogFilter, p Page) ([]domain.AccessLogEntry, int, error)
}
