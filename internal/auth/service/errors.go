package service

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Root sentinels. The HTTP layer switches on these with errors.Is; the more
// specific errors below wrap one of them.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

var (
	ErrTenantNotFound     = fmt.Errorf("tenant %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrInvitationNotFound = fmt.Errorf("invitation %w", ErrNotFound)

	ErrTenantSlugTaken = fmt.Errorf("%w: tenant slug already exists", ErrConflict)
	ErrOAuthLinkTaken  = fmt.Errorf("%w: provider id already linked", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrPasswordNotSet     = fmt.Errorf("%w: no password set", ErrUnauthenticated)
	ErrInvalidSession     = fmt.Errorf("%w: invalid session", ErrUnauthenticated)

	ErrInvitationNotAccepted = fmt.Errorf("%w: invitation not accepted", ErrUnauthorized)
	ErrNoTenantAccess        = fmt.Errorf("%w: no access to tenant", ErrUnauthorized)
	ErrUserInactive          = fmt.Errorf("%w: user is inactive", ErrUnauthorized)

	ErrBootstrapAlready      = fmt.Errorf("%w: system already bootstrapped", ErrConflict)
	ErrBootstrapUnauthorized = fmt.Errorf("%w: bad bootstrap token", ErrUnauthenticated)

	// ErrInvalidOrExpiredInvitation covers unknown, used, revoked and expired
	// tokens alike.
	ErrInvalidOrExpiredInvitation = errors.New("invalid or expired invitation")
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// fieldError builds a ValidationError for a single field.
func fieldError(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
