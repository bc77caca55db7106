package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/internal/auth/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// FileDSN builds the DSN used for on-disk databases: WAL journaling, a busy
// timeout so writers queue instead of failing, and BEGIN IMMEDIATE so a
// transaction takes the write lock up front.
func FileDSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate",
		path,
	)
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every pooled connection to an in-memory database would see its own empty
	// database, so pin the pool to one.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}

func (s *Store) Tenants() store.Tenants         { return &tenantsRepo{q: s.q} }
func (s *Store) Users() store.Users             { return &usersRepo{q: s.q} }
func (s *Store) Invitations() store.Invitations { return &invitationsRepo{q: s.q} }
func (s *Store) AccessLogs() store.AccessLogs   { return &accessLogsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		}
	}
	return err
}

// mapRowsAffected reports store.ErrNotFound when an update matched nothing.
func mapRowsAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func mapNullMillisPtr(n sql.NullInt64) *time.Time {
	if n.Valid {
		val := fromMillis(n.Int64)
		return &val
	}
	return nil
}

func mapOptionalMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: toMillis(*t), Valid: true}
}

func mapTenant(row gen.Tenant) domain.Tenant {
	return domain.Tenant{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Domain:      mapNullString(row.Domain),
		Description: mapNullString(row.Description),
		IsActive:    row.IsActive,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   fromMillis(row.CreatedAt),
		UpdatedAt:   fromMillis(row.UpdatedAt),
	}
}

func mapUser(row gen.User) domain.User {
	links := make(map[domain.OAuthProvider]string, 2)
	if row.GoogleID.Valid {
		links[domain.OAuthGoogle] = row.GoogleID.String
	}
	if row.GithubID.Valid {
		links[domain.OAuthGitHub] = row.GithubID.String
	}

	return domain.User{
		ID:                   row.ID,
		Email:                row.Email,
		Username:             mapNullString(row.Username),
		PasswordHash:         mapNullString(row.PasswordHash),
		Name:                 row.Name,
		Image:                mapNullString(row.Image),
		Role:                 domain.Role(row.Role),
		IsActive:             row.IsActive,
		IsInvitationAccepted: row.IsInvitationAccepted,
		LastLogin:            mapNullMillisPtr(row.LastLogin),
		OAuthLinks:           links,
		CreatedAt:            fromMillis(row.CreatedAt),
		UpdatedAt:            fromMillis(row.UpdatedAt),
	}
}

func mapInvitation(row gen.Invitation, tenants []string) domain.Invitation {
	if tenants == nil {
		tenants = []string{}
	}
	return domain.Invitation{
		ID:            row.ID,
		Email:         row.Email,
		UserID:        row.UserID,
		TokenHash:     row.Token,
		Tenants:       tenants,
		ExpiresAt:     fromMillis(row.ExpiresAt),
		AcceptedAt:    mapNullMillisPtr(row.AcceptedAt),
		IsUsed:        row.IsUsed,
		RevokedAt:     mapNullMillisPtr(row.RevokedAt),
		RevokedReason: mapNullString(row.RevokedReason),
		CreatedBy:     row.CreatedBy,
		CreatedAt:     fromMillis(row.CreatedAt),
		UpdatedAt:     fromMillis(row.UpdatedAt),
	}
}

func mapAccessLog(row gen.AccessLog) domain.AccessLogEntry {
	return domain.AccessLogEntry{
		ID:           row.ID,
		UserID:       mapNullString(row.UserID),
		TenantID:     row.TenantID,
		Action:       domain.AccessAction(row.Action),
		Status:       domain.AccessStatus(row.Status),
		IPAddress:    mapNullString(row.IpAddress),
		UserAgent:    mapNullString(row.UserAgent),
		ErrorMessage: mapNullString(row.ErrorMessage),
		Timestamp:    fromMillis(row.Timestamp),
	}
}
