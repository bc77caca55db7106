package service_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/internal/auth/store/drivers/sqlite"
	"github.com/akashm011/Auth/pkg/cryptox"
	"github.com/akashm011/Auth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "http://auth.test"

// captureNotifier keeps every notice so tests can read the raw token and
// the generated credentials.
type captureNotifier struct {
	mu          sync.Mutex
	invitations []domain.InvitationNotice
	credentials []domain.CredentialsNotice
}

func (c *captureNotifier) NotifyInvitation(_ context.Context, n domain.InvitationNotice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invitations = append(c.invitations, n)
}

func (c *captureNotifier) NotifyCredentials(_ context.Context, n domain.CredentialsNotice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credentials = append(c.credentials, n)
}

func (c *captureNotifier) lastToken(t *testing.T) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.invitations, "no invitation notice sent")
	return c.invitations[len(c.invitations)-1].Token
}

type harness struct {
	store   store.Store
	now     time.Time
	notices *captureNotifier

	tenants     *service.TenantService
	users       *service.UserService
	creds       *service.CredentialIssuer
	audit       *service.AuditService
	access      *service.AccessService
	invitations *service.InvitationService
	sessions    *service.SessionService
	bootstrap   *service.BootstrapService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithDSN(t, ":memory:")
}

// newFileHarness backs the services with an on-disk database opened the way
// the server opens it.
func newFileHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithDSN(t, sqlite.FileDSN(filepath.Join(t.TempDir(), "auth.db")))
}

func newHarnessWithDSN(t *testing.T, dsn string) *harness {
	t.Helper()

	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA(key)
	require.NoError(t, err)

	h := &harness{
		store:   st,
		now:     time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC),
		notices: &captureNotifier{},
	}
	clock := service.Clock(func() time.Time { return h.now })

	h.creds = &service.CredentialIssuer{Hasher: cryptox.NewHasher("test-pepper")}
	h.tenants = &service.TenantService{Store: st, Clock: clock}
	h.users = &service.UserService{Store: st, Clock: clock}
	h.audit = &service.AuditService{Store: st, Clock: clock}
	h.access = &service.AccessService{Store: st, Clock: clock}
	h.invitations = &service.InvitationService{
		Store:       st,
		Users:       h.users,
		Credentials: h.creds,
		Audit:       h.audit,
		Notices:     h.notices,
		Clock:       clock,
	}
	h.sessions = &service.SessionService{
		Users:       h.users,
		Access:      h.access,
		Credentials: h.creds,
		Audit:       h.audit,
		Signer:      signer,
		Verifier:    jwtx.NewVerifierEdDSA(signer.PublicKey(), testIssuer, time.Minute).WithClock(clock.Now),
		Issuer:      testIssuer,
		Clock:       clock,
	}
	h.bootstrap = &service.BootstrapService{
		Store:       st,
		Credentials: h.creds,
		Clock:       clock,
		Token:       "bootstrap-secret",
	}
	return h
}

func (h *harness) tenant(t *testing.T, slug string) domain.Tenant {
	t.Helper()
	tenant, err := h.tenants.Create(context.Background(), service.CreateTenantInput{
		Name: "Tenant " + slug,
		Slug: slug,
	}, "admin")
	require.NoError(t, err)
	return tenant
}

// issue invites email to tenants for the default 30 days and returns the
// invitation with its raw token.
func (h *harness) issue(t *testing.T, email string, tenants ...string) (domain.Invitation, string) {
	t.Helper()
	inv, err := h.invitations.Issue(context.Background(), service.IssueInvitationInput{
		Email:   email,
		Tenants: tenants,
	}, "admin", domain.RequestMeta{})
	require.NoError(t, err)
	return inv, h.notices.lastToken(t)
}

func (h *harness) accept(t *testing.T, token string) domain.Credentials {
	t.Helper()
	creds, err := h.invitations.Accept(context.Background(), token, domain.RequestMeta{})
	require.NoError(t, err)
	return creds
}

func (h *harness) logs(t *testing.T, f domain.AccessLogFilter) []domain.AccessLogEntry {
	t.Helper()
	page, err := h.audit.Query(context.Background(), service.AccessLogQuery{Filter: f})
	require.NoError(t, err)
	return page.Logs
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
