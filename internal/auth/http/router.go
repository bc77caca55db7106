package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/httpx"
	"github.com/akashm011/Auth/pkg/jwtx"
	"github.com/akashm011/Auth/pkg/slogx"

	_ "github.com/akashm011/Auth/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             Pinger
	TenantService     *service.TenantService
	UserService       *service.UserService
	InvitationService *service.InvitationService
	AuditService      *service.AuditService
	SessionService    *service.SessionService
	BootstrapService  *service.BootstrapService
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	buildVersion string,
	st Pinger,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvitations()
	r.registerAccess()
	r.registerTenants()
	r.registerSessions()
	r.registerUsers()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tenant Access Service API
//	@version		0.1.0
//	@description	Invitation-based access control for a family of tenant applications.
//	@description
//	@description				Admins invite users to tenants; an invitation is accepted once and becomes the grant that carries the user's access. Session tokens are EdDSA-signed JWTs.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from /v1/auth/signin. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// adminRead and adminWrite wrap h with session verification, the admin
// scope check and a re-check of the stored admin account.
func (r *Router) adminRead(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/exp)
		httpx.RequireAnyScope(service.ScopeAdminRead, service.ScopeAdminWrite),
		requireActiveAdmin(r.SessionService),
	)
}

func (r *Router) adminWrite(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(service.ScopeAdminWrite),
		requireActiveAdmin(r.SessionService),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /v1/invitations", r.adminWrite(h.HandleIssue))
	r.Mux.Handle("GET /v1/invitations", r.adminRead(h.HandleList))

	// Public: the token itself is the credential
	r.Mux.Handle("POST /v1/invitations/accept", http.HandlerFunc(h.HandleAccept))
}

func (r *Router) registerAccess() {
	h := &AccessHandler{
		InvitationService: r.InvitationService,
		AuditService:      r.AuditService,
	}

	r.Mux.Handle("POST /v1/access/revoke", r.adminWrite(h.HandleRevoke))
	r.Mux.Handle("POST /v1/access/extend", r.adminWrite(h.HandleExtend))
	r.Mux.Handle("GET /v1/access-logs", r.adminRead(h.HandleLogs))
}

func (r *Router) registerTenants() {
	h := &TenantsHandler{TenantService: r.TenantService}

	r.Mux.Handle("GET /v1/tenants", r.adminRead(h.HandleList))
	r.Mux.Handle("POST /v1/tenants", r.adminWrite(h.HandleCreate))
	r.Mux.Handle("PATCH /v1/tenants/{id}", r.adminWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/tenants/{id}", r.adminWrite(h.HandleDeactivate))
}

func (r *Router) registerSessions() {
	r.Mux.Handle("POST /v1/auth/signin", &SignInHandler{SessionService: r.SessionService})

	// The session handler verifies the token itself so it can re-check the
	// user and tenant grant behind it.
	r.Mux.Handle("GET /v1/auth/session", &SessionHandler{SessionService: r.SessionService})
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /v1/users/count", r.adminRead(h.HandleCount))
	r.Mux.Handle("POST /v1/users/{id}/deactivate", r.adminWrite(h.HandleDeactivate))
	r.Mux.Handle("POST /v1/auth/oauth/link", r.adminWrite(h.HandleLinkOAuth))
}

func (r *Router) registerBootstrap() {
	r.Mux.Handle("POST /v1/bootstrap", &BootstrapHandler{BootstrapService: r.BootstrapService})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer))
}
