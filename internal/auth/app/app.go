package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/akashm011/Auth/internal/auth/http"
	"github.com/akashm011/Auth/internal/auth/notify"
	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/internal/auth/store"
	"github.com/akashm011/Auth/internal/auth/store/drivers/sqlite"
	"github.com/akashm011/Auth/pkg/cryptox"
	"github.com/akashm011/Auth/pkg/jwtx"
	"github.com/akashm011/Auth/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application encapsulates the access service with all its dependencies
type Application struct {
	cfg       Config
	logger    *slog.Logger
	logCloser io.Closer

	// Core dependencies
	db       store.Store
	signer   *jwtx.EdDSASigner
	verifier *jwtx.EdDSAVerifier
	notices  *notify.Dispatcher

	// Services
	tenantService     *service.TenantService
	userService       *service.UserService
	auditService      *service.AuditService
	accessService     *service.AccessService
	invitationService *service.InvitationService
	sessionService    *service.SessionService
	bootstrapService  *service.BootstrapService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	logger, closer := slogx.New(slogx.Config{
		Service: "tenant-access",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
	})
	app := &Application{
		cfg:       cfg,
		logger:    logger,
		logCloser: closer,
	}

	// Initialize database first
	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := LoadSigner(cfg.SigningKeyFile, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}
	app.signer = signer
	app.verifier = jwtx.NewVerifierEdDSA(signer.PublicKey(), cfg.Issuer, time.Minute)

	if err := app.initNotices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed HTTP handler, mainly for in-process tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.notices.Start()

	app.logger.Info("tenant access service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.notices.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tenant access service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Deliver queued notices before the process exits
	app.notices.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("tenant access service stopped")
	return app.logCloser.Close()
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initNotices picks SMTP delivery when a relay is configured and falls back
// to logging notices without their secrets.
func (app *Application) initNotices() error {
	renderer, err := notify.NewRenderer(app.cfg.PublicURL)
	if err != nil {
		return fmt.Errorf("failed to load notice templates: %w", err)
	}

	var mailer notify.Mailer = notify.LogMailer{Logger: app.logger}
	if app.cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.SMTPFrom,
		})
		app.logger.Info("smtp delivery enabled", "host", app.cfg.SMTPHost, "port", app.cfg.SMTPPort)
	} else {
		app.logger.Warn("SMTP_HOST not set, notices will only be logged")
	}

	app.notices = notify.NewDispatcher(mailer, renderer, app.logger, app.cfg.NotifyQueueSize)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrGeneratePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	credentials := &service.CredentialIssuer{Hasher: cryptox.NewHasher(pepper)}

	app.tenantService = &service.TenantService{Store: app.db}
	app.userService = &service.UserService{Store: app.db}
	app.auditService = &service.AuditService{Store: app.db}
	app.accessService = &service.AccessService{Store: app.db}
	app.invitationService = &service.InvitationService{
		Store:       app.db,
		Users:       app.userService,
		Credentials: credentials,
		Audit:       app.auditService,
		Notices:     app.notices,
	}
	app.sessionService = &service.SessionService{
		Users:       app.userService,
		Access:      app.accessService,
		Credentials: credentials,
		Audit:       app.auditService,
		Signer:      app.signer,
		Verifier:    app.verifier,
		Issuer:      app.cfg.Issuer,
		TTL:         app.cfg.SessionTTL,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:       app.db,
		Credentials: credentials,
		Token:       app.cfg.BootstrapToken,
	}

	if app.cfg.BootstrapToken == "" {
		app.logger.Info("BOOTSTRAP_TOKEN not set, bootstrap endpoint disabled")
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.TenantService = app.tenantService
	router.UserService = app.userService
	router.AuditService = app.auditService
	router.InvitationService = app.invitationService
	router.SessionService = app.sessionService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
