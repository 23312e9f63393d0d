package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/gatekeep/internal/gatekeep/http"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/mail"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/service"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/store"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/store/drivers/sqlite"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the gatekeep service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	mailer mail.Mailer

	whitelistService    *service.WhitelistService
	inviteService       *service.InviteService
	gateService         *service.GateService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gatekeep",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("GATE_JWT_SECRET is required")
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initMailer()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("gatekeep service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"private_beta", app.cfg.PrivateBeta,
		"open_registration", app.cfg.OpenRegistration,
	)

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
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gatekeep service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("gatekeep service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initMailer selects the outbound mail transport. Without a SendGrid key
// invitation emails are logged instead of sent, which keeps dev setups
// working.
func (app *Application) initMailer() {
	if app.cfg.SendGridAPIKey == "" {
		app.logger.Warn("SENDGRID_API_KEY not set, invitation emails will be logged only")
		app.mailer = &mail.LogMailer{Logger: app.logger}
		return
	}

	app.mailer = &mail.SendGridMailer{
		APIKey:   app.cfg.SendGridAPIKey,
		From:     app.cfg.MailFrom,
		FromName: app.cfg.AppName,
		Logger:   app.logger,
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.inviteService = &service.InviteService{
		Store: app.db,
		TTL:   app.cfg.InviteTTL,
	}

	app.whitelistService = &service.WhitelistService{
		Store:     app.db,
		Invites:   app.inviteService,
		Mailer:    app.mailer,
		AppName:   app.cfg.AppName,
		PublicURL: app.cfg.PublicURL,
	}

	app.gateService = &service.GateService{
		Whitelist:        app.whitelistService,
		Invites:          app.inviteService,
		PrivateBeta:      app.cfg.PrivateBeta,
		OpenRegistration: app.cfg.OpenRegistration,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	verifier := &jwtx.HS256Verifier{
		Secret: []byte(app.cfg.JWTSecret),
		Issuer: app.cfg.Issuer,
	}

	router := httpapi.NewRouter(verifier, BuildVersion, app.db, app.logger)

	// Wire services to router
	router.WhitelistService = app.whitelistService
	router.InviteService = app.inviteService
	router.GateService = app.gateService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
