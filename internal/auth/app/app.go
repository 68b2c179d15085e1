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

	httpapi "github.com/eytanenglard/HebrewClubBackend/internal/auth/http"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/mail"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store/drivers/rediskv"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store/drivers/sqlite"
	"github.com/eytanenglard/HebrewClubBackend/pkg/jwtx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	kv     store.Ephemeral
	tokens *jwtx.HS256

	// Services
	authService         *service.AuthService
	verificationService *service.VerificationService
	resetService        *service.ResetService
	csrfService         *service.CsrfService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}
	tokens, err := jwtx.NewHS256([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.tokens = tokens

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.kv = rediskv.Open(cfg.RedisAddr, cfg.RedisDB, "auth")

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down auth service...")

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

	// Close the ephemeral store
	if err := app.kv.Close(); err != nil {
		app.logger.Error("error closing redis client", "error", err)
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
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

// initServices initializes all business logic services
func (app *Application) initServices() {
	dispatcher := mail.NewSMTPDispatcher(mail.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.MailFrom,
	})

	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     app.tokens,
		SessionTTL: app.cfg.SessionTTL,
	}

	app.verificationService = &service.VerificationService{
		Store:         app.db,
		Mail:          dispatcher,
		PublicBaseURL: app.cfg.PublicBaseURL,
		TokenTTL:      app.cfg.VerificationTTL,
	}

	app.resetService = &service.ResetService{
		Store:         app.db,
		Mail:          dispatcher,
		PublicBaseURL: app.cfg.PublicBaseURL,
		TokenTTL:      app.cfg.ResetTokenTTL,
		LockWindow:    app.cfg.ResetLockWindow,
	}

	app.csrfService = &service.CsrfService{
		KV:  app.kv,
		TTL: app.cfg.CsrfTTL,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.kv,
		app.logger,
	)

	// Wire services to router
	router.SessionTTL = app.cfg.SessionTTL
	router.CookieSecure = app.cfg.CookieSecure
	router.AuthService = app.authService
	router.VerificationService = app.verificationService
	router.ResetService = app.resetService
	router.CsrfService = app.csrfService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
