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

	httpapi "github.com/aussiebroadwan/accounts/internal/accounts/http"
	"github.com/aussiebroadwan/accounts/internal/accounts/mail"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/postgres"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the accounts service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	mailer mail.Sender

	tokens       *service.TokenService
	credentials  *service.CredentialStore
	registration *service.RegistrationService
	sessions     *service.SessionService
	users        *service.UserService
	gate         *service.AuthGate

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "accounts",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  cfg.LogOutput,
			Install: true,
		}),
	}

	if len(cfg.JWTSecret) < 32 {
		app.logger.Warn("JWT_SECRET is shorter than 32 bytes")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initMail(); err != nil {
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

// Handler exposes the router, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("accounts service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"db_driver", app.cfg.DatabaseDriver,
		"mail_mode", app.cfg.MailMode,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
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
	app.logger.Info("shutting down accounts service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("accounts service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initMail() error {
	if app.cfg.MailMode != MailSMTP {
		app.logger.Warn("mail is in log mode, verification links are written to the log")
		app.mailer = mail.LogSender{}
		return nil
	}

	sender, err := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.EmailUser,
		Password: app.cfg.EmailPass,
		TLS:      app.cfg.SMTPTLS,
		Timeout:  app.cfg.SMTPTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to configure smtp: %w", err)
	}
	app.mailer = sender
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:     []byte(app.cfg.JWTSecret),
		Issuer:     app.cfg.JWTIssuer,
		SessionTTL: app.cfg.SessionTTL,
		PendingTTL: app.cfg.PendingTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	app.tokens = tokens

	app.credentials = &service.CredentialStore{
		Store:  app.db,
		Hasher: cryptox.NewBcryptHasher(app.cfg.BcryptCost),
	}

	app.registration = &service.RegistrationService{
		Credentials:     app.credentials,
		Tokens:          app.tokens,
		Mailer:          app.mailer,
		VerificationURL: app.cfg.VerificationURL,
		From:            app.cfg.From(),
	}
	app.sessions = &service.SessionService{Credentials: app.credentials, Tokens: app.tokens}
	app.users = &service.UserService{Credentials: app.credentials}
	app.gate = &service.AuthGate{Tokens: app.tokens, Credentials: app.credentials}

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(httpapi.RouterConfig{
		BuildVersion: BuildVersion,
		LoginURL:     app.cfg.LoginURL,
		Production:   app.cfg.IsProduction(),
		SSLRedirect:  app.cfg.SSLRedirect,
	}, app.db, app.logger)

	router.Registration = app.registration
	router.Sessions = app.sessions
	router.Users = app.users
	router.Gate = app.gate
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
