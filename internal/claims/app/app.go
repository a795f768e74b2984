// Package app wires configuration, storage, services and the HTTP server
// into a runnable claims application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/pavemint/claimdesk/internal/claims/http"
	"github.com/pavemint/claimdesk/internal/claims/service"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/internal/claims/store/drivers/sqlite"
	"github.com/pavemint/claimdesk/pkg/cryptox"
	"github.com/pavemint/claimdesk/pkg/jwtx"
	"github.com/pavemint/claimdesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the claims service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.EdDSA

	authService      *service.AuthService
	workflowService  *service.WorkflowService
	reportService    *service.ReportService
	intakeService    *service.IntakeService
	bootstrapService *service.BootstrapService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "claimdesk",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := jwtx.NewEphemeralEdDSA(app.cfg.Issuer)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.signer = signer

	app.initServices()

	if err := app.bootstrapManager(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the HTTP server and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("claims service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// Shutdown gracefully stops the HTTP server and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down claims service...")

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

	app.logger.Info("claims service stopped")
	return nil
}

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

func (app *Application) initServices() {
	app.authService = &service.AuthService{Store: app.db}
	app.workflowService = &service.WorkflowService{Store: app.db}
	app.reportService = &service.ReportService{Store: app.db}
	app.intakeService = &service.IntakeService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{Store: app.db}
}

// bootstrapManager seeds the first manager account when credentials are
// configured and the user table is still empty.
func (app *Application) bootstrapManager() error {
	if app.cfg.BootstrapUsername == "" || app.cfg.BootstrapPassword == "" {
		return nil
	}

	created, err := app.bootstrapService.EnsureManager(
		context.Background(),
		app.cfg.BootstrapUsername,
		app.cfg.BootstrapPassword,
	)
	if err != nil {
		return fmt.Errorf("failed to bootstrap manager account: %w", err)
	}
	if created {
		app.logger.Info("bootstrap manager account created", "username", app.cfg.BootstrapUsername)
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.signer,
		app.cfg.Issuer,
		app.cfg.SessionTTL,
		app.db,
		app.logger,
	)
	router.AuthService = app.authService
	router.WorkflowService = app.workflowService
	router.ReportService = app.reportService
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
