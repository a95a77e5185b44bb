package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/taskflowhq/taskflow/internal/api/http"
	"github.com/taskflowhq/taskflow/internal/api/notify"
	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/internal/api/store"
	"github.com/taskflowhq/taskflow/internal/api/store/drivers/sqlite"
	"github.com/taskflowhq/taskflow/pkg/jwtx"
	"github.com/taskflowhq/taskflow/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the API service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	notifier notify.Notifier
	worker   *notify.Worker // nil without Redis

	// Services
	identityService     *service.IdentityService
	authService         *service.AuthService
	organizationService *service.OrganizationService
	userService         *service.UserService
	taskService         *service.TaskService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "taskflow-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initNotifier(); err != nil {
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

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.worker != nil {
		app.worker.Start()
	}

	app.logger.Info("taskflow api starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down taskflow api...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.worker != nil {
		app.worker.Stop()
	}
	if closer, ok := app.notifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			app.logger.Error("error closing notifier", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("taskflow api stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
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

// initNotifier wires the notification backend. Redis when configured,
// otherwise log-only delivery.
func (app *Application) initNotifier() error {
	if app.cfg.RedisURL == "" {
		app.notifier = notify.NewLogNotifier(app.logger)
		app.logger.Info("notifications: log-only delivery (no redis configured)")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisNotifier, err := notify.NewRedisNotifier(ctx, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.notifier = redisNotifier
	app.worker = notify.NewWorker(redisNotifier, app.logger, nil, 5*time.Second)
	app.logger.Info("notifications: redis queue", "queue", redisNotifier.QueueKey)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.JWTSecret))
	if err != nil {
		return fmt.Errorf("invalid jwt secret: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(app.cfg.JWTSecret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("invalid jwt secret: %w", err)
	}

	app.identityService = &service.IdentityService{
		Store:    app.db,
		Verifier: verifier,
	}
	app.authService = &service.AuthService{
		Store:    app.db,
		Signer:   signer,
		Issuer:   app.cfg.Issuer,
		TokenTTL: app.cfg.TokenTTL,
	}
	app.organizationService = &service.OrganizationService{Store: app.db}
	app.userService = &service.UserService{Store: app.db}
	app.taskService = &service.TaskService{
		Store:    app.db,
		Notifier: app.notifier,
		Logger:   app.logger,
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.IdentityService = app.identityService
	router.AuthService = app.authService
	router.OrganizationService = app.organizationService
	router.UserService = app.userService
	router.TaskService = app.taskService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
