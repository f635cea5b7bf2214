package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rcooper/taskflow-api/internal/config"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/platform/metrics"
	"github.com/rcooper/taskflow-api/internal/platform/postgres"
	"github.com/rcooper/taskflow-api/internal/service"
	"github.com/rcooper/taskflow-api/internal/service/auth"
	"github.com/rcooper/taskflow-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core infrastructure
	logger   *slog.Logger
	db       *sql.DB
	registry *prometheus.Registry
	metrics  *metrics.Collector

	// Stores (using interfaces for proper abstraction)
	userStore         store.UserStore
	taskStore         store.TaskStore
	notificationStore store.NotificationStore
	transactor        store.Transactor

	// Service interfaces
	jwtService          auth.JWTService
	passwordHasher      auth.PasswordHasher
	passwordVerifier    auth.PasswordVerifier
	userService         service.UserService
	taskService         service.TaskService
	notificationService service.NotificationService
	analyticsService    service.AnalyticsService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Metrics registry and collectors
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewCollector(app.registry)

	// Authentication services
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.notificationStore = postgres.NewPostgresNotificationStore(db, logger)
	app.transactor = store.NewSQLTransactor(db)

	// Services
	app.userService, err = service.NewUserService(app.userStore, app.passwordHasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		app.taskStore,
		app.userStore,
		app.notificationStore,
		app.transactor,
		app.metrics,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.notificationService, err = service.NewNotificationService(app.notificationStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}

	app.analyticsService, err = service.NewAnalyticsService(app.taskStore, app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}

	if err := app.seedAdminUser(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// seedAdminUser creates the bootstrap administrator account when configured
// and not already present. Without it a fresh deployment has no way to grant
// the first ADMIN role.
func (app *application) seedAdminUser(ctx context.Context) error {
	cfg := app.config.Auth
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := app.userStore.GetByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		app.logger.Debug("admin user already exists", "username", cfg.AdminUsername)
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return err
	}

	email := cfg.AdminEmail
	if email == "" {
		email = cfg.AdminUsername + "@localhost.local"
	}

	admin, err := domain.NewUser(cfg.AdminUsername, email, cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin.Roles = []domain.Role{domain.RoleAdmin}

	hashed, err := app.passwordHasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin.HashedPassword = hashed
	admin.Password = ""

	if err := app.userStore.Create(ctx, admin); err != nil {
		return err
	}

	app.logger.Info("bootstrap admin user created", "username", cfg.AdminUsername)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
