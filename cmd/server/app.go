package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/config"
	"github.com/ecofinds/ecofinds-api/internal/platform/postgres"
	"github.com/ecofinds/ecofinds-api/internal/platform/tokencache"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/ecofinds/ecofinds-api/internal/service/auth"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// denylistSweepInterval is how often the in-process denylist drops expired entries.
const denylistSweepInterval = 10 * time.Minute

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Infrastructure, nil when the application is assembled without a database.
	pool        *pgxpool.Pool
	redisClient *redis.Client

	// Stores
	userStore     store.UserStore
	productStore  store.ProductStore
	categoryStore store.CategoryStore
	transactor    store.Transactor

	// Services
	jwtService      auth.JWTService
	hasher          auth.PasswordHasher
	userService     service.UserService
	categoryService service.CategoryService
	productService  service.ProductService

	// metricsRegistry backs the /metrics endpoint.
	metricsRegistry *prometheus.Registry
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database pool that
// must be established before application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		pool:   pool,
	}

	denylist, err := app.setupDenylist(ctx)
	if err != nil {
		return nil, err
	}

	app.userStore = postgres.NewPostgresUserStore(pool, logger)
	app.productStore = postgres.NewPostgresProductStore(pool, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(pool, logger)
	app.transactor = store.NewTransactor(pool)

	if err := app.wireServices(denylist); err != nil {
		app.cleanup()
		return nil, err
	}

	if err := app.prepareCategories(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupDenylist picks the Redis backend when configured, otherwise the in-process store.
func (app *application) setupDenylist(ctx context.Context) (auth.Denylist, error) {
	if app.config.Redis.URL == "" {
		app.logger.Info("using in-process token denylist")
		return tokencache.NewMemory(denylistSweepInterval), nil
	}

	client, err := tokencache.Dial(ctx, app.config.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redisClient = client
	app.logger.Info("using redis token denylist")
	return tokencache.NewRedis(client), nil
}

// wireServices builds the services on top of the stores already set on app.
func (app *application) wireServices(denylist auth.Denylist) error {
	var err error
	app.jwtService, err = auth.NewJWTService(app.config.Auth, denylist)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(app.config.Auth.BCryptCost)
	app.userService = service.NewUserService(app.userStore, app.hasher, app.logger)
	app.categoryService = service.NewCategoryService(app.categoryStore, app.logger)
	app.productService, err = service.NewProductService(
		app.productStore,
		app.userStore,
		app.categoryStore,
		app.transactor,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create product service: %w", err)
	}

	app.metricsRegistry = prometheus.NewRegistry()
	return nil
}

// prepareCategories seeds the default categories and repairs drifted counters.
func (app *application) prepareCategories(ctx context.Context) error {
	if err := app.categoryService.EnsureSeeded(ctx); err != nil {
		return err
	}
	changed, err := app.categoryService.Reconcile(ctx)
	if err != nil {
		return err
	}
	if changed > 0 {
		app.logger.Warn("category counters reconciled", "categories_changed", changed)
	}
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter(ctx)

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}
	if app.pool != nil {
		app.pool.Close()
	}
	app.logger.Info("Application shutdown completed")
}
