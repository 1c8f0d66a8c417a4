package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmaulidia/fx_rates_app/internal/adapters/database/pgsql"
	"github.com/dmaulidia/fx_rates_app/internal/adapters/provider/erapi"
	portsrepo "github.com/dmaulidia/fx_rates_app/internal/core/ports/repositories"
	portssvc "github.com/dmaulidia/fx_rates_app/internal/core/ports/services"
	"github.com/dmaulidia/fx_rates_app/internal/core/services"
	"github.com/dmaulidia/fx_rates_app/internal/handlers"
	"github.com/dmaulidia/fx_rates_app/internal/middleware"
	"github.com/dmaulidia/fx_rates_app/internal/platform/config"
	"github.com/dmaulidia/fx_rates_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title FX Rates API
// @version 1.0
// @description Multi-currency exchange-rate service for the storefront: rate store, live refresh, conversion and freshness checks.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories, the external rate provider and the services.
	repos := portsrepo.RepositoryProvider{
		CurrencyRepo:     pgsql.NewPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: pgsql.NewPgxExchangeRateRepository(dbPool),
	}
	provider := erapi.NewClient(cfg.ProviderBaseURL, cfg.ProviderName, cfg.ProviderTimeout, logger)
	container := services.NewServiceContainer(cfg, repos, provider)

	runStartupHooks(cfg, container, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimitSpec)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT spec", slog.String("spec", cfg.RateLimitSpec), slog.String("error", err.Error()))
		os.Exit(1)
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	handlers.RegisterRoutes(r, cfg, container, limiterInstance)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped.")
}

// runMigrations applies all pending "up" migrations using a temporary
// standard sql.DB connection via the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// runStartupHooks is the app-startup trigger for the refresh paths. Seeding
// is idempotent; a failed startup refresh is logged and left to the next
// trigger (cron or admin action) rather than blocking startup.
func runStartupHooks(cfg *config.Config, container *portssvc.ServiceContainer, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.SeedOnStart {
		results, err := container.Refresh.SeedRates(ctx)
		if err != nil {
			logger.Error("Startup seed failed", slog.String("error", err.Error()))
		} else {
			seeded := 0
			for _, res := range results {
				if res.Seeded {
					seeded++
				}
			}
			logger.Info("Startup seed completed", slog.Int("seeded", seeded), slog.Int("configured", len(results)))
		}
	}

	if cfg.RefreshOnStart {
		report, err := container.Refresh.RefreshRates(ctx)
		if err != nil {
			logger.Error("Startup refresh failed", slog.String("error", err.Error()))
		} else {
			logger.Info("Startup refresh completed",
				slog.Int("succeeded", report.Succeeded),
				slog.Int("failed", report.Failed),
			)
		}
	}
}
