package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	repositories "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/handlers"
	"github.com/Manav-gyani/Bank-Management-System/internal/middleware"
	"github.com/Manav-gyani/Bank-Management-System/internal/platform/config"
	"github.com/Manav-gyani/Bank-Management-System/internal/repositories/database/pgsql"
	"github.com/Manav-gyani/Bank-Management-System/internal/repositories/memory"
	"github.com/Manav-gyani/Bank-Management-System/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Bank Management System API
// @version 1.0
// @description Core banking backend: accounts, ledger and loan underwriting.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories: Postgres when a database URL is configured, the
	// in-process store otherwise (local runs without a database).
	var repos *repositories.RepositoryProvider
	if cfg.DatabaseURL == "" {
		logger.Warn("No database URL configured, using the in-memory store; data will not survive a restart")
		repos = memory.NewRepositoryProvider()
	} else {
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		repos = pgsql.NewRepositoryProvider(dbPool)
	}
	container := services.NewContainer(repos, services.ContainerConfig{
		Auth: services.AuthConfig{
			JWTSecret: cfg.JWTSecret,
			JWTExpiry: cfg.JWTExpiryDuration,
			JWTIssuer: cfg.JWTIssuer,
		},
		UnderwritingDelay: cfg.UnderwritingDelay,
	})

	// Pick up loans that were still PENDING when the previous process died,
	// so every application eventually gets its decision exactly once.
	if err := container.Loan.ResumePendingUnderwriting(context.Background()); err != nil {
		logger.Error("Failed to resume pending underwriting", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory over a temporary database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
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
