// Package bootstrap wires configuration, storage, services and HTTP
// routing together at startup.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/unigrade/backend/internal/app/controllers"
	appMigrations "github.com/unigrade/backend/internal/app/migrations"
	appRepos "github.com/unigrade/backend/internal/app/repositories"
	appRoutes "github.com/unigrade/backend/internal/app/routes"
	appServices "github.com/unigrade/backend/internal/app/services"
	"github.com/unigrade/backend/internal/config"
	"github.com/unigrade/backend/internal/db"
	appMiddleware "github.com/unigrade/backend/internal/middleware"
	pkgAuth "github.com/unigrade/backend/internal/pkg/auth"
	"github.com/unigrade/backend/internal/pkg/logger"
	"github.com/unigrade/backend/internal/pkg/metrics"
	"github.com/unigrade/backend/internal/pkg/validation"
	"github.com/unigrade/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *appServices.Services
	AuthController       *appControllers.AuthController
	CatalogController    *appControllers.CatalogController
	StudentController    *appControllers.StudentController
	EnrollmentController *appControllers.EnrollmentController
	GPAController        *appControllers.GPAController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Metrics              *metrics.Metrics
	Registry             *prometheus.Registry
	RedisClient          *redis.Client
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default catalog.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// A failed seed leaves an empty catalog, not a broken server.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.Registry = prometheus.NewRegistry()
	deps.Metrics = metrics.New(deps.Registry)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	// The GPA cache is optional; without redis every read recomputes.
	var breakdownCache appServices.BreakdownCache
	if cfg.Redis.Enabled {
		deps.RedisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := deps.RedisClient.Ping(ctx).Err(); err != nil {
			lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, GPA caching disabled")
			deps.RedisClient = nil
		} else {
			breakdownCache = appRepos.NewGPACache(deps.RedisClient, cfg.RedisTTL())
			lgr.Info().Str("addr", cfg.Redis.Addr).Msg("GPA caching enabled")
		}
	}

	deps.Services = &appServices.Services{
		Auth:       appServices.NewAuthService(deps.Repos.Users, deps.JWTService),
		Catalog:    appServices.NewCatalogService(deps.Repos.Catalog),
		Student:    appServices.NewStudentService(deps.Repos.Students, deps.Repos.Catalog),
		Enrollment: appServices.NewEnrollmentService(deps.Repos.Enrollments, deps.Repos.Catalog, breakdownCache, deps.Metrics),
		Grading:    appServices.NewGradingService(deps.Repos.Enrollments, breakdownCache, deps.Metrics),
		Planner:    appServices.NewPlannerService(deps.Repos.Enrollments, deps.Metrics),
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth, lgr)
	deps.CatalogController = appControllers.NewCatalogController(deps.Services.Catalog, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.Services.Student, deps.Services.Enrollment, deps.Services.Grading, lgr)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.Services.Enrollment, deps.Services.Student, lgr)
	deps.GPAController = appControllers.NewGPAController(deps.Services.Grading, deps.Services.Planner, deps.Services.Student, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if err := validation.RegisterCustomValidators(); err != nil {
		lgr.Warn().Err(err).Msg("Failed to register custom validators")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogController,
		deps.StudentController,
		deps.EnrollmentController,
		deps.GPAController,
		deps.AuthMiddleware,
		deps.Registry,
	)

	return router
}
