package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ignitte/induction/internal/app/controllers"
	appMigrations "github.com/ignitte/induction/internal/app/migrations"
	appRepos "github.com/ignitte/induction/internal/app/repositories"
	appRoutes "github.com/ignitte/induction/internal/app/routes"
	appServices "github.com/ignitte/induction/internal/app/services"
	"github.com/ignitte/induction/internal/config"
	"github.com/ignitte/induction/internal/db"
	appMiddleware "github.com/ignitte/induction/internal/middleware"
	pkgAuth "github.com/ignitte/induction/internal/pkg/auth"
	"github.com/ignitte/induction/internal/pkg/helpers"
	"github.com/ignitte/induction/internal/pkg/logger"
	"github.com/ignitte/induction/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	ApplicationService    appServices.ApplicationService
	AdminService          appServices.AdminService
	AuthController        *appControllers.AuthController
	ApplicationController *appControllers.ApplicationController
	AdminController       *appControllers.AdminController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations
// and seeds the default super admin.
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
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// Seeding failure should not prevent startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		AccessSecret:    cfg.JWT.AccessSecret,
		RefreshSecret:   cfg.JWT.RefreshSecret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 15*time.Minute),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 168*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		lgr,
	)
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.ApplicationRepository,
		deps.Repos.TaskRepository,
		deps.Repos.RoundRepository,
		lgr,
	)
	deps.AdminService = appServices.NewAdminService(
		deps.Repos.UserRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.TaskRepository,
		deps.Repos.RoundRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(
		deps.AuthService,
		deps.JWTService,
		cfg.IsProduction(),
		deps.Logger,
	)
	deps.ApplicationController = appControllers.NewApplicationController(deps.ApplicationService, deps.Logger)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, deps.Logger)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Credentialed CORS for the browser frontend. The origin must be
	// explicit since cookies are in play.
	corsConfig := cors.Config{
		AllowOrigins:     []string{cfg.CORS.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ApplicationController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	return router
}
