package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/courseportal/internal/app/controllers"
	appMigrations "github.com/yigit/courseportal/internal/app/migrations"
	appRepos "github.com/yigit/courseportal/internal/app/repositories"
	"github.com/yigit/courseportal/internal/app/repositories/memory"
	appRoutes "github.com/yigit/courseportal/internal/app/routes"
	appServices "github.com/yigit/courseportal/internal/app/services"
	"github.com/yigit/courseportal/internal/config"
	"github.com/yigit/courseportal/internal/db"
	appMiddleware "github.com/yigit/courseportal/internal/middleware"
	"github.com/yigit/courseportal/internal/pkg/logger"
	"github.com/yigit/courseportal/internal/seed"
)

// Store bundles the repositories with the function releasing their backing resources
type Store struct {
	Repos *appRepos.Repositories
	Close func()
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	AssociationManager *appServices.AssociationManager
	LecturerService    appServices.LecturerService // Interface type
	CourseService      appServices.CourseService   // Interface type
	LecturerController *appControllers.LecturerController
	CourseController   *appControllers.CourseController
	Repos              *appRepos.Repositories
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default configs/config.yaml location.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured entity store. For postgres it connects,
// then applies the migrations directory.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Info().Msg("Using in-memory entity store")
		return &Store{Repos: memory.NewRepositories(), Close: func() {}}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := runMigrations(cfg, database, lgr); err != nil {
		database.Close()
		return nil, err
	}

	return &Store{Repos: appRepos.NewRepositories(database), Close: database.Close}, nil
}

func runMigrations(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// BuildDependencies initializes application services and controllers on top of the repositories.
func BuildDependencies(repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.AssociationManager = appServices.NewAssociationManager(repos, lgr.With().Str("component", "associations").Logger())
	deps.LecturerService = appServices.NewLecturerService(repos, deps.AssociationManager, lgr.With().Str("component", "lecturers").Logger())
	deps.CourseService = appServices.NewCourseService(repos, deps.AssociationManager, lgr.With().Str("component", "courses").Logger())

	deps.LecturerController = appControllers.NewLecturerController(deps.LecturerService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)

	return deps
}

// SeedDemoData creates the demo lecturers and courses when seeding is enabled.
func SeedDemoData(cfg *config.Config, deps *Dependencies) {
	if !cfg.Seed.Enabled {
		return
	}
	if err := seed.CreateDefaultData(context.Background(), deps.LecturerService, deps.CourseService, deps.Logger); err != nil {
		// Log the error but don't fail the startup
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.ContextWithFallback = true
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router, deps.LecturerController, deps.CourseController)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
