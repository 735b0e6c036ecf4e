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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kerem/schoolhub/docs" // Generated swagger docs
	appAuth "github.com/kerem/schoolhub/internal/app/auth"
	appControllers "github.com/kerem/schoolhub/internal/app/controllers"
	appMigrations "github.com/kerem/schoolhub/internal/app/migrations"
	appRepos "github.com/kerem/schoolhub/internal/app/repositories"
	appRoutes "github.com/kerem/schoolhub/internal/app/routes"
	appServices "github.com/kerem/schoolhub/internal/app/services"
	"github.com/kerem/schoolhub/internal/config"
	"github.com/kerem/schoolhub/internal/db"
	appMiddleware "github.com/kerem/schoolhub/internal/middleware"
	pkgAuth "github.com/kerem/schoolhub/internal/pkg/auth"
	"github.com/kerem/schoolhub/internal/pkg/helpers"
	"github.com/kerem/schoolhub/internal/pkg/logger"
	"github.com/kerem/schoolhub/internal/pkg/ws"
	"github.com/kerem/schoolhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos               *appRepos.Repositories
	Services            *appServices.Services
	JWTService          *pkgAuth.JWTService
	FeedHub             *ws.Hub
	AuthController      *appControllers.AuthController
	ClassController     *appControllers.ClassController
	StudentController   *appControllers.StudentController
	TeacherController   *appControllers.TeacherController
	FeeController       *appControllers.FeeController
	SalaryController    *appControllers.SalaryController
	DashboardController *appControllers.DashboardController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file, when present, is read before the YAML config so local
// overrides win.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Could not load .env file")
	}

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
		File:   cfg.Logging.File,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default administrator accounts.
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

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultAdmins(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default admins, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and the
// activity feed hub.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.FeedHub = ws.NewHub(lgr)
	go deps.FeedHub.Run()

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.FeedHub, cfg)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, appAuth.Allowed)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.ClassController = appControllers.NewClassController(deps.Services.ClassService, deps.Services.StudentService)
	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService)
	deps.TeacherController = appControllers.NewTeacherController(deps.Services.TeacherService)
	deps.FeeController = appControllers.NewFeeController(deps.Services.FeeService)
	deps.SalaryController = appControllers.NewSalaryController(deps.Services.SalaryService)
	deps.DashboardController = appControllers.NewDashboardController(deps.Services.DashboardService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterCustomValidators()

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ClassController,
		deps.StudentController,
		deps.TeacherController,
		deps.FeeController,
		deps.SalaryController,
		deps.DashboardController,
		deps.AuthMiddleware,
		deps.FeedHub,
		lgr,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
