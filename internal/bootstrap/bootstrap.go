package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cphunt/backend/docs" // Import generated swagger docs
	appControllers "github.com/cphunt/backend/internal/app/controllers"
	appRepos "github.com/cphunt/backend/internal/app/repositories"
	appRoutes "github.com/cphunt/backend/internal/app/routes"
	appServices "github.com/cphunt/backend/internal/app/services"
	"github.com/cphunt/backend/internal/config"
	"github.com/cphunt/backend/internal/db"
	appMiddleware "github.com/cphunt/backend/internal/middleware"
	pkgAuth "github.com/cphunt/backend/internal/pkg/auth"
	"github.com/cphunt/backend/internal/pkg/helpers"
	"github.com/cphunt/backend/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	Services              *appServices.Services
	JWTService            *pkgAuth.JWTService
	Migrator              *db.Migrator
	AuthMiddleware        *appMiddleware.AuthMiddleware
	AuthController        *appControllers.AuthController
	ProfileController     *appControllers.ProfileController
	FeedController        *appControllers.FeedController
	ProductController     *appControllers.ProductController
	LaunchController      *appControllers.LaunchController
	EventController       *appControllers.EventController
	ApplicationController *appControllers.ApplicationController
	SocialController      *appControllers.SocialController
	AdminController       *appControllers.AdminController
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

// SetupDatabase establishes the MongoDB connection and ensures indexes exist.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Mongo, error) {
	lgr.Info().Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	mongoDB, err := db.NewMongo(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Index creation is best effort: reads degrade to capped scans when an
	// index is missing, so startup must not fail here.
	schema := db.NewSchema(cfg.Schema.Version, cfg.Schema.LegacyFallback)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db.EnsureIndexes(ctx, mongoDB.DB, schema, lgr)

	return mongoDB, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, mongoDB *db.Mongo, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	schema := db.NewSchema(cfg.Schema.Version, cfg.Schema.LegacyFallback)
	deps.Repos = appRepos.NewRepositories(mongoDB.DB, schema)
	deps.Migrator = db.NewMigrator(mongoDB.DB, schema)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.ProfileController = appControllers.NewProfileController(deps.Services.UserService, deps.Services.ProductService)
	deps.FeedController = appControllers.NewFeedController(deps.Services.FeedService)
	deps.ProductController = appControllers.NewProductController(deps.Services.ProductService)
	deps.LaunchController = appControllers.NewLaunchController(deps.Services.LaunchService)
	deps.EventController = appControllers.NewEventController(deps.Services.EventService, deps.Services.UserService)
	deps.ApplicationController = appControllers.NewApplicationController(
		deps.Services.ApplicationService,
		deps.Services.EventService,
		deps.Services.UserService,
	)
	deps.SocialController = appControllers.NewSocialController(deps.Services.SocialService)
	deps.AdminController = appControllers.NewAdminController(deps.Migrator, deps.Services.EventService)

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

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.FeedController,
		deps.ProductController,
		deps.LaunchController,
		deps.EventController,
		deps.ApplicationController,
		deps.SocialController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
