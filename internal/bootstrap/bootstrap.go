// Package bootstrap wires configuration, storage, services, and routes
// into a runnable application.
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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/avelichko/postline/internal/app/controllers"
	appMigrations "github.com/avelichko/postline/internal/app/migrations"
	appRepos "github.com/avelichko/postline/internal/app/repositories"
	appRoutes "github.com/avelichko/postline/internal/app/routes"
	appServices "github.com/avelichko/postline/internal/app/services"
	"github.com/avelichko/postline/internal/config"
	"github.com/avelichko/postline/internal/db"
	appMiddleware "github.com/avelichko/postline/internal/middleware"
	pkgAuth "github.com/avelichko/postline/internal/pkg/auth"
	"github.com/avelichko/postline/internal/pkg/filestorage"
	"github.com/avelichko/postline/internal/pkg/helpers"
	"github.com/avelichko/postline/internal/pkg/logger"
	"github.com/avelichko/postline/internal/pkg/pagecache"
	"github.com/avelichko/postline/internal/seed"
)

// loginPath is where unauthenticated requests to protected endpoints are
// redirected, with the original URL in the next parameter.
const loginPath = "/api/v1/auth/login"

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	PostService       appServices.PostService
	GroupService      appServices.GroupService
	ProfileService    appServices.ProfileService
	AuthController    *appControllers.AuthController
	PostController    *appControllers.PostController
	GroupController   *appControllers.GroupController
	ProfileController *appControllers.ProfileController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	FileStorage       *filestorage.LocalStorage
	RedisClient       *redis.Client
	PageCache         *pagecache.Cache
	Logger            zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations, and
// seeds default data.
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

	if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
		// Not fatal; the app works without the default group
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupPageCache connects to Redis and builds the page cache. Returns nils
// when caching is disabled in the configuration.
func SetupPageCache(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, *pagecache.Cache, error) {
	if !cfg.Cache.Enabled {
		lgr.Info().Msg("Page cache disabled")
		return nil, nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Cache.Addr).Msg("Failed to connect to Redis")
		return nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}

	cache := pagecache.New(client, cfg.Cache.KeyPrefix, cfg.CacheTTL())
	lgr.Info().Str("addr", cfg.Cache.Addr).Dur("ttl", cache.TTL()).Msg("Page cache enabled")
	return client, cache, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client, pageCache *pagecache.Cache, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:      lgr,
		RedisClient: redisClient,
		PageCache:   pageCache,
	}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The base URL must match the static file serving endpoint
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads"
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.PostService = appServices.NewPostService(
		deps.Repos.PostRepository,
		deps.Repos.CommentRepository,
		deps.Repos.GroupRepository,
		deps.FileStorage,
	)
	deps.GroupService = appServices.NewGroupService(
		deps.Repos.GroupRepository,
		deps.Repos.PostRepository,
	)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.UserRepository,
		deps.Repos.PostRepository,
		deps.Repos.FollowRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, loginPath)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.PostController = appControllers.NewPostController(deps.PostService, lgr)
	deps.GroupController = appControllers.NewGroupController(deps.GroupService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, lgr)

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

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	// Uploaded post images are served directly from local storage
	router.Static("/uploads", cfg.Server.StoragePath)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.PostController,
		deps.GroupController,
		deps.ProfileController,
		deps.AuthMiddleware,
		deps.PageCache,
	)

	return router
}
