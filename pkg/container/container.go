package container

import (
	"context"
	"fmt"
	"time"

	"catalog-backend/internal/config"
	authorHandler "catalog-backend/internal/domains/author/handler"
	authorRepo "catalog-backend/internal/domains/author/repository"
	authorService "catalog-backend/internal/domains/author/service"
	bookHandler "catalog-backend/internal/domains/book/handler"
	bookRepo "catalog-backend/internal/domains/book/repository"
	bookService "catalog-backend/internal/domains/book/service"
	userHandler "catalog-backend/internal/domains/user/handler"
	userRepo "catalog-backend/internal/domains/user/repository"
	userService "catalog-backend/internal/domains/user/service"
	infraCache "catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/internal/infrastructure/memstore"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/jwt"
	"catalog-backend/pkg/logger"

	"github.com/rs/zerolog/log"
)

// Container holds the application dependency graph.
// Build order: config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB // nil with the memory driver
	Memory     *memstore.Store      // nil with the postgres driver
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface
	UserRepo   userRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface
	AuthService   userService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.Handler
	BookHandler   *bookHandler.Handler
	AuthHandler   *userHandler.AuthHandler
}

// NewContainer loads configuration from the environment and builds the graph.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return New(ctx, cfg)
}

// New builds the graph for an already loaded configuration.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	log.Info().
		Str("env", cfg.App.Environment).
		Str("store", cfg.Store.Driver).
		Bool("redis", cfg.Redis.Enabled).
		Msg("🔧 Initializing DI Container")

	c := &Container{
		Config:     cfg,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.AccessTokenTTL()),
	}

	if err := c.initStore(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}
	c.initCache(ctx)
	c.initServices()
	c.initHandlers()

	if err := c.seedUser(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// initStore opens the configured store driver and wires its repositories.
func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.Store.Driver {
	case config.StoreDriverMemory:
		c.Memory = memstore.New()
		c.AuthorRepo = c.Memory.Authors()
		c.BookRepo = c.Memory.Books()
		c.UserRepo = c.Memory.Users()
		log.Info().Msg("✅ In-memory store ready")
		return nil

	case config.StoreDriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db

		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}

		c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool)
		c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)
		c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
		log.Info().Msg("✅ Database connected")
		return nil

	default:
		return fmt.Errorf("unknown store driver %q", c.Config.Store.Driver)
	}
}

// initCache connects Redis when enabled. A Redis failure is not fatal: the
// service falls back to no caching.
func (c *Container) initCache(ctx context.Context) {
	c.Cache = cache.NewNoop()
	if !c.Config.Redis.Enabled {
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), caching disabled")
		_ = rc.Close()
		return
	}
	c.Cache = rc
	log.Info().Str("host", c.Config.Redis.Host).Msg("✅ Redis connected")
}

func (c *Container) initServices() {
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.Cache, c.Config.Redis.TTL, time.Now)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo, c.Cache)
	c.AuthService = userService.NewAuthService(c.UserRepo, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.AuthorHandler = authorHandler.NewHandler(c.AuthorService)
	c.AuthHandler = userHandler.NewAuthHandler(c.AuthService)
}

func (c *Container) seedUser(ctx context.Context) error {
	if c.Config.Auth.SeedUsername == "" {
		return nil
	}
	if err := c.AuthService.EnsureUser(ctx, c.Config.Auth.SeedUsername, c.Config.Auth.SeedPassword); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}
	return nil
}

// Health reports the status of each backing component. Failures are logged;
// the returned map only carries "ok", "disabled" or "unavailable".
func (c *Container) Health(ctx context.Context) map[string]string {
	status := map[string]string{"store": "ok", "cache": "disabled"}

	if c.DB != nil {
		if err := c.DB.HealthCheck(ctx); err != nil {
			log.Error().Err(err).Msg("[HEALTH] store check failed")
			status["store"] = "unavailable"
		}
	}
	if _, ok := c.Cache.(*infraCache.RedisCache); ok {
		status["cache"] = "ok"
		if err := c.Cache.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("[HEALTH] cache check failed")
			status["cache"] = "unavailable"
		}
	} else if c.Config.Redis.Enabled {
		status["cache"] = "unavailable"
	}
	return status
}

// Cleanup releases connections on shutdown.
func (c *Container) Cleanup() {
	logger.Info("🧹 Cleaning up container resources", map[string]interface{}{
		"store": c.Config.Store.Driver,
	})

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
}
