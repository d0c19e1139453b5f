package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-api/internal/repository"
	"github.com/noah-isme/escola-api/internal/service"
	"github.com/noah-isme/escola-api/pkg/cache"
	"github.com/noah-isme/escola-api/pkg/config"
	"github.com/noah-isme/escola-api/pkg/database"
)

// App is the assembled API: connections, services and router.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *sqlx.DB
	Redis    *redis.Client
	Services *Services
	Router   *gin.Engine
}

// New opens the database (migrating it when DB_AUTO_MIGRATE is set),
// connects to Redis when enabled and wires the HTTP router.
func New(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return NewWithDB(cfg, logr, db)
}

// NewWithDB wires the App on an already opened database.
func NewWithDB(cfg *config.Config, logr *zap.Logger, db *sqlx.DB) (*App, error) {
	if logr == nil {
		logr = zap.NewNop()
	}

	var cacheRepo service.CacheRepository
	client, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// the summary still works uncached
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	}
	if client != nil {
		cacheRepo = repository.NewCacheRepository(client, logr)
	}

	svc := NewServices(cfg, db, cacheRepo, logr)
	return &App{
		Config:   cfg,
		Logger:   logr,
		DB:       db,
		Redis:    client,
		Services: svc,
		Router:   NewRouter(cfg, logr, svc, db),
	}, nil
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
