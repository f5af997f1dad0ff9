// Package serverless exposes the API as a single http.HandlerFunc for
// function platforms. Cold starts initialize lazily and share one capped
// database connection across invocations of the same instance.
package serverless

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/config"
	"github.com/navmark/navmark/internal/app"
	"github.com/navmark/navmark/internal/infrastructure/postgres"
	"github.com/navmark/navmark/pkg/helpers"
)

var (
	once    sync.Once
	engine  *gin.Engine
	initErr error
)

func setup() {
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx := context.Background()

	// One connection per instance; the platform scales by instance count.
	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), 1, 0, cfg.DBMaxConnLife)
	if err != nil {
		initErr = err
		return
	}

	boot := postgres.NewBootstrap(pool, logger)
	if err := postgres.WithRetry(ctx, boot.EnsureTables); err != nil {
		initErr = err
		return
	}

	// go-redis dials lazily, so constructing the client is safe even when
	// Redis is not reachable at cold start.
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	engine = app.Build(app.Deps{
		Config: cfg,
		Logger: logger,
		DB:     postgres.NewGuard(pool, boot),
		Redis:  rdb,
	})
}

// Handler is the function entrypoint.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	if initErr != nil {
		http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
		return
	}
	engine.ServeHTTP(w, r)
}
