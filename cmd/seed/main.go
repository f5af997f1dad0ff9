package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/navmark/navmark/config"
	"github.com/navmark/navmark/internal/domain/entity"
	repo "github.com/navmark/navmark/internal/domain/repository"
	"github.com/navmark/navmark/internal/infrastructure/postgres"
	"github.com/navmark/navmark/pkg/helpers"
)

// seed creates the initial admin account if it does not exist. Credentials
// come from SEED_ADMIN_USERNAME / SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	username := getenv("SEED_ADMIN_USERNAME", "admin")
	email := getenv("SEED_ADMIN_EMAIL", "admin@example.com")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		logger.Fatal("SEED_ADMIN_PASSWORD is required")
	}
	if ok, reason := helpers.ValidatePassword(password); !ok {
		logger.Fatal(reason)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), 1, 0, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("connecting to postgres failed")
	}
	defer pool.Close()

	if err := postgres.NewBootstrap(pool, logger).EnsureTables(ctx); err != nil {
		logger.WithError(err).Fatal("ensuring tables failed")
	}

	users := postgres.NewUserRepository(pool)
	if _, err := users.GetByUsername(ctx, username); err == nil {
		logger.WithField("username", username).Info("admin account already exists")
		return
	} else if !errors.Is(err, repo.ErrNotFound) {
		logger.WithError(err).Fatal("looking up admin account failed")
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		logger.WithError(err).Fatal("hashing password failed")
	}

	u := &entity.User{
		Username:      username,
		Email:         email,
		Password:      hash,
		Role:          "admin",
		BookmarkLimit: 99,
		SiteName:      "My Navigation",
		SiteDesc:      "Personal bookmark collection",
		BgMode:        "gradient",
		BgColor:       "#667eea",
		ParticleStyle: "stars",
		ParticleColor: "#ffffff",
		CardColor:     "#ffffff",
		CardOpacity:   85,
		CardTextColor: "#333333",
	}
	if err := users.Create(ctx, u); err != nil {
		logger.WithError(err).Fatal("creating admin account failed")
	}
	logger.WithField("username", username).Info("admin account created")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
