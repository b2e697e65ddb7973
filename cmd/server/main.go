package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	// internal imports
	"github.com/elecmate/cvbuilder/api/http"
	"github.com/elecmate/cvbuilder/api/http/handlers"
	"github.com/elecmate/cvbuilder/pkg/auth"
	"github.com/elecmate/cvbuilder/pkg/cache"
	"github.com/elecmate/cvbuilder/pkg/config"
	"github.com/elecmate/cvbuilder/pkg/cv"
	"github.com/elecmate/cvbuilder/pkg/cvsync"
	"github.com/elecmate/cvbuilder/pkg/elecid"
	"github.com/elecmate/cvbuilder/pkg/health"
	"github.com/elecmate/cvbuilder/pkg/health/checkers"
	"github.com/elecmate/cvbuilder/pkg/repository/memory"
	pgrepo "github.com/elecmate/cvbuilder/pkg/repository/postgres"
	"github.com/elecmate/cvbuilder/pkg/security/jwt"
	"github.com/elecmate/cvbuilder/pkg/storage/postgres"
	"github.com/elecmate/cvbuilder/pkg/storage/redis"
)

func main() {
	// Load configuration from CONFIG_PATH, env and .env
	cfg, err := config.Load()
	if err != nil {
		fatal(slog.Default(), "load config", err)
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)
	ctx := context.Background()

	var (
		users    auth.UserRepository
		cvRepo   cv.Repository
		profiles elecid.Repository
		probes   []health.Checker
	)
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL is not set, data is kept in process memory")
		users = memory.NewUserRepository()
		cvRepo = memory.NewCVRepository()
		profiles = memory.NewElecIDRepository()
	} else {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, postgres.Options{MaxConns: int32(cfg.DBMaxConns)})
		if err != nil {
			fatal(log, "postgres connect", err)
		}
		defer pool.Close()
		if cfg.MigrateOnStart {
			if err := postgres.Migrate(ctx, pool); err != nil {
				fatal(log, "postgres migrate", err)
			}
		}
		users = pgrepo.NewUserRepository(pool)
		cvRepo = pgrepo.NewCVRepository(pool)
		profiles = pgrepo.NewElecIDRepository(pool)
		probes = append(probes, checkers.NewPostgresChecker(pool))
	}

	events := cv.NewNotifier()
	// reads for the CRUD API go through the cache, sync always reads fresh rows
	cvReads := cvRepo
	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			fatal(log, "redis connect", err)
		}
		defer client.Close()
		cached := cache.NewCVRepository(cvRepo, cache.NewRedisStore(client), cfg.CacheTTL, log)
		events.Subscribe(cached.Invalidate)
		cvReads = cached
		probes = append(probes, checkers.NewRedisChecker(client))
	}
	events.Subscribe(func(ctx context.Context, e cv.Event) {
		log.InfoContext(ctx, "cv changed", "kind", string(e.Kind), "cv_id", e.CVID, "user_id", e.UserID)
	})

	// Token generator
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authMW := jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)

	cvUC := cv.NewService(cvReads, events)
	elecUC := elecid.NewService(profiles)
	source := elecid.NewSource(profiles, auth.NewDirectory(users))
	syncUC := cvsync.NewService(cvRepo, source, events, log)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	http.Register(app, http.Handlers{
		Auth:   handlers.NewAuthHandler(auth.NewAuthService(users, jwtGen)),
		Health: handlers.NewHealthHandler(health.NewService(probes...)),
		CV:     handlers.NewCVHandler(cvUC),
		ElecID: handlers.NewElecIDHandler(elecUC),
		Sync:   handlers.NewSyncHandler(syncUC),
	}, authMW)

	// Start server
	log.Info("HTTP server listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		fatal(log, "server stopped", err)
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "err", err)
	os.Exit(1)
}
