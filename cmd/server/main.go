// Command server runs the survey backend HTTP API.
//
// Configuration comes from the environment (optionally seeded from a .env
// file). See internal/config for the full list of variables.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/cache"
	"github.com/tbourn/go-survey-backend/internal/config"
	"github.com/tbourn/go-survey-backend/internal/events"
	httpapi "github.com/tbourn/go-survey-backend/internal/http"
	"github.com/tbourn/go-survey-backend/internal/observability"
	"github.com/tbourn/go-survey-backend/internal/repo"
	"github.com/tbourn/go-survey-backend/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore(db)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	if err := httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:     db,
		Cache:  reportCache(ctx, cfg.Redis),
		Events: publisher(cfg.AMQP),
	}, cfg); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("base_path", cfg.APIBasePath).
			Str("driver", cfg.Store.Driver).
			Str("version", version).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

func openStore(ctx context.Context, cfg config.StoreConfig) (*gorm.DB, error) {
	db, err := repo.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := repo.AutoMigrate(db); err != nil {
		closeStore(db)
		return nil, err
	}
	if cfg.Seed {
		if err := repo.Seed(ctx, db); err != nil {
			closeStore(db)
			return nil, err
		}
	}
	return db, nil
}

func closeStore(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// reportCache prefers Redis when configured and reachable, and otherwise
// keeps cached reports in process memory.
func reportCache(ctx context.Context, cfg config.RedisConfig) cache.Cache {
	if cfg.Addr == "" {
		return cache.NewMemory()
	}
	client, err := cache.DialRedis(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, using in-memory report cache")
		return cache.NewMemory()
	}
	log.Info().Str("addr", cfg.Addr).Msg("report cache on redis")
	return cache.NewRedis(client, "survey")
}

func publisher(cfg config.AMQPConfig) events.Publisher {
	if cfg.URL == "" {
		return events.Nop{}
	}
	log.Info().Str("queue", cfg.Queue).Msg("publishing completion events")
	return events.NewAMQP(cfg.URL, cfg.Queue)
}
