// Package main is the entry point of the Solana Pay toolkit API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"solpay/internal/config"
	"solpay/internal/handlers"
	"solpay/internal/logger"
	"solpay/internal/repositories"
	"solpay/internal/repositories/cache"
	"solpay/internal/routes"
	"solpay/internal/services/generator"
	"solpay/internal/services/history"
	"solpay/internal/services/onchain"
	"solpay/internal/services/paylink"
	"solpay/internal/services/qr"
	"solpay/internal/services/simulator"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	defaultNetwork, err := onchain.ParseNetwork(cfg.DefaultNetwork)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DEFAULT_NETWORK")
	}

	db, err := repositories.OpenHistoryDB(cfg.HistoryDriver, cfg.HistoryDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.HistoryDriver).Msg("failed to open history database")
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.Warn().Err(err).Msg("failed to close history database")
		}
	}()

	checks := map[string]handlers.HealthCheck{"history": pingDB(db)}
	store := newLinkStore(cfg, log, checks)
	checks["links"] = func(ctx context.Context) error {
		_, err := store.Len(ctx)
		return err
	}

	connections := onchain.NewConnections(cfg.RPCURLs)
	qrSvc := qr.NewService(qr.DefaultConfig())
	historySvc := history.NewService(repositories.NewHistoryRepository(db), nil, log)

	app := fiber.New(fiber.Config{
		AppName:               "solpay",
		DisableStartupMessage: cfg.IsProduction(),
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,DELETE,HEAD",
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Links:             paylink.NewService(store, cfg.AppURL, log),
		OnChain:           onchain.NewService(connections, log),
		Generator:         generator.NewService(qrSvc, historySvc, log),
		Simulator:         simulator.NewService(simulator.FromConnections(connections), defaultNetwork, log),
		History:           historySvc,
		QR:                qrSvc,
		DefaultNetwork:    defaultNetwork,
		OnChainTimeout:    cfg.OnChainTimeout,
		ValidateRateLimit: cfg.ValidateRateLimit,
		WatcherJWTSecret:  cfg.WatcherJWTSecret,
		HealthChecks:      checks,
		Log:               log,
	})

	if cfg.WatcherJWTSecret == "" {
		log.Warn().Msg("WATCHER_JWT_SECRET is empty; payment confirmations are disabled")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("network", string(defaultNetwork)).
		Str("link_store", cfg.LinkStore).
		Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

// newLinkStore picks the payment-link store named by LINK_STORE. The redis
// store registers its own health check.
func newLinkStore(cfg *config.Config, log zerolog.Logger, checks map[string]handlers.HealthCheck) paylink.Store {
	storeCfg := paylink.StoreConfig{TTL: cfg.LinkTTL, Capacity: cfg.LinkCapacity}

	switch cfg.LinkStore {
	case "redis":
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cache.HealthCheck(ctx, client); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		log.Info().Str("addr", cfg.Redis.Host+":"+cfg.Redis.Port).Msg("connected to redis")

		checks["redis"] = func(ctx context.Context) error { return cache.HealthCheck(ctx, client) }
		return cache.NewRedisStore(client, storeCfg, nil)
	case "memory", "":
		return paylink.NewMemoryStore(storeCfg, nil)
	default:
		log.Fatal().Str("link_store", cfg.LinkStore).Msg("LINK_STORE must be memory or redis")
		return nil
	}
}

func pingDB(db *gorm.DB) handlers.HealthCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
