package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aramroll/aramroll/internal/api"
	"github.com/aramroll/aramroll/internal/factory"
	redisstorage "github.com/aramroll/aramroll/internal/storage/redis"
)

const (
	// presenceMaxIdle is how long a participant can go without a heartbeat
	// before the sweeper drops them from the roster
	presenceMaxIdle = 5 * time.Minute
	// presenceSweepInterval is how often the sweeper scans active rooms
	presenceSweepInterval = time.Minute
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}
	if locale := os.Getenv("CATALOG_LOCALE"); locale != "" {
		cfg.CatalogConfig.Locale = locale
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the champion catalog. A failed load is not fatal: room creation
	// and rolls report the catalog as unavailable until a retry succeeds.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.CatalogService.Load(ctx); err != nil {
		logger.Warn("could not load champion catalog", slog.String("error", err.Error()))
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		RoomController: app.RoomController,
		CatalogService: app.CatalogService,
		HubManager:     app.HubManager,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			serverConfig.Port = p
		}
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Sweep stale roster entries in rooms that have watchers. Redis-backed
	// deployments mostly rely on key expiry; this covers the memory backend
	// and keeps the roster index tidy either way.
	go func() {
		ticker := time.NewTicker(presenceSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				for _, roomID := range app.HubManager.ActiveRooms() {
					if _, err := app.RoomController.SweepInactive(ctx, roomID, presenceMaxIdle); err != nil {
						logger.Warn("presence sweep failed",
							slog.String("room", string(roomID)),
							slog.String("error", err.Error()))
					}
				}
				app.HubManager.CleanupEmptyHubs()
			case <-ctx.Done():
				return
			}
		}
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
