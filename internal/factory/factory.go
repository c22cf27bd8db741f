package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/aramroll/aramroll/internal/dependencies/clock"
	"github.com/aramroll/aramroll/internal/dependencies/random"
	"github.com/aramroll/aramroll/internal/services/catalog"
	"github.com/aramroll/aramroll/internal/services/room"
	"github.com/aramroll/aramroll/internal/sse"
	"github.com/aramroll/aramroll/internal/storage"
	"github.com/aramroll/aramroll/internal/storage/memory"
	redisstorage "github.com/aramroll/aramroll/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.RoomStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CatalogService *catalog.Service
	RoomController *room.Controller
	HubManager     *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// CatalogConfig holds Data Dragon settings (optional)
	// If zero value, defaults to catalog.DefaultConfig()
	CatalogConfig catalog.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.RoomStore
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	catalogCfg := cfg.CatalogConfig
	if catalogCfg.BaseURL == "" {
		catalogCfg = catalog.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, catalogCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.RoomStore, clk clock.Clock, rnd random.Random, catalogCfg catalog.Config, logger *slog.Logger) *App {
	// Create services
	catalogService := catalog.New(catalogCfg, rnd, logger)
	roomController := room.NewController(store, catalogService, clk, rnd, logger)
	hubManager := sse.NewHubManager(logger)

	return &App{
		Store:          store,
		Clock:          clk,
		Random:         rnd,
		CatalogService: catalogService,
		RoomController: roomController,
		HubManager:     hubManager,
	}
}
