package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/wordchain/internal/api/handler"
	"github.com/mcoot/wordchain/internal/api/sse"
	"github.com/mcoot/wordchain/internal/dependencies/clock"
	"github.com/mcoot/wordchain/internal/dependencies/random"
	"github.com/mcoot/wordchain/internal/services/dictionary"
	"github.com/mcoot/wordchain/internal/services/oracle"
	"github.com/mcoot/wordchain/internal/services/round"
	"github.com/mcoot/wordchain/internal/storage"
	"github.com/mcoot/wordchain/internal/storage/memory"
	redisstorage "github.com/mcoot/wordchain/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Oracle type constants
const (
	OracleTypeChat       = "chat"
	OracleTypeDictionary = "dictionary"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageType string

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	Oracle            oracle.Oracle
	OracleType        string
	RoundController   *round.Controller
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// OracleType selects the word oracle ("chat" or "dictionary")
	// If empty, defaults to "dictionary"
	OracleType string
	// ChatConfig configures the chat oracle (required if OracleType is "chat")
	ChatConfig oracle.ChatConfig
	// OracleCacheSize is the number of positive verdicts to cache (0 disables)
	OracleCacheSize int
	// DictionaryPath is the word list file. If empty the dictionary is loaded
	// from storage, if present there.
	DictionaryPath string
	// RoundConfig holds the game rules (optional)
	// If zero value, defaults to round.DefaultConfig()
	RoundConfig round.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	var closers []io.Closer
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
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	oracleType := cfg.OracleType
	if oracleType == "" {
		oracleType = OracleTypeDictionary
	}

	dictService := dictionary.New(store, logger)
	if oracleType == OracleTypeDictionary || cfg.DictionaryPath != "" {
		if err := loadDictionary(context.Background(), dictService, cfg.DictionaryPath); err != nil {
			logger.Warn("could not load dictionary", slog.String("error", err.Error()))
		}
	}

	var wordOracle oracle.Oracle
	switch oracleType {
	case OracleTypeChat:
		if cfg.ChatConfig.APIKey == "" {
			return nil, errors.New("ChatConfig.APIKey required when OracleType is chat")
		}
		wordOracle = oracle.NewChatOracle(cfg.ChatConfig, logger)
	case OracleTypeDictionary:
		if !dictService.IsLoaded() {
			return nil, fmt.Errorf("dictionary oracle: %w", dictionary.ErrDictionaryNotLoaded)
		}
		wordOracle = oracle.NewDictionaryOracle(dictService, rnd, logger)
	default:
		return nil, errors.New("invalid OracleType: must be 'chat' or 'dictionary'")
	}

	if cfg.OracleCacheSize > 0 {
		cached, err := oracle.NewCachedOracle(wordOracle, cfg.OracleCacheSize, logger)
		if err != nil {
			return nil, err
		}
		wordOracle = cached
	}

	roundCfg := cfg.RoundConfig
	if roundCfg.MaxAIAttempts == 0 {
		roundCfg = round.DefaultConfig()
	}

	app := newWithDependencies(store, dictService, wordOracle, clk, rnd, roundCfg, logger)
	app.StorageType = storageType
	app.OracleType = oracleType
	app.closers = closers
	return app, nil
}

func loadDictionary(ctx context.Context, dict *dictionary.Service, path string) error {
	if path != "" {
		return dict.LoadFromFile(ctx, path)
	}
	return dict.LoadFromStorage(ctx)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	dictService *dictionary.Service,
	wordOracle oracle.Oracle,
	clk clock.Clock,
	rnd random.Random,
	roundCfg round.Config,
	logger *slog.Logger,
) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	roundController := round.NewController(store, wordOracle, broadcaster, clk, rnd, roundCfg, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		Oracle:            wordOracle,
		RoundController:   roundController,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
	}
}

// HealthHandler returns a health handler reporting this app's backends
func (a *App) HealthHandler(logger *slog.Logger) *handler.HealthHandler {
	var pinger handler.Pinger
	if p, ok := a.Storage.(handler.Pinger); ok {
		pinger = p
	}
	return handler.NewHealthHandler(a.StorageType, a.OracleType, pinger, logger)
}

// Close disconnects SSE clients and releases storage connections
func (a *App) Close() error {
	a.HubManager.CloseAll()

	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
