package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/wordchain/internal/api"
	"github.com/mcoot/wordchain/internal/config"
	"github.com/mcoot/wordchain/internal/factory"
	"github.com/mcoot/wordchain/internal/logging"
	"github.com/mcoot/wordchain/internal/services/oracle"
	"github.com/mcoot/wordchain/internal/services/round"
	redisstorage "github.com/mcoot/wordchain/internal/storage/redis"
	"github.com/mcoot/wordchain/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := logging.New(os.Stdout, cfg.Logging.Level)
	slog.SetDefault(logger)

	sentryEnabled := cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := logging.InitSentry(logging.SentryConfig{
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Error("failed to initialise sentry", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer logging.FlushSentry(2 * time.Second)
	}

	app, err := factory.New(factoryConfig(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("error closing application", slog.String("error", err.Error()))
		}
	}()

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		RoundController: app.RoundController,
		HubManager:      app.HubManager,
		HealthHandler:   app.HealthHandler(logger),
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		EnableSentry:    sentryEnabled,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:          logger,
		RoundController: app.RoundController,
		HubManager:      app.HubManager,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := api.NewServer(mux, api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     2 * time.Minute,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.HubManager.RunCleanup(ctx, time.Minute)

	logger.Info("starting server",
		slog.String("storage", app.StorageType),
		slog.String("oracle", app.OracleType),
	)
	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// factoryConfig maps the environment configuration onto the factory's
func factoryConfig(cfg *config.Config, logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:          logger,
		StorageType:     cfg.Storage.Type,
		OracleType:      cfg.Oracle.Type,
		OracleCacheSize: cfg.Oracle.CacheSize,
		DictionaryPath:  cfg.Oracle.DictionaryPath,
		RoundConfig: round.Config{
			StartingLives: cfg.Game.StartingLives,
			MaxAIAttempts: cfg.Game.MaxAIAttempts,
			AIThinkDelay:  cfg.Game.AIThinkDelay,
			AIRetryDelay:  cfg.Game.AIRetryDelay,
		},
	}

	if cfg.Storage.Type == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		redisCfg.RoundTTL = cfg.Storage.RoundTTL
		fc.RedisConfig = &redisCfg
	}

	if cfg.Oracle.Type == config.OracleChat {
		chatCfg := oracle.DefaultChatConfig()
		chatCfg.APIKey = cfg.Oracle.APIKey
		chatCfg.BaseURL = cfg.Oracle.BaseURL
		chatCfg.Model = cfg.Oracle.Model
		chatCfg.Timeout = cfg.Oracle.Timeout
		fc.ChatConfig = chatCfg
	}

	return fc
}
