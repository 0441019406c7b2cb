package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Oracle backends
const (
	OracleChat       = "chat"
	OracleDictionary = "dictionary"
)

// Config is the server configuration, read from the environment
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Storage StorageConfig
	Oracle  OracleConfig
	Game    GameConfig
	Logging LoggingConfig
	Sentry  SentryConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type StorageConfig struct {
	Type     string
	RedisURL string
	RoundTTL time.Duration
}

type OracleConfig struct {
	Type           string
	APIKey         string
	BaseURL        string
	Model          string
	Timeout        time.Duration
	CacheSize      int
	DictionaryPath string
}

type GameConfig struct {
	StartingLives int
	MaxAIAttempts int
	AIThinkDelay  time.Duration
	AIRetryDelay  time.Duration
}

type LoggingConfig struct {
	Level string
}

type SentryConfig struct {
	DSN         string
	Environment string
}

// Load reads the configuration. Variables from a .env file in the working
// directory are applied first; real environment variables win over them.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from environment variables only
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server:  loadServerConfig(),
		CORS:    loadCORSConfig(),
		Storage: loadStorageConfig(),
		Oracle:  loadOracleConfig(),
		Game:    loadGameConfig(),
		Logging: loadLoggingConfig(),
		Sentry:  loadSentryConfig(),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnvString("HOST", ""),
		Port:            getEnvInt("PORT", 8080),
		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 90*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func loadCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: getEnvStringSlice("ALLOWED_ORIGINS", []string{"*"}),
	}
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Type:     getEnvString("STORAGE_TYPE", StorageMemory),
		RedisURL: getEnvString("REDIS_URL", ""),
		RoundTTL: getEnvDuration("ROUND_TTL", 2*time.Hour),
	}
}

func loadOracleConfig() OracleConfig {
	return OracleConfig{
		Type:           getEnvString("ORACLE_TYPE", OracleChat),
		APIKey:         getEnvString("OPENAI_API_KEY", ""),
		BaseURL:        getEnvString("OPENAI_BASE_URL", ""),
		Model:          getEnvString("OPENAI_MODEL", "gpt-3.5-turbo"),
		Timeout:        getEnvDuration("ORACLE_TIMEOUT", 15*time.Second),
		CacheSize:      getEnvInt("ORACLE_CACHE_SIZE", 1024),
		DictionaryPath: getEnvString("DICTIONARY_PATH", "data/words.txt"),
	}
}

func loadGameConfig() GameConfig {
	return GameConfig{
		StartingLives: getEnvInt("STARTING_LIVES", 5),
		MaxAIAttempts: getEnvInt("AI_MAX_ATTEMPTS", 2),
		AIThinkDelay:  getEnvDuration("AI_THINK_DELAY", 2*time.Second),
		AIRetryDelay:  getEnvDuration("AI_RETRY_DELAY", 2*time.Second),
	}
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level: getEnvString("LOG_LEVEL", "info"),
	}
}

func loadSentryConfig() SentryConfig {
	return SentryConfig{
		DSN:         getEnvString("SENTRY_DSN", ""),
		Environment: getEnvString("SENTRY_ENVIRONMENT", "development"),
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", cfg.Server.Port)
	}

	switch cfg.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if cfg.Storage.RedisURL == "" {
			return errors.New("REDIS_URL is required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be %q or %q", cfg.Storage.Type, StorageMemory, StorageRedis)
	}

	switch cfg.Oracle.Type {
	case OracleChat:
		if cfg.Oracle.APIKey == "" {
			return errors.New("OPENAI_API_KEY is required when ORACLE_TYPE=chat")
		}
	case OracleDictionary:
		if cfg.Oracle.DictionaryPath == "" {
			return errors.New("DICTIONARY_PATH is required when ORACLE_TYPE=dictionary")
		}
	default:
		return fmt.Errorf("invalid ORACLE_TYPE %q: must be %q or %q", cfg.Oracle.Type, OracleChat, OracleDictionary)
	}

	if cfg.Oracle.CacheSize < 0 {
		return fmt.Errorf("invalid ORACLE_CACHE_SIZE: %d", cfg.Oracle.CacheSize)
	}
	if cfg.Game.StartingLives < 1 {
		return fmt.Errorf("invalid STARTING_LIVES: %d", cfg.Game.StartingLives)
	}
	if cfg.Game.MaxAIAttempts < 1 {
		return fmt.Errorf("invalid AI_MAX_ATTEMPTS: %d", cfg.Game.MaxAIAttempts)
	}
	if cfg.Game.AIThinkDelay < 0 || cfg.Game.AIRetryDelay < 0 {
		return errors.New("AI delays must not be negative")
	}

	return nil
}
