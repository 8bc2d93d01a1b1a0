package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joho/godotenv"
)

var (
	configOnce  sync.Once
	configValue *Config
)

// Load 는 환경 변수 기반 설정을 로드한다.
func Load() *Config {
	configOnce.Do(func() {
		_ = godotenv.Load()
		configValue = buildConfig()
	})
	return configValue
}

// ProvideConfig 는 설정을 로드하고 검증한다.
func ProvideConfig() (*Config, error) {
	cfg := Load()
	if cfg == nil {
		return nil, errors.New("config not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 는 설정 유효성을 검사한다.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTP.Port)
	}
	if c.Upload.MaxFileSizeMB <= 0 {
		return fmt.Errorf("invalid upload max file size: %d", c.Upload.MaxFileSizeMB)
	}
	if c.DatasetStore.Required && !c.DatasetStore.Enabled {
		return errors.New("dataset store required but disabled")
	}
	return nil
}

// LogEnvStatus 는 환경 설정 상태를 로그로 남긴다.
func LogEnvStatus(cfg *Config, logger *slog.Logger) {
	if logger == nil || cfg == nil {
		return
	}

	envFilePresent := fileExists(".env")
	logger.Debug(
		"env_status",
		"env_file", envFilePresent,
		"api_key", maskSecret(cfg.HTTPAuth.APIKey),
		"lexicon_dir", cfg.Analysis.LexiconDir,
		"dataset_ttl", cfg.Dataset.TTLMinutes,
		"dataset_store_url", cfg.DatasetStore.URL,
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.Name,
		"upload_max_mb", cfg.Upload.MaxFileSizeMB,
	)
}

func buildConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			LexiconDir:      getEnvString("LEXICON_DIR", ""),
			CacheMaxSize:    getEnvInt("ANALYSIS_CACHE_SIZE", 10000),
			CacheTTLSeconds: getEnvInt("ANALYSIS_CACHE_TTL", 3600),
		},
		Dataset: DatasetConfig{
			MaxDatasets: getEnvInt("MAX_DATASETS", 50),
			TTLMinutes:  getEnvInt("DATASET_TTL_MINUTES", 1440),
		},
		DatasetStore: DatasetStoreConfig{
			URL:                 getEnvString("DATASET_STORE_URL", "redis://localhost:6379"),
			Enabled:             getEnvBool("DATASET_STORE_ENABLED", false),
			Required:            getEnvBool("DATASET_STORE_REQUIRED", false),
			DisableCache:        getEnvBool("DATASET_STORE_DISABLE_CACHE", false),
			ConnectMaxAttempts:  max(1, getEnvNonNegativeInt("DATASET_STORE_CONNECT_MAX_ATTEMPTS", 6)),
			ConnectRetrySeconds: getEnvNonNegativeInt("DATASET_STORE_CONNECT_RETRY_SECONDS", 5),
		},
		Upload: UploadConfig{
			MaxFileSizeMB: getEnvInt("UPLOAD_MAX_FILE_SIZE_MB", 20),
			MaxFiles:      max(1, getEnvNonNegativeInt("UPLOAD_MAX_FILES", 10)),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			LogDir:     getEnvString("LOG_DIR", ""),
			MaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 1),
			MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 30),
			MaxAgeDays: getEnvInt("LOG_FILE_MAX_AGE_DAYS", 7),
			Compress:   getEnvBool("LOG_FILE_COMPRESS", true),
		},
		HTTP: HTTPConfig{
			Host:         getEnvString("HTTP_HOST", "127.0.0.1"),
			Port:         getEnvInt("HTTP_PORT", 40613),
			HTTP2Enabled: getEnvBool("HTTP2_ENABLED", true),
		},
		HTTPAuth: HTTPAuthConfig{
			APIKey: getEnvString("HTTP_API_KEY", ""),
		},
		HTTPRateLimit: HTTPRateLimitConfig{
			RequestsPerMinute: getEnvNonNegativeInt("HTTP_RATE_LIMIT_RPM", 0),
			CacheSize:         max(1, getEnvNonNegativeInt("HTTP_RATE_LIMIT_CACHE_SIZE", 10000)),
			CacheTTLSeconds:   max(1, getEnvNonNegativeInt("HTTP_RATE_LIMIT_CACHE_TTL_SECONDS", 120)),
		},
		Database: DatabaseConfig{
			Host:                            getEnvString("DB_HOST", "localhost"),
			Port:                            getEnvInt("DB_PORT", 5432),
			Name:                            getEnvString("DB_NAME", "comment_insight"),
			User:                            getEnvString("DB_USER", "comment_insight"),
			Password:                        getEnvString("DB_PASSWORD", ""),
			MinPool:                         getEnvInt("DB_MIN_POOL", 1),
			MaxPool:                         getEnvInt("DB_MAX_POOL", 5),
			ConnMaxLifetimeMinutes:          getEnvNonNegativeInt("DB_CONN_MAX_LIFETIME_MINUTES", 60),
			ConnMaxIdleTimeMinutes:          getEnvNonNegativeInt("DB_CONN_MAX_IDLE_TIME_MINUTES", 10),
			AuditBatchEnabled:               getEnvBool("DB_AUDIT_BATCH_ENABLED", false),
			AuditFlushIntervalSeconds:       max(1, getEnvNonNegativeInt("DB_AUDIT_FLUSH_INTERVAL_SECONDS", 5)),
			AuditFlushTimeoutSeconds:        max(1, getEnvNonNegativeInt("DB_AUDIT_FLUSH_TIMEOUT_SECONDS", 5)),
			AuditMaxPendingBatches:          max(1, getEnvNonNegativeInt("DB_AUDIT_MAX_PENDING_BATCHES", 50)),
			AuditMaxBackoffSeconds:          max(1, getEnvNonNegativeInt("DB_AUDIT_MAX_BACKOFF_SECONDS", 60)),
			AuditErrorLogMaxIntervalSeconds: getEnvNonNegativeInt("DB_AUDIT_ERROR_LOG_MAX_INTERVAL_SECONDS", 60),
		},
	}
}
