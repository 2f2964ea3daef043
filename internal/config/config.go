package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	EventsSinkRedis = "redis"
	EventsSinkKafka = "kafka"
	EventsSinkNone  = "none"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" env-default:"10"`
	StoreDriver string `env:"STORE_DRIVER" env-default:"postgres"`
	HTTPPort    string `env:"HTTP_PORT" env-default:"8080"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	// Redis Config
	RedisAddr string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPass string        `env:"REDIS_PASSWORD"`
	RedisDB   int           `env:"REDIS_DB" env-default:"0"`
	CacheTTL  time.Duration `env:"CACHE_TTL" env-default:"5m"`
	// CacheEnabled=false отключает Redis-кэш чтений
	CacheEnabled bool `env:"CACHE_ENABLED" env-default:"true"`

	// Auth Config
	JWTSecret   string   `env:"JWT_SECRET"`
	CORSOrigins []string `env:"CORS_ORIGINS" env-default:"*"`

	// Events Config
	EventsSink   string   `env:"EVENTS_SINK" env-default:"redis"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaTopic   string   `env:"KAFKA_TOPIC" env-default:"incident-events"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" env-default:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" env-default:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" env-default:"1s"`

	// Metrics Config
	MetricsSnapshotSchedule string `env:"METRICS_SNAPSHOT_SCHEDULE" env-default:"@every 1m"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL environment variable is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.EventsSink {
	case EventsSinkRedis, EventsSinkKafka, EventsSinkNone:
	default:
		return fmt.Errorf("unsupported EVENTS_SINK %q", c.EventsSink)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if c.WebhookMaxRetries < 1 {
		return errors.New("WEBHOOK_MAX_RETRIES must be positive")
	}
	return nil
}

// NeedsRedis - true, если Redis нужен кэшу или очереди событий
func (c *Config) NeedsRedis() bool {
	return c.CacheEnabled || c.EventsSink == EventsSinkRedis
}
