package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Schedule store.
	StoreDriver    string `mapstructure:"STORE_DRIVER"` // "mongo" or "memory"
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`
	StoreTimeoutMs int    `mapstructure:"STORE_TIMEOUT_MS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Per-day locking.
	LockDriver string `mapstructure:"LOCK_DRIVER"` // "redis" or "local"
	LockTTLMs  int    `mapstructure:"LOCK_TTL_MS"`
	LockWaitMs int    `mapstructure:"LOCK_WAIT_MS"`

	// Scheduling.
	RecurrenceHorizonDays int    `mapstructure:"RECURRENCE_HORIZON_DAYS"`
	Timezone              string `mapstructure:"TIMEZONE"`

	// Appointment event worker.
	WorkerConcurrency int `mapstructure:"WORKER_CONCURRENCY"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "scheduling")
	v.SetDefault("STORE_TIMEOUT_MS", 5000)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_LOCK_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("LOCK_DRIVER", "redis")
	v.SetDefault("LOCK_TTL_MS", 10000)
	v.SetDefault("LOCK_WAIT_MS", 3000)
	v.SetDefault("RECURRENCE_HORIZON_DAYS", 365)
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("WORKER_CONCURRENCY", 10)
}

// Load reads .env (if present), config.yaml (if present) and the environment.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig or exits.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// StoreTimeout bounds every schedule store call.
func (c Config) StoreTimeout() time.Duration {
	return time.Duration(c.StoreTimeoutMs) * time.Millisecond
}

func (c Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLMs) * time.Millisecond
}

func (c Config) LockWait() time.Duration {
	return time.Duration(c.LockWaitMs) * time.Millisecond
}

// Location resolves TIMEZONE, falling back to UTC for unknown zones.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}
