package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort        int    `mapstructure:"APP_PORT"`
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	GatewayURL     string `mapstructure:"GATEWAY_URL"`
	GatewayAPIKey  string `mapstructure:"GATEWAY_API_KEY"`
	UserTimezone   string `mapstructure:"USER_TIMEZONE"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
}

// Storage backend identifiers accepted in STORAGE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("STORAGE_BACKEND", BackendSQLite)
	viper.SetDefault("DATABASE_PATH", "/data/questforge.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions")
	viper.SetDefault("GATEWAY_API_KEY", "")
	viper.SetDefault("USER_TIMEZONE", "UTC")
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.StorageBackend != BackendSQLite && cfg.StorageBackend != BackendRedis {
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	return &cfg, nil
}

// Location resolves the configured user timezone. Streaks and XP awards
// stamp calendar dates in this zone, not in server-local time.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.UserTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid USER_TIMEZONE %q: %w", c.UserTimezone, err)
	}
	return loc, nil
}
