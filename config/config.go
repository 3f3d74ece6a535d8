package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Upstream booking sources.
	OrdersAPIBaseURL       string        `mapstructure:"ORDERS_API_BASE_URL"`
	HousekeepingAPIBaseURL string        `mapstructure:"HOUSEKEEPING_API_BASE_URL"`
	UpstreamTimeout        time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisSnapshotDB  int    `mapstructure:"REDIS_SNAPSHOT_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Snapshot cache behaviour.
	SnapshotTTL     time.Duration `mapstructure:"SNAPSHOT_TTL"`
	RefreshInterval time.Duration `mapstructure:"REFRESH_INTERVAL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ORDERS_API_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("HOUSEKEEPING_API_BASE_URL", "http://localhost:5001/api")
	viper.SetDefault("UPSTREAM_TIMEOUT", "10s")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SNAPSHOT_DB", 0)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 1)
	viper.SetDefault("SNAPSHOT_TTL", "5m")
	viper.SetDefault("REFRESH_INTERVAL", "10m")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
