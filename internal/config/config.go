// Package config reads service configuration from the environment. A .env
// file is honored in development; every key can be overridden with a
// LODGING_-prefixed environment variable.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM postgres DSN.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// KafkaConfig holds the change-notification broker settings. Empty brokers
// disable notifications.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// RedisConfig holds the query-cache settings. An empty address disables the
// cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// StorageConfig holds the asset store settings.
type StorageConfig struct {
	// BaseURL is the public prefix cabin images resolve under.
	BaseURL string
}

// JWTConfig holds the admin auth token settings.
type JWTConfig struct {
	Secret string
}

// ServiceConfig holds all configuration for the lodging admin service.
type ServiceConfig struct {
	Port    string
	AppEnv  string
	DB      DatabaseConfig
	Kafka   KafkaConfig
	Redis   RedisConfig
	Storage StorageConfig
	JWT     JWTConfig
}

// Load reads configuration from .env and LODGING_-prefixed env variables.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load() // absent .env is fine

	v := viper.New()
	v.SetEnvPrefix("LODGING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("port", ":8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "lodging")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.group_prefix", "lodging-")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "30s")
	v.SetDefault("storage.base_url", "")
	v.SetDefault("jwt.secret", "")

	cfg := &ServiceConfig{
		Port:   normalizePort(v.GetString("port")),
		AppEnv: v.GetString("app_env"),
		DB: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitBrokers(v.GetString("kafka.brokers")),
			GroupPrefix: v.GetString("kafka.group_prefix"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Storage: StorageConfig{
			BaseURL: v.GetString("storage.base_url"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
	}

	if cfg.Storage.BaseURL == "" {
		return nil, fmt.Errorf("LODGING_STORAGE_BASE_URL is required")
	}
	if cfg.AppEnv != "development" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("LODGING_JWT_SECRET is required outside development")
	}
	return cfg, nil
}

func splitBrokers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func normalizePort(port string) string {
	if port == "" {
		return ":8080"
	}
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}
