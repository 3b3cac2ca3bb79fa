package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the whole application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	CORS      CORSConfig
	Logger    LoggerConfig
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds the PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds the Redis connection settings
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds the token settings.
// TokenExpiry defaults to one hour after issuance.
type JWTConfig struct {
	SecretKey   string
	TokenExpiry time.Duration
}

// RateLimitConfig holds the per-route fixed-window limits
type RateLimitConfig struct {
	CreateLimit  int
	CreateWindow time.Duration
	MutateLimit  int
	MutateWindow time.Duration
}

// CacheConfig holds the listing cache TTLs per entity type
type CacheConfig struct {
	CustomersTTL time.Duration
	MechanicsTTL time.Duration
	InventoryTTL time.Duration
}

// CORSConfig holds the CORS settings
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// LoggerConfig holds the logging settings
type LoggerConfig struct {
	Level  string
	Format string // json or console
	Output string // stdout or a file path
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env if present (missing file is fine)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "shop_user"),
			Password:        getEnv("DB_PASSWORD", "shop_password"),
			Database:        getEnv("DB_NAME", "mechanic_shop"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey:   getEnv("JWT_SECRET", "change-this-secret-in-production"),
			TokenExpiry: getDurationEnv("JWT_TOKEN_EXPIRY", 1*time.Hour),
		},
		RateLimit: RateLimitConfig{
			CreateLimit:  getIntEnv("RATE_LIMIT_CREATE", 15),
			CreateWindow: getDurationEnv("RATE_LIMIT_CREATE_WINDOW", 1*time.Hour),
			MutateLimit:  getIntEnv("RATE_LIMIT_MUTATE", 5),
			MutateWindow: getDurationEnv("RATE_LIMIT_MUTATE_WINDOW", 1*time.Hour),
		},
		Cache: CacheConfig{
			CustomersTTL: getDurationEnv("CACHE_CUSTOMERS_TTL", 30*time.Second),
			MechanicsTTL: getDurationEnv("CACHE_MECHANICS_TTL", 20*time.Second),
			InventoryTTL: getDurationEnv("CACHE_INVENTORY_TTL", 60*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
			},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Address returns the server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Address returns the Redis address
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helpers for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
