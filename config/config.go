package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server Server
	Redis  Redis
	DB     DB
	Auth   Auth
	Upload Upload
	Media  Media
	App    App
}

type Server struct {
	Port string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

// DB configures the optional Postgres connection backing the user
// directory. An empty DSN disables the users routes.
type DB struct {
	DSN string
}

type Auth struct {
	JWTSecret    string
	DemoUsername string
	DemoPassword string
	SessionTTL   time.Duration
}

type Upload struct {
	MaxBytes int64
	BlobTTL  time.Duration
}

type Media struct {
	BaseURL string
}

type App struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: Server{
			Port: getEnv("PORT", "8080"),
		},
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		DB: DB{
			DSN: getEnv("DB_DSN", ""),
		},
		Auth: Auth{
			JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
			DemoUsername: getEnv("DEMO_USERNAME", "demo"),
			DemoPassword: getEnv("DEMO_PASSWORD", "password"),
			SessionTTL:   getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Upload: Upload{
			MaxBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10*1024*1024)),
			BlobTTL:  getEnvAsDuration("BLOB_TTL", 24*time.Hour),
		},
		Media: Media{
			BaseURL: getEnv("MEDIA_API_BASE_URL", "https://images-api.nasa.gov"),
		},
		App: App{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
