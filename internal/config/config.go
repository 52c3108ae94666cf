package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for uploaded media binaries.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RedisConfig holds settings for the content cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTLSec   int
}

// MediaConfig holds the directories used by startup media reconciliation.
// SourceDir contains the bundled seed assets, ServingDir is what /media serves from.
type MediaConfig struct {
	SourceDir   string
	ServingDir  string
	MappingFile string
	ListLimit   int
	URLBase     string
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env      string
	AppHost  string
	Port     string
	Log      LogConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	Redis    RedisConfig
	Media    MediaConfig
}

// IsProduction reports whether APP_ENV is "production".
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	env := getEnv("APP_ENV", "development")
	return &AppConfig{
		Env:     env,
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTLSec:   getEnvInt("CONTENT_CACHE_TTL_SEC", 60),
		},
		Media: loadMedia(env),
	}
}

// loadMedia picks the directory defaults for the environment. Production images ship
// assets at absolute paths; local development runs from the repository root.
func loadMedia(env string) MediaConfig {
	sourceDef, servingDef := "seed-assets", "media"
	if env == "production" {
		sourceDef, servingDef = "/app/seed-assets", "/app/media"
	}
	return MediaConfig{
		SourceDir:   getEnv("MEDIA_SOURCE_DIR", sourceDef),
		ServingDir:  getEnv("MEDIA_SERVING_DIR", servingDef),
		MappingFile: getEnv("MEDIA_MAPPING_FILE", ""),
		ListLimit:   getEnvInt("MEDIA_LIST_LIMIT", 1000),
		URLBase:     getEnv("MEDIA_URL_BASE", "/media"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
