package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreSurreal  = "surrealdb"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds all configuration values.
type Config struct {
	// Persistence
	Store    string
	DataFile string

	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	// Postgres
	DatabaseURL string

	// Studio
	StudioName string
	Timezone   string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Store:    strings.ToLower(getEnv("STUDIOFLOW_STORE", StoreFile)),
		DataFile: getEnv("STUDIOFLOW_DATA_FILE", defaultDataFile()),

		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "studioflow"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "jobs"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisKey:      getEnv("STUDIOFLOW_REDIS_KEY", "studioflow:jobs"),

		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/studioflow?sslmode=disable"),

		StudioName: getEnv("STUDIOFLOW_STUDIO_NAME", "StudioFlow"),
		Timezone:   getEnv("STUDIOFLOW_TIMEZONE", "America/Sao_Paulo"),

		LogFile:  getEnv("STUDIOFLOW_LOG_FILE", "/tmp/studioflow.log"),
		LogLevel: parseLogLevel(getEnv("STUDIOFLOW_LOG_LEVEL", "INFO")),
	}
}

// Location resolves the configured timezone, falling back to UTC when the
// name is unknown to the system tz database.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("unknown timezone, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "studioflow.json"
	}
	return filepath.Join(home, ".studioflow", "jobs.json")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
