package database

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type Config struct {
	Port      string
	AppEnv    string
	MongoURI  string
	DBName    string
	SecretKey string

	RedisAddr     string
	RedisPassword string
	MenuCacheTTL  time.Duration

	CleanupRetentionDays int
	CleanupIntervalHours int
}

var (
	configOnce sync.Once
	config     *Config
)

// Load reads the application configuration from the environment once per
// process. godotenv is expected to have populated the environment already.
func Load() *Config {
	configOnce.Do(func() {
		config = &Config{
			Port:      getEnv("PORT", "8000"),
			AppEnv:    getEnv("APP_ENV", "development"),
			MongoURI:  getEnv("MENU_DB", ""),
			DBName:    getEnv("MENU_DB_NAME", "carta"),
			SecretKey: getEnv("SECRET_KEY", ""),

			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			MenuCacheTTL:  time.Duration(getEnvInt("MENU_CACHE_TTL_SECONDS", 60)) * time.Second,

			CleanupRetentionDays: getEnvInt("CLEANUP_RETENTION_DAYS", 90),
			CleanupIntervalHours: getEnvInt("CLEANUP_INTERVAL_HOURS", 24),
		}
	})
	return config
}

// Production reports whether the process runs with production error
// disclosure rules (generic messages, no internal detail).
func Production() bool {
	return Load().AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
