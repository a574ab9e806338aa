package database

import (
	"sync"

	"github.com/MateAKD/Carta_Menu_Backend/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	cacheOnce   sync.Once
	cacheClient *redis.Client
)

// Cache returns the shared redis client used for short-lived public menu
// caching, or nil when REDIS_ADDR is unset. Callers must treat a nil client
// as "caching disabled" and every cache failure as non-fatal.
func Cache() *redis.Client {
	cacheOnce.Do(func() {
		cfg := Load()
		if cfg.RedisAddr == "" {
			logger.L().Info("REDIS_ADDR not set, menu response cache disabled")
			return
		}
		cacheClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		logger.L().Info("redis cache configured", zap.String("addr", cfg.RedisAddr))
	})
	return cacheClient
}
