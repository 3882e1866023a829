// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"ridebook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// DraftCacheClient holds in-progress booking drafts.
	DraftCacheClient *redis.Client
	// SessionCacheClient is the dedicated client for auth sessions.
	SessionCacheClient *redis.Client
	// OperatorCacheClient caches per-tenant operator params.
	OperatorCacheClient *redis.Client
)

// InitDraftCache initializes the Redis client holding booking drafts.
func InitDraftCache() {
	DraftCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDraftDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := DraftCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Drafts): %v", err)
	}
}

// GetDraftCacheClient returns the booking draft client.
func GetDraftCacheClient() *redis.Client {
	if DraftCacheClient == nil {
		InitDraftCache()
	}
	return DraftCacheClient
}

// InitSessionCache initializes the Redis client for auth sessions.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for auth sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitOperatorCache initializes the Redis client for operator params.
func InitOperatorCache() {
	OperatorCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisOperatorDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := OperatorCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Operator Params): %v", err)
	}
}

// GetOperatorCacheClient returns the Redis client for operator params.
func GetOperatorCacheClient() *redis.Client {
	if OperatorCacheClient == nil {
		InitOperatorCache()
	}
	return OperatorCacheClient
}

// InitRedis initializes all Redis clients eagerly at startup.
func InitRedis() {
	InitDraftCache()
	InitSessionCache()
	InitOperatorCache()
}
