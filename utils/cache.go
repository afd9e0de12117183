// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"roomly/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// CodeCacheClient is the dedicated client for verification code storage.
	CodeCacheClient *redis.Client
)

// InitRedis initializes all Redis clients up front so a misconfigured
// connection fails at startup rather than on first use.
func InitRedis() {
	InitAuthCache()
	InitCodeCache()
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitCodeCache initializes the Redis client for verification code storage.
func InitCodeCache() {
	CodeCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCodeDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CodeCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Code Cache): %v", err)
	}
}

// GetCodeCacheClient returns the Redis client for verification code storage.
func GetCodeCacheClient() *redis.Client {
	if CodeCacheClient == nil {
		InitCodeCache()
	}
	return CodeCacheClient
}
