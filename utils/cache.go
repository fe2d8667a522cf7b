package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"visionpay/config"
)

// SessionCacheClient backs signup sessions when REDIS_ADDR is set.
var SessionCacheClient *redis.Client

// InitSessionCache connects to Redis using REDIS_SESSION_DB and checks the
// connection before returning.
func InitSessionCache() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to Redis (sessions) at %s: %w", config.AppConfig.RedisAddr, err)
	}
	SessionCacheClient = client
	return client, nil
}
