package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Backend   bool      `json:"backend"`
	Redis     *bool     `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth probes the license backend and, when sessions live in Redis,
// the session cache, then stores the result.
func CheckHealth(ctx context.Context, backendPing func(context.Context) error, redisClient *redis.Client) HealthStatus {
	status := HealthStatus{
		Backend:   backendPing(ctx) == nil,
		CheckedAt: time.Now(),
	}
	if redisClient != nil {
		ok := redisClient.Ping(ctx).Err() == nil
		status.Redis = &ok
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor runs CheckHealth every interval until ctx is done.
func StartHealthMonitor(ctx context.Context, interval time.Duration, backendPing func(context.Context) error, redisClient *redis.Client) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			status := CheckHealth(ctx, backendPing, redisClient)
			if !status.Backend {
				GetLogger().Warn("license backend is unreachable")
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
