package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     bool            `json:"redis"`
	Upstreams map[string]bool `json:"upstreams"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// UpstreamChecker reports whether a named upstream answers its ping endpoint.
type UpstreamChecker func(ctx context.Context) error

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func runHealthCheck(ctx context.Context, redisClient *redis.Client, upstreams map[string]UpstreamChecker) {
	redisHealthy := redisClient.Ping(ctx).Err() == nil

	upstreamHealth := make(map[string]bool, len(upstreams))
	for name, check := range upstreams {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		upstreamHealth[name] = check(checkCtx) == nil
		cancel()
	}

	mu.Lock()
	currentHealth = HealthStatus{
		Redis:     redisHealthy,
		Upstreams: upstreamHealth,
		CheckedAt: time.Now(),
	}
	mu.Unlock()
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. The first check runs synchronously so /health never serves the
// zero-value snapshot while the first tick is pending.
func StartHealthMonitor(redisClient *redis.Client, upstreams map[string]UpstreamChecker) {
	ctx := context.Background()
	runHealthCheck(ctx, redisClient, upstreams)

	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			runHealthCheck(ctx, redisClient, upstreams)
		}
	}()
}
