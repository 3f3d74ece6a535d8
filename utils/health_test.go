package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartHealthMonitorChecksBeforeFirstTick(t *testing.T) {
	// Closed port, so the ping fails immediately instead of timing out.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	StartHealthMonitor(client, map[string]UpstreamChecker{
		"orders":       func(ctx context.Context) error { return nil },
		"housekeeping": func(ctx context.Context) error { return errors.New("down") },
	})

	// The first check is synchronous, so the snapshot must already be
	// populated when StartHealthMonitor returns.
	status := GetHealthStatus()
	require.False(t, status.CheckedAt.IsZero())
	assert.False(t, status.Redis)
	assert.True(t, status.Upstreams["orders"])
	assert.False(t, status.Upstreams["housekeeping"])
}
