package orders

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"concierge/models"
)

// OrderViewService is the consumer-facing surface of the merged orders view:
// snapshot reads, compound queries, detail lookup, status transitions and the
// per-status summary the dashboard cards show.
type OrderViewService interface {
	GetSnapshot(ctx context.Context, refresh bool) (*models.Snapshot, error)
	QueryOrders(ctx context.Context, opts models.QueryOptions, refresh bool) (models.QueryResult, *models.Snapshot, error)
	GetBooking(ctx context.Context, id string) (models.Booking, error)
	UpdateStatus(ctx context.Context, id string, target models.Status) (models.Booking, error)
	StatusSummary(ctx context.Context) (map[models.Status]int, error)
}

// DefaultOrderViewService implements OrderViewService over the source registry
// with a Redis-backed snapshot cache.
type DefaultOrderViewService struct {
	Sources     Registry
	Transitions *TransitionManager
	Cache       *redis.Client
	SnapshotTTL time.Duration
	Logger      *zap.Logger
}

// NewDefaultOrderViewService wires the service.
func NewDefaultOrderViewService(sources Registry, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *DefaultOrderViewService {
	return &DefaultOrderViewService{
		Sources:     sources,
		Transitions: NewTransitionManager(sources, logger),
		Cache:       cache,
		SnapshotTTL: ttl,
		Logger:      logger,
	}
}
