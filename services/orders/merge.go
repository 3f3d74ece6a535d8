package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"concierge/models"
	"concierge/utils"
)

// sourceResult carries one source's fetch outcome into the merge.
type sourceResult struct {
	bookings []models.Booking
	dropped  int
	err      error
}

// BuildSnapshot fetches every registered source concurrently and merges the
// normalized results. A failed source degrades the view to the remaining data
// with the partial flag set; the merge only errors when no source answered.
func (svc *DefaultOrderViewService) BuildSnapshot(ctx context.Context) (*models.Snapshot, error) {
	types := make([]models.SourceType, 0, len(svc.Sources))
	for sourceType := range svc.Sources {
		types = append(types, sourceType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	results := make(map[models.SourceType]sourceResult, len(types))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, sourceType := range types {
		wg.Add(1)
		go func(source Source) {
			defer wg.Done()
			bookings, dropped, err := source.Fetch(ctx)
			mu.Lock()
			results[source.Type()] = sourceResult{
				bookings: bookings,
				dropped:  dropped,
				err:      err,
			}
			mu.Unlock()
		}(svc.Sources[sourceType])
	}
	wg.Wait()

	// Concatenate in fixed source order: the merged insertion order is the
	// tie-break the stable sort preserves, so it must be a pure function of
	// the data, never of upstream response timing.
	snapshot := &models.Snapshot{FetchedAt: time.Now()}
	for _, sourceType := range types {
		result := results[sourceType]
		if result.err != nil {
			svc.Logger.Warn("source fetch failed, continuing with partial data",
				zap.String("source", string(sourceType)),
				zap.Error(result.err),
			)
			snapshot.Partial = true
			snapshot.FailedSources = append(snapshot.FailedSources, sourceType)
			continue
		}
		snapshot.Bookings = append(snapshot.Bookings, result.bookings...)
		snapshot.Dropped += result.dropped
	}

	if len(snapshot.FailedSources) == len(svc.Sources) && len(svc.Sources) > 0 {
		return nil, &AdapterUnavailableError{
			Source: "all",
			Op:     "fetch",
			Err:    fmt.Errorf("every booking source failed"),
		}
	}

	return snapshot, nil
}

// GetSnapshot reads the merged snapshot through the cache. refresh busts the
// cached copy; cache trouble degrades to a direct build, never an error.
func (svc *DefaultOrderViewService) GetSnapshot(ctx context.Context, refresh bool) (*models.Snapshot, error) {
	if !refresh && svc.Cache != nil {
		cached, err := svc.Cache.Get(ctx, utils.SnapshotCacheKey).Result()
		if err == nil {
			var snapshot models.Snapshot
			if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
				return &snapshot, nil
			}
			svc.Logger.Warn("failed to decode cached snapshot, rebuilding", zap.Error(err))
		}
	}

	snapshot, err := svc.BuildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	// A partial snapshot is not cached so the next read retries the failed source.
	if svc.Cache != nil && !snapshot.Partial {
		if data, err := json.Marshal(snapshot); err == nil {
			if err := svc.Cache.Set(ctx, utils.SnapshotCacheKey, data, svc.SnapshotTTL).Err(); err != nil {
				svc.Logger.Warn("failed to cache snapshot", zap.Error(err))
			}
		}
	}

	return snapshot, nil
}

// QueryOrders runs the compound query over the current snapshot and returns the
// page plus the snapshot bookkeeping (dropped count, partial-load flag).
func (svc *DefaultOrderViewService) QueryOrders(ctx context.Context, opts models.QueryOptions, refresh bool) (models.QueryResult, *models.Snapshot, error) {
	snapshot, err := svc.GetSnapshot(ctx, refresh)
	if err != nil {
		return models.QueryResult{}, nil, err
	}
	return Query(snapshot.Bookings, opts), snapshot, nil
}

// GetBooking looks a single booking up in the merged snapshot.
func (svc *DefaultOrderViewService) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	snapshot, err := svc.GetSnapshot(ctx, false)
	if err != nil {
		return models.Booking{}, err
	}
	for _, booking := range snapshot.Bookings {
		if booking.ID == id {
			return booking, nil
		}
	}
	return models.Booking{}, fmt.Errorf("booking %s not found", id)
}

// UpdateStatus transitions a booking and invalidates the snapshot cache so the
// next read reflects the upstream's authoritative copy.
func (svc *DefaultOrderViewService) UpdateStatus(ctx context.Context, id string, target models.Status) (models.Booking, error) {
	booking, err := svc.GetBooking(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}

	updated, err := svc.Transitions.Transition(ctx, &booking, target)
	if err != nil {
		return models.Booking{}, err
	}

	if svc.Cache != nil {
		if err := svc.Cache.Del(ctx, utils.SnapshotCacheKey).Err(); err != nil {
			svc.Logger.Warn("failed to invalidate snapshot cache", zap.Error(err))
		}
	}
	return updated, nil
}

// StatusSummary counts bookings per lifecycle state for the dashboard cards.
func (svc *DefaultOrderViewService) StatusSummary(ctx context.Context) (map[models.Status]int, error) {
	snapshot, err := svc.GetSnapshot(ctx, false)
	if err != nil {
		return nil, err
	}
	summary := map[models.Status]int{
		models.StatusPending:    0,
		models.StatusConfirmed:  0,
		models.StatusInProgress: 0,
		models.StatusCompleted:  0,
		models.StatusCancelled:  0,
	}
	for _, booking := range snapshot.Bookings {
		summary[booking.Status]++
	}
	return summary, nil
}
