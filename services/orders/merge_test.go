package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"concierge/models"
	"concierge/services/orders"
)

func newService(sources ...orders.Source) *orders.DefaultOrderViewService {
	// No cache client in unit tests; the service degrades to direct builds.
	return orders.NewDefaultOrderViewService(orders.NewRegistry(sources...), nil, 0, zap.NewNop())
}

func TestBuildSnapshot(t *testing.T) {
	t.Run("merges both sources with dropped counts", func(t *testing.T) {
		regular := &fakeSource{
			sourceType: models.SourceRegular,
			bookings: []models.Booking{
				makeBooking("r1", models.StatusPending, models.CategoryLaundry, queryRef),
				makeBooking("r2", models.StatusConfirmed, models.CategoryDining, queryRef),
			},
			dropped: 1,
		}
		housekeeping := &fakeSource{
			sourceType: models.SourceHousekeeping,
			bookings: []models.Booking{
				makeBooking("h1", models.StatusPending, models.CategoryHousekeeping, queryRef),
			},
		}

		snapshot, err := newService(regular, housekeeping).BuildSnapshot(context.Background())
		require.NoError(t, err)
		assert.Len(t, snapshot.Bookings, 3)
		assert.Equal(t, 1, snapshot.Dropped)
		assert.False(t, snapshot.Partial)
		assert.Empty(t, snapshot.FailedSources)
	})

	t.Run("one dead source degrades to partial data", func(t *testing.T) {
		regular := &fakeSource{
			sourceType: models.SourceRegular,
			bookings:   []models.Booking{makeBooking("r1", models.StatusPending, models.CategoryLaundry, queryRef)},
		}
		housekeeping := &fakeSource{
			sourceType: models.SourceHousekeeping,
			fetchErr:   &orders.AdapterUnavailableError{Source: models.SourceHousekeeping, Op: "fetch", Err: errors.New("timeout")},
		}

		snapshot, err := newService(regular, housekeeping).BuildSnapshot(context.Background())
		require.NoError(t, err)
		assert.Len(t, snapshot.Bookings, 1)
		assert.True(t, snapshot.Partial)
		assert.Equal(t, []models.SourceType{models.SourceHousekeeping}, snapshot.FailedSources)
	})

	t.Run("merged order is independent of response timing", func(t *testing.T) {
		build := func(regularDelay, housekeepingDelay time.Duration) []string {
			regular := &fakeSource{
				sourceType: models.SourceRegular,
				fetchDelay: regularDelay,
				bookings:   []models.Booking{makeBooking("r1", models.StatusPending, models.CategoryLaundry, queryRef)},
			}
			housekeeping := &fakeSource{
				sourceType: models.SourceHousekeeping,
				fetchDelay: housekeepingDelay,
				bookings:   []models.Booking{makeBooking("h1", models.StatusPending, models.CategoryHousekeeping, queryRef)},
			}
			snapshot, err := newService(regular, housekeeping).BuildSnapshot(context.Background())
			require.NoError(t, err)
			return ids(snapshot.Bookings)
		}

		// Identical data must merge identically whichever source answers
		// first: the merged insertion order is the stable sort's tie-break.
		slowRegular := build(20*time.Millisecond, 0)
		slowHousekeeping := build(0, 20*time.Millisecond)
		assert.Equal(t, slowRegular, slowHousekeeping)
		assert.Equal(t, []string{"h1", "r1"}, slowRegular)
	})

	t.Run("all sources dead fails the read", func(t *testing.T) {
		regular := &fakeSource{sourceType: models.SourceRegular, fetchErr: errors.New("down")}
		housekeeping := &fakeSource{sourceType: models.SourceHousekeeping, fetchErr: errors.New("down")}

		_, err := newService(regular, housekeeping).BuildSnapshot(context.Background())
		var unavailable *orders.AdapterUnavailableError
		require.ErrorAs(t, err, &unavailable)
	})
}

func TestServiceReads(t *testing.T) {
	regular := &fakeSource{
		sourceType: models.SourceRegular,
		bookings: []models.Booking{
			makeBooking("r1", models.StatusPending, models.CategoryLaundry, queryRef),
			makeBooking("r2", models.StatusCompleted, models.CategoryDining, queryRef.Add(-48*time.Hour)),
		},
	}
	svc := newService(regular)

	t.Run("query orders returns page plus snapshot bookkeeping", func(t *testing.T) {
		result, snapshot, err := svc.QueryOrders(context.Background(), models.QueryOptions{Now: queryRef, PageSize: 10}, false)
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalCount)
		assert.Equal(t, 0, snapshot.Dropped)
	})

	t.Run("detail lookup by id", func(t *testing.T) {
		booking, err := svc.GetBooking(context.Background(), "r1")
		require.NoError(t, err)
		assert.Equal(t, "r1", booking.ID)

		_, err = svc.GetBooking(context.Background(), "missing")
		require.Error(t, err)
	})

	t.Run("status summary counts per state", func(t *testing.T) {
		summary, err := svc.StatusSummary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, summary[models.StatusPending])
		assert.Equal(t, 1, summary[models.StatusCompleted])
		assert.Equal(t, 0, summary[models.StatusCancelled])
	})
}

func TestServiceUpdateStatus(t *testing.T) {
	t.Run("optimistic update confirmed by echo", func(t *testing.T) {
		regular := &fakeSource{
			sourceType: models.SourceRegular,
			bookings:   []models.Booking{makeBooking("r1", models.StatusPending, models.CategoryLaundry, queryRef)},
		}
		svc := newService(regular)

		updated, err := svc.UpdateStatus(context.Background(), "r1", models.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, updated.Status)
		assert.Equal(t, 1, regular.updateCalls)
	})

	t.Run("invalid transition surfaces without an upstream call", func(t *testing.T) {
		regular := &fakeSource{
			sourceType: models.SourceRegular,
			bookings:   []models.Booking{makeBooking("r1", models.StatusCancelled, models.CategoryLaundry, queryRef)},
		}
		svc := newService(regular)

		_, err := svc.UpdateStatus(context.Background(), "r1", models.StatusConfirmed)
		var invalid *orders.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 0, regular.updateCalls)
	})
}
