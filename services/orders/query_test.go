package orders_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/models"
	"concierge/services/orders"
)

var queryRef = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func makeBooking(id string, status models.Status, category models.ServiceCategory, createdAt time.Time) models.Booking {
	return models.Booking{
		ID:              id,
		SourceType:      models.SourceRegular,
		DisplayNumber:   "BK-" + id,
		ServiceName:     "Service " + id,
		ServiceCategory: category,
		Hotel:           models.HotelRef{Name: "Grand Meridian"},
		Guest:           models.GuestRef{Name: "Guest " + id},
		Status:          status,
		Pricing:         models.Pricing{BasePrice: 10, TotalAmount: 20},
		CreatedAt:       createdAt,
	}
}

func sampleBookings() []models.Booking {
	return []models.Booking{
		makeBooking("a", models.StatusPending, models.CategoryLaundry, queryRef.Add(-1*time.Hour)),
		makeBooking("b", models.StatusConfirmed, models.CategoryDining, queryRef.Add(-26*time.Hour)),
		makeBooking("c", models.StatusPending, models.CategoryLaundry, queryRef.Add(-5*24*time.Hour)),
		makeBooking("d", models.StatusCompleted, models.CategoryTransportation, queryRef.Add(-20*24*time.Hour)),
		makeBooking("e", models.StatusCancelled, models.CategoryHousekeeping, queryRef.Add(-40*24*time.Hour)),
	}
}

func ids(items []models.Booking) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestQueryFilters(t *testing.T) {
	bookings := sampleBookings()

	t.Run("no filters returns everything", func(t *testing.T) {
		result := orders.Query(bookings, models.QueryOptions{Now: queryRef, PageSize: 50})
		assert.Equal(t, 5, result.TotalCount)
	})

	t.Run("status filter", func(t *testing.T) {
		result := orders.Query(bookings, models.QueryOptions{Status: models.StatusPending, Now: queryRef, PageSize: 50})
		assert.ElementsMatch(t, []string{"a", "c"}, ids(result.Items))
	})

	t.Run("date windows", func(t *testing.T) {
		cases := []struct {
			name      string
			dateRange models.DateRange
			expect    []string
		}{
			{"today", models.DateRangeToday, []string{"a"}},
			{"yesterday", models.DateRangeYest, []string{"b"}},
			{"last 7 days", models.DateRangeLast7, []string{"a", "b", "c"}},
			{"last 30 days", models.DateRangeLast30, []string{"a", "b", "c", "d"}},
			{"all", models.DateRangeAll, []string{"a", "b", "c", "d", "e"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				result := orders.Query(bookings, models.QueryOptions{DateRange: tc.dateRange, Now: queryRef, PageSize: 50})
				assert.ElementsMatch(t, tc.expect, ids(result.Items))
			})
		}
	})

	t.Run("future-dated records match no named window", func(t *testing.T) {
		future := []models.Booking{
			makeBooking("f", models.StatusPending, models.CategoryLaundry, queryRef.Add(48*time.Hour)),
		}
		for _, dateRange := range []models.DateRange{
			models.DateRangeToday, models.DateRangeYest, models.DateRangeLast7, models.DateRangeLast30,
		} {
			result := orders.Query(future, models.QueryOptions{DateRange: dateRange, Now: queryRef, PageSize: 50})
			assert.Empty(t, result.Items, "window %s", dateRange)
		}
		all := orders.Query(future, models.QueryOptions{DateRange: models.DateRangeAll, Now: queryRef, PageSize: 50})
		assert.Len(t, all.Items, 1)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		result := orders.Query(bookings, models.QueryOptions{
			Status:    models.StatusPending,
			DateRange: models.DateRangeLast7,
			Category:  models.CategoryLaundry,
			Now:       queryRef,
			PageSize:  50,
		})
		// "c" matches status+category but sits 5 days back, still inside the
		// 7-day window; "a" matches everything too.
		assert.ElementsMatch(t, []string{"a", "c"}, ids(result.Items))

		narrower := orders.Query(bookings, models.QueryOptions{
			Status:    models.StatusPending,
			DateRange: models.DateRangeToday,
			Category:  models.CategoryLaundry,
			Now:       queryRef,
			PageSize:  50,
		})
		assert.ElementsMatch(t, []string{"a"}, ids(narrower.Items))
	})
}

func TestQuerySorting(t *testing.T) {
	t.Run("default sort is createdAt descending", func(t *testing.T) {
		result := orders.Query(sampleBookings(), models.QueryOptions{Now: queryRef, PageSize: 50})
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(result.Items))
	})

	t.Run("ascending flips the order", func(t *testing.T) {
		result := orders.Query(sampleBookings(), models.QueryOptions{SortBy: "createdAt", SortDir: models.SortAsc, Now: queryRef, PageSize: 50})
		assert.Equal(t, []string{"e", "d", "c", "b", "a"}, ids(result.Items))
	})

	t.Run("nested path sorts case-insensitively", func(t *testing.T) {
		bookings := sampleBookings()
		bookings[0].Hotel.Name = "zenith"
		bookings[1].Hotel.Name = "Atrium"
		bookings[2].Hotel.Name = "MERIDIAN"
		bookings[3].Hotel.Name = "atlas"
		bookings[4].Hotel.Name = "Beacon"

		result := orders.Query(bookings, models.QueryOptions{SortBy: "hotel.name", SortDir: models.SortAsc, Now: queryRef, PageSize: 50})
		assert.Equal(t, []string{"d", "b", "e", "c", "a"}, ids(result.Items))
	})

	t.Run("ties preserve insertion order", func(t *testing.T) {
		bookings := sampleBookings()
		// Every hotel name is identical, so a hotel.name sort must keep the
		// original relative order regardless of direction.
		asc := orders.Query(bookings, models.QueryOptions{SortBy: "hotel.name", SortDir: models.SortAsc, Now: queryRef, PageSize: 50})
		desc := orders.Query(bookings, models.QueryOptions{SortBy: "hotel.name", SortDir: models.SortDesc, Now: queryRef, PageSize: 50})
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(asc.Items))
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(desc.Items))
	})

	t.Run("repeated queries are deterministic", func(t *testing.T) {
		first := orders.Query(sampleBookings(), models.QueryOptions{SortBy: "status", Now: queryRef, PageSize: 50})
		second := orders.Query(sampleBookings(), models.QueryOptions{SortBy: "status", Now: queryRef, PageSize: 50})
		assert.Equal(t, ids(first.Items), ids(second.Items))
	})

	t.Run("unknown sort key falls back to createdAt", func(t *testing.T) {
		result := orders.Query(sampleBookings(), models.QueryOptions{SortBy: "no.such.key", Now: queryRef, PageSize: 50})
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(result.Items))
	})
}

func TestQueryPagination(t *testing.T) {
	bookings := sampleBookings()

	t.Run("page math", func(t *testing.T) {
		result := orders.Query(bookings, models.QueryOptions{Now: queryRef, PageSize: 2})
		assert.Equal(t, 5, result.TotalCount)
		assert.Equal(t, 3, result.TotalPages)
		assert.Len(t, result.Items, 2)
	})

	t.Run("page clamped into range", func(t *testing.T) {
		tooHigh := orders.Query(bookings, models.QueryOptions{Now: queryRef, PageSize: 2, Page: 99})
		assert.Equal(t, 3, tooHigh.Page)
		assert.Len(t, tooHigh.Items, 1)

		tooLow := orders.Query(bookings, models.QueryOptions{Now: queryRef, PageSize: 2, Page: -4})
		assert.Equal(t, 1, tooLow.Page)
	})

	t.Run("empty result still reports one page", func(t *testing.T) {
		result := orders.Query(nil, models.QueryOptions{Now: queryRef})
		assert.Equal(t, 0, result.TotalCount)
		assert.Equal(t, 1, result.TotalPages)
		assert.Equal(t, 1, result.Page)
	})

	t.Run("concatenated pages reproduce the full set", func(t *testing.T) {
		var all []string
		first := orders.Query(bookings, models.QueryOptions{Now: queryRef, PageSize: 2, Page: 1})
		for page := 1; page <= first.TotalPages; page++ {
			result := orders.Query(bookings, models.QueryOptions{Now: queryRef, PageSize: 2, Page: page})
			all = append(all, ids(result.Items)...)
		}
		require.Len(t, all, 5)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, all)
	})
}
