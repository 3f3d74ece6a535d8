package orders

import (
	"sort"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"concierge/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	defaultSortKey  = "createdAt"
)

// Query applies the compound status/date/category filter, multi-class sort and
// page window over the merged booking set. Pure function of its inputs; callers
// re-issue page=1 whenever a filter or sort key changes.
func Query(bookings []models.Booking, opts models.QueryOptions) models.QueryResult {
	ref := opts.Now
	if ref.IsZero() {
		ref = time.Now()
	}

	filtered := make([]models.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if !matchesStatus(booking, opts.Status) {
			continue
		}
		if !matchesDateRange(booking, opts.DateRange, ref) {
			continue
		}
		if !matchesCategory(booking, opts.Category) {
			continue
		}
		filtered = append(filtered, booking)
	}

	sortBookings(filtered, opts.SortBy, opts.SortDir)

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	totalCount := len(filtered)
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return models.QueryResult{
		Items:      filtered[start:end],
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}

func matchesStatus(booking models.Booking, status models.Status) bool {
	if status == "" || status == "all" {
		return true
	}
	return booking.Status == status
}

func matchesCategory(booking models.Booking, category models.ServiceCategory) bool {
	if category == "" || category == "all" {
		return true
	}
	return booking.ServiceCategory == category
}

// matchesDateRange tests createdAt against the named window, with day
// boundaries anchored on the reference time.
func matchesDateRange(booking models.Booking, dateRange models.DateRange, ref time.Time) bool {
	if dateRange == "" || dateRange == models.DateRangeAll {
		return true
	}

	startOfToday := now.New(ref).BeginningOfDay()
	endOfToday := startOfToday.AddDate(0, 0, 1)
	createdAt := booking.CreatedAt

	// Every window is bounded on both sides: a future-dated record matches no
	// named window, only "all".
	switch dateRange {
	case models.DateRangeToday:
		return !createdAt.Before(startOfToday) && createdAt.Before(endOfToday)
	case models.DateRangeYest:
		startOfYesterday := startOfToday.AddDate(0, 0, -1)
		return !createdAt.Before(startOfYesterday) && createdAt.Before(startOfToday)
	case models.DateRangeLast7:
		return !createdAt.Before(startOfToday.AddDate(0, 0, -7)) && createdAt.Before(endOfToday)
	case models.DateRangeLast30:
		return !createdAt.Before(startOfToday.AddDate(0, 0, -30)) && createdAt.Before(endOfToday)
	default:
		return true
	}
}

// sortClass picks the comparison semantics for a key.
type sortClass int

const (
	classString sortClass = iota
	classNumber
	classTime
)

// sortKey resolves one sortable field, including nested paths like hotel.name.
type sortKey struct {
	class  sortClass
	str    func(models.Booking) string
	num    func(models.Booking) float64
	moment func(models.Booking) time.Time
}

var sortKeys = map[string]sortKey{
	"createdAt": {class: classTime, moment: func(b models.Booking) time.Time { return b.CreatedAt }},
	"schedule.preferredDate": {class: classTime, moment: func(b models.Booking) time.Time {
		if b.Schedule == nil {
			return time.Time{}
		}
		return b.Schedule.PreferredDate
	}},
	"pricing.totalAmount": {class: classNumber, num: func(b models.Booking) float64 { return b.Pricing.TotalAmount }},
	"pricing.basePrice":   {class: classNumber, num: func(b models.Booking) float64 { return b.Pricing.BasePrice }},
	"serviceName":         {class: classString, str: func(b models.Booking) string { return b.ServiceName }},
	"displayNumber":       {class: classString, str: func(b models.Booking) string { return b.DisplayNumber }},
	"status":              {class: classString, str: func(b models.Booking) string { return string(b.Status) }},
	"hotel.name":          {class: classString, str: func(b models.Booking) string { return b.Hotel.Name }},
	"guest.name":          {class: classString, str: func(b models.Booking) string { return b.Guest.Name }},
}

// sortBookings orders the slice in place. Stable sort is mandatory so that tied
// elements keep their pre-sort relative order and repeated queries are
// deterministic. Unknown keys fall back to createdAt.
func sortBookings(bookings []models.Booking, key string, direction models.SortDirection) {
	resolved, ok := sortKeys[key]
	if !ok {
		resolved = sortKeys[defaultSortKey]
	}
	descending := direction != models.SortAsc

	sort.SliceStable(bookings, func(i, j int) bool {
		var less, equal bool
		switch resolved.class {
		case classTime:
			left, right := resolved.moment(bookings[i]), resolved.moment(bookings[j])
			less, equal = left.Before(right), left.Equal(right)
		case classNumber:
			left, right := resolved.num(bookings[i]), resolved.num(bookings[j])
			less, equal = left < right, left == right
		default:
			left := strings.ToLower(resolved.str(bookings[i]))
			right := strings.ToLower(resolved.str(bookings[j]))
			less, equal = left < right, left == right
		}
		if equal {
			return false
		}
		if descending {
			return !less
		}
		return less
	})
}
