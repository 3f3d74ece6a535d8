package models

import "time"

// DateRange names the relative date windows the dashboard filters by.
type DateRange string

const (
	DateRangeAll    DateRange = "all"
	DateRangeToday  DateRange = "today"
	DateRangeYest   DateRange = "yesterday"
	DateRangeLast7  DateRange = "last7days"
	DateRangeLast30 DateRange = "last30days"
)

// SortDirection orders results ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// QueryOptions are the compound search/filter/sort/pagination parameters for one
// query over the merged booking set. Zero values mean "no filter" / defaults.
type QueryOptions struct {
	Status    Status          // empty or "all" disables the status filter
	DateRange DateRange       // empty or "all" disables the date filter
	Category  ServiceCategory // empty or "all" disables the category filter
	SortBy    string          // sort key path, default "createdAt"
	SortDir   SortDirection   // default descending (newest first)
	Page      int             // 1-based, clamped into [1, TotalPages]
	PageSize  int             // default 10, capped at 100

	// Now anchors the relative date windows; the zero value means time.Now().
	Now time.Time
}

// QueryResult is one page of the filtered, sorted merged set.
type QueryResult struct {
	Items      []Booking `json:"items"`
	TotalCount int       `json:"totalCount"`
	TotalPages int       `json:"totalPages"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
}

// Snapshot is the merged, normalized booking collection assembled from both
// sources, plus the bookkeeping the dashboard surfaces about the merge itself.
type Snapshot struct {
	Bookings      []Booking    `json:"bookings"`
	Dropped       int          `json:"dropped"`
	Partial       bool         `json:"partial"`
	FailedSources []SourceType `json:"failedSources,omitempty"`
	FetchedAt     time.Time    `json:"fetchedAt"`
}
