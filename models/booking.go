package models

import (
	"fmt"
	"time"
)

// SourceType identifies which upstream backend owns a booking's authoritative record.
type SourceType string

const (
	SourceRegular      SourceType = "regular"
	SourceHousekeeping SourceType = "housekeeping"
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus validates a status string coming from a client request.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// IsTerminal reports whether no further lifecycle transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ServiceCategory drives which booking config variant is attached.
type ServiceCategory string

const (
	CategoryLaundry        ServiceCategory = "laundry"
	CategoryDining         ServiceCategory = "dining"
	CategoryTransportation ServiceCategory = "transportation"
	CategoryHousekeeping   ServiceCategory = "housekeeping"
	// CategoryGeneral is the fallback for categories with no dedicated config;
	// the taxonomy is expected to grow ahead of this service.
	CategoryGeneral ServiceCategory = "general"
)

// HotelRef is the hotel snapshot captured at booking time, not a live reference.
type HotelRef struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// GuestRef is the guest snapshot captured at booking time.
type GuestRef struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Room  string `json:"room,omitempty"`
}

// Schedule is the guest's requested fulfilment window.
type Schedule struct {
	PreferredDate time.Time `json:"preferredDate"`
	PreferredTime string    `json:"preferredTime"` // "HH:MM", 24h
}

// Pricing carries the raw amounts from the owning source. The markup is always
// derived as TotalAmount - BasePrice and never stored.
type Pricing struct {
	BasePrice        float64  `json:"basePrice"`
	TotalAmount      float64  `json:"totalAmount"`
	ExpressSurcharge *float64 `json:"expressSurcharge,omitempty"`
}

// Address is a free-text location with optional handling instructions.
type Address struct {
	Line         string `json:"line"`
	Instructions string `json:"instructions,omitempty"`
}

// Location holds optional pickup and delivery addresses.
type Location struct {
	Pickup   *Address `json:"pickup,omitempty"`
	Delivery *Address `json:"delivery,omitempty"`
}

// LaundryItem is a single garment line on a laundry booking.
type LaundryItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// MenuItem is a single dish line on a dining booking.
type MenuItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type LaundryConfig struct {
	Items []LaundryItem `json:"items"`
}

type DiningConfig struct {
	Items []MenuItem `json:"items"`
}

type TransportConfig struct {
	VehicleType string `json:"vehicleType"`
	Passengers  int    `json:"passengers,omitempty"`
	Route       string `json:"route,omitempty"`
}

type HousekeepingConfig struct {
	IssueType   string `json:"issueType"`
	Description string `json:"description,omitempty"`
	RoomNumber  string `json:"roomNumber,omitempty"`
}

type GeneralConfig struct {
	Notes string `json:"notes,omitempty"`
}

// BookingConfig is a tagged variant: exactly one pointer is non-nil, selected by
// the booking's service category. ExpressRequested travels alongside because any
// category can ask for expedited fulfilment.
type BookingConfig struct {
	Laundry          *LaundryConfig      `json:"laundry,omitempty"`
	Dining           *DiningConfig       `json:"dining,omitempty"`
	Transport        *TransportConfig    `json:"transport,omitempty"`
	Housekeeping     *HousekeepingConfig `json:"housekeeping,omitempty"`
	General          *GeneralConfig      `json:"general,omitempty"`
	ExpressRequested bool                `json:"expressRequested,omitempty"`
}

// Variant returns the populated config variant, used to assert the
// exactly-one-variant invariant.
func (c BookingConfig) Variant() ServiceCategory {
	switch {
	case c.Laundry != nil:
		return CategoryLaundry
	case c.Dining != nil:
		return CategoryDining
	case c.Transport != nil:
		return CategoryTransportation
	case c.Housekeeping != nil:
		return CategoryHousekeeping
	default:
		return CategoryGeneral
	}
}

// Booking is the canonical record the dashboard works with, merged from the two
// upstream shapes. Status is the only field this service ever writes back; all
// other fields are read-only snapshots owned by the source.
type Booking struct {
	ID              string          `json:"id"`
	SourceType      SourceType      `json:"sourceType"`
	DisplayNumber   string          `json:"displayNumber"`
	ServiceName     string          `json:"serviceName"`
	ServiceCategory ServiceCategory `json:"serviceCategory"`
	Hotel           HotelRef        `json:"hotel"`
	Guest           GuestRef        `json:"guest"`
	Status          Status          `json:"status"`
	Schedule        *Schedule       `json:"schedule,omitempty"`
	Pricing         Pricing         `json:"pricing"`
	Config          BookingConfig   `json:"config"`
	Location        *Location       `json:"location,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PricingBreakdown is the display-ready pricing view. ExpressSurcharge stays nil
// when the source never priced the surcharge; ExpressRequested then tells the
// caller the amount is unknown rather than zero.
type PricingBreakdown struct {
	BasePrice        float64  `json:"basePrice"`
	Markup           float64  `json:"markup"`
	TotalAmount      float64  `json:"totalAmount"`
	ExpressSurcharge *float64 `json:"expressSurcharge,omitempty"`
	ExpressRequested bool     `json:"expressRequested,omitempty"`
}
