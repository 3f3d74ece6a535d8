package orders

import (
	"strings"
	"time"

	"concierge/models"
)

// Defaults applied when an upstream record omits optional fields.
const (
	defaultGuestName     = "Unknown Guest"
	defaultPreferredTime = "09:00"
)

// parseUpstreamTime accepts the two timestamp formats the upstreams emit.
func parseUpstreamTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

// fallbackDisplayNumber derives a human-facing number from the opaque id when
// the upstream never assigned one.
func fallbackDisplayNumber(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "BK-" + strings.ToUpper(id)
}

// normalizeStatus maps an upstream status string onto the lifecycle enum.
// Unknown strings fall back to pending: status is mutable state, not identity,
// and the dashboard must still show the booking.
func normalizeStatus(s string) models.Status {
	status, err := models.ParseStatus(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return models.StatusPending
	}
	return status
}

func normalizeCategory(s string) models.ServiceCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "laundry":
		return models.CategoryLaundry
	case "dining", "food", "restaurant":
		return models.CategoryDining
	case "transportation", "transport":
		return models.CategoryTransportation
	case "housekeeping":
		return models.CategoryHousekeeping
	default:
		// The category taxonomy grows upstream ahead of this service; unknown
		// categories get the generic config rather than failing the record.
		return models.CategoryGeneral
	}
}

// NormalizeOrder maps one raw service order onto the canonical Booking.
// Pure mapping, no side effects.
func NormalizeOrder(raw models.RawOrder) (models.Booking, error) {
	if raw.ID == "" {
		return models.Booking{}, &MalformedRecordError{Source: models.SourceRegular, Field: "_id"}
	}

	booking := models.Booking{
		ID:              raw.ID,
		SourceType:      models.SourceRegular,
		DisplayNumber:   raw.OrderNumber,
		ServiceName:     raw.Service.Name,
		ServiceCategory: normalizeCategory(raw.Service.Category),
		Status:          normalizeStatus(raw.Status),
		CreatedAt:       parseUpstreamTime(raw.CreatedAt),
		Hotel: models.HotelRef{
			ID:    raw.Hotel.ID,
			Name:  raw.Hotel.Name,
			Email: raw.Hotel.Email,
			Phone: raw.Hotel.Phone,
		},
		Guest: models.GuestRef{
			Name:  raw.Guest.Name,
			Email: raw.Guest.Email,
			Phone: raw.Guest.Phone,
			Room:  raw.Guest.RoomNumber,
		},
		Pricing: models.Pricing{
			BasePrice:        raw.Pricing.BasePrice,
			TotalAmount:      raw.Pricing.TotalAmount,
			ExpressSurcharge: raw.Pricing.ExpressSurcharge,
		},
	}

	if booking.Guest.Name == "" {
		booking.Guest.Name = defaultGuestName
	}
	if booking.Pricing.TotalAmount < booking.Pricing.BasePrice {
		booking.Pricing.TotalAmount = booking.Pricing.BasePrice
	}
	if booking.DisplayNumber == "" {
		booking.DisplayNumber = fallbackDisplayNumber(raw.ID)
	}

	if raw.Schedule != nil {
		schedule := models.Schedule{
			PreferredDate: parseUpstreamTime(raw.Schedule.PreferredDate),
			PreferredTime: raw.Schedule.PreferredTime,
		}
		if schedule.PreferredTime == "" {
			schedule.PreferredTime = defaultPreferredTime
		}
		booking.Schedule = &schedule
	}

	if raw.Location != nil {
		location := models.Location{}
		if raw.Location.Pickup != nil {
			location.Pickup = &models.Address{
				Line:         raw.Location.Pickup.Address,
				Instructions: raw.Location.Pickup.Instructions,
			}
		}
		if raw.Location.Delivery != nil {
			location.Delivery = &models.Address{
				Line:         raw.Location.Delivery.Address,
				Instructions: raw.Location.Delivery.Instructions,
			}
		}
		if location.Pickup != nil || location.Delivery != nil {
			booking.Location = &location
		}
	}

	booking.Config = buildOrderConfig(raw, booking.ServiceCategory)
	return booking, nil
}

// buildOrderConfig populates exactly one config variant for the category.
func buildOrderConfig(raw models.RawOrder, category models.ServiceCategory) models.BookingConfig {
	config := models.BookingConfig{ExpressRequested: raw.Express}

	switch category {
	case models.CategoryLaundry:
		items := make([]models.LaundryItem, 0, len(raw.LaundryItems))
		for _, item := range raw.LaundryItems {
			items = append(items, models.LaundryItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
		}
		config.Laundry = &models.LaundryConfig{Items: items}
	case models.CategoryDining:
		items := make([]models.MenuItem, 0, len(raw.MenuItems))
		for _, item := range raw.MenuItems {
			items = append(items, models.MenuItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
		}
		config.Dining = &models.DiningConfig{Items: items}
	case models.CategoryTransportation:
		transport := models.TransportConfig{}
		if raw.Vehicle != nil {
			transport = models.TransportConfig{
				VehicleType: raw.Vehicle.VehicleType,
				Passengers:  raw.Vehicle.Passengers,
				Route:       raw.Vehicle.Route,
			}
		}
		config.Transport = &transport
	case models.CategoryHousekeeping:
		config.Housekeeping = &models.HousekeepingConfig{RoomNumber: raw.Guest.RoomNumber}
	default:
		config.General = &models.GeneralConfig{Notes: raw.Notes}
	}
	return config
}

// NormalizeHousekeeping maps one raw housekeeping booking onto the canonical
// Booking. Pure mapping, no side effects.
func NormalizeHousekeeping(raw models.RawHousekeepingBooking) (models.Booking, error) {
	if raw.ID == "" {
		return models.Booking{}, &MalformedRecordError{Source: models.SourceHousekeeping, Field: "_id"}
	}

	booking := models.Booking{
		ID:              raw.ID,
		SourceType:      models.SourceHousekeeping,
		DisplayNumber:   raw.BookingNumber,
		ServiceName:     "Housekeeping",
		ServiceCategory: models.CategoryHousekeeping,
		Status:          normalizeStatus(raw.Status),
		CreatedAt:       parseUpstreamTime(raw.CreatedAt),
		Hotel: models.HotelRef{
			Name: raw.HotelName,
		},
		Guest: models.GuestRef{
			Name:  raw.GuestName,
			Phone: raw.GuestPhone,
			Room:  raw.RoomNumber,
		},
		Pricing: models.Pricing{
			BasePrice:        raw.BasePrice,
			TotalAmount:      raw.TotalAmount,
			ExpressSurcharge: raw.ExpressSurcharge,
		},
		Config: models.BookingConfig{
			ExpressRequested: raw.IsUrgent,
			Housekeeping: &models.HousekeepingConfig{
				IssueType:   raw.IssueType,
				Description: raw.IssueDescription,
				RoomNumber:  raw.RoomNumber,
			},
		},
	}

	if booking.Guest.Name == "" {
		booking.Guest.Name = defaultGuestName
	}
	if booking.Pricing.TotalAmount < booking.Pricing.BasePrice {
		booking.Pricing.TotalAmount = booking.Pricing.BasePrice
	}
	if booking.DisplayNumber == "" {
		booking.DisplayNumber = fallbackDisplayNumber(raw.ID)
	}

	if raw.PreferredDate != "" || raw.PreferredTime != "" {
		schedule := models.Schedule{
			PreferredDate: parseUpstreamTime(raw.PreferredDate),
			PreferredTime: raw.PreferredTime,
		}
		if schedule.PreferredTime == "" {
			schedule.PreferredTime = defaultPreferredTime
		}
		booking.Schedule = &schedule
	}

	return booking, nil
}

// NormalizeOrders normalizes a batch of raw service orders, dropping malformed
// records and counting them. Never aborts the batch on one bad record.
func NormalizeOrders(raws []models.RawOrder) ([]models.Booking, int) {
	bookings := make([]models.Booking, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		booking, err := NormalizeOrder(raw)
		if err != nil {
			dropped++
			continue
		}
		bookings = append(bookings, booking)
	}
	return bookings, dropped
}

// NormalizeHousekeepingBatch normalizes a batch of raw housekeeping bookings
// with the same drop-and-count contract as NormalizeOrders.
func NormalizeHousekeepingBatch(raws []models.RawHousekeepingBooking) ([]models.Booking, int) {
	bookings := make([]models.Booking, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		booking, err := NormalizeHousekeeping(raw)
		if err != nil {
			dropped++
			continue
		}
		bookings = append(bookings, booking)
	}
	return bookings, dropped
}
