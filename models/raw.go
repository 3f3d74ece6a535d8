package models

// Raw upstream record shapes. Each mirrors its source API's JSON exactly; the
// normalizer in services/orders maps them onto the canonical Booking. Dates
// arrive as RFC3339 strings and are parsed during normalization.

// RawService is the embedded service snapshot on a regular order.
type RawService struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// RawHotel is the embedded hotel snapshot on a regular order.
type RawHotel struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RawGuestInfo is the guest contact block on a regular order.
type RawGuestInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	RoomNumber string `json:"roomNumber"`
}

// RawSchedule is the requested fulfilment window on a regular order.
type RawSchedule struct {
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
}

// RawPricing is the pricing block on a regular order.
type RawPricing struct {
	BasePrice        float64  `json:"basePrice"`
	TotalAmount      float64  `json:"totalAmount"`
	ExpressSurcharge *float64 `json:"expressSurcharge"`
}

// RawAddress is a pickup or delivery point on a regular order.
type RawAddress struct {
	Address      string `json:"address"`
	Instructions string `json:"instructions"`
}

// RawLocation groups the optional pickup/delivery addresses.
type RawLocation struct {
	Pickup   *RawAddress `json:"pickup"`
	Delivery *RawAddress `json:"delivery"`
}

// RawOrderItem is a line item (laundry garment or menu dish) on a regular order.
type RawOrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// RawVehicle is the transportation detail block on a regular order.
type RawVehicle struct {
	VehicleType string `json:"vehicleType"`
	Passengers  int    `json:"passengers"`
	Route       string `json:"route"`
}

// RawOrder is one record from GET /orders on the service-order backend.
type RawOrder struct {
	ID           string         `json:"_id"`
	OrderNumber  string         `json:"orderNumber"`
	Service      RawService     `json:"serviceId"`
	Hotel        RawHotel       `json:"hotelId"`
	Guest        RawGuestInfo   `json:"guestInfo"`
	Status       string         `json:"status"`
	Schedule     *RawSchedule   `json:"schedule"`
	Pricing      RawPricing     `json:"pricing"`
	LaundryItems []RawOrderItem `json:"laundryItems"`
	MenuItems    []RawOrderItem `json:"menuItems"`
	Vehicle      *RawVehicle    `json:"vehicleDetail"`
	Express      bool           `json:"isExpress"`
	Notes        string         `json:"specialRequests"`
	Location     *RawLocation   `json:"location"`
	CreatedAt    string         `json:"createdAt"`
}

// RawHousekeepingBooking is one record from GET /housekeeping-bookings on the
// housekeeping backend. The shape is flatter than a regular order: snapshots are
// inlined as scalar fields and there is a single issue block instead of items.
type RawHousekeepingBooking struct {
	ID               string   `json:"_id"`
	BookingNumber    string   `json:"bookingNumber"`
	HotelName        string   `json:"hotelName"`
	GuestName        string   `json:"guestName"`
	GuestPhone       string   `json:"guestPhone"`
	RoomNumber       string   `json:"roomNumber"`
	IssueType        string   `json:"issueType"`
	IssueDescription string   `json:"issueDescription"`
	Status           string   `json:"status"`
	PreferredDate    string   `json:"preferredDate"`
	PreferredTime    string   `json:"preferredTime"`
	BasePrice        float64  `json:"basePrice"`
	TotalAmount      float64  `json:"totalAmount"`
	ExpressSurcharge *float64 `json:"expressSurcharge"`
	IsUrgent         bool     `json:"isUrgent"`
	CreatedAt        string   `json:"createdAt"`
}
