package orders

import (
	"context"

	"concierge/models"
	housekeepingapi "concierge/upstream/housekeeping"
	ordersapi "concierge/upstream/orders"
)

// Source is one upstream booking backend seen through the normalizer: reads
// come back canonical with a dropped-record count, writes echo the updated
// record re-normalized.
type Source interface {
	Type() models.SourceType
	Fetch(ctx context.Context) ([]models.Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) (models.Booking, error)
}

// Registry maps a booking's source type to the adapter that owns its writes.
// The transition manager is the single consumer of the write side, so nothing
// above it ever branches on source type.
type Registry map[models.SourceType]Source

// NewRegistry indexes the given sources by their type.
func NewRegistry(sources ...Source) Registry {
	registry := make(Registry, len(sources))
	for _, source := range sources {
		registry[source.Type()] = source
	}
	return registry
}

// regularSource adapts the service-order API client.
type regularSource struct {
	client *ordersapi.Client
}

// NewRegularSource wraps the service-order client as a Source.
func NewRegularSource(client *ordersapi.Client) Source {
	return &regularSource{client: client}
}

func (s *regularSource) Type() models.SourceType {
	return models.SourceRegular
}

func (s *regularSource) Fetch(ctx context.Context) ([]models.Booking, int, error) {
	raws, err := s.client.FetchOrders(ctx)
	if err != nil {
		return nil, 0, &AdapterUnavailableError{Source: models.SourceRegular, Op: "fetch", Err: err}
	}
	bookings, dropped := NormalizeOrders(raws)
	return bookings, dropped, nil
}

func (s *regularSource) UpdateStatus(ctx context.Context, id string, status models.Status) (models.Booking, error) {
	raw, err := s.client.UpdateOrderStatus(ctx, id, string(status))
	if err != nil {
		return models.Booking{}, &AdapterUnavailableError{Source: models.SourceRegular, Op: "update", Err: err}
	}
	booking, err := NormalizeOrder(raw)
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// housekeepingSource adapts the housekeeping API client.
type housekeepingSource struct {
	client *housekeepingapi.Client
}

// NewHousekeepingSource wraps the housekeeping client as a Source.
func NewHousekeepingSource(client *housekeepingapi.Client) Source {
	return &housekeepingSource{client: client}
}

func (s *housekeepingSource) Type() models.SourceType {
	return models.SourceHousekeeping
}

func (s *housekeepingSource) Fetch(ctx context.Context) ([]models.Booking, int, error) {
	raws, err := s.client.FetchBookings(ctx)
	if err != nil {
		return nil, 0, &AdapterUnavailableError{Source: models.SourceHousekeeping, Op: "fetch", Err: err}
	}
	bookings, dropped := NormalizeHousekeepingBatch(raws)
	return bookings, dropped, nil
}

func (s *housekeepingSource) UpdateStatus(ctx context.Context, id string, status models.Status) (models.Booking, error) {
	raw, err := s.client.UpdateBookingStatus(ctx, id, string(status))
	if err != nil {
		return models.Booking{}, &AdapterUnavailableError{Source: models.SourceHousekeeping, Op: "update", Err: err}
	}
	booking, err := NormalizeHousekeeping(raw)
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}
