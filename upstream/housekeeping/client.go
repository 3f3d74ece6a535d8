// Package housekeepingapi is the HTTP client for the housekeeping booking backend.
package housekeepingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"concierge/models"
)

// Client talks to the housekeeping API. Its records are flatter than service
// orders and live behind a separate set of endpoints.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a housekeeping client with the given base URL and timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// FetchBookings retrieves all raw housekeeping bookings.
func (c *Client) FetchBookings(ctx context.Context) ([]models.RawHousekeepingBooking, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/housekeeping-bookings", nil)
	if err != nil {
		return nil, fmt.Errorf("build housekeeping request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch housekeeping bookings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch housekeeping bookings: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Bookings []models.RawHousekeepingBooking `json:"bookings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode housekeeping response: %w", err)
	}
	return payload.Bookings, nil
}

// UpdateBookingStatus pushes a status change and returns the echoed record.
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status string) (models.RawHousekeepingBooking, error) {
	body, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return models.RawHousekeepingBooking{}, fmt.Errorf("encode status payload: %w", err)
	}

	url := fmt.Sprintf("%s/housekeeping-bookings/%s/status", c.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return models.RawHousekeepingBooking{}, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return models.RawHousekeepingBooking{}, fmt.Errorf("update housekeeping status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.RawHousekeepingBooking{}, fmt.Errorf("update housekeeping status: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Booking models.RawHousekeepingBooking `json:"booking"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.RawHousekeepingBooking{}, fmt.Errorf("decode status response: %w", err)
	}
	return payload.Booking, nil
}

// Ping checks the upstream is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/housekeeping-bookings", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("housekeeping upstream unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
