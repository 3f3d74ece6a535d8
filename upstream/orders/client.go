// Package ordersapi is the HTTP client for the generic service-order backend.
package ordersapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"concierge/models"
)

// Client talks to the service-order API. The upstream supports no server-side
// filtering; every read returns the full record set for the provider.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds an orders client with the given base URL and timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// FetchOrders retrieves all raw service orders.
func (c *Client) FetchOrders(ctx context.Context) ([]models.RawOrder, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/orders", nil)
	if err != nil {
		return nil, fmt.Errorf("build orders request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch orders: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Orders []models.RawOrder `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode orders response: %w", err)
	}
	return payload.Orders, nil
}

// UpdateOrderStatus pushes a status change and returns the echoed record, so the
// caller can re-normalize server-side effects like updated timestamps.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status string) (models.RawOrder, error) {
	body, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return models.RawOrder{}, fmt.Errorf("encode status payload: %w", err)
	}

	url := fmt.Sprintf("%s/orders/%s/status", c.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return models.RawOrder{}, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return models.RawOrder{}, fmt.Errorf("update order status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.RawOrder{}, fmt.Errorf("update order status: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Order models.RawOrder `json:"order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.RawOrder{}, fmt.Errorf("decode status response: %w", err)
	}
	return payload.Order, nil
}

// Ping checks the upstream is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/orders", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("orders upstream unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
