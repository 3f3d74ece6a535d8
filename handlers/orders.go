package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"concierge/models"
	"concierge/services/orders"
	"concierge/utils"
)

// OrderHandler exposes the merged orders view over HTTP.
type OrderHandler struct {
	Service orders.OrderViewService
}

// NewOrderHandler returns a handler bound to the given service.
func NewOrderHandler(service orders.OrderViewService) *OrderHandler {
	return &OrderHandler{Service: service}
}

// bookingView is one booking plus its resolved pricing breakdown.
type bookingView struct {
	models.Booking
	PricingBreakdown models.PricingBreakdown `json:"pricingBreakdown"`
}

func toView(booking models.Booking) bookingView {
	return bookingView{Booking: booking, PricingBreakdown: orders.ResolvePricing(booking)}
}

// ListOrders handles GET /api/orders with compound filter/sort/page params.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	opts := models.QueryOptions{
		SortBy:  c.DefaultQuery("sortBy", "createdAt"),
		SortDir: models.SortDirection(c.DefaultQuery("sortDir", "desc")),
	}

	if status := c.Query("status"); status != "" && status != "all" {
		parsed, err := models.ParseStatus(status)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid status filter", err.Error())
			return
		}
		opts.Status = parsed
	}
	opts.DateRange = models.DateRange(c.DefaultQuery("dateRange", "all"))
	opts.Category = models.ServiceCategory(c.DefaultQuery("category", "all"))

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		opts.Page = page
	}
	if pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10")); err == nil {
		opts.PageSize = pageSize
	}

	refresh := strings.EqualFold(c.Query("refresh"), "true")

	result, snapshot, err := h.Service.QueryOrders(c.Request.Context(), opts, refresh)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to load orders", err.Error())
		return
	}

	items := make([]bookingView, 0, len(result.Items))
	for _, booking := range result.Items {
		items = append(items, toView(booking))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"totalCount": result.TotalCount,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"pageSize":   result.PageSize,
		"dropped":    snapshot.Dropped,
		"partial":    snapshot.Partial,
		"fetchedAt":  snapshot.FetchedAt,
	})
}

// GetOrder handles GET /api/orders/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	booking, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		var unavailable *orders.AdapterUnavailableError
		if errors.As(err, &unavailable) {
			utils.JSONError(c, http.StatusBadGateway, "Failed to load booking", err.Error())
			return
		}
		utils.JSONError(c, http.StatusNotFound, "Booking not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": toView(booking)})
}

// UpdateOrderStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	target, err := models.ParseStatus(input.Status)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", err.Error())
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		var invalid *orders.InvalidTransitionError
		if errors.As(err, &invalid) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid status transition", invalid.Error())
			return
		}
		var unavailable *orders.AdapterUnavailableError
		if errors.As(err, &unavailable) {
			// The optimistic change was rolled back; the client may retry.
			utils.JSONError(c, http.StatusBadGateway, "Booking source unavailable", unavailable.Error())
			return
		}
		utils.JSONError(c, http.StatusNotFound, "Booking not found", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": toView(updated)})
}

// OrderSummary handles GET /api/orders/summary for the dashboard cards.
func (h *OrderHandler) OrderSummary(c *gin.Context) {
	summary, err := h.Service.StatusSummary(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to load summary", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// Health handles GET /health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
