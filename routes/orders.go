package routes

import (
	"concierge/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterOrderRoutes registers all endpoints for the merged orders view.
func RegisterOrderRoutes(r *gin.Engine, oh *handlers.OrderHandler) {
	api := r.Group("/api/orders")
	{
		api.GET("", oh.ListOrders)
		api.GET("/summary", oh.OrderSummary)
		api.GET("/:id", oh.GetOrder)
		api.PUT("/:id/status", oh.UpdateOrderStatus)
	}

	r.GET("/health", handlers.Health)
}
