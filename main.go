// File: concierge/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concierge/config"
	"concierge/cron"
	"concierge/handlers"
	"concierge/middleware"
	"concierge/routes"
	"concierge/services/orders"
	housekeepingapi "concierge/upstream/housekeeping"
	ordersapi "concierge/upstream/orders"
	"concierge/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSnapshotCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// Upstream clients.
	timeout := config.AppConfig.UpstreamTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ordersClient := ordersapi.NewClient(config.AppConfig.OrdersAPIBaseURL, timeout)
	housekeepingClient := housekeepingapi.NewClient(config.AppConfig.HousekeepingAPIBaseURL, timeout)

	// Source adapters and the merged-view service.
	sources := orders.NewRegistry(
		orders.NewRegularSource(ordersClient),
		orders.NewHousekeepingSource(housekeepingClient),
	)
	orderService := orders.NewDefaultOrderViewService(
		sources,
		utils.GetSnapshotCacheClient(),
		config.AppConfig.SnapshotTTL,
		logger,
	)

	orderHandler := handlers.NewOrderHandler(orderService)

	// Register routes.
	routes.RegisterOrderRoutes(router, orderHandler)

	// Background snapshot refresh and health monitoring.
	cron.InitSnapshotWorker(orderService)
	utils.StartHealthMonitor(utils.GetSnapshotCacheClient(), map[string]utils.UpstreamChecker{
		"orders":       ordersClient.Ping,
		"housekeeping": housekeepingClient.Ping,
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
