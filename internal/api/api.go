// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/insightbiz/insight-core/internal/api/handlers"
	"github.com/insightbiz/insight-core/internal/api/middleware"
	"github.com/insightbiz/insight-core/internal/service"
)

type Services struct {
	Inventory *service.InventoryService
	Checkout  *service.CheckoutService
	Dashboard *service.DashboardService
	Alerts    *service.AlertService
	Reports   *service.ReportService
}

func NewRouter(services *Services, allowedOrigins []string, jwtSecret string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.Auth(jwtSecret))

	if services != nil {
		if services.Inventory != nil {
			productHandler := handlers.NewProductHandler(services.Inventory)
			productGroup := apiGroup.Group("/products")
			{
				productGroup.GET("", productHandler.ListProducts)
				productGroup.POST("", productHandler.CreateProduct)
				productGroup.GET("/:id", productHandler.GetProduct)
				productGroup.PUT("/:id", productHandler.UpdateProduct)
				productGroup.DELETE("/:id", productHandler.DeleteProduct)
				productGroup.POST("/:id/stock", productHandler.AdjustStock)
			}
			apiGroup.GET("/low_stock", productHandler.LowStock)
			apiGroup.GET("/categories", productHandler.ListCategories)
			apiGroup.POST("/categories", productHandler.CreateCategory)
		}

		if services.Checkout != nil {
			orderHandler := handlers.NewOrderHandler(services.Checkout)
			orderGroup := apiGroup.Group("/orders")
			{
				orderGroup.GET("", orderHandler.ListOrders)
				orderGroup.POST("", orderHandler.CreateOrder)
				orderGroup.GET("/:id", orderHandler.GetOrder)
				orderGroup.POST("/:id/complete", orderHandler.CompleteOrder)
				orderGroup.POST("/:id/cancel", orderHandler.CancelOrder)
			}
		}

		if services.Dashboard != nil {
			dashboardHandler := handlers.NewDashboardHandler(services.Dashboard, services.Alerts, services.Reports)
			dashboardGroup := apiGroup.Group("/dashboard")
			{
				dashboardGroup.GET("", dashboardHandler.GetDashboard)
				dashboardGroup.GET("/predictions", dashboardHandler.GetPredictions)
				dashboardGroup.GET("/export", dashboardHandler.Export)
			}
			if services.Alerts != nil {
				apiGroup.POST("/alerts/low-stock", dashboardHandler.SendLowStockAlert)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
