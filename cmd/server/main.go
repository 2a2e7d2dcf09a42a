// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/insightbiz/insight-core/internal/analysis"
	"github.com/insightbiz/insight-core/internal/api"
	"github.com/insightbiz/insight-core/internal/cache"
	"github.com/insightbiz/insight-core/internal/config"
	"github.com/insightbiz/insight-core/internal/prediction"
	"github.com/insightbiz/insight-core/internal/repository/postgres"
	"github.com/insightbiz/insight-core/internal/service"
	"github.com/insightbiz/insight-core/internal/storage"
	"github.com/insightbiz/insight-core/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("dashboard cache unavailable, running without it")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	thresholds := analysis.DefaultThresholds()
	predictor := prediction.NewClient(cfg.Prediction, thresholds)

	productRepo := postgres.NewProductRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	var reportService *service.ReportService
	if cfg.Export.Enabled {
		store, err := storage.NewS3Client(cfg.Export)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("report export storage unavailable")
		} else {
			reportService = service.NewReportService(productRepo, orderRepo, store, thresholds)
		}
	}

	services := &api.Services{
		Inventory: service.NewInventoryService(productRepo, categoryRepo, dashboardCache, thresholds),
		Checkout:  service.NewCheckoutService(orderRepo, productRepo, dashboardCache),
		Dashboard: service.NewDashboardService(productRepo, orderRepo, predictor, dashboardCache, thresholds),
		Alerts:    service.NewAlertService(productRepo, predictor),
		Reports:   reportService,
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins, cfg.Auth.JWTSecret)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
