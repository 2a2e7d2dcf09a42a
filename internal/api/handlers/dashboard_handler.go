// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/insightbiz/insight-core/internal/api/middleware"
	"github.com/insightbiz/insight-core/internal/service"
)

type DashboardHandler struct {
	dashboards *service.DashboardService
	alerts     *service.AlertService
	reports    *service.ReportService
}

func NewDashboardHandler(
	dashboards *service.DashboardService,
	alerts *service.AlertService,
	reports *service.ReportService,
) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, alerts: alerts, reports: reports}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboards.GetDashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) GetPredictions(c *gin.Context) {
	predictions, err := h.dashboards.GetPredictions(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}

func (h *DashboardHandler) SendLowStockAlert(c *gin.Context) {
	var req struct {
		To string `json:"to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.To) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient address is required"})
		return
	}

	flagged, err := h.alerts.SendLowStockAlert(c.Request.Context(), middleware.UserID(c), req.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flagged": flagged, "sent": flagged > 0})
}

// Export generates a CSV report and uploads it to the export bucket. The
// report query parameter selects "stock" (default) or "orders".
func (h *DashboardHandler) Export(c *gin.Context) {
	if h.reports == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "report export is not configured"})
		return
	}

	var (
		key string
		err error
	)
	switch c.DefaultQuery("report", "stock") {
	case "stock":
		key, err = h.reports.ExportStockReport(c.Request.Context(), middleware.UserID(c))
	case "orders":
		days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
		key, err = h.reports.ExportOrderHistory(c.Request.Context(), middleware.UserID(c), days)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown report type"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key})
}
