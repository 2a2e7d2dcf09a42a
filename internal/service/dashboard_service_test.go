package service

import (
	"context"
	"testing"
	"time"

	"github.com/insightbiz/insight-core/internal/analysis"
	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardFixture(predictor *fakePredictor) (*DashboardService, *fakeProductRepo, *fakeOrderRepo) {
	products := newFakeProductRepo(
		domain.Product{ID: 1, Name: "Espresso Beans", SKU: "ESP-01", CategoryName: "Coffee", SellingPrice: 12, CostPrice: 8, StockQuantity: 3, LowStockThreshold: 10},
		domain.Product{ID: 2, Name: "Cups", SKU: "CUP-01", CategoryName: "Supplies", SellingPrice: 1, CostPrice: 0.2, StockQuantity: 200, LowStockThreshold: 20},
	)
	orders := newFakeOrderRepo(products)
	svc := NewDashboardService(products, orders, predictor, nil, analysis.DefaultThresholds())
	return svc, products, orders
}

func TestGetDashboard(t *testing.T) {
	th := analysis.DefaultThresholds()
	predictor := &fakePredictor{
		th: th,
		responses: map[string]analysis.Estimate{
			"Coffee": analysis.NewExternalEstimate(30, "Understock"),
		},
	}
	svc, _, orders := newDashboardFixture(predictor)

	completed := &domain.Order{Status: domain.OrderCompleted, Total: 300, CreatedAt: time.Now().AddDate(0, 0, -2)}
	orders.orders[orders.nextID] = completed
	completed.ID = orders.nextID
	orders.nextID++

	dashboard, err := svc.GetDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.Analysis.TotalProducts)
	assert.InDelta(t, 50, dashboard.Analysis.LowStockPercentage, 1e-9)
	assert.Equal(t, domain.OverallCritical, dashboard.Analysis.Status)

	assert.InDelta(t, 300, dashboard.Metrics.Sales30Days, 1e-9)
	assert.InDelta(t, 10, dashboard.Metrics.DailyAverage, 1e-9)
	assert.InDelta(t, 900, dashboard.Metrics.NinetyDayForecast, 1e-9)

	require.Len(t, dashboard.Predictions, 2)
	// Coffee got an external understock estimate, so it sorts first.
	first := dashboard.Predictions[0]
	assert.Equal(t, "Espresso Beans", first.ProductName)
	assert.Equal(t, domain.DecisionRestock, first.Decision)
	assert.Equal(t, domain.EstimateExternal, first.EstimateKind)

	// Cups had no response and fell back to the heuristic.
	second := dashboard.Predictions[1]
	assert.Equal(t, domain.EstimateHeuristic, second.EstimateKind)
	assert.NotEqual(t, domain.DecisionOverstock, second.Decision)
}

func TestGetDashboardEmptyCatalog(t *testing.T) {
	th := analysis.DefaultThresholds()
	predictor := &fakePredictor{th: th}
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	svc := NewDashboardService(products, orders, predictor, nil, th)

	dashboard, err := svc.GetDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, domain.OverallNoData, dashboard.Analysis.Status)
	assert.Empty(t, dashboard.Predictions)
	assert.False(t, dashboard.Metrics.StockToSales.Valid)
	assert.False(t, dashboard.Metrics.DaysOfSupply.Valid)
}

func TestGetPredictionsSorted(t *testing.T) {
	th := analysis.DefaultThresholds()
	predictor := &fakePredictor{
		th: th,
		responses: map[string]analysis.Estimate{
			"Coffee":   analysis.NewExternalEstimate(30, ""),
			"Supplies": analysis.NewExternalEstimate(10, ""),
		},
	}
	svc, _, _ := newDashboardFixture(predictor)

	rows, err := svc.GetPredictions(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.DecisionRestock, rows[0].Decision)
	assert.Equal(t, 1, predictor.calls)
}
