package service

import (
	"context"
	"strings"
	"testing"

	"github.com/insightbiz/insight-core/internal/analysis"
	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportStockReport(t *testing.T) {
	products := newFakeProductRepo(
		domain.Product{ID: 1, Name: "Espresso Beans", SKU: "ESP-01", CategoryName: "Coffee", CostPrice: 8, SellingPrice: 12, StockQuantity: 3, LowStockThreshold: 10},
	)
	orders := newFakeOrderRepo(products)
	store := newFakeStore()
	svc := NewReportService(products, orders, store, analysis.DefaultThresholds())

	key, err := svc.ExportStockReport(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "reports/user-1/stock_"))

	data, ok := store.objects[key]
	require.True(t, ok)
	csv := string(data)
	assert.Contains(t, csv, "ESP-01")
	assert.Contains(t, csv, "low_stock")
	assert.Contains(t, csv, "24.00") // 3 units at cost 8
}

func TestExportRequiresConfiguredStore(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	svc := NewReportService(products, orders, nil, analysis.DefaultThresholds())

	_, err := svc.ExportStockReport(context.Background(), "user-1")
	assert.Error(t, err)
	_, err = svc.ExportOrderHistory(context.Background(), "user-1", 30)
	assert.Error(t, err)
}
