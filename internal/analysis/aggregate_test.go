package analysis

import (
	"testing"
	"time"

	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func product(name, category string, stock, threshold int, cost float64) domain.Product {
	return domain.Product{
		Name:              name,
		CategoryName:      category,
		StockQuantity:     stock,
		LowStockThreshold: threshold,
		CostPrice:         cost,
	}
}

func completedOrder(total float64, ageDays int, items ...domain.OrderItem) domain.Order {
	return domain.Order{
		Status:    domain.OrderCompleted,
		Total:     total,
		CreatedAt: testNow.AddDate(0, 0, -ageDays),
		Items:     items,
	}
}

func TestAggregateEmpty(t *testing.T) {
	analysis := Aggregate(DefaultThresholds(), nil, testNow)

	assert.Equal(t, 0, analysis.TotalProducts)
	assert.Equal(t, 0, analysis.TotalStockUnits)
	assert.Zero(t, analysis.TotalStockValue)
	assert.Equal(t, domain.OverallNoData, analysis.Status)
	assert.Empty(t, analysis.LowStockItems)
	assert.Empty(t, analysis.OutOfStockItems)
	assert.Empty(t, analysis.Categories)
}

func TestAggregateCountsAndStatus(t *testing.T) {
	products := []domain.Product{
		product("Espresso Beans", "Coffee", 0, 10, 8),
		product("Milk", "Dairy", 5, 10, 1.5),
		product("Cups", "Supplies", 50, 10, 0.2),
	}

	analysis := Aggregate(DefaultThresholds(), products, testNow)

	assert.Equal(t, 3, analysis.TotalProducts)
	assert.Len(t, analysis.LowStockItems, 2)
	assert.Len(t, analysis.OutOfStockItems, 1)
	assert.InDelta(t, 66.7, analysis.LowStockPercentage, 1e-9)
	assert.Equal(t, domain.OverallCritical, analysis.Status)
	assert.Equal(t, 55, analysis.TotalStockUnits)
	assert.InDelta(t, 5*1.5+50*0.2, analysis.TotalStockValue, 1e-9)
}

func TestAggregateCategoryBreakdown(t *testing.T) {
	products := []domain.Product{
		product("Espresso Beans", "Coffee", 3, 10, 8),
		product("Drip Blend", "Coffee", 40, 10, 6),
		product("Mystery Crate", "", 7, 10, 2),
	}

	analysis := Aggregate(DefaultThresholds(), products, testNow)

	coffee := analysis.Categories["Coffee"]
	assert.Equal(t, 2, coffee.Count)
	assert.Equal(t, 43, coffee.TotalStock)
	assert.Equal(t, 1, coffee.LowStockCount)

	uncategorized, ok := analysis.Categories[domain.UncategorizedLabel]
	require.True(t, ok, "missing category must bucket under Uncategorized")
	assert.Equal(t, 1, uncategorized.Count)
	assert.Equal(t, 1, uncategorized.LowStockCount)
}

func TestAggregateStatusLadder(t *testing.T) {
	th := DefaultThresholds()

	// 1 of 5 low: 20% -> warning
	products := []domain.Product{
		product("a", "X", 2, 10, 1),
		product("b", "X", 30, 10, 1),
		product("c", "X", 30, 10, 1),
		product("d", "X", 30, 10, 1),
		product("e", "X", 30, 10, 1),
	}
	assert.Equal(t, domain.OverallWarning, Aggregate(th, products, testNow).Status)

	// 1 of 10 low but it is out of stock: 10% -> needs_attention
	products = []domain.Product{product("a", "X", 0, 10, 1)}
	for i := 0; i < 9; i++ {
		products = append(products, product("b", "X", 30, 10, 1))
	}
	assert.Equal(t, domain.OverallNeedsAttention, Aggregate(th, products, testNow).Status)

	// Everything stocked -> healthy
	products = []domain.Product{
		product("a", "X", 30, 10, 1),
		product("b", "X", 40, 10, 1),
	}
	assert.Equal(t, domain.OverallHealthy, Aggregate(th, products, testNow).Status)
}

func TestAggregateDefaultsThreshold(t *testing.T) {
	// Threshold left unset (0) falls back to the default of 10.
	analysis := Aggregate(DefaultThresholds(), []domain.Product{
		product("a", "X", 8, 0, 1),
	}, testNow)
	assert.Len(t, analysis.LowStockItems, 1)
}

func TestAggregateIdempotent(t *testing.T) {
	products := []domain.Product{
		product("Espresso Beans", "Coffee", 0, 10, 8),
		product("Milk", "Dairy", 5, 10, 1.5),
		product("Cups", "Supplies", 50, 10, 0.2),
	}
	first := Aggregate(DefaultThresholds(), products, testNow)
	second := Aggregate(DefaultThresholds(), products, testNow)
	assert.Equal(t, first, second)
}

func TestWindowRevenue(t *testing.T) {
	orders := []domain.Order{
		completedOrder(100, 1),
		completedOrder(200, 6),
		completedOrder(400, 20),
		completedOrder(800, 45),
		{Status: domain.OrderPending, Total: 9999, CreatedAt: testNow},
		{Status: domain.OrderCancelled, Total: 9999, CreatedAt: testNow},
	}

	assert.InDelta(t, 300, WindowRevenue(orders, testNow, 7), 1e-9)
	assert.InDelta(t, 700, WindowRevenue(orders, testNow, 30), 1e-9)
}

func TestCategoryRevenueNameJoin(t *testing.T) {
	th := DefaultThresholds()
	products := []domain.Product{
		product("Espresso Beans", "Coffee", 10, 10, 8),
		product("Milk", "Dairy", 10, 10, 1.5),
	}
	orders := []domain.Order{
		completedOrder(0, 2,
			domain.OrderItem{ProductName: "ESPRESSO BEANS", Quantity: 2, UnitPrice: 12, LineTotal: 24},
			domain.OrderItem{ProductName: "milk", Quantity: 1, UnitPrice: 3, LineTotal: 3},
			domain.OrderItem{ProductName: "Discontinued Thing", Quantity: 1, UnitPrice: 5, LineTotal: 5},
		),
		completedOrder(0, 40,
			domain.OrderItem{ProductName: "Milk", Quantity: 10, UnitPrice: 3, LineTotal: 30},
		),
	}

	revenue := CategoryRevenue(th, products, orders, testNow)

	assert.InDelta(t, 24, revenue["Coffee"], 1e-9)
	assert.InDelta(t, 3, revenue["Dairy"], 1e-9)
	assert.InDelta(t, 5, revenue[domain.UncategorizedLabel], 1e-9)
}
