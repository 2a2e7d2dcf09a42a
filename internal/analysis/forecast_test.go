package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForecast(t *testing.T) {
	projection := Forecast(DefaultThresholds(), 3000)
	assert.InDelta(t, 100, projection.DailyAverage, 1e-9)
	assert.InDelta(t, 9000, projection.NinetyDayForecast, 1e-9)
}

func TestForecastZeroRevenue(t *testing.T) {
	projection := Forecast(DefaultThresholds(), 0)
	assert.Zero(t, projection.DailyAverage)
	assert.Zero(t, projection.NinetyDayForecast)
}

func TestStockToSales(t *testing.T) {
	ratio := StockToSales(500, 1000)
	assert.True(t, ratio.Valid)
	assert.InDelta(t, 0.5, ratio.Value, 1e-9)
}

func TestStockToSalesZeroSales(t *testing.T) {
	ratio := StockToSales(500, 0)
	assert.False(t, ratio.Valid, "zero sales must surface as insufficient data")
}

func TestDaysOfSupply(t *testing.T) {
	th := DefaultThresholds()

	// 3000 over 30 days is 100/day; 500 of inventory lasts 5 days.
	ratio := DaysOfSupply(th, 500, 3000)
	assert.True(t, ratio.Valid)
	assert.InDelta(t, 5, ratio.Value, 1e-9)

	assert.False(t, DaysOfSupply(th, 500, 0).Valid)
}

func TestMetrics(t *testing.T) {
	m := Metrics(DefaultThresholds(), 500, 700, 3000)
	assert.InDelta(t, 500, m.InventoryValue, 1e-9)
	assert.InDelta(t, 700, m.Sales7Days, 1e-9)
	assert.InDelta(t, 3000, m.Sales30Days, 1e-9)
	assert.InDelta(t, 100, m.DailyAverage, 1e-9)
	assert.InDelta(t, 9000, m.NinetyDayForecast, 1e-9)
	assert.True(t, m.StockToSales.Valid)
	assert.True(t, m.DaysOfSupply.Valid)
}
