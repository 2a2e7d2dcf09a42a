// internal/analysis/forecast.go
package analysis

import "github.com/insightbiz/insight-core/internal/domain"

// Projection extrapolates a revenue forecast from a trailing 30-day figure.
type Projection struct {
	DailyAverage      float64
	NinetyDayForecast float64
}

// Forecast projects revenue over the forecast horizon from the 30-day daily
// average. Zero trailing revenue yields a zero forecast, not an error.
func Forecast(th Thresholds, last30DaysRevenue float64) Projection {
	daily := last30DaysRevenue / float64(th.LongWindowDays)
	return Projection{
		DailyAverage:      daily,
		NinetyDayForecast: daily * float64(th.ForecastHorizonDays),
	}
}

// StockToSales is inventory value over trailing 30-day sales. When sales are
// zero the ratio is undefined and reported as invalid, never as a numeric 0.
func StockToSales(inventoryValue, sales30Days float64) domain.Ratio {
	if sales30Days == 0 {
		return domain.Ratio{}
	}
	return domain.Ratio{Value: inventoryValue / sales30Days, Valid: true}
}

// DaysOfSupply estimates days until inventory depletes at the trailing daily
// sales rate, with the same undefined-when-zero handling as StockToSales.
func DaysOfSupply(th Thresholds, inventoryValue, sales30Days float64) domain.Ratio {
	if sales30Days == 0 {
		return domain.Ratio{}
	}
	dailyRate := sales30Days / float64(th.LongWindowDays)
	return domain.Ratio{Value: inventoryValue / dailyRate, Valid: true}
}

// Metrics assembles the dashboard's headline metric block.
func Metrics(th Thresholds, inventoryValue, sales7Days, sales30Days float64) domain.PerformanceMetrics {
	projection := Forecast(th, sales30Days)
	return domain.PerformanceMetrics{
		InventoryValue:    inventoryValue,
		StockToSales:      StockToSales(inventoryValue, sales30Days),
		DaysOfSupply:      DaysOfSupply(th, inventoryValue, sales30Days),
		Sales7Days:        sales7Days,
		Sales30Days:       sales30Days,
		DailyAverage:      projection.DailyAverage,
		NinetyDayForecast: projection.NinetyDayForecast,
	}
}
