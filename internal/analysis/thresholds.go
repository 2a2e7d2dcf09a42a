// internal/analysis/thresholds.go
package analysis

// Thresholds collects the tunable constants of the analysis engine. The
// defaults mirror the business rules the dashboard shipped with; callers that
// need different cutoffs pass their own copy instead of editing literals.
type Thresholds struct {
	// Overall-status cutoffs, as percentages of products at or below their
	// low-stock threshold.
	CriticalPercent float64
	WarningPercent  float64

	// Demand-to-stock ratios for the restock decision.
	RestockDemandRatio   float64
	OverstockDemandRatio float64

	// SafetyStockFactor is the buffer multiplier applied to predicted demand.
	SafetyStockFactor float64

	// HeuristicDemandFactor derives a placeholder demand from current stock
	// when the scoring service has nothing for a category.
	HeuristicDemandFactor float64

	// Reorder-to-stock ratios for presentation priority bands.
	CriticalReorderRatio float64
	HighReorderRatio     float64

	// Rolling windows and forecast horizon, in days.
	ShortWindowDays     int
	LongWindowDays      int
	ForecastHorizonDays int
}

// DefaultThresholds returns the stock business rules.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalPercent:       30,
		WarningPercent:        15,
		RestockDemandRatio:    1.5,
		OverstockDemandRatio:  0.5,
		SafetyStockFactor:     1.2,
		HeuristicDemandFactor: 0.3,
		CriticalReorderRatio:  2,
		HighReorderRatio:      1,
		ShortWindowDays:       7,
		LongWindowDays:        30,
		ForecastHorizonDays:   90,
	}
}
