// internal/analysis/classifier.go
package analysis

import "github.com/insightbiz/insight-core/internal/domain"

// Classify maps a product's stock level to exactly one status. It is total
// over all non-negative (stock, threshold) pairs and has no error cases.
func Classify(stockQuantity, lowStockThreshold int) string {
	switch {
	case stockQuantity == 0:
		return domain.StockOutOfStock
	case stockQuantity <= lowStockThreshold:
		return domain.StockLow
	default:
		return domain.StockAdequate
	}
}

// Severity splits the low band for UI emphasis: critical when stock has
// fallen under half the threshold. It does not feed any decision output.
func Severity(stockQuantity, lowStockThreshold int) string {
	if float64(stockQuantity) < 0.5*float64(lowStockThreshold) {
		return domain.SeverityCritical
	}
	return domain.SeverityLow
}

// AtOrBelowThreshold is the low-stock-or-worse predicate used by the
// aggregation counters; it includes out-of-stock items.
func AtOrBelowThreshold(stockQuantity, lowStockThreshold int) bool {
	return stockQuantity <= lowStockThreshold
}
