// internal/analysis/aggregate.go
package analysis

import (
	"strings"
	"time"

	"github.com/insightbiz/insight-core/internal/domain"
)

// Aggregate folds a snapshot of products and orders into the dashboard's
// StockAnalysis. It performs no I/O and is idempotent over the same snapshot.
func Aggregate(th Thresholds, products []domain.Product, now time.Time) domain.StockAnalysis {
	analysis := domain.StockAnalysis{
		Categories:      make(map[string]domain.CategoryBreakdown),
		LowStockItems:   make([]domain.Product, 0),
		OutOfStockItems: make([]domain.Product, 0),
	}

	if len(products) == 0 {
		analysis.Status = domain.OverallNoData
		return analysis
	}

	lowCount := 0
	outCount := 0
	for _, p := range products {
		threshold := p.Threshold()

		analysis.TotalProducts++
		analysis.TotalStockUnits += p.StockQuantity
		analysis.TotalStockValue += float64(p.StockQuantity) * p.CostPrice

		category := categoryLabel(p.CategoryName)
		breakdown := analysis.Categories[category]
		breakdown.Count++
		breakdown.TotalStock += p.StockQuantity

		if AtOrBelowThreshold(p.StockQuantity, threshold) {
			lowCount++
			breakdown.LowStockCount++
			analysis.LowStockItems = append(analysis.LowStockItems, p)
		}
		if p.StockQuantity == 0 {
			outCount++
			analysis.OutOfStockItems = append(analysis.OutOfStockItems, p)
		}

		analysis.Categories[category] = breakdown
	}

	lowPct := float64(lowCount) / float64(analysis.TotalProducts) * 100
	analysis.LowStockPercentage = round1(lowPct)
	analysis.Status = overallStatus(th, lowPct, outCount)

	return analysis
}

// overallStatus derives the headline status. First match wins.
func overallStatus(th Thresholds, lowPct float64, outOfStockCount int) string {
	switch {
	case lowPct > th.CriticalPercent:
		return domain.OverallCritical
	case lowPct > th.WarningPercent:
		return domain.OverallWarning
	case outOfStockCount > 0:
		return domain.OverallNeedsAttention
	default:
		return domain.OverallHealthy
	}
}

// WindowRevenue sums the totals of completed orders created within the last
// N days. Pending and cancelled orders never count as revenue.
func WindowRevenue(orders []domain.Order, now time.Time, days int) float64 {
	cutoff := now.AddDate(0, 0, -days)
	var total float64
	for _, o := range orders {
		if o.Status != domain.OrderCompleted {
			continue
		}
		if o.CreatedAt.Before(cutoff) {
			continue
		}
		total += o.Total
	}
	return total
}

// CategoryRevenue breaks 30-day completed-order revenue down by category.
// Order lines carry a denormalized product name, so the owning category is
// resolved by case-insensitive name match against the current catalog;
// unmatched lines land in "Uncategorized". The name join is approximate:
// renamed products and name collisions will misattribute revenue.
func CategoryRevenue(th Thresholds, products []domain.Product, orders []domain.Order, now time.Time) map[string]float64 {
	byName := make(map[string]string, len(products))
	for _, p := range products {
		byName[strings.ToLower(p.Name)] = categoryLabel(p.CategoryName)
	}

	cutoff := now.AddDate(0, 0, -th.LongWindowDays)
	revenue := make(map[string]float64)
	for _, o := range orders {
		if o.Status != domain.OrderCompleted || o.CreatedAt.Before(cutoff) {
			continue
		}
		for _, item := range o.Items {
			category, ok := byName[strings.ToLower(item.ProductName)]
			if !ok {
				category = domain.UncategorizedLabel
			}
			revenue[category] += item.LineTotal
		}
	}
	return revenue
}

func categoryLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return domain.UncategorizedLabel
	}
	return name
}
