// internal/domain/status.go
package domain

import "strings"

// Per-product stock statuses.
const (
	StockOutOfStock = "out_of_stock"
	StockLow        = "low_stock"
	StockAdequate   = "adequate"
)

// Severity split inside the low band, used for UI emphasis only.
const (
	SeverityCritical = "critical"
	SeverityLow      = "low"
)

// Overall inventory statuses, in derivation priority order.
const (
	OverallCritical       = "critical"
	OverallWarning        = "warning"
	OverallNeedsAttention = "needs_attention"
	OverallHealthy        = "healthy"
	OverallNoData         = "no_data"
)

// Restock decisions.
const (
	DecisionRestock   = "restock"
	DecisionOK        = "ok"
	DecisionOverstock = "overstock"
)

// Presentation priority bands for restock rows.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high_priority"
	PriorityNormal   = "normal"
)

// Estimate sources for the restock panel.
const (
	EstimateExternal  = "external"
	EstimateHeuristic = "heuristic"
)

// UncategorizedLabel is the bucket for products without a category and for
// order lines whose product name no longer matches the catalog.
const UncategorizedLabel = "Uncategorized"

// Order statuses.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

var orderStatuses = map[string]bool{
	OrderPending:   true,
	OrderCompleted: true,
	OrderCancelled: true,
}

// ParseOrderStatus normalizes a status label, reporting whether it is known.
func ParseOrderStatus(label string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(label))
	return s, orderStatuses[s]
}
