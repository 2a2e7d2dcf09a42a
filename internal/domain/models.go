// internal/domain/models.go
package domain

import "time"

// TaxRate is the fixed tax rate applied to every order subtotal.
const TaxRate = 0.05

// DefaultLowStockThreshold is used when a product has no configured threshold.
const DefaultLowStockThreshold = 10

// Product is a catalog item. Stock quantity and low-stock threshold are
// always non-negative; CategoryID is nil for uncategorized products.
type Product struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	SKU               string    `json:"sku" db:"sku"`
	CategoryID        *int64    `json:"category_id" db:"category_id"`
	CategoryName      string    `json:"category_name" db:"category_name"`
	CostPrice         float64   `json:"cost_price" db:"cost_price"`
	SellingPrice      float64   `json:"selling_price" db:"selling_price"`
	StockQuantity     int       `json:"stock_quantity" db:"stock_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold" db:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// Threshold returns the configured low-stock threshold, falling back to the
// default when it was never set.
func (p Product) Threshold() int {
	if p.LowStockThreshold <= 0 {
		return DefaultLowStockThreshold
	}
	return p.LowStockThreshold
}

// Category groups products under a unique name.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Order is a checkout ticket. Only completed orders count as revenue.
type Order struct {
	ID          int64      `json:"id" db:"id"`
	OrderNumber int64      `json:"order_number" db:"order_number"`
	TableLabel  *string    `json:"table_label" db:"table_label"`
	Subtotal    float64    `json:"subtotal" db:"subtotal"`
	Tax         float64    `json:"tax" db:"tax"`
	Total       float64    `json:"total" db:"total"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	Items       []OrderItem `json:"items,omitempty" db:"-"`
}

// OrderItem is a line on an order. ProductName is a snapshot taken at
// checkout time, not a live reference to the catalog; ProductID is kept for
// stock movement and survives product deletion as NULL.
type OrderItem struct {
	ID          int64   `json:"id" db:"id"`
	OrderID     int64   `json:"order_id" db:"order_id"`
	ProductID   *int64  `json:"product_id" db:"product_id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Quantity    int     `json:"quantity" db:"quantity"`
	UnitPrice   float64 `json:"unit_price" db:"unit_price"`
	LineTotal   float64 `json:"line_total" db:"line_total"`
}

// CategoryBreakdown summarizes one category inside a StockAnalysis.
type CategoryBreakdown struct {
	Count         int `json:"count"`
	TotalStock    int `json:"total_stock"`
	LowStockCount int `json:"low_stock_count"`
}

// StockAnalysis is the derived inventory summary. It carries no identity and
// is recomputed on demand from a fresh snapshot of the source rows.
type StockAnalysis struct {
	TotalProducts      int                          `json:"total_products"`
	TotalStockValue    float64                      `json:"total_stock_value"`
	TotalStockUnits    int                          `json:"total_stock_units"`
	LowStockItems      []Product                    `json:"low_stock_items"`
	OutOfStockItems    []Product                    `json:"out_of_stock_items"`
	Categories         map[string]CategoryBreakdown `json:"categories"`
	Status             string                       `json:"status"`
	LowStockPercentage float64                      `json:"low_stock_percentage"`
}

// Prediction is one row of the restock panel.
type Prediction struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	PredNextWeek  float64 `json:"pred_next_week_units"`
	CurrentStock  int     `json:"current_stock"`
	Decision      string  `json:"decision"`
	ReorderQty    int     `json:"reorder_qty"`
	SafetyStock   float64 `json:"safety_stock_estimate"`
	Priority      string  `json:"priority"`
	EstimateKind  string  `json:"estimate_source"`
}

// Ratio is a derived metric that may be undefined when its denominator is
// zero. Callers must check Valid instead of treating Value as a usable 0.
type Ratio struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// PerformanceMetrics is the headline metric block for the dashboard.
type PerformanceMetrics struct {
	InventoryValue   float64 `json:"inventory_value"`
	StockToSales     Ratio   `json:"stock_to_sales_ratio"`
	DaysOfSupply     Ratio   `json:"days_of_supply"`
	Sales7Days       float64 `json:"sales_7_days"`
	Sales30Days      float64 `json:"sales_30_days"`
	DailyAverage     float64 `json:"daily_average"`
	NinetyDayForecast float64 `json:"ninety_day_forecast"`
}

// Dashboard is the full payload handed to the renderer.
type Dashboard struct {
	Analysis        StockAnalysis      `json:"analysis"`
	Metrics         PerformanceMetrics `json:"metrics"`
	CategoryRevenue map[string]float64 `json:"category_revenue"`
	Predictions     []Prediction       `json:"predictions"`
	GeneratedAt     time.Time          `json:"generated_at"`
}
