// internal/domain/coerce.go
package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The persistence layer and seed files occasionally hand back numbers as
// strings or nulls. Coercion happens once here, at the system edge; after
// that every internal value is a plain Go number. Malformed input becomes 0,
// never an error.

// CoerceFloat converts a loosely typed value to a float64, returning 0 for
// anything unparseable.
func CoerceFloat(v interface{}) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// CoerceInt converts a loosely typed value to an int, returning 0 for
// anything unparseable. Fractional input truncates toward zero.
func CoerceInt(v interface{}) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	default:
		return int(CoerceFloat(v))
	}
}

// Sanitize clamps a product's numeric fields to their documented ranges:
// stock and threshold are non-negative integers, cost price is non-negative.
func (p *Product) Sanitize() {
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	if p.LowStockThreshold < 0 {
		p.LowStockThreshold = 0
	}
	if p.CostPrice < 0 {
		p.CostPrice = 0
	}
}
