package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceFloat(t *testing.T) {
	assert.Equal(t, 12.5, CoerceFloat(12.5))
	assert.Equal(t, 12.0, CoerceFloat(12))
	assert.Equal(t, 12.5, CoerceFloat(" 12.5 "))
	assert.Equal(t, 12.5, CoerceFloat(json.Number("12.5")))
	assert.Zero(t, CoerceFloat("not a number"))
	assert.Zero(t, CoerceFloat(nil))
	assert.Zero(t, CoerceFloat(struct{}{}))
}

func TestCoerceInt(t *testing.T) {
	assert.Equal(t, 12, CoerceInt(12))
	assert.Equal(t, 12, CoerceInt(int64(12)))
	assert.Equal(t, 12, CoerceInt("12.9"))
	assert.Zero(t, CoerceInt("garbage"))
}

func TestSanitizeClampsNegatives(t *testing.T) {
	p := Product{StockQuantity: -3, LowStockThreshold: -1, CostPrice: -2}
	p.Sanitize()
	assert.Zero(t, p.StockQuantity)
	assert.Zero(t, p.LowStockThreshold)
	assert.Zero(t, p.CostPrice)
}

func TestProductThresholdDefault(t *testing.T) {
	assert.Equal(t, DefaultLowStockThreshold, Product{}.Threshold())
	assert.Equal(t, 5, Product{LowStockThreshold: 5}.Threshold())
}
