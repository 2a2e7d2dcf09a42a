package analysis

import (
	"testing"

	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, domain.StockOutOfStock, Classify(0, 10))
	assert.Equal(t, domain.StockLow, Classify(1, 10))
	assert.Equal(t, domain.StockLow, Classify(10, 10))
	assert.Equal(t, domain.StockAdequate, Classify(11, 10))
	assert.Equal(t, domain.StockAdequate, Classify(500, 10))
}

func TestClassifyZeroThreshold(t *testing.T) {
	// A zero threshold means only empty stock is flagged.
	assert.Equal(t, domain.StockOutOfStock, Classify(0, 0))
	assert.Equal(t, domain.StockAdequate, Classify(1, 0))
}

func TestClassifyIsTotal(t *testing.T) {
	valid := map[string]bool{
		domain.StockOutOfStock: true,
		domain.StockLow:        true,
		domain.StockAdequate:   true,
	}
	for stock := 0; stock <= 50; stock++ {
		for threshold := 0; threshold <= 25; threshold++ {
			status := Classify(stock, threshold)
			assert.True(t, valid[status], "stock=%d threshold=%d produced %q", stock, threshold, status)
		}
	}
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, domain.SeverityCritical, Severity(4, 10))
	assert.Equal(t, domain.SeverityLow, Severity(5, 10))
	assert.Equal(t, domain.SeverityLow, Severity(9, 10))
}

func TestAtOrBelowThresholdIncludesOutOfStock(t *testing.T) {
	assert.True(t, AtOrBelowThreshold(0, 10))
	assert.True(t, AtOrBelowThreshold(10, 10))
	assert.False(t, AtOrBelowThreshold(11, 10))
}
