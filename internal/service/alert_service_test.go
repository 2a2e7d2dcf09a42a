package service

import (
	"context"
	"testing"

	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendLowStockAlert(t *testing.T) {
	products := newFakeProductRepo(
		domain.Product{ID: 1, Name: "Espresso Beans", SKU: "ESP-01", StockQuantity: 3, LowStockThreshold: 10},
		domain.Product{ID: 2, Name: "Cups", SKU: "CUP-01", StockQuantity: 200, LowStockThreshold: 20},
	)
	sender := &fakeSender{}
	svc := NewAlertService(products, sender)

	flagged, err := svc.SendLowStockAlert(context.Background(), "user-1", "ops@example.com")
	require.NoError(t, err)

	assert.Equal(t, 1, flagged)
	assert.Equal(t, 1, sender.sent)
	assert.Equal(t, "ops@example.com", sender.to)
	assert.Contains(t, sender.html, "Espresso Beans")
	assert.NotContains(t, sender.html, "Cups")
}

func TestSendLowStockAlertNothingFlagged(t *testing.T) {
	products := newFakeProductRepo(
		domain.Product{ID: 1, Name: "Cups", SKU: "CUP-01", StockQuantity: 200, LowStockThreshold: 20},
	)
	sender := &fakeSender{}
	svc := NewAlertService(products, sender)

	flagged, err := svc.SendLowStockAlert(context.Background(), "user-1", "ops@example.com")
	require.NoError(t, err)
	assert.Zero(t, flagged)
	assert.Zero(t, sender.sent, "no mail should be sent when nothing is low")
}
