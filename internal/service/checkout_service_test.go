package service

import (
	"context"
	"testing"

	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/insightbiz/insight-core/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutFixture() (*CheckoutService, *fakeProductRepo, *fakeOrderRepo) {
	products := newFakeProductRepo(
		domain.Product{ID: 1, Name: "Espresso Beans", SKU: "ESP-01", SellingPrice: 12, StockQuantity: 20, LowStockThreshold: 10},
		domain.Product{ID: 2, Name: "Milk", SKU: "MLK-01", SellingPrice: 3, StockQuantity: 5, LowStockThreshold: 10},
	)
	orders := newFakeOrderRepo(products)
	return NewCheckoutService(orders, products, nil), products, orders
}

func TestCreateOrderComputesTotals(t *testing.T) {
	svc, products, _ := newCheckoutFixture()

	order, err := svc.CreateOrder(context.Background(), "user-1", CheckoutRequest{
		Lines: []CheckoutLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPending, order.Status)
	assert.InDelta(t, 27.00, order.Subtotal, 1e-9)
	assert.InDelta(t, 1.35, order.Tax, 1e-9) // 5% of subtotal
	assert.InDelta(t, 28.35, order.Total, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Espresso Beans", order.Items[0].ProductName)
	assert.InDelta(t, 24, order.Items[0].LineTotal, 1e-9)

	// Stock moved at checkout time.
	p, err := products.Get(context.Background(), "user-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 18, p.StockQuantity)
}

func TestCreateOrderRejectsEmptyAndBadQuantity(t *testing.T) {
	svc, _, _ := newCheckoutFixture()

	_, err := svc.CreateOrder(context.Background(), "user-1", CheckoutRequest{})
	assert.Error(t, err)

	_, err = svc.CreateOrder(context.Background(), "user-1", CheckoutRequest{
		Lines: []CheckoutLine{{ProductID: 1, Quantity: 0}},
	})
	assert.Error(t, err)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc, _, _ := newCheckoutFixture()

	_, err := svc.CreateOrder(context.Background(), "user-1", CheckoutRequest{
		Lines: []CheckoutLine{{ProductID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	svc, _, _ := newCheckoutFixture()

	_, err := svc.CreateOrder(context.Background(), "user-1", CheckoutRequest{
		Lines: []CheckoutLine{{ProductID: 2, Quantity: 6}},
	})
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
}

func TestCompleteOrder(t *testing.T) {
	svc, _, _ := newCheckoutFixture()

	order, err := svc.CreateOrder(context.Background(), "user-1", CheckoutRequest{
		Lines: []CheckoutLine{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	completed, err := svc.CompleteOrder(context.Background(), "user-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// Completed orders cannot transition again.
	_, err = svc.CancelOrder(context.Background(), "user-1", order.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	svc, products, _ := newCheckoutFixture()

	order, err := svc.CreateOrder(context.Background(), "user-1", CheckoutRequest{
		Lines: []CheckoutLine{{ProductID: 1, Quantity: 5}},
	})
	require.NoError(t, err)

	p, _ := products.Get(context.Background(), "user-1", 1)
	assert.Equal(t, 15, p.StockQuantity)

	cancelled, err := svc.CancelOrder(context.Background(), "user-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, cancelled.Status)

	p, _ = products.Get(context.Background(), "user-1", 1)
	assert.Equal(t, 20, p.StockQuantity)
}
