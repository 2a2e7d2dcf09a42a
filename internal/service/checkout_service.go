// internal/service/checkout_service.go
package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/insightbiz/insight-core/internal/cache"
	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/insightbiz/insight-core/internal/repository"
	"github.com/rs/zerolog/log"
)

// CheckoutLine is one requested line of a new order.
type CheckoutLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CheckoutRequest creates a new pending order.
type CheckoutRequest struct {
	TableLabel *string        `json:"table_label"`
	Lines      []CheckoutLine `json:"items"`
}

// CheckoutService owns the billing flow: order creation at the fixed tax
// rate, completion, and cancellation with stock restoration.
type CheckoutService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	cache    cache.DashboardCache
}

func NewCheckoutService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	cacheImpl cache.DashboardCache,
) *CheckoutService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &CheckoutService{orders: orders, products: products, cache: cacheImpl}
}

// CreateOrder snapshots product names and prices into order lines, computes
// subtotal, tax and total, and persists the order as pending.
func (s *CheckoutService) CreateOrder(ctx context.Context, userID string, req CheckoutRequest) (*domain.Order, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("order must have at least one item")
	}

	order := &domain.Order{
		TableLabel: req.TableLabel,
		Status:     domain.OrderPending,
		Items:      make([]domain.OrderItem, 0, len(req.Lines)),
	}

	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive for product %d", line.ProductID)
		}
		p, err := s.products.Get(ctx, userID, line.ProductID)
		if err != nil {
			return nil, err
		}

		productID := p.ID
		lineTotal := roundMoney(float64(line.Quantity) * p.SellingPrice)
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   &productID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   p.SellingPrice,
			LineTotal:   lineTotal,
		})
		order.Subtotal += lineTotal
	}

	order.Subtotal = roundMoney(order.Subtotal)
	order.Tax = roundMoney(order.Subtotal * domain.TaxRate)
	order.Total = roundMoney(order.Subtotal + order.Tax)

	if err := s.orders.Create(ctx, userID, order); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return order, nil
}

// CompleteOrder marks a pending order completed, making it a revenue event.
func (s *CheckoutService) CompleteOrder(ctx context.Context, userID string, id int64) (*domain.Order, error) {
	return s.setStatus(ctx, userID, id, domain.OrderCompleted)
}

// CancelOrder voids a pending order and restores its stock.
func (s *CheckoutService) CancelOrder(ctx context.Context, userID string, id int64) (*domain.Order, error) {
	return s.setStatus(ctx, userID, id, domain.OrderCancelled)
}

func (s *CheckoutService) setStatus(ctx context.Context, userID string, id int64, status string) (*domain.Order, error) {
	order, err := s.orders.SetStatus(ctx, userID, id, status)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return order, nil
}

// ListOrders returns order history within the requested trailing window.
func (s *CheckoutService) ListOrders(ctx context.Context, userID string, days int) ([]domain.Order, error) {
	if days <= 0 {
		days = 30
	}
	since := timeNow().AddDate(0, 0, -days)
	return s.orders.List(ctx, userID, since)
}

func (s *CheckoutService) GetOrder(ctx context.Context, userID string, id int64) (*domain.Order, error) {
	return s.orders.Get(ctx, userID, id)
}

func (s *CheckoutService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("checkout: dashboard cache invalidation failed")
	}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// overridable in tests
var timeNow = time.Now
