// internal/service/inventory_service.go
package service

import (
	"context"
	"fmt"

	"github.com/insightbiz/insight-core/internal/analysis"
	"github.com/insightbiz/insight-core/internal/cache"
	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/insightbiz/insight-core/internal/repository"
	"github.com/rs/zerolog/log"
)

// InventoryService handles catalog and stock edits. Every write invalidates
// the user's cached dashboard.
type InventoryService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      cache.DashboardCache
	th         analysis.Thresholds
}

func NewInventoryService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	cacheImpl cache.DashboardCache,
	th analysis.Thresholds,
) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &InventoryService{products: products, categories: categories, cache: cacheImpl, th: th}
}

func (s *InventoryService) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	return s.products.List(ctx, userID)
}

func (s *InventoryService) GetProduct(ctx context.Context, userID string, id int64) (*domain.Product, error) {
	return s.products.Get(ctx, userID, id)
}

func (s *InventoryService) CreateProduct(ctx context.Context, userID string, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.products.Create(ctx, userID, p); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, userID string, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.products.Update(ctx, userID, p); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, userID string, id int64) error {
	if err := s.products.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *InventoryService) AdjustStock(ctx context.Context, userID string, id int64, delta int) (*domain.Product, error) {
	p, err := s.products.AdjustStock(ctx, userID, id, delta)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return p, nil
}

// StockStatus is a classified product row for the low-stock listing.
type StockStatus struct {
	Product  domain.Product `json:"product"`
	Status   string         `json:"status"`
	Severity string         `json:"severity,omitempty"`
}

// LowStock returns products at or below their threshold, classified and
// tagged with severity for UI emphasis.
func (s *InventoryService) LowStock(ctx context.Context, userID string) ([]StockStatus, error) {
	products, err := s.products.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	flagged := make([]StockStatus, 0)
	for _, p := range products {
		threshold := p.Threshold()
		if !analysis.AtOrBelowThreshold(p.StockQuantity, threshold) {
			continue
		}
		flagged = append(flagged, StockStatus{
			Product:  p,
			Status:   analysis.Classify(p.StockQuantity, threshold),
			Severity: analysis.Severity(p.StockQuantity, threshold),
		})
	}
	return flagged, nil
}

func (s *InventoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.categories.List(ctx, userID)
}

func (s *InventoryService) CreateCategory(ctx context.Context, userID string, c *domain.Category) error {
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	return s.categories.Create(ctx, userID, c)
}

func (s *InventoryService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("inventory: dashboard cache invalidation failed")
	}
}

func validateProduct(p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.SKU == "" {
		return fmt.Errorf("product sku is required")
	}
	if p.SellingPrice <= 0 {
		return fmt.Errorf("selling price must be positive")
	}
	p.Sanitize()
	return nil
}
