// internal/service/dashboard_service.go
package service

import (
	"context"
	"time"

	"github.com/insightbiz/insight-core/internal/analysis"
	"github.com/insightbiz/insight-core/internal/cache"
	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/insightbiz/insight-core/internal/prediction"
	"github.com/insightbiz/insight-core/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Predictor scores next-period demand. prediction.Client satisfies this; it
// never fails, degrading to heuristic estimates instead.
type Predictor interface {
	BulkEstimates(ctx context.Context, reqs []prediction.Request) []analysis.Estimate
}

type DashboardService struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	predictor Predictor
	cache     cache.DashboardCache
	th        analysis.Thresholds
	now       func() time.Time
}

func NewDashboardService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	predictor Predictor,
	cacheImpl cache.DashboardCache,
	th analysis.Thresholds,
) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{
		products:  products,
		orders:    orders,
		predictor: predictor,
		cache:     cacheImpl,
		th:        th,
		now:       time.Now,
	}
}

// GetDashboard assembles the full dashboard payload: stock analysis,
// performance metrics, category revenue, and the restock panel. Product and
// order fetches run concurrently; neither result orders before the other and
// an empty result set is data, not an error.
func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	if cached, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get failed")
	}

	now := s.now()

	var (
		products []domain.Product
		orders   []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.orders.List(gctx, userID, now.AddDate(0, 0, -s.th.LongWindowDays))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stockAnalysis := analysis.Aggregate(s.th, products, now)
	sales7 := analysis.WindowRevenue(orders, now, s.th.ShortWindowDays)
	sales30 := analysis.WindowRevenue(orders, now, s.th.LongWindowDays)

	dashboard := &domain.Dashboard{
		Analysis:        stockAnalysis,
		Metrics:         analysis.Metrics(s.th, stockAnalysis.TotalStockValue, sales7, sales30),
		CategoryRevenue: analysis.CategoryRevenue(s.th, products, orders, now),
		Predictions:     s.buildPredictions(ctx, products),
		GeneratedAt:     now,
	}

	if err := s.cache.Set(ctx, userID, dashboard); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set failed")
	}
	return dashboard, nil
}

// GetPredictions returns only the restock panel rows.
func (s *DashboardService) GetPredictions(ctx context.Context, userID string) ([]domain.Prediction, error) {
	products, err := s.products.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildPredictions(ctx, products), nil
}

func (s *DashboardService) buildPredictions(ctx context.Context, products []domain.Product) []domain.Prediction {
	reqs := make([]prediction.Request, len(products))
	for i, p := range products {
		category := p.CategoryName
		if category == "" {
			category = domain.UncategorizedLabel
		}
		reqs[i] = prediction.Request{Category: category, CurrentStock: p.StockQuantity}
	}

	estimates := s.predictor.BulkEstimates(ctx, reqs)

	rows := make([]domain.Prediction, 0, len(products))
	for i, p := range products {
		est := estimates[i]
		rows = append(rows, analysis.BuildPrediction(s.th, p, est))
	}
	analysis.SortPredictions(rows)
	return rows
}
