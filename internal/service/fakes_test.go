package service

import (
	"context"
	"strings"
	"time"

	"github.com/insightbiz/insight-core/internal/analysis"
	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/insightbiz/insight-core/internal/prediction"
	"github.com/insightbiz/insight-core/internal/repository"
	"github.com/insightbiz/insight-core/internal/storage"
)

type fakeProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
	listErr  error
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[int64]*domain.Product), nextID: 1}
	for i := range products {
		p := products[i]
		if p.ID == 0 {
			p.ID = repo.nextID
		}
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
		repo.products[p.ID] = &p
	}
	return repo
}

func (r *fakeProductRepo) List(ctx context.Context, userID string) ([]domain.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Product, 0, len(r.products))
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Get(ctx context.Context, userID string, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) Create(ctx context.Context, userID string, p *domain.Product) error {
	p.ID = r.nextID
	r.nextID++
	copied := *p
	r.products[p.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Update(ctx context.Context, userID string, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *p
	r.products[p.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, userID string, id int64) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, userID string, id int64, delta int) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.StockQuantity+delta < 0 {
		return nil, repository.ErrInsufficientStock
	}
	p.StockQuantity += delta
	copied := *p
	return &copied, nil
}

type fakeOrderRepo struct {
	orders   map[int64]*domain.Order
	nextID   int64
	products *fakeProductRepo
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*domain.Order), nextID: 1, products: products}
}

func (r *fakeOrderRepo) List(ctx context.Context, userID string, since time.Time) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.orders))
	for id := int64(1); id < r.nextID; id++ {
		o, ok := r.orders[id]
		if !ok || o.CreatedAt.Before(since) {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Get(ctx context.Context, userID string, id int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, userID string, o *domain.Order) error {
	o.ID = r.nextID
	o.OrderNumber = r.nextID
	o.CreatedAt = time.Now()
	r.nextID++
	for _, item := range o.Items {
		if item.ProductID == nil {
			continue
		}
		if _, err := r.products.AdjustStock(ctx, userID, *item.ProductID, -item.Quantity); err != nil {
			return err
		}
	}
	copied := *o
	r.orders[o.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) SetStatus(ctx context.Context, userID string, id int64, status string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.Status != domain.OrderPending {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	if status == domain.OrderCompleted {
		now := time.Now()
		o.CompletedAt = &now
	}
	if status == domain.OrderCancelled {
		for _, item := range o.Items {
			if item.ProductID == nil {
				continue
			}
			_, _ = r.products.AdjustStock(ctx, userID, *item.ProductID, item.Quantity)
		}
	}
	copied := *o
	return &copied, nil
}

type fakePredictor struct {
	responses map[string]analysis.Estimate
	th        analysis.Thresholds
	calls     int
}

func (f *fakePredictor) BulkEstimates(ctx context.Context, reqs []prediction.Request) []analysis.Estimate {
	f.calls++
	out := make([]analysis.Estimate, len(reqs))
	for i, req := range reqs {
		if est, ok := f.responses[req.Category]; ok {
			out[i] = est
			continue
		}
		out[i] = analysis.NewHeuristicEstimate(f.th, req.CurrentStock)
	}
	return out
}

type fakeSender struct {
	to      string
	subject string
	html    string
	text    string
	sent    int
	err     error
}

func (f *fakeSender) SendEmail(ctx context.Context, to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.to, f.subject, f.html, f.text = to, subject, html, text
	f.sent++
	return nil
}

type fakeStore struct {
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	out := make([]storage.ObjectInfo, 0)
	for key, data := range f.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return out, nil
}

func (f *fakeStore) UploadObject(ctx context.Context, key string, data []byte) error {
	f.objects[key] = data
	return nil
}
