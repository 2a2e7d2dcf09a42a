// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/insightbiz/insight-core/internal/domain"
)

// Row sets are scoped to the authenticated caller: every method takes the
// user ID explicitly instead of relying on ambient session state.

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ProductRepository interface {
	List(ctx context.Context, userID string) ([]domain.Product, error)
	Get(ctx context.Context, userID string, id int64) (*domain.Product, error)
	Create(ctx context.Context, userID string, p *domain.Product) error
	Update(ctx context.Context, userID string, p *domain.Product) error
	Delete(ctx context.Context, userID string, id int64) error
	AdjustStock(ctx context.Context, userID string, id int64, delta int) (*domain.Product, error)
}

type CategoryRepository interface {
	List(ctx context.Context, userID string) ([]domain.Category, error)
	Create(ctx context.Context, userID string, c *domain.Category) error
}

type OrderRepository interface {
	// List returns orders created at or after since, newest first, with line
	// items attached.
	List(ctx context.Context, userID string, since time.Time) ([]domain.Order, error)
	Get(ctx context.Context, userID string, id int64) (*domain.Order, error)
	// Create allocates the next sequential order number and writes the order,
	// its items, and the stock decrements in one transaction.
	Create(ctx context.Context, userID string, o *domain.Order) error
	// SetStatus transitions an order to completed or cancelled. Cancelling
	// restores the stock the order had claimed.
	SetStatus(ctx context.Context, userID string, id int64, status string) (*domain.Order, error)
}
