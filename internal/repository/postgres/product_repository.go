// internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/insightbiz/insight-core/internal/repository"
	"github.com/jmoiron/sqlx"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `
	p.id, p.name, p.sku, p.category_id,
	COALESCE(c.name, '') AS category_name,
	COALESCE(p.cost_price, 0) AS cost_price,
	p.selling_price, p.stock_quantity, p.low_stock_threshold,
	p.created_at, p.updated_at
`

func (r *productRepository) List(ctx context.Context, userID string) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.user_id = $1
		ORDER BY p.name
	`, productColumns)

	products := make([]domain.Product, 0)
	if err := r.db.SelectContext(ctx, &products, query, userID); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	for i := range products {
		products[i].Sanitize()
	}
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, userID string, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.user_id = $1 AND p.id = $2
	`, productColumns)

	var p domain.Product
	if err := r.db.GetContext(ctx, &p, query, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("error getting product %d: %w", id, err)
	}

	p.Sanitize()
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, userID string, p *domain.Product) error {
	p.Sanitize()

	query := `
		INSERT INTO products (user_id, name, sku, category_id, cost_price, selling_price, stock_quantity, low_stock_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		userID, p.Name, p.SKU, p.CategoryID, p.CostPrice, p.SellingPrice, p.StockQuantity, p.LowStockThreshold)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("error creating product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, userID string, p *domain.Product) error {
	p.Sanitize()

	query := `
		UPDATE products
		SET name = $3, sku = $4, category_id = $5, cost_price = $6,
		    selling_price = $7, stock_quantity = $8, low_stock_threshold = $9,
		    updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		userID, p.ID, p.Name, p.SKU, p.CategoryID, p.CostPrice, p.SellingPrice, p.StockQuantity, p.LowStockThreshold)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("error updating product %d: %w", p.ID, err)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("error deleting product %d: %w", id, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) AdjustStock(ctx context.Context, userID string, id int64, delta int) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return adjustStockTx(ctx, tx, userID, id, delta, &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// adjustStockTx applies a stock delta inside an existing transaction,
// refusing to take stock below zero.
func adjustStockTx(ctx context.Context, tx *sqlx.Tx, userID string, id int64, delta int, out *domain.Product) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $3, updated_at = NOW()
		WHERE user_id = $1 AND id = $2 AND stock_quantity + $3 >= 0
		RETURNING id, name, sku, category_id, '' AS category_name,
		          COALESCE(cost_price, 0) AS cost_price, selling_price,
		          stock_quantity, low_stock_threshold, created_at, updated_at
	`
	if err := tx.GetContext(ctx, out, query, userID, id, delta); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the row is missing or the guard blocked a negative balance.
			var exists bool
			if checkErr := tx.GetContext(ctx, &exists,
				`SELECT EXISTS (SELECT 1 FROM products WHERE user_id = $1 AND id = $2)`, userID, id); checkErr == nil && exists {
				return repository.ErrInsufficientStock
			}
			return repository.ErrNotFound
		}
		return fmt.Errorf("error adjusting stock for product %d: %w", id, err)
	}
	return nil
}

type categoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, userID string) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	query := `SELECT id, name, created_at FROM categories WHERE user_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, userID string, c *domain.Category) error {
	query := `
		INSERT INTO categories (user_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowxContext(ctx, query, userID, c.Name).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("error creating category: %w", err)
	}
	return nil
}
