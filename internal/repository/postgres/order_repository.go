// internal/repository/postgres/order_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/insightbiz/insight-core/internal/repository"
	"github.com/jmoiron/sqlx"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) List(ctx context.Context, userID string, since time.Time) ([]domain.Order, error) {
	query := `
		SELECT id, order_number, table_label, subtotal, tax, total, status, created_at, completed_at
		FROM orders
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`

	orders := make([]domain.Order, 0)
	if err := r.db.SelectContext(ctx, &orders, query, userID, since); err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	itemQuery, args, err := sqlx.In(`
		SELECT id, order_id, product_id, product_name, quantity, unit_price, line_total
		FROM order_items
		WHERE order_id IN (?)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("error building order items query: %w", err)
	}

	items := make([]domain.OrderItem, 0)
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(itemQuery), args...); err != nil {
		return nil, fmt.Errorf("error listing order items: %w", err)
	}

	for _, item := range items {
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return orders, nil
}

func (r *orderRepository) Get(ctx context.Context, userID string, id int64) (*domain.Order, error) {
	var o domain.Order
	query := `
		SELECT id, order_number, table_label, subtotal, tax, total, status, created_at, completed_at
		FROM orders
		WHERE user_id = $1 AND id = $2
	`
	if err := r.db.GetContext(ctx, &o, query, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("error getting order %d: %w", id, err)
	}

	itemQuery := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, line_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &o.Items, itemQuery, id); err != nil {
		return nil, fmt.Errorf("error getting items for order %d: %w", id, err)
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, userID string, o *domain.Order) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Sequential per-user order numbers; the row lock on MAX is acceptable
		// at POS write rates.
		if err := tx.GetContext(ctx, &o.OrderNumber,
			`SELECT COALESCE(MAX(order_number), 0) + 1 FROM orders WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("error allocating order number: %w", err)
		}

		query := `
			INSERT INTO orders (user_id, order_number, table_label, subtotal, tax, total, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		row := tx.QueryRowxContext(ctx, query,
			userID, o.OrderNumber, o.TableLabel, o.Subtotal, o.Tax, o.Total, o.Status)
		if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
			return fmt.Errorf("error creating order: %w", err)
		}

		for i := range o.Items {
			item := &o.Items[i]
			item.OrderID = o.ID
			itemQuery := `
				INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, line_total)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id
			`
			if err := tx.QueryRowxContext(ctx, itemQuery,
				item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.LineTotal).Scan(&item.ID); err != nil {
				return fmt.Errorf("error creating order item: %w", err)
			}

			if item.ProductID != nil {
				var p domain.Product
				if err := adjustStockTx(ctx, tx, userID, *item.ProductID, -item.Quantity, &p); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *orderRepository) SetStatus(ctx context.Context, userID string, id int64, status string) (*domain.Order, error) {
	var result *domain.Order
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var o domain.Order
		query := `
			UPDATE orders
			SET status = $3,
			    completed_at = CASE WHEN $3 = 'completed' THEN NOW() ELSE completed_at END
			WHERE user_id = $1 AND id = $2 AND status = 'pending'
			RETURNING id, order_number, table_label, subtotal, tax, total, status, created_at, completed_at
		`
		if err := tx.GetContext(ctx, &o, query, userID, id, status); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("error updating order %d status: %w", id, err)
		}

		itemQuery := `
			SELECT id, order_id, product_id, product_name, quantity, unit_price, line_total
			FROM order_items
			WHERE order_id = $1
			ORDER BY id
		`
		if err := tx.SelectContext(ctx, &o.Items, itemQuery, id); err != nil {
			return fmt.Errorf("error getting items for order %d: %w", id, err)
		}

		// A cancelled ticket returns its stock to the shelf.
		if status == domain.OrderCancelled {
			for _, item := range o.Items {
				if item.ProductID == nil {
					continue
				}
				var p domain.Product
				if err := adjustStockTx(ctx, tx, userID, *item.ProductID, item.Quantity, &p); err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						continue // product was deleted after checkout
					}
					return err
				}
			}
		}

		result = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
