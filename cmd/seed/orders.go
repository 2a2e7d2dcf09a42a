// cmd/seed/orders.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/urfave/cli/v2"
)

// runOrderSeed generates a completed-order history over the requested window
// so the dashboard's revenue windows and forecast have something to chew on.
func runOrderSeed(c *cli.Context) error {
	db := dbFrom(c)
	userID := c.String("user-id")
	days := c.Int("days")

	rows, err := db.QueryContext(c.Context,
		`SELECT id, name, selling_price FROM products WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	type seedProduct struct {
		id    int64
		name  string
		price float64
	}
	var products []seedProduct
	for rows.Next() {
		var p seedProduct
		if err := rows.Scan(&p.id, &p.name, &p.price); err != nil {
			return fmt.Errorf("could not scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("no products to order from; run the catalog seed first")
	}

	var orderNumber int64
	if err := db.QueryRowContext(c.Context,
		`SELECT COALESCE(MAX(order_number), 0) FROM orders WHERE user_id = $1`, userID).Scan(&orderNumber); err != nil {
		return fmt.Errorf("could not read max order number: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0
	for day := days; day >= 0; day-- {
		ordersToday := 1 + rng.Intn(4)
		for i := 0; i < ordersToday; i++ {
			orderNumber++
			createdAt := time.Now().AddDate(0, 0, -day).Add(-time.Duration(rng.Intn(10)) * time.Hour)

			lineCount := 1 + rng.Intn(3)
			subtotal := 0.0
			type seedLine struct {
				product  seedProduct
				quantity int
				total    float64
			}
			lines := make([]seedLine, 0, lineCount)
			for j := 0; j < lineCount; j++ {
				p := products[rng.Intn(len(products))]
				qty := 1 + rng.Intn(3)
				total := roundMoney(float64(qty) * p.price)
				lines = append(lines, seedLine{product: p, quantity: qty, total: total})
				subtotal += total
			}
			subtotal = roundMoney(subtotal)
			tax := roundMoney(subtotal * domain.TaxRate)
			total := roundMoney(subtotal + tax)

			var orderID int64
			if err := db.QueryRowContext(c.Context, `
				INSERT INTO orders (user_id, order_number, subtotal, tax, total, status, created_at, completed_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
				RETURNING id
			`, userID, orderNumber, subtotal, tax, total, domain.OrderCompleted, createdAt).Scan(&orderID); err != nil {
				return fmt.Errorf("could not insert order: %w", err)
			}

			for _, line := range lines {
				if _, err := db.ExecContext(c.Context, `
					INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, line_total)
					VALUES ($1, $2, $3, $4, $5, $6)
				`, orderID, sql.NullInt64{Int64: line.product.id, Valid: true},
					line.product.name, line.quantity, line.product.price, line.total); err != nil {
					return fmt.Errorf("could not insert order item: %w", err)
				}
			}
			created++
		}
	}

	log.Printf("seeded %d completed orders over %d days", created, days)
	return nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
