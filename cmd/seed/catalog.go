// cmd/seed/catalog.go
package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/insightbiz/insight-core/internal/domain"
	"github.com/urfave/cli/v2"
)

// Expected CSV header:
// name,sku,category,cost_price,selling_price,stock_quantity,low_stock_threshold
func runCatalogSeed(c *cli.Context) error {
	db := dbFrom(c)
	userID := c.String("user-id")

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("could not open seed file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("could not read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"name", "sku", "selling_price"} {
		if _, ok := col[required]; !ok {
			return fmt.Errorf("seed file is missing required column %q", required)
		}
	}

	categoryIDs := make(map[string]int64)
	seeded := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("could not read record: %w", err)
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		p := domain.Product{
			Name:              field("name"),
			SKU:               field("sku"),
			CostPrice:         domain.CoerceFloat(field("cost_price")),
			SellingPrice:      domain.CoerceFloat(field("selling_price")),
			StockQuantity:     domain.CoerceInt(field("stock_quantity")),
			LowStockThreshold: domain.CoerceInt(field("low_stock_threshold")),
		}
		p.Sanitize()
		if p.Name == "" || p.SKU == "" || p.SellingPrice <= 0 {
			log.Printf("skipping invalid row: %v", record)
			continue
		}

		var categoryID sql.NullInt64
		if category := field("category"); category != "" {
			id, ok := categoryIDs[category]
			if !ok {
				if err := db.QueryRowContext(c.Context, `
					INSERT INTO categories (user_id, name)
					VALUES ($1, $2)
					ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
					RETURNING id
				`, userID, category).Scan(&id); err != nil {
					return fmt.Errorf("could not upsert category %q: %w", category, err)
				}
				categoryIDs[category] = id
			}
			categoryID = sql.NullInt64{Int64: id, Valid: true}
		}

		if _, err := db.ExecContext(c.Context, `
			INSERT INTO products (user_id, name, sku, category_id, cost_price, selling_price, stock_quantity, low_stock_threshold)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, sku) DO UPDATE SET
				name = EXCLUDED.name,
				category_id = EXCLUDED.category_id,
				cost_price = EXCLUDED.cost_price,
				selling_price = EXCLUDED.selling_price,
				stock_quantity = EXCLUDED.stock_quantity,
				low_stock_threshold = EXCLUDED.low_stock_threshold,
				updated_at = NOW()
		`, userID, p.Name, p.SKU, categoryID, p.CostPrice, p.SellingPrice, p.StockQuantity, p.LowStockThreshold); err != nil {
			return fmt.Errorf("could not upsert product %q: %w", p.SKU, err)
		}
		seeded++
	}

	log.Printf("seeded %d products across %d categories", seeded, len(categoryIDs))
	return nil
}
