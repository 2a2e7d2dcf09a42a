// internal/service/report_service.go
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/insightbiz/insight-core/internal/analysis"
	"github.com/insightbiz/insight-core/internal/repository"
	"github.com/insightbiz/insight-core/internal/storage"
)

// ReportService generates CSV exports of the stock report and order history
// and pushes them to the configured S3-compatible bucket.
type ReportService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	store    storage.ObjectStorage
	th       analysis.Thresholds
}

func NewReportService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	store storage.ObjectStorage,
	th analysis.Thresholds,
) *ReportService {
	return &ReportService{products: products, orders: orders, store: store, th: th}
}

// ExportStockReport uploads the current stock report and returns its key.
func (s *ReportService) ExportStockReport(ctx context.Context, userID string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("report export is not configured")
	}

	products, err := s.products.List(ctx, userID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"sku", "name", "category", "stock_quantity", "low_stock_threshold", "status", "stock_value"})
	for _, p := range products {
		threshold := p.Threshold()
		_ = w.Write([]string{
			p.SKU,
			p.Name,
			p.CategoryName,
			strconv.Itoa(p.StockQuantity),
			strconv.Itoa(threshold),
			analysis.Classify(p.StockQuantity, threshold),
			strconv.FormatFloat(float64(p.StockQuantity)*p.CostPrice, 'f', 2, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error writing stock report: %w", err)
	}

	key := fmt.Sprintf("reports/%s/stock_%s.csv", userID, time.Now().UTC().Format("20060102T150405"))
	if err := s.store.UploadObject(ctx, key, buf.Bytes()); err != nil {
		return "", err
	}
	return key, nil
}

// ExportOrderHistory uploads the trailing order history and returns its key.
func (s *ReportService) ExportOrderHistory(ctx context.Context, userID string, days int) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("report export is not configured")
	}
	if days <= 0 {
		days = s.th.LongWindowDays
	}

	orders, err := s.orders.List(ctx, userID, time.Now().AddDate(0, 0, -days))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"order_number", "status", "subtotal", "tax", "total", "created_at", "items"})
	for _, o := range orders {
		_ = w.Write([]string{
			strconv.FormatInt(o.OrderNumber, 10),
			o.Status,
			strconv.FormatFloat(o.Subtotal, 'f', 2, 64),
			strconv.FormatFloat(o.Tax, 'f', 2, 64),
			strconv.FormatFloat(o.Total, 'f', 2, 64),
			o.CreatedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(len(o.Items)),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error writing order history: %w", err)
	}

	key := fmt.Sprintf("reports/%s/orders_%s.csv", userID, time.Now().UTC().Format("20060102T150405"))
	if err := s.store.UploadObject(ctx, key, buf.Bytes()); err != nil {
		return "", err
	}
	return key, nil
}
