// internal/service/alert_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/insightbiz/insight-core/internal/repository"
)

// EmailSender delivers mail; prediction.Client satisfies this by relaying
// through the scoring service's mail endpoint.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html, text string) error
}

// AlertService emails the low-stock list on demand.
type AlertService struct {
	products repository.ProductRepository
	sender   EmailSender
}

func NewAlertService(products repository.ProductRepository, sender EmailSender) *AlertService {
	return &AlertService{products: products, sender: sender}
}

// SendLowStockAlert mails the recipient every product at or below its
// threshold. It reports how many products were flagged; zero means no mail
// was sent.
func (s *AlertService) SendLowStockAlert(ctx context.Context, userID, recipient string) (int, error) {
	products, err := s.products.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	var html, text strings.Builder
	html.WriteString("<h2>Low stock alert</h2><ul>")
	flagged := 0
	for _, p := range products {
		if p.StockQuantity > p.Threshold() {
			continue
		}
		flagged++
		fmt.Fprintf(&html, "<li><strong>%s</strong> (%s): %d left, threshold %d</li>",
			p.Name, p.SKU, p.StockQuantity, p.Threshold())
		fmt.Fprintf(&text, "%s (%s): %d left, threshold %d\n",
			p.Name, p.SKU, p.StockQuantity, p.Threshold())
	}
	html.WriteString("</ul>")

	if flagged == 0 {
		return 0, nil
	}

	subject := fmt.Sprintf("Low stock alert: %d product(s) need attention", flagged)
	if err := s.sender.SendEmail(ctx, recipient, subject, html.String(), text.String()); err != nil {
		return flagged, err
	}
	return flagged, nil
}
