// internal/prediction/client.go
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/insightbiz/insight-core/internal/analysis"
	"github.com/insightbiz/insight-core/internal/config"
	"github.com/rs/zerolog/log"
)

// Client talks to the external demand-scoring service. Scoring failures are
// never surfaced to callers: every estimate method degrades to the
// deterministic heuristic so the dashboard always renders.
type Client struct {
	baseURL    string
	httpClient *http.Client
	th         analysis.Thresholds
}

// Request asks for next-period demand for one category.
type Request struct {
	Category     string `json:"category"`
	CurrentStock int    `json:"current_stock"`
}

type scoreResponse struct {
	PredictedSales float64 `json:"predicted_sales"`
	Recommendation string  `json:"recommendation"`
	Error          string  `json:"error"`
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html,omitempty"`
	Text    string `json:"text,omitempty"`
}

func NewClient(cfg config.PredictionConfig, th analysis.Thresholds) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		th:         th,
	}
}

// Estimate scores a single category, falling back to the heuristic estimate
// when the service is unreachable, non-2xx, or returns an error payload.
func (c *Client) Estimate(ctx context.Context, req Request) analysis.Estimate {
	var resp scoreResponse
	if err := c.post(ctx, "/predict", req, &resp); err != nil {
		log.Warn().Err(err).Str("category", req.Category).Msg("prediction: falling back to heuristic estimate")
		return analysis.NewHeuristicEstimate(c.th, req.CurrentStock)
	}
	if resp.Error != "" {
		log.Warn().Str("category", req.Category).Str("error", resp.Error).Msg("prediction: scoring error, using heuristic estimate")
		return analysis.NewHeuristicEstimate(c.th, req.CurrentStock)
	}
	return analysis.NewExternalEstimate(resp.PredictedSales, resp.Recommendation)
}

// BulkEstimates scores a batch in one round trip. The result is aligned with
// the request slice; any batch-level or per-item failure degrades only the
// affected entries to heuristic estimates.
func (c *Client) BulkEstimates(ctx context.Context, reqs []Request) []analysis.Estimate {
	estimates := make([]analysis.Estimate, len(reqs))
	if len(reqs) == 0 {
		return estimates
	}

	var resps []scoreResponse
	if err := c.post(ctx, "/bulk_predict", reqs, &resps); err != nil {
		log.Warn().Err(err).Int("batch", len(reqs)).Msg("prediction: bulk scoring failed, using heuristic estimates")
		for i, req := range reqs {
			estimates[i] = analysis.NewHeuristicEstimate(c.th, req.CurrentStock)
		}
		return estimates
	}

	for i, req := range reqs {
		if i >= len(resps) || resps[i].Error != "" {
			estimates[i] = analysis.NewHeuristicEstimate(c.th, req.CurrentStock)
			continue
		}
		estimates[i] = analysis.NewExternalEstimate(resps[i].PredictedSales, resps[i].Recommendation)
	}
	return estimates
}

// SendEmail relays a message through the scoring service's mail endpoint.
// Unlike scoring, delivery failures are reported to the caller.
func (c *Client) SendEmail(ctx context.Context, to, subject, html, text string) error {
	req := emailRequest{To: to, Subject: subject, HTML: html, Text: text}
	var resp struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := c.post(ctx, "/send-email", req, &resp); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.Error != "" {
		return fmt.Errorf("send email: %s", resp.Error)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return fmt.Errorf("call %s: unexpected status %d", path, httpResp.StatusCode)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
