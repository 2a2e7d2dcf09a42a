// cmd/predictor/scoring.go
package main

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
)

type predictRequest struct {
	Category     *string     `json:"category"`
	CurrentStock interface{} `json:"current_stock"`
}

type predictResponse struct {
	PredictedSales float64 `json:"predicted_sales"`
	CurrentStock   float64 `json:"current_stock"`
	Recommendation string  `json:"recommendation"`
}

type predictError struct {
	Error string `json:"error"`
}

type scorer struct{}

func newScorer() *scorer {
	return &scorer{}
}

// score blends three stock lags the way the trained pipeline's feature
// builder does, then uses their rolling mean as predicted sales. It is a
// deterministic placeholder, not a model.
func (s *scorer) score(currentStock float64) float64 {
	lag1 := currentStock * 0.9
	lag2 := currentStock * 0.85
	lag3 := currentStock * 0.8
	rollingMean := (lag1 + lag2 + lag3) / 3
	return math.Round(rollingMean*100) / 100
}

func (s *scorer) recommend(predicted, currentStock float64) string {
	if predicted > currentStock {
		return "Overstock"
	}
	return "Understock"
}

func (s *scorer) predictHandler(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, predictError{Error: "invalid request body"})
		return
	}
	if req.Category == nil || req.CurrentStock == nil {
		writeJSON(w, http.StatusBadRequest, predictError{Error: "Both 'category' and 'current_stock' are required"})
		return
	}

	stock := coerceFloat(req.CurrentStock)
	predicted := s.score(stock)
	writeJSON(w, http.StatusOK, predictResponse{
		PredictedSales: predicted,
		CurrentStock:   stock,
		Recommendation: s.recommend(predicted, stock),
	})
}

func (s *scorer) bulkPredictHandler(w http.ResponseWriter, r *http.Request) {
	var reqs []predictRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeJSON(w, http.StatusBadRequest, predictError{Error: "Expected a list of prediction requests"})
		return
	}

	results := make([]interface{}, 0, len(reqs))
	for _, req := range reqs {
		if req.Category == nil || req.CurrentStock == nil {
			results = append(results, predictError{Error: "Both 'category' and 'current_stock' are required"})
			continue
		}
		stock := coerceFloat(req.CurrentStock)
		predicted := s.score(stock)
		results = append(results, predictResponse{
			PredictedSales: predicted,
			CurrentStock:   stock,
			Recommendation: s.recommend(predicted, stock),
		})
	}
	writeJSON(w, http.StatusOK, results)
}

func coerceFloat(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		var f float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(x)), &f); err == nil {
			return f
		}
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
