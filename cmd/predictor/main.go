// cmd/predictor/main.go
//
// Stand-in for the hosted demand-scoring service. It serves the same three
// routes with a deterministic lag-blend placeholder model, so the dashboard
// can be developed and demoed without the real model being reachable.
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/insightbiz/insight-core/internal/config"
	"github.com/joho/godotenv"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"service":      "Inventory Forecast API",
		"model_loaded": true,
	})
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	scorer := newScorer()
	mailer := newMailer(cfg.SMTP)

	r := mux.NewRouter()
	r.HandleFunc("/", healthHandler).Methods("GET")
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/predict", scorer.predictHandler).Methods("POST")
	r.HandleFunc("/bulk_predict", scorer.bulkPredictHandler).Methods("POST")
	r.HandleFunc("/send-email", mailer.sendHandler).Methods("POST")

	addr := fmt.Sprintf(":%s", cfg.Prediction.Port)
	log.Printf("Predictor stand-in starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
