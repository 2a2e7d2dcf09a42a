// internal/analysis/restock.go
package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/insightbiz/insight-core/internal/domain"
)

// Estimate is the demand figure fed into a restock decision. Source records
// whether it came from the external scoring service or from the local
// heuristic, so the fallback path is visible in the input type rather than
// buried in error handling.
type Estimate struct {
	Demand         float64
	Recommendation string
	Source         string
}

// NewHeuristicEstimate derives a deterministic placeholder demand from
// current stock, for categories the scoring service had nothing for.
func NewHeuristicEstimate(th Thresholds, currentStock int) Estimate {
	return Estimate{
		Demand: th.HeuristicDemandFactor * float64(currentStock),
		Source: domain.EstimateHeuristic,
	}
}

// NewExternalEstimate wraps a scoring-service response.
func NewExternalEstimate(predictedSales float64, recommendation string) Estimate {
	return Estimate{
		Demand:         predictedSales,
		Recommendation: recommendation,
		Source:         domain.EstimateExternal,
	}
}

// Decision is the output of the restock engine for one product.
type Decision struct {
	Decision    string
	ReorderQty  int
	SafetyStock float64
}

// Decide combines predicted demand with current stock. Heuristic estimates
// classify by threshold comparison only and never produce overstock.
func Decide(th Thresholds, currentStock, lowStockThreshold int, est Estimate) Decision {
	safety := round2(est.Demand * th.SafetyStockFactor)
	reorder := int(math.Ceil(safety - float64(currentStock)))
	if reorder < 0 {
		reorder = 0
	}

	d := Decision{
		ReorderQty:  reorder,
		SafetyStock: safety,
	}

	if est.Source == domain.EstimateHeuristic {
		if currentStock < lowStockThreshold {
			d.Decision = domain.DecisionRestock
		} else {
			d.Decision = domain.DecisionOK
		}
		return d
	}

	stock := float64(currentStock)
	switch {
	case est.Demand > stock*th.RestockDemandRatio || equalsFold(est.Recommendation, "Understock"):
		d.Decision = domain.DecisionRestock
	case est.Demand < stock*th.OverstockDemandRatio || equalsFold(est.Recommendation, "Overstock"):
		d.Decision = domain.DecisionOverstock
	default:
		d.Decision = domain.DecisionOK
	}
	return d
}

// Priority bands a decision for presentation. It never changes the decision.
func Priority(th Thresholds, reorderQty, currentStock int) string {
	stock := float64(currentStock)
	switch {
	case float64(reorderQty) > stock*th.CriticalReorderRatio:
		return domain.PriorityCritical
	case float64(reorderQty) > stock*th.HighReorderRatio:
		return domain.PriorityHigh
	default:
		return domain.PriorityNormal
	}
}

// BuildPrediction assembles a restock-panel row for one product.
func BuildPrediction(th Thresholds, p domain.Product, est Estimate) domain.Prediction {
	d := Decide(th, p.StockQuantity, p.Threshold(), est)
	return domain.Prediction{
		ProductID:    p.ID,
		ProductName:  p.Name,
		Category:     categoryLabel(p.CategoryName),
		PredNextWeek: round2(est.Demand),
		CurrentStock: p.StockQuantity,
		Decision:     d.Decision,
		ReorderQty:   d.ReorderQty,
		SafetyStock:  d.SafetyStock,
		Priority:     Priority(th, d.ReorderQty, p.StockQuantity),
		EstimateKind: est.Source,
	}
}

// SortPredictions orders rows for presentation: restock decisions first,
// then descending reorder quantity within the same decision class.
func SortPredictions(predictions []domain.Prediction) {
	sort.SliceStable(predictions, func(i, j int) bool {
		ri, rj := decisionRank(predictions[i].Decision), decisionRank(predictions[j].Decision)
		if ri != rj {
			return ri < rj
		}
		return predictions[i].ReorderQty > predictions[j].ReorderQty
	})
}

func decisionRank(decision string) int {
	switch decision {
	case domain.DecisionRestock:
		return 0
	case domain.DecisionOK:
		return 1
	default:
		return 2
	}
}

func equalsFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}
