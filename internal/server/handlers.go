package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Alias1177/Inventory/internal/batch"
	"github.com/Alias1177/Inventory/models"
)

// handlePredict runs the full client+parser+store flow for a single
// product and reports the persistence outcome alongside the prediction.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	productVal, hasProduct := body["productId"]
	stockVal, hasStock := body["currentStock"]
	if !hasProduct || !hasStock || productVal == nil || stockVal == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields: productId and currentStock")
		return
	}

	productID, okID := productVal.(string)
	stockNum, okStock := stockVal.(float64)
	if !okID || !okStock {
		writeError(w, http.StatusBadRequest, "Invalid data types: productId must be string, currentStock must be number")
		return
	}
	currentStock := int(stockNum)
	if productID == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: productId and currentStock")
		return
	}
	if currentStock < 0 {
		writeError(w, http.StatusBadRequest, "currentStock must not be negative")
		return
	}

	outcome := s.orchestrator.RunOne(r.Context(), productID, currentStock)
	if !outcome.Success && outcome.Error != "" {
		if isConfigError(outcome.Error) {
			writeError(w, http.StatusInternalServerError, "Server configuration error: Missing environment variables")
			return
		}
	}

	response := map[string]any{
		"success":      outcome.Success,
		"productId":    productID,
		"currentStock": currentStock,
		"database":     persistenceInfo(outcome),
	}
	if outcome.Success {
		response["result"] = models.Prediction{
			StockPredicted: outcome.StockPredicted,
			RiskLevel:      outcome.RiskLevel,
			Comment:        outcome.Comment,
		}
	}
	if outcome.Error != "" {
		response["error"] = fmt.Sprintf("Prediction failed: %s", outcome.Error)
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handlePredictInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Inventory Prediction API",
		"endpoints": map[string]string{
			"POST":        "/api/predict",
			"description": "Send productId and currentStock to get inventory predictions",
		},
		"usage": map[string]any{
			"method": "POST",
			"body": map[string]string{
				"productId":    "string",
				"currentStock": "number",
			},
		},
	})
}

// handleBatchPredict synchronously runs the full batch. Per-item failures
// are reported inside the summary; only a failure of the orchestration
// itself yields a 500.
func (s *Server) handleBatchPredict(w http.ResponseWriter, r *http.Request) {
	s.logger.Info().Msg("Starting batch predictions via API")

	summary := s.orchestrator.Run(r.Context(), batch.ProductIDs(s.batchSize))

	if s.notifier != nil {
		s.notifier.NotifyBatchCompleted(summary)
	}

	stats, err := s.store.GetPredictionStats()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to get prediction statistics")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Batch predictions completed successfully",
		"summary": map[string]any{
			"totalProducts":         summary.TotalRequests,
			"successfulPredictions": summary.SuccessfulRequests,
			"failedPredictions":     summary.FailedRequests,
			"successRate":           fmt.Sprintf("%.2f%%", summary.SuccessRate()),
			"executionTime":         fmt.Sprintf("%.1f seconds", float64(summary.ExecutionTimeMs)/1000),
			"results":               summary.TopResults(10),
			"riskDistribution":      stats.RiskDistribution,
		},
		"statistics": stats,
	})
}

func (s *Server) handleBatchInfo(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetPredictionStats()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to get statistics",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Batch Prediction API",
		"description": fmt.Sprintf("Run batch predictions for products P001-P%03d", s.batchSize),
		"endpoints": map[string]string{
			"POST": "/api/batch-predict - Run batch predictions",
			"GET":  "/api/batch-predict - Get prediction statistics",
		},
		"currentStatistics": stats,
	})
}

func (s *Server) handleListPredictions(w http.ResponseWriter, r *http.Request) {
	var predictions []models.PredictionRecord
	var err error

	if risk := r.URL.Query().Get("risk"); risk != "" {
		level := models.RiskLevel(strings.ToUpper(risk))
		switch level {
		case models.RiskCritical, models.RiskHigh, models.RiskMedium, models.RiskLow:
			predictions, err = s.store.GetPredictionsByRisk(level)
		default:
			writeError(w, http.StatusBadRequest, "Invalid risk level")
			return
		}
	} else {
		predictions, err = s.store.GetAllPredictions(100)
	}

	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch predictions")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":     false,
			"error":       "Failed to fetch predictions",
			"predictions": []models.PredictionRecord{},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"predictions": predictions,
		"count":       len(predictions),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	predictions, err := s.store.GetAllPredictions(100)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch dashboard data")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":     false,
			"error":       "Failed to fetch dashboard data",
			"predictions": []models.PredictionRecord{},
			"counts":      riskCounts(nil),
		})
		return
	}

	response := map[string]any{
		"success":     true,
		"predictions": predictions,
		"counts":      riskCounts(predictions),
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	}

	// The overview is best-effort: the risk table is still useful without it.
	if overview, err := s.store.GetDashboardOverview(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to fetch dashboard overview")
	} else {
		response["overview"] = overview
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := s.catalog.Rows(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch catalog feed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// riskCounts mirrors the dashboard's reading of the risk table: "high"
// includes critical because both need restocking attention.
func riskCounts(predictions []models.PredictionRecord) map[string]int {
	counts := map[string]int{"critical": 0, "high": 0, "medium": 0, "low": 0, "all": len(predictions)}
	for _, p := range predictions {
		switch p.RiskLevel {
		case models.RiskCritical:
			counts["critical"]++
			counts["high"]++
		case models.RiskHigh:
			counts["high"]++
		case models.RiskMedium:
			counts["medium"]++
		case models.RiskLow:
			counts["low"]++
		}
	}
	return counts
}

func persistenceInfo(outcome models.ItemOutcome) map[string]any {
	if outcome.Success {
		return map[string]any{"saved": true}
	}
	info := map[string]any{"saved": false}
	if outcome.Error != "" {
		info["error"] = outcome.Error
	}
	return info
}

// isConfigError distinguishes "server misconfigured" from "prediction
// failed" so callers can tell the two apart.
func isConfigError(msg string) bool {
	return strings.Contains(msg, "environment variable")
}
