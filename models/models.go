package models

import (
	"errors"
	"time"
)

// RiskLevel classifies how exposed a product is to a stockout.
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
)

// ErrPredictorNotConfigured signals a missing model endpoint configuration.
// Handlers map it to a distinct "server misconfigured" response.
var ErrPredictorNotConfigured = errors.New("PREDICTOR_BASE_URL environment variable is not set")

// Prediction is the parsed content of one model response line.
type Prediction struct {
	StockPredicted int       `json:"stockPredicted"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	Comment        string    `json:"comment"`
}

// PredictionInput is the payload persisted for one prediction attempt.
type PredictionInput struct {
	ProductID      string
	CurrentStock   int
	StockPredicted int
	RiskLevel      RiskLevel
	Comment        string
	Success        bool
}

// PredictionRecord is the stored outcome of the latest prediction attempt
// for a product. At most one record exists per product; CreatedAt is
// refreshed on every new attempt.
type PredictionRecord struct {
	ID             int64     `json:"id"`
	ProductID      string    `json:"productId"`
	CurrentStock   int       `json:"currentStock"`
	StockPredicted int       `json:"stockPredicted"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	Comment        string    `json:"comment,omitempty"`
	Success        bool      `json:"success"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PredictionStats aggregates over all stored prediction records.
type PredictionStats struct {
	Total            int               `json:"total"`
	Successful       int               `json:"successful"`
	SuccessRate      float64           `json:"successRate"`
	RiskDistribution map[RiskLevel]int `json:"riskDistribution"`
}

// ItemOutcome is the in-memory result of one product within a batch run.
// Parsed fields are only meaningful when Success is true.
type ItemOutcome struct {
	ProductID      string    `json:"productId"`
	CurrentStock   int       `json:"currentStock"`
	Success        bool      `json:"success"`
	Error          string    `json:"error,omitempty"`
	StockPredicted int       `json:"stockPredicted,omitempty"`
	RiskLevel      RiskLevel `json:"riskLevel,omitempty"`
	Comment        string    `json:"comment,omitempty"`
}

// FormattedResult is the compact per-item shape reported to batch callers.
type FormattedResult struct {
	ProductID      string    `json:"productId"`
	CurrentStock   int       `json:"currentStock"`
	StockPredicted int       `json:"stockPredicted"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	Success        bool      `json:"success"`
}

// BatchRunSummary describes one full batch run. It is transient: only the
// per-item prediction records are persisted.
type BatchRunSummary struct {
	RunID              string        `json:"runId"`
	Timestamp          time.Time     `json:"timestamp"`
	TotalRequests      int           `json:"totalRequests"`
	SuccessfulRequests int           `json:"successfulRequests"`
	FailedRequests     int           `json:"failedRequests"`
	Results            []ItemOutcome `json:"results"`
	ExecutionTimeMs    int64         `json:"executionTimeMs"`
}

// TopResults returns up to max successful, fully parsed outcomes in run
// order, for callers that do not want the full list.
func (s BatchRunSummary) TopResults(max int) []FormattedResult {
	out := make([]FormattedResult, 0, max)
	for _, r := range s.Results {
		if !r.Success {
			continue
		}
		out = append(out, FormattedResult{
			ProductID:      r.ProductID,
			CurrentStock:   r.CurrentStock,
			StockPredicted: r.StockPredicted,
			RiskLevel:      r.RiskLevel,
			Success:        true,
		})
		if len(out) == max {
			break
		}
	}
	return out
}

// SuccessRate returns the percentage of successful items in the run.
func (s BatchRunSummary) SuccessRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.SuccessfulRequests) / float64(s.TotalRequests) * 100
}

// Product is a catalog entry. Predictions reference it by ProductID.
type Product struct {
	ProductID    string    `json:"productId"`
	Name         string    `json:"name"`
	Category     string    `json:"category,omitempty"`
	Description  string    `json:"description,omitempty"`
	ReorderLevel int       `json:"reorderLevel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DashboardOverview is the aggregate header for the dashboard endpoint.
type DashboardOverview struct {
	TotalProducts     int `json:"totalProducts"`
	LowStockCount     int `json:"lowStockCount"`
	CriticalRiskCount int `json:"criticalRiskCount"`
}
