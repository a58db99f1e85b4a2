package models

import "context"

type PredictorClient interface {
	Predict(ctx context.Context, productID string, currentStock int) ([]any, error)
}

// PredictionStore is the narrow persistence surface the batch loop needs.
type PredictionStore interface {
	UpsertPrediction(in PredictionInput) (*PredictionRecord, error)
}

// PredictionQuerier adds the read side used by HTTP handlers.
type PredictionQuerier interface {
	PredictionStore
	GetPredictionStats() (*PredictionStats, error)
	GetAllPredictions(limit int) ([]PredictionRecord, error)
	GetPredictionsByRisk(risk RiskLevel) ([]PredictionRecord, error)
	GetDashboardOverview() (*DashboardOverview, error)
}

// BatchNotifier receives the summary of a completed batch run.
type BatchNotifier interface {
	NotifyBatchCompleted(summary BatchRunSummary)
}
