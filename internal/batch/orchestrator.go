package batch

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Inventory/internal/parser"
	"github.com/Alias1177/Inventory/models"
)

// DefaultInterRequestDelay paces requests against the shared model endpoint.
const DefaultInterRequestDelay = 500 * time.Millisecond

// Orchestrator drives a fixed set of products through the remote predictor,
// one at a time, persisting every outcome. A failing product never aborts
// the run.
type Orchestrator struct {
	client  models.PredictorClient
	store   models.PredictionStore
	stockFn func() int
	delay   time.Duration
	logger  zerolog.Logger
}

// Options holds dependencies for a new Orchestrator
type Options struct {
	Client models.PredictorClient
	Store  models.PredictionStore
	// StockGenerator supplies the current stock snapshot per product.
	// Defaults to a uniform random value in [1,100].
	StockGenerator    func() int
	InterRequestDelay time.Duration
}

// New creates a batch orchestrator
func New(opts Options) *Orchestrator {
	if opts.StockGenerator == nil {
		opts.StockGenerator = func() int { return rand.Intn(100) + 1 }
	}
	if opts.InterRequestDelay == 0 {
		opts.InterRequestDelay = DefaultInterRequestDelay
	}

	return &Orchestrator{
		client:  opts.Client,
		store:   opts.Store,
		stockFn: opts.StockGenerator,
		delay:   opts.InterRequestDelay,
		logger:  log.With().Str("component", "batch_orchestrator").Logger(),
	}
}

// ProductIDs returns the default identifier sequence P001..Pnnn.
func ProductIDs(count int) []string {
	ids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		ids = append(ids, fmt.Sprintf("P%03d", i))
	}
	return ids
}

// Run processes the given products sequentially with pacing between
// requests. Cancelling the context stops the loop and returns the partial
// summary accumulated so far; counters stay consistent over the processed
// prefix.
func (o *Orchestrator) Run(ctx context.Context, productIDs []string) models.BatchRunSummary {
	start := time.Now()
	summary := models.BatchRunSummary{
		RunID:     uuid.NewString(),
		Timestamp: start,
	}

	o.logger.Info().
		Str("run_id", summary.RunID).
		Int("products", len(productIDs)).
		Msg("Starting batch predictions")

	for _, productID := range productIDs {
		if ctx.Err() != nil {
			o.logger.Warn().
				Str("run_id", summary.RunID).
				Int("processed", summary.TotalRequests).
				Msg("Batch cancelled, returning partial summary")
			break
		}

		currentStock := o.stockFn()
		outcome := o.processOne(ctx, productID, currentStock)

		summary.Results = append(summary.Results, outcome)
		summary.TotalRequests++
		if outcome.Success {
			summary.SuccessfulRequests++
			o.logger.Info().Str("product_id", productID).Msg("Prediction saved")
		} else {
			summary.FailedRequests++
			o.logger.Warn().Str("product_id", productID).Str("error", outcome.Error).Msg("Prediction failed")
		}

		// Pacing, not backoff: a flat throttle against the model endpoint.
		select {
		case <-ctx.Done():
		case <-time.After(o.delay):
		}
	}

	summary.ExecutionTimeMs = time.Since(start).Milliseconds()

	o.logger.Info().
		Str("run_id", summary.RunID).
		Int("total", summary.TotalRequests).
		Int("successful", summary.SuccessfulRequests).
		Int("failed", summary.FailedRequests).
		Int64("execution_ms", summary.ExecutionTimeMs).
		Msg("Batch predictions completed")

	return summary
}

// RunOne handles a single product outside of a batch.
func (o *Orchestrator) RunOne(ctx context.Context, productID string, currentStock int) models.ItemOutcome {
	return o.processOne(ctx, productID, currentStock)
}

func (o *Orchestrator) processOne(ctx context.Context, productID string, currentStock int) models.ItemOutcome {
	outcome := models.ItemOutcome{
		ProductID:    productID,
		CurrentStock: currentStock,
	}

	raw, err := o.client.Predict(ctx, productID, currentStock)
	if err != nil {
		outcome.Error = err.Error()
		o.persistFailure(productID, currentStock)
		return outcome
	}

	parsed, err := parser.Parse(raw)
	if err != nil {
		// Transport succeeded but the payload is unusable.
		outcome.Error = err.Error()
		o.persistFailure(productID, currentStock)
		return outcome
	}

	outcome.StockPredicted = parsed.StockPredicted
	outcome.RiskLevel = parsed.RiskLevel
	outcome.Comment = parsed.Comment

	if _, err := o.store.UpsertPrediction(models.PredictionInput{
		ProductID:      productID,
		CurrentStock:   currentStock,
		StockPredicted: parsed.StockPredicted,
		RiskLevel:      parsed.RiskLevel,
		Comment:        parsed.Comment,
		Success:        true,
	}); err != nil {
		o.logger.Error().Err(err).Str("product_id", productID).Msg("Failed to save prediction")
		outcome.Error = fmt.Sprintf("failed to save prediction: %v", err)
		return outcome
	}

	outcome.Success = true
	return outcome
}

// persistFailure records a failed attempt with sentinel values. Persistence
// here is best-effort and must not abort the batch.
func (o *Orchestrator) persistFailure(productID string, currentStock int) {
	_, err := o.store.UpsertPrediction(models.PredictionInput{
		ProductID:      productID,
		CurrentStock:   currentStock,
		StockPredicted: 0,
		RiskLevel:      models.RiskMedium,
		Success:        false,
	})
	if err != nil {
		o.logger.Error().Err(err).Str("product_id", productID).Msg("Failed to save failed prediction")
	}
}
