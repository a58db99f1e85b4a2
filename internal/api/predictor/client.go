package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Inventory/models"
)

// Client calls the externally hosted demand prediction model. It is a pure
// transport boundary: it never persists anything and every failure comes
// back as an error value, not a panic.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new predictor client
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// NewClient creates a new predictor client. A missing base URL is reported
// on the first Predict call so the HTTP layer can surface it as a
// configuration error rather than failing process startup.
func NewClient(opts ClientOptions) *Client {
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: opts.RequestTimeout,
		},
		logger: log.With().Str("component", "predictor_client").Logger(),
	}
}

type predictRequest struct {
	ProductID    string `json:"productId"`
	CurrentStock int    `json:"currentStock"`
}

type predictEnvelope struct {
	Success bool   `json:"success"`
	Data    []any  `json:"data"`
	Error   string `json:"error"`
}

// Predict requests a demand forecast for one product and returns the raw
// response sequence for the parser to interpret.
func (c *Client) Predict(ctx context.Context, productID string, currentStock int) ([]any, error) {
	if c.baseURL == "" {
		return nil, models.ErrPredictorNotConfigured
	}
	if productID == "" {
		return nil, errors.New("productId must not be empty")
	}
	if currentStock < 0 {
		return nil, errors.New("currentStock must not be negative")
	}

	payload, err := json.Marshal(predictRequest{ProductID: productID, CurrentStock: currentStock})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := c.baseURL + "/api/predict"
	c.logger.Debug().Str("product_id", productID).Int("current_stock", currentStock).Msg("Requesting prediction")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var envelope predictEnvelope
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Prefer the server-supplied error message when there is one.
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			return nil, errors.New(envelope.Error)
		}
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return envelope.Data, nil
}
