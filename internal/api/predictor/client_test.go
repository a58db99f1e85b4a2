package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Alias1177/Inventory/models"
)

func TestPredictSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/predict" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if body["productId"] != "P001" || body["currentStock"] != float64(42) {
			t.Errorf("unexpected body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []any{"📊 120 units, Low risk, Base Demand"},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	data, err := client.Predict(context.Background(), "P001", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 1 || data[0] != "📊 120 units, Low risk, Base Demand" {
		t.Errorf("unexpected data: %v", data)
	}
}

func TestPredictServerError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "server supplied message",
			status:  http.StatusBadGateway,
			body:    `{"error":"model endpoint unavailable"}`,
			wantMsg: "model endpoint unavailable",
		},
		{
			name:    "status derived message",
			status:  http.StatusServiceUnavailable,
			body:    `oops`,
			wantMsg: "HTTP 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(ClientOptions{BaseURL: srv.URL})
			_, err := client.Predict(context.Background(), "P001", 10)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestPredictNotConfigured(t *testing.T) {
	client := NewClient(ClientOptions{})
	_, err := client.Predict(context.Background(), "P001", 10)
	if !errors.Is(err, models.ErrPredictorNotConfigured) {
		t.Errorf("error = %v, want ErrPredictorNotConfigured", err)
	}
}

func TestPredictInputValidation(t *testing.T) {
	client := NewClient(ClientOptions{BaseURL: "http://localhost:1"})

	if _, err := client.Predict(context.Background(), "", 10); err == nil {
		t.Error("expected error for empty productId")
	}
	if _, err := client.Predict(context.Background(), "P001", -1); err == nil {
		t.Error("expected error for negative currentStock")
	}
}

func TestPredictMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	_, err := client.Predict(context.Background(), "P001", 10)
	if err == nil || !strings.Contains(err.Error(), "parsing JSON") {
		t.Errorf("error = %v, want JSON parse failure", err)
	}
}
