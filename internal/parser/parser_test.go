package parser

import (
	"errors"
	"testing"

	"github.com/Alias1177/Inventory/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		data     []any
		expected models.Prediction
	}{
		{
			name: "critical beats high when both present",
			data: []any{"📊 500 units, Critical risk, High Temperature"},
			expected: models.Prediction{
				StockPredicted: 500,
				RiskLevel:      models.RiskCritical,
				Comment:        "High Temperature",
			},
		},
		{
			name: "high risk",
			data: []any{"📊 230 units, High risk, Festive Season Demand"},
			expected: models.Prediction{
				StockPredicted: 230,
				RiskLevel:      models.RiskHigh,
				Comment:        "Festive Season Demand",
			},
		},
		{
			name: "low risk",
			data: []any{"📊 120 units, Low risk, Base Demand"},
			expected: models.Prediction{
				StockPredicted: 120,
				RiskLevel:      models.RiskLow,
				Comment:        "Base Demand",
			},
		},
		{
			name: "defaults when nothing matches",
			data: []any{"no number here, unknown risk"},
			expected: models.Prediction{
				StockPredicted: 0,
				RiskLevel:      models.RiskMedium,
				Comment:        DefaultComment,
			},
		},
		{
			name: "explicit medium falls through to default level but keeps comment",
			data: []any{"📊 340 units, Medium risk, Steady Demand"},
			expected: models.Prediction{
				StockPredicted: 340,
				RiskLevel:      models.RiskMedium,
				Comment:        "Steady Demand",
			},
		},
		{
			name: "number without risk word",
			data: []any{"📊 75 units"},
			expected: models.Prediction{
				StockPredicted: 75,
				RiskLevel:      models.RiskMedium,
				Comment:        DefaultComment,
			},
		},
		{
			name: "risk word without number",
			data: []any{"Critical risk, Supply Chain Disruption"},
			expected: models.Prediction{
				StockPredicted: 0,
				RiskLevel:      models.RiskCritical,
				Comment:        "Supply Chain Disruption",
			},
		},
		{
			name: "only first element is read",
			data: []any{"📊 60 units, Low risk, Base Demand", "📊 999 units, Critical risk, ignored"},
			expected: models.Prediction{
				StockPredicted: 60,
				RiskLevel:      models.RiskLow,
				Comment:        "Base Demand",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Parse() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseStructuralFailure(t *testing.T) {
	tests := []struct {
		name string
		data []any
	}{
		{name: "nil sequence", data: nil},
		{name: "empty sequence", data: []any{}},
		{name: "first element not text", data: []any{42, "📊 500 units"}},
		{name: "first element is a map", data: []any{map[string]any{"units": 500}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Parse() error = %v, want ErrInvalidFormat", err)
			}
		})
	}
}
