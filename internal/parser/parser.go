package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/Alias1177/Inventory/models"
)

// ErrInvalidFormat is returned when the model response has no usable first
// line. It is the only parse failure that surfaces as an error; everything
// else degrades to defaults so the caller still has a record to persist.
var ErrInvalidFormat = errors.New("invalid prediction data format")

// DefaultComment is used when the model gives no rationale.
const DefaultComment = "No additional context"

var (
	// The model emits a stylized line like "📊 500 units, Critical risk, ...".
	stockRe   = regexp.MustCompile(`(\d+)\s*units`)
	commentRe = regexp.MustCompile(`(?:Critical|High|Medium|Low)\s*risk,\s*(.+)$`)
)

// Parse interprets the raw response sequence from the remote predictor.
// Only the first element is meaningful and it must be a string.
func Parse(data []any) (models.Prediction, error) {
	if len(data) == 0 {
		return models.Prediction{}, ErrInvalidFormat
	}
	line, ok := data[0].(string)
	if !ok {
		return models.Prediction{}, ErrInvalidFormat
	}

	p := models.Prediction{
		RiskLevel: models.RiskMedium,
		Comment:   DefaultComment,
	}

	if m := stockRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.StockPredicted = n
		}
	}

	// First match wins: Critical > High > Low. An explicit "Medium risk"
	// falls through to the default on purpose.
	switch {
	case strings.Contains(line, "Critical risk"):
		p.RiskLevel = models.RiskCritical
	case strings.Contains(line, "High risk"):
		p.RiskLevel = models.RiskHigh
	case strings.Contains(line, "Low risk"):
		p.RiskLevel = models.RiskLow
	}

	if m := commentRe.FindStringSubmatch(line); m != nil {
		p.Comment = strings.TrimSpace(m[1])
	}

	return p, nil
}
