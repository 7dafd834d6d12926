package analytics

import "MacroDash/internal/domain/models"

// SpreadThreshold is the funding-stress danger line in percentage points.
// A spread at or above it signals money-market seizure.
const SpreadThreshold = 0.05

// ClassifySpread maps a SOFR-IORB spread to its stress tier. The tiers
// partition the real line into exactly three half-open intervals:
// (-inf, 0] normal, (0, 0.05) warning, [0.05, +inf) critical.
func ClassifySpread(spread float64) models.Status {
	switch {
	case spread >= SpreadThreshold:
		return models.StatusCritical
	case spread > 0:
		return models.StatusWarning
	default:
		return models.StatusNormal
	}
}

// StatusLabel returns the caption shown under the spread metric.
func StatusLabel(s models.Status) string {
	switch s {
	case models.StatusCritical:
		return "CRITICAL - move to cash"
	case models.StatusWarning:
		return "Warning"
	default:
		return "Normal"
	}
}

// statusColors maps each tier to its bar color on the stress chart.
var statusColors = map[models.Status]string{
	models.StatusCritical: "red",
	models.StatusWarning:  "yellow",
	models.StatusNormal:   "green",
}

// SpreadColors returns the per-bar colors for a spread history, one color
// per observation by the same three-tier rule.
func SpreadColors(spreads []float64) []string {
	colors := make([]string, len(spreads))
	for i, s := range spreads {
		colors[i] = statusColors[ClassifySpread(s)]
	}
	return colors
}
