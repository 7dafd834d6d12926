package analytics

import "MacroDash/internal/domain/models"

// FearBuyLevel is the VIX level at or above which depressed sentiment
// becomes a contrarian buy signal, provided liquidity is rising.
const FearBuyLevel = 25.0

// Advise evaluates the decision table over (spread, vix, liquidity delta)
// in fixed priority order. System risk always wins: when the spread
// breaches the threshold the outcome is liquidation regardless of the
// other inputs.
func Advise(spread, vix, liqDelta float64) models.Recommendation {
	switch {
	case spread >= SpreadThreshold:
		return models.Recommendation{
			Action: models.ActionLiquidate,
			Label:  "[EMERGENCY] Liquidate to cash (System Risk)",
			Reason: "funding stress detected in the financial system",
			Urgent: true,
		}
	case vix >= FearBuyLevel && liqDelta > 0:
		return models.Recommendation{
			Action: models.ActionBuyDip,
			Label:  "[OPPORTUNITY] Buy the dip",
			Reason: "liquidity is rising while sentiment is depressed (fundamentals sound)",
			Upbeat: true,
		}
	default:
		return models.Recommendation{
			Action: models.ActionHold,
			Label:  "Hold / wait",
			Reason: "nothing unusual",
		}
	}
}
