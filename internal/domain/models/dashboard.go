package models

import "time"

// Status is the three-tier funding-stress classification of the SOFR-IORB
// spread. Every spread value maps to exactly one tier.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Action is the categorical outcome of the recommendation rule.
type Action string

const (
	ActionLiquidate Action = "liquidate"
	ActionBuyDip    Action = "buy_the_dip"
	ActionHold      Action = "hold"
)

// Recommendation is the rule output shown in the advice block.
type Recommendation struct {
	Action  Action `json:"action"`
	Label   string `json:"label"`
	Reason  string `json:"reason"`
	Urgent  bool   `json:"urgent"`
	Upbeat  bool   `json:"upbeat"`
}

// LiquidityPanel holds the fuel-gauge metrics: net liquidity in trillions
// USD plus its two drain sub-components.
type LiquidityPanel struct {
	NetLiquidity float64 `json:"net_liquidity"`
	Delta        float64 `json:"delta"`
	TGA          float64 `json:"tga"`
	RRP          float64 `json:"rrp"`
}

// HealthPanel holds the funding-stress metrics.
type HealthPanel struct {
	Spread float64 `json:"spread"`
	Status Status  `json:"status"`
	Label  string  `json:"label"`
}

// SentimentPanel holds the fear-index metrics.
type SentimentPanel struct {
	VIX  float64 `json:"vix"`
	MOVE float64 `json:"move"`
}

// ChartData carries the aligned series the page plots. Dates are
// YYYY-MM-DD strings, one per retained row.
type ChartData struct {
	Dates        []string  `json:"dates"`
	NetLiquidity []float64 `json:"net_liquidity"`
	SP500        []float64 `json:"sp500"`
	RateSpread   []float64 `json:"rate_spread"`
	SpreadColors []string  `json:"spread_colors"`
	VIX          []float64 `json:"vix"`
	MOVE         []float64 `json:"move"`

	SpreadThreshold float64 `json:"spread_threshold"`
	FearReference   float64 `json:"fear_reference"`
}

// Dashboard is the full view model for one render pass: pure computed
// display values, independent of any rendering toolkit.
type Dashboard struct {
	GeneratedAt    time.Time      `json:"generated_at"`
	FetchedAt      time.Time      `json:"fetched_at"`
	Stale          bool           `json:"stale"`
	Rows           int            `json:"rows"`
	Liquidity      LiquidityPanel `json:"liquidity"`
	Health         HealthPanel    `json:"health"`
	Sentiment      SentimentPanel `json:"sentiment"`
	Recommendation Recommendation `json:"recommendation"`
	Charts         ChartData      `json:"charts"`
}

// SnapshotStatus is the meta reported by the status endpoint.
type SnapshotStatus struct {
	HasSnapshot bool      `json:"has_snapshot"`
	FetchedAt   time.Time `json:"fetched_at,omitempty"`
	AgeSeconds  float64   `json:"age_seconds,omitempty"`
	Rows        int       `json:"rows,omitempty"`
	Stale       bool      `json:"stale"`
}
