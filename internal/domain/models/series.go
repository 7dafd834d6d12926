package models

import "time"

// Macro series identifiers fetched from FRED. The derived-indicator math
// references these by name, so the set is fixed rather than configurable.
const (
	SeriesWALCL     = "WALCL"     // Fed balance sheet, millions USD
	SeriesWTREGEN   = "WTREGEN"   // Treasury General Account, billions USD
	SeriesRRPONTSYD = "RRPONTSYD" // Overnight reverse repo, billions USD
	SeriesSOFR      = "SOFR"      // Secured overnight financing rate, percent
	SeriesIORB      = "IORB"      // Interest on reserve balances, percent
	SeriesT10Y2Y    = "T10Y2Y"    // 10y-2y treasury spread, percent
)

// Market ticker symbols fetched from the market data provider.
const (
	SymbolSP500 = "^GSPC"
	SymbolVIX   = "^VIX"
	SymbolMOVE  = "^MOVE"
)

// Derived column names, appended to the observation table in this order.
const (
	ColNetLiquidity = "Net_Liquidity"
	ColRateSpread   = "Rate_Spread"
	ColLiqMA20      = "Liq_MA20"
)

// MacroSeries lists every FRED series the fetcher requests.
var MacroSeries = []string{
	SeriesWALCL,
	SeriesWTREGEN,
	SeriesRRPONTSYD,
	SeriesSOFR,
	SeriesIORB,
	SeriesT10Y2Y,
}

// MarketSymbols lists every ticker the fetcher requests.
var MarketSymbols = []string{
	SymbolSP500,
	SymbolVIX,
	SymbolMOVE,
}

// Point is one dated observation.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is a named sequence of dated observations, ascending by date.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}
