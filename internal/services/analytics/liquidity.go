package analytics

// Raw series scale conversion to trillions USD. WALCL is reported in
// millions, WTREGEN and RRPONTSYD in billions.
const (
	walclToTrillions = 1_000_000
	tgaToTrillions   = 1_000
	rrpToTrillions   = 1_000
)

// NetLiquidity computes net liquidity in trillions USD: balance sheet size
// minus the government cash buffer minus overnight reverse-repo balances.
//
//	WALCL/1_000_000 - WTREGEN/1000 - RRPONTSYD/1000
func NetLiquidity(walcl, wtregen, rrpontsyd float64) float64 {
	return walcl/walclToTrillions - wtregen/tgaToTrillions - rrpontsyd/rrpToTrillions
}

// RateSpread computes the SOFR-IORB spread in percentage points.
func RateSpread(sofr, iorb float64) float64 {
	return sofr - iorb
}

// TGATrillions converts the raw WTREGEN observation to trillions USD.
func TGATrillions(wtregen float64) float64 {
	return wtregen / tgaToTrillions
}

// RRPTrillions converts the raw RRPONTSYD observation to trillions USD.
func RRPTrillions(rrpontsyd float64) float64 {
	return rrpontsyd / rrpToTrillions
}
