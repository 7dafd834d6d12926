package usecase

import (
	"fmt"

	"MacroDash/internal/domain/models"
	"MacroDash/internal/services/analytics"
	"MacroDash/internal/timeseries"
)

// liqMAWindow is the trailing window of the net-liquidity moving average.
const liqMAWindow = 20

// requiredColumns are the raw series every retained row must carry a value
// for. A gap here after forward-fill and truncation is a fatal precondition
// violation for the derived-column math.
var requiredColumns = append(append([]string(nil), models.MacroSeries...), models.MarketSymbols...)

// BuildTable joins both panels into one gap-free daily table and appends
// the derived columns, in order: Net_Liquidity, Rate_Spread, Liq_MA20.
func BuildTable(macro, market []models.Series) (*timeseries.Frame, error) {
	joined, err := timeseries.FromSeries(macro...).Concat(timeseries.FromSeries(market...))
	if err != nil {
		return nil, fmt.Errorf("join panels: %w", err)
	}

	f := joined.ResampleDaily().ForwardFill().DropLeadingIncomplete()
	if f.Len() == 0 {
		return nil, fmt.Errorf("%w: no complete rows", ErrInsufficientData)
	}

	for _, c := range requiredColumns {
		if _, ok := f.Column(c); !ok {
			return nil, fmt.Errorf("transform: missing column %q", c)
		}
		if n := f.NaNCount(c); n != 0 {
			return nil, fmt.Errorf("transform: column %q has %d gaps after fill", c, n)
		}
	}

	walcl, _ := f.Column(models.SeriesWALCL)
	tga, _ := f.Column(models.SeriesWTREGEN)
	rrp, _ := f.Column(models.SeriesRRPONTSYD)
	sofr, _ := f.Column(models.SeriesSOFR)
	iorb, _ := f.Column(models.SeriesIORB)

	netLiq := make([]float64, f.Len())
	spread := make([]float64, f.Len())
	for i := 0; i < f.Len(); i++ {
		netLiq[i] = analytics.NetLiquidity(walcl[i], tga[i], rrp[i])
		spread[i] = analytics.RateSpread(sofr[i], iorb[i])
	}
	if err := f.AddColumn(models.ColNetLiquidity, netLiq); err != nil {
		return nil, err
	}
	if err := f.AddColumn(models.ColRateSpread, spread); err != nil {
		return nil, err
	}

	// Liq_MA20 stays NaN while the trailing window is incomplete; those
	// cells are never filled.
	ma, err := f.RollingMean(models.ColNetLiquidity, liqMAWindow)
	if err != nil {
		return nil, err
	}
	if err := f.AddColumn(models.ColLiqMA20, ma); err != nil {
		return nil, err
	}

	return f, nil
}
