package usecase

import (
	"context"
	"fmt"
	"time"

	"MacroDash/internal/domain/models"
	drepo "MacroDash/internal/domain/repository"
	"MacroDash/internal/services/analytics"
	"MacroDash/internal/timeseries"
	"MacroDash/pkg/util"
)

// lookbackRows is how far back the period-over-period comparison reaches:
// the fifth row from the end, by position, not by calendar distance. A gap
// in the source data therefore shifts the comparison window. Deliberately
// kept position-based to match the established indicator definition.
const lookbackRows = 5

// DashboardUseCase turns the current snapshot into the page view model.
type DashboardUseCase struct {
	snaps   *SnapshotProvider
	metrics drepo.Metrics
}

// NewDashboardUseCase creates the presenter usecase.
func NewDashboardUseCase(snaps *SnapshotProvider, metrics drepo.Metrics) *DashboardUseCase {
	return &DashboardUseCase{snaps: snaps, metrics: metrics}
}

// Get returns the full dashboard view model, fetching data as needed.
func (uc *DashboardUseCase) Get(ctx context.Context) (*models.Dashboard, error) {
	snap, stale, err := uc.snaps.Get(ctx)
	if err != nil {
		return nil, err
	}
	return uc.build(snap, stale)
}

// History returns the chart series truncated to the trailing days window.
func (uc *DashboardUseCase) History(ctx context.Context, days int) (*models.ChartData, error) {
	snap, _, err := uc.snaps.Get(ctx)
	if err != nil {
		return nil, err
	}
	trimmed := snap.Frame.Since(util.DayFloor(time.Now()).AddDate(0, 0, -days))
	charts := buildCharts(trimmed)
	return &charts, nil
}

// Status reports snapshot meta without triggering a rebuild.
func (uc *DashboardUseCase) Status() models.SnapshotStatus {
	snap, ok := uc.snaps.Current()
	if !ok {
		return models.SnapshotStatus{HasSnapshot: false}
	}
	age := time.Since(snap.FetchedAt)
	return models.SnapshotStatus{
		HasSnapshot: true,
		FetchedAt:   snap.FetchedAt,
		AgeSeconds:  age.Seconds(),
		Rows:        snap.Frame.Len(),
		Stale:       age > uc.snaps.TTL(),
	}
}

func (uc *DashboardUseCase) build(snap *Snapshot, stale bool) (*models.Dashboard, error) {
	f := snap.Frame
	if f.Len() < lookbackRows {
		return nil, fmt.Errorf("%w: %d rows, need %d", ErrInsufficientData, f.Len(), lookbackRows)
	}

	last := f.Len() - 1
	prev := f.Len() - lookbackRows

	netLiq := f.Value(models.ColNetLiquidity, last)
	liqDelta := netLiq - f.Value(models.ColNetLiquidity, prev)
	spread := f.Value(models.ColRateSpread, last)
	vix := f.Value(models.SymbolVIX, last)
	move := f.Value(models.SymbolMOVE, last)
	status := analytics.ClassifySpread(spread)

	uc.metrics.RecordIndicator(models.ColNetLiquidity, netLiq)
	uc.metrics.RecordIndicator(models.ColRateSpread, spread)
	uc.metrics.RecordIndicator(models.SymbolVIX, vix)

	d := &models.Dashboard{
		GeneratedAt: time.Now(),
		FetchedAt:   snap.FetchedAt,
		Stale:       stale,
		Rows:        f.Len(),
		Liquidity: models.LiquidityPanel{
			NetLiquidity: netLiq,
			Delta:        liqDelta,
			TGA:          analytics.TGATrillions(f.Value(models.SeriesWTREGEN, last)),
			RRP:          analytics.RRPTrillions(f.Value(models.SeriesRRPONTSYD, last)),
		},
		Health: models.HealthPanel{
			Spread: spread,
			Status: status,
			Label:  analytics.StatusLabel(status),
		},
		Sentiment: models.SentimentPanel{
			VIX:  vix,
			MOVE: move,
		},
		Recommendation: analytics.Advise(spread, vix, liqDelta),
		Charts:         buildCharts(f),
	}
	return d, nil
}

func buildCharts(f *timeseries.Frame) models.ChartData {
	n := f.Len()
	c := models.ChartData{
		Dates:           make([]string, n),
		NetLiquidity:    make([]float64, n),
		SP500:           make([]float64, n),
		RateSpread:      make([]float64, n),
		VIX:             make([]float64, n),
		MOVE:            make([]float64, n),
		SpreadThreshold: analytics.SpreadThreshold,
		FearReference:   analytics.FearReference,
	}
	for i := 0; i < n; i++ {
		c.Dates[i] = util.FormatDay(f.Date(i))
		c.NetLiquidity[i] = f.Value(models.ColNetLiquidity, i)
		c.SP500[i] = f.Value(models.SymbolSP500, i)
		c.RateSpread[i] = f.Value(models.ColRateSpread, i)
		c.VIX[i] = f.Value(models.SymbolVIX, i)
		c.MOVE[i] = f.Value(models.SymbolMOVE, i)
	}
	c.SpreadColors = analytics.SpreadColors(c.RateSpread)
	return c
}
