package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"MacroDash/internal/domain/models"
	"MacroDash/pkg/logger"
	"MacroDash/pkg/util"
)

// noopMetrics satisfies repository.Metrics without a registry.
type noopMetrics struct{}

func (noopMetrics) RecordFetch(string, float64)     {}
func (noopMetrics) RecordFetchError(string)         {}
func (noopMetrics) RecordCacheLookup(string)        {}
func (noopMetrics) RecordSnapshot(float64, int)     {}
func (noopMetrics) RecordRefresh(string)            {}
func (noopMetrics) RecordIndicator(string, float64) {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// seriesSpec controls the canned values produced by the stub sources.
type seriesSpec struct {
	days  int
	sofr  float64
	iorb  float64
	vix   float64
	// walclStep grows WALCL per day so liquidity delta can be signed.
	walclStep float64
}

func defaultSpec(days int) seriesSpec {
	return seriesSpec{days: days, sofr: 5.31, iorb: 5.40, vix: 15, walclStep: 2000}
}

func (sp seriesSpec) panels() (macro, market []models.Series) {
	for _, id := range models.MacroSeries {
		macro = append(macro, sp.series(id))
	}
	for _, sym := range models.MarketSymbols {
		market = append(market, sp.series(sym))
	}
	return macro, market
}

func (sp seriesSpec) series(name string) models.Series {
	// End the window today so now-relative truncation in History sees it.
	base := util.DayFloor(time.Now()).AddDate(0, 0, -(sp.days - 1))
	s := models.Series{Name: name}
	for i := 0; i < sp.days; i++ {
		var v float64
		switch name {
		case models.SeriesWALCL:
			v = 8_000_000 + sp.walclStep*float64(i)
		case models.SeriesWTREGEN:
			v = 700 + float64(i)
		case models.SeriesRRPONTSYD:
			v = 500
		case models.SeriesSOFR:
			v = sp.sofr
		case models.SeriesIORB:
			v = sp.iorb
		case models.SeriesT10Y2Y:
			v = -0.5
		case models.SymbolSP500:
			v = 4700 + float64(i)
		case models.SymbolVIX:
			v = sp.vix
		case models.SymbolMOVE:
			v = 110
		}
		s.Points = append(s.Points, models.Point{Date: base.AddDate(0, 0, i), Value: v})
	}
	return s
}

type stubMacro struct {
	spec  seriesSpec
	err   error
	calls atomic.Int64
	delay time.Duration
}

func (m *stubMacro) Name() string { return "fred" }

func (m *stubMacro) Observations(ctx context.Context, id string, start, end time.Time) (models.Series, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return models.Series{}, m.err
	}
	return m.spec.series(id), nil
}

type stubMarket struct {
	spec  seriesSpec
	err   error
	calls atomic.Int64
}

func (m *stubMarket) Name() string { return "yahoo" }

func (m *stubMarket) DailyCloses(ctx context.Context, symbol string, start, end time.Time) (models.Series, error) {
	m.calls.Add(1)
	if m.err != nil {
		return models.Series{}, m.err
	}
	return m.spec.series(symbol), nil
}

func newTestProvider(t *testing.T, macro *stubMacro, market *stubMarket, ttl, grace time.Duration) *SnapshotProvider {
	t.Helper()
	data := NewMarketData(macro, market, 730, testLogger(t), noopMetrics{})
	return NewSnapshotProvider(data, ttl, grace, testLogger(t), noopMetrics{})
}
