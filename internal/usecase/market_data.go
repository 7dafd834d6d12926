package usecase

import (
	"context"
	"fmt"
	"time"

	"MacroDash/internal/domain/models"
	drepo "MacroDash/internal/domain/repository"
	"MacroDash/pkg/cache"
	"MacroDash/pkg/logger"
	"MacroDash/pkg/util"
)

// MarketData fetches the two upstream panels over the trailing window.
// Fetching is sequential: the macro source first, then the market source.
// Both sources fail uniformly as ErrFetch; any failure halts the whole
// fetch pass, there are no retries and no partial results.
type MarketData struct {
	macro      drepo.MacroSource
	market     drepo.MarketSource
	windowDays int

	payloads   cache.Service // optional raw-payload cache, may be nil
	payloadTTL time.Duration

	log     *logger.Logger
	metrics drepo.Metrics
}

// NewMarketData creates the fetch usecase.
func NewMarketData(
	macro drepo.MacroSource,
	market drepo.MarketSource,
	windowDays int,
	log *logger.Logger,
	metrics drepo.Metrics,
) *MarketData {
	return &MarketData{
		macro:      macro,
		market:     market,
		windowDays: windowDays,
		log:        log,
		metrics:    metrics,
	}
}

// SetPayloadCache enables caching of raw provider series, keyed by source,
// identifier and window.
func (u *MarketData) SetPayloadCache(c cache.Service, ttl time.Duration) {
	u.payloads = c
	u.payloadTTL = ttl
}

// FetchPanels retrieves both panels for the window [now - windowDays, now].
func (u *MarketData) FetchPanels(ctx context.Context) (macro, market []models.Series, err error) {
	end := time.Now()
	start := end.AddDate(0, 0, -u.windowDays)

	macro = make([]models.Series, 0, len(models.MacroSeries))
	for _, id := range models.MacroSeries {
		s, err := u.fetchMacro(ctx, id, start, end)
		if err != nil {
			u.metrics.RecordFetchError(u.macro.Name())
			u.log.Error("macro fetch failed", logger.String("series", id), logger.Error(err))
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrFetch, u.macro.Name(), err)
		}
		macro = append(macro, s)
	}

	market = make([]models.Series, 0, len(models.MarketSymbols))
	for _, sym := range models.MarketSymbols {
		s, err := u.fetchMarket(ctx, sym, start, end)
		if err != nil {
			u.metrics.RecordFetchError(u.market.Name())
			u.log.Error("market fetch failed", logger.String("symbol", sym), logger.Error(err))
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrFetch, u.market.Name(), err)
		}
		market = append(market, s)
	}

	return macro, market, nil
}

func (u *MarketData) fetchMacro(ctx context.Context, id string, start, end time.Time) (models.Series, error) {
	key := cache.GenerateKeyWithParams("series", u.macro.Name(), id, util.FormatDay(start), util.FormatDay(end))
	if s, ok := u.cachedSeries(ctx, key); ok {
		return s, nil
	}

	begin := time.Now()
	s, err := u.macro.Observations(ctx, id, start, end)
	if err != nil {
		return models.Series{}, err
	}
	u.metrics.RecordFetch(u.macro.Name(), time.Since(begin).Seconds())

	u.storeSeries(ctx, key, s)
	return s, nil
}

func (u *MarketData) fetchMarket(ctx context.Context, symbol string, start, end time.Time) (models.Series, error) {
	key := cache.GenerateKeyWithParams("series", u.market.Name(), symbol, util.FormatDay(start), util.FormatDay(end))
	if s, ok := u.cachedSeries(ctx, key); ok {
		return s, nil
	}

	begin := time.Now()
	s, err := u.market.DailyCloses(ctx, symbol, start, end)
	if err != nil {
		return models.Series{}, err
	}
	u.metrics.RecordFetch(u.market.Name(), time.Since(begin).Seconds())

	u.storeSeries(ctx, key, s)
	return s, nil
}

func (u *MarketData) cachedSeries(ctx context.Context, key string) (models.Series, bool) {
	if u.payloads == nil {
		return models.Series{}, false
	}
	var s models.Series
	if err := u.payloads.Get(ctx, key, &s); err != nil {
		return models.Series{}, false
	}
	return s, true
}

func (u *MarketData) storeSeries(ctx context.Context, key string, s models.Series) {
	if u.payloads == nil {
		return
	}
	if err := u.payloads.Set(ctx, key, s, u.payloadTTL); err != nil {
		u.log.Warn("payload cache store failed", logger.String("key", key), logger.Error(err))
	}
}
