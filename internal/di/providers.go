package di

import (
	"fmt"

	"MacroDash/internal/domain/repository"
	"MacroDash/internal/handler/api"
	"MacroDash/internal/handler/web"
	"MacroDash/internal/handler/ws"
	"MacroDash/internal/service/fred"
	"MacroDash/internal/service/ratelimit"
	"MacroDash/internal/service/scheduler"
	"MacroDash/internal/service/yahoo"
	"MacroDash/internal/usecase"
	"MacroDash/pkg/cache"
	"MacroDash/pkg/config"
	xhttp "MacroDash/pkg/http"
	"MacroDash/pkg/logger"
	"MacroDash/pkg/metrics"
	"MacroDash/pkg/server"
)

// ProvideCollector creates the in-memory warn/error collector backing the
// status endpoint.
func ProvideCollector() *logger.Collector {
	return logger.NewCollector(50)
}

// ProvideLogger creates the application logger with the collector attached.
func ProvideLogger(cfg *config.Config, col *logger.Collector) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.AttachCollector(col)
	return l, nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideLimiter creates the shared per-source token bucket.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideMacroSource creates the FRED client.
func ProvideMacroSource(cfg *config.Config, lim *ratelimit.Limiter) repository.MacroSource {
	return fred.New(cfg.Fred.BaseURL, cfg.Fred.APIKey, cfg.Fred.Timeout,
		fred.WithLimiter(lim, cfg.Fred.RatePerSec, cfg.Fred.RateCapacity),
	)
}

// ProvideMarketSource creates the Yahoo Finance chart client.
func ProvideMarketSource(cfg *config.Config, lim *ratelimit.Limiter) repository.MarketSource {
	return yahoo.New(cfg.Market.BaseURL, cfg.Market.Timeout,
		yahoo.WithLimiter(lim, cfg.Market.RatePerSec, cfg.Market.RateCapacity),
	)
}

// ProvidePayloadCache creates the raw-payload cache: memory-only by
// default, layered over Redis when configured.
func ProvidePayloadCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.PayloadCache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.PayloadCache.Redis.Addr),
		cache.WithRedisPassword(cfg.PayloadCache.Redis.Password),
		cache.WithRedisDB(cfg.PayloadCache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("payload cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvideMarketData creates the fetch usecase with the payload cache wired.
func ProvideMarketData(
	macro repository.MacroSource,
	market repository.MarketSource,
	payloads cache.Service,
	cfg *config.Config,
	log *logger.Logger,
	m repository.Metrics,
) *usecase.MarketData {
	u := usecase.NewMarketData(macro, market, cfg.Pipeline.WindowDays, log, m)
	u.SetPayloadCache(payloads, cfg.PayloadCache.TTL)
	return u
}

// ProvideSnapshotProvider creates the TTL snapshot cache.
func ProvideSnapshotProvider(data *usecase.MarketData, cfg *config.Config, log *logger.Logger, m repository.Metrics) *usecase.SnapshotProvider {
	return usecase.NewSnapshotProvider(data, cfg.Pipeline.CacheTTL, cfg.Pipeline.StaleGrace, log, m)
}

// ProvideDashboardUseCase creates the presenter usecase.
func ProvideDashboardUseCase(snaps *usecase.SnapshotProvider, m repository.Metrics) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(snaps, m)
}

// ProvideHub creates the WebSocket hub.
func ProvideHub(log *logger.Logger) *ws.Hub {
	return ws.NewHub(log)
}

// ProvideRefresher creates the background refresh job.
func ProvideRefresher(
	snaps *usecase.SnapshotProvider,
	dash *usecase.DashboardUseCase,
	hub *ws.Hub,
	cfg *config.Config,
	log *logger.Logger,
) *scheduler.Refresher {
	return scheduler.NewRefresher(snaps, dash, hub, cfg.Pipeline.RefreshInterval, log)
}

// ProvideHandler groups the page, the JSON API and the WebSocket endpoint.
func ProvideHandler(
	log *logger.Logger,
	uc *usecase.DashboardUseCase,
	col *logger.Collector,
	hub *ws.Hub,
) xhttp.Handler {
	return xhttp.Handlers{
		web.NewPageHandler(),
		api.NewDashboardEchoHandler(log, uc, col),
		hub,
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	hub *ws.Hub,
	refresher *scheduler.Refresher,
	payloads cache.Service,
) *server.App {
	return server.New(cfg, log, handler, hub, refresher, payloads)
}
