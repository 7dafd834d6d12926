package repository

import (
	"context"
	"time"

	"MacroDash/internal/domain/models"
)

// MacroSource fetches one macro series over a date window.
type MacroSource interface {
	Observations(ctx context.Context, seriesID string, start, end time.Time) (models.Series, error)
	Name() string
}

// MarketSource fetches daily closing values for one ticker over a date window.
type MarketSource interface {
	DailyCloses(ctx context.Context, symbol string, start, end time.Time) (models.Series, error)
	Name() string
}

// Metrics records pipeline and snapshot metrics.
type Metrics interface {
	RecordFetch(source string, seconds float64)
	RecordFetchError(source string)
	RecordCacheLookup(result string)
	RecordSnapshot(ageSeconds float64, rows int)
	RecordRefresh(outcome string)
	RecordIndicator(name string, value float64)
}
