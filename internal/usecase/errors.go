package usecase

import "errors"

var (
	// ErrFetch is the single failure kind for both upstream data sources.
	// Every provider error is wrapped in it so callers handle macro and
	// market failures uniformly.
	ErrFetch = errors.New("market data fetch failed")

	// ErrInsufficientData means the transformed table is too short for the
	// lookback comparison the presenter needs.
	ErrInsufficientData = errors.New("not enough observations after transformation")

	// ErrNoSnapshot means no snapshot has been built yet and the rebuild
	// failed.
	ErrNoSnapshot = errors.New("no data snapshot available")
)
