package fred

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"MacroDash/internal/domain/models"
	drepo "MacroDash/internal/domain/repository"
	"MacroDash/internal/service/ratelimit"
	xhttp "MacroDash/pkg/http"
	"MacroDash/pkg/util"
)

// Client implements a MacroSource backed by the FRED observations API.
type Client struct {
	baseURL string
	apiKey  string

	http    *xhttp.Client
	limiter *ratelimit.Limiter

	ratePerSec   float64
	rateCapacity float64
}

// Option configures Client.
type Option func(*Client)

// New creates a new FRED MacroSource.
func New(baseURL, apiKey string, timeout time.Duration, opts ...Option) drepo.MacroSource {
	c := &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		http:         xhttp.NewClient(xhttp.WithTimeout(timeout)),
		ratePerSec:   2,
		rateCapacity: 10,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLimiter applies an outbound token-bucket limiter.
func WithLimiter(l *ratelimit.Limiter, ratePerSec, capacity float64) Option {
	return func(c *Client) {
		c.limiter = l
		if ratePerSec > 0 {
			c.ratePerSec = ratePerSec
		}
		if capacity > 0 {
			c.rateCapacity = capacity
		}
	}
}

func (c *Client) Name() string { return "fred" }

type observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type observationsResponse struct {
	Observations []observation `json:"observations"`
	ErrorCode    int           `json:"error_code"`
	ErrorMessage string        `json:"error_message"`
}

// Observations fetches one series over [start, end]. Missing observations
// (FRED encodes them as ".") are skipped; the aligner treats absent dates
// as gaps to fill.
func (c *Client) Observations(ctx context.Context, seriesID string, start, end time.Time) (models.Series, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.Name(), c.rateCapacity, c.ratePerSec); err != nil {
			return models.Series{}, fmt.Errorf("fred rate limit: %w", err)
		}
	}

	var resp observationsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/fred/series/observations",
		QueryParams: map[string][]string{
			"series_id":         {seriesID},
			"api_key":           {c.apiKey},
			"file_type":         {"json"},
			"observation_start": {util.FormatDay(start)},
			"observation_end":   {util.FormatDay(end)},
		},
	}, &resp)
	if err != nil {
		return models.Series{}, fmt.Errorf("fred %s: %w", seriesID, err)
	}
	if resp.ErrorCode != 0 {
		return models.Series{}, fmt.Errorf("fred %s: api error %d: %s", seriesID, resp.ErrorCode, resp.ErrorMessage)
	}

	s := models.Series{Name: seriesID, Points: make([]models.Point, 0, len(resp.Observations))}
	for _, o := range resp.Observations {
		if o.Value == "." {
			continue
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue
		}
		d, err := util.ParseDay(o.Date)
		if err != nil {
			return models.Series{}, fmt.Errorf("fred %s: bad date %q: %w", seriesID, o.Date, err)
		}
		s.Points = append(s.Points, models.Point{Date: d, Value: v})
	}
	return s, nil
}
