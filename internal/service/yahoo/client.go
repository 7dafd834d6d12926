package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"MacroDash/internal/domain/models"
	drepo "MacroDash/internal/domain/repository"
	"MacroDash/internal/service/ratelimit"
	xhttp "MacroDash/pkg/http"
	"MacroDash/pkg/util"
)

// Client implements a MarketSource backed by the Yahoo Finance chart API.
// Only daily closing values are consumed.
type Client struct {
	baseURL string

	http    *xhttp.Client
	limiter *ratelimit.Limiter

	ratePerSec   float64
	rateCapacity float64
}

// Option configures Client.
type Option func(*Client)

// New creates a new Yahoo MarketSource.
func New(baseURL string, timeout time.Duration, opts ...Option) drepo.MarketSource {
	c := &Client{
		baseURL:      baseURL,
		http:         xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithUserAgent("Mozilla/5.0 (compatible; macrodash/1.0)")),
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

func (c *Client) Name() string { return "yahoo" }

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyCloses fetches daily closing values for one ticker over [start, end].
// Null closes (holidays, partial sessions) are skipped.
func (c *Client) DailyCloses(ctx context.Context, symbol string, start, end time.Time) (models.Series, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.Name(), c.rateCapacity, c.ratePerSec); err != nil {
			return models.Series{}, fmt.Errorf("yahoo rate limit: %w", err)
		}
	}

	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v8/finance/chart/" + url.PathEscape(symbol),
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(start.Unix(), 10)},
			"period2":  {strconv.FormatInt(end.Unix(), 10)},
			"interval": {"1d"},
			"events":   {"history"},
		},
	}, &resp)
	if err != nil {
		return models.Series{}, fmt.Errorf("yahoo %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		return models.Series{}, fmt.Errorf("yahoo %s: api error %s: %s", symbol, resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return models.Series{}, fmt.Errorf("yahoo %s: empty result", symbol)
	}

	result := resp.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return models.Series{}, fmt.Errorf("yahoo %s: %d closes for %d timestamps", symbol, len(closes), len(result.Timestamp))
	}

	s := models.Series{Name: symbol, Points: make([]models.Point, 0, len(closes))}
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		s.Points = append(s.Points, models.Point{
			Date:  util.DayFloor(time.Unix(ts, 0)),
			Value: *closes[i],
		})
	}
	return s, nil
}
