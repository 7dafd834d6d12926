package fred

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestObservationsParsesAndSkipsMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("series_id"); got != "WALCL" {
			t.Errorf("unexpected series_id %q", got)
		}
		if got := r.URL.Query().Get("file_type"); got != "json" {
			t.Errorf("unexpected file_type %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"observations":[
			{"date":"2024-01-01","value":"8551234.0"},
			{"date":"2024-01-02","value":"."},
			{"date":"2024-01-03","value":"8550000.5"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", 5*time.Second)
	s, err := c.Observations(context.Background(), "WALCL",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("observations: %v", err)
	}

	if len(s.Points) != 2 {
		t.Fatalf("expected 2 points (missing skipped), got %d", len(s.Points))
	}
	if s.Points[0].Value != 8551234.0 {
		t.Fatalf("unexpected first value %v", s.Points[0].Value)
	}
	if s.Points[1].Date.Day() != 3 {
		t.Fatalf("unexpected second date %v", s.Points[1].Date)
	}
}

func TestObservationsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error_code":400,"error_message":"Bad Request. Variable api_key is not set."}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", 5*time.Second)
	_, err := c.Observations(context.Background(), "SOFR", time.Now().AddDate(0, 0, -7), time.Now())
	if err == nil {
		t.Fatalf("expected api error")
	}
}

func TestObservationsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", 5*time.Second)
	_, err := c.Observations(context.Background(), "IORB", time.Now().AddDate(0, 0, -7), time.Now())
	if err == nil {
		t.Fatalf("expected status error")
	}
}
