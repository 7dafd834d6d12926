package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDailyClosesParsesAndSkipsNulls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ^GSPC must arrive path-escaped
		if r.URL.EscapedPath() != "/v8/finance/chart/%5EGSPC" {
			t.Errorf("unexpected path %q", r.URL.EscapedPath())
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("unexpected interval %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1704117000,1704203400,1704289800],
			"indicators":{"quote":[{"close":[4742.83,null,4783.35]}]}
		}],"error":null}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	s, err := c.DailyCloses(context.Background(), "^GSPC", time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatalf("daily closes: %v", err)
	}

	if len(s.Points) != 2 {
		t.Fatalf("expected 2 points (null skipped), got %d", len(s.Points))
	}
	if s.Points[0].Value != 4742.83 {
		t.Fatalf("unexpected first close %v", s.Points[0].Value)
	}
	if got := s.Points[0].Date; got.Hour() != 0 {
		t.Fatalf("expected date floored to midnight, got %v", got)
	}
}

func TestDailyClosesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.DailyCloses(context.Background(), "^MOVE", time.Now().AddDate(0, 0, -7), time.Now())
	if err == nil {
		t.Fatalf("expected api error")
	}
}

func TestDailyClosesLengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1704117000,1704203400],
			"indicators":{"quote":[{"close":[4742.83]}]}
		}],"error":null}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.DailyCloses(context.Background(), "^VIX", time.Now().AddDate(0, 0, -7), time.Now())
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
}
