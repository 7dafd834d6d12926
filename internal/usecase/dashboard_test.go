package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"MacroDash/internal/domain/models"
)

func newTestDashboard(t *testing.T, sp seriesSpec) *DashboardUseCase {
	t.Helper()
	p := newTestProvider(t, &stubMacro{spec: sp}, &stubMarket{spec: sp}, time.Hour, time.Hour)
	return NewDashboardUseCase(p, noopMetrics{})
}

func TestDashboardLookbackDelta(t *testing.T) {
	sp := defaultSpec(40)
	uc := newTestDashboard(t, sp)

	d, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Rows != 40 {
		t.Fatalf("rows = %d, want 40", d.Rows)
	}

	// Four daily steps between the last row and the fifth row from the end:
	// WALCL climbs walclStep millions and the TGA climbs 1 billion per day.
	wantDelta := 4 * (sp.walclStep/1_000_000 - 1.0/1000)
	if math.Abs(d.Liquidity.Delta-wantDelta) > 1e-9 {
		t.Errorf("delta = %v, want %v", d.Liquidity.Delta, wantDelta)
	}
	if d.Stale {
		t.Error("fresh dashboard reported stale")
	}
}

func TestDashboardHoldOnNormalSpread(t *testing.T) {
	sp := defaultSpec(40) // spread -0.09, VIX 15
	uc := newTestDashboard(t, sp)

	d, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Health.Status != models.StatusNormal {
		t.Errorf("status = %v, want normal", d.Health.Status)
	}
	if d.Recommendation.Action != models.ActionHold {
		t.Errorf("action = %v, want hold", d.Recommendation.Action)
	}
	for i, c := range d.Charts.SpreadColors {
		if c != "green" {
			t.Fatalf("bar %d colored %q, want green", i, c)
		}
	}
}

func TestDashboardBuyTheDip(t *testing.T) {
	sp := defaultSpec(40)
	sp.sofr, sp.iorb = 5.42, 5.40 // spread 0.02: warning tier
	sp.vix = 27
	uc := newTestDashboard(t, sp)

	d, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Health.Status != models.StatusWarning {
		t.Errorf("status = %v, want warning", d.Health.Status)
	}
	if d.Recommendation.Action != models.ActionBuyDip {
		t.Errorf("action = %v, want buy_the_dip", d.Recommendation.Action)
	}
	if !d.Recommendation.Upbeat || d.Recommendation.Urgent {
		t.Errorf("unexpected tone flags: %+v", d.Recommendation)
	}
}

func TestDashboardLiquidateOverridesFear(t *testing.T) {
	sp := defaultSpec(40)
	sp.sofr, sp.iorb = 5.46, 5.40 // spread 0.06: critical tier
	sp.vix = 30                   // fear alone would argue for buying
	uc := newTestDashboard(t, sp)

	d, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Health.Status != models.StatusCritical {
		t.Errorf("status = %v, want critical", d.Health.Status)
	}
	if d.Recommendation.Action != models.ActionLiquidate {
		t.Errorf("action = %v, want liquidate", d.Recommendation.Action)
	}
	if !d.Recommendation.Urgent {
		t.Error("liquidate should carry the urgent flag")
	}
}

func TestDashboardInsufficientRows(t *testing.T) {
	uc := newTestDashboard(t, defaultSpec(4))

	_, err := uc.Get(context.Background())
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestDashboardChartsAligned(t *testing.T) {
	uc := newTestDashboard(t, defaultSpec(40))

	d, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	c := d.Charts
	n := len(c.Dates)
	if n != d.Rows {
		t.Fatalf("chart length %d, rows %d", n, d.Rows)
	}
	for name, l := range map[string]int{
		"NetLiquidity": len(c.NetLiquidity),
		"SP500":        len(c.SP500),
		"RateSpread":   len(c.RateSpread),
		"SpreadColors": len(c.SpreadColors),
		"VIX":          len(c.VIX),
		"MOVE":         len(c.MOVE),
	} {
		if l != n {
			t.Errorf("%s length %d, want %d", name, l, n)
		}
	}
	if c.SpreadThreshold != 0.05 {
		t.Errorf("spread threshold = %v, want 0.05", c.SpreadThreshold)
	}
	if c.FearReference != 20 {
		t.Errorf("fear reference = %v, want 20", c.FearReference)
	}
}

func TestDashboardHistoryWindow(t *testing.T) {
	uc := newTestDashboard(t, defaultSpec(40))

	c, err := uc.History(context.Background(), 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(c.Dates) != 11 {
		t.Errorf("history rows = %d, want 11 (cutoff day inclusive)", len(c.Dates))
	}
}

func TestDashboardStatus(t *testing.T) {
	uc := newTestDashboard(t, defaultSpec(40))

	if st := uc.Status(); st.HasSnapshot {
		t.Fatal("status before any fetch should report no snapshot")
	}
	if _, err := uc.Get(context.Background()); err != nil {
		t.Fatalf("Get: %v", err)
	}
	st := uc.Status()
	if !st.HasSnapshot || st.Rows != 40 || st.Stale {
		t.Errorf("unexpected status: %+v", st)
	}
}
