package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/tomz197/invasion/internal/loop"
)

func newTestCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return c, reg
}

func TestSessionGauge(t *testing.T) {
	c, _ := newTestCollector(t)

	c.SessionOpened()
	c.SessionOpened()
	c.SessionClosed()

	if got := testutil.ToFloat64(c.ActiveSessions); got != 1 {
		t.Fatalf("invasion_active_sessions = %v, want 1", got)
	}
}

func TestHooksCountAndChain(t *testing.T) {
	c, reg := newTestCollector(t)

	var chained []string
	hooks := c.Hooks(loop.Hooks{
		GameStarted: func() { chained = append(chained, "started") },
		GameOver:    func(int) { chained = append(chained, "over") },
	})

	hooks.GameStarted()
	hooks.FormationCleared(1)
	hooks.FormationCleared(2)
	hooks.ShipHit(2)
	hooks.GameOver(450)

	if got := testutil.ToFloat64(c.GamesStarted); got != 1 {
		t.Errorf("invasion_games_started_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.FormationsCleared); got != 2 {
		t.Errorf("invasion_formations_cleared_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.ShipsLost); got != 1 {
		t.Errorf("invasion_ships_lost_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.GamesOver); got != 1 {
		t.Errorf("invasion_games_over_total = %v, want 1", got)
	}
	if got := histogramSampleCount(t, reg, "invasion_final_score"); got != 1 {
		t.Errorf("invasion_final_score sample_count = %d, want 1", got)
	}
	if len(chained) != 2 || chained[0] != "started" || chained[1] != "over" {
		t.Errorf("Expected chained hooks to run, got %v", chained)
	}
}

func TestHooksDriveGame(t *testing.T) {
	c, _ := newTestCollector(t)

	g := loop.NewGame(loop.NewSettings(1200, 800), c.Hooks(loop.Hooks{}))
	g.TryStart(g.Play.Rect.CenterX(), g.Play.Rect.CenterY())
	g.ShipHit()

	if got := testutil.ToFloat64(c.GamesStarted); got != 1 {
		t.Errorf("invasion_games_started_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.ShipsLost); got != 1 {
		t.Errorf("invasion_ships_lost_total = %v, want 1", got)
	}
}

func TestObserveTick(t *testing.T) {
	c, reg := newTestCollector(t)
	c.ObserveTick(2 * time.Millisecond)
	c.ObserveTick(3 * time.Millisecond)

	if got := histogramSampleCount(t, reg, "invasion_tick_duration_seconds"); got != 2 {
		t.Fatalf("invasion_tick_duration_seconds sample_count = %d, want 2", got)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.SessionOpened()
	c.SessionClosed()
	c.ObserveTick(time.Millisecond)

	hooks := c.Hooks(loop.Hooks{})
	if hooks.GameStarted != nil {
		t.Error("Expected nil collector to pass hooks through")
	}
}

func TestRegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}

	first.SessionOpened()
	if got := testutil.ToFloat64(second.ActiveSessions); got != 1 {
		t.Errorf("Expected shared gauge, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c, _ := newTestCollector(t)
	c.SessionOpened()
	c.ObserveTick(time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"invasion_active_sessions",
		"invasion_games_started_total",
		"invasion_formations_cleared_total",
		"invasion_ships_lost_total",
		"invasion_games_over_total",
		"invasion_final_score",
		"invasion_tick_duration_seconds",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("expected %q in /metrics output", metric)
		}
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string) uint64 {
	t.Helper()

	families, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if h := m.GetHistogram(); h != nil {
				return sampleCount(h)
			}
		}
	}
	return 0
}

func sampleCount(h *dto.Histogram) uint64 {
	return h.GetSampleCount()
}
