// Package metrics exposes Prometheus metrics for hosted game sessions.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomz197/invasion/internal/loop"
)

// Collector bundles the session and gameplay metrics and provides helpers to
// wire them into the session registry, game hooks and an HTTP handler.
type Collector struct {
	gatherer prometheus.Gatherer

	ActiveSessions    prometheus.Gauge
	GamesStarted      prometheus.Counter
	FormationsCleared prometheus.Counter
	ShipsLost         prometheus.Counter
	GamesOver         prometheus.Counter
	FinalScores       prometheus.Histogram
	TickDurations     prometheus.Histogram
}

// NewCollector registers the metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	sessions, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "invasion_active_sessions",
		Help: "Current number of connected game sessions.",
	}), "invasion_active_sessions")
	if err != nil {
		return nil, err
	}
	started, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invasion_games_started_total",
		Help: "Total number of games started.",
	}), "invasion_games_started_total")
	if err != nil {
		return nil, err
	}
	cleared, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invasion_formations_cleared_total",
		Help: "Total number of alien formations destroyed.",
	}), "invasion_formations_cleared_total")
	if err != nil {
		return nil, err
	}
	lost, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invasion_ships_lost_total",
		Help: "Total number of ships lost to aliens.",
	}), "invasion_ships_lost_total")
	if err != nil {
		return nil, err
	}
	over, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invasion_games_over_total",
		Help: "Total number of games that ended with no ships left.",
	}), "invasion_games_over_total")
	if err != nil {
		return nil, err
	}
	scores, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "invasion_final_score",
		Help:    "Score at the end of each game.",
		Buckets: prometheus.ExponentialBuckets(50, 4, 8),
	}), "invasion_final_score")
	if err != nil {
		return nil, err
	}
	ticks, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "invasion_tick_duration_seconds",
		Help:    "Time spent on one tick (input, update and draw) in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.0167, 0.025, 0.05, 0.1},
	}), "invasion_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		ActiveSessions:    sessions,
		GamesStarted:      started,
		FormationsCleared: cleared,
		ShipsLost:         lost,
		GamesOver:         over,
		FinalScores:       scores,
		TickDurations:     ticks,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SessionOpened satisfies server.Observer.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.ActiveSessions.Inc()
}

// SessionClosed satisfies server.Observer.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.ActiveSessions.Dec()
}

// ObserveTick records the duration of one tick.
func (c *Collector) ObserveTick(d time.Duration) {
	if c == nil {
		return
	}
	c.TickDurations.Observe(d.Seconds())
}

// Hooks returns game hooks that count lifecycle events. Each hook calls the
// matching field of next afterwards, so callers can chain their own handling
// (e.g. logging).
func (c *Collector) Hooks(next loop.Hooks) loop.Hooks {
	if c == nil {
		return next
	}
	return loop.Hooks{
		GameStarted: func() {
			c.GamesStarted.Inc()
			if next.GameStarted != nil {
				next.GameStarted()
			}
		},
		FormationCleared: func(level int) {
			c.FormationsCleared.Inc()
			if next.FormationCleared != nil {
				next.FormationCleared(level)
			}
		},
		ShipHit: func(livesLeft int) {
			c.ShipsLost.Inc()
			if next.ShipHit != nil {
				next.ShipHit(livesLeft)
			}
		},
		GameOver: func(score int) {
			c.GamesOver.Inc()
			c.FinalScores.Observe(float64(score))
			if next.GameOver != nil {
				next.GameOver(score)
			}
		},
	}
}

// register adds a collector to reg, returning the already registered one of
// the same type if present.
func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
