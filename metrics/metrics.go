package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/reusee/taideck/renders"
)

// Metrics is the engine's instrument set, registered on its own registry
// so embedding hosts and tests never fight over the global one.
type Metrics struct {
	Registry *prometheus.Registry

	Compiles       *prometheus.CounterVec
	Renders        *prometheus.CounterVec
	RenderSeconds  *prometheus.HistogramVec
	StaleFallbacks *prometheus.CounterVec
	GuardTrips     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Compiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taideck_compiles_total",
				Help: "Component compile attempts by result",
			},
			[]string{"result"},
		),
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taideck_renders_total",
				Help: "Render cycles by result",
			},
			[]string{"result"},
		),
		RenderSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "taideck_render_duration_seconds",
				Help: "Wall time of render cycles",
			},
			[]string{"component_id"},
		),
		StaleFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taideck_stale_fallbacks_total",
				Help: "Renders served from the last good unit",
			},
			[]string{"component_id"},
		),
		GuardTrips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taideck_guard_trips_total",
				Help: "Render-rate guard trips",
			},
			[]string{"component_id"},
		),
	}
	m.Registry.MustRegister(
		m.Compiles,
		m.Renders,
		m.RenderSeconds,
		m.StaleFallbacks,
		m.GuardTrips,
	)
	return m
}

// Hooks returns render engine hooks feeding these instruments.
func (m *Metrics) Hooks() renders.Hooks {
	return renders.Hooks{
		OnCompile: func(componentID string, err error) {
			m.Compiles.WithLabelValues(result(err)).Inc()
		},
		OnRender: func(componentID string, elapsed time.Duration, err error) {
			m.Renders.WithLabelValues(result(err)).Inc()
			m.RenderSeconds.WithLabelValues(componentID).Observe(elapsed.Seconds())
		},
		OnStaleFallback: func(componentID string) {
			m.StaleFallbacks.WithLabelValues(componentID).Inc()
		},
		OnGuardTrip: func(componentID string) {
			m.GuardTrips.WithLabelValues(componentID).Inc()
		},
	}
}

// ObserveCache adds a gauge tracking how many component ids hold a
// recorded compile outcome.
func (m *Metrics) ObserveCache(cache *renders.Cache) {
	m.Registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "taideck_cache_entries",
			Help: "Component ids with a recorded compile outcome",
		},
		func() float64 {
			return float64(cache.Len())
		},
	))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
