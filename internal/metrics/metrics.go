package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

// Metrics holds Prometheus metric descriptors for the game server.
type Metrics struct {
	registry *prometheus.Registry

	matchesStarted  prometheus.Counter
	matchesFinished *prometheus.CounterVec
	matchesActive   prometheus.Gauge
	connections     *prometheus.GaugeVec
	commandsTotal   *prometheus.CounterVec
}

// New creates the metrics on their own registry, together with the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		matchesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripletriad_matches_started_total",
			Help: "Total matches started since server start.",
		}),
		matchesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripletriad_matches_finished_total",
			Help: "Total matches finished since server start by end reason.",
		}, []string{"reason"}),
		matchesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripletriad_matches_active",
			Help: "Number of matches currently running.",
		}),
		connections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tripletriad_players_connected",
			Help: "Number of currently connected players by transport.",
		}, []string{"transport"}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripletriad_commands_processed_total",
			Help: "Total commands processed by verb.",
		}, []string{"verb"}),
	}

	m.registry.MustRegister(
		m.matchesStarted,
		m.matchesFinished,
		m.matchesActive,
		m.connections,
		m.commandsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (that *Metrics) MatchStarted(context.Context, *entity.Game) {
	that.matchesStarted.Inc()
	that.matchesActive.Inc()
}

func (that *Metrics) MatchFinished(_ context.Context, result entity.Result) {
	that.matchesFinished.WithLabelValues(result.Reason).Inc()
	that.matchesActive.Dec()
}

func (that *Metrics) Connected(transport string) {
	that.connections.WithLabelValues(transport).Inc()
}

func (that *Metrics) Disconnected(transport string) {
	that.connections.WithLabelValues(transport).Dec()
}

func (that *Metrics) CommandProcessed(verb string) {
	that.commandsTotal.WithLabelValues(verb).Inc()
}

// Handler returns an http.Handler serving the registry.
func (that *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(that.registry, promhttp.HandlerOpts{})
}
