package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		StandingsBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tenpin_standings_builds_total",
			Help: "The total number of standings builds.",
		}),
		ImportsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tenpin_import_batches_applied_total",
			Help: "The total number of score import batches applied.",
		}),
		PairingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tenpin_pairing_conflicts_total",
			Help: "The total number of doubles pairing conflicts detected.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tenpin_standings_publish_duration_seconds",
			Help:    "The duration of individual standings publications.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tenpin_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tenpin_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tenpin_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.StandingsBuilds,
		s.ImportsApplied,
		s.PairingConflicts,
		s.PublishDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncStandingsBuilds() {
	s.StandingsBuilds.Inc()
}

func (s *Service) IncImportsApplied() {
	s.ImportsApplied.Inc()
}

func (s *Service) IncPairingConflicts() {
	s.PairingConflicts.Inc()
}

func (s *Service) ObservePublishDuration(duration float64) {
	s.PublishDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
