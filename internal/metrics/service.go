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
		DebounceRestarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_debounce_restarts_total",
			Help: "The total number of times a pending debounce timer was restarted by a newer selection.",
		}),
		AttemptsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_attempts_started_total",
			Help: "The total number of orchestration attempts that reached IN_FLIGHT.",
		}),
		TriggersDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_triggers_dropped_total",
			Help: "The total number of debounce triggers dropped because an attempt was already in flight.",
		}),
		StaleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_stale_results_total",
			Help: "The total number of completed responses discarded because the selection had changed.",
		}),
		PredictionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_prediction_failures_total",
			Help: "The total number of attempts that ended in FAILED.",
		}),
		StatsUnavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_stats_unavailable_total",
			Help: "The total number of team stats calls that failed and were rendered as unavailable.",
		}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pitchside_prediction_duration_seconds",
			Help:    "The duration of match prediction calls.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		OutcomesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_outcomes_published_total",
			Help: "The total number of attempt outcomes published to Pub/Sub.",
		}),
		SelectionsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_selections_received_total",
			Help: "The total number of selections received over HTTP.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pitchside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.DebounceRestarts,
		s.AttemptsStarted,
		s.TriggersDropped,
		s.StaleResults,
		s.PredictionFailures,
		s.StatsUnavailable,
		s.PredictionDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.OutcomesPublished,
		s.SelectionsReceived,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncDebounceRestarts() {
	s.DebounceRestarts.Inc()
}

func (s *Service) IncAttemptsStarted() {
	s.AttemptsStarted.Inc()
}

func (s *Service) IncTriggersDropped() {
	s.TriggersDropped.Inc()
}

func (s *Service) IncStaleResults() {
	s.StaleResults.Inc()
}

func (s *Service) IncPredictionFailures() {
	s.PredictionFailures.Inc()
}

func (s *Service) IncStatsUnavailable() {
	s.StatsUnavailable.Inc()
}

func (s *Service) ObservePredictionDuration(duration float64) {
	s.PredictionDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncOutcomesPublished() {
	s.OutcomesPublished.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}

func (s *Service) IncSelectionsReceived() {
	s.SelectionsReceived.Inc()
}
