package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	DebounceRestarts   prometheus.Counter
	AttemptsStarted    prometheus.Counter
	TriggersDropped    prometheus.Counter
	StaleResults       prometheus.Counter
	PredictionFailures prometheus.Counter
	StatsUnavailable   prometheus.Counter
	PredictionDuration prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	OutcomesPublished  prometheus.Counter
	SelectionsReceived prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
