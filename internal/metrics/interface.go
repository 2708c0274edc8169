package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncDebounceRestarts()
	IncAttemptsStarted()
	IncTriggersDropped()
	IncStaleResults()
	IncPredictionFailures()
	IncStatsUnavailable()
	ObservePredictionDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncOutcomesPublished()
	IncSelectionsReceived()
	SetStartupTime(duration float64)
}
