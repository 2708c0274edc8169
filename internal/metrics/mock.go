package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	debounceRestarts    int
	attemptsStarted     int
	triggersDropped     int
	staleResults        int
	predictionFailures  int
	statsUnavailable    int
	predictionDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	outcomesPublished   int
	selectionsReceived  int
	startupTime         float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		predictionDurations: make([]float64, 0),
	}
}

func (m *Mock) IncDebounceRestarts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debounceRestarts++
}

func (m *Mock) IncAttemptsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attemptsStarted++
}

func (m *Mock) IncTriggersDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggersDropped++
}

func (m *Mock) IncStaleResults() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staleResults++
}

func (m *Mock) IncPredictionFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictionFailures++
}

func (m *Mock) IncStatsUnavailable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsUnavailable++
}

func (m *Mock) ObservePredictionDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictionDurations = append(m.predictionDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncOutcomesPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomesPublished++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// DebounceRestarts returns the number of times IncDebounceRestarts was called.
func (m *Mock) DebounceRestarts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.debounceRestarts
}

// AttemptsStarted returns the number of times IncAttemptsStarted was called.
func (m *Mock) AttemptsStarted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attemptsStarted
}

// TriggersDropped returns the number of times IncTriggersDropped was called.
func (m *Mock) TriggersDropped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.triggersDropped
}

// StaleResults returns the number of times IncStaleResults was called.
func (m *Mock) StaleResults() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.staleResults
}

// PredictionFailures returns the number of times IncPredictionFailures was called.
func (m *Mock) PredictionFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.predictionFailures
}

// StatsUnavailable returns the number of times IncStatsUnavailable was called.
func (m *Mock) StatsUnavailable() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statsUnavailable
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// OutcomesPublished returns the number of times IncOutcomesPublished was called.
func (m *Mock) OutcomesPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomesPublished
}

func (m *Mock) IncSelectionsReceived() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectionsReceived++
}

// SelectionsReceived returns the number of times IncSelectionsReceived was called.
func (m *Mock) SelectionsReceived() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectionsReceived
}
