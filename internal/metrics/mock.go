package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	standingsBuilds  int
	importsApplied   int
	pairingConflicts int
	publishDurations []float64
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		publishDurations: make([]float64, 0),
	}
}

func (m *Mock) IncStandingsBuilds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.standingsBuilds++
}

func (m *Mock) IncImportsApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importsApplied++
}

func (m *Mock) IncPairingConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingConflicts++
}

func (m *Mock) ObservePublishDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishDurations = append(m.publishDurations, duration)
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

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// StandingsBuilds returns the number of times IncStandingsBuilds was called.
func (m *Mock) StandingsBuilds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.standingsBuilds
}

// ImportsApplied returns the number of times IncImportsApplied was called.
func (m *Mock) ImportsApplied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importsApplied
}

// PairingConflicts returns the number of times IncPairingConflicts was called.
func (m *Mock) PairingConflicts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairingConflicts
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
