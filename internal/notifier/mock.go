package notifier

import (
	"sync"

	"github.com/lanetalk/tenpin/internal/importer"
	"github.com/lanetalk/tenpin/internal/pairing"
	"github.com/lanetalk/tenpin/internal/standings"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendStandingsCalls []struct {
		Tournament string
		Standings  standings.Standings
	}
	SendPairingConflictCalls []struct {
		Pid      string
		Conflict *pairing.Conflict
	}
	SendImportSummaryCalls []*importer.Result

	// Overridable error results
	SendStandingsErr error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = nil
	m.SendPairingConflictCalls = nil
	m.SendImportSummaryCalls = nil
}

func (m *Mock) SendStandings(tournament string, s standings.Standings, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, struct {
		Tournament string
		Standings  standings.Standings
	}{tournament, s})
	return m.SendStandingsErr
}

func (m *Mock) SendPairingConflict(pid string, conflict *pairing.Conflict, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPairingConflictCalls = append(m.SendPairingConflictCalls, struct {
		Pid      string
		Conflict *pairing.Conflict
	}{pid, conflict})
	return nil
}

func (m *Mock) SendImportSummary(result *importer.Result, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendImportSummaryCalls = append(m.SendImportSummaryCalls, result)
	return nil
}
