package roster

import "github.com/lanetalk/tenpin/internal/standings"

// MockStore is a hand-rolled RosterStore test double. Unset funcs fall back
// to zero-value returns.
type MockStore struct {
	UpsertTeamsFunc       func(teams []TeamInfo) error
	UpsertBowlersFunc     func(bowlers []BowlerInfo) error
	UpsertScoreFunc       func(pid string, event standings.EventType, game1, game2, game3, lane *int) error
	IsKnownBowlerFunc     func(pid string) bool
	GetAllTeamsFunc       func() ([]TeamInfo, error)
	GetBowlerFunc         func(pid string) (*BowlerInfo, error)
	TeamScoreRowsFunc     func() ([]standings.ScoreRow, error)
	DoublesScoreRowsFunc  func() ([]standings.ScoreRow, error)
	SinglesScoreRowsFunc  func() ([]standings.ScoreRow, error)
	AllScoreRowsFunc      func() (standings.ScoreRows, error)
	FormatParticipantFunc func(pid string) (*ParticipantView, error)
	ClearFunc             func()

	ClearCalls int
}

func (m *MockStore) UpsertTeams(teams []TeamInfo) error {
	if m.UpsertTeamsFunc != nil {
		return m.UpsertTeamsFunc(teams)
	}
	return nil
}

func (m *MockStore) UpsertBowlers(bowlers []BowlerInfo) error {
	if m.UpsertBowlersFunc != nil {
		return m.UpsertBowlersFunc(bowlers)
	}
	return nil
}

func (m *MockStore) UpsertScore(pid string, event standings.EventType, game1, game2, game3, lane *int) error {
	if m.UpsertScoreFunc != nil {
		return m.UpsertScoreFunc(pid, event, game1, game2, game3, lane)
	}
	return nil
}

func (m *MockStore) IsKnownBowler(pid string) bool {
	if m.IsKnownBowlerFunc != nil {
		return m.IsKnownBowlerFunc(pid)
	}
	return false
}

func (m *MockStore) GetAllTeams() ([]TeamInfo, error) {
	if m.GetAllTeamsFunc != nil {
		return m.GetAllTeamsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetBowler(pid string) (*BowlerInfo, error) {
	if m.GetBowlerFunc != nil {
		return m.GetBowlerFunc(pid)
	}
	return nil, nil
}

func (m *MockStore) TeamScoreRows() ([]standings.ScoreRow, error) {
	if m.TeamScoreRowsFunc != nil {
		return m.TeamScoreRowsFunc()
	}
	return nil, nil
}

func (m *MockStore) DoublesScoreRows() ([]standings.ScoreRow, error) {
	if m.DoublesScoreRowsFunc != nil {
		return m.DoublesScoreRowsFunc()
	}
	return nil, nil
}

func (m *MockStore) SinglesScoreRows() ([]standings.ScoreRow, error) {
	if m.SinglesScoreRowsFunc != nil {
		return m.SinglesScoreRowsFunc()
	}
	return nil, nil
}

func (m *MockStore) AllScoreRows() (standings.ScoreRows, error) {
	if m.AllScoreRowsFunc != nil {
		return m.AllScoreRowsFunc()
	}
	return standings.ScoreRows{}, nil
}

func (m *MockStore) FormatParticipant(pid string) (*ParticipantView, error) {
	if m.FormatParticipantFunc != nil {
		return m.FormatParticipantFunc(pid)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	m.ClearCalls++
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
