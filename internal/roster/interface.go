package roster

import "github.com/lanetalk/tenpin/internal/standings"

// RosterStore defines the interface for interacting with tournament data.
type RosterStore interface {
	UpsertTeams(teams []TeamInfo) error
	UpsertBowlers(bowlers []BowlerInfo) error
	UpsertScore(pid string, event standings.EventType, game1, game2, game3, lane *int) error
	IsKnownBowler(pid string) bool
	GetAllTeams() ([]TeamInfo, error)
	GetBowler(pid string) (*BowlerInfo, error)

	// Row loaders feeding the standings builders.
	TeamScoreRows() ([]standings.ScoreRow, error)
	DoublesScoreRows() ([]standings.ScoreRow, error)
	SinglesScoreRows() ([]standings.ScoreRow, error)
	AllScoreRows() (standings.ScoreRows, error)

	// FormatParticipant assembles a participant's full view in at most two
	// round trips: one joined identity/team/pairing/partner lookup and one
	// score-rows lookup.
	FormatParticipant(pid string) (*ParticipantView, error)

	Clear()
}
