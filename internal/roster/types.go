package roster

import (
	"database/sql"
	"sync"

	"github.com/lanetalk/tenpin/internal/standings"
)

// store handles all database operations for teams, bowlers and scores.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// TeamInfo represents one tournament team.
type TeamInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// BowlerInfo represents a bowler in the store.
type BowlerInfo struct {
	Pid                   string             `json:"pid"`
	FirstName             string             `json:"first_name"`
	LastName              string             `json:"last_name"`
	Nickname              string             `json:"nickname"`
	TeamID                *int               `json:"team_id"`
	Did                   *int               `json:"did"`
	Division              standings.Division `json:"division"`
	BookAverage           *int               `json:"book_average"`
	Handicap              *int               `json:"handicap"`
	TeamLane              *int               `json:"team_lane"`
	DoublesLane           *int               `json:"doubles_lane"`
	SinglesLane           *int               `json:"singles_lane"`
	OptionalBest3Of9      bool               `json:"optional_best_3_of_9"`
	OptionalScratch       bool               `json:"optional_scratch"`
	OptionalAllEventsHdcp bool               `json:"optional_all_events_hdcp"`
}

// EventScore is one event's line on a participant view.
type EventScore struct {
	EventType standings.EventType `json:"event_type"`
	Game1     *int                `json:"game1"`
	Game2     *int                `json:"game2"`
	Game3     *int                `json:"game3"`
	Handicap  *int                `json:"handicap"`
	Lane      *int                `json:"lane"`
}

// PartnerInfo identifies a bowler's doubles partner.
type PartnerInfo struct {
	Pid  string `json:"pid"`
	Name string `json:"name"`
}

// ParticipantView is the full single-participant view: identity, team,
// doubles partner and per-event scores.
type ParticipantView struct {
	Pid         string       `json:"pid"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Nickname    string       `json:"nickname"`
	Team        *TeamInfo    `json:"team"`
	Did         *int         `json:"did"`
	Partner     *PartnerInfo `json:"partner"`
	BookAverage *int         `json:"book_average"`
	Handicap    *int         `json:"handicap"`
	Scores      []EventScore `json:"scores"`
}
