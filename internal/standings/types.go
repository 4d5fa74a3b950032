package standings

// EventType identifies which of the three tournament events a score row
// belongs to.
type EventType string

const (
	EventTeam    EventType = "team"
	EventDoubles EventType = "doubles"
	EventSingles EventType = "singles"
)

// Division is a scratch-masters / optional-scratch division key.
type Division string

// Divisions is the fixed board ordering shared by every divisional ranking.
// Components must never redefine their own ordering.
var Divisions = []Division{"A", "B", "C", "D", "E"}

// ScoreRow is one (participant, event) score joined with its unit identity,
// as fetched by the storage layer. Game and handicap fields are nil when the
// participant has not bowled / has no rating; partial tournaments are data,
// not errors.
type ScoreRow struct {
	Pid       string    `json:"pid"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Nickname  string    `json:"nickname"`
	EventType EventType `json:"event_type"`
	Game1     *int      `json:"game1"`
	Game2     *int      `json:"game2"`
	Game3     *int      `json:"game3"`
	Handicap  *int      `json:"handicap"`
	Division  Division  `json:"division"`

	// Unit identity. Team rows carry the team fields, doubles rows the did.
	TnmtID   int    `json:"tnmt_id"`
	TeamName string `json:"team_name"`
	Slug     string `json:"slug"`
	Did      int    `json:"did"`

	// Optional-events opt-in flags.
	OptionalBest3Of9      bool `json:"optional_best_3_of_9"`
	OptionalScratch       bool `json:"optional_scratch"`
	OptionalAllEventsHdcp bool `json:"optional_all_events_hdcp"`
}

// ScoreRows carries the pre-fetched row sets for all three events.
type ScoreRows struct {
	Team    []ScoreRow
	Doubles []ScoreRow
	Singles []ScoreRow
}

// TeamEntry is one ranked team on the team standings board.
type TeamEntry struct {
	Rank         int    `json:"rank"`
	TnmtID       int    `json:"tnmt_id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Game1        *int   `json:"game1"`
	Game2        *int   `json:"game2"`
	Game3        *int   `json:"game3"`
	TotalScratch *int   `json:"total_scratch"`
	Hdcp         *int   `json:"hdcp"`
	Total        *int   `json:"total"`
}

// MemberEntry is one partner's own line within a doubles entry. Member totals
// follow the same completeness rules as an individual, independent of the
// other partner.
type MemberEntry struct {
	Pid          string `json:"pid"`
	Name         string `json:"name"`
	Game1        *int   `json:"game1"`
	Game2        *int   `json:"game2"`
	Game3        *int   `json:"game3"`
	TotalScratch *int   `json:"total_scratch"`
	Hdcp         *int   `json:"hdcp"`
	Total        *int   `json:"total"`
}

// DoublesEntry is one ranked pair on the doubles standings board.
type DoublesEntry struct {
	Rank         int           `json:"rank"`
	Did          int           `json:"did"`
	PairName     string        `json:"pair_name"`
	Game1        *int          `json:"game1"`
	Game2        *int          `json:"game2"`
	Game3        *int          `json:"game3"`
	TotalScratch *int          `json:"total_scratch"`
	Hdcp         *int          `json:"hdcp"`
	Total        *int          `json:"total"`
	Members      []MemberEntry `json:"members"`
}

// SinglesEntry is one ranked bowler on the singles standings board.
type SinglesEntry struct {
	Rank         int      `json:"rank"`
	Pid          string   `json:"pid"`
	Name         string   `json:"name"`
	Division     Division `json:"division"`
	Game1        *int     `json:"game1"`
	Game2        *int     `json:"game2"`
	Game3        *int     `json:"game3"`
	TotalScratch *int     `json:"total_scratch"`
	Hdcp         *int     `json:"hdcp"`
	Total        *int     `json:"total"`
}

// Standings bundles the three event boards.
type Standings struct {
	Team    []TeamEntry    `json:"team"`
	Doubles []DoublesEntry `json:"doubles"`
	Singles []SinglesEntry `json:"singles"`
}
