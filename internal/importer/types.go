package importer

import (
	"database/sql"
	"sync"

	"github.com/lanetalk/tenpin/internal/standings"
)

type importer struct {
	db *sql.DB
	mu sync.Mutex
}

// ScoreUpdate is one incoming score line for a participant and event. A nil
// game means the game has not been bowled yet; partial lines are applied
// as-is. BookAverage, when carried, re-rates the bowler before the score is
// written.
type ScoreUpdate struct {
	Pid         string              `json:"pid"`
	EventType   standings.EventType `json:"event_type"`
	Game1       *int                `json:"game1"`
	Game2       *int                `json:"game2"`
	Game3       *int                `json:"game3"`
	Lane        *int                `json:"lane"`
	BookAverage *int                `json:"book_average"`
}

// Result summarizes one applied batch.
type Result struct {
	BatchID   string        `json:"batch_id"`
	Matched   []string      `json:"matched"`
	Unmatched []string      `json:"unmatched"`
	Warnings  []string      `json:"warnings"`
	Errors    []string      `json:"errors"`
	Updates   []ScoreUpdate `json:"updates"`
}
