package importer

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lanetalk/tenpin/internal/handicap"
	"github.com/lanetalk/tenpin/internal/standings"
)

// New creates a new importer instance.
func New(db *sql.DB) Importer {
	return &importer{db: db}
}

func (i *importer) Apply(updates []ScoreUpdate) (*Result, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	result := &Result{
		BatchID:   uuid.NewString(),
		Matched:   []string{},
		Unmatched: []string{},
		Warnings:  []string{},
		Errors:    []string{},
		Updates:   []ScoreUpdate{},
	}

	tx, err := i.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	now := time.Now().Unix()
	for _, u := range updates {
		if !validEventType(u.EventType) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: unknown event type %q", u.Pid, u.EventType))
			continue
		}
		if bad, game := invalidGame(u); bad {
			result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: pin count %d out of range", u.Pid, u.EventType, game))
			continue
		}

		var hdcp *int
		err := tx.QueryRow(`SELECT handicap FROM bowlers WHERE pid = ?`, u.Pid).Scan(&hdcp)
		if err == sql.ErrNoRows {
			result.Unmatched = append(result.Unmatched, u.Pid)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: not on the roster, line skipped", u.Pid))
			continue
		}
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to look up bowler %s: %w", u.Pid, err)
		}

		if u.BookAverage != nil {
			hdcp = handicap.Calculate(u.BookAverage)
			_, err := tx.Exec(`UPDATE bowlers SET book_average = ?, handicap = ? WHERE pid = ?`,
				u.BookAverage, hdcp, u.Pid)
			if err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to re-rate bowler %s: %w", u.Pid, err)
			}
		}

		_, err = tx.Exec(`
			INSERT INTO scores (pid, event_type, game1, game2, game3, handicap, lane, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(pid, event_type) DO UPDATE SET
				game1 = excluded.game1,
				game2 = excluded.game2,
				game3 = excluded.game3,
				handicap = excluded.handicap,
				lane = excluded.lane,
				updated_at = excluded.updated_at
		`, u.Pid, string(u.EventType), u.Game1, u.Game2, u.Game3, hdcp, u.Lane, now)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to apply score for %s/%s: %w", u.Pid, u.EventType, err)
		}

		_, err = tx.Exec(`INSERT INTO audit_log (id, pid, action, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), u.Pid, "score_imported",
			fmt.Sprintf("batch=%s event=%s", result.BatchID, u.EventType), now)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to write audit entry for %s: %w", u.Pid, err)
		}

		result.Matched = append(result.Matched, u.Pid)
		result.Updates = append(result.Updates, u)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import batch: %w", err)
	}

	log.Info("Applied import batch",
		"batch_id", result.BatchID,
		"matched", len(result.Matched),
		"unmatched", len(result.Unmatched),
		"errors", len(result.Errors))
	return result, nil
}

func validEventType(e standings.EventType) bool {
	switch e {
	case standings.EventTeam, standings.EventDoubles, standings.EventSingles:
		return true
	}
	return false
}

// invalidGame reports the first game slot outside a legal 0..300 pin count.
func invalidGame(u ScoreUpdate) (bool, int) {
	for _, g := range []*int{u.Game1, u.Game2, u.Game3} {
		if g != nil && (*g < 0 || *g > 300) {
			return true, *g
		}
	}
	return false, 0
}
