package roster

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lanetalk/tenpin/internal/standings"
)

// New creates a new roster store instance.
func New(db *sql.DB) RosterStore {
	return &store{db: db}
}

func (s *store) UpsertTeams(teams []TeamInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO teams (id, name, slug)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			slug = excluded.slug
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare team upsert: %w", err)
	}
	defer stmt.Close()

	for _, t := range teams {
		if _, err := stmt.Exec(t.ID, t.Name, t.Slug); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert team %s: %w", t.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team upsert: %w", err)
	}
	log.Debug("Upserted teams", "count", len(teams))
	return nil
}

func (s *store) UpsertBowlers(bowlers []BowlerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO bowlers (
			pid, first_name, last_name, nickname, team_id, did, division,
			book_average, handicap, team_lane, doubles_lane, singles_lane,
			optional_best_3_of_9, optional_scratch, optional_all_events_hdcp
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(pid) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			nickname = excluded.nickname,
			team_id = excluded.team_id,
			did = excluded.did,
			division = excluded.division,
			book_average = excluded.book_average,
			handicap = excluded.handicap,
			team_lane = excluded.team_lane,
			doubles_lane = excluded.doubles_lane,
			singles_lane = excluded.singles_lane,
			optional_best_3_of_9 = excluded.optional_best_3_of_9,
			optional_scratch = excluded.optional_scratch,
			optional_all_events_hdcp = excluded.optional_all_events_hdcp
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare bowler upsert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bowlers {
		_, err := stmt.Exec(
			b.Pid, b.FirstName, b.LastName, b.Nickname, b.TeamID, b.Did, string(b.Division),
			b.BookAverage, b.Handicap, b.TeamLane, b.DoublesLane, b.SinglesLane,
			b.OptionalBest3Of9, b.OptionalScratch, b.OptionalAllEventsHdcp,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert bowler %s: %w", b.Pid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bowler upsert: %w", err)
	}
	log.Debug("Upserted bowlers", "count", len(bowlers))
	return nil
}

// UpsertScore writes one (participant, event) score line. The handicap column
// snapshots the bowler's current rating so the line stays self-contained even
// if the rating is later re-imported.
func (s *store) UpsertScore(pid string, event standings.EventType, game1, game2, game3, lane *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO scores (pid, event_type, game1, game2, game3, handicap, lane, updated_at)
		VALUES (?, ?, ?, ?, ?, (SELECT handicap FROM bowlers WHERE pid = ?), ?, ?)
		ON CONFLICT(pid, event_type) DO UPDATE SET
			game1 = excluded.game1,
			game2 = excluded.game2,
			game3 = excluded.game3,
			handicap = excluded.handicap,
			lane = excluded.lane,
			updated_at = excluded.updated_at
	`, pid, string(event), game1, game2, game3, pid, lane, time.Now().Unix())
	if err != nil {
		log.Error("Failed to upsert score", "pid", pid, "event", event, "error", err)
		return fmt.Errorf("failed to upsert score for %s/%s: %w", pid, event, err)
	}
	return nil
}

func (s *store) IsKnownBowler(pid string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var one int
	err := s.db.QueryRow(`SELECT 1 FROM bowlers WHERE pid = ?`, pid).Scan(&one)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error("Failed to check bowler existence", "pid", pid, "error", err)
		}
		return false
	}
	return true
}

func (s *store) GetAllTeams() ([]TeamInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, slug FROM teams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []TeamInfo
	for rows.Next() {
		var t TeamInfo
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *store) GetBowler(pid string) (*BowlerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b BowlerInfo
	var division sql.NullString
	err := s.db.QueryRow(`
		SELECT pid, first_name, last_name, nickname, team_id, did, division,
		       book_average, handicap, team_lane, doubles_lane, singles_lane,
		       optional_best_3_of_9, optional_scratch, optional_all_events_hdcp
		FROM bowlers
		WHERE pid = ?
	`, pid).Scan(
		&b.Pid, &b.FirstName, &b.LastName, &b.Nickname, &b.TeamID, &b.Did, &division,
		&b.BookAverage, &b.Handicap, &b.TeamLane, &b.DoublesLane, &b.SinglesLane,
		&b.OptionalBest3Of9, &b.OptionalScratch, &b.OptionalAllEventsHdcp,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bowler %s not found", pid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bowler %s: %w", pid, err)
	}
	if division.Valid {
		b.Division = standings.Division(division.String)
	}
	return &b, nil
}

// Row loaders join from the bowlers table outward so every roster member of a
// unit contributes a row, bowled or not. COALESCE prefers the score line's
// handicap snapshot and falls back to the bowler's current rating.

func (s *store) TeamScoreRows() ([]standings.ScoreRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT b.pid, b.first_name, b.last_name, b.nickname,
		       s.game1, s.game2, s.game3,
		       COALESCE(s.handicap, b.handicap) AS handicap,
		       b.division, b.optional_best_3_of_9, b.optional_scratch, b.optional_all_events_hdcp,
		       t.id, t.name, t.slug
		FROM bowlers b
		JOIN teams t ON t.id = b.team_id
		LEFT JOIN scores s ON s.pid = b.pid AND s.event_type = 'team'
		ORDER BY t.id, b.pid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query team score rows: %w", err)
	}
	defer rows.Close()

	var out []standings.ScoreRow
	for rows.Next() {
		row := standings.ScoreRow{EventType: standings.EventTeam}
		var division sql.NullString
		err := rows.Scan(
			&row.Pid, &row.FirstName, &row.LastName, &row.Nickname,
			&row.Game1, &row.Game2, &row.Game3, &row.Handicap,
			&division, &row.OptionalBest3Of9, &row.OptionalScratch, &row.OptionalAllEventsHdcp,
			&row.TnmtID, &row.TeamName, &row.Slug,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team score row: %w", err)
		}
		if division.Valid {
			row.Division = standings.Division(division.String)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *store) DoublesScoreRows() ([]standings.ScoreRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT b.pid, b.first_name, b.last_name, b.nickname,
		       s.game1, s.game2, s.game3,
		       COALESCE(s.handicap, b.handicap) AS handicap,
		       b.division, b.optional_best_3_of_9, b.optional_scratch, b.optional_all_events_hdcp,
		       b.did
		FROM bowlers b
		LEFT JOIN scores s ON s.pid = b.pid AND s.event_type = 'doubles'
		WHERE b.did IS NOT NULL
		ORDER BY b.did, b.pid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query doubles score rows: %w", err)
	}
	defer rows.Close()

	var out []standings.ScoreRow
	for rows.Next() {
		row := standings.ScoreRow{EventType: standings.EventDoubles}
		var division sql.NullString
		err := rows.Scan(
			&row.Pid, &row.FirstName, &row.LastName, &row.Nickname,
			&row.Game1, &row.Game2, &row.Game3, &row.Handicap,
			&division, &row.OptionalBest3Of9, &row.OptionalScratch, &row.OptionalAllEventsHdcp,
			&row.Did,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan doubles score row: %w", err)
		}
		if division.Valid {
			row.Division = standings.Division(division.String)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *store) SinglesScoreRows() ([]standings.ScoreRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT b.pid, b.first_name, b.last_name, b.nickname,
		       s.game1, s.game2, s.game3,
		       COALESCE(s.handicap, b.handicap) AS handicap,
		       b.division, b.optional_best_3_of_9, b.optional_scratch, b.optional_all_events_hdcp
		FROM bowlers b
		LEFT JOIN scores s ON s.pid = b.pid AND s.event_type = 'singles'
		ORDER BY b.pid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query singles score rows: %w", err)
	}
	defer rows.Close()

	var out []standings.ScoreRow
	for rows.Next() {
		row := standings.ScoreRow{EventType: standings.EventSingles}
		var division sql.NullString
		err := rows.Scan(
			&row.Pid, &row.FirstName, &row.LastName, &row.Nickname,
			&row.Game1, &row.Game2, &row.Game3, &row.Handicap,
			&division, &row.OptionalBest3Of9, &row.OptionalScratch, &row.OptionalAllEventsHdcp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan singles score row: %w", err)
		}
		if division.Valid {
			row.Division = standings.Division(division.String)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *store) AllScoreRows() (standings.ScoreRows, error) {
	team, err := s.TeamScoreRows()
	if err != nil {
		return standings.ScoreRows{}, err
	}
	doubles, err := s.DoublesScoreRows()
	if err != nil {
		return standings.ScoreRows{}, err
	}
	singles, err := s.SinglesScoreRows()
	if err != nil {
		return standings.ScoreRows{}, err
	}
	return standings.ScoreRows{Team: team, Doubles: doubles, Singles: singles}, nil
}

// FormatParticipant builds the participant view in two round trips: one joined
// lookup resolving identity, team and doubles partner, and one scores query.
//
// Partner resolution: a pairing row under the bowler's current did is
// authoritative, including a row whose partner reference was explicitly
// cleared. Only when no such row exists does the view fall back to the other
// roster bowler sharing the did.
func (s *store) FormatParticipant(pid string) (*ParticipantView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := &ParticipantView{Scores: []EventScore{}}
	var (
		teamID     sql.NullInt64
		teamName   sql.NullString
		teamSlug   sql.NullString
		hasPairing bool
		partnerPid sql.NullString
		prFirst    sql.NullString
		prLast     sql.NullString
		prNick     sql.NullString
		fbPid      sql.NullString
		fbFirst    sql.NullString
		fbLast     sql.NullString
		fbNick     sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT b.pid, b.first_name, b.last_name, b.nickname, b.did,
		       b.book_average, b.handicap,
		       t.id, t.name, t.slug,
		       dp.pid IS NOT NULL, dp.partner_pid,
		       pr.first_name, pr.last_name, pr.nickname,
		       fb.pid, fb.first_name, fb.last_name, fb.nickname
		FROM bowlers b
		LEFT JOIN teams t ON t.id = b.team_id
		LEFT JOIN doubles_pairs dp ON dp.pid = b.pid AND dp.did = b.did
		LEFT JOIN bowlers pr ON pr.pid = dp.partner_pid
		LEFT JOIN bowlers fb ON fb.did = b.did AND fb.pid != b.pid
		WHERE b.pid = ?
		LIMIT 1
	`, pid).Scan(
		&v.Pid, &v.FirstName, &v.LastName, &v.Nickname, &v.Did,
		&v.BookAverage, &v.Handicap,
		&teamID, &teamName, &teamSlug,
		&hasPairing, &partnerPid,
		&prFirst, &prLast, &prNick,
		&fbPid, &fbFirst, &fbLast, &fbNick,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bowler %s not found", pid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load participant %s: %w", pid, err)
	}

	if teamID.Valid {
		v.Team = &TeamInfo{ID: int(teamID.Int64), Name: teamName.String, Slug: teamSlug.String}
	}

	switch {
	case hasPairing && partnerPid.Valid:
		v.Partner = &PartnerInfo{
			Pid:  partnerPid.String,
			Name: standings.DisplayName(prFirst.String, prLast.String, prNick.String),
		}
	case hasPairing:
		// Explicitly cleared pairing. No fallback.
	case fbPid.Valid:
		v.Partner = &PartnerInfo{
			Pid:  fbPid.String,
			Name: standings.DisplayName(fbFirst.String, fbLast.String, fbNick.String),
		}
	}

	rows, err := s.db.Query(`
		SELECT event_type, game1, game2, game3, handicap, lane
		FROM scores
		WHERE pid = ?
		ORDER BY CASE event_type WHEN 'team' THEN 0 WHEN 'doubles' THEN 1 ELSE 2 END
	`, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores for %s: %w", pid, err)
	}
	defer rows.Close()

	for rows.Next() {
		var es EventScore
		if err := rows.Scan(&es.EventType, &es.Game1, &es.Game2, &es.Game3, &es.Handicap, &es.Lane); err != nil {
			return nil, fmt.Errorf("failed to scan score for %s: %w", pid, err)
		}
		v.Scores = append(v.Scores, es)
	}
	return v, rows.Err()
}

// Clear removes all tournament data. Useful when re-seeding.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"scores", "doubles_pairs", "bowlers", "teams", "audit_log"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
	log.Info("Cleared all tournament data")
}
