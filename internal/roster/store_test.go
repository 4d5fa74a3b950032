package roster_test

import (
	"database/sql"
	"database/sql/driver"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lanetalk/tenpin/internal/database"
	"github.com/lanetalk/tenpin/internal/roster"
	"github.com/lanetalk/tenpin/internal/standings"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (roster.RosterStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return roster.New(db), db, dbTeardown
}

func ip(n int) *int { return &n }

func seedRoster(t *testing.T, store roster.RosterStore) {
	t.Helper()

	require.NoError(t, store.UpsertTeams([]roster.TeamInfo{
		{ID: 1, Name: "Pin Pals", Slug: "pin-pals"},
		{ID: 2, Name: "Split Happens", Slug: "split-happens"},
	}))
	require.NoError(t, store.UpsertBowlers([]roster.BowlerInfo{
		{Pid: "p1", FirstName: "Alice", LastName: "Andersen", TeamID: ip(1), Did: ip(10), Division: "A", BookAverage: ip(190), Handicap: ip(31)},
		{Pid: "p2", FirstName: "Bob", LastName: "Berg", Nickname: "Bobby", TeamID: ip(1), Did: ip(10), Division: "B", BookAverage: ip(180), Handicap: ip(40)},
		{Pid: "p3", FirstName: "Carol", LastName: "Clausen", TeamID: ip(2), Division: "A", Handicap: ip(22)},
	}))
}

func TestUpsertTeams_Idempotent(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedRoster(t, store)
	require.NoError(t, store.UpsertTeams([]roster.TeamInfo{
		{ID: 1, Name: "Pin Pals Renamed", Slug: "pin-pals"},
	}))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM teams`).Scan(&count))
	assert.Equal(t, 2, count)

	teams, err := store.GetAllTeams()
	require.NoError(t, err)
	assert.Equal(t, "Pin Pals Renamed", teams[0].Name)
}

func TestUpsertBowlers_RoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	seedRoster(t, store)

	b, err := store.GetBowler("p2")
	require.NoError(t, err)
	assert.Equal(t, "Bobby", b.Nickname)
	assert.Equal(t, standings.Division("B"), b.Division)
	require.NotNil(t, b.Did)
	assert.Equal(t, 10, *b.Did)
	require.NotNil(t, b.Handicap)
	assert.Equal(t, 40, *b.Handicap)

	assert.True(t, store.IsKnownBowler("p2"))
	assert.False(t, store.IsKnownBowler("unknown"))

	_, err = store.GetBowler("unknown")
	assert.Error(t, err)
}

func TestUpsertScore_SnapshotsHandicap(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedRoster(t, store)
	require.NoError(t, store.UpsertScore("p1", standings.EventTeam, ip(200), ip(210), nil, ip(7)))

	var hdcp int
	require.NoError(t, db.QueryRow(`SELECT handicap FROM scores WHERE pid = 'p1' AND event_type = 'team'`).Scan(&hdcp))
	assert.Equal(t, 31, hdcp)

	// Re-upserting replaces the line rather than duplicating it.
	require.NoError(t, store.UpsertScore("p1", standings.EventTeam, ip(200), ip(210), ip(190), ip(7)))
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM scores WHERE pid = 'p1'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestTeamScoreRows_IncludesNonBowlingMembers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	seedRoster(t, store)
	require.NoError(t, store.UpsertScore("p1", standings.EventTeam, ip(200), ip(210), ip(190), nil))

	rows, err := store.TeamScoreRows()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byPid := map[string]standings.ScoreRow{}
	for _, r := range rows {
		byPid[r.Pid] = r
	}

	// Bob never bowled but still carries the roster handicap.
	bob := byPid["p2"]
	assert.Nil(t, bob.Game1)
	require.NotNil(t, bob.Handicap)
	assert.Equal(t, 40, *bob.Handicap)
	assert.Equal(t, 1, bob.TnmtID)
	assert.Equal(t, "pin-pals", bob.Slug)

	alice := byPid["p1"]
	require.NotNil(t, alice.Game1)
	assert.Equal(t, 200, *alice.Game1)
	assert.Equal(t, standings.EventTeam, alice.EventType)
}

func TestDoublesScoreRows_RequiresDid(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	seedRoster(t, store)
	require.NoError(t, store.UpsertScore("p1", standings.EventDoubles, ip(180), ip(190), ip(200), nil))

	rows, err := store.DoublesScoreRows()
	require.NoError(t, err)

	// Carol has no doubles id and must not appear.
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, 10, r.Did)
		assert.Equal(t, standings.EventDoubles, r.EventType)
	}
}

func TestAllScoreRows_FeedsStandings(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	seedRoster(t, store)
	require.NoError(t, store.UpsertScore("p3", standings.EventSingles, ip(210), ip(220), ip(230), nil))

	rows, err := store.AllScoreRows()
	require.NoError(t, err)
	assert.Len(t, rows.Team, 3)
	assert.Len(t, rows.Doubles, 2)
	assert.Len(t, rows.Singles, 3)

	result := standings.BuildScoreStandings(rows)
	require.Len(t, result.Singles, 1)
	require.NotNil(t, result.Singles[0].TotalScratch)
	assert.Equal(t, 660, *result.Singles[0].TotalScratch)
}

func TestFormatParticipant(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedRoster(t, store)
	require.NoError(t, store.UpsertScore("p1", standings.EventTeam, ip(200), ip(210), ip(190), ip(7)))
	require.NoError(t, store.UpsertScore("p1", standings.EventSingles, ip(180), nil, nil, ip(12)))

	t.Run("fallback partner from shared doubles id", func(t *testing.T) {
		v, err := store.FormatParticipant("p1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", v.FirstName)
		require.NotNil(t, v.Team)
		assert.Equal(t, "pin-pals", v.Team.Slug)
		require.NotNil(t, v.Partner)
		assert.Equal(t, "p2", v.Partner.Pid)
		assert.Equal(t, "Bobby Berg", v.Partner.Name)
		require.Len(t, v.Scores, 2)
		assert.Equal(t, standings.EventTeam, v.Scores[0].EventType)
		assert.Equal(t, standings.EventSingles, v.Scores[1].EventType)
		assert.Nil(t, v.Scores[1].Game2)
	})

	t.Run("explicit pairing row wins", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO doubles_pairs (did, pid, partner_pid, partner_name, updated_at) VALUES (10, 'p1', 'p2', 'Bobby Berg', 1)`)
		require.NoError(t, err)
		defer db.Exec(`DELETE FROM doubles_pairs`)

		v, err := store.FormatParticipant("p1")
		require.NoError(t, err)
		require.NotNil(t, v.Partner)
		assert.Equal(t, "p2", v.Partner.Pid)
	})

	t.Run("cleared pairing row disables fallback", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO doubles_pairs (did, pid, partner_pid, partner_name, updated_at) VALUES (10, 'p1', NULL, NULL, 1)`)
		require.NoError(t, err)
		defer db.Exec(`DELETE FROM doubles_pairs`)

		v, err := store.FormatParticipant("p1")
		require.NoError(t, err)
		assert.Nil(t, v.Partner)
	})

	t.Run("no doubles id at all", func(t *testing.T) {
		v, err := store.FormatParticipant("p3")
		require.NoError(t, err)
		assert.Nil(t, v.Did)
		assert.Nil(t, v.Partner)
		assert.Empty(t, v.Scores)
	})

	t.Run("unknown participant", func(t *testing.T) {
		_, err := store.FormatParticipant("ghost")
		assert.Error(t, err)
	})
}

func TestClear(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedRoster(t, store)
	require.NoError(t, store.UpsertScore("p1", standings.EventTeam, ip(200), nil, nil, nil))

	store.Clear()

	for _, table := range []string{"teams", "bowlers", "scores"} {
		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&count))
		assert.Zero(t, count, table)
	}
}

// countingDriver wraps the libsql driver and counts every query that reaches
// the database. It implements only the base driver interfaces, so database/sql
// routes each query through Prepare and the wrapped statement below.
type countingDriver struct {
	inner   driver.Driver
	queries *int64
}

func (d *countingDriver) Open(name string) (driver.Conn, error) {
	conn, err := d.inner.Open(name)
	if err != nil {
		return nil, err
	}
	return &countingConn{Conn: conn, queries: d.queries}, nil
}

type countingConn struct {
	driver.Conn
	queries *int64
}

func (c *countingConn) Prepare(query string) (driver.Stmt, error) {
	stmt, err := c.Conn.Prepare(query)
	if err != nil {
		return nil, err
	}
	return &countingStmt{Stmt: stmt, queries: c.queries}, nil
}

type countingStmt struct {
	driver.Stmt
	queries *int64
}

func (s *countingStmt) Query(args []driver.Value) (driver.Rows, error) {
	atomic.AddInt64(s.queries, 1)
	return s.Stmt.Query(args)
}

var (
	countedQueries  int64
	registerCounter sync.Once
)

// setupCountingDB mirrors setupTestDB but opens the database through the
// counting driver so tests can assert on round trips.
func setupCountingDB(t *testing.T) (roster.RosterStore, func()) {
	t.Helper()

	registerCounter.Do(func() {
		probe, err := sql.Open("libsql", "file::memory:")
		require.NoError(t, err)
		sql.Register("libsql-counting", &countingDriver{inner: probe.Driver(), queries: &countedQueries})
		probe.Close()
	})

	db, err := sql.Open("libsql-counting", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.Up(db, "../../migrations"))

	return roster.New(db), func() { db.Close() }
}

func TestFormatParticipant_TwoRoundTrips(t *testing.T) {
	store, teardown := setupCountingDB(t)
	defer teardown()

	seedRoster(t, store)
	require.NoError(t, store.UpsertScore("p1", standings.EventTeam, ip(200), ip(210), ip(190), ip(7)))
	require.NoError(t, store.UpsertScore("p1", standings.EventSingles, ip(180), nil, nil, ip(12)))

	before := atomic.LoadInt64(&countedQueries)
	view, err := store.FormatParticipant("p1")
	require.NoError(t, err)
	require.NotNil(t, view)
	require.NotNil(t, view.Partner)

	assert.Equal(t, int64(2), atomic.LoadInt64(&countedQueries)-before)
}
