package standings_test

import (
	"testing"

	"github.com/lanetalk/tenpin/internal/standings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionalRow(pid string, div standings.Division, event standings.EventType, hdcp *int, best3, scratch, allEvents bool, games ...*int) standings.ScoreRow {
	row := standings.ScoreRow{
		Pid:                   pid,
		FirstName:             pid,
		EventType:             event,
		Handicap:              hdcp,
		Division:              div,
		OptionalBest3Of9:      best3,
		OptionalScratch:       scratch,
		OptionalAllEventsHdcp: allEvents,
	}
	if len(games) > 0 {
		row.Game1 = games[0]
	}
	if len(games) > 1 {
		row.Game2 = games[1]
	}
	if len(games) > 2 {
		row.Game3 = games[2]
	}
	return row
}

func TestBuildOptionalEventsStandings_Best3Of9(t *testing.T) {
	rows := []standings.ScoreRow{
		optionalRow("p1", "A", standings.EventTeam, ip(10), true, false, false, ip(180), ip(240), ip(150)),
		optionalRow("p1", "A", standings.EventDoubles, ip(10), true, false, false, ip(230), ip(120), ip(210)),
		optionalRow("p1", "A", standings.EventSingles, ip(10), true, false, false, ip(140), ip(190), ip(160)),
		optionalRow("p2", "B", standings.EventSingles, nil, true, false, false, ip(200), ip(100), nil),
	}

	boards := standings.BuildOptionalEventsStandings(rows)
	require.Len(t, boards.Best3Of9, 2)

	top := boards.Best3Of9[0]
	assert.Equal(t, "p1", top.Pid)
	assert.Equal(t, 1, top.Rank)
	// Best three of the nine games: 240, 230, 210. No handicap.
	require.NotNil(t, top.BestGame1)
	assert.Equal(t, 240, *top.BestGame1)
	assert.Equal(t, 230, *top.BestGame2)
	assert.Equal(t, 210, *top.BestGame3)
	require.NotNil(t, top.Total)
	assert.Equal(t, 680, *top.Total)

	// Fewer than three games bowled: the missing slot stays nil.
	second := boards.Best3Of9[1]
	assert.Equal(t, "p2", second.Pid)
	require.NotNil(t, second.BestGame2)
	assert.Nil(t, second.BestGame3)
	require.NotNil(t, second.Total)
	assert.Equal(t, 300, *second.Total)
}

func TestBuildOptionalEventsStandings_AllEventsHdcp(t *testing.T) {
	rows := []standings.ScoreRow{
		optionalRow("p1", "A", standings.EventTeam, ip(20), false, false, true, ip(150), ip(160), ip(170)),
		optionalRow("p1", "A", standings.EventSingles, ip(20), false, false, true, ip(180), nil, nil),
	}

	boards := standings.BuildOptionalEventsStandings(rows)
	require.Len(t, boards.AllEventsHdcp, 1)

	e := boards.AllEventsHdcp[0]
	require.NotNil(t, e.TotalScratch)
	assert.Equal(t, 660, *e.TotalScratch)
	// Two events bowled at handicap 20.
	require.NotNil(t, e.TotalHdcp)
	assert.Equal(t, 40, *e.TotalHdcp)
	require.NotNil(t, e.Total)
	assert.Equal(t, 700, *e.Total)
}

func TestBuildOptionalEventsStandings_OptionalScratchPerDivision(t *testing.T) {
	rows := []standings.ScoreRow{
		optionalRow("p1", "A", standings.EventTeam, nil, false, true, false, ip(150), ip(150), ip(150)),
		optionalRow("p2", "A", standings.EventTeam, nil, false, true, false, ip(200), ip(200), ip(200)),
		optionalRow("p3", "C", standings.EventTeam, nil, false, true, false, ip(100), nil, nil),
	}

	boards := standings.BuildOptionalEventsStandings(rows)
	require.Len(t, boards.OptionalScratch, len(standings.Divisions))

	divA := boards.OptionalScratch["A"]
	require.Len(t, divA, 2)
	assert.Equal(t, "p2", divA[0].Pid)
	assert.Equal(t, 1, divA[0].Rank)
	assert.Equal(t, "p1", divA[1].Pid)

	divC := boards.OptionalScratch["C"]
	require.Len(t, divC, 1)
	require.NotNil(t, divC[0].Total)
	assert.Equal(t, 100, *divC[0].Total)

	assert.Empty(t, boards.OptionalScratch["B"])
}

func TestOptionalEventsEmptyState(t *testing.T) {
	empty := standings.NewEmptyOptionalEventsStandings()
	assert.False(t, standings.HasAnyOptionalEvents(empty))

	// Rows without opt-ins produce the same canonical empty state.
	rows := []standings.ScoreRow{
		optionalRow("p1", "A", standings.EventTeam, nil, false, false, false, ip(150)),
	}
	built := standings.BuildOptionalEventsStandings(rows)
	assert.False(t, standings.HasAnyOptionalEvents(built))
	assert.Equal(t, empty, built)

	withEntries := standings.BuildOptionalEventsStandings([]standings.ScoreRow{
		optionalRow("p1", "A", standings.EventTeam, nil, true, false, false, ip(150)),
	})
	assert.True(t, standings.HasAnyOptionalEvents(withEntries))
}

func TestBuildOptionalEventsStandings_OptedInWithoutGamesOmitted(t *testing.T) {
	rows := []standings.ScoreRow{
		optionalRow("p1", "A", standings.EventTeam, ip(10), true, true, true),
	}
	boards := standings.BuildOptionalEventsStandings(rows)
	assert.False(t, standings.HasAnyOptionalEvents(boards))
}
