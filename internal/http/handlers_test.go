package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lanetalk/tenpin/internal/config"
	"github.com/lanetalk/tenpin/internal/database"
	"github.com/lanetalk/tenpin/internal/importer"
	"github.com/lanetalk/tenpin/internal/metrics"
	"github.com/lanetalk/tenpin/internal/notifier"
	"github.com/lanetalk/tenpin/internal/pairing"
	"github.com/lanetalk/tenpin/internal/processor"
	"github.com/lanetalk/tenpin/internal/pubsub"
	"github.com/lanetalk/tenpin/internal/roster"
	"github.com/lanetalk/tenpin/internal/standings"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(n int) *int { return &n }

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) (*Server, *notifier.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := roster.New(db)
	pairingStore := pairing.New(db)
	imp := importer.New(db)
	cfg := config.Config{TournamentName: "City Open"}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	metricsStore := metrics.New(db)
	notif := notifier.NewMock()
	ps := pubsub.NewMock("TEST")
	proc := processor.New(store, notif, metricsSvc, ps, cfg.TournamentName)

	server := NewServer(store, pairingStore, imp, metricsSvc, metricsStore, metricsHandler, cfg, notif, proc, ps)

	return server, notif, dbTeardown
}

func seedTournament(t *testing.T, server *Server) {
	t.Helper()

	require.NoError(t, server.Store.UpsertTeams([]roster.TeamInfo{
		{ID: 1, Name: "Pin Pals", Slug: "pin-pals"},
	}))
	require.NoError(t, server.Store.UpsertBowlers([]roster.BowlerInfo{
		{Pid: "p1", FirstName: "Alice", LastName: "Andersen", TeamID: ip(1), Did: ip(10), Division: "A", Handicap: ip(31)},
		{Pid: "p2", FirstName: "Bob", LastName: "Berg", TeamID: ip(1), Did: ip(10), Division: "B", Handicap: ip(40)},
		{Pid: "p3", FirstName: "Carol", LastName: "Clausen", TeamID: ip(1), Did: ip(11), Division: "A", Handicap: ip(22)},
	}))
	require.NoError(t, server.Store.UpsertScore("p1", standings.EventSingles, ip(200), ip(210), ip(190), nil))
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	assert.Equal(t, "OK!", string(body))
}

func TestStandingsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	seedTournament(t, server)

	req := httptest.NewRequest("GET", "/standings", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var st standings.Standings
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&st))
	require.Len(t, st.Singles, 1)
	require.NotNil(t, st.Singles[0].Total)
	assert.Equal(t, 693, *st.Singles[0].Total)
}

func TestScratchMastersHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	seedTournament(t, server)

	req := httptest.NewRequest("GET", "/scratch-masters", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var boards map[standings.Division][]standings.ScratchMastersEntry
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&boards))
	require.Len(t, boards, len(standings.Divisions))
	assert.NotEmpty(t, boards["A"])
}

func TestBowlerHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	seedTournament(t, server)

	t.Run("missing pid", func(t *testing.T) {
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, httptest.NewRequest("GET", "/bowler", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown pid", func(t *testing.T) {
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, httptest.NewRequest("GET", "/bowler?pid=ghost", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("known pid", func(t *testing.T) {
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, httptest.NewRequest("GET", "/bowler?pid=p1", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var view roster.ParticipantView
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
		assert.Equal(t, "Alice", view.FirstName)
		require.NotNil(t, view.Partner)
		assert.Equal(t, "p2", view.Partner.Pid)
	})
}

func TestLinkPartnersHandler(t *testing.T) {
	server, notif, teardown := setupTestServer(t)
	defer teardown()
	seedTournament(t, server)

	postJSON := func(t *testing.T, url string, payload any) *httptest.ResponseRecorder {
		t.Helper()
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, httptest.NewRequest("POST", url, bytes.NewReader(body)))
		return rr
	}

	t.Run("links reciprocal partners", func(t *testing.T) {
		rr := postJSON(t, "/pairing/link", linkRequest{OwnerPid: "p1", TargetPid: "p2"})
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("conflicting link returns 409 with descriptor", func(t *testing.T) {
		// p2 is now paired with p1, so p3 asking for p2 conflicts.
		rr := postJSON(t, "/pairing/link", linkRequest{OwnerPid: "p3", TargetPid: "p2"})
		require.Equal(t, http.StatusConflict, rr.Code)

		var conflict pairing.Conflict
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&conflict))
		assert.Equal(t, "p2", conflict.PartnerPid)
		assert.Equal(t, "p1", conflict.CurrentPartnerPid)
		require.Len(t, notif.SendPairingConflictCalls, 1)

		// One detected conflict counts once, the processor owns the counter.
		svc := server.Metrics.(*metrics.Service)
		assert.Equal(t, 1.0, testutil.ToFloat64(svc.PairingConflicts))
	})

	t.Run("override breaks the existing pairing", func(t *testing.T) {
		rr := postJSON(t, "/pairing/link?override=true", linkRequest{OwnerPid: "p3", TargetPid: "p2"})
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("rejects GET", func(t *testing.T) {
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, httptest.NewRequest("GET", "/pairing/link", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestImportHandler(t *testing.T) {
	server, notif, teardown := setupTestServer(t)
	defer teardown()
	seedTournament(t, server)

	updates := []importer.ScoreUpdate{
		{Pid: "p2", EventType: standings.EventTeam, Game1: ip(180), Game2: ip(190), Game3: ip(200)},
		{Pid: "ghost", EventType: standings.EventTeam, Game1: ip(150)},
	}
	body, err := json.Marshal(updates)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("POST", "/import", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	var result importer.Result
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.Equal(t, []string{"p2"}, result.Matched)
	assert.Equal(t, []string{"ghost"}, result.Unmatched)
	require.Len(t, notif.SendImportSummaryCalls, 1)
}

func TestPublishHandler_DryRun(t *testing.T) {
	server, notif, teardown := setupTestServer(t)
	defer teardown()
	seedTournament(t, server)

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("GET", "/publish?dry_run=true", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, notif.SendStandingsCalls, 1)
}

func TestClearStoreHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()
	seedTournament(t, server)

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest("GET", "/clear", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	teams, err := server.Store.GetAllTeams()
	require.NoError(t, err)
	assert.Empty(t, teams)
}
