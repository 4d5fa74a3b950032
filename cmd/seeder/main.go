package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/lanetalk/tenpin/internal/database"
	"github.com/lanetalk/tenpin/internal/handicap"
	"github.com/lanetalk/tenpin/internal/roster"
	"github.com/lanetalk/tenpin/internal/standings"
)

// Simplified config loading for the script
func loadConfig() (dbName, migrationsDir string) {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName = os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "tenpin.db"
	}
	migrationsDir = os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	return dbName, migrationsDir
}

var divisions = standings.Divisions

func main() {
	log.Info("Starting database seeder...")
	startTime := time.Now()
	dbName, migrationsDir := loadConfig()

	db, dbTeardown, err := database.InitDB(dbName, "", "", migrationsDir)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer dbTeardown()

	store := roster.New(db)

	teams := []roster.TeamInfo{
		{ID: 1, Name: "Pin Pals", Slug: "pin-pals"},
		{ID: 2, Name: "Split Happens", Slug: "split-happens"},
		{ID: 3, Name: "Gutter Gang", Slug: "gutter-gang"},
		{ID: 4, Name: "Turkey Hunters", Slug: "turkey-hunters"},
	}
	if err := store.UpsertTeams(teams); err != nil {
		log.Fatalf("Failed to seed teams: %s", err)
	}
	log.Info("Seeded teams", "count", len(teams))

	rng := rand.New(rand.NewSource(42))
	var bowlers []roster.BowlerInfo
	did := 0
	for ti, team := range teams {
		// Five bowlers per team, paired up for doubles with one left over.
		for m := 0; m < 5; m++ {
			if m%2 == 0 {
				did++
			}
			avg := 150 + rng.Intn(80)
			b := roster.BowlerInfo{
				Pid:         fmt.Sprintf("seed-%d-%d", team.ID, m),
				FirstName:   fmt.Sprintf("Bowler%d", m+1),
				LastName:    team.Name,
				TeamID:      &team.ID,
				Division:    divisions[ti%len(divisions)],
				BookAverage: &avg,
				Handicap:    handicap.Calculate(&avg),
			}
			if m < 4 {
				d := did
				b.Did = &d
			}
			if m == 0 {
				b.OptionalBest3Of9 = true
				b.OptionalScratch = true
				b.OptionalAllEventsHdcp = true
			}
			bowlers = append(bowlers, b)
		}
	}
	if err := store.UpsertBowlers(bowlers); err != nil {
		log.Fatalf("Failed to seed bowlers: %s", err)
	}
	log.Info("Seeded bowlers", "count", len(bowlers))

	// Leave the tournament mid-flight: everyone has bowled the team event,
	// half the field has doubles scores and a few have started singles.
	game := func() *int {
		n := 120 + rng.Intn(160)
		return &n
	}
	scores := 0
	for i, b := range bowlers {
		lane := 1 + rng.Intn(24)
		if err := store.UpsertScore(b.Pid, standings.EventTeam, game(), game(), game(), &lane); err != nil {
			log.Fatalf("Failed to seed team score for %s: %s", b.Pid, err)
		}
		scores++
		if b.Did != nil && i%2 == 0 {
			if err := store.UpsertScore(b.Pid, standings.EventDoubles, game(), game(), game(), &lane); err != nil {
				log.Fatalf("Failed to seed doubles score for %s: %s", b.Pid, err)
			}
			scores++
		}
		if i%5 == 0 {
			// A singles series still in progress.
			if err := store.UpsertScore(b.Pid, standings.EventSingles, game(), game(), nil, &lane); err != nil {
				log.Fatalf("Failed to seed singles score for %s: %s", b.Pid, err)
			}
			scores++
		}
	}

	log.Info("Seeding complete", "teams", len(teams), "bowlers", len(bowlers), "scores", scores, "took", time.Since(startTime))
}
