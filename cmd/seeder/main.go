package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/matchday/internal/archive"
	"github.com/mauv0809/matchday/internal/database"
	"github.com/mauv0809/matchday/internal/tournament"
)

var (
	teamNames = []string{"🟦", "🟩", "🟧"}
	players   = []string{
		"Seeder Player A", "Seeder Player B", "Seeder Player C",
		"Seeder Player D", "Seeder Player E", "Seeder Player F",
		"Seeder Player G", "Seeder Player H", "Seeder Player I",
	}
)

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	primaryURL = os.Getenv("TURSO_PRIMARY_URL")
	authToken = os.Getenv("TURSO_AUTH_TOKEN")
	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok && primaryURL == "" {
		log.Fatal("Error: either DB_NAME or TURSO_PRIMARY_URL must be set.")
	}
	return dbName, primaryURL, authToken
}

func main() {
	chatID := flag.String("chat", "tg:seed", "Namespaced chat id the tournaments belong to")
	numTournaments := flag.Int("tournaments", 50, "Number of tournaments to insert")
	matchesPer := flag.Int("matches", 9, "Matches per tournament")
	flag.Parse()

	log.Info("Starting archive seeder...")
	dbName, primaryURL, authToken := loadConfig()
	db, teardown, err := database.InitDB(dbName, primaryURL, authToken)
	if err != nil {
		log.Fatalf("Failed to open archive database: %s", err)
	}
	defer teardown()

	store := archive.New(db)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	startTime := time.Now()

	for i := 0; i < *numTournaments; i++ {
		date := time.Now().AddDate(0, 0, -7*(*numTournaments-i)).Format("2006-01-02")
		summary := fakeTournament(rng, *chatID, date, *matchesPer)
		id, err := store.SaveTournament(ctx, summary)
		if err != nil {
			log.Fatalf("Failed to insert tournament %d: %s", i+1, err)
		}
		log.Info("Inserted tournament", "id", id, "date", date, "completed", i+1, "total", *numTournaments)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy tournaments.", "duration", duration)
}

// fakeTournament deals the players into three teams and plays random matches
// between them.
func fakeTournament(rng *rand.Rand, chatID, date string, numMatches int) tournament.Summary {
	shuffled := append([]string(nil), players...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	squads := make(map[string][]string, len(teamNames))
	rosters := make([]tournament.Roster, 0, len(teamNames))
	for i, team := range teamNames {
		squad := shuffled[i*3 : i*3+3]
		squads[team] = squad
		rosters = append(rosters, tournament.Roster{Team: team, Players: squad})
	}

	st := tournament.NewChatState()
	st.SetRosters(rosters)
	for i := 0; i < numMatches; i++ {
		home := teamNames[i%len(teamNames)]
		away := teamNames[(i+1)%len(teamNames)]
		s1, s2 := rng.Intn(4), rng.Intn(4)
		line := fmt.Sprintf("%s (%s) %d-%d %s (%s)",
			home, fakeContributions(rng, squads[home], s1), s1, s2,
			away, fakeContributions(rng, squads[away], s2))
		m, err := tournament.ParseMatch(line)
		if err != nil {
			log.Fatalf("Generated an unparsable result %q: %s", line, err)
		}
		if err := st.AddMatch(m); err != nil {
			log.Fatalf("Failed to add match: %s", err)
		}
	}
	return st.Summary(chatID, date)
}

func fakeContributions(rng *rand.Rand, squad []string, goals int) string {
	out := ""
	for g := 0; g < goals; g++ {
		if g > 0 {
			out += ", "
		}
		scorer := rng.Intn(len(squad))
		out += squad[scorer]
		if assist := rng.Intn(len(squad)); assist != scorer && rng.Intn(2) == 0 {
			out += "+" + squad[assist]
		}
	}
	return out
}
