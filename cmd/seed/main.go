package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"golang.org/x/crypto/bcrypt"

	clubdb "club-events/internal/clubs/db"
	"club-events/internal/config"
	"club-events/internal/database/migrations"
	"club-events/internal/events"
	eventdb "club-events/internal/events/db"
	"club-events/internal/logger"
	"club-events/internal/models"
)

type seedClub struct {
	Name     string
	Username string
	Password string
}

// The fixed club roster. Passwords are hashed before they touch the database.
var seedClubs = []seedClub{
	{"CyberSync", "cybersync", "Cybr!8mQ2#TzL"},
	{"Elecsol", "elecsol", "El3c$9nVpQ7!"},
	{"MACHINES", "machines", "Mach!4Rz8Kp#1"},
	{"Civista", "civista", "Civ!7Qx2Lm$9"},
	{"Student Developers Club", "studentdevelopersclub", "SDC!5tY9#kN2"},
	{"Gaming", "gaming", "G@me7Zp3!Qx"},
	{"Literature and Books", "literatureandbooks", "LitB!6mR8#uV"},
	{"Rosnes", "rosnes", "Ros!9qT2@wP5"},
	{"Eco-Star", "ecostar", "Eco*4Nq7!sX"},
	{"Capture Cliq", "capturecliq", "CapQ!3mZ9#fL"},
	{"Sports Club", "sportsclub", "Sport!8vR2#dM"},
	{"Nrutya Club", "nrutyaclub", "Nru!6kP9@tS"},
	{"Raaga Club", "raagaclub", "Raa!5xQ7#pV"},
	{"Fine Arts Club", "fineartsclub", "Fine!9wL3#tJ"},
	{"OTAKU CLUB", "otakuclub", "Otaku!7rN2#vB"},
	{"V-Chef", "vchef", "VChef!6uQ8#zK"},
	{"ABHINAYA CLUB", "abhinayaclub", "Abhi!4tX9#pD"},
	{"Jouneyzia", "jouneyzia", "Joun!8sR3#qF"},
	{"Science and Spirituality", "scienceandspirituality", "SciS!5mP7#vT"},
	{"Vardhaman Podcast", "vardhamanpodcast", "VPod!7qL2#kZ"},
	{"Connect Club", "connectclub", "Conn!9tR4#yM"},
	{"Team MUN", "teammun", "MUN!6pX8#sN"},
}

type seedEvent struct {
	Title        string `json:"title"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Venue        string `json:"venue"`
	Category     string `json:"category"`
	Organizer    string `json:"organizer"`
	Registration string `json:"registration"`
	Description  string `json:"description"`
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}
	cfg := config.Load()

	if cfg.Database.DSN == "" {
		log.Fatal("CONFIG", "POSTGRES_DSN not set")
	}
	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
		MigrationsDir: cfg.Migrations.Dir,
		AutoMigrate:   true,
	})
	if err := runner.MigrateUp(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
	}

	ctx := context.Background()
	clubDB := &clubdb.DB{Bun: bunDB}
	eventDB := &eventdb.DB{Bun: bunDB}

	if err := seedClubRoster(ctx, clubDB, log); err != nil {
		log.Fatal("SEED", fmt.Sprintf("Club seeding failed: %v", err))
	}

	eventsPath := os.Getenv("SEED_EVENTS_PATH")
	if eventsPath == "" {
		eventsPath = "data/events.json"
	}
	if err := seedEvents(ctx, bunDB, clubDB, eventDB, eventsPath, log); err != nil {
		log.Fatal("SEED", fmt.Sprintf("Event seeding failed: %v", err))
	}

	log.Info("SEED", "Seed complete")
}

// seedClubRoster provisions the roster once: it is a no-op when clubs exist.
func seedClubRoster(ctx context.Context, clubDB *clubdb.DB, log *logger.Logger) error {
	count, err := clubDB.CountClubs(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("SEED", fmt.Sprintf("Clubs already seeded (%d rows), skipping", count))
		return nil
	}

	for _, c := range seedClubs {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", c.Username, err)
		}
		club := models.Club{
			ID:           uuid.NewString(),
			Name:         c.Name,
			Username:     c.Username,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		}
		if err := clubDB.CreateClub(ctx, club); err != nil {
			return fmt.Errorf("failed to insert club %s: %w", c.Username, err)
		}
	}
	log.Info("SEED", fmt.Sprintf("Seeded %d clubs", len(seedClubs)))
	return nil
}

// seedEvents imports the bundled events file, matching each organizer name to
// its club and falling back to the first club when no match exists.
func seedEvents(ctx context.Context, bunDB *bun.DB, clubDB *clubdb.DB, eventDB *eventdb.DB, path string, log *logger.Logger) error {
	count, err := eventDB.CountEvents(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("SEED", fmt.Sprintf("Events already seeded (%d rows), skipping", count))
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("SEED", fmt.Sprintf("No events file at %s, skipping event import", path))
			return nil
		}
		return err
	}

	var seeds []seedEvent
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var fallback models.Club
	if err := bunDB.NewSelect().Model(&fallback).OrderExpr("id ASC").Limit(1).Scan(ctx); err != nil {
		return fmt.Errorf("no clubs available to own seeded events: %w", err)
	}

	for _, se := range seeds {
		club := &fallback
		if se.Organizer != "" {
			var owner models.Club
			err := bunDB.NewSelect().Model(&owner).Where("name = ?", se.Organizer).Limit(1).Scan(ctx)
			if err == nil {
				club = &owner
			}
		}

		organizer := se.Organizer
		if organizer == "" {
			organizer = club.Name
		}
		registration := se.Registration
		if registration == "" {
			registration = "#"
		}
		var description *string
		if d := se.Description; d != "" {
			description = &d
		}

		now := time.Now().UTC()
		event := models.Event{
			ID:           uuid.NewString(),
			ClubID:       club.ID,
			Title:        se.Title,
			Date:         events.NormalizeDate(se.Date),
			Time:         se.Time,
			Venue:        se.Venue,
			Category:     se.Category,
			Organizer:    organizer,
			Registration: registration,
			Description:  description,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := eventDB.CreateEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to insert event %q: %w", se.Title, err)
		}
	}
	log.Info("SEED", fmt.Sprintf("Seeded %d events", len(seeds)))
	return nil
}
