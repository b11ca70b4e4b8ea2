package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	clubdb "club-events/internal/clubs/db"
	"club-events/internal/events/db"
	"club-events/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *clubdb.DB) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	require.NoError(t, bunDB.ResetModel(ctx, (*models.Club)(nil)))
	require.NoError(t, bunDB.ResetModel(ctx, (*models.Event)(nil)))

	t.Cleanup(func() { bunDB.Close() })
	return &db.DB{Bun: bunDB}, &clubdb.DB{Bun: bunDB}
}

func seedClub(t *testing.T, clubDB *clubdb.DB, id, name, username string) {
	t.Helper()
	err := clubDB.CreateClub(context.Background(), models.Club{
		ID:           id,
		Name:         name,
		Username:     username,
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
}

func seedEvent(t *testing.T, eventDB *db.DB, id, clubID, title, date string) {
	t.Helper()
	now := time.Now()
	err := eventDB.CreateEvent(context.Background(), models.Event{
		ID:           id,
		ClubID:       clubID,
		Title:        title,
		Date:         date,
		Time:         "18:00",
		Venue:        "Main Auditorium",
		Category:     "Technical",
		Organizer:    "CyberSync",
		Registration: "#",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
}

func TestListAllJoinsClubNameAndSortsByDate(t *testing.T) {
	eventDB, clubDB := setupTestDB(t)
	ctx := context.Background()

	seedClub(t, clubDB, "club-a", "CyberSync", "cybersync")
	seedClub(t, clubDB, "club-b", "Elecsol", "elecsol")

	// Inserted out of order on purpose.
	seedEvent(t, eventDB, "e2", "club-b", "Circuit Jam", "2024-09-20")
	seedEvent(t, eventDB, "e1", "club-a", "Hack Night", "2024-07-05")
	seedEvent(t, eventDB, "e3", "club-a", "Demo Day", "2024-12-01")

	all, err := eventDB.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, []string{"e1", "e2", "e3"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "CyberSync", all[0].ClubName)
	assert.Equal(t, "Elecsol", all[1].ClubName)
}

func TestListByClubScopesRows(t *testing.T) {
	eventDB, clubDB := setupTestDB(t)
	ctx := context.Background()

	seedClub(t, clubDB, "club-a", "CyberSync", "cybersync")
	seedClub(t, clubDB, "club-b", "Elecsol", "elecsol")
	seedEvent(t, eventDB, "e1", "club-a", "Hack Night", "2024-07-05")
	seedEvent(t, eventDB, "e2", "club-b", "Circuit Jam", "2024-09-20")

	mine, err := eventDB.ListByClub(ctx, "club-a")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "e1", mine[0].ID)
}

func TestGetUpdateDeleteEvent(t *testing.T) {
	eventDB, clubDB := setupTestDB(t)
	ctx := context.Background()

	seedClub(t, clubDB, "club-a", "CyberSync", "cybersync")
	seedEvent(t, eventDB, "e1", "club-a", "Hack Night", "2024-07-05")

	event, err := eventDB.GetEventByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Hack Night", event.Title)

	desc := "Longer and louder"
	event.Title = "Hack Night v2"
	event.Description = &desc
	require.NoError(t, eventDB.UpdateEvent(ctx, *event))

	reloaded, err := eventDB.GetEventByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Hack Night v2", reloaded.Title)
	require.NotNil(t, reloaded.Description)
	assert.Equal(t, "Longer and louder", *reloaded.Description)

	require.NoError(t, eventDB.DeleteEvent(ctx, "e1"))
	_, err = eventDB.GetEventByID(ctx, "e1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestGetMissingEventReturnsNoRows(t *testing.T) {
	eventDB, _ := setupTestDB(t)

	_, err := eventDB.GetEventByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
