package db

import (
	"context"

	"github.com/uptrace/bun"

	"club-events/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ListAll returns every event joined with the owning club's display name,
// ascending by date. Canonical YYYY-MM-DD dates make string order chronological.
func (d *DB) ListAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		ColumnExpr("event.*").
		ColumnExpr("clubs.name AS club_name").
		Join("JOIN clubs ON clubs.id = event.club_id").
		OrderExpr("event.date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (d *DB) ListByClub(ctx context.Context, clubID string) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Where("club_id = ?", clubID).
		OrderExpr("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (d *DB) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (d *DB) CreateEvent(ctx context.Context, event models.Event) error {
	_, err := d.Bun.NewInsert().Model(&event).Exec(ctx)
	return err
}

func (d *DB) UpdateEvent(ctx context.Context, event models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(&event).
		Column("title", "date", "time", "venue", "category", "registration", "description", "updated_at").
		Where("id = ?", event.ID).
		Exec(ctx)
	return err
}

func (d *DB) DeleteEvent(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (d *DB) CountEvents(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().Model((*models.Event)(nil)).Count(ctx)
}
