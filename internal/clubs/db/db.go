package db

import (
	"context"

	"github.com/uptrace/bun"

	"club-events/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetClubByID(ctx context.Context, id string) (*models.Club, error) {
	var club models.Club
	err := d.Bun.NewSelect().
		Model(&club).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (d *DB) GetClubByUsername(ctx context.Context, username string) (*models.Club, error) {
	var club models.Club
	err := d.Bun.NewSelect().
		Model(&club).
		Where("username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (d *DB) CreateClub(ctx context.Context, club models.Club) error {
	_, err := d.Bun.NewInsert().Model(&club).Exec(ctx)
	return err
}

func (d *DB) CountClubs(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().Model((*models.Club)(nil)).Count(ctx)
}
