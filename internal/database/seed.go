package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
	"github.com/Ricaps/tennis-club-reservations-management/internal/repository"
)

// Seed inserts the initial surface rows so a fresh database has rates
// to price against.  It is a no-op when any surface already exists,
// which makes repeated startups with seeding enabled safe.
func Seed(ctx context.Context, db *sql.DB) error {
	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM surface`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	surfaces := []*model.Surface{
		{
			UID:      uuid.New(),
			Name:     "Surface 1",
			Price:    decimal.RequireFromString("12.5"),
			Currency: "CZK",
		},
		{
			UID:      uuid.New(),
			Name:     "Surface 2",
			Price:    decimal.RequireFromString("15.5"),
			Currency: "CZK",
		},
	}
	if err := repository.NewSurfaceRepo(db).SaveAll(ctx, surfaces); err != nil {
		return err
	}
	log.Printf("seeded %d surface rows", len(surfaces))
	return nil
}
