package repository

import (
	"context"
	"errors"

	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facegate/facegate/internal/entity"
)

// AreaRepository reads the area registry. The core never writes areas;
// they are provisioned by plant administration tooling.
type AreaRepository struct {
	db *pgxpool.Pool
}

func NewAreaRepository(db *pgxpool.Pool) *AreaRepository {
	return &AreaRepository{db: db}
}

func (r *AreaRepository) GetArea(ctx context.Context, id string) (entity.Area, error) {
	var a entity.Area

	q := `
		SELECT id, name, description, access_level, active
		FROM areas
		WHERE id = $1
	`

	err := r.db.QueryRow(ctx, q, id).Scan(&a.ID, &a.Name, &a.Description, &a.AccessLevel, &a.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return a, entity.ErrNotFound
		}

		return a, err
	}

	return a, nil
}

func (r *AreaRepository) ListAreas(ctx context.Context) ([]entity.Area, error) {
	q := `
		SELECT id, name, description, access_level, active
		FROM areas
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var areas []entity.Area

	for rows.Next() {
		var a entity.Area

		err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.AccessLevel, &a.Active)
		if err != nil {
			return nil, err
		}

		areas = append(areas, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return areas, nil
}
