package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facegate/facegate/internal/entity"
)

// AccessRepository persists the append-only audit trail. Rows are only
// inserted, never updated or deleted.
type AccessRepository struct {
	db *pgxpool.Pool
}

func NewAccessRepository(db *pgxpool.Pool) *AccessRepository {
	return &AccessRepository{db: db}
}

func (r *AccessRepository) SaveAccess(ctx context.Context, event entity.AccessEvent) error {
	q := `
	INSERT INTO accesses (id, employee_id, area_id, ts, access_type, method, device, confidence, permitted, denial_reason)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(
		ctx,
		q,
		event.ID,
		event.EmployeeID,
		event.AreaID,
		event.Timestamp,
		event.Type,
		event.Method,
		event.Device,
		event.Confidence,
		event.Permitted,
		event.DenialReason,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *AccessRepository) GetAccess(ctx context.Context, id uuid.UUID) (entity.AccessEvent, error) {
	var event entity.AccessEvent

	q := `
		SELECT id, employee_id, area_id, ts, access_type, method, device, confidence, permitted, denial_reason
		FROM accesses
		WHERE id = $1
	`

	err := r.db.QueryRow(ctx, q, id).Scan(
		&event.ID,
		&event.EmployeeID,
		&event.AreaID,
		&event.Timestamp,
		&event.Type,
		&event.Method,
		&event.Device,
		&event.Confidence,
		&event.Permitted,
		&event.DenialReason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event, entity.ErrNotFound
		}

		return event, err
	}

	return event, nil
}

// ListAccesses returns one page of audit rows matching the filter, newest
// first, together with the total match count for pagination metadata.
func (r *AccessRepository) ListAccesses(
	ctx context.Context,
	filter entity.AccessFilter,
	page entity.Page,
) ([]entity.AccessEvent, int, error) {
	where, args := buildAccessFilter(filter)

	var total int

	countQ := `SELECT COUNT(*) FROM accesses` + where

	err := r.db.QueryRow(ctx, countQ, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	q := `
		SELECT id, employee_id, area_id, ts, access_type, method, device, confidence, permitted, denial_reason
		FROM accesses` + where + `
		ORDER BY ts DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, page.Size, (page.Number-1)*page.Size)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var events []entity.AccessEvent

	for rows.Next() {
		var event entity.AccessEvent

		err := rows.Scan(
			&event.ID,
			&event.EmployeeID,
			&event.AreaID,
			&event.Timestamp,
			&event.Type,
			&event.Method,
			&event.Device,
			&event.Confidence,
			&event.Permitted,
			&event.DenialReason,
		)
		if err != nil {
			return nil, 0, err
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func buildAccessFilter(filter entity.AccessFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.EmployeeID != nil {
		add("employee_id = $%d", *filter.EmployeeID)
	}

	if filter.AreaID != "" {
		add("area_id = $%d", filter.AreaID)
	}

	if filter.Type != "" {
		add("access_type = $%d", filter.Type)
	}

	if filter.From != nil {
		add("ts >= $%d", *filter.From)
	}

	if filter.To != nil {
		add("ts <= $%d", *filter.To)
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}
