package repository

import (
	"context"
	"errors"

	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facegate/facegate/internal/entity"
)

const uniqueViolationCode = "23505"

type EmployeeRepository struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, e entity.Employee) (int64, error) {
	q := `
	INSERT INTO employees (first_name, last_name, national_id, birth_date, email, role, status, area_id, access_level, pin_hash, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id
	`

	var id int64

	err := r.db.QueryRow(
		ctx,
		q,
		e.FirstName,
		e.LastName,
		e.NationalID,
		e.BirthDate,
		e.Email,
		e.Role,
		e.Status,
		e.AreaID,
		e.AccessLevel,
		e.PINHash,
		e.CreatedAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, entity.ErrAlreadyExists
		}

		return 0, err
	}

	return id, nil
}

func (r *EmployeeRepository) GetEmployee(ctx context.Context, id int64) (entity.Employee, error) {
	q := `
		SELECT id, first_name, last_name, national_id, birth_date, email, role, status, area_id, access_level, pin_hash, created_at
		FROM employees
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, q, id))
}

// ListEmployeesWithPIN returns every employee that has a PIN assigned.
// PIN identity resolution compares the presented PIN against each
// candidate's bcrypt hash, so lookup by raw PIN is deliberately not
// offered.
func (r *EmployeeRepository) ListEmployeesWithPIN(ctx context.Context) ([]entity.Employee, error) {
	q := `
		SELECT id, first_name, last_name, national_id, birth_date, email, role, status, area_id, access_level, pin_hash, created_at
		FROM employees
		WHERE pin_hash IS NOT NULL
		ORDER BY id
	`

	return r.scanMany(ctx, q)
}

func (r *EmployeeRepository) ListEmployees(ctx context.Context) ([]entity.Employee, error) {
	q := `
		SELECT id, first_name, last_name, national_id, birth_date, email, role, status, area_id, access_level, pin_hash, created_at
		FROM employees
		ORDER BY id
	`

	return r.scanMany(ctx, q)
}

func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, id int64) error {
	q := `DELETE FROM employees WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *EmployeeRepository) scanMany(ctx context.Context, q string, args ...any) ([]entity.Employee, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var employees []entity.Employee

	for rows.Next() {
		var e entity.Employee

		err := rows.Scan(
			&e.ID,
			&e.FirstName,
			&e.LastName,
			&e.NationalID,
			&e.BirthDate,
			&e.Email,
			&e.Role,
			&e.Status,
			&e.AreaID,
			&e.AccessLevel,
			&e.PINHash,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *EmployeeRepository) scanOne(row pgx.Row) (entity.Employee, error) {
	var e entity.Employee

	err := row.Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.NationalID,
		&e.BirthDate,
		&e.Email,
		&e.Role,
		&e.Status,
		&e.AreaID,
		&e.AccessLevel,
		&e.PINHash,
		&e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, entity.ErrNotFound
		}

		return e, err
	}

	return e, nil
}
